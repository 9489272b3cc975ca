package handler

import (
	"github.com/gofiber/fiber/v2"

	"plataforma-formacao/internal/domain"
	"plataforma-formacao/internal/middleware"
	"plataforma-formacao/internal/service/comment"
)

type CommentHandler struct {
	commentService comment.Service
}

func NewCommentHandler(commentService comment.Service) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	user, err := middleware.RequireUser(c)
	if err != nil {
		return err
	}

	var input domain.CreateCommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Corpo do pedido inválido")
	}

	created, err := h.commentService.Create(c.Context(), user, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// ListByPublication returns the visible comments as one chronological list;
// ?formato=arvore nests the same comments under their parents.
func (h *CommentHandler) ListByPublication(c *fiber.Ctx) error {
	publicationID, err := parseUUIDParam(c, "id_publicacao")
	if err != nil {
		return err
	}

	if c.Query("formato") == "arvore" {
		tree, err := h.commentService.ListByPublication(c.Context(), publicationID)
		if err != nil {
			return err
		}
		if tree == nil {
			tree = []*domain.Comment{}
		}
		return c.Status(fiber.StatusOK).JSON(tree)
	}

	flat, err := h.commentService.ListFlatByPublication(c.Context(), publicationID)
	if err != nil {
		return err
	}
	if flat == nil {
		flat = []domain.Comment{}
	}

	return c.Status(fiber.StatusOK).JSON(flat)
}

func (h *CommentHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	found, err := h.commentService.GetWithReplies(c.Context(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	user, err := middleware.RequireUser(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.commentService.Delete(c.Context(), user, id, middleware.GetRequestMeta(c)); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
