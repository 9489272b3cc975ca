package handler

import (
	"github.com/gofiber/fiber/v2"

	"plataforma-formacao/internal/domain"
	"plataforma-formacao/internal/middleware"
	"plataforma-formacao/internal/service/vote"
)

type VoteHandler struct {
	voteService vote.Service
}

func NewVoteHandler(voteService vote.Service) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

func (h *VoteHandler) Cast(c *fiber.Ctx) error {
	user, err := middleware.RequireUser(c)
	if err != nil {
		return err
	}

	publicationID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var input domain.CastVoteInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Corpo do pedido inválido")
	}

	summary, err := h.voteService.Cast(c.Context(), user, publicationID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(summary)
}

func (h *VoteHandler) Get(c *fiber.Ctx) error {
	user, err := middleware.RequireUser(c)
	if err != nil {
		return err
	}

	publicationID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	summary, err := h.voteService.GetVotes(c.Context(), user, publicationID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(summary)
}
