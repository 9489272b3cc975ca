package handler

import (
	"github.com/gofiber/fiber/v2"

	"plataforma-formacao/internal/domain"
	"plataforma-formacao/internal/middleware"
	"plataforma-formacao/internal/service/publication"
)

type PublicationHandler struct {
	publicationService publication.Service
}

func NewPublicationHandler(publicationService publication.Service) *PublicationHandler {
	return &PublicationHandler{publicationService: publicationService}
}

func (h *PublicationHandler) Create(c *fiber.Ctx) error {
	user, err := middleware.RequireUser(c)
	if err != nil {
		return err
	}

	var input domain.CreatePublicationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Corpo do pedido inválido")
	}

	pub, err := h.publicationService.Create(c.Context(), user, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(pub)
}

func (h *PublicationHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	pub, err := h.publicationService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(pub)
}

func (h *PublicationHandler) ListByForumTopic(c *fiber.Ctx) error {
	forumTopicID, err := parseUUIDParam(c, "id_topico")
	if err != nil {
		return err
	}

	page, err := h.publicationService.ListRanked(c.Context(), forumTopicID, getOffsetParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(page)
}

func (h *PublicationHandler) UploadAttachment(c *fiber.Ctx) error {
	user, err := middleware.RequireUser(c)
	if err != nil {
		return err
	}

	publicationID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	file, err := c.FormFile("ficheiro")
	if err != nil {
		return middleware.BadRequest("O ficheiro é obrigatório")
	}

	mimeType := file.Header.Get(fiber.HeaderContentType)
	if mimeType == "" {
		mimeType = fiber.MIMEOctetStream
	}

	reader, err := file.Open()
	if err != nil {
		return middleware.BadRequest("Não foi possível ler o ficheiro")
	}
	defer reader.Close()

	attachment, err := h.publicationService.UploadAttachment(c.Context(), user, publicationID, publication.Upload{
		FileName: file.Filename,
		MimeType: mimeType,
		Size:     file.Size,
		Reader:   reader,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(attachment)
}
