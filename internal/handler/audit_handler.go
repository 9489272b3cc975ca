package handler

import (
	"github.com/gofiber/fiber/v2"

	"plataforma-formacao/internal/service/audit"
)

type AuditHandler struct {
	auditService audit.Service
}

func NewAuditHandler(auditService audit.Service) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// ListByEntity shows the moderation history of one entity, e.g. /auditoria/comentario/:id.
func (h *AuditHandler) ListByEntity(c *fiber.Ctx) error {
	entityID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	result, err := h.auditService.ListByEntity(c.Context(), c.Params("tipo"), entityID, getOffsetParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
