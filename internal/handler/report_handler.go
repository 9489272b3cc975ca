package handler

import (
	"github.com/gofiber/fiber/v2"

	"plataforma-formacao/internal/domain"
	"plataforma-formacao/internal/middleware"
	"plataforma-formacao/internal/service/report"
)

type ReportHandler struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) Create(c *fiber.Ctx) error {
	user, err := middleware.RequireUser(c)
	if err != nil {
		return err
	}

	var input domain.CreateReportInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Corpo do pedido inválido")
	}

	created, err := h.reportService.Create(c.Context(), user, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *ReportHandler) List(c *fiber.Ctx) error {
	result, err := h.reportService.List(c.Context(), getOffsetParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ReportHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	found, err := h.reportService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *ReportHandler) Resolve(c *fiber.Ctx) error {
	user, err := middleware.RequireUser(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id_denuncia")
	if err != nil {
		return err
	}

	var input domain.ResolveReportInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Corpo do pedido inválido")
	}

	resolved, err := h.reportService.Resolve(c.Context(), user, id, input, middleware.GetRequestMeta(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(resolved)
}
