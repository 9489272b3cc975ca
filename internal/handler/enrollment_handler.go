package handler

import (
	"github.com/gofiber/fiber/v2"

	"plataforma-formacao/internal/middleware"
	"plataforma-formacao/internal/service/enrollment"
)

type EnrollmentHandler struct {
	enrollmentService enrollment.Service
}

func NewEnrollmentHandler(enrollmentService enrollment.Service) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

func (h *EnrollmentHandler) Enroll(c *fiber.Ctx) error {
	user, err := middleware.RequireUser(c)
	if err != nil {
		return err
	}

	courseID, err := parseUUIDParam(c, "id_curso")
	if err != nil {
		return err
	}

	enrollment, err := h.enrollmentService.Enroll(c.Context(), user, courseID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(enrollment)
}
