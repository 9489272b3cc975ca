package handler

import (
	"github.com/gofiber/fiber/v2"

	"plataforma-formacao/internal/domain"
	"plataforma-formacao/internal/middleware"
	"plataforma-formacao/internal/service/auth"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Corpo do pedido inválido")
	}

	res, err := h.authService.Login(c.Context(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := middleware.RequireUser(c)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(user)
}
