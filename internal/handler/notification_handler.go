package handler

import (
	"github.com/gofiber/fiber/v2"

	"plataforma-formacao/internal/middleware"
	"plataforma-formacao/internal/service/notification"
)

type NotificationHandler struct {
	notifService notification.Service
}

func NewNotificationHandler(notifService notification.Service) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	user, err := middleware.RequireUser(c)
	if err != nil {
		return err
	}

	unreadOnly := c.QueryBool("nao_lidas", false)

	result, err := h.notifService.List(c.Context(), user.ID, unreadOnly, getOffsetParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	user, err := middleware.RequireUser(c)
	if err != nil {
		return err
	}

	count, err := h.notifService.GetUnreadCount(c.Context(), user.ID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"total": count,
	})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	user, err := middleware.RequireUser(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.notifService.MarkAsRead(c.Context(), user.ID, id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
