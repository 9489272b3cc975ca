package handler

import (
	"github.com/gofiber/fiber/v2"

	"plataforma-formacao/internal/domain"
	"plataforma-formacao/internal/middleware"
	"plataforma-formacao/internal/service/auth"
)

func SetupRoutes(app *fiber.App, h *Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/login", h.Auth.Login)

	protected := v1.Group("", middleware.AuthRequired(authService))
	manager := middleware.RequireRole(domain.RoleManager)

	protected.Get("/auth/me", h.Auth.Me)

	comments := protected.Group("/comentarios")
	comments.Post("/", h.Comment.Create)
	comments.Get("/publicacao/:id_publicacao", h.Comment.ListByPublication)
	comments.Get("/:id", h.Comment.Get)
	comments.Delete("/:id", h.Comment.Delete)

	reports := protected.Group("/denuncias")
	reports.Post("/", h.Report.Create)
	reports.Get("/", manager, h.Report.List)
	reports.Put("/resolvida/:id_denuncia", manager, h.Report.Resolve)
	reports.Get("/:id", manager, h.Report.Get)

	votes := protected.Group("/votos-publicacao")
	votes.Post("/:id/voto", h.Vote.Cast)
	votes.Get("/:id/voto", h.Vote.Get)

	publications := protected.Group("/publicacoes")
	publications.Post("/", h.Publication.Create)
	publications.Get("/topico/:id_topico", h.Publication.ListByForumTopic)
	publications.Get("/:id", h.Publication.Get)
	publications.Post("/:id/anexos", h.Publication.UploadAttachment)

	protected.Post("/inscricoes/:id_curso", h.Enrollment.Enroll)

	notifications := protected.Group("/notificacoes")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/nao-lidas", h.Notification.GetUnreadCount)
	notifications.Patch("/:id/lida", h.Notification.MarkAsRead)

	protected.Get("/auditoria/:tipo/:id", manager, h.Audit.ListByEntity)
}
