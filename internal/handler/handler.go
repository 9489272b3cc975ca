package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"plataforma-formacao/internal/domain"
	"plataforma-formacao/internal/middleware"
	"plataforma-formacao/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	Comment      *CommentHandler
	Report       *ReportHandler
	Vote         *VoteHandler
	Publication  *PublicationHandler
	Enrollment   *EnrollmentHandler
	Notification *NotificationHandler
	Audit        *AuditHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		Comment:      NewCommentHandler(services.Comment),
		Report:       NewReportHandler(services.Report),
		Vote:         NewVoteHandler(services.Vote),
		Publication:  NewPublicationHandler(services.Publication),
		Enrollment:   NewEnrollmentHandler(services.Enrollment),
		Notification: NewNotificationHandler(services.Notification),
		Audit:        NewAuditHandler(services.Audit),
	}
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.BadRequest("Identificador inválido: " + name)
	}
	return id, nil
}

func getOffsetParams(c *fiber.Ctx) domain.OffsetParams {
	params := domain.DefaultOffsetParams()
	params.Limit = c.QueryInt("limit", params.Limit)
	params.Offset = c.QueryInt("offset", params.Offset)
	params.Validate()
	return params
}
