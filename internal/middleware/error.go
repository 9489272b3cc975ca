package middleware

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"plataforma-formacao/internal/domain"
)

type ErrorResponse struct {
	Error   string `json:"erro"`
	Details string `json:"detalhes,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindUnauthenticated:
		return fiber.StatusUnauthorized
	case domain.KindAuthorization:
		return fiber.StatusForbidden
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// NewErrorHandler maps domain errors to status codes. Anything unrecognised is a 500
// whose cause is only written to the log, under a short trace id.
func NewErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var domainErr *domain.Error
		if errors.As(err, &domainErr) {
			return c.Status(statusFor(domainErr.Kind)).JSON(ErrorResponse{
				Error:   domainErr.Message,
				Details: domainErr.Details,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
			return c.Status(fiberErr.Code).JSON(ErrorResponse{Error: fiberErr.Message})
		}

		traceID := uuid.New().String()[:8]
		logger.Error("request failed",
			"trace_id", traceID,
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)

		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "Erro interno do servidor",
			TraceID: traceID,
		})
	}
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}
