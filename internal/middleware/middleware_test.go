package middleware_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"plataforma-formacao/internal/domain"
	"plataforma-formacao/internal/middleware"
	"plataforma-formacao/internal/mocks"
	"plataforma-formacao/internal/service/auth"
)

func newApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: middleware.NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil))),
	})
}

func decode(t *testing.T, body io.Reader) middleware.ErrorResponse {
	t.Helper()
	var res middleware.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&res))
	return res
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"validation", domain.ErrInvalidReportTarget, fiber.StatusBadRequest, domain.ErrInvalidReportTarget.Message},
		{"duplicate report is a bad request", domain.ErrDuplicateReport, fiber.StatusBadRequest, domain.ErrDuplicateReport.Message},
		{"forbidden", domain.ErrForbidden, fiber.StatusForbidden, domain.ErrForbidden.Message},
		{"not found", domain.ErrCommentNotFound, fiber.StatusNotFound, domain.ErrCommentNotFound.Message},
		{"not pending", domain.ErrReportNotPending, fiber.StatusConflict, domain.ErrReportNotPending.Message},
		{"unauthenticated", domain.ErrInvalidToken, fiber.StatusUnauthorized, domain.ErrInvalidToken.Message},
		{"fiber error", fiber.NewError(fiber.StatusBadRequest, "ID inválido"), fiber.StatusBadRequest, "ID inválido"},
		{"internal", errors.New("pq: connection refused"), fiber.StatusInternalServerError, "Erro interno do servidor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp()
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)

			assert.Equal(t, tt.status, resp.StatusCode)
			body := decode(t, resp.Body)
			assert.Equal(t, tt.body, body.Error)
			if tt.status == fiber.StatusInternalServerError {
				assert.Len(t, body.TraceID, 8)
				assert.NotContains(t, body.Error, "pq")
			}
		})
	}

	t.Run("details are passed through", func(t *testing.T) {
		app := newApp()
		app.Get("/", func(c *fiber.Ctx) error {
			return domain.ErrInvalidInput.WithDetails("motivo: campo obrigatório")
		})

		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)

		body := decode(t, resp.Body)
		assert.Equal(t, "motivo: campo obrigatório", body.Details)
	})
}

func TestAuthRequired(t *testing.T) {
	user := &domain.User{ID: uuid.New(), IsActive: true}

	setup := func(authSvc *mocks.AuthService) *fiber.App {
		app := newApp()
		app.Get("/", middleware.AuthRequired(authSvc), func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"id": middleware.GetCurrentUser(c).ID})
		})
		return app
	}

	t.Run("Missing header", func(t *testing.T) {
		resp, err := setup(new(mocks.AuthService)).Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Malformed header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Token abc")

		resp, err := setup(new(mocks.AuthService)).Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Valid token", func(t *testing.T) {
		authSvc := new(mocks.AuthService)
		authSvc.On("ValidateAccessToken", "abc").Return(&auth.Claims{UserID: user.ID}, nil)
		authSvc.On("GetUserByID", mock.Anything, user.ID).Return(user, nil)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer abc")

		resp, err := setup(authSvc).Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("Deactivated account", func(t *testing.T) {
		inactive := &domain.User{ID: uuid.New(), IsActive: false}
		authSvc := new(mocks.AuthService)
		authSvc.On("ValidateAccessToken", "abc").Return(&auth.Claims{UserID: inactive.ID}, nil)
		authSvc.On("GetUserByID", mock.Anything, inactive.ID).Return(inactive, nil)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer abc")

		resp, err := setup(authSvc).Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("Deleted user", func(t *testing.T) {
		id := uuid.New()
		authSvc := new(mocks.AuthService)
		authSvc.On("ValidateAccessToken", "abc").Return(&auth.Claims{UserID: id}, nil)
		authSvc.On("GetUserByID", mock.Anything, id).Return(nil, domain.ErrUserNotFound)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer abc")

		resp, err := setup(authSvc).Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRequireRole(t *testing.T) {
	withUser := func(user *domain.User) *fiber.App {
		app := newApp()
		app.Get("/", func(c *fiber.Ctx) error {
			c.Locals(middleware.UserContextKey, user)
			return c.Next()
		}, middleware.RequireRole(domain.RoleManager), func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusNoContent)
		})
		return app
	}

	manager := func(roleActive bool) *domain.User {
		u := &domain.User{ID: uuid.New(), IsActive: true}
		u.Roles = []domain.RoleAssignment{{UserID: u.ID, Role: domain.RoleManager, IsActive: roleActive}}
		return u
	}

	t.Run("Active manager", func(t *testing.T) {
		resp, err := withUser(manager(true)).Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	})

	t.Run("Inactive manager row", func(t *testing.T) {
		resp, err := withUser(manager(false)).Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("No role row", func(t *testing.T) {
		resp, err := withUser(&domain.User{ID: uuid.New(), IsActive: true}).Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}

func TestGetIPAddress(t *testing.T) {
	app := fiber.New()
	app.Get("/", middleware.RequestInfo(), func(c *fiber.Ctx) error {
		meta := middleware.GetRequestMeta(c)
		return c.SendString(meta.IPAddress + "|" + meta.UserAgent)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("CF-Connecting-IP", "203.0.113.7")
	req.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")
	req.Header.Set("User-Agent", "teste/1.0")

	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "203.0.113.7|teste/1.0", string(body))
}
