package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plataforma-formacao/internal/config"
)

func TestRender_EscapesUserContent(t *testing.T) {
	body, err := render(message{
		Title:   "Nova resposta",
		Name:    "<script>alert(1)</script>",
		Message: "ok",
	})

	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.NotContains(t, body, "Abrir na plataforma")
}

func TestSend_WithoutAPIKeyIsNoop(t *testing.T) {
	svc := NewService(&config.Config{FromEmail: "noreply@example.com", Domain: "example.com"})

	err := svc.SendReportResolvedEmail(context.Background(), "ana@example.com", "Ana", "aprovado", "comentario")

	assert.NoError(t, err)
}
