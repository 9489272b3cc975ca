package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/resend/resend-go/v3"

	"plataforma-formacao/internal/config"
)

type Service interface {
	SendReportResolvedEmail(ctx context.Context, toEmail, recipientName, state, targetKind string) error
	SendCommentReplyEmail(ctx context.Context, toEmail, recipientName, authorName, publicationTitle string) error
}

// layout is the single fixed body every message uses.
var layout = template.Must(template.New("layout").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <h2>{{.Title}}</h2>
  <p>Olá {{.Name}},</p>
  <p>{{.Message}}</p>
  {{if .Link}}<p><a href="{{.Link}}">Abrir na plataforma</a></p>{{end}}
  <p style="color: #6b7280; font-size: 12px;">Plataforma de Formação</p>
</body>
</html>`))

type message struct {
	Title   string
	Name    string
	Message string
	Link    string
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	var client *resend.Client
	if cfg.ResendAPIKey != "" {
		client = resend.NewClient(cfg.ResendAPIKey)
	}
	return &service{
		client: client,
		config: cfg,
	}
}

func render(msg message) (string, error) {
	var body bytes.Buffer
	if err := layout.Execute(&body, msg); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

func (s *service) sendEmail(toEmail, subject string, msg message) error {
	html, err := render(msg)
	if err != nil {
		return err
	}

	if s.client == nil {
		slog.Debug("email delivery disabled", "to", toEmail, "subject", subject)
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Plataforma de Formação <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    html,
		Subject: subject,
	}

	_, err = s.client.Emails.Send(params)
	return err
}

func (s *service) SendReportResolvedEmail(ctx context.Context, toEmail, recipientName, state, targetKind string) error {
	msg := message{
		Title:   "Denúncia analisada",
		Name:    recipientName,
		Message: fmt.Sprintf("A sua denúncia sobre um(a) %s foi analisada. Estado final: %s.", targetKind, state),
		Link:    fmt.Sprintf("https://%s/denuncias", s.config.Domain),
	}
	return s.sendEmail(toEmail, "A sua denúncia foi analisada", msg)
}

func (s *service) SendCommentReplyEmail(ctx context.Context, toEmail, recipientName, authorName, publicationTitle string) error {
	msg := message{
		Title:   "Nova resposta ao seu comentário",
		Name:    recipientName,
		Message: fmt.Sprintf("%s respondeu ao seu comentário em \"%s\".", authorName, publicationTitle),
		Link:    fmt.Sprintf("https://%s/forum", s.config.Domain),
	}
	return s.sendEmail(toEmail, "Nova resposta ao seu comentário", msg)
}
