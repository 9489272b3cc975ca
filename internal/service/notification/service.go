package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"plataforma-formacao/internal/domain"
	"plataforma-formacao/internal/repository"
	"plataforma-formacao/internal/service/email"
)

type Service interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.OffsetParams) (domain.OffsetPage[domain.Notification], error)
	MarkAsRead(ctx context.Context, userID, id uuid.UUID) error
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)

	NotifyCommentReply(ctx context.Context, parent, reply *domain.Comment) error
	NotifyReportCreated(ctx context.Context, report *domain.Report) error
	NotifyReportResolved(ctx context.Context, report *domain.Report) error
	NotifyContentHidden(ctx context.Context, authorID uuid.UUID, target domain.ReportTarget) error
}

type service struct {
	notifRepo       repository.NotificationRepository
	userRepo        repository.UserRepository
	publicationRepo repository.PublicationRepository
	emailSvc        email.Service
}

func NewService(
	notifRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	publicationRepo repository.PublicationRepository,
	emailSvc email.Service,
) Service {
	return &service{
		notifRepo:       notifRepo,
		userRepo:        userRepo,
		publicationRepo: publicationRepo,
		emailSvc:        emailSvc,
	}
}

func (s *service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.OffsetParams) (domain.OffsetPage[domain.Notification], error) {
	params.Validate()
	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return domain.OffsetPage[domain.Notification]{}, err
	}
	return domain.NewOffsetPage(notifications, params, total), nil
}

// MarkAsRead only touches the caller's own notifications; anything else is reported as missing.
func (s *service) MarkAsRead(ctx context.Context, userID, id uuid.UUID) error {
	notif, err := s.notifRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notif == nil || notif.UserID != userID {
		return domain.ErrNotificationNotFound
	}
	return s.notifRepo.MarkAsRead(ctx, id)
}

func (s *service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

func (s *service) NotifyCommentReply(ctx context.Context, parent, reply *domain.Comment) error {
	if parent.AuthorID == reply.AuthorID {
		return nil
	}

	recipient, err := s.userRepo.GetByID(ctx, parent.AuthorID)
	if err != nil {
		return fmt.Errorf("failed to get parent author: %w", err)
	}
	if recipient == nil || !recipient.IsActive {
		return nil
	}

	authorName := "Alguém"
	if author, err := s.userRepo.GetByID(ctx, reply.AuthorID); err == nil && author != nil {
		authorName = author.FullName
	}

	publicationTitle := ""
	if pub, err := s.publicationRepo.GetByID(ctx, reply.PublicationID); err == nil && pub != nil {
		publicationTitle = pub.Title
	}

	data, _ := json.Marshal(map[string]string{
		"id_publicacao": reply.PublicationID.String(),
		"id_comentario": reply.ID.String(),
		"parent_id":     parent.ID.String(),
	})

	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  recipient.ID,
		Type:    domain.NotifCommentReply,
		Title:   "Nova resposta",
		Message: fmt.Sprintf("%s respondeu ao seu comentário", authorName),
		Data:    data,
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	if err := s.emailSvc.SendCommentReplyEmail(ctx, recipient.Email, recipient.FullName, authorName, publicationTitle); err != nil {
		slog.Warn("failed to send reply email", "user_id", recipient.ID, "error", err)
	}
	return nil
}

// NotifyReportCreated tells every active manager that a report is waiting, except the
// reporter when they are a manager themselves.
func (s *service) NotifyReportCreated(ctx context.Context, report *domain.Report) error {
	managers, err := s.userRepo.ListActiveManagers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list managers: %w", err)
	}

	data, _ := json.Marshal(map[string]string{
		"id_denuncia": report.ID.String(),
		"tipo":        string(report.Target.Kind()),
		"id_alvo":     report.Target.ID().String(),
	})

	for _, m := range managers {
		if m.ID == report.ReporterID {
			continue
		}
		notif := &domain.Notification{
			ID:      uuid.New(),
			UserID:  m.ID,
			Type:    domain.NotifReportCreated,
			Title:   "Nova denúncia",
			Message: fmt.Sprintf("Foi denunciado(a) um(a) %s", report.Target.Kind()),
			Data:    data,
		}
		if err := s.notifRepo.Create(ctx, notif); err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}
	}
	return nil
}

func (s *service) NotifyReportResolved(ctx context.Context, report *domain.Report) error {
	reporter, err := s.userRepo.GetByID(ctx, report.ReporterID)
	if err != nil {
		return fmt.Errorf("failed to get reporter: %w", err)
	}
	if reporter == nil {
		return nil
	}

	data, _ := json.Marshal(map[string]string{
		"id_denuncia": report.ID.String(),
		"estado":      string(report.State),
		"tipo":        string(report.Target.Kind()),
		"id_alvo":     report.Target.ID().String(),
	})

	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  reporter.ID,
		Type:    domain.NotifReportResolved,
		Title:   "Denúncia analisada",
		Message: fmt.Sprintf("A sua denúncia foi marcada como %s", report.State),
		Data:    data,
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	if err := s.emailSvc.SendReportResolvedEmail(ctx, reporter.Email, reporter.FullName, string(report.State), string(report.Target.Kind())); err != nil {
		slog.Warn("failed to send report email", "user_id", reporter.ID, "error", err)
	}
	return nil
}

func (s *service) NotifyContentHidden(ctx context.Context, authorID uuid.UUID, target domain.ReportTarget) error {
	data, _ := json.Marshal(map[string]string{
		"tipo":    string(target.Kind()),
		"id_alvo": target.ID().String(),
	})

	return s.notifRepo.Create(ctx, &domain.Notification{
		ID:      uuid.New(),
		UserID:  authorID,
		Type:    domain.NotifContentHidden,
		Title:   "Conteúdo ocultado",
		Message: fmt.Sprintf("Um(a) %s da sua autoria foi ocultado(a) pela moderação", target.Kind()),
		Data:    data,
	})
}
