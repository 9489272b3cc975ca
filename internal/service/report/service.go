package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"plataforma-formacao/internal/cache"
	"plataforma-formacao/internal/domain"
	"plataforma-formacao/internal/observability"
	"plataforma-formacao/internal/pkg/validate"
	"plataforma-formacao/internal/repository"
	"plataforma-formacao/internal/service/cascade"
	"plataforma-formacao/internal/service/commenttree"
	"plataforma-formacao/internal/service/notification"
	"plataforma-formacao/internal/service/visibility"
)

type Service interface {
	Create(ctx context.Context, actor *domain.User, input domain.CreateReportInput) (*domain.Report, error)
	List(ctx context.Context, params domain.OffsetParams) (domain.OffsetPage[domain.Report], error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error)
	Resolve(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.ResolveReportInput, meta domain.RequestMeta) (*domain.Report, error)
	SetNotificationService(notifSvc notification.Service)
}

type Config struct {
	MaxDepth int
	Logger   *slog.Logger
	Now      func() time.Time
}

type service struct {
	reportRepo  repository.ReportRepository
	commentRepo repository.CommentRepository
	tx          repository.Transactor
	visibility  visibility.Service
	ranking     cache.RankingCache
	notifSvc    notification.Service
	maxDepth    int
	logger      *slog.Logger
	now         func() time.Time
}

func NewService(
	reportRepo repository.ReportRepository,
	commentRepo repository.CommentRepository,
	tx repository.Transactor,
	visibilitySvc visibility.Service,
	ranking cache.RankingCache,
	cfg Config,
) Service {
	s := &service{
		reportRepo:  reportRepo,
		commentRepo: commentRepo,
		tx:          tx,
		visibility:  visibilitySvc,
		ranking:     ranking,
		maxDepth:    cfg.MaxDepth,
		logger:      cfg.Logger,
		now:         cfg.Now,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *service) SetNotificationService(notifSvc notification.Service) {
	s.notifSvc = notifSvc
}

func (s *service) Create(ctx context.Context, actor *domain.User, input domain.CreateReportInput) (*domain.Report, error) {
	target, err := domain.NewReportTarget(input.PublicationID, input.CommentID)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	if err := s.requireTarget(ctx, target); err != nil {
		return nil, err
	}

	pending, err := s.reportRepo.ExistsPending(ctx, actor.ID, target)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, domain.ErrDuplicateReport
	}

	report := &domain.Report{
		ID:         uuid.New(),
		ReporterID: actor.ID,
		Target:     target,
		Reason:     input.Reason,
		State:      domain.ReportPending,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, domain.ErrDuplicateReport
		}
		return nil, err
	}

	if s.notifSvc != nil {
		created := *report
		go func() {
			if err := s.notifSvc.NotifyReportCreated(context.Background(), &created); err != nil {
				s.logger.Warn("failed to notify managers", "report_id", created.ID, "error", err)
			}
		}()
	}
	return report, nil
}

// requireTarget answers 404 for a target that is missing or no longer displayed.
func (s *service) requireTarget(ctx context.Context, target domain.ReportTarget) error {
	switch target.Kind() {
	case domain.TargetPublication:
		ok, err := s.visibility.PublicationVisible(ctx, target.ID())
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrPublicationNotFound
		}
		return nil

	case domain.TargetComment:
		c, err := s.commentRepo.GetByID(ctx, target.ID())
		if err != nil {
			return err
		}
		if c == nil || c.Hidden {
			return domain.ErrCommentNotFound
		}
		ok, err := s.visibility.PublicationVisible(ctx, c.PublicationID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrCommentNotFound
		}

		rows, err := s.commentRepo.ListByPublication(ctx, c.PublicationID)
		if err != nil {
			return err
		}
		forest := commenttree.Build(rows, commenttree.WithMaxDepth(s.maxDepth), commenttree.WithLogger(s.logger))
		if !forest.Visible(c.ID) {
			return domain.ErrCommentNotFound
		}
		return nil

	default:
		return domain.ErrInvalidReportTarget
	}
}

func (s *service) List(ctx context.Context, params domain.OffsetParams) (domain.OffsetPage[domain.Report], error) {
	params.Validate()
	reports, total, err := s.reportRepo.List(ctx, params)
	if err != nil {
		return domain.OffsetPage[domain.Report]{}, err
	}
	return domain.NewOffsetPage(reports, params, total), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, domain.ErrReportNotFound
	}
	return report, nil
}

type hiddenContent struct {
	authorID     uuid.UUID
	forumTopicID *uuid.UUID
}

// Resolve moves a pending report to its final state. Approval hides the target (and,
// for a comment, its replies) in the same transaction as the state change.
func (s *service) Resolve(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.ResolveReportInput, meta domain.RequestMeta) (*domain.Report, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	if !visibility.ActorHasRole(actor, domain.RoleManager) {
		return nil, domain.ErrForbidden
	}

	var (
		report *domain.Report
		hidden *hiddenContent
	)

	err := s.tx.WithinTx(ctx, func(uow *repository.UnitOfWork) error {
		var err error
		report, err = uow.Reports.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if report == nil {
			return domain.ErrReportNotFound
		}
		if report.State != domain.ReportPending {
			return domain.ErrReportNotPending
		}

		if input.State == domain.ReportApproved {
			hidden, err = s.hideTarget(ctx, uow, report.Target)
			if err != nil {
				return err
			}
		}

		resolvedAt := s.now().UTC()
		resolverID := actor.ID
		report.State = input.State
		report.ResolverID = &resolverID
		report.ResolvedAt = &resolvedAt
		if input.ActionTaken != "" {
			action := input.ActionTaken
			report.ActionTaken = &action
		}

		if err := uow.Reports.Resolve(ctx, report); err != nil {
			return err
		}

		return repository.CreateAuditLog(ctx, uow.AuditLogs, domain.CreateAuditLogInput{
			UserID:     actor.ID,
			Action:     domain.AuditResolveReport,
			EntityType: "denuncia",
			EntityID:   report.ID,
			OldValue:   map[string]interface{}{"estado": domain.ReportPending},
			NewValue:   map[string]interface{}{"estado": report.State, "acao_tomada": report.ActionTaken, "alvo": report.Target},
			IPAddress:  meta.IPAddressPtr(),
			UserAgent:  meta.UserAgentPtr(),
		})
	})
	if err != nil {
		return nil, err
	}

	observability.ReportsResolved.WithLabelValues(string(report.State), string(report.Target.Kind())).Inc()
	if hidden != nil && hidden.forumTopicID != nil {
		s.ranking.Invalidate(ctx, *hidden.forumTopicID)
	}
	s.notifyAfterCommit(*report, hidden)

	return report, nil
}

func (s *service) hideTarget(ctx context.Context, uow *repository.UnitOfWork, target domain.ReportTarget) (*hiddenContent, error) {
	switch target.Kind() {
	case domain.TargetPublication:
		res, err := cascade.HidePublication(ctx, uow, target.ID())
		if err != nil {
			return nil, err
		}
		topic := res.Publication.ForumTopicID
		return &hiddenContent{authorID: res.Publication.AuthorID, forumTopicID: &topic}, nil

	case domain.TargetComment:
		res, err := cascade.HideComment(ctx, uow, target.ID(), cascade.TriggerReport,
			commenttree.WithMaxDepth(s.maxDepth), commenttree.WithLogger(s.logger))
		if err != nil {
			return nil, err
		}
		return &hiddenContent{authorID: res.Target.AuthorID}, nil

	default:
		return nil, domain.ErrInvalidReportTarget
	}
}

func (s *service) notifyAfterCommit(report domain.Report, hidden *hiddenContent) {
	if s.notifSvc == nil {
		return
	}
	go func() {
		ctx := context.Background()
		if err := s.notifSvc.NotifyReportResolved(ctx, &report); err != nil {
			s.logger.Warn("failed to notify reporter", "report_id", report.ID, "error", err)
		}
		if hidden != nil {
			if err := s.notifSvc.NotifyContentHidden(ctx, hidden.authorID, report.Target); err != nil {
				s.logger.Warn("failed to notify content author", "report_id", report.ID, "error", err)
			}
		}
	}()
}
