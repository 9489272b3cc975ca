// Package visibility holds the single rule deciding whether an entity can be shown
// or used: it and every ancestor in its active-flag chain must be active.
package visibility

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"plataforma-formacao/internal/domain"
	"plataforma-formacao/internal/observability"
	"plataforma-formacao/internal/repository"
)

// IsVisible reports whether every link is active. An empty chain is not visible.
func IsVisible(links []domain.ChainLink) bool {
	if len(links) == 0 {
		return false
	}
	for _, l := range links {
		if !l.Active {
			return false
		}
	}
	return true
}

// FirstInactive names the nearest inactive link, for logging.
func FirstInactive(links []domain.ChainLink) (string, bool) {
	for _, l := range links {
		if !l.Active {
			return l.Entity, true
		}
	}
	return "", false
}

// ActorHasRole applies the rule to the actor chain (role row, user).
func ActorHasRole(user *domain.User, role domain.UserRole) bool {
	if user == nil {
		return false
	}
	return IsVisible(user.RoleChain(role))
}

type Service interface {
	PublicationVisible(ctx context.Context, publicationID uuid.UUID) (bool, error)
	ForumTopicVisible(ctx context.Context, forumTopicID uuid.UUID) (bool, error)
	CourseVisible(ctx context.Context, courseID uuid.UUID) (bool, error)
}

type service struct {
	repo   repository.VisibilityRepository
	now    func() time.Time
	logger *slog.Logger
}

type Option func(*service)

func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *service) { s.logger = logger }
}

func NewService(repo repository.VisibilityRepository, opts ...Option) Service {
	s := &service{repo: repo, now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PublicationVisible is false for a missing publication; callers answer 404 either way.
func (s *service) PublicationVisible(ctx context.Context, publicationID uuid.UUID) (bool, error) {
	chain, err := s.repo.PublicationChain(ctx, publicationID)
	if err != nil || chain == nil {
		return false, err
	}
	return s.check("publicacao", publicationID, chain.Links()), nil
}

func (s *service) ForumTopicVisible(ctx context.Context, forumTopicID uuid.UUID) (bool, error) {
	chain, err := s.repo.ForumTopicChain(ctx, forumTopicID)
	if err != nil || chain == nil {
		return false, err
	}
	return s.check("topico_forum", forumTopicID, chain.Links()), nil
}

// CourseVisible also retires asynchronous courses past their end date. The write is
// conditional on is_visible, so concurrent callers race harmlessly.
func (s *service) CourseVisible(ctx context.Context, courseID uuid.UUID) (bool, error) {
	chain, err := s.repo.CourseChain(ctx, courseID)
	if err != nil || chain == nil {
		return false, err
	}

	if chain.CourseVisible && chain.Expired(s.now()) {
		changed, err := s.repo.HideExpiredCourse(ctx, courseID)
		if err != nil {
			return false, err
		}
		if changed {
			observability.CoursesExpired.Inc()
			s.logger.Info("asynchronous course expired", "course_id", courseID, "end_date", chain.EndDate)
		}
		chain.CourseVisible = false
	}

	return s.check("curso", courseID, chain.Links()), nil
}

func (s *service) check(entity string, id uuid.UUID, links []domain.ChainLink) bool {
	if inactive, found := FirstInactive(links); found {
		s.logger.Debug("entity hidden by inactive ancestor", "entity", entity, "id", id, "inactive", inactive)
		return false
	}
	return IsVisible(links)
}
