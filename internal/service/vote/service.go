package vote

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"plataforma-formacao/internal/cache"
	"plataforma-formacao/internal/domain"
	"plataforma-formacao/internal/observability"
	"plataforma-formacao/internal/pkg/validate"
	"plataforma-formacao/internal/repository"
	"plataforma-formacao/internal/service/visibility"
)

const (
	outcomeInsert    = "insert"
	outcomeToggleOff = "toggle_off"
	outcomeFlip      = "flip"
)

type Service interface {
	Cast(ctx context.Context, actor *domain.User, publicationID uuid.UUID, input domain.CastVoteInput) (*domain.VoteSummary, error)
	GetVotes(ctx context.Context, actor *domain.User, publicationID uuid.UUID) (*domain.VoteSummary, error)
}

type service struct {
	voteRepo        repository.VoteRepository
	publicationRepo repository.PublicationRepository
	tx              repository.Transactor
	visibility      visibility.Service
	ranking         cache.RankingCache
	logger          *slog.Logger
}

func NewService(
	voteRepo repository.VoteRepository,
	publicationRepo repository.PublicationRepository,
	tx repository.Transactor,
	visibilitySvc visibility.Service,
	ranking cache.RankingCache,
	logger *slog.Logger,
) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		voteRepo:        voteRepo,
		publicationRepo: publicationRepo,
		tx:              tx,
		visibility:      visibilitySvc,
		ranking:         ranking,
		logger:          logger,
	}
}

func (s *service) requirePublication(ctx context.Context, publicationID uuid.UUID) (*domain.Publication, error) {
	pub, err := s.publicationRepo.GetByID(ctx, publicationID)
	if err != nil {
		return nil, err
	}
	if pub == nil {
		return nil, domain.ErrPublicationNotFound
	}
	ok, err := s.visibility.PublicationVisible(ctx, publicationID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrPublicationNotFound
	}
	return pub, nil
}

// Cast applies a vote: a first vote inserts, repeating the same direction removes
// it and the opposite direction flips it. Two concurrent first votes meet on the
// (publication_id, voter_id) key; the loser retries once and takes the
// existing-row path.
func (s *service) Cast(ctx context.Context, actor *domain.User, publicationID uuid.UUID, input domain.CastVoteInput) (*domain.VoteSummary, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	pub, err := s.requirePublication(ctx, publicationID)
	if err != nil {
		return nil, err
	}

	summary, outcome, err := s.cast(ctx, actor.ID, publicationID, input.Direction)
	if repository.IsUniqueViolation(err) {
		s.logger.Info("concurrent first vote, retrying", "publication_id", publicationID, "voter_id", actor.ID)
		summary, outcome, err = s.cast(ctx, actor.ID, publicationID, input.Direction)
	}
	if err != nil {
		return nil, err
	}

	observability.VotesCast.WithLabelValues(outcome).Inc()
	s.ranking.Invalidate(ctx, pub.ForumTopicID)

	return summary, nil
}

func (s *service) cast(ctx context.Context, voterID, publicationID uuid.UUID, direction domain.VoteDirection) (*domain.VoteSummary, string, error) {
	var (
		summary *domain.VoteSummary
		outcome string
	)

	err := s.tx.WithinTx(ctx, func(uow *repository.UnitOfWork) error {
		existing, err := uow.Votes.GetForUpdate(ctx, publicationID, voterID)
		if err != nil {
			return err
		}

		var userVote *domain.VoteDirection
		switch {
		case existing == nil:
			outcome = outcomeInsert
			err = uow.Votes.Create(ctx, &domain.Vote{
				ID:            uuid.New(),
				PublicationID: publicationID,
				VoterID:       voterID,
				Value:         direction.Value(),
			})
			userVote = &direction
		case existing.Value == direction.Value():
			outcome = outcomeToggleOff
			err = uow.Votes.Delete(ctx, existing.ID)
		default:
			outcome = outcomeFlip
			err = uow.Votes.UpdateValue(ctx, existing.ID, direction.Value())
			userVote = &direction
		}
		if err != nil {
			return err
		}

		summary, err = uow.Votes.Summary(ctx, publicationID)
		if err != nil {
			return err
		}
		summary.UserVote = userVote
		return nil
	})

	return summary, outcome, err
}

func (s *service) GetVotes(ctx context.Context, actor *domain.User, publicationID uuid.UUID) (*domain.VoteSummary, error) {
	if _, err := s.requirePublication(ctx, publicationID); err != nil {
		return nil, err
	}

	summary, err := s.voteRepo.Summary(ctx, publicationID)
	if err != nil {
		return nil, err
	}

	if actor != nil {
		mine, err := s.voteRepo.Get(ctx, publicationID, actor.ID)
		if err != nil {
			return nil, err
		}
		if mine != nil {
			d := domain.DirectionFromValue(mine.Value)
			summary.UserVote = &d
		}
	}
	return summary, nil
}
