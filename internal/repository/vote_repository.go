package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"plataforma-formacao/internal/domain"
)

type VoteRepository interface {
	Get(ctx context.Context, publicationID, voterID uuid.UUID) (*domain.Vote, error)
	GetForUpdate(ctx context.Context, publicationID, voterID uuid.UUID) (*domain.Vote, error)
	Create(ctx context.Context, vote *domain.Vote) error
	UpdateValue(ctx context.Context, id uuid.UUID, value int) error
	Delete(ctx context.Context, id uuid.UUID) error
	Summary(ctx context.Context, publicationID uuid.UUID) (*domain.VoteSummary, error)
}

type voteRepository struct {
	db Querier
}

func NewVoteRepository(db Querier) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) Get(ctx context.Context, publicationID, voterID uuid.UUID) (*domain.Vote, error) {
	return r.get(ctx, `
		SELECT vote_id, publication_id, voter_id, value, created_at
		FROM votes WHERE publication_id = $1 AND voter_id = $2`, publicationID, voterID)
}

func (r *voteRepository) GetForUpdate(ctx context.Context, publicationID, voterID uuid.UUID) (*domain.Vote, error) {
	return r.get(ctx, `
		SELECT vote_id, publication_id, voter_id, value, created_at
		FROM votes WHERE publication_id = $1 AND voter_id = $2
		FOR UPDATE`, publicationID, voterID)
}

func (r *voteRepository) get(ctx context.Context, query string, publicationID, voterID uuid.UUID) (*domain.Vote, error) {
	var vote domain.Vote
	err := r.db.GetContext(ctx, &vote, query, publicationID, voterID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

func (r *voteRepository) Create(ctx context.Context, vote *domain.Vote) error {
	query := `
		INSERT INTO votes (vote_id, publication_id, voter_id, value)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		vote.ID, vote.PublicationID, vote.VoterID, vote.Value,
	).Scan(&vote.CreatedAt)
}

func (r *voteRepository) UpdateValue(ctx context.Context, id uuid.UUID, value int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE votes SET value = $2 WHERE vote_id = $1`, id, value)
	return err
}

func (r *voteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM votes WHERE vote_id = $1`, id)
	return err
}

func (r *voteRepository) Summary(ctx context.Context, publicationID uuid.UUID) (*domain.VoteSummary, error) {
	var summary domain.VoteSummary
	query := `
		SELECT
			COUNT(*) FILTER (WHERE value > 0) AS upvotes,
			COUNT(*) FILTER (WHERE value < 0) AS downvotes
		FROM votes
		WHERE publication_id = $1`

	err := r.db.QueryRowxContext(ctx, query, publicationID).Scan(&summary.Upvotes, &summary.Downvotes)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
