package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"plataforma-formacao/internal/domain"
)

type PublicationRepository interface {
	Create(ctx context.Context, pub *domain.Publication) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Publication, error)
	LockByID(ctx context.Context, id uuid.UUID) (*domain.Publication, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	ListRankedByForumTopic(ctx context.Context, forumTopicID uuid.UUID, params domain.OffsetParams) ([]domain.Publication, int64, error)
}

type publicationRepository struct {
	db Querier
}

func NewPublicationRepository(db Querier) PublicationRepository {
	return &publicationRepository{db: db}
}

const publicationWithVotes = `
	SELECT
		p.publication_id, p.forum_topic_id, p.author_id, p.title, p.body, p.is_active, p.created_at,
		COALESCE(SUM(CASE WHEN v.value > 0 THEN 1 ELSE 0 END), 0) AS upvotes,
		COALESCE(SUM(CASE WHEN v.value < 0 THEN 1 ELSE 0 END), 0) AS downvotes
	FROM publications p
	LEFT JOIN votes v ON v.publication_id = p.publication_id`

func (r *publicationRepository) Create(ctx context.Context, pub *domain.Publication) error {
	query := `
		INSERT INTO publications (publication_id, forum_topic_id, author_id, title, body, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		pub.ID, pub.ForumTopicID, pub.AuthorID, pub.Title, pub.Body, pub.IsActive,
	).Scan(&pub.CreatedAt)
}

func (r *publicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Publication, error) {
	var pub domain.Publication
	query := publicationWithVotes + `
		WHERE p.publication_id = $1
		GROUP BY p.publication_id`

	err := r.db.GetContext(ctx, &pub, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pub, nil
}

func (r *publicationRepository) LockByID(ctx context.Context, id uuid.UUID) (*domain.Publication, error) {
	var pub domain.Publication
	query := `
		SELECT publication_id, forum_topic_id, author_id, title, body, is_active, created_at
		FROM publications
		WHERE publication_id = $1
		FOR UPDATE`

	err := r.db.GetContext(ctx, &pub, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pub, nil
}

func (r *publicationRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE publications SET is_active = false WHERE publication_id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// ListRankedByForumTopic orders active publications by score, then newest, then
// fewest downvotes.
func (r *publicationRepository) ListRankedByForumTopic(ctx context.Context, forumTopicID uuid.UUID, params domain.OffsetParams) ([]domain.Publication, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM publications WHERE forum_topic_id = $1 AND is_active = true`
	if err := r.db.GetContext(ctx, &total, countQuery, forumTopicID); err != nil {
		return nil, 0, err
	}

	query := publicationWithVotes + `
		WHERE p.forum_topic_id = $1 AND p.is_active = true
		GROUP BY p.publication_id
		ORDER BY (COALESCE(SUM(v.value), 0)) DESC, p.created_at DESC, downvotes ASC
		LIMIT $2 OFFSET $3`

	var pubs []domain.Publication
	err := r.db.SelectContext(ctx, &pubs, query, forumTopicID, params.Limit, params.Offset)
	return pubs, total, err
}
