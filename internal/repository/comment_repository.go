package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"plataforma-formacao/internal/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ListByPublication(ctx context.Context, publicationID uuid.UUID) ([]domain.Comment, error)
	LockByPublication(ctx context.Context, publicationID uuid.UUID) ([]domain.Comment, error)
	HideMany(ctx context.Context, ids []uuid.UUID) (int64, error)
}

type commentRepository struct {
	db Querier
}

func NewCommentRepository(db Querier) CommentRepository {
	return &commentRepository{db: db}
}

type commentRow struct {
	domain.Comment
	AuthorName   sql.NullString `db:"author_full_name"`
	AuthorAvatar *string        `db:"author_avatar_url"`
}

func (r commentRow) toDomain() domain.Comment {
	c := r.Comment
	if r.AuthorName.Valid {
		c.Author = &domain.CommentAuthor{
			ID:        c.AuthorID,
			FullName:  r.AuthorName.String,
			AvatarURL: r.AuthorAvatar,
		}
	}
	return c
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (comment_id, publication_id, author_id, parent_id, body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		comment.ID, comment.PublicationID, comment.AuthorID, comment.ParentID, comment.Body,
	).Scan(&comment.CreatedAt)
}

func (r *commentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var comment domain.Comment
	query := `
		SELECT comment_id, publication_id, author_id, parent_id, body, hidden, created_at
		FROM comments WHERE comment_id = $1`

	err := r.db.GetContext(ctx, &comment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPublication returns every comment of the publication, hidden ones included,
// oldest first. Filtering is left to the tree engine.
func (r *commentRepository) ListByPublication(ctx context.Context, publicationID uuid.UUID) ([]domain.Comment, error) {
	query := `
		SELECT
			c.comment_id, c.publication_id, c.author_id, c.parent_id, c.body, c.hidden, c.created_at,
			u.full_name AS author_full_name, u.avatar_url AS author_avatar_url
		FROM comments c
		LEFT JOIN users u ON u.user_id = c.author_id
		WHERE c.publication_id = $1
		ORDER BY c.created_at ASC`

	var rows []commentRow
	if err := r.db.SelectContext(ctx, &rows, query, publicationID); err != nil {
		return nil, err
	}

	comments := make([]domain.Comment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, row.toDomain())
	}
	return comments, nil
}

// LockByPublication reads the publication's comments with FOR UPDATE so a cascade
// sees a stable tree until the transaction ends.
func (r *commentRepository) LockByPublication(ctx context.Context, publicationID uuid.UUID) ([]domain.Comment, error) {
	query := `
		SELECT comment_id, publication_id, author_id, parent_id, body, hidden, created_at
		FROM comments
		WHERE publication_id = $1
		ORDER BY created_at ASC
		FOR UPDATE`

	var comments []domain.Comment
	err := r.db.SelectContext(ctx, &comments, query, publicationID)
	return comments, err
}

func (r *commentRepository) HideMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = id.String()
	}

	query := `UPDATE comments SET hidden = true WHERE comment_id = ANY($1::uuid[]) AND hidden = false`
	result, err := r.db.ExecContext(ctx, query, pq.Array(strIDs))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
