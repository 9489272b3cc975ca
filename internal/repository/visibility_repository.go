package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"plataforma-formacao/internal/domain"
)

// VisibilityRepository loads the active flags of an entity and its ancestors in one query.
// A nil chain means the entity does not exist.
type VisibilityRepository interface {
	PublicationChain(ctx context.Context, publicationID uuid.UUID) (*domain.PublicationChain, error)
	ForumTopicChain(ctx context.Context, forumTopicID uuid.UUID) (*domain.ForumTopicChain, error)
	CourseChain(ctx context.Context, courseID uuid.UUID) (*domain.CourseChain, error)
	HideExpiredCourse(ctx context.Context, courseID uuid.UUID) (bool, error)
}

type visibilityRepository struct {
	db Querier
}

func NewVisibilityRepository(db Querier) VisibilityRepository {
	return &visibilityRepository{db: db}
}

func (r *visibilityRepository) PublicationChain(ctx context.Context, publicationID uuid.UUID) (*domain.PublicationChain, error) {
	var chain domain.PublicationChain
	query := `
		SELECT
			p.is_active  AS publication_active,
			ft.is_active AS forum_topic_active,
			t.is_active  AS topic_active,
			a.is_active  AS area_active,
			c.is_active  AS category_active
		FROM publications p
		JOIN forum_topics ft ON ft.forum_topic_id = p.forum_topic_id
		JOIN topics t ON t.topic_id = ft.topic_id
		JOIN areas a ON a.area_id = t.area_id
		JOIN categories c ON c.category_id = a.category_id
		WHERE p.publication_id = $1`

	if err := r.db.GetContext(ctx, &chain, query, publicationID); err != nil {
		return nil, noRowsAsNil(err)
	}
	return &chain, nil
}

func (r *visibilityRepository) ForumTopicChain(ctx context.Context, forumTopicID uuid.UUID) (*domain.ForumTopicChain, error) {
	var chain domain.ForumTopicChain
	query := `
		SELECT
			ft.is_active AS forum_topic_active,
			t.is_active  AS topic_active,
			a.is_active  AS area_active,
			c.is_active  AS category_active
		FROM forum_topics ft
		JOIN topics t ON t.topic_id = ft.topic_id
		JOIN areas a ON a.area_id = t.area_id
		JOIN categories c ON c.category_id = a.category_id
		WHERE ft.forum_topic_id = $1`

	if err := r.db.GetContext(ctx, &chain, query, forumTopicID); err != nil {
		return nil, noRowsAsNil(err)
	}
	return &chain, nil
}

func (r *visibilityRepository) CourseChain(ctx context.Context, courseID uuid.UUID) (*domain.CourseChain, error) {
	var chain domain.CourseChain
	query := `
		SELECT
			co.is_active  AS course_active,
			co.is_visible AS course_visible,
			co.kind,
			co.end_date,
			t.is_active   AS topic_active,
			a.is_active   AS area_active,
			c.is_active   AS category_active
		FROM courses co
		JOIN topics t ON t.topic_id = co.topic_id
		JOIN areas a ON a.area_id = t.area_id
		JOIN categories c ON c.category_id = a.category_id
		WHERE co.course_id = $1`

	if err := r.db.GetContext(ctx, &chain, query, courseID); err != nil {
		return nil, noRowsAsNil(err)
	}
	return &chain, nil
}

// HideExpiredCourse flips is_visible off once. It reports whether this call made the change,
// so concurrent readers that race on the same expired course write only once.
func (r *visibilityRepository) HideExpiredCourse(ctx context.Context, courseID uuid.UUID) (bool, error) {
	query := `UPDATE courses SET is_visible = false WHERE course_id = $1 AND is_visible = true`
	result, err := r.db.ExecContext(ctx, query, courseID)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func noRowsAsNil(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	return err
}
