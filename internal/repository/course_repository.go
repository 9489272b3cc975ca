package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"plataforma-formacao/internal/domain"
)

type CourseRepository interface {
	LockByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	DecrementVacancies(ctx context.Context, id uuid.UUID) error
}

type courseRepository struct {
	db Querier
}

func NewCourseRepository(db Querier) CourseRepository {
	return &courseRepository{db: db}
}

const courseColumns = `course_id, topic_id, instructor_id, title, kind, is_active, is_visible, start_date, end_date, vacancies, created_at`

// LockByID reads the course with FOR UPDATE; it must run inside a transaction.
func (r *courseRepository) LockByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	var course domain.Course
	query := `SELECT ` + courseColumns + ` FROM courses WHERE course_id = $1 FOR UPDATE`
	err := r.db.GetContext(ctx, &course, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// DecrementVacancies takes one seat. Courses without a vacancy limit are left untouched;
// a course with no seats left yields domain.ErrNoVacancies.
func (r *courseRepository) DecrementVacancies(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE courses SET vacancies = vacancies - 1
		WHERE course_id = $1 AND (vacancies IS NULL OR vacancies > 0)`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNoVacancies
	}
	return nil
}
