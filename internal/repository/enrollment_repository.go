package repository

import (
	"context"

	"github.com/google/uuid"

	"plataforma-formacao/internal/domain"
)

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *domain.Enrollment) error
	Exists(ctx context.Context, courseID, traineeID uuid.UUID) (bool, error)
}

type enrollmentRepository struct {
	db Querier
}

func NewEnrollmentRepository(db Querier) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *domain.Enrollment) error {
	query := `
		INSERT INTO enrollments (enrollment_id, course_id, trainee_id)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		enrollment.ID, enrollment.CourseID, enrollment.TraineeID,
	).Scan(&enrollment.CreatedAt)
}

func (r *enrollmentRepository) Exists(ctx context.Context, courseID, traineeID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM enrollments WHERE course_id = $1 AND trainee_id = $2)`
	err := r.db.GetContext(ctx, &exists, query, courseID, traineeID)
	return exists, err
}
