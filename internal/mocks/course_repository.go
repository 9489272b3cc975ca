package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"plataforma-formacao/internal/domain"
)

type CourseRepository struct {
	mock.Mock
}

func (m *CourseRepository) LockByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *CourseRepository) DecrementVacancies(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type EnrollmentRepository struct {
	mock.Mock
}

func (m *EnrollmentRepository) Create(ctx context.Context, enrollment *domain.Enrollment) error {
	args := m.Called(ctx, enrollment)
	return args.Error(0)
}

func (m *EnrollmentRepository) Exists(ctx context.Context, courseID, traineeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, courseID, traineeID)
	return args.Bool(0), args.Error(1)
}
