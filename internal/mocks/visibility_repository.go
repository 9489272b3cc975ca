package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"plataforma-formacao/internal/domain"
)

type VisibilityRepository struct {
	mock.Mock
}

func (m *VisibilityRepository) PublicationChain(ctx context.Context, publicationID uuid.UUID) (*domain.PublicationChain, error) {
	args := m.Called(ctx, publicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PublicationChain), args.Error(1)
}

func (m *VisibilityRepository) ForumTopicChain(ctx context.Context, forumTopicID uuid.UUID) (*domain.ForumTopicChain, error) {
	args := m.Called(ctx, forumTopicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ForumTopicChain), args.Error(1)
}

func (m *VisibilityRepository) CourseChain(ctx context.Context, courseID uuid.UUID) (*domain.CourseChain, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CourseChain), args.Error(1)
}

func (m *VisibilityRepository) HideExpiredCourse(ctx context.Context, courseID uuid.UUID) (bool, error) {
	args := m.Called(ctx, courseID)
	return args.Bool(0), args.Error(1)
}
