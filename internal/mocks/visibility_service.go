package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type VisibilityService struct {
	mock.Mock
}

func (m *VisibilityService) PublicationVisible(ctx context.Context, publicationID uuid.UUID) (bool, error) {
	args := m.Called(ctx, publicationID)
	return args.Bool(0), args.Error(1)
}

func (m *VisibilityService) ForumTopicVisible(ctx context.Context, forumTopicID uuid.UUID) (bool, error) {
	args := m.Called(ctx, forumTopicID)
	return args.Bool(0), args.Error(1)
}

func (m *VisibilityService) CourseVisible(ctx context.Context, courseID uuid.UUID) (bool, error) {
	args := m.Called(ctx, courseID)
	return args.Bool(0), args.Error(1)
}
