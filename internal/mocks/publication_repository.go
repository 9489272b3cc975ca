package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"plataforma-formacao/internal/domain"
)

type PublicationRepository struct {
	mock.Mock
}

func (m *PublicationRepository) Create(ctx context.Context, pub *domain.Publication) error {
	args := m.Called(ctx, pub)
	return args.Error(0)
}

func (m *PublicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Publication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Publication), args.Error(1)
}

func (m *PublicationRepository) LockByID(ctx context.Context, id uuid.UUID) (*domain.Publication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Publication), args.Error(1)
}

func (m *PublicationRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *PublicationRepository) ListRankedByForumTopic(ctx context.Context, forumTopicID uuid.UUID, params domain.OffsetParams) ([]domain.Publication, int64, error) {
	args := m.Called(ctx, forumTopicID, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Publication), args.Get(1).(int64), args.Error(2)
}

type AttachmentRepository struct {
	mock.Mock
}

func (m *AttachmentRepository) Create(ctx context.Context, attachment *domain.Attachment) error {
	args := m.Called(ctx, attachment)
	return args.Error(0)
}

func (m *AttachmentRepository) ListByPublication(ctx context.Context, publicationID uuid.UUID) ([]domain.Attachment, error) {
	args := m.Called(ctx, publicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Attachment), args.Error(1)
}

func (m *AttachmentRepository) DeactivateByPublication(ctx context.Context, publicationID uuid.UUID) (int64, error) {
	args := m.Called(ctx, publicationID)
	return args.Get(0).(int64), args.Error(1)
}
