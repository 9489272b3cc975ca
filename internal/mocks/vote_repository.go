package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"plataforma-formacao/internal/domain"
)

type VoteRepository struct {
	mock.Mock
}

func (m *VoteRepository) Get(ctx context.Context, publicationID, voterID uuid.UUID) (*domain.Vote, error) {
	args := m.Called(ctx, publicationID, voterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vote), args.Error(1)
}

func (m *VoteRepository) GetForUpdate(ctx context.Context, publicationID, voterID uuid.UUID) (*domain.Vote, error) {
	args := m.Called(ctx, publicationID, voterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vote), args.Error(1)
}

func (m *VoteRepository) Create(ctx context.Context, vote *domain.Vote) error {
	args := m.Called(ctx, vote)
	return args.Error(0)
}

func (m *VoteRepository) UpdateValue(ctx context.Context, id uuid.UUID, value int) error {
	args := m.Called(ctx, id, value)
	return args.Error(0)
}

func (m *VoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *VoteRepository) Summary(ctx context.Context, publicationID uuid.UUID) (*domain.VoteSummary, error) {
	args := m.Called(ctx, publicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VoteSummary), args.Error(1)
}
