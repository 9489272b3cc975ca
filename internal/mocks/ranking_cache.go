package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"plataforma-formacao/internal/domain"
)

type RankingCache struct {
	mock.Mock
}

func (m *RankingCache) Get(ctx context.Context, forumTopicID uuid.UUID, params domain.OffsetParams) (*domain.OffsetPage[domain.Publication], bool) {
	args := m.Called(ctx, forumTopicID, params)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.OffsetPage[domain.Publication]), args.Bool(1)
}

func (m *RankingCache) Set(ctx context.Context, forumTopicID uuid.UUID, params domain.OffsetParams, page domain.OffsetPage[domain.Publication]) {
	m.Called(ctx, forumTopicID, params, page)
}

func (m *RankingCache) Invalidate(ctx context.Context, forumTopicID uuid.UUID) {
	m.Called(ctx, forumTopicID)
}
