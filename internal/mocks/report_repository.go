package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"plataforma-formacao/internal/domain"
)

type ReportRepository struct {
	mock.Mock
}

func (m *ReportRepository) Create(ctx context.Context, report *domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *ReportRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *ReportRepository) ExistsPending(ctx context.Context, reporterID uuid.UUID, target domain.ReportTarget) (bool, error) {
	args := m.Called(ctx, reporterID, target)
	return args.Bool(0), args.Error(1)
}

func (m *ReportRepository) List(ctx context.Context, params domain.OffsetParams) ([]domain.Report, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Report), args.Get(1).(int64), args.Error(2)
}

func (m *ReportRepository) Resolve(ctx context.Context, report *domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}
