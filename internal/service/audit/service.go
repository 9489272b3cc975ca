package audit

import (
	"context"

	"github.com/google/uuid"

	"plataforma-formacao/internal/domain"
	"plataforma-formacao/internal/repository"
)

type Service interface {
	ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, params domain.OffsetParams) (domain.OffsetPage[domain.AuditLog], error)
}

type service struct {
	auditRepo repository.AuditLogRepository
}

func NewService(auditRepo repository.AuditLogRepository) Service {
	return &service{
		auditRepo: auditRepo,
	}
}

func (s *service) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, params domain.OffsetParams) (domain.OffsetPage[domain.AuditLog], error) {
	params.Validate()
	logs, total, err := s.auditRepo.ListByEntity(ctx, entityType, entityID, params)
	if err != nil {
		return domain.OffsetPage[domain.AuditLog]{}, err
	}
	return domain.NewOffsetPage(logs, params, total), nil
}
