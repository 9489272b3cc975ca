package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"plataforma-formacao/internal/domain"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, params domain.OffsetParams) ([]domain.AuditLog, int64, error)
}

type auditLogRepository struct {
	db Querier
}

func NewAuditLogRepository(db Querier) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	query := `
		INSERT INTO audit_logs (audit_id, user_id, action, entity_type, entity_id, old_value, new_value, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		log.ID, log.UserID, log.Action, log.EntityType, log.EntityID,
		log.OldValue, log.NewValue, log.IPAddress, log.UserAgent,
	).Scan(&log.CreatedAt)
}

func (r *auditLogRepository) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, params domain.OffsetParams) ([]domain.AuditLog, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM audit_logs WHERE entity_type = $1 AND entity_id = $2`
	if err := r.db.GetContext(ctx, &total, countQuery, entityType, entityID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT al.*, u.full_name AS user_name
		FROM audit_logs al
		LEFT JOIN users u ON u.user_id = al.user_id
		WHERE al.entity_type = $1 AND al.entity_id = $2
		ORDER BY al.created_at DESC
		LIMIT $3 OFFSET $4`

	var logs []domain.AuditLog
	err := r.db.SelectContext(ctx, &logs, query, entityType, entityID, params.Limit, params.Offset)
	return logs, total, err
}

// CreateAuditLog marshals the before/after values and stores the entry.
func CreateAuditLog(ctx context.Context, repo AuditLogRepository, input domain.CreateAuditLogInput) error {
	oldValueJSON, err := json.Marshal(input.OldValue)
	if err != nil {
		return err
	}
	newValueJSON, err := json.Marshal(input.NewValue)
	if err != nil {
		return err
	}

	return repo.Create(ctx, &domain.AuditLog{
		ID:         uuid.New(),
		UserID:     input.UserID,
		Action:     input.Action,
		EntityType: input.EntityType,
		EntityID:   input.EntityID,
		OldValue:   oldValueJSON,
		NewValue:   newValueJSON,
		IPAddress:  input.IPAddress,
		UserAgent:  input.UserAgent,
	})
}
