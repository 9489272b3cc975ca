package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID         uuid.UUID       `json:"id" db:"audit_id"`
	UserID     uuid.UUID       `json:"id_utilizador" db:"user_id"`
	UserName   *string         `json:"nome_utilizador,omitempty" db:"user_name"`
	Action     string          `json:"acao" db:"action"`
	EntityType string          `json:"tipo_entidade" db:"entity_type"`
	EntityID   uuid.UUID       `json:"id_entidade" db:"entity_id"`
	OldValue   json.RawMessage `json:"valor_antigo,omitempty" db:"old_value"`
	NewValue   json.RawMessage `json:"valor_novo,omitempty" db:"new_value"`
	IPAddress  *string         `json:"ip,omitempty" db:"ip_address"`
	UserAgent  *string         `json:"user_agent,omitempty" db:"user_agent"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

type CreateAuditLogInput struct {
	UserID     uuid.UUID
	Action     string
	EntityType string
	EntityID   uuid.UUID
	OldValue   interface{}
	NewValue   interface{}
	IPAddress  *string
	UserAgent  *string
}

// RequestMeta carries the caller's network details into audit entries.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

func (m RequestMeta) IPAddressPtr() *string {
	if m.IPAddress == "" {
		return nil
	}
	return &m.IPAddress
}

func (m RequestMeta) UserAgentPtr() *string {
	if m.UserAgent == "" {
		return nil
	}
	return &m.UserAgent
}

const (
	AuditHideComment     = "HIDE_COMMENT"
	AuditResolveReport   = "RESOLVE_REPORT"
	AuditHidePublication = "HIDE_PUBLICATION"
)
