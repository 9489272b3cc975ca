package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID        `json:"id" db:"notification_id"`
	UserID    uuid.UUID        `json:"id_utilizador" db:"user_id"`
	Type      NotificationType `json:"tipo" db:"type"`
	Title     string           `json:"titulo" db:"title"`
	Message   string           `json:"mensagem" db:"message"`
	Data      json.RawMessage  `json:"dados,omitempty" db:"data"`
	IsRead    bool             `json:"lida" db:"is_read"`
	ReadAt    *time.Time       `json:"data_leitura,omitempty" db:"read_at"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

type NotificationType string

const (
	NotifCommentReply   NotificationType = "COMMENT_REPLY"
	NotifReportCreated  NotificationType = "REPORT_CREATED"
	NotifReportResolved NotificationType = "REPORT_RESOLVED"
	NotifContentHidden  NotificationType = "CONTENT_HIDDEN"
)
