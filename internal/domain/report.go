package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type ReportState string

const (
	ReportPending  ReportState = "pendente"
	ReportApproved ReportState = "aprovado"
	ReportRejected ReportState = "rejeitado"
	ReportResolved ReportState = "resolvido"
)

type TargetKind string

const (
	TargetPublication TargetKind = "publicacao"
	TargetComment     TargetKind = "comentario"
)

// ReportTarget is either a publication or a comment. The zero value is invalid;
// build one with PublicationTarget, CommentTarget or NewReportTarget.
type ReportTarget struct {
	kind TargetKind
	id   uuid.UUID
}

func PublicationTarget(id uuid.UUID) ReportTarget {
	return ReportTarget{kind: TargetPublication, id: id}
}

func CommentTarget(id uuid.UUID) ReportTarget {
	return ReportTarget{kind: TargetComment, id: id}
}

// NewReportTarget accepts the two optional ids of a request body and requires exactly one.
func NewReportTarget(publicationID, commentID *uuid.UUID) (ReportTarget, error) {
	hasPublication := publicationID != nil && *publicationID != uuid.Nil
	hasComment := commentID != nil && *commentID != uuid.Nil

	switch {
	case hasPublication && !hasComment:
		return PublicationTarget(*publicationID), nil
	case hasComment && !hasPublication:
		return CommentTarget(*commentID), nil
	default:
		return ReportTarget{}, ErrInvalidReportTarget
	}
}

func (t ReportTarget) Kind() TargetKind { return t.kind }
func (t ReportTarget) ID() uuid.UUID    { return t.id }

// Columns splits the target into the two nullable foreign keys stored in the reports table.
func (t ReportTarget) Columns() (publicationID, commentID *uuid.UUID) {
	id := t.id
	switch t.kind {
	case TargetPublication:
		return &id, nil
	case TargetComment:
		return nil, &id
	default:
		return nil, nil
	}
}

func (t ReportTarget) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind TargetKind `json:"tipo"`
		ID   uuid.UUID  `json:"id"`
	}{t.kind, t.id})
}

type Report struct {
	ID          uuid.UUID    `json:"id_denuncia"`
	ReporterID  uuid.UUID    `json:"id_utilizador"`
	Target      ReportTarget `json:"alvo"`
	Reason      string       `json:"motivo"`
	State       ReportState  `json:"estado"`
	ActionTaken *string      `json:"acao_tomada,omitempty"`
	ResolverID  *uuid.UUID   `json:"id_gestor,omitempty"`
	ResolvedAt  *time.Time   `json:"data_resolucao,omitempty"`
	CreatedAt   time.Time    `json:"data_criacao"`
}

type CreateReportInput struct {
	PublicationID *uuid.UUID `json:"id_publicacao"`
	CommentID     *uuid.UUID `json:"idcomentario"`
	Reason        string     `json:"motivo" validate:"required,notblank,max=500"`
}

type ResolveReportInput struct {
	State       ReportState `json:"estado" validate:"required,oneof=aprovado rejeitado resolvido"`
	ActionTaken string      `json:"acao_tomada" validate:"max=500"`
}
