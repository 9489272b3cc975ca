package domain

import (
	"time"

	"github.com/google/uuid"
)

type Publication struct {
	ID           uuid.UUID `json:"id_publicacao" db:"publication_id"`
	ForumTopicID uuid.UUID `json:"id_topico" db:"forum_topic_id"`
	AuthorID     uuid.UUID `json:"id_utilizador" db:"author_id"`
	Title        string    `json:"titulo" db:"title"`
	Body         string    `json:"texto" db:"body"`
	IsActive     bool      `json:"ativo" db:"is_active"`
	CreatedAt    time.Time `json:"data_criacao" db:"created_at"`

	Upvotes     int64        `json:"upvotes" db:"upvotes"`
	Downvotes   int64        `json:"downvotes" db:"downvotes"`
	Attachments []Attachment `json:"anexos,omitempty" db:"-"`
}

type CreatePublicationInput struct {
	ForumTopicID uuid.UUID `json:"id_topico" validate:"required"`
	Title        string    `json:"titulo" validate:"required,min=3,max=150"`
	Body         string    `json:"texto" validate:"required,max=5000"`
}

type Attachment struct {
	ID            uuid.UUID `json:"id" db:"attachment_id"`
	PublicationID uuid.UUID `json:"id_publicacao" db:"publication_id"`
	UploadedBy    uuid.UUID `json:"id_utilizador" db:"uploaded_by"`
	FileName      string    `json:"nome_ficheiro" db:"file_name"`
	FileSize      int64     `json:"tamanho" db:"file_size"`
	MimeType      string    `json:"tipo" db:"mime_type"`
	StoragePath   string    `json:"-" db:"storage_path"`
	URL           string    `json:"url" db:"-"`
	IsActive      bool      `json:"ativo" db:"is_active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
