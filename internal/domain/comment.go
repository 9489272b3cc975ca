package domain

import (
	"time"

	"github.com/google/uuid"
)

const MaxCommentLength = 256

type Comment struct {
	ID            uuid.UUID  `json:"id_comentario" db:"comment_id"`
	PublicationID uuid.UUID  `json:"id_publicacao" db:"publication_id"`
	AuthorID      uuid.UUID  `json:"id_utilizador" db:"author_id"`
	ParentID      *uuid.UUID `json:"parent_id" db:"parent_id"`
	Body          string     `json:"descricao_comentario" db:"body"`
	Hidden        bool       `json:"-" db:"hidden"`
	CreatedAt     time.Time  `json:"data_criacao" db:"created_at"`

	Author  *CommentAuthor `json:"utilizador,omitempty" db:"-"`
	Replies []*Comment     `json:"replies,omitempty" db:"-"`
}

type CommentAuthor struct {
	ID        uuid.UUID `json:"id_utilizador"`
	FullName  string    `json:"nome"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
}

type CreateCommentInput struct {
	PublicationID uuid.UUID  `json:"id_publicacao" validate:"required"`
	AuthorID      uuid.UUID  `json:"id_utilizador"`
	Body          string     `json:"descricao_comentario" validate:"required,notblank,max=256"`
	ParentID      *uuid.UUID `json:"parent_id"`
}
