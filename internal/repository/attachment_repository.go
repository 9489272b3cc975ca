package repository

import (
	"context"

	"github.com/google/uuid"

	"plataforma-formacao/internal/domain"
)

type AttachmentRepository interface {
	Create(ctx context.Context, attachment *domain.Attachment) error
	ListByPublication(ctx context.Context, publicationID uuid.UUID) ([]domain.Attachment, error)
	DeactivateByPublication(ctx context.Context, publicationID uuid.UUID) (int64, error)
}

type attachmentRepository struct {
	db Querier
}

func NewAttachmentRepository(db Querier) AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) Create(ctx context.Context, attachment *domain.Attachment) error {
	query := `
		INSERT INTO attachments (attachment_id, publication_id, uploaded_by, file_name, file_size, mime_type, storage_path, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		attachment.ID, attachment.PublicationID, attachment.UploadedBy,
		attachment.FileName, attachment.FileSize, attachment.MimeType, attachment.StoragePath,
		attachment.IsActive,
	).Scan(&attachment.CreatedAt)
}

func (r *attachmentRepository) ListByPublication(ctx context.Context, publicationID uuid.UUID) ([]domain.Attachment, error) {
	query := `
		SELECT attachment_id, publication_id, uploaded_by, file_name, file_size, mime_type, storage_path, is_active, created_at
		FROM attachments
		WHERE publication_id = $1 AND is_active = true
		ORDER BY created_at ASC`

	var attachments []domain.Attachment
	err := r.db.SelectContext(ctx, &attachments, query, publicationID)
	return attachments, err
}

func (r *attachmentRepository) DeactivateByPublication(ctx context.Context, publicationID uuid.UUID) (int64, error) {
	query := `UPDATE attachments SET is_active = false WHERE publication_id = $1 AND is_active = true`
	result, err := r.db.ExecContext(ctx, query, publicationID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
