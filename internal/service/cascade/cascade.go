// Package cascade propagates a hide from one entity to everything that depends on it.
// Both functions expect to run inside a transaction.
package cascade

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"plataforma-formacao/internal/domain"
	"plataforma-formacao/internal/observability"
	"plataforma-formacao/internal/repository"
	"plataforma-formacao/internal/service/commenttree"
)

const (
	TriggerDelete = "delete"
	TriggerReport = "report"
)

type CommentResult struct {
	Target  *domain.Comment
	Closure []uuid.UUID
	Hidden  int64
}

// HideComment hides the comment and all of its descendants. The publication's comments
// are read with FOR UPDATE so the closure matches what is written. A delete whose
// target is no longer visible under the lock fails with ErrCommentNotFound.
func HideComment(ctx context.Context, uow *repository.UnitOfWork, commentID uuid.UUID, trigger string, opts ...commenttree.Option) (*CommentResult, error) {
	target, err := uow.Comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("load comment: %w", err)
	}
	if target == nil {
		return nil, domain.ErrCommentNotFound
	}

	rows, err := uow.Comments.LockByPublication(ctx, target.PublicationID)
	if err != nil {
		return nil, fmt.Errorf("lock comments: %w", err)
	}

	forest := commenttree.Build(rows, opts...)
	// a concurrent delete may have hidden the comment or an ancestor since it was read
	if trigger == TriggerDelete && !forest.Visible(commentID) {
		return nil, domain.ErrCommentNotFound
	}

	closure := forest.Closure(commentID)
	if len(closure) == 0 {
		closure = []uuid.UUID{commentID}
	}

	hidden, err := uow.Comments.HideMany(ctx, closure)
	if err != nil {
		return nil, fmt.Errorf("hide comments: %w", err)
	}
	observability.CommentsHidden.WithLabelValues(trigger).Add(float64(hidden))

	return &CommentResult{Target: target, Closure: closure, Hidden: hidden}, nil
}

type PublicationResult struct {
	Publication       *domain.Publication
	AttachmentsHidden int64
}

// HidePublication deactivates the publication and its attachments. Its comments stay
// untouched; they become unreachable through the publication's chain.
func HidePublication(ctx context.Context, uow *repository.UnitOfWork, publicationID uuid.UUID) (*PublicationResult, error) {
	pub, err := uow.Publications.LockByID(ctx, publicationID)
	if err != nil {
		return nil, fmt.Errorf("lock publication: %w", err)
	}
	if pub == nil {
		return nil, domain.ErrPublicationNotFound
	}

	if err := uow.Publications.Deactivate(ctx, publicationID); err != nil {
		return nil, fmt.Errorf("deactivate publication: %w", err)
	}

	n, err := uow.Attachments.DeactivateByPublication(ctx, publicationID)
	if err != nil {
		return nil, fmt.Errorf("deactivate attachments: %w", err)
	}

	pub.IsActive = false
	return &PublicationResult{Publication: pub, AttachmentsHidden: n}, nil
}
