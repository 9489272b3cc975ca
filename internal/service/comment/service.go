package comment

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"plataforma-formacao/internal/domain"
	"plataforma-formacao/internal/pkg/validate"
	"plataforma-formacao/internal/repository"
	"plataforma-formacao/internal/service/cascade"
	"plataforma-formacao/internal/service/commenttree"
	"plataforma-formacao/internal/service/notification"
	"plataforma-formacao/internal/service/visibility"
)

type Service interface {
	Create(ctx context.Context, actor *domain.User, input domain.CreateCommentInput) (*domain.Comment, error)
	ListByPublication(ctx context.Context, publicationID uuid.UUID) ([]*domain.Comment, error)
	ListFlatByPublication(ctx context.Context, publicationID uuid.UUID) ([]domain.Comment, error)
	GetWithReplies(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	Delete(ctx context.Context, actor *domain.User, id uuid.UUID, meta domain.RequestMeta) error
	SetNotificationService(notifSvc notification.Service)
}

type service struct {
	commentRepo repository.CommentRepository
	tx          repository.Transactor
	visibility  visibility.Service
	notifSvc    notification.Service
	maxDepth    int
	logger      *slog.Logger
}

func NewService(
	commentRepo repository.CommentRepository,
	tx repository.Transactor,
	visibilitySvc visibility.Service,
	maxDepth int,
	logger *slog.Logger,
) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		commentRepo: commentRepo,
		tx:          tx,
		visibility:  visibilitySvc,
		maxDepth:    maxDepth,
		logger:      logger,
	}
}

func (s *service) SetNotificationService(notifSvc notification.Service) {
	s.notifSvc = notifSvc
}

func (s *service) treeOptions() []commenttree.Option {
	return []commenttree.Option{commenttree.WithMaxDepth(s.maxDepth), commenttree.WithLogger(s.logger)}
}

func (s *service) loadForest(ctx context.Context, publicationID uuid.UUID) (*commenttree.Forest, error) {
	visible, err := s.visibility.PublicationVisible(ctx, publicationID)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, domain.ErrPublicationNotFound
	}

	rows, err := s.commentRepo.ListByPublication(ctx, publicationID)
	if err != nil {
		return nil, err
	}
	return commenttree.Build(rows, s.treeOptions()...), nil
}

func (s *service) Create(ctx context.Context, actor *domain.User, input domain.CreateCommentInput) (*domain.Comment, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	if input.AuthorID != uuid.Nil && input.AuthorID != actor.ID {
		return nil, domain.ErrForbidden
	}

	forest, err := s.loadForest(ctx, input.PublicationID)
	if err != nil {
		return nil, err
	}

	var parent *domain.Comment
	if input.ParentID != nil {
		p, ok := forest.Lookup(*input.ParentID)
		if !ok {
			return nil, domain.ErrInvalidParent
		}
		if !forest.Visible(p.ID) {
			return nil, domain.ErrCommentNotFound
		}
		parent = &p
	}

	comment := &domain.Comment{
		ID:            uuid.New(),
		PublicationID: input.PublicationID,
		AuthorID:      actor.ID,
		ParentID:      input.ParentID,
		Body:          input.Body,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	comment.Author = &domain.CommentAuthor{ID: actor.ID, FullName: actor.FullName, AvatarURL: actor.AvatarURL}

	if parent != nil && s.notifSvc != nil {
		reply := *comment
		go func() {
			if err := s.notifSvc.NotifyCommentReply(context.Background(), parent, &reply); err != nil {
				s.logger.Warn("failed to notify comment reply", "comment_id", reply.ID, "error", err)
			}
		}()
	}

	return comment, nil
}

// ListByPublication returns the visible comment forest of a publication.
func (s *service) ListByPublication(ctx context.Context, publicationID uuid.UUID) ([]*domain.Comment, error) {
	forest, err := s.loadForest(ctx, publicationID)
	if err != nil {
		return nil, err
	}
	return forest.Materialize(), nil
}

func (s *service) ListFlatByPublication(ctx context.Context, publicationID uuid.UUID) ([]domain.Comment, error) {
	forest, err := s.loadForest(ctx, publicationID)
	if err != nil {
		return nil, err
	}
	return forest.VisibleFlat(), nil
}

func (s *service) GetWithReplies(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	target, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if target == nil || target.Hidden {
		return nil, domain.ErrCommentNotFound
	}

	forest, err := s.loadForest(ctx, target.PublicationID)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, domain.ErrCommentNotFound
		}
		return nil, err
	}

	subtree, ok := forest.Subtree(id)
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	return subtree, nil
}

// Delete hides the comment and its whole reply subtree. Only the author or an active
// manager may do it, and only while no ancestor is hidden.
func (s *service) Delete(ctx context.Context, actor *domain.User, id uuid.UUID, meta domain.RequestMeta) error {
	target, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if target == nil || target.Hidden {
		return domain.ErrCommentNotFound
	}

	isAuthor := target.AuthorID == actor.ID && actor.IsActive
	if !isAuthor && !visibility.ActorHasRole(actor, domain.RoleManager) {
		return domain.ErrForbidden
	}

	forest, err := s.loadForest(ctx, target.PublicationID)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return domain.ErrCommentNotFound
		}
		return err
	}
	if !forest.Visible(id) {
		return domain.ErrCommentNotFound
	}

	return s.tx.WithinTx(ctx, func(uow *repository.UnitOfWork) error {
		res, err := cascade.HideComment(ctx, uow, id, cascade.TriggerDelete, s.treeOptions()...)
		if err != nil {
			return err
		}

		return repository.CreateAuditLog(ctx, uow.AuditLogs, domain.CreateAuditLogInput{
			UserID:     actor.ID,
			Action:     domain.AuditHideComment,
			EntityType: "comentario",
			EntityID:   id,
			OldValue:   map[string]interface{}{"hidden": false, "author_id": target.AuthorID},
			NewValue:   map[string]interface{}{"hidden": true, "closure": res.Closure},
			IPAddress:  meta.IPAddressPtr(),
			UserAgent:  meta.UserAgentPtr(),
		})
	})
}
