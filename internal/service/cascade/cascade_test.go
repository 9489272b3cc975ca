package cascade_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"plataforma-formacao/internal/domain"
	"plataforma-formacao/internal/mocks"
	"plataforma-formacao/internal/repository"
	"plataforma-formacao/internal/service/cascade"
)

func TestHideComment_HidesExactlyTheClosure(t *testing.T) {
	ctx := context.Background()
	comments := new(mocks.CommentRepository)
	uow := &repository.UnitOfWork{Comments: comments}

	pubID := uuid.New()
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	now := time.Now()
	rows := []domain.Comment{
		{ID: a, PublicationID: pubID, CreatedAt: now},
		{ID: b, PublicationID: pubID, ParentID: &a, CreatedAt: now.Add(time.Second)},
		{ID: c, PublicationID: pubID, ParentID: &b, CreatedAt: now.Add(2 * time.Second)},
		{ID: d, PublicationID: pubID, ParentID: &a, CreatedAt: now.Add(3 * time.Second)},
	}

	comments.On("GetByID", ctx, b).Return(&rows[1], nil).Once()
	comments.On("LockByPublication", ctx, pubID).Return(rows, nil).Once()
	comments.On("HideMany", ctx, mock.MatchedBy(func(ids []uuid.UUID) bool {
		return len(ids) == 2 && ((ids[0] == b && ids[1] == c) || (ids[0] == c && ids[1] == b))
	})).Return(int64(2), nil).Once()

	res, err := cascade.HideComment(ctx, uow, b, cascade.TriggerDelete)

	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Hidden)
	assert.NotContains(t, res.Closure, a)
	assert.NotContains(t, res.Closure, d)
	comments.AssertExpectations(t)
}

func TestHideComment_NotFound(t *testing.T) {
	ctx := context.Background()
	comments := new(mocks.CommentRepository)
	uow := &repository.UnitOfWork{Comments: comments}
	id := uuid.New()

	comments.On("GetByID", ctx, id).Return(nil, nil).Once()

	_, err := cascade.HideComment(ctx, uow, id, cascade.TriggerReport)

	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
	comments.AssertNotCalled(t, "HideMany", mock.Anything, mock.Anything)
}

func TestHideComment_DeleteOfAlreadyHidden(t *testing.T) {
	ctx := context.Background()
	pubID := uuid.New()
	a, b := uuid.New(), uuid.New()
	now := time.Now()

	t.Run("Target hidden by a concurrent delete", func(t *testing.T) {
		comments := new(mocks.CommentRepository)
		uow := &repository.UnitOfWork{Comments: comments}
		stale := domain.Comment{ID: a, PublicationID: pubID, CreatedAt: now}
		locked := []domain.Comment{{ID: a, PublicationID: pubID, Hidden: true, CreatedAt: now}}
		comments.On("GetByID", ctx, a).Return(&stale, nil).Once()
		comments.On("LockByPublication", ctx, pubID).Return(locked, nil).Once()

		_, err := cascade.HideComment(ctx, uow, a, cascade.TriggerDelete)

		assert.ErrorIs(t, err, domain.ErrCommentNotFound)
		comments.AssertNotCalled(t, "HideMany", mock.Anything, mock.Anything)
	})

	t.Run("Ancestor hidden", func(t *testing.T) {
		comments := new(mocks.CommentRepository)
		uow := &repository.UnitOfWork{Comments: comments}
		rows := []domain.Comment{
			{ID: a, PublicationID: pubID, Hidden: true, CreatedAt: now},
			{ID: b, PublicationID: pubID, ParentID: &a, CreatedAt: now.Add(time.Second)},
		}
		comments.On("GetByID", ctx, b).Return(&rows[1], nil).Once()
		comments.On("LockByPublication", ctx, pubID).Return(rows, nil).Once()

		_, err := cascade.HideComment(ctx, uow, b, cascade.TriggerDelete)

		assert.ErrorIs(t, err, domain.ErrCommentNotFound)
		comments.AssertNotCalled(t, "HideMany", mock.Anything, mock.Anything)
	})

	t.Run("Report approval still hides", func(t *testing.T) {
		comments := new(mocks.CommentRepository)
		uow := &repository.UnitOfWork{Comments: comments}
		rows := []domain.Comment{{ID: a, PublicationID: pubID, Hidden: true, CreatedAt: now}}
		comments.On("GetByID", ctx, a).Return(&rows[0], nil).Once()
		comments.On("LockByPublication", ctx, pubID).Return(rows, nil).Once()
		comments.On("HideMany", ctx, []uuid.UUID{a}).Return(int64(0), nil).Once()

		res, err := cascade.HideComment(ctx, uow, a, cascade.TriggerReport)

		require.NoError(t, err)
		assert.Zero(t, res.Hidden)
		comments.AssertExpectations(t)
	})
}

func TestHidePublication(t *testing.T) {
	ctx := context.Background()
	pubs := new(mocks.PublicationRepository)
	attachments := new(mocks.AttachmentRepository)
	uow := &repository.UnitOfWork{Publications: pubs, Attachments: attachments}
	pubID := uuid.New()

	t.Run("Deactivates publication and attachments", func(t *testing.T) {
		pubs.On("LockByID", ctx, pubID).Return(&domain.Publication{ID: pubID, IsActive: true}, nil).Once()
		pubs.On("Deactivate", ctx, pubID).Return(nil).Once()
		attachments.On("DeactivateByPublication", ctx, pubID).Return(int64(2), nil).Once()

		res, err := cascade.HidePublication(ctx, uow, pubID)

		require.NoError(t, err)
		assert.False(t, res.Publication.IsActive)
		assert.Equal(t, int64(2), res.AttachmentsHidden)
	})

	t.Run("Propagates storage errors", func(t *testing.T) {
		boom := errors.New("connection reset")
		pubs.On("LockByID", ctx, pubID).Return(&domain.Publication{ID: pubID, IsActive: true}, nil).Once()
		pubs.On("Deactivate", ctx, pubID).Return(boom).Once()

		_, err := cascade.HidePublication(ctx, uow, pubID)

		assert.ErrorIs(t, err, boom)
	})

	t.Run("Missing publication", func(t *testing.T) {
		missing := uuid.New()
		pubs.On("LockByID", ctx, missing).Return(nil, nil).Once()

		_, err := cascade.HidePublication(ctx, uow, missing)

		assert.ErrorIs(t, err, domain.ErrPublicationNotFound)
	})
}
