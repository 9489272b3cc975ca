package comment_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"plataforma-formacao/internal/domain"
	"plataforma-formacao/internal/mocks"
	"plataforma-formacao/internal/repository"
	"plataforma-formacao/internal/service/comment"
)

type fixture struct {
	comments   *mocks.CommentRepository
	txComments *mocks.CommentRepository
	audit      *mocks.AuditLogRepository
	visibility *mocks.VisibilityService
	notif      *mocks.NotificationService
	tx         *mocks.Transactor
	svc        comment.Service
}

func newFixture() *fixture {
	f := &fixture{
		comments:   new(mocks.CommentRepository),
		txComments: new(mocks.CommentRepository),
		audit:      new(mocks.AuditLogRepository),
		visibility: new(mocks.VisibilityService),
		notif:      new(mocks.NotificationService),
	}
	f.tx = &mocks.Transactor{UOW: &repository.UnitOfWork{Comments: f.txComments, AuditLogs: f.audit}}
	f.svc = comment.NewService(f.comments, f.tx, f.visibility, 32, nil)
	f.svc.SetNotificationService(f.notif)
	return f
}

func activeUser(roles ...domain.UserRole) *domain.User {
	u := &domain.User{ID: uuid.New(), FullName: "Utilizador", IsActive: true}
	for _, r := range roles {
		u.Roles = append(u.Roles, domain.RoleAssignment{UserID: u.ID, Role: r, IsActive: true})
	}
	return u
}

var t0 = time.Date(2024, 4, 2, 12, 0, 0, 0, time.UTC)

func row(id, pub uuid.UUID, author uuid.UUID, parent *uuid.UUID, minute int, hidden bool) domain.Comment {
	return domain.Comment{
		ID: id, PublicationID: pub, AuthorID: author, ParentID: parent,
		Body: "texto", Hidden: hidden, CreatedAt: t0.Add(time.Duration(minute) * time.Minute),
	}
}

func TestCommentService_Create(t *testing.T) {
	ctx := context.Background()
	pubID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		f := newFixture()
		actor := activeUser(domain.RoleTrainee)
		f.visibility.On("PublicationVisible", ctx, pubID).Return(true, nil).Once()
		f.comments.On("ListByPublication", ctx, pubID).Return([]domain.Comment{}, nil).Once()
		f.comments.On("Create", ctx, mock.MatchedBy(func(c *domain.Comment) bool {
			return c.PublicationID == pubID && c.AuthorID == actor.ID && c.ParentID == nil
		})).Return(nil).Once()

		c, err := f.svc.Create(ctx, actor, domain.CreateCommentInput{PublicationID: pubID, Body: "Olá a todos"})

		require.NoError(t, err)
		assert.Equal(t, "Olá a todos", c.Body)
		require.NotNil(t, c.Author)
		assert.Equal(t, actor.ID, c.Author.ID)
		f.comments.AssertExpectations(t)
	})

	t.Run("Forged author", func(t *testing.T) {
		f := newFixture()
		actor := activeUser()

		_, err := f.svc.Create(ctx, actor, domain.CreateCommentInput{
			PublicationID: pubID, AuthorID: uuid.New(), Body: "olá",
		})

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("Body too long", func(t *testing.T) {
		f := newFixture()
		long := make([]byte, domain.MaxCommentLength+1)
		for i := range long {
			long[i] = 'a'
		}

		_, err := f.svc.Create(ctx, activeUser(), domain.CreateCommentInput{PublicationID: pubID, Body: string(long)})

		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	})

	t.Run("Publication not visible", func(t *testing.T) {
		f := newFixture()
		f.visibility.On("PublicationVisible", ctx, pubID).Return(false, nil).Once()

		_, err := f.svc.Create(ctx, activeUser(), domain.CreateCommentInput{PublicationID: pubID, Body: "olá"})

		assert.ErrorIs(t, err, domain.ErrPublicationNotFound)
	})

	t.Run("Parent from another publication", func(t *testing.T) {
		f := newFixture()
		foreignParent := uuid.New()
		f.visibility.On("PublicationVisible", ctx, pubID).Return(true, nil).Once()
		f.comments.On("ListByPublication", ctx, pubID).Return([]domain.Comment{}, nil).Once()

		_, err := f.svc.Create(ctx, activeUser(), domain.CreateCommentInput{
			PublicationID: pubID, Body: "olá", ParentID: &foreignParent,
		})

		assert.ErrorIs(t, err, domain.ErrInvalidParent)
		f.comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Parent under a hidden ancestor", func(t *testing.T) {
		f := newFixture()
		root, child := uuid.New(), uuid.New()
		f.visibility.On("PublicationVisible", ctx, pubID).Return(true, nil).Once()
		f.comments.On("ListByPublication", ctx, pubID).Return([]domain.Comment{
			row(root, pubID, uuid.New(), nil, 0, true),
			row(child, pubID, uuid.New(), &root, 1, false),
		}, nil).Once()

		_, err := f.svc.Create(ctx, activeUser(), domain.CreateCommentInput{
			PublicationID: pubID, Body: "olá", ParentID: &child,
		})

		assert.ErrorIs(t, err, domain.ErrCommentNotFound)
	})

	t.Run("Reply notifies parent author", func(t *testing.T) {
		f := newFixture()
		parentAuthor := uuid.New()
		parentID := uuid.New()
		actor := activeUser()
		done := make(chan struct{})

		f.visibility.On("PublicationVisible", ctx, pubID).Return(true, nil).Once()
		f.comments.On("ListByPublication", ctx, pubID).Return([]domain.Comment{
			row(parentID, pubID, parentAuthor, nil, 0, false),
		}, nil).Once()
		f.comments.On("Create", ctx, mock.AnythingOfType("*domain.Comment")).Return(nil).Once()
		f.notif.On("NotifyCommentReply", mock.Anything,
			mock.MatchedBy(func(p *domain.Comment) bool { return p.ID == parentID }),
			mock.MatchedBy(func(r *domain.Comment) bool { return r.AuthorID == actor.ID }),
		).Run(func(mock.Arguments) { close(done) }).Return(nil).Once()

		_, err := f.svc.Create(ctx, actor, domain.CreateCommentInput{
			PublicationID: pubID, Body: "resposta", ParentID: &parentID,
		})
		require.NoError(t, err)

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("reply notification was not sent")
		}
	})
}

func TestCommentService_ListFiltersHiddenAncestors(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	pubID := uuid.New()
	root, hiddenReply, orphanedVisible := uuid.New(), uuid.New(), uuid.New()
	author := uuid.New()

	rows := []domain.Comment{
		row(root, pubID, author, nil, 0, false),
		row(hiddenReply, pubID, author, &root, 1, true),
		row(orphanedVisible, pubID, author, &hiddenReply, 2, false),
	}
	f.visibility.On("PublicationVisible", ctx, pubID).Return(true, nil).Twice()
	f.comments.On("ListByPublication", ctx, pubID).Return(rows, nil).Twice()

	tree, err := f.svc.ListByPublication(ctx, pubID)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Empty(t, tree[0].Replies)

	flat, err := f.svc.ListFlatByPublication(ctx, pubID)
	require.NoError(t, err)
	require.Len(t, flat, 1)
	assert.Equal(t, root, flat[0].ID)
}

func TestCommentService_GetWithReplies(t *testing.T) {
	ctx := context.Background()
	pubID := uuid.New()
	a, b := uuid.New(), uuid.New()
	author := uuid.New()
	rows := []domain.Comment{
		row(a, pubID, author, nil, 0, false),
		row(b, pubID, author, &a, 1, false),
	}

	t.Run("Returns subtree", func(t *testing.T) {
		f := newFixture()
		f.comments.On("GetByID", ctx, a).Return(&rows[0], nil).Once()
		f.visibility.On("PublicationVisible", ctx, pubID).Return(true, nil).Once()
		f.comments.On("ListByPublication", ctx, pubID).Return(rows, nil).Once()

		c, err := f.svc.GetWithReplies(ctx, a)

		require.NoError(t, err)
		require.Len(t, c.Replies, 1)
		assert.Equal(t, b, c.Replies[0].ID)
	})

	t.Run("Inactive publication hides the comment", func(t *testing.T) {
		f := newFixture()
		f.comments.On("GetByID", ctx, a).Return(&rows[0], nil).Once()
		f.visibility.On("PublicationVisible", ctx, pubID).Return(false, nil).Once()

		_, err := f.svc.GetWithReplies(ctx, a)

		assert.ErrorIs(t, err, domain.ErrCommentNotFound)
	})
}

// C1 <- C2 <- C3; deleting C1 hides all three and the listing becomes empty.
func TestCommentService_DeleteCascadesWholeChain(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	pubID := uuid.New()
	actor := activeUser(domain.RoleTrainee)
	c1, c2, c3 := uuid.New(), uuid.New(), uuid.New()
	rows := []domain.Comment{
		row(c1, pubID, actor.ID, nil, 0, false),
		row(c2, pubID, uuid.New(), &c1, 1, false),
		row(c3, pubID, uuid.New(), &c2, 2, false),
	}

	f.comments.On("GetByID", ctx, c1).Return(&rows[0], nil).Once()
	f.visibility.On("PublicationVisible", ctx, pubID).Return(true, nil)
	f.comments.On("ListByPublication", ctx, pubID).Return(rows, nil).Once()
	f.txComments.On("GetByID", ctx, c1).Return(&rows[0], nil).Once()
	f.txComments.On("LockByPublication", ctx, pubID).Return(rows, nil).Once()
	f.txComments.On("HideMany", ctx, mock.MatchedBy(func(ids []uuid.UUID) bool {
		seen := map[uuid.UUID]bool{}
		for _, id := range ids {
			seen[id] = true
		}
		return len(ids) == 3 && seen[c1] && seen[c2] && seen[c3]
	})).Return(int64(3), nil).Once()
	f.audit.On("Create", ctx, mock.MatchedBy(func(l *domain.AuditLog) bool {
		return l.Action == domain.AuditHideComment && l.EntityID == c1
	})).Return(nil).Once()

	err := f.svc.Delete(ctx, actor, c1, domain.RequestMeta{IPAddress: "10.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, 1, f.tx.Commits)

	hiddenRows := make([]domain.Comment, len(rows))
	for i, r := range rows {
		r.Hidden = true
		hiddenRows[i] = r
	}
	f.comments.On("ListByPublication", ctx, pubID).Return(hiddenRows, nil).Once()

	listed, err := f.svc.ListByPublication(ctx, pubID)
	require.NoError(t, err)
	assert.Empty(t, listed)
	f.txComments.AssertExpectations(t)
}

func TestCommentService_DeleteAuthorization(t *testing.T) {
	ctx := context.Background()
	pubID := uuid.New()
	id := uuid.New()
	author := activeUser(domain.RoleTrainee)
	target := row(id, pubID, author.ID, nil, 0, false)

	t.Run("Stranger is forbidden", func(t *testing.T) {
		f := newFixture()
		f.comments.On("GetByID", ctx, id).Return(&target, nil).Once()

		err := f.svc.Delete(ctx, activeUser(domain.RoleTrainee), id, domain.RequestMeta{})

		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Zero(t, f.tx.Commits+f.tx.Rollbacks)
	})

	t.Run("Inactive manager role is forbidden", func(t *testing.T) {
		f := newFixture()
		f.comments.On("GetByID", ctx, id).Return(&target, nil).Once()
		manager := activeUser(domain.RoleManager)
		manager.Roles[0].IsActive = false

		err := f.svc.Delete(ctx, manager, id, domain.RequestMeta{})

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("Manager may delete", func(t *testing.T) {
		f := newFixture()
		manager := activeUser(domain.RoleManager)
		f.comments.On("GetByID", ctx, id).Return(&target, nil).Once()
		f.visibility.On("PublicationVisible", ctx, pubID).Return(true, nil).Once()
		f.comments.On("ListByPublication", ctx, pubID).Return([]domain.Comment{target}, nil).Once()
		f.txComments.On("GetByID", ctx, id).Return(&target, nil).Once()
		f.txComments.On("LockByPublication", ctx, pubID).Return([]domain.Comment{target}, nil).Once()
		f.txComments.On("HideMany", ctx, []uuid.UUID{id}).Return(int64(1), nil).Once()
		f.audit.On("Create", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil).Once()

		err := f.svc.Delete(ctx, manager, id, domain.RequestMeta{})

		require.NoError(t, err)
		assert.Equal(t, 1, f.tx.Commits)
	})

	t.Run("Already hidden", func(t *testing.T) {
		f := newFixture()
		hidden := target
		hidden.Hidden = true
		f.comments.On("GetByID", ctx, id).Return(&hidden, nil).Once()

		err := f.svc.Delete(ctx, author, id, domain.RequestMeta{})

		assert.ErrorIs(t, err, domain.ErrCommentNotFound)
	})

	t.Run("Audit failure rolls back", func(t *testing.T) {
		f := newFixture()
		f.comments.On("GetByID", ctx, id).Return(&target, nil).Once()
		f.visibility.On("PublicationVisible", ctx, pubID).Return(true, nil).Once()
		f.comments.On("ListByPublication", ctx, pubID).Return([]domain.Comment{target}, nil).Once()
		f.txComments.On("GetByID", ctx, id).Return(&target, nil).Once()
		f.txComments.On("LockByPublication", ctx, pubID).Return([]domain.Comment{target}, nil).Once()
		f.txComments.On("HideMany", ctx, []uuid.UUID{id}).Return(int64(1), nil).Once()
		f.audit.On("Create", ctx, mock.Anything).Return(assert.AnError).Once()

		err := f.svc.Delete(ctx, author, id, domain.RequestMeta{})

		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, 1, f.tx.Rollbacks)
	})
}

// A hidden, B visible under A: B is gone for every reader, so deleting it is a 404.
func TestCommentService_DeleteUnderHiddenAncestor(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	pubID := uuid.New()
	author := activeUser(domain.RoleTrainee)
	a, b := uuid.New(), uuid.New()
	rows := []domain.Comment{
		row(a, pubID, uuid.New(), nil, 0, true),
		row(b, pubID, author.ID, &a, 1, false),
	}

	f.comments.On("GetByID", ctx, b).Return(&rows[1], nil).Once()
	f.visibility.On("PublicationVisible", ctx, pubID).Return(true, nil).Once()
	f.comments.On("ListByPublication", ctx, pubID).Return(rows, nil).Once()

	err := f.svc.Delete(ctx, author, b, domain.RequestMeta{})

	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
	assert.Zero(t, f.tx.Commits+f.tx.Rollbacks)
	f.txComments.AssertNotCalled(t, "HideMany", mock.Anything, mock.Anything)
	f.audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCommentService_DeleteOnInactivePublication(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	pubID := uuid.New()
	author := activeUser(domain.RoleTrainee)
	id := uuid.New()
	target := row(id, pubID, author.ID, nil, 0, false)

	f.comments.On("GetByID", ctx, id).Return(&target, nil).Once()
	f.visibility.On("PublicationVisible", ctx, pubID).Return(false, nil).Once()

	err := f.svc.Delete(ctx, author, id, domain.RequestMeta{})

	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
	assert.Zero(t, f.tx.Commits+f.tx.Rollbacks)
}

// Two deletes racing on the same comment: the second sees it hidden under the lock.
func TestCommentService_DeleteTwiceWritesOneAudit(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	pubID := uuid.New()
	author := activeUser(domain.RoleTrainee)
	id := uuid.New()
	target := row(id, pubID, author.ID, nil, 0, false)
	hidden := target
	hidden.Hidden = true

	f.comments.On("GetByID", ctx, id).Return(&target, nil).Once()
	f.visibility.On("PublicationVisible", ctx, pubID).Return(true, nil).Once()
	f.comments.On("ListByPublication", ctx, pubID).Return([]domain.Comment{target}, nil).Once()
	f.txComments.On("GetByID", ctx, id).Return(&target, nil).Once()
	f.txComments.On("LockByPublication", ctx, pubID).Return([]domain.Comment{hidden}, nil).Once()

	err := f.svc.Delete(ctx, author, id, domain.RequestMeta{})

	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
	assert.Equal(t, 1, f.tx.Rollbacks)
	assert.Zero(t, f.tx.Commits)
	f.audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
