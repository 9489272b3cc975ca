package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"plataforma-formacao/internal/domain"
	"plataforma-formacao/internal/service/notification"
	"plataforma-formacao/internal/service/publication"
)

type CommentService struct {
	mock.Mock
}

func (m *CommentService) Create(ctx context.Context, actor *domain.User, input domain.CreateCommentInput) (*domain.Comment, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *CommentService) ListByPublication(ctx context.Context, publicationID uuid.UUID) ([]*domain.Comment, error) {
	args := m.Called(ctx, publicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Comment), args.Error(1)
}

func (m *CommentService) ListFlatByPublication(ctx context.Context, publicationID uuid.UUID) ([]domain.Comment, error) {
	args := m.Called(ctx, publicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

func (m *CommentService) GetWithReplies(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *CommentService) Delete(ctx context.Context, actor *domain.User, id uuid.UUID, meta domain.RequestMeta) error {
	args := m.Called(ctx, actor, id, meta)
	return args.Error(0)
}

func (m *CommentService) SetNotificationService(notifSvc notification.Service) {}

type ReportService struct {
	mock.Mock
}

func (m *ReportService) Create(ctx context.Context, actor *domain.User, input domain.CreateReportInput) (*domain.Report, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *ReportService) List(ctx context.Context, params domain.OffsetParams) (domain.OffsetPage[domain.Report], error) {
	args := m.Called(ctx, params)
	return args.Get(0).(domain.OffsetPage[domain.Report]), args.Error(1)
}

func (m *ReportService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *ReportService) Resolve(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.ResolveReportInput, meta domain.RequestMeta) (*domain.Report, error) {
	args := m.Called(ctx, actor, id, input, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *ReportService) SetNotificationService(notifSvc notification.Service) {}

type VoteService struct {
	mock.Mock
}

func (m *VoteService) Cast(ctx context.Context, actor *domain.User, publicationID uuid.UUID, input domain.CastVoteInput) (*domain.VoteSummary, error) {
	args := m.Called(ctx, actor, publicationID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VoteSummary), args.Error(1)
}

func (m *VoteService) GetVotes(ctx context.Context, actor *domain.User, publicationID uuid.UUID) (*domain.VoteSummary, error) {
	args := m.Called(ctx, actor, publicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VoteSummary), args.Error(1)
}

type PublicationService struct {
	mock.Mock
}

func (m *PublicationService) Create(ctx context.Context, actor *domain.User, input domain.CreatePublicationInput) (*domain.Publication, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Publication), args.Error(1)
}

func (m *PublicationService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Publication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Publication), args.Error(1)
}

func (m *PublicationService) ListRanked(ctx context.Context, forumTopicID uuid.UUID, params domain.OffsetParams) (domain.OffsetPage[domain.Publication], error) {
	args := m.Called(ctx, forumTopicID, params)
	return args.Get(0).(domain.OffsetPage[domain.Publication]), args.Error(1)
}

func (m *PublicationService) UploadAttachment(ctx context.Context, actor *domain.User, publicationID uuid.UUID, upload publication.Upload) (*domain.Attachment, error) {
	args := m.Called(ctx, actor, publicationID, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attachment), args.Error(1)
}

type EnrollmentService struct {
	mock.Mock
}

func (m *EnrollmentService) Enroll(ctx context.Context, actor *domain.User, courseID uuid.UUID) (*domain.Enrollment, error) {
	args := m.Called(ctx, actor, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enrollment), args.Error(1)
}

type AuditService struct {
	mock.Mock
}

func (m *AuditService) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, params domain.OffsetParams) (domain.OffsetPage[domain.AuditLog], error) {
	args := m.Called(ctx, entityType, entityID, params)
	return args.Get(0).(domain.OffsetPage[domain.AuditLog]), args.Error(1)
}
