package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"plataforma-formacao/internal/domain"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.OffsetParams) (domain.OffsetPage[domain.Notification], error) {
	args := m.Called(ctx, userID, unreadOnly, params)
	return args.Get(0).(domain.OffsetPage[domain.Notification]), args.Error(1)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) NotifyCommentReply(ctx context.Context, parent, reply *domain.Comment) error {
	args := m.Called(ctx, parent, reply)
	return args.Error(0)
}

func (m *NotificationService) NotifyReportCreated(ctx context.Context, report *domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *NotificationService) NotifyReportResolved(ctx context.Context, report *domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *NotificationService) NotifyContentHidden(ctx context.Context, authorID uuid.UUID, target domain.ReportTarget) error {
	args := m.Called(ctx, authorID, target)
	return args.Error(0)
}

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendReportResolvedEmail(ctx context.Context, toEmail, recipientName, state, targetKind string) error {
	args := m.Called(ctx, toEmail, recipientName, state, targetKind)
	return args.Error(0)
}

func (m *EmailService) SendCommentReplyEmail(ctx context.Context, toEmail, recipientName, authorName, publicationTitle string) error {
	args := m.Called(ctx, toEmail, recipientName, authorName, publicationTitle)
	return args.Error(0)
}
