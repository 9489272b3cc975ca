package repository

import (
	"github.com/jmoiron/sqlx"
)

// Repositories holds the non-transactional repositories. Writes that span several
// tables go through Transactor instead.
type Repositories struct {
	User         UserRepository
	Comment      CommentRepository
	Publication  PublicationRepository
	Attachment   AttachmentRepository
	Report       ReportRepository
	Vote         VoteRepository
	Visibility   VisibilityRepository
	AuditLog     AuditLogRepository
	Notification NotificationRepository
	Transactor   Transactor
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Comment:      NewCommentRepository(db),
		Publication:  NewPublicationRepository(db),
		Attachment:   NewAttachmentRepository(db),
		Report:       NewReportRepository(db),
		Vote:         NewVoteRepository(db),
		Visibility:   NewVisibilityRepository(db),
		AuditLog:     NewAuditLogRepository(db),
		Notification: NewNotificationRepository(db),
		Transactor:   NewTransactor(db),
	}
}
