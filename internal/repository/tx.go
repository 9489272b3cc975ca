package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Querier is satisfied by both *sqlx.DB and *sqlx.Tx, so every repository can run
// inside or outside a transaction.
type Querier interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// UnitOfWork groups the repositories bound to one transaction.
type UnitOfWork struct {
	Comments     CommentRepository
	Publications PublicationRepository
	Attachments  AttachmentRepository
	Reports      ReportRepository
	Votes        VoteRepository
	Courses      CourseRepository
	Enrollments  EnrollmentRepository
	AuditLogs    AuditLogRepository
}

func newUnitOfWork(q Querier) *UnitOfWork {
	return &UnitOfWork{
		Comments:     NewCommentRepository(q),
		Publications: NewPublicationRepository(q),
		Attachments:  NewAttachmentRepository(q),
		Reports:      NewReportRepository(q),
		Votes:        NewVoteRepository(q),
		Courses:      NewCourseRepository(q),
		Enrollments:  NewEnrollmentRepository(q),
		AuditLogs:    NewAuditLogRepository(q),
	}
}

type Transactor interface {
	// WithinTx runs fn in a transaction. The transaction commits when fn returns nil
	// and rolls back on an error or a panic, which is re-raised after rollback.
	WithinTx(ctx context.Context, fn func(uow *UnitOfWork) error) error
}

type transactor struct {
	db *sqlx.DB
}

func NewTransactor(db *sqlx.DB) Transactor {
	return &transactor{db: db}
}

func (t *transactor) WithinTx(ctx context.Context, fn func(uow *UnitOfWork) error) error {
	tx, err := t.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(newUnitOfWork(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

const pqUniqueViolation = "23505"

// IsUniqueViolation reports whether err carries a Postgres unique_violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	return false
}
