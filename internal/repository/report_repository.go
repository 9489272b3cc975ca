package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"plataforma-formacao/internal/domain"
)

type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Report, error)
	ExistsPending(ctx context.Context, reporterID uuid.UUID, target domain.ReportTarget) (bool, error)
	List(ctx context.Context, params domain.OffsetParams) ([]domain.Report, int64, error)
	Resolve(ctx context.Context, report *domain.Report) error
}

type reportRepository struct {
	db Querier
}

func NewReportRepository(db Querier) ReportRepository {
	return &reportRepository{db: db}
}

// reportRow mirrors the reports table, where the target is stored as two
// nullable foreign keys guarded by a CHECK (num_nonnulls(...) = 1).
type reportRow struct {
	ID            uuid.UUID          `db:"report_id"`
	ReporterID    uuid.UUID          `db:"reporter_id"`
	PublicationID *uuid.UUID         `db:"publication_id"`
	CommentID     *uuid.UUID         `db:"comment_id"`
	Reason        string             `db:"reason"`
	State         domain.ReportState `db:"state"`
	ActionTaken   *string            `db:"action_taken"`
	ResolverID    *uuid.UUID         `db:"resolver_id"`
	ResolvedAt    *time.Time         `db:"resolved_at"`
	CreatedAt     time.Time          `db:"created_at"`
}

func (r reportRow) toDomain() (*domain.Report, error) {
	target, err := domain.NewReportTarget(r.PublicationID, r.CommentID)
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", r.ID, err)
	}
	return &domain.Report{
		ID:          r.ID,
		ReporterID:  r.ReporterID,
		Target:      target,
		Reason:      r.Reason,
		State:       r.State,
		ActionTaken: r.ActionTaken,
		ResolverID:  r.ResolverID,
		ResolvedAt:  r.ResolvedAt,
		CreatedAt:   r.CreatedAt,
	}, nil
}

const reportColumns = `report_id, reporter_id, publication_id, comment_id, reason, state, action_taken, resolver_id, resolved_at, created_at`

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	publicationID, commentID := report.Target.Columns()
	query := `
		INSERT INTO reports (report_id, reporter_id, publication_id, comment_id, reason, state)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		report.ID, report.ReporterID, publicationID, commentID, report.Reason, report.State,
	).Scan(&report.CreatedAt)
}

func (r *reportRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	return r.get(ctx, `SELECT `+reportColumns+` FROM reports WHERE report_id = $1`, id)
}

func (r *reportRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	return r.get(ctx, `SELECT `+reportColumns+` FROM reports WHERE report_id = $1 FOR UPDATE`, id)
}

func (r *reportRepository) get(ctx context.Context, query string, id uuid.UUID) (*domain.Report, error) {
	var row reportRow
	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.toDomain()
}

func (r *reportRepository) ExistsPending(ctx context.Context, reporterID uuid.UUID, target domain.ReportTarget) (bool, error) {
	var exists bool
	var query string
	switch target.Kind() {
	case domain.TargetPublication:
		query = `SELECT EXISTS(SELECT 1 FROM reports WHERE reporter_id = $1 AND publication_id = $2 AND state = 'pendente')`
	case domain.TargetComment:
		query = `SELECT EXISTS(SELECT 1 FROM reports WHERE reporter_id = $1 AND comment_id = $2 AND state = 'pendente')`
	default:
		return false, domain.ErrInvalidReportTarget
	}

	err := r.db.GetContext(ctx, &exists, query, reporterID, target.ID())
	return exists, err
}

func (r *reportRepository) List(ctx context.Context, params domain.OffsetParams) ([]domain.Report, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM reports`); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + reportColumns + `
		FROM reports
		ORDER BY created_at DESC, report_id
		LIMIT $1 OFFSET $2`

	var rows []reportRow
	if err := r.db.SelectContext(ctx, &rows, query, params.Limit, params.Offset); err != nil {
		return nil, 0, err
	}

	reports := make([]domain.Report, 0, len(rows))
	for _, row := range rows {
		report, err := row.toDomain()
		if err != nil {
			return nil, 0, err
		}
		reports = append(reports, *report)
	}
	return reports, total, nil
}

// Resolve writes the terminal state. It only matches pending rows; a report that
// was resolved concurrently yields domain.ErrReportNotPending.
func (r *reportRepository) Resolve(ctx context.Context, report *domain.Report) error {
	query := `
		UPDATE reports
		SET state = $2, action_taken = $3, resolver_id = $4, resolved_at = $5
		WHERE report_id = $1 AND state = 'pendente'`

	result, err := r.db.ExecContext(ctx, query,
		report.ID, report.State, report.ActionTaken, report.ResolverID, report.ResolvedAt,
	)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrReportNotPending
	}
	return nil
}
