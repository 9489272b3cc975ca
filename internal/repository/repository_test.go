package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plataforma-formacao/internal/domain"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestWithinTx_CommitsOnSuccess(t *testing.T) {
	db, mock := newMockDB(t)
	pubID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE publications SET is_active = false")).
		WithArgs(pubID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := NewTransactor(db).WithinTx(context.Background(), func(uow *UnitOfWork) error {
		return uow.Publications.Deactivate(context.Background(), pubID)
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := NewTransactor(db).WithinTx(context.Background(), func(uow *UnitOfWork) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_RollsBackOnPanic(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "kaboom", func() {
		_ = NewTransactor(db).WithinTx(context.Background(), func(uow *UnitOfWork) error {
			panic("kaboom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("duplicate")))
}

func TestCommentRepository_HideMany(t *testing.T) {
	db, mock := newMockDB(t)
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE comments SET hidden = true WHERE comment_id = ANY($1::uuid[])")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := NewCommentRepository(db).HideMany(context.Background(), ids)

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_HideManyEmpty(t *testing.T) {
	db, mock := newMockDB(t)

	n, err := NewCommentRepository(db).HideMany(context.Background(), nil)

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_GetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM comments WHERE comment_id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"comment_id"}))

	comment, err := NewCommentRepository(db).GetByID(context.Background(), id)

	require.NoError(t, err)
	assert.Nil(t, comment)
}

func TestCommentRepository_ListByPublicationAttachesAuthor(t *testing.T) {
	db, mock := newMockDB(t)
	pubID, authorID, commentID := uuid.New(), uuid.New(), uuid.New()

	rows := sqlmock.NewRows([]string{
		"comment_id", "publication_id", "author_id", "parent_id", "body", "hidden", "created_at",
		"author_full_name", "author_avatar_url",
	}).AddRow(commentID.String(), pubID.String(), authorID.String(), nil, "olá", false, fixedTime, "Ana Silva", nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM comments c")).
		WithArgs(pubID).
		WillReturnRows(rows)

	comments, err := NewCommentRepository(db).ListByPublication(context.Background(), pubID)

	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.NotNil(t, comments[0].Author)
	assert.Equal(t, "Ana Silva", comments[0].Author.FullName)
	assert.Equal(t, authorID, comments[0].Author.ID)
	assert.Nil(t, comments[0].ParentID)
}

func TestReportRepository_ResolveNotPending(t *testing.T) {
	db, mock := newMockDB(t)
	resolver := uuid.New()
	report := &domain.Report{ID: uuid.New(), State: domain.ReportRejected, ResolverID: &resolver, ResolvedAt: &fixedTime}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE reports")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewReportRepository(db).Resolve(context.Background(), report)

	assert.ErrorIs(t, err, domain.ErrReportNotPending)
}

func TestReportRepository_GetByIDBuildsTarget(t *testing.T) {
	db, mock := newMockDB(t)
	id, reporter, commentID := uuid.New(), uuid.New(), uuid.New()

	rows := sqlmock.NewRows([]string{
		"report_id", "reporter_id", "publication_id", "comment_id", "reason", "state",
		"action_taken", "resolver_id", "resolved_at", "created_at",
	}).AddRow(id.String(), reporter.String(), nil, commentID.String(), "spam", "pendente", nil, nil, nil, fixedTime)

	mock.ExpectQuery(regexp.QuoteMeta("FROM reports WHERE report_id = $1")).
		WithArgs(id).
		WillReturnRows(rows)

	report, err := NewReportRepository(db).GetByID(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, domain.TargetComment, report.Target.Kind())
	assert.Equal(t, commentID, report.Target.ID())
	assert.Equal(t, domain.ReportPending, report.State)
}

func TestReportRepository_ExistsPendingUsesTargetColumn(t *testing.T) {
	db, mock := newMockDB(t)
	reporter, pubID := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("reporter_id = $1 AND publication_id = $2 AND state = 'pendente'")).
		WithArgs(reporter, pubID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := NewReportRepository(db).ExistsPending(context.Background(), reporter, domain.PublicationTarget(pubID))

	require.NoError(t, err)
	assert.True(t, exists)
}

func TestVoteRepository_Summary(t *testing.T) {
	db, mock := newMockDB(t)
	pubID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("COUNT(*) FILTER (WHERE value > 0)")).
		WithArgs(pubID).
		WillReturnRows(sqlmock.NewRows([]string{"upvotes", "downvotes"}).AddRow(4, 1))

	summary, err := NewVoteRepository(db).Summary(context.Background(), pubID)

	require.NoError(t, err)
	assert.Equal(t, int64(4), summary.Upvotes)
	assert.Equal(t, int64(1), summary.Downvotes)
	assert.Nil(t, summary.UserVote)
}

func TestVisibilityRepository_HideExpiredCourseIsIdempotent(t *testing.T) {
	db, mock := newMockDB(t)
	courseID := uuid.New()
	query := regexp.QuoteMeta("UPDATE courses SET is_visible = false WHERE course_id = $1 AND is_visible = true")

	mock.ExpectExec(query).WithArgs(courseID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).WithArgs(courseID).WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewVisibilityRepository(db)
	first, err := repo.HideExpiredCourse(context.Background(), courseID)
	require.NoError(t, err)
	second, err := repo.HideExpiredCourse(context.Background(), courseID)
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)
}

func TestVisibilityRepository_MissingPublication(t *testing.T) {
	db, mock := newMockDB(t)
	pubID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM publications p")).
		WithArgs(pubID).
		WillReturnRows(sqlmock.NewRows([]string{"publication_active"}))

	chain, err := NewVisibilityRepository(db).PublicationChain(context.Background(), pubID)

	require.NoError(t, err)
	assert.Nil(t, chain)
}

func TestCourseRepository_DecrementVacanciesExhausted(t *testing.T) {
	db, mock := newMockDB(t)
	courseID := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE courses SET vacancies = vacancies - 1")).
		WithArgs(courseID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewCourseRepository(db).DecrementVacancies(context.Background(), courseID)

	assert.ErrorIs(t, err, domain.ErrNoVacancies)
}
