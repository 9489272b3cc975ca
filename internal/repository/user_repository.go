package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"plataforma-formacao/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListRoles(ctx context.Context, userID uuid.UUID) ([]domain.RoleAssignment, error)
	ListActiveManagers(ctx context.Context) ([]domain.User, error)
}

type userRepository struct {
	db Querier
}

func NewUserRepository(db Querier) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `user_id, email, password_hash, full_name, avatar_url, is_active, created_at, updated_at`

// GetByID returns the user with its role rows loaded.
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getWithRoles(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getWithRoles(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
}

func (r *userRepository) getWithRoles(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	roles, err := r.ListRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Roles = roles
	return &user, nil
}

// ListRoles gathers the user's rows from the three role tables.
func (r *userRepository) ListRoles(ctx context.Context, userID uuid.UUID) ([]domain.RoleAssignment, error) {
	query := `
		SELECT user_id, 'gestor' AS role, is_active FROM managers WHERE user_id = $1
		UNION ALL
		SELECT user_id, 'formador' AS role, is_active FROM instructors WHERE user_id = $1
		UNION ALL
		SELECT user_id, 'formando' AS role, is_active FROM trainees WHERE user_id = $1`

	var roles []domain.RoleAssignment
	err := r.db.SelectContext(ctx, &roles, query, userID)
	return roles, err
}

func (r *userRepository) ListActiveManagers(ctx context.Context) ([]domain.User, error) {
	query := `
		SELECT u.user_id, u.email, u.password_hash, u.full_name, u.avatar_url, u.is_active, u.created_at, u.updated_at
		FROM users u
		JOIN managers m ON m.user_id = u.user_id
		WHERE u.is_active = true AND m.is_active = true
		ORDER BY u.full_name`

	var users []domain.User
	err := r.db.SelectContext(ctx, &users, query)
	return users, err
}
