package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"user_id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"nome" db:"full_name"`
	AvatarURL    *string   `json:"avatar_url,omitempty" db:"avatar_url"`
	IsActive     bool      `json:"ativo" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`

	Roles []RoleAssignment `json:"perfis,omitempty" db:"-"`
}

type UserRole string

const (
	RoleManager    UserRole = "gestor"
	RoleInstructor UserRole = "formador"
	RoleTrainee    UserRole = "formando"
)

// RoleAssignment is one row of the manager/instructor/trainee tables.
type RoleAssignment struct {
	UserID   uuid.UUID `json:"-" db:"user_id"`
	Role     UserRole  `json:"perfil" db:"role"`
	IsActive bool      `json:"ativo" db:"is_active"`
}

// RoleChain is the actor chain for role: the role row first, then the user. A user
// without that role row yields a chain whose role link is inactive.
func (u *User) RoleChain(role UserRole) []ChainLink {
	roleActive := false
	for _, r := range u.Roles {
		if r.Role == role && r.IsActive {
			roleActive = true
			break
		}
	}
	return []ChainLink{
		{Entity: string(role), Active: roleActive},
		{Entity: "utilizador", Active: u.IsActive},
	}
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	User        *User  `json:"utilizador"`
}
