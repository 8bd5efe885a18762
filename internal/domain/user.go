package domain

import (
	"context"
	"time"
)

// User represents a registered user
// swagger:model User
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(name, email string, createdAt time.Time) *User {
	return &User{
		Name:      name,
		Email:     email,
		CreatedAt: createdAt,
	}
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	// Create inserts the user. Returns ErrDuplicateEmail if the email is taken.
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
}

// UserService defines user-facing business operations.
type UserService interface {
	CreateUser(ctx context.Context, name, email string) (*User, error)
}
