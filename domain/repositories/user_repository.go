package repositories

import (
	"context"

	"github.com/google/uuid"
	"study-tracker/domain/models"
)

// UserRepository is the Credential Store
type UserRepository interface {
	// Create returns ErrDuplicateKey when the email is already registered
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
