package dto

import (
	"github.com/google/uuid"
)

// UserResponse is the public identity; the password hash never leaves the service
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}
