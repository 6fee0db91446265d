package services

import (
	"context"

	"github.com/google/uuid"

	"study-tracker/domain/dto"
	"study-tracker/domain/models"
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (string, *models.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	// VerifyToken accepts the raw Authorization header value
	VerifyToken(token string) (uuid.UUID, error)
}
