package serviceimpl

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"study-tracker/domain/apperror"
	"study-tracker/domain/dto"
	"study-tracker/domain/models"
	"study-tracker/domain/repositories"
	"study-tracker/domain/services"
	"study-tracker/pkg/logger"
	"study-tracker/pkg/utils"
)

const (
	msgFillAllFields      = "Please fill all fields"
	msgInvalidCredentials = "Invalid credentials"
	msgUserExists         = "User already exists"
	msgServerError        = "Server error"
)

type UserServiceImpl struct {
	userRepo   repositories.UserRepository
	tokens     *utils.TokenIssuer
	bcryptCost int
}

func NewUserService(userRepo repositories.UserRepository, tokens *utils.TokenIssuer, bcryptCost int) services.UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserServiceImpl{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	req.Normalize()
	if err := utils.ValidateStruct(req); err != nil {
		msg := utils.ValidationMessage(err, dto.RegisterValidationMessages, msgFillAllFields)
		logger.WarnContext(ctx, "Register validation failed", "fields", utils.GetValidationErrors(err))
		return nil, apperror.Validation(msg)
	}
	if req.PasswordTooLong() {
		return nil, apperror.Validation(dto.RegisterValidationMessages["Password.max"])
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	switch {
	case err == nil && existing != nil:
		logger.WarnContext(ctx, "Email already exists", "email", req.Email)
		return nil, apperror.Conflict(msgUserExists)
	case err != nil && !errors.Is(err, repositories.ErrRecordNotFound):
		logger.ErrorContext(ctx, "Failed to look up user", "email", req.Email, "error", err)
		return nil, apperror.Storage(msgServerError, err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to hash password", "error", err)
		return nil, apperror.Storage(msgServerError, err)
	}

	user := &models.User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// unique index กันกรณีสมัครพร้อมกัน
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, apperror.Conflict(msgUserExists)
		}
		logger.ErrorContext(ctx, "Failed to create user in database", "error", err)
		return nil, apperror.Storage(msgServerError, err)
	}

	logger.InfoContext(ctx, "User created successfully", "user_id", user.ID, "email", user.Email)
	return user, nil
}

func (s *UserServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (string, *models.User, error) {
	req.Normalize()
	if err := utils.ValidateStruct(req); err != nil {
		return "", nil, apperror.Validation(utils.ValidationMessage(err, dto.LoginValidationMessages, msgFillAllFields))
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			logger.WarnContext(ctx, "Login failed - email not found", "email", req.Email)
			return "", nil, apperror.Auth(msgInvalidCredentials)
		}
		logger.ErrorContext(ctx, "Failed to look up user", "email", req.Email, "error", err)
		return "", nil, apperror.Storage(msgServerError, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.WarnContext(ctx, "Login failed - invalid password", "user_id", user.ID)
		return "", nil, apperror.Auth(msgInvalidCredentials)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate JWT", "user_id", user.ID, "error", err)
		return "", nil, apperror.Storage(msgServerError, err)
	}

	logger.InfoContext(ctx, "User logged in successfully", "user_id", user.ID)
	return token, user, nil
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Storage(msgServerError, err)
	}
	return user, nil
}

func (s *UserServiceImpl) VerifyToken(token string) (uuid.UUID, error) {
	userCtx, err := s.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, utils.ErrMissingToken) {
			return uuid.Nil, apperror.Auth("No token")
		}
		return uuid.Nil, apperror.Auth("Invalid token")
	}
	return userCtx.ID, nil
}
