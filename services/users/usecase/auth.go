package usecase

import (
	"context"
	"fmt"

	jwtpkg "github.com/piresc/mfs/internal/pkg/jwt"
	"github.com/piresc/mfs/internal/pkg/logger"
	"github.com/piresc/mfs/internal/pkg/models"
	nr "github.com/piresc/mfs/internal/pkg/newrelic"
)

// Register stores a new user with its pin hashed. An email that is already
// registered yields models.ErrUserAlreadyExists.
func (u *UserUC) Register(ctx context.Context, req *models.RegisterRequest) (*models.InsertResult, error) {
	existing, err := u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, models.ErrUserAlreadyExists
	}

	hash, err := nr.WithSegmentAndReturn(ctx, "password.Hash", func() (string, error) {
		return u.hasher.Hash(req.Pin)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to hash pin: %w", err)
	}

	user := &models.User{
		Email:   req.Email,
		Number:  req.Number,
		Pin:     hash,
		Profile: req.Profile,
	}

	result, err := u.userRepo.Insert(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	logger.InfoCtx(ctx, "User registered",
		logger.String("user_id", result.InsertedID))

	return result, nil
}

// Login checks pin against the user found by id (email or number) and issues
// a token carrying id as given.
func (u *UserUC) Login(ctx context.Context, id, pin string) (*models.AuthResponse, error) {
	user, err := u.userRepo.FindByIdentifier(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, models.ErrUserNotFound
	}

	matched, _ := nr.WithSegmentAndReturn(ctx, "password.Verify", func() (bool, error) {
		return u.hasher.Verify(pin, user.Pin), nil
	})
	if !matched {
		return nil, models.ErrInvalidCredentials
	}

	token, _, err := jwtpkg.GenerateToken(id, u.cfg.JWT.Secret, u.tokenTTL())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.AuthResponse{
		Token: token,
		User:  user,
	}, nil
}
