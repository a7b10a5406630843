package users

import (
	"context"

	"github.com/piresc/mfs/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/mfs/services/users UserUC

// UserUC represents the user usecase interface
type UserUC interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.InsertResult, error)
	Login(ctx context.Context, id, pin string) (*models.AuthResponse, error)
	GetUserInfo(ctx context.Context, id string) (*models.User, error)
}
