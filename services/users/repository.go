package users

import (
	"context"

	"github.com/piresc/mfs/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/mfs/services/users UserRepo

// UserRepo defines the user store operations.
// Lookups return (nil, nil) when no record matches.
type UserRepo interface {
	// FindByIdentifier matches identifier against email or number
	FindByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (*models.InsertResult, error)

	EnsureSchema(ctx context.Context) error
	Ping(ctx context.Context) error
}
