package usecase

import (
	"context"
	"fmt"

	"github.com/piresc/mfs/internal/pkg/models"
)

// GetUserInfo returns the user whose email or number equals id
func (u *UserUC) GetUserInfo(ctx context.Context, id string) (*models.User, error) {
	user, err := u.userRepo.FindByIdentifier(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, models.ErrUserNotFound
	}
	return user, nil
}
