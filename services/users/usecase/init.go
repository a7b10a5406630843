package usecase

import (
	"time"

	"github.com/piresc/mfs/internal/pkg/models"
	"github.com/piresc/mfs/internal/pkg/password"
	"github.com/piresc/mfs/services/users"
)

// defaultTokenTTL is 365 days
const defaultTokenTTL = 365 * 24 * time.Hour

type UserUC struct {
	userRepo users.UserRepo
	hasher   password.Hasher
	cfg      *models.Config
}

// NewUserUC creates a new user usecase instance
func NewUserUC(
	userRepo users.UserRepo,
	hasher password.Hasher,
	cfg *models.Config,
) *UserUC {
	return &UserUC{
		userRepo: userRepo,
		hasher:   hasher,
		cfg:      cfg,
	}
}

func (u *UserUC) tokenTTL() time.Duration {
	if u.cfg.JWT.Expiration <= 0 {
		return defaultTokenTTL
	}
	return time.Duration(u.cfg.JWT.Expiration) * time.Minute
}
