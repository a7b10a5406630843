package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/piresc/mfs/internal/pkg/models"
	"github.com/piresc/mfs/services/users"
)

var errNotConnected = fmt.Errorf("%w: store not connected yet", models.ErrStoreUnavailable)

// DeferredUserRepo forwards to a backend attached once the store connection is
// up. Until then every operation fails with models.ErrStoreUnavailable.
type DeferredUserRepo struct {
	mu      sync.RWMutex
	backend users.UserRepo
}

func NewDeferredUserRepo() *DeferredUserRepo {
	return &DeferredUserRepo{}
}

// Attach makes repo the backend for all subsequent calls
func (r *DeferredUserRepo) Attach(repo users.UserRepo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend = repo
}

// Attached reports whether a backend is in place
func (r *DeferredUserRepo) Attached() bool {
	return r.current() != nil
}

func (r *DeferredUserRepo) current() users.UserRepo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.backend
}

func (r *DeferredUserRepo) FindByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	repo := r.current()
	if repo == nil {
		return nil, errNotConnected
	}
	return repo.FindByIdentifier(ctx, identifier)
}

func (r *DeferredUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	repo := r.current()
	if repo == nil {
		return nil, errNotConnected
	}
	return repo.FindByEmail(ctx, email)
}

func (r *DeferredUserRepo) Insert(ctx context.Context, user *models.User) (*models.InsertResult, error) {
	repo := r.current()
	if repo == nil {
		return nil, errNotConnected
	}
	return repo.Insert(ctx, user)
}

func (r *DeferredUserRepo) EnsureSchema(ctx context.Context) error {
	repo := r.current()
	if repo == nil {
		return errNotConnected
	}
	return repo.EnsureSchema(ctx)
}

func (r *DeferredUserRepo) Ping(ctx context.Context) error {
	repo := r.current()
	if repo == nil {
		return errNotConnected
	}
	return repo.Ping(ctx)
}
