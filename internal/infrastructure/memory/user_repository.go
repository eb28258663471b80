package memory

import (
	"context"
	"sync"

	"payflow/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*user.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[string]*user.User),
	}
}

// Add seeds a user. Users are owned by an external identity subsystem, so
// this adapter exposes no mutation beyond fixture loading.
func (r *UserRepository) Add(u *user.User) {
	if u == nil || u.ID == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *u
	r.users[u.ID] = &clone
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}

	clone := *u
	return &clone, nil
}
