package memory

import (
	"context"
	"sync"
	"time"

	"github.com/kevlab/flasktaskr-project/domain"
	"github.com/kevlab/flasktaskr-project/repository"
)

type UserRepository struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]domain.User
}

var _ repository.UserRepository = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[int64]domain.User)}
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *UserRepository) GetByName(_ context.Context, name string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Name == name {
			u := user
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) ExistsByNameOrEmail(_ context.Context, name, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.existsLocked(name, email), nil
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.existsLocked(user.Name, user.Email) {
		return domain.ErrDuplicateUser
	}
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	r.nextID++
	user.ID = r.nextID
	user.RegisteredOn = time.Now().UTC()
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) existsLocked(name, email string) bool {
	for _, user := range r.users {
		if user.Name == name || user.Email == email {
			return true
		}
	}
	return false
}
