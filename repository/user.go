package repository

import (
	"context"

	"github.com/kevlab/flasktaskr-project/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByName(ctx context.Context, name string) (*domain.User, error)
	// ExistsByNameOrEmail reports whether any user holds name or email.
	ExistsByNameOrEmail(ctx context.Context, name, email string) (bool, error)
	// Create assigns ID and RegisteredOn. A name or email collision yields domain.ErrDuplicateUser.
	Create(ctx context.Context, user *domain.User) error
}
