package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kevlab/flasktaskr-project/domain"
	"github.com/kevlab/flasktaskr-project/pkg/validate"
	"github.com/kevlab/flasktaskr-project/repository"
)

// MaxPasswordLen is the longest password bcrypt will hash, in bytes.
const MaxPasswordLen = 72

// PasswordHasher produces salted hashes and compares plaintext against them.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Confirm  string
}

type ProvisionInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

type UseCase struct {
	users  repository.UserRepository
	hasher PasswordHasher
	logger *zap.Logger
}

func New(users repository.UserRepository, hasher PasswordHasher, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		hasher: hasher,
		logger: logger,
	}
}

// Register creates a regular account after validating every field.
func (uc *UseCase) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	errs := validate.Errors{}
	errs.Field("name", in.Name, validate.Required)
	errs.Field("email", in.Email, validate.Required, validate.Email)
	errs.Field("password", in.Password, validate.Required, validate.MaxLen(MaxPasswordLen))
	errs.Field("confirm", in.Confirm, validate.Required, validate.EqualTo(in.Password))
	if err := domain.NewValidationError(errs); err != nil {
		return nil, err
	}

	return uc.create(ctx, in.Name, in.Email, in.Password, domain.RoleUser)
}

// Provision creates an account with an explicit role. It backs out-of-band admin creation.
func (uc *UseCase) Provision(ctx context.Context, in ProvisionInput) (*domain.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Role == "" {
		in.Role = domain.RoleUser
	}

	errs := validate.Errors{}
	errs.Field("name", in.Name, validate.Required)
	errs.Field("email", in.Email, validate.Required, validate.Email)
	errs.Field("password", in.Password, validate.Required, validate.MaxLen(MaxPasswordLen))
	errs.Field("role", string(in.Role), validate.OneOf(string(domain.RoleUser), string(domain.RoleAdmin)))
	if err := domain.NewValidationError(errs); err != nil {
		return nil, err
	}

	return uc.create(ctx, in.Name, in.Email, in.Password, in.Role)
}

// Authenticate returns the user whose name and password match. Unknown names and
// wrong passwords produce the same ErrInvalidCredentials.
func (uc *UseCase) Authenticate(ctx context.Context, name, password string) (*domain.User, error) {
	errs := validate.Errors{}
	errs.Field("name", name, validate.Required)
	errs.Field("password", password, validate.Required)
	if err := domain.NewValidationError(errs); err != nil {
		return nil, err
	}

	user, err := uc.users.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			uc.logger.Info("login rejected", zap.String("reason", "unknown user"))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if !uc.hasher.Check(password, user.Password) {
		uc.logger.Info("login rejected", zap.String("reason", "password mismatch"), zap.Int64("user_id", user.ID))
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (uc *UseCase) Get(ctx context.Context, id int64) (*domain.User, error) {
	return uc.users.GetByID(ctx, id)
}

func (uc *UseCase) create(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	exists, err := uc.users.ExistsByNameOrEmail(ctx, name, email)
	if err != nil {
		return nil, err
	}
	if exists {
		uc.logger.Info("registration rejected", zap.String("reason", "duplicate"), zap.String("name", name))
		return nil, domain.ErrDuplicateUser
	}

	hashed, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     role,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.logger.Info("user created", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}
