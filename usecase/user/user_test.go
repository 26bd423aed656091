package user

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/kevlab/flasktaskr-project/domain"
	"github.com/kevlab/flasktaskr-project/pkg/hasher"
	"github.com/kevlab/flasktaskr-project/pkg/validate"
	"github.com/kevlab/flasktaskr-project/repository/memory"
)

func newUseCase() (*UseCase, *memory.UserRepository) {
	repo := memory.NewUserRepository()
	return New(repo, hasher.NewBcrypt(bcrypt.MinCost), nil), repo
}

func someuser() RegisterInput {
	return RegisterInput{
		Name:     "someuser",
		Email:    "someemail@gmail.com",
		Password: "python101",
		Confirm:  "python101",
	}
}

func TestRegisterCreatesRegularUser(t *testing.T) {
	uc, repo := newUseCase()
	ctx := context.Background()

	user, err := uc.Register(ctx, someuser())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected store-assigned id")
	}
	if user.Role != domain.RoleUser {
		t.Errorf("role = %q, want %q", user.Role, domain.RoleUser)
	}
	if user.RegisteredOn.IsZero() {
		t.Error("expected registered_on to be set")
	}
	if user.Password == "python101" {
		t.Error("password stored in plaintext")
	}

	stored, err := repo.GetByName(ctx, "someuser")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if stored.Email != "someemail@gmail.com" {
		t.Errorf("email = %q", stored.Email)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"same name and email", someuser()},
		{"same name", RegisterInput{Name: "someuser", Email: "other@gmail.com", Password: "x", Confirm: "x"}},
		{"same email", RegisterInput{Name: "otheruser", Email: "someemail@gmail.com", Password: "x", Confirm: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newUseCase()
			ctx := context.Background()
			if _, err := uc.Register(ctx, someuser()); err != nil {
				t.Fatalf("first register: %v", err)
			}
			_, err := uc.Register(ctx, tt.input)
			if !errors.Is(err, domain.ErrDuplicateUser) {
				t.Fatalf("expected ErrDuplicateUser, got %v", err)
			}
			if !domain.IsDomainError(err, domain.ErrCodeConflict) {
				t.Error("expected CONFLICT code")
			}
		})
	}
}

func TestRegisterFieldErrors(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Register(context.Background(), RegisterInput{
		Name:     "dude",
		Email:    "dude",
		Password: "dudepassword",
		Confirm:  "",
	})
	vErr, ok := domain.AsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if msg, _ := vErr.Field("email"); msg != validate.MsgEmail {
		t.Errorf("email message = %q", msg)
	}
	if msg, _ := vErr.Field("confirm"); msg != validate.MsgRequired {
		t.Errorf("confirm message = %q", msg)
	}
	if _, ok := vErr.Field("name"); ok {
		t.Error("name should be valid")
	}
	if !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Error("expected INVALID classification")
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	uc, _ := newUseCase()
	in := someuser()
	in.Confirm = "python102"

	_, err := uc.Register(context.Background(), in)
	vErr, ok := domain.AsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if msg, _ := vErr.Field("confirm"); msg != validate.MsgMismatch {
		t.Errorf("confirm message = %q", msg)
	}
}

func TestPasswordTooLongForBcrypt(t *testing.T) {
	uc, repo := newUseCase()
	long := strings.Repeat("p", MaxPasswordLen+8)

	in := someuser()
	in.Password, in.Confirm = long, long
	_, regErr := uc.Register(context.Background(), in)

	_, provErr := uc.Provision(context.Background(), ProvisionInput{
		Name: "Root", Email: "root@doe.com", Password: long, Role: domain.RoleAdmin,
	})

	for name, err := range map[string]error{"register": regErr, "provision": provErr} {
		vErr, ok := domain.AsValidationError(err)
		if !ok {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
		if msg, _ := vErr.Field("password"); msg != "Field cannot be longer than 72 characters." {
			t.Errorf("%s: password message = %q", name, msg)
		}
	}
	if exists, _ := repo.ExistsByNameOrEmail(context.Background(), "someuser", "root@doe.com"); exists {
		t.Fatal("no account should be stored")
	}

	in.Password, in.Confirm = long[:MaxPasswordLen], long[:MaxPasswordLen]
	if _, err := uc.Register(context.Background(), in); err != nil {
		t.Fatalf("72-byte password should register: %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	registered, err := uc.Register(ctx, someuser())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	tests := []struct {
		name     string
		user     string
		password string
		wantErr  error
	}{
		{"valid", "someuser", "python101", nil},
		{"wrong password", "someuser", "python102", domain.ErrInvalidCredentials},
		{"unknown user", "foo", "bar", domain.ErrInvalidCredentials},
		{"script in name", `alert("alert box!")`, "foo", domain.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := uc.Authenticate(ctx, tt.user, tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("authenticate: %v", err)
			}
			if user.ID != registered.ID {
				t.Errorf("authenticated user id = %d, want %d", user.ID, registered.ID)
			}
		})
	}
}

func TestAuthenticateRequiresFields(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.Authenticate(context.Background(), "", "python101")
	vErr, ok := domain.AsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if msg, _ := vErr.Field("name"); msg != validate.MsgRequired {
		t.Errorf("name message = %q", msg)
	}
}

func TestProvisionRoles(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	admin, err := uc.Provision(ctx, ProvisionInput{
		Name: "Superman", Email: "admin@hotmail.com", Password: "allpowerful", Role: domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("provision admin: %v", err)
	}
	if !admin.IsAdmin() {
		t.Errorf("role = %q, want admin", admin.Role)
	}

	plain, err := uc.Provision(ctx, ProvisionInput{
		Name: "Johnny", Email: "john@doe.com", Password: "johnny",
	})
	if err != nil {
		t.Fatalf("provision default: %v", err)
	}
	if plain.Role != domain.RoleUser {
		t.Errorf("default role = %q, want user", plain.Role)
	}

	_, err = uc.Provision(ctx, ProvisionInput{
		Name: "Root", Email: "root@doe.com", Password: "root", Role: "superuser",
	})
	vErr, ok := domain.AsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := vErr.Field("role"); !ok {
		t.Error("expected role field error")
	}
}

func TestGetMissingUser(t *testing.T) {
	uc, _ := newUseCase()
	if _, err := uc.Get(context.Background(), 42); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
