package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/devconnector/devconnector-go/internal/crypto"
	"github.com/devconnector/devconnector-go/internal/mocks"
	"github.com/devconnector/devconnector-go/internal/model"
	"github.com/devconnector/devconnector-go/internal/repository"
	"github.com/devconnector/devconnector-go/internal/validate"
)

func newTestAuthService(t *testing.T) (*AuthService, *mocks.MockUserStore, *crypto.TokenIssuer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserStore(ctrl)
	tokens, err := crypto.NewTokenIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	return NewAuthService(users, tokens), users, tokens
}

func TestRegister_Success(t *testing.T) {
	svc, users, tokens := newTestAuthService(t)

	users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *model.User) error {
		if u.Email != "ada@example.com" {
			t.Errorf("email not normalized: %q", u.Email)
		}
		if u.PasswordHash == "" || u.PasswordHash == "secret1" {
			t.Errorf("password not hashed: %q", u.PasswordHash)
		}
		if u.Avatar != crypto.GravatarURL("ada@example.com") {
			t.Errorf("unexpected avatar %q", u.Avatar)
		}
		u.ID = "u-1"
		return nil
	})

	resp, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "Ada", Email: "Ada@Example.com", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	userID, err := tokens.Verify(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if userID != "u-1" {
		t.Errorf("token user = %q, want u-1", userID)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Register(context.Background(), model.RegisterRequest{Email: "nope", Password: "123"})

	var verrs validate.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validate.Errors, got %v", err)
	}
	if len(verrs) != 3 {
		t.Errorf("expected 3 field errors, got %d: %v", len(verrs), verrs)
	}
}

func TestRegister_TrimsBeforeValidating(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *model.User) error {
		if u.Name != "Ada" || u.Email != "ada@example.com" {
			t.Errorf("stored name=%q email=%q, want trimmed values", u.Name, u.Email)
		}
		u.ID = "u-1"
		return nil
	})

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "  Ada ", Email: " Ada@Example.com ", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
}

func TestRegister_BlankName(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "   ", Email: "ada@example.com", Password: "secret1",
	})

	var verrs validate.Errors
	if !errors.As(err, &verrs) || len(verrs) != 1 || verrs[0].Param != "name" {
		t.Fatalf("expected a single name error, got %v", err)
	}
}

func TestRegister_PasswordTooLong(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: strings.Repeat("p", 80),
	})

	var verrs validate.Errors
	if !errors.As(err, &verrs) || len(verrs) != 1 || verrs[0].Param != "password" {
		t.Fatalf("expected a password validation error, got %v", err)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(repository.ErrDuplicateEmail)

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "secret1",
	})
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	hash, err := crypto.HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	stored := &model.User{ID: "u-1", Email: "ada@example.com", PasswordHash: hash}

	tests := []struct {
		name     string
		password string
		found    bool
		wantErr  error
	}{
		{name: "correct password", password: "secret1", found: true},
		{name: "wrong password", password: "wrong", found: true, wantErr: ErrInvalidCredentials},
		{name: "unknown email", password: "secret1", found: false, wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, _ := newTestAuthService(t)
			if tt.found {
				users.EXPECT().GetByEmail(gomock.Any(), "ada@example.com").Return(stored, nil)
			} else {
				users.EXPECT().GetByEmail(gomock.Any(), "ada@example.com").Return(nil, repository.ErrUserNotFound)
			}

			resp, err := svc.Login(context.Background(), model.LoginRequest{Email: " ADA@example.com", Password: tt.password})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Login() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && resp.Token == "" {
				t.Error("Login() returned empty token")
			}
		})
	}
}

func TestLogin_MissingPassword(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), model.LoginRequest{Email: "ada@example.com"})

	var verrs validate.Errors
	if !errors.As(err, &verrs) || verrs[0].Msg != "password is required" {
		t.Fatalf("expected password validation error, got %v", err)
	}
}

func TestCurrentUser(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	users.EXPECT().GetByID(gomock.Any(), "u-1").Return(&model.User{
		ID: "u-1", Name: "Ada", Email: "ada@example.com", PasswordHash: "hash", CreatedAt: created,
	}, nil)
	users.EXPECT().GetByID(gomock.Any(), "gone").Return(nil, repository.ErrUserNotFound)

	resp, err := svc.CurrentUser(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("CurrentUser() unexpected error: %v", err)
	}
	if resp.Name != "Ada" || !resp.Date.Equal(created) {
		t.Errorf("unexpected response %+v", resp)
	}

	if _, err := svc.CurrentUser(context.Background(), "gone"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
