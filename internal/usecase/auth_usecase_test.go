package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"learnmatch/internal/pkg/jwt"
	ucauth "learnmatch/internal/usecase/auth"

	"golang.org/x/crypto/bcrypt"
)

func newAuth(t *testing.T) (*Auth, *jwt.HMACService) {
	t.Helper()
	learners := newFakeLearners()
	tokens := jwt.NewHMACService("access", "refresh", time.Minute, time.Hour)
	svc := ucauth.NewService(learners).WithCost(bcrypt.MinCost)
	return NewAuthUsecase(svc, learners, tokens), tokens
}

func TestAuth_RegisterLoginRefresh(t *testing.T) {
	uc, tokens := newAuth(t)
	ctx := context.Background()

	l, access, refresh, err := uc.Register(ctx, ucauth.RegisterInput{Email: " Ada@Example.com ", Password: "password123"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if l.Email != "ada@example.com" || l.PasswordHash != "" {
		t.Fatalf("unexpected learner %+v", l)
	}
	claims, err := tokens.ValidateToken(access)
	if err != nil || claims.LearnerID != l.ID || !tokens.IsAccessToken(claims) {
		t.Fatalf("bad access token: %+v %v", claims, err)
	}

	if _, _, _, err := uc.Login(ctx, ucauth.LoginInput{Email: "ada@example.com", Password: "wrong-password"}); !errors.Is(err, ucauth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, err := uc.Login(ctx, ucauth.LoginInput{Email: "ADA@example.com", Password: "password123"}); err != nil {
		t.Fatalf("unexpected login err: %v", err)
	}

	newAccess, newRefresh, err := uc.Refresh(ctx, refresh)
	if err != nil {
		t.Fatalf("unexpected refresh err: %v", err)
	}
	if newAccess == "" || newRefresh == "" {
		t.Fatalf("expected new tokens")
	}

	if _, _, err := uc.Refresh(ctx, access); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken for access token, got %v", err)
	}
}

func TestAuth_RegisterValidation(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	if _, _, _, err := uc.Register(ctx, ucauth.RegisterInput{Email: "a@example.com", Password: "short"}); !errors.Is(err, ucauth.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, _, _, err := uc.Register(ctx, ucauth.RegisterInput{Email: "a@example.com", Password: "long-enough"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, _, _, err := uc.Register(ctx, ucauth.RegisterInput{Email: "A@example.com", Password: "long-enough"}); !errors.Is(err, ucauth.ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestAuth_RefreshEmpty(t *testing.T) {
	uc, _ := newAuth(t)
	if _, _, err := uc.Refresh(context.Background(), ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, _, err := uc.Refresh(context.Background(), "garbage"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}
