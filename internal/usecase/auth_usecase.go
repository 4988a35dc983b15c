package usecase

import (
	"context"
	"errors"

	"learnmatch/internal/domain/learner"
	"learnmatch/internal/pkg/jwt"
	ucauth "learnmatch/internal/usecase/auth"
)

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (learner.Learner, string, string, error)
	Login(ctx context.Context, in ucauth.LoginInput) (learner.Learner, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type Auth struct {
	authSvc  *ucauth.Service
	learners learner.Repository
	jwt      jwt.Service
}

func NewAuthUsecase(authSvc *ucauth.Service, learners learner.Repository, jwtSvc jwt.Service) *Auth {
	return &Auth{authSvc: authSvc, learners: learners, jwt: jwtSvc}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (learner.Learner, string, string, error) {
	l, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return learner.Learner{}, "", "", err
	}
	access, refresh, err := u.issue(l)
	if err != nil {
		return learner.Learner{}, "", "", err
	}
	return l, access, refresh, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (learner.Learner, string, string, error) {
	l, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return learner.Learner{}, "", "", err
	}
	access, refresh, err := u.issue(l)
	if err != nil {
		return learner.Learner{}, "", "", err
	}
	return l, access, refresh, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}
	if !u.jwt.IsRefreshToken(claims) {
		return "", "", ErrInvalidRefreshToken
	}

	l, err := u.learners.GetByID(ctx, claims.LearnerID)
	if err != nil {
		if errors.Is(err, learner.ErrNotFound) {
			return "", "", ErrInvalidRefreshToken
		}
		return "", "", ErrInternal
	}

	return u.issue(l)
}

func (u *Auth) issue(l learner.Learner) (string, string, error) {
	access, err := u.jwt.GenerateAccessToken(l.ID, l.Email)
	if err != nil {
		return "", "", ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(l.ID)
	if err != nil {
		return "", "", ErrInternal
	}
	return access, refresh, nil
}
