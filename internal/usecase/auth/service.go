package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"learnmatch/internal/domain/learner"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

const minPasswordLength = 8

type RegisterInput struct {
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type Service struct {
	learners learner.Repository
	cost     int
}

func NewService(learners learner.Repository) *Service {
	return &Service{learners: learners, cost: bcrypt.DefaultCost}
}

// WithCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (s *Service) WithCost(cost int) *Service {
	s.cost = cost
	return s
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (learner.Learner, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return learner.Learner{}, ErrInvalidInput
	}
	if !isValidPassword(in.Password) {
		return learner.Learner{}, ErrInvalidInput
	}

	exists, err := s.learners.ExistsByEmail(ctx, email)
	if err != nil {
		return learner.Learner{}, ErrInternal
	}
	if exists {
		return learner.Learner{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return learner.Learner{}, ErrInternal
	}

	l := learner.Learner{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.learners.Create(ctx, l); err != nil {
		exists, exErr := s.learners.ExistsByEmail(ctx, email)
		if exErr == nil && exists {
			return learner.Learner{}, ErrEmailAlreadyRegistered
		}
		return learner.Learner{}, ErrInternal
	}

	created, err := s.learners.GetByID(ctx, l.ID)
	if err != nil {
		return learner.Learner{}, ErrInternal
	}
	return sanitize(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (learner.Learner, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return learner.Learner{}, ErrInvalidCredentials
	}

	l, err := s.learners.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, learner.ErrNotFound) {
			return learner.Learner{}, ErrInvalidCredentials
		}
		return learner.Learner{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(l.PasswordHash), []byte(in.Password)); err != nil {
		return learner.Learner{}, ErrInvalidCredentials
	}

	return sanitize(l), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= minPasswordLength
}

func sanitize(l learner.Learner) learner.Learner {
	l.PasswordHash = ""
	return l
}
