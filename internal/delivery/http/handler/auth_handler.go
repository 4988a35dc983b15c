package handler

import (
	"errors"
	"strings"

	"learnmatch/internal/delivery/http/dto"
	"learnmatch/internal/delivery/http/middleware"
	"learnmatch/internal/domain/learner"
	"learnmatch/internal/pkg/response"
	"learnmatch/internal/usecase"
	ucauth "learnmatch/internal/usecase/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc       usecase.AuthUsecase
	validate *validator.Validate
}

func NewAuthHandler(uc usecase.AuthUsecase, v *validator.Validate) *AuthHandler {
	return &AuthHandler{uc: uc, validate: v}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := bindAndValidate(c, h.validate, &req); err != nil {
		return err
	}

	l, access, refresh, err := h.uc.Register(c.Context(), ucauth.RegisterInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageCreated, authResponse(l, access, refresh))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindAndValidate(c, h.validate, &req); err != nil {
		return err
	}

	l, access, refresh, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, authResponse(l, access, refresh))
}

func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	tok, ok := bearerFromAuthorizationHeader(c.Get("Authorization"))
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	access, refresh, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		if errors.Is(err, usecase.ErrRefreshTokenExpired) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
		}
		if errors.Is(err, usecase.ErrInvalidRefreshToken) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
		}
		if errors.Is(err, usecase.ErrUnauthorized) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.AuthResponse{AccessToken: access, RefreshToken: refresh})
}

func authResponse(l learner.Learner, access, refresh string) dto.AuthResponse {
	return dto.AuthResponse{
		Learner:      &dto.LearnerResponse{ID: l.ID, Email: l.Email, CreatedAt: l.CreatedAt},
		AccessToken:  access,
		RefreshToken: refresh,
	}
}

func bearerFromAuthorizationHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	tok := strings.TrimSpace(parts[1])
	if tok == "" {
		return "", false
	}
	return tok, true
}

func mapAuthUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid credentials", nil, err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
