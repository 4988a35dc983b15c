package usecase

import "errors"

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternal            = errors.New("internal error")

	ErrJobNotFound       = errors.New("job not found")
	ErrLearnerNotFound   = errors.New("learner not found")
	ErrProfileNotFound   = errors.New("aptitude profile not found")
	ErrProfileExists     = errors.New("aptitude profile already exists")
	ErrInvalidSkillLevel = errors.New("invalid skill level")
)
