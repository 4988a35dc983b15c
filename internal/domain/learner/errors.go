package learner

import "errors"

var (
	ErrNotFound        = errors.New("learner not found")
	ErrProfileNotFound = errors.New("aptitude profile not found")
	ErrProfileExists   = errors.New("aptitude profile already exists")
)
