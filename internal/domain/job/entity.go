package job

import (
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job posting not found")

// Posting is the employer-owned job posting as seen by the match scorer.
type Posting struct {
	ID             uuid.UUID
	EmployerID     uuid.UUID
	Title          string
	CategoryID     uuid.UUID
	JobTypeID      uuid.UUID
	RequiredSkills []string
}
