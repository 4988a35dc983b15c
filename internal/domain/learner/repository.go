package learner

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, l Learner) error
	GetByID(ctx context.Context, id uuid.UUID) (Learner, error)
	GetByEmail(ctx context.Context, email string) (Learner, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
