package seeder

import (
	"context"

	"learnmatch/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
