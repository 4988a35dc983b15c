package repository

import (
	"context"
	"fmt"

	"learnmatch/internal/database"
	dbpostgres "learnmatch/internal/database/postgres"
	"learnmatch/internal/domain/learner"

	"github.com/google/uuid"
)

type PostgresLearnerRepository struct {
	db database.DB
}

func NewPostgresLearnerRepository(db database.DB) *PostgresLearnerRepository {
	return &PostgresLearnerRepository{db: db}
}

func (r *PostgresLearnerRepository) Create(ctx context.Context, l learner.Learner) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO learners (id, email, password_hash) VALUES ($1, $2, $3)`,
		l.ID, l.Email, l.PasswordHash,
	)
	if err != nil {
		return fmt.Errorf("insert learner: %w", err)
	}
	return nil
}

func (r *PostgresLearnerRepository) GetByID(ctx context.Context, id uuid.UUID) (learner.Learner, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at, updated_at FROM learners WHERE id = $1`,
		id,
	)
	return scanLearner(row)
}

func (r *PostgresLearnerRepository) GetByEmail(ctx context.Context, email string) (learner.Learner, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at, updated_at FROM learners WHERE email = $1`,
		email,
	)
	return scanLearner(row)
}

func (r *PostgresLearnerRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM learners WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresLearnerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM learners WHERE email = $1)`, email)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanLearner(row database.Row) (learner.Learner, error) {
	var l learner.Learner
	if err := row.Scan(&l.ID, &l.Email, &l.PasswordHash, &l.CreatedAt, &l.UpdatedAt); err != nil {
		if dbpostgres.IsNoRows(err) {
			return learner.Learner{}, learner.ErrNotFound
		}
		return learner.Learner{}, err
	}
	return l, nil
}
