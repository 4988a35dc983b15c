package repository

import (
	"context"

	"learnmatch/internal/database"
	dbpostgres "learnmatch/internal/database/postgres"
	"learnmatch/internal/domain/badge"

	"github.com/google/uuid"
)

type BadgeRepository interface {
	FindBySlug(ctx context.Context, slug string) (badge.Badge, error)
	// UpsertAward inserts the (learner, badge) pair once. created is false when the
	// learner already held the badge.
	UpsertAward(ctx context.Context, learnerID, badgeID uuid.UUID) (created bool, err error)
	ListCatalog(ctx context.Context) ([]badge.Badge, error)
	ListAwardsByLearner(ctx context.Context, learnerID uuid.UUID) ([]badge.Award, error)
}

type PostgresBadgeRepository struct {
	db database.DB
}

func NewPostgresBadgeRepository(db database.DB) *PostgresBadgeRepository {
	return &PostgresBadgeRepository{db: db}
}

func (r *PostgresBadgeRepository) FindBySlug(ctx context.Context, slug string) (badge.Badge, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, slug, name, criteria, created_at FROM badges WHERE slug = $1`,
		slug,
	)

	var b badge.Badge
	if err := row.Scan(&b.ID, &b.Slug, &b.Name, &b.Criteria, &b.CreatedAt); err != nil {
		if dbpostgres.IsNoRows(err) {
			return badge.Badge{}, badge.ErrNotFound
		}
		return badge.Badge{}, err
	}
	return b, nil
}

func (r *PostgresBadgeRepository) UpsertAward(ctx context.Context, learnerID, badgeID uuid.UUID) (bool, error) {
	affected, err := r.db.Exec(ctx,
		`INSERT INTO learner_badges (learner_id, badge_id, awarded_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (learner_id, badge_id) DO NOTHING`,
		learnerID, badgeID,
	)
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *PostgresBadgeRepository) ListCatalog(ctx context.Context) ([]badge.Badge, error) {
	rows, err := r.db.Query(ctx, `SELECT id, slug, name, criteria, created_at FROM badges ORDER BY slug ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]badge.Badge, 0)
	for rows.Next() {
		var b badge.Badge
		if err := rows.Scan(&b.ID, &b.Slug, &b.Name, &b.Criteria, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresBadgeRepository) ListAwardsByLearner(ctx context.Context, learnerID uuid.UUID) ([]badge.Award, error) {
	rows, err := r.db.Query(ctx,
		`SELECT lb.learner_id, lb.badge_id, b.slug, b.name, lb.awarded_at
		 FROM learner_badges lb
		 JOIN badges b ON b.id = lb.badge_id
		 WHERE lb.learner_id = $1
		 ORDER BY lb.awarded_at ASC, b.slug ASC`,
		learnerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]badge.Award, 0)
	for rows.Next() {
		var a badge.Award
		if err := rows.Scan(&a.LearnerID, &a.BadgeID, &a.Slug, &a.Name, &a.AwardedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
