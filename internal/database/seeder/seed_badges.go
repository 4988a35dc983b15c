package seeder

import (
	"context"
	"fmt"

	"learnmatch/internal/database"
	"learnmatch/internal/domain/badge"

	"github.com/google/uuid"
)

type BadgeDefinition struct {
	Slug     string
	Name     string
	Criteria string
}

// BadgeCatalog lists the badges whose rules are coded in domain/badge.
func BadgeCatalog() []BadgeDefinition {
	return []BadgeDefinition{
		{Slug: badge.SlugQuickLearner, Name: "Quick Learner", Criteria: "Complete 3 lessons in a single day"},
		{Slug: badge.SlugConsistent, Name: "Consistent", Criteria: "Complete lessons on 7 consecutive days"},
		{Slug: badge.SlugQuizMaster, Name: "Quiz Master", Criteria: "Score 100 on 5 quiz attempts"},
		{Slug: badge.SlugSocialLearner, Name: "Social Learner", Criteria: "Share 3 certificates"},
		{Slug: badge.SlugMarathon, Name: "Marathon", Criteria: "Complete a course of 20 hours or more"},
	}
}

type BadgesSeeder struct{}

func (BadgesSeeder) Name() string { return "badges" }

func (BadgesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "badges", "id", "slug", "name", "criteria", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, it := range BadgeCatalog() {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO badges (id, slug, name, criteria) VALUES ($1, $2, $3, $4)
			 ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, criteria = EXCLUDED.criteria`,
			uuid.New(),
			it.Slug,
			it.Name,
			it.Criteria,
		); err != nil {
			return fmt.Errorf("upsert badge %s: %w", it.Slug, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
