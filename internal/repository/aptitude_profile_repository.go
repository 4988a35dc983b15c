package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"learnmatch/internal/database"
	dbpostgres "learnmatch/internal/database/postgres"
	"learnmatch/internal/domain/learner"

	"github.com/google/uuid"
)

type AptitudeProfileRepository interface {
	FindByLearnerID(ctx context.Context, learnerID uuid.UUID) (learner.AptitudeProfile, error)
	Create(ctx context.Context, p learner.AptitudeProfile) (learner.AptitudeProfile, error)
}

type PostgresAptitudeProfileRepository struct {
	db database.DB
}

func NewPostgresAptitudeProfileRepository(db database.DB) *PostgresAptitudeProfileRepository {
	return &PostgresAptitudeProfileRepository{db: db}
}

// FindByLearnerID returns learner.ErrProfileNotFound when the learner has not
// completed the questionnaire. Unparseable interest/goal columns decode to empty sets.
func (r *PostgresAptitudeProfileRepository) FindByLearnerID(ctx context.Context, learnerID uuid.UUID) (learner.AptitudeProfile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, learner_id, skill_level, COALESCE(interests, ''), COALESCE(career_goals, ''), created_at
		 FROM aptitude_profiles
		 WHERE learner_id = $1`,
		learnerID,
	)

	var (
		p           learner.AptitudeProfile
		level       string
		interests   string
		careerGoals string
	)
	if err := row.Scan(&p.ID, &p.LearnerID, &level, &interests, &careerGoals, &p.CreatedAt); err != nil {
		if dbpostgres.IsNoRows(err) {
			return learner.AptitudeProfile{}, learner.ErrProfileNotFound
		}
		return learner.AptitudeProfile{}, err
	}

	p.SkillLevel = learner.SkillLevel(level)
	p.Interests = learner.ParseIDSet(interests)
	p.CareerGoals = learner.ParseIDSet(careerGoals)
	return p, nil
}

func (r *PostgresAptitudeProfileRepository) Create(ctx context.Context, p learner.AptitudeProfile) (learner.AptitudeProfile, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	interests, err := json.Marshal(p.Interests)
	if err != nil {
		return learner.AptitudeProfile{}, fmt.Errorf("encode interests: %w", err)
	}
	careerGoals, err := json.Marshal(p.CareerGoals)
	if err != nil {
		return learner.AptitudeProfile{}, fmt.Errorf("encode career goals: %w", err)
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO aptitude_profiles (id, learner_id, skill_level, interests, career_goals)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		p.ID, p.LearnerID, string(p.SkillLevel), string(interests), string(careerGoals),
	)
	if err := row.Scan(&p.CreatedAt); err != nil {
		if dbpostgres.IsUniqueViolation(err) {
			return learner.AptitudeProfile{}, learner.ErrProfileExists
		}
		return learner.AptitudeProfile{}, err
	}
	return p, nil
}
