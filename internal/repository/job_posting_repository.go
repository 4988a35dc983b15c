package repository

import (
	"context"

	"learnmatch/internal/database"
	dbpostgres "learnmatch/internal/database/postgres"
	"learnmatch/internal/domain/job"

	"github.com/google/uuid"
)

type JobPostingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (job.Posting, error)
}

type PostgresJobPostingRepository struct {
	db database.DB
}

func NewPostgresJobPostingRepository(db database.DB) *PostgresJobPostingRepository {
	return &PostgresJobPostingRepository{db: db}
}

func (r *PostgresJobPostingRepository) FindByID(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, employer_id, title, category_id, job_type_id FROM job_postings WHERE id = $1`,
		id,
	)

	var p job.Posting
	if err := row.Scan(&p.ID, &p.EmployerID, &p.Title, &p.CategoryID, &p.JobTypeID); err != nil {
		if dbpostgres.IsNoRows(err) {
			return job.Posting{}, job.ErrNotFound
		}
		return job.Posting{}, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT skill_name FROM job_posting_skills WHERE job_posting_id = $1 ORDER BY position ASC, skill_name ASC`,
		id,
	)
	if err != nil {
		return job.Posting{}, err
	}
	defer rows.Close()

	p.RequiredSkills = make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return job.Posting{}, err
		}
		p.RequiredSkills = append(p.RequiredSkills, name)
	}
	if err := rows.Err(); err != nil {
		return job.Posting{}, err
	}
	return p, nil
}
