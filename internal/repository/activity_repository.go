package repository

import (
	"context"
	"time"

	"learnmatch/internal/database"

	"github.com/google/uuid"
)

const enrollmentStatusCompleted = "completed"

// ActivityRepository answers the read-only questions the badge rules ask about a
// learner's history. Missing records yield zero values, never errors.
type ActivityRepository interface {
	CountLessonsCompletedBetween(ctx context.Context, learnerID uuid.UUID, from, to time.Time) (int, error)
	RecentCompletionDates(ctx context.Context, learnerID uuid.UUID, loc *time.Location, limit int) ([]time.Time, error)
	CountPerfectQuizAttempts(ctx context.Context, learnerID uuid.UUID, perfectScore int) (int, error)
	CountCertificateShares(ctx context.Context, learnerID uuid.UUID) (int, error)
	HasCompletedCourseWithMinDuration(ctx context.Context, learnerID uuid.UUID, minMinutes int) (bool, error)
}

type PostgresActivityRepository struct {
	db database.DB
}

func NewPostgresActivityRepository(db database.DB) *PostgresActivityRepository {
	return &PostgresActivityRepository{db: db}
}

func (r *PostgresActivityRepository) CountLessonsCompletedBetween(ctx context.Context, learnerID uuid.UUID, from, to time.Time) (int, error) {
	var n int
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM lesson_progress
		 WHERE learner_id = $1 AND completed_at IS NOT NULL AND completed_at >= $2 AND completed_at < $3`,
		learnerID, from, to,
	)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// RecentCompletionDates returns up to limit distinct calendar dates (in loc) on which
// the learner completed a lesson, most recent first. Dates are midnight UTC values.
func (r *PostgresActivityRepository) RecentCompletionDates(ctx context.Context, learnerID uuid.UUID, loc *time.Location, limit int) ([]time.Time, error) {
	if limit <= 0 {
		return []time.Time{}, nil
	}
	if loc == nil {
		loc = time.Local
	}

	rows, err := r.db.Query(ctx,
		`SELECT completed_at FROM lesson_progress
		 WHERE learner_id = $1 AND completed_at IS NOT NULL
		 ORDER BY completed_at DESC`,
		learnerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDistinctDates(rows, loc, limit)
}

func collectDistinctDates(rows database.Rows, loc *time.Location, limit int) ([]time.Time, error) {
	out := make([]time.Time, 0, limit)
	seen := make(map[time.Time]struct{}, limit)
	for len(out) < limit && rows.Next() {
		var ts time.Time
		if err := rows.Scan(&ts); err != nil {
			return nil, err
		}
		y, m, d := ts.In(loc).Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		out = append(out, day)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresActivityRepository) CountPerfectQuizAttempts(ctx context.Context, learnerID uuid.UUID, perfectScore int) (int, error) {
	var n int
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM quiz_attempts qa
		 JOIN enrollments e ON e.id = qa.enrollment_id
		 WHERE e.learner_id = $1 AND qa.score = $2`,
		learnerID, perfectScore,
	)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresActivityRepository) CountCertificateShares(ctx context.Context, learnerID uuid.UUID) (int, error) {
	var n int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM certificate_shares WHERE learner_id = $1`, learnerID)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresActivityRepository) HasCompletedCourseWithMinDuration(ctx context.Context, learnerID uuid.UUID, minMinutes int) (bool, error) {
	var ok bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM enrollments e
			JOIN courses c ON c.id = e.course_id
			WHERE e.learner_id = $1 AND e.status = $2 AND c.duration_minutes >= $3
		)`,
		learnerID, enrollmentStatusCompleted, minMinutes,
	)
	if err := row.Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}
