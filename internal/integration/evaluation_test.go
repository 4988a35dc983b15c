package integration

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"learnmatch/internal/config"
	"learnmatch/internal/database"
	"learnmatch/internal/database/migration"
	dbpostgres "learnmatch/internal/database/postgres"
	"learnmatch/internal/database/seeder"
	"learnmatch/internal/domain/badge"
	"learnmatch/internal/domain/learner"
	"learnmatch/internal/domain/matching"
	"learnmatch/internal/repository"
	"learnmatch/internal/usecase"

	"github.com/google/uuid"
)

func TestIntegration_BadgeEvaluation_And_Match(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	runMigrations(t, ctx, db)
	if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(ctx, db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	seed := seedLearner(t, ctx, db)
	defer cleanupSeed(t, ctx, db, seed)

	learners := repository.NewPostgresLearnerRepository(db)
	badges := usecase.NewBadgesUsecase(
		learners,
		repository.NewPostgresActivityRepository(db),
		repository.NewPostgresBadgeRepository(db),
		time.UTC,
		nil,
	)

	awarded, err := badges.Evaluate(ctx, seed.learnerID)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	sort.Strings(awarded)
	want := []string{badge.SlugConsistent, badge.SlugMarathon, badge.SlugQuickLearner, badge.SlugQuizMaster, badge.SlugSocialLearner}
	if strings.Join(awarded, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, awarded)
	}

	again, err := badges.Evaluate(ctx, seed.learnerID)
	if err != nil {
		t.Fatalf("second evaluate: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("expected no new awards on second evaluation, got %v", again)
	}

	held, err := badges.ListAwards(ctx, seed.learnerID)
	if err != nil {
		t.Fatalf("list awards: %v", err)
	}
	if len(held) != len(want) {
		t.Fatalf("expected %d held badges, got %d", len(want), len(held))
	}

	if _, err := badges.Evaluate(ctx, uuid.New()); err == nil {
		t.Fatalf("expected error for unknown learner")
	}

	profiles := repository.NewPostgresAptitudeProfileRepository(db)
	match := usecase.NewMatchingUsecase(profiles, repository.NewPostgresJobPostingRepository(db), nil, 0, nil)

	res, err := match.ComputeMatchForJob(ctx, seed.learnerID, seed.jobID)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	// advanced (90*0.6) + category interest (20), job type not a goal
	if res.Value != 74 || res.Label != matching.LabelGoodMatch {
		t.Fatalf("expected 74 Good Match, got %v %s", res.Value, res.Label)
	}

	res, err = match.ComputeMatchForJob(ctx, seed.otherLearnerID, seed.jobID)
	if err != nil {
		t.Fatalf("match without profile: %v", err)
	}
	if res.Value != 0 || res.Label != matching.LabelNotAFit {
		t.Fatalf("expected Not a Fit for learner without profile, got %v %s", res.Value, res.Label)
	}
}

func TestIntegration_ConcurrentAwardsCollapse(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	runMigrations(t, ctx, db)
	if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(ctx, db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	seed := seedLearner(t, ctx, db)
	defer cleanupSeed(t, ctx, db, seed)

	repo := repository.NewPostgresBadgeRepository(db)
	b, err := repo.FindBySlug(ctx, badge.SlugSocialLearner)
	if err != nil {
		t.Fatalf("find badge: %v", err)
	}

	var (
		mu      sync.Mutex
		created int
		wg      sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.UpsertAward(ctx, seed.learnerID, b.ID)
			if err != nil {
				t.Errorf("upsert award: %v", err)
				return
			}
			if ok {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if created != 1 {
		t.Fatalf("expected exactly one insert, got %d", created)
	}
}

type seededIDs struct {
	learnerID      uuid.UUID
	otherLearnerID uuid.UUID
	categoryID     uuid.UUID
	jobTypeID      uuid.UUID
	jobID          uuid.UUID
	courseIDs      []uuid.UUID
}

func seedLearner(t *testing.T, ctx context.Context, db database.DB) seededIDs {
	t.Helper()

	out := seededIDs{
		learnerID:      uuid.New(),
		otherLearnerID: uuid.New(),
		categoryID:     uuid.New(),
		jobTypeID:      uuid.New(),
		jobID:          uuid.New(),
	}

	learners := repository.NewPostgresLearnerRepository(db)
	for _, id := range []uuid.UUID{out.learnerID, out.otherLearnerID} {
		l := learner.Learner{ID: id, Email: "it-" + id.String() + "@example.com", PasswordHash: "x"}
		if err := learners.Create(ctx, l); err != nil {
			t.Fatalf("create learner: %v", err)
		}
	}

	mustExec(t, ctx, db, `INSERT INTO job_categories (id, name) VALUES ($1, $2)`, out.categoryID, "it-cat-"+out.categoryID.String())
	mustExec(t, ctx, db, `INSERT INTO job_types (id, name) VALUES ($1, $2)`, out.jobTypeID, "it-type-"+out.jobTypeID.String())
	mustExec(t, ctx, db,
		`INSERT INTO job_postings (id, employer_id, title, category_id, job_type_id) VALUES ($1, $2, $3, $4, $5)`,
		out.jobID, uuid.New(), "Backend Engineer", out.categoryID, out.jobTypeID,
	)
	mustExec(t, ctx, db, `INSERT INTO job_posting_skills (job_posting_id, skill_name, position) VALUES ($1, 'Go', 0), ($1, 'SQL', 1)`, out.jobID)

	_, err := repository.NewPostgresAptitudeProfileRepository(db).Create(ctx, learner.AptitudeProfile{
		LearnerID:   out.learnerID,
		SkillLevel:  learner.SkillLevelAdvanced,
		Interests:   learner.NewIDSet(out.categoryID),
		CareerGoals: learner.NewIDSet(uuid.New()),
	})
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		mustExec(t, ctx, db,
			`INSERT INTO lesson_progress (id, learner_id, lesson_id, completed_at) VALUES ($1, $2, $3, $4)`,
			uuid.New(), out.learnerID, uuid.New(), today.Add(time.Duration(i+1)*time.Minute),
		)
	}
	for d := 1; d < 7; d++ {
		mustExec(t, ctx, db,
			`INSERT INTO lesson_progress (id, learner_id, lesson_id, completed_at) VALUES ($1, $2, $3, $4)`,
			uuid.New(), out.learnerID, uuid.New(), today.AddDate(0, 0, -d).Add(10*time.Hour),
		)
	}

	longCourse, shortCourse := uuid.New(), uuid.New()
	out.courseIDs = []uuid.UUID{longCourse, shortCourse}
	mustExec(t, ctx, db, `INSERT INTO courses (id, title, duration_minutes) VALUES ($1, 'Long', 1200), ($2, 'Short', 60)`, longCourse, shortCourse)

	longEnrollment, shortEnrollment := uuid.New(), uuid.New()
	mustExec(t, ctx, db,
		`INSERT INTO enrollments (id, learner_id, course_id, status, progress) VALUES ($1, $2, $3, 'completed', 100), ($4, $2, $5, 'active', 10)`,
		longEnrollment, out.learnerID, longCourse, shortEnrollment, shortCourse,
	)
	for i := 0; i < 5; i++ {
		enrollment := longEnrollment
		if i%2 == 1 {
			enrollment = shortEnrollment
		}
		mustExec(t, ctx, db,
			`INSERT INTO quiz_attempts (id, enrollment_id, quiz_id, score) VALUES ($1, $2, $3, 100)`,
			uuid.New(), enrollment, uuid.New(),
		)
	}
	mustExec(t, ctx, db,
		`INSERT INTO quiz_attempts (id, enrollment_id, quiz_id, score) VALUES ($1, $2, $3, 99.5)`,
		uuid.New(), longEnrollment, uuid.New(),
	)

	for i := 0; i < 3; i++ {
		mustExec(t, ctx, db,
			`INSERT INTO certificate_shares (id, learner_id, certificate_id, platform) VALUES ($1, $2, $3, 'linkedin')`,
			uuid.New(), out.learnerID, uuid.New(),
		)
	}

	return out
}

func cleanupSeed(t *testing.T, ctx context.Context, db database.DB, seed seededIDs) {
	t.Helper()

	_, _ = db.Exec(ctx, `DELETE FROM learners WHERE id = $1 OR id = $2`, seed.learnerID, seed.otherLearnerID)
	_, _ = db.Exec(ctx, `DELETE FROM job_postings WHERE id = $1`, seed.jobID)
	_, _ = db.Exec(ctx, `DELETE FROM job_categories WHERE id = $1`, seed.categoryID)
	_, _ = db.Exec(ctx, `DELETE FROM job_types WHERE id = $1`, seed.jobTypeID)
	for _, id := range seed.courseIDs {
		_, _ = db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	}
}

func mustExec(t *testing.T, ctx context.Context, db database.DB, query string, args ...any) {
	t.Helper()
	if _, err := db.Exec(ctx, query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := stringsOrDefault(os.Getenv("LEARNMATCH_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("LEARNMATCH_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("LEARNMATCH_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := stringsOrDefault(os.Getenv("LEARNMATCH_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("LEARNMATCH_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("LEARNMATCH_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set LEARNMATCH_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if ssl == "" {
		ssl = "disable"
	}

	db, err := dbpostgres.Connect(ctx, config.DatabaseConfig{
		DBHost:         host,
		DBPort:         port,
		DBName:         name,
		DBUser:         user,
		DBPassword:     pass,
		DBSSLMode:      ssl,
		ConnectTimeout: 5 * time.Second,
	}, nil)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, ctx context.Context, db database.DB) {
	t.Helper()

	r := migration.Runner{Dir: resolveMigrationsDir(t)}
	if _, err := r.Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
}

func resolveMigrationsDir(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("resolve migrations dir: runtime.Caller failed")
	}

	// this file: internal/integration/evaluation_test.go
	root := filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
	migDir := filepath.Join(root, "migrations")

	if st, err := os.Stat(migDir); err != nil || !st.IsDir() {
		t.Fatalf("resolve migrations dir: not found or not a dir: %s", migDir)
	}
	return migDir
}

func stringsOrDefault(v, def string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return def
}
