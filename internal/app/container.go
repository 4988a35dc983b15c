package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"learnmatch/internal/config"
	"learnmatch/internal/database"
	"learnmatch/internal/database/migration"
	dbpostgres "learnmatch/internal/database/postgres"
	"learnmatch/internal/database/seeder"
	"learnmatch/internal/events"
	"learnmatch/internal/infrastructure/cache"
	"learnmatch/internal/pkg/jwt"
	"learnmatch/internal/repository"
	"learnmatch/internal/usecase"
	ucauth "learnmatch/internal/usecase/auth"
	learneruc "learnmatch/internal/usecase/learner"
	"learnmatch/internal/ws"

	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

// Container owns the long-lived dependencies shared by the HTTP server and the
// admin commands.
type Container struct {
	Config   config.Config
	Logger   *zap.Logger
	Location *time.Location

	DB    database.DB
	Cache *cache.Redis
	JWT   *jwt.HMACService

	Learners  *repository.PostgresLearnerRepository
	Profiles  *repository.PostgresAptitudeProfileRepository
	Jobs      *repository.PostgresJobPostingRepository
	Activity  *repository.PostgresActivityRepository
	BadgeRepo *repository.PostgresBadgeRepository

	Auth     *usecase.Auth
	Learner  *learneruc.Service
	Aptitude *usecase.Aptitude
	Matching *usecase.Matching
	Badges   *usecase.Badges

	Hub        *ws.Hub
	Dispatcher *events.Dispatcher
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := cfg.App.Location()
	if err != nil {
		return nil, fmt.Errorf("load APP_TIMEZONE: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, Logger: logger, Location: loc, DB: db}
	c.Cache = cache.NewRedis(cfg.Redis, logger)
	c.JWT = jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	c.Learners = repository.NewPostgresLearnerRepository(db)
	c.Profiles = repository.NewPostgresAptitudeProfileRepository(db)
	c.Jobs = repository.NewPostgresJobPostingRepository(db)
	c.Activity = repository.NewPostgresActivityRepository(db)
	c.BadgeRepo = repository.NewPostgresBadgeRepository(db)

	c.Auth = usecase.NewAuthUsecase(ucauth.NewService(c.Learners), c.Learners, c.JWT)
	c.Learner = learneruc.NewService(c.Learners)
	c.Aptitude = usecase.NewAptitudeUsecase(c.Learners, c.Profiles, c.Cache, logger)
	c.Matching = usecase.NewMatchingUsecase(c.Profiles, c.Jobs, c.Cache, cfg.Redis.TTL, logger)
	c.Badges = usecase.NewBadgesUsecase(c.Learners, c.Activity, c.BadgeRepo, loc, logger)

	c.Hub = ws.NewHub(logger)
	c.Dispatcher = events.NewDispatcher(cfg.Events.QueueSize, c.Badges, c.Hub, logger)

	return c, nil
}

// Migrate applies pending SQL migrations from the configured directory.
func (c *Container) Migrate(ctx context.Context) (int, error) {
	sqlDB := c.DB.SQLDB()
	if sqlDB == nil {
		return 0, database.ErrNilDB
	}
	r := migration.Runner{Dir: c.Config.Database.MigrationsDir, Logger: c.Logger}
	return r.Run(ctx, sqlDB)
}

func (c *Container) Seed(ctx context.Context) error {
	r := seeder.Runner{Seeders: seeder.Defaults(), Logger: c.Logger}
	return r.Run(ctx, c.DB)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
