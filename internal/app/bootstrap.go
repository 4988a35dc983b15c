package app

import (
	"context"
	"fmt"
	"strings"

	"learnmatch/internal/config"
	"learnmatch/internal/delivery/http/handler"
	"learnmatch/internal/delivery/http/middleware"
	"learnmatch/internal/delivery/http/routes"
	v1 "learnmatch/internal/delivery/http/routes/v1"
	"learnmatch/internal/delivery/http/validation"
	"learnmatch/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container and HTTP app. Migrations and seeders run first
// when enabled in config.
func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Database.RunMigrations {
		n, err := c.Migrate(ctx)
		if err != nil {
			_ = c.Close()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		c.Logger.Info("migrations applied", zap.Int("count", n))
	}
	if cfg.Database.RunSeeders {
		if err := c.Seed(ctx); err != nil {
			_ = c.Close()
			return nil, nil, fmt.Errorf("run seeders: %w", err)
		}
	}

	return New(c), c.Close, nil
}

// StartBackground runs the websocket hub and the event dispatcher until ctx is
// done.
func (a *App) StartBackground(ctx context.Context) {
	go a.Container.Hub.Run(ctx)
	go a.Container.Dispatcher.Run(ctx)
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	accessMw := middleware.NewAccessLogMiddleware(logger)
	errMw := middleware.NewErrorMiddleware(logger)
	app.Use(accessMw.Middleware())
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	v := validation.New()
	authMw := middleware.NewAuthMiddleware(c.JWT)
	limiter := middleware.NewRateLimiter(c.Config.RateLimit.EvaluatePerMinute)

	deps := v1.Deps{
		Auth:     handler.NewAuthHandler(c.Auth, v),
		Learner:  handler.NewLearnerHandler(c.Learner),
		Aptitude: handler.NewAptitudeHandler(c.Aptitude, v),
		Match:    handler.NewMatchHandler(c.Matching, v),
		Badges:   handler.NewBadgeHandler(c.Badges, c.Hub),
		Events:   handler.NewEventHandler(c.Dispatcher, v),

		RequireLearner:  authMw.Middleware(),
		RequireInternal: middleware.InternalToken(c.Config.App.InternalToken),
		EvaluateLimiter: limiter.Middleware(),
	}

	health := handler.NewHealthHandler(c.DB, c.Cache)
	wsHandler := ws.NewHandler(c.Hub, c.Logger)

	routes.NewRegistry(health, deps, authMw.WebSocket(), wsHandler.HandleBadgesWS).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
