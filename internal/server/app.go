// Package server wires configuration, storage, services and the HTTP and
// gRPC health listeners into a runnable application.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/bloglist/internal/logging"
	"github.com/dmitrijs2005/bloglist/internal/server/auth"
	"github.com/dmitrijs2005/bloglist/internal/server/config"
	"github.com/dmitrijs2005/bloglist/internal/server/health"
	"github.com/dmitrijs2005/bloglist/internal/server/httpapi"
	"github.com/dmitrijs2005/bloglist/internal/server/reports"
	"github.com/dmitrijs2005/bloglist/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bloglist/internal/server/services"
)

const healthCheckInterval = 15 * time.Second

// openPostgres is a seam for tests.
var openPostgres = func(ctx context.Context, dsn string, maxConns int32) (repomanager.RepositoryManager, error) {
	return repomanager.OpenPostgres(ctx, dsn, maxConns)
}

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	userService *services.UserService
	postService *services.PostService
	archiver    httpapi.Archiver
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(os.Stdout, c.LogLevel, c.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	rm, err := openStorage(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	tokens := auth.NewTokenService([]byte(c.SecretKey), c.TokenTTL)
	hasher := auth.NewBcryptHasher(c.BcryptCost)

	app := &App{
		config:      c,
		logger:      logger,
		repomanager: rm,
		userService: services.NewUserService(rm, tokens, hasher, logger.With("module", "user_service")),
		postService: services.NewPostService(rm, c.UpdatePolicy == config.UpdatePolicyOwner, logger.With("module", "post_service")),
	}
	if c.ArchiveEnabled() {
		app.archiver = reports.NewArchiver(c)
	}

	return app, nil
}

func openStorage(ctx context.Context, c *config.Config) (repomanager.RepositoryManager, error) {
	switch c.Storage {
	case config.StoragePostgres:
		return openPostgres(ctx, c.DatabaseDSN, c.DatabaseMaxConns)
	case config.StorageMemory:
		return repomanager.NewMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unknown storage %q", c.Storage)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.HTTPAddr, app.logger, app.userService, app.postService, app.archiver, app.config.ShutdownTimeout)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHealthServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := health.NewServer(app.config.HealthAddrGRPC, app.logger, app.repomanager, healthCheckInterval)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// waits for both listeners and closes storage.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.Storage, "update_policy", app.config.UpdatePolicy)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.HealthAddrGRPC != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startHealthServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	if err := app.repomanager.Close(); err != nil {
		app.logger.Error(ctx, "storage close error", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")
}
