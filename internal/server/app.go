// Package server initializes and runs the toldya server: it opens the
// configured message store, builds the message service and serves it over
// HTTP next to a gRPC health endpoint until a signal arrives.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/toldya/internal/logging"
	"github.com/dmitrijs2005/toldya/internal/server/config"
	"github.com/dmitrijs2005/toldya/internal/server/repositories/messages"
	"github.com/dmitrijs2005/toldya/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/toldya/internal/server/services"

	gs "github.com/dmitrijs2005/toldya/internal/server/grpc"
	hs "github.com/dmitrijs2005/toldya/internal/server/http"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	logCloser  io.Closer
	repos      repomanager.RepositoryManager
	messages   *services.MessageService
	httpServer *hs.Server
	grpcServer *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	sl, logCloser := logging.New(logging.Options{Level: c.LogLevel, File: c.LogFile})
	logger := logging.NewSlogLogger(sl)

	rm, err := repomanager.Open(ctx, c)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	var repo messages.Repository = messages.NewInstrumentedRepository(rm.Messages(), rm.Backend())
	if c.CacheSize > 0 {
		repo = messages.NewCachedRepository(repo, c.CacheSize, c.CacheTTL)
	}

	ms := services.NewMessageService(repo, logger.With("module", "messages"))

	router := hs.NewRouter(hs.NewHandlers(ms, logger), logger.With("module", "http"), c.RequestTimeout)

	return &App{
		config:     c,
		logger:     logger,
		logCloser:  logCloser,
		repos:      rm,
		messages:   ms,
		httpServer: hs.NewServer(c.EndpointAddrHTTP, router, logger, c.ShutdownTimeout),
		grpcServer: gs.NewGRPCServer(c.EndpointAddrGRPC, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// runServer runs one server; a failure stops the whole app.
func (app *App) runServer(ctx context.Context, cancelFunc context.CancelFunc, name string, run func(context.Context) error) {
	if err := run(ctx); err != nil {
		app.logger.Error(ctx, "server failed", "server", name, "error", err)
		cancelFunc()
	}
}

// Run blocks until a termination signal arrives, ctx is cancelled or one of
// the servers fails, then releases the store and the log file.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.repos.Backend())

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.runServer(ctx, cancelFunc, "http", app.httpServer.Run)
	}()
	go func() {
		defer wg.Done()
		app.runServer(ctx, cancelFunc, "grpc", app.grpcServer.Run)
	}()

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "closing storage", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
	_ = app.logCloser.Close()
}
