package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"copydesk/pkg/cache"
	"copydesk/pkg/config"
	xhttp "copydesk/pkg/http"
	applogger "copydesk/pkg/logger"
	"copydesk/pkg/queue"
)

// LiveHub is the websocket fan-out the app closes on shutdown.
type LiveHub interface {
	Close()
}

// AuditCloser is the audit publisher's shutdown surface.
type AuditCloser interface {
	Close() error
}

// App encapsulates the application lifecycle.
type App struct {
	cfg     *config.Config
	logger  *applogger.Logger
	handler xhttp.Handler
	cache   cache.Service
	audit   AuditCloser
	hub     LiveHub
	requeue *queue.RedisQueue

	httpServer *xhttp.Server
}

// New creates the application from its wired dependencies.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	c cache.Service,
	audit AuditCloser,
	hub LiveHub,
	requeue *queue.RedisQueue,
) *App {
	return &App{
		cfg:     cfg,
		logger:  l,
		handler: handler,
		cache:   c,
		audit:   audit,
		hub:     hub,
		requeue: requeue,
	}
}

// Run starts the HTTP server and blocks until interrupted.
func (a *App) Run() error {
	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithHost(a.cfg.Server.Host),
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(a.cfg.Server.CORS),
		xhttp.WithLogger(a.logger),
	)

	if a.requeue != nil {
		if err := a.requeue.Start(); err != nil {
			a.logger.Error("resubmission queue start", applogger.Error(err))
			return err
		}
	}

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start", applogger.Error(err))
		return err
	}
	a.logger.Info("copydesk listening",
		applogger.String("host", a.cfg.Server.Host),
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("environment", a.cfg.Environment))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http shutdown", applogger.Error(err))
	}

	if a.hub != nil {
		a.hub.Close()
	}

	if a.requeue != nil {
		if err := a.requeue.Stop(ctx); err != nil {
			a.logger.Warn("resubmission queue stop", applogger.Error(err))
		}
	}

	a.logger.RemoveCollector()

	if a.audit != nil {
		if err := a.audit.Close(); err != nil {
			a.logger.Warn("audit publisher close", applogger.Error(err))
		}
	}

	if closer, ok := a.cache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			a.logger.Warn("cache close", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
