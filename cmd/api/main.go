package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/homely-bites/internal/audit"
	"github.com/BruksfildServices01/homely-bites/internal/cache"
	"github.com/BruksfildServices01/homely-bites/internal/config"
	dbpkg "github.com/BruksfildServices01/homely-bites/internal/db"
	"github.com/BruksfildServices01/homely-bites/internal/events"
	"github.com/BruksfildServices01/homely-bites/internal/logger"
	"github.com/BruksfildServices01/homely-bites/internal/media"
	"github.com/BruksfildServices01/homely-bites/internal/routes"
)

const serviceName = "homely-bites-api"

func main() {
	cfg := config.Load()
	log := logger.New(serviceName, cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// STORAGE
	// ======================================================
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}
	defer dbpkg.Close(db)

	if ok, err := dbpkg.AdminLoginAvailable(ctx, db, cfg); err != nil {
		log.Warn("admin check failed", "error", err)
	} else if !ok {
		log.Warn("no admin can sign in: ADMIN_PASSWORD is empty and the admins table has no rows")
	}

	store, err := media.NewStore(cfg.Media)
	if err != nil {
		return err
	}

	c := cache.Connect(cfg.RedisURL, cfg.CacheTTL, log)
	defer c.Close()

	// ======================================================
	// EVENTS
	// ======================================================
	var publisher events.Publisher = events.Nop{}
	if cfg.AMQPUrl != "" {
		amqpPub, err := events.NewAMQPPublisher(cfg.AMQPUrl, cfg.AMQPExchange, log)
		if err != nil {
			log.Warn("event publishing disabled", "error", err)
		} else {
			defer amqpPub.Close()
			publisher = amqpPub
		}
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db))
	defer auditDispatcher.Close()

	// ======================================================
	// HTTP
	// ======================================================
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	routes.RegisterRoutes(r, routes.Deps{
		DB:        db,
		Config:    cfg,
		Log:       log,
		Audit:     auditDispatcher,
		Cache:     c,
		Publisher: publisher,
		Media:     store,
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", "addr", cfg.Addr(), "db_driver", cfg.DBDriver, "media", cfg.Media.Backend, "cache", c.Enabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
