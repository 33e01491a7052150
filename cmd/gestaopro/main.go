package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gestaopro/gestaopro/internal/app"
	"github.com/gestaopro/gestaopro/internal/backup"
	"github.com/gestaopro/gestaopro/internal/cashmovements"
	"github.com/gestaopro/gestaopro/internal/dispatch"
	"github.com/gestaopro/gestaopro/internal/marketplace"
	"github.com/gestaopro/gestaopro/internal/media"
	"github.com/gestaopro/gestaopro/internal/platform/db"
	"github.com/gestaopro/gestaopro/internal/products"
	"github.com/gestaopro/gestaopro/internal/sales"
	"github.com/gestaopro/gestaopro/internal/users"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		logger.Error("ensure schema", slog.Any("error", err))
		os.Exit(1)
	}

	userService := users.NewService(logger, users.NewRepository(pool))
	if err := userService.SeedDefaults(ctx); err != nil {
		logger.Error("seed users", slog.Any("error", err))
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Error("create upload dir", slog.Any("error", err))
		os.Exit(1)
	}

	dispatchHandler := dispatch.NewHandler(
		logger,
		cashmovements.NewService(cashmovements.NewRepository(pool)),
		products.NewService(products.NewRepository(pool)),
		sales.NewService(sales.NewRepository(pool)),
		marketplace.NewService(marketplace.NewRepository(pool)),
		userService,
	)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		DispatchHandler: dispatchHandler,
		LoginHandler:    users.NewHandler(logger, userService),
		MediaHandler:    media.NewHandler(logger, cfg.UploadDir),
		BackupHandler:   backup.NewHandler(logger),
	})

	srv := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("servidor iniciado", slog.String("addr", cfg.AppAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("servidor encerrado")
}
