package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"custody/cmd"
	httpadapter "custody/internal/adapters/in/http"
	"custody/internal/adapters/out/postgres/migrations"
	"custody/internal/pkg/logger"

	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	config, err := cmd.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(config.AppEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}

	os.Exit(logger.Run(log, "custody service stopped", func() error {
		return run(config, log)
	}))
}

func run(config cmd.Config, log *zap.Logger) error {
	if err := migrations.Up(config.DSN()); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	app, err := cmd.NewCompositionRoot(config, gormDB, log)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			log.Warn("shutdown was not clean", zap.Error(closeErr))
		}
	}()

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return startWebServer(ctx, app, config.HTTPPort, log)
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, log *zap.Logger) error {
	e := httpadapter.NewEcho(app.CreateHTTPServer())

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("port", port))
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
