package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gruamaster/ponto-backend-go/internal/app"
	"github.com/gruamaster/ponto-backend-go/internal/config"
	appHTTP "github.com/gruamaster/ponto-backend-go/internal/handler/http"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/cron"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	logger := app.NewLogger(cfg.App)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.App.Version, cfg.Telemetry.Endpoint)
		if err != nil {
			log.Fatal("Failed to initialize tracing: ", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				logger.Error("tracer shutdown failed", slog.Any("error", err))
			}
		}()
	}

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		log.Fatal("Failed to start application: ", err)
	}
	defer application.Close()

	var scheduler *cron.Scheduler
	if cfg.Cron.Enabled {
		scheduler = cron.NewScheduler(logger)
		cron.NewRecalculationJobs(application.Records, application.Location).RegisterJobs(scheduler)
		scheduler.Start()
	}

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Logger:      logger,
			CORSOrigins: cfg.App.CORSOrigins,
			UploadDir:   cfg.Storage.BasePath,
		},
		application.JWT,
		application.Authorizer,
		appHTTP.NewTimeclockHandler(application.Records, application.Approvals),
		appHTTP.NewJustificationHandler(application.Justifications),
		appHTTP.NewReportHandler(application.Reports),
		appHTTP.NewNotificationHandler(application.Notifications, application.JWT),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           otelhttp.NewHandler(router, "ponto-api"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
	}
	if scheduler != nil {
		scheduler.Stop()
	}
}
