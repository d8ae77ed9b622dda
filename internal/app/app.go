// Package app assembles repositories and services for the API server and
// the maintenance CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-chi/httplog/v3"
	"github.com/gruamaster/ponto-backend-go/internal/config"
	"github.com/gruamaster/ponto-backend-go/internal/domain/justification"
	"github.com/gruamaster/ponto-backend-go/internal/domain/notification"
	"github.com/gruamaster/ponto-backend-go/internal/domain/report"
	"github.com/gruamaster/ponto-backend-go/internal/domain/timeclock"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/database"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/jwt"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/queue"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/sse"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/storage"
	"github.com/gruamaster/ponto-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/gruamaster/ponto-backend-go/internal/service/auth"
	"github.com/gruamaster/ponto-backend-go/internal/service/file"
	justificationService "github.com/gruamaster/ponto-backend-go/internal/service/justification"
	notificationService "github.com/gruamaster/ponto-backend-go/internal/service/notification"
	reportService "github.com/gruamaster/ponto-backend-go/internal/service/report"
	timeclockService "github.com/gruamaster/ponto-backend-go/internal/service/timeclock"
)

// App holds the wired services. Close releases the pool and stops the
// notification workers.
type App struct {
	Config   *config.Config
	Policy   *config.Policy
	Logger   *slog.Logger
	Location *time.Location

	DB         *database.DB
	JWT        *jwt.JWTService
	Authorizer *serviceAuth.ClaimsAuthorizer

	Records        timeclock.RecordService
	Approvals      timeclock.ApprovalService
	Justifications justification.JustificationService
	Reports        report.ReportService
	Notifications  notification.Service
}

// NewLogger builds the JSON logger with ECS attribute names.
func NewLogger(cfg config.AppConfig) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)

	level := slog.LevelInfo
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "ponto-eletronico"),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)
}

// New connects to the database and wires every service.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	policy, err := config.LoadPolicy(cfg.App.PolicyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", cfg.App.Timezone, err)
	}

	jwtService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.SSEExpiration)
	if err != nil {
		return nil, err
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize local storage: %w", err)
	}

	publisher, err := newPublisher(ctx, cfg.Queue, logger)
	if err != nil {
		return nil, err
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
		TimeZone: cfg.App.Timezone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	recordRepo := postgresql.NewRecordRepository(db)
	alterationRepo := postgresql.NewAlterationRepository(db)
	eventRepo := postgresql.NewApprovalEventRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	justificationRepo := postgresql.NewJustificationRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	authorizer := serviceAuth.NewClaimsAuthorizer(policy.AdminLevel, policy.ManagerRoles)
	fileService := file.NewFileService(fileStorage)
	notifications := notificationService.NewNotificationService(notificationRepo, sse.NewHub(), notificationService.Config{}, logger)

	deps := timeclockService.Dependencies{
		Records:    recordRepo,
		History:    alterationRepo,
		Events:     eventRepo,
		Employees:  employeeRepo,
		Holidays:   holidayRepo,
		Tx:         postgresql.NewTransactor(db),
		Authorizer: authorizer,
		Notifier:   notifications,
		Publisher:  publisher,
		Files:      fileService,
		Policy:     policy,
		Location:   location,
		Logger:     logger,
	}

	return &App{
		Config:     cfg,
		Policy:     policy,
		Logger:     logger,
		Location:   location,
		DB:         db,
		JWT:        jwtService,
		Authorizer: authorizer,

		Records:   timeclockService.NewRecordService(deps),
		Approvals: timeclockService.NewApprovalService(deps),
		Justifications: justificationService.NewJustificationService(
			justificationRepo,
			employeeRepo,
			authorizer,
			fileService,
			notifications,
			location,
			logger,
		),
		Reports:       reportService.NewReportService(recordRepo),
		Notifications: notifications,
	}, nil
}

func newPublisher(ctx context.Context, cfg config.QueueConfig, logger *slog.Logger) (queue.Publisher, error) {
	if cfg.URL == "" {
		logger.Info("QUEUE_URL not set, approval events will not be published")
		return queue.NopPublisher{}, nil
	}
	client, err := queue.NewSQSClient(ctx, cfg.Region, cfg.Endpoint)
	if err != nil {
		return nil, err
	}
	return queue.NewSQSPublisher(client, cfg.URL, logger), nil
}

// Close stops background workers before closing the pool they write to.
func (a *App) Close() {
	a.Notifications.Stop()
	a.DB.Close()
}
