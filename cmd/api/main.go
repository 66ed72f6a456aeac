package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/divelink/backoffice-backend/api/routes"
	"github.com/divelink/backoffice-backend/internal/admins"
	"github.com/divelink/backoffice-backend/internal/audit"
	"github.com/divelink/backoffice-backend/internal/auth"
	"github.com/divelink/backoffice-backend/internal/events"
	"github.com/divelink/backoffice-backend/internal/notifications"
	"github.com/divelink/backoffice-backend/internal/reports"
	"github.com/divelink/backoffice-backend/internal/shops"
	"github.com/divelink/backoffice-backend/internal/support"
	"github.com/divelink/backoffice-backend/internal/users"
	"github.com/divelink/backoffice-backend/pkg/auth/session"
	"github.com/divelink/backoffice-backend/pkg/config"
	"github.com/divelink/backoffice-backend/pkg/db"
	"github.com/divelink/backoffice-backend/pkg/firebase"
	"github.com/divelink/backoffice-backend/pkg/logger"
	"github.com/divelink/backoffice-backend/pkg/metrics"
	"github.com/divelink/backoffice-backend/pkg/migrate"
	"github.com/divelink/backoffice-backend/pkg/pubsub"
	"github.com/divelink/backoffice-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "admin-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "admin-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	fbClient, err := firebase.NewClient(context.Background(), cfg.Firebase, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap firebase", err)
		os.Exit(1)
	}

	var pubsubClient *pubsub.Client
	if cfg.PubSub.AdminEventsTopic != "" {
		pubsubClient, err = pubsub.NewClient(context.Background(), cfg.Firebase.ProjectID, cfg.PubSub, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		defer func() {
			if err := pubsubClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing pubsub", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "admin events topic not configured, domain events disabled")
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	adminMetrics := metrics.NewAdminMetrics(registry)

	publisher := events.NewPublisher(pubsubClient.AdminEventsPublisher(), logg)

	auditService, err := audit.NewService(audit.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create audit service", err)
		os.Exit(1)
	}

	adminsRepo := admins.NewRepository(dbClient.DB())
	directory, err := admins.NewDirectory(adminsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create admin directory", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		AdminRepo:      adminsRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	shopsService, err := shops.NewService(dbClient, shops.NewRepository(dbClient.DB()), auditService, publisher, adminMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create shops service", err)
		os.Exit(1)
	}

	reportsService, err := reports.NewService(dbClient, reports.NewRepository(dbClient.DB()), auditService, publisher, adminMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create reports service", err)
		os.Exit(1)
	}

	supportService, err := support.NewService(dbClient, support.NewRepository(dbClient.DB()), auditService, publisher, adminMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create support service", err)
		os.Exit(1)
	}

	usersService, err := users.NewService(dbClient, users.NewRepository(dbClient.DB()), auditService, publisher, fbClient, adminMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	notificationsService, err := notifications.NewService(notifications.NewRepository(dbClient.DB()), fbClient, auditService, adminMetrics, cfg.Push.BroadcastTopic)
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting admin api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:               cfg,
			Logger:               logg,
			DB:                   dbClient,
			Redis:                redisClient,
			Sessions:             sessionManager,
			Verifier:             fbClient,
			Directory:            directory,
			MetricsHandler:       promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			AuthService:          authService,
			ShopsService:         shopsService,
			ReportsService:       reportsService,
			SupportService:       supportService,
			UsersService:         usersService,
			NotificationsService: notificationsService,
			AuditService:         auditService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "admin api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
