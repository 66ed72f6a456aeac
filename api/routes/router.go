package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/divelink/backoffice-backend/api/controllers"
	"github.com/divelink/backoffice-backend/api/middleware"
	"github.com/divelink/backoffice-backend/internal/audit"
	"github.com/divelink/backoffice-backend/internal/auth"
	"github.com/divelink/backoffice-backend/internal/notifications"
	"github.com/divelink/backoffice-backend/internal/reports"
	"github.com/divelink/backoffice-backend/internal/shops"
	"github.com/divelink/backoffice-backend/internal/support"
	"github.com/divelink/backoffice-backend/internal/users"
	"github.com/divelink/backoffice-backend/pkg/auth/session"
	"github.com/divelink/backoffice-backend/pkg/config"
	"github.com/divelink/backoffice-backend/pkg/db"
	"github.com/divelink/backoffice-backend/pkg/enums"
	"github.com/divelink/backoffice-backend/pkg/logger"
	"github.com/divelink/backoffice-backend/pkg/redis"
)

// Deps carries everything the HTTP surface needs. The optional fields
// (Verifier, MetricsHandler) degrade gracefully when nil.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          *redis.Client
	Sessions       session.AccessSessionChecker
	Verifier       middleware.IdentityVerifier
	Directory      middleware.AdminDirectory
	MetricsHandler http.Handler

	AuthService          auth.Service
	ShopsService         shops.Service
	ReportsService       reports.Service
	SupportService       support.Service
	UsersService         users.Service
	NotificationsService notifications.Service
	AuditService         audit.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	// A typed-nil *redis.Client must not reach the idempotency layer as
	// a non-nil interface.
	var idemStore redis.IdempotencyStore
	if deps.Redis != nil {
		idemStore = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, readyChecks(deps)...))
	})

	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		login := controllers.AuthLogin(deps.AuthService, logg)
		if deps.Redis != nil {
			r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", login)
		} else {
			r.Post("/login", login)
		}
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Verifier, deps.Sessions, deps.Directory, logg))
			r.Get("/me", controllers.AuthMe(deps.AuthService, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Verifier, deps.Sessions, deps.Directory, logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		// Moderator surface: review queues plus the moderation actions
		// that never touch account standing or terminal statuses.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.AdminRoleModerator, logg))

			r.Route("/applications", func(r chi.Router) {
				r.Get("/", controllers.ListApplications(deps.ShopsService, logg))
				r.Get("/{applicationId}", controllers.GetApplication(deps.ShopsService, logg))
			})
			r.Route("/reports", func(r chi.Router) {
				r.Get("/", controllers.ListReports(deps.ReportsService, logg))
				r.Get("/{reportId}", controllers.GetReport(deps.ReportsService, logg))
				r.Post("/{reportId}/action", controllers.ActionReport(deps.ReportsService, logg))
			})
			r.Route("/support/tickets", func(r chi.Router) {
				r.Get("/", controllers.ListTickets(deps.SupportService, logg))
				r.Get("/{ticketId}", controllers.GetTicket(deps.SupportService, logg))
				r.Post("/{ticketId}/replies", controllers.ReplyTicket(deps.SupportService, logg))
			})
			r.Route("/users", func(r chi.Router) {
				r.Get("/", controllers.ListUsers(deps.UsersService, logg))
				r.Get("/{userUid}", controllers.GetUser(deps.UsersService, logg))
				r.Post("/{userUid}/action", controllers.ActionUser(deps.UsersService, logg))
			})
			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", controllers.ListNotifications(deps.NotificationsService, logg))
				r.Get("/{notificationId}", controllers.GetNotification(deps.NotificationsService, logg))
			})
		})

		// Admin surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.AdminRoleAdmin, logg))

			r.Post("/applications/{applicationId}/approve", controllers.ApproveApplication(deps.ShopsService, logg))
			r.Post("/applications/{applicationId}/reject", controllers.RejectApplication(deps.ShopsService, logg))
			r.Post("/notifications/send", controllers.SendNotification(deps.NotificationsService, logg))
			r.Get("/audit", controllers.ListAuditLog(deps.AuditService, logg))
		})
	})

	return r
}

func readyChecks(deps Deps) []func() error {
	checks := []func() error{}
	if deps.DB != nil {
		checks = append(checks, func() error { return deps.DB.Ping(context.Background()) })
	}
	if deps.Redis != nil {
		checks = append(checks, func() error { return deps.Redis.Ping(context.Background()) })
	}
	return checks
}
