package controllers

import (
	"net/http"

	"go.uber.org/multierr"

	"github.com/divelink/backoffice-backend/api/responses"
	"github.com/divelink/backoffice-backend/pkg/config"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-DiveLink-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, checks ...func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-DiveLink-Env", cfg.App.Env)
		var failures error
		for _, check := range checks {
			if check == nil {
				continue
			}
			failures = multierr.Append(failures, check())
		}
		if failures != nil {
			responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  failures.Error(),
			})
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
