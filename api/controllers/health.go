package controllers

import (
	"context"
	"net/http"

	"go.uber.org/multierr"

	"github.com/brewopshq/brewhaus-backend/api/responses"
	"github.com/brewopshq/brewhaus-backend/pkg/config"
	pkgerrors "github.com/brewopshq/brewhaus-backend/pkg/errors"
	"github.com/brewopshq/brewhaus-backend/pkg/logger"
)

// Pinger is the health-check surface of a backing dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Brewhaus-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness of the database and, when configured, redis.
// A nil cache is skipped rather than failing the check.
func HealthReady(cfg *config.Config, db Pinger, cache Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Brewhaus-Env", cfg.App.Env)

		var errs []error
		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				errs = append(errs, err)
			}
		}
		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				errs = append(errs, err)
			}
		}

		if combined := multierr.Combine(errs...); combined != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "dependency not ready"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
