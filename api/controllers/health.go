package controllers

import (
	"context"
	"net/http"

	"github.com/grocerly/grocerly-backend/api/responses"
	"github.com/grocerly/grocerly-backend/pkg/config"
	pkgerrors "github.com/grocerly/grocerly-backend/pkg/errors"
	"github.com/grocerly/grocerly-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Root answers the bare health check the frontend hits on boot.
func Root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Server is Live!"))
	}
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Grocerly-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness after pinging the datasources. A nil redis
// pinger means redis is not configured and is skipped.
func HealthReady(cfg *config.Config, db pinger, redis pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Grocerly-Env", cfg.App.Env)

		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
				return
			}
		}
		if redis != nil {
			if err := redis.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unreachable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
