package controllers

import (
	"net/http"

	"github.com/nmoreno/bazaar-backend/api/responses"
	"github.com/nmoreno/bazaar-backend/pkg/config"
	"github.com/nmoreno/bazaar-backend/pkg/db"
	pkgerrors "github.com/nmoreno/bazaar-backend/pkg/errors"
	"github.com/nmoreno/bazaar-backend/pkg/logger"
	"github.com/nmoreno/bazaar-backend/pkg/redis"
)

const envHeader = "X-Bazaar-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when the database and redis answer a ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		if dbP == nil || redisP == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "health dependencies unavailable"))
			return
		}

		if err := dbP.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database ping"))
			return
		}
		if err := redisP.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis ping"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
