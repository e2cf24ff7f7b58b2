package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/subplatform/cart-backend/pkg/config"
	"github.com/subplatform/cart-backend/pkg/db"
	"github.com/subplatform/cart-backend/pkg/logger"
	"github.com/subplatform/cart-backend/pkg/redis"
)

// newOpsServer exposes liveness, readiness, and metrics for the worker.
// It carries no cart endpoints; the cart API lives in the consuming service.
func newOpsServer(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, redisClient *redis.Client) *http.Server {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", healthLive(cfg))
		r.Get("/ready", healthReady(cfg, logg, dbClient, redisClient))
	})
	r.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:              ":" + cfg.Worker.OpsPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func healthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"env":    cfg.App.Env,
		})
	}
}

func healthReady(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		checks := map[string]string{}
		healthy := true

		if err := dbClient.Ping(ctx); err != nil {
			logg.Error(ctx, "readiness database check failed", err)
			checks["database"] = "down"
			healthy = false
		} else {
			checks["database"] = "ok"
		}

		if err := redisClient.Ping(ctx); err != nil {
			logg.Error(ctx, "readiness redis check failed", err)
			checks["redis"] = "down"
			healthy = false
		} else {
			checks["redis"] = "ok"
		}

		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, map[string]any{
			"status": checks,
			"env":    cfg.App.Env,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
