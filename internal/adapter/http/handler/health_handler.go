package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// EnginePinger reports whether the simulation engine is reachable.
type EnginePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	engine      EnginePinger
	redisClient *redis.Client
}

// NewHealthHandler creates a new HealthHandler. The redis client may be nil
// when result caching is disabled.
func NewHealthHandler(engine EnginePinger, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		engine:      engine,
		redisClient: redisClient,
	}
}

// Liveness returns 200 if the service is alive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness returns 200 if the service is ready to accept traffic.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Check the simulation engine
	if err := h.engine.Ping(ctx); err != nil {
		writeError(w, http.StatusServiceUnavailable, "engine unhealthy", err.Error())
		return
	}

	status := map[string]string{
		"status": "ready",
		"engine": "ok",
	}

	// Check Redis when configured
	if h.redisClient != nil {
		if err := h.redisClient.Ping(ctx).Err(); err != nil {
			writeError(w, http.StatusServiceUnavailable, "redis unhealthy", err.Error())
			return
		}
		status["redis"] = "ok"
	}

	writeJSON(w, http.StatusOK, status)
}
