package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"

	"github.com/onurcolak/sms-relay/pkg/redis"
)

type brokerConn interface {
	IsConnected() bool
}

// HealthHandler handles health checks.
type HealthHandler struct {
	db           *sqlx.DB
	redis        *redis.Client
	broker       brokerConn
	checkTimeout time.Duration
}

// NewHealthHandler builds the handler. redisClient and broker may be nil
// when the cache or NATS is disabled.
func NewHealthHandler(db *sqlx.DB, redisClient *redis.Client, broker brokerConn) *HealthHandler {
	return &HealthHandler{
		db:           db,
		redis:        redisClient,
		broker:       broker,
		checkTimeout: 2 * time.Second,
	}
}

// Health returns overall status and the status of each dependency.
// @Summary Health check
// @Description Database is required; the telephone cache and NATS only degrade the service
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.checkTimeout)
	defer cancel()

	overallStatus := "ok"

	dbStatus := "up"
	if h.db == nil {
		dbStatus = "down"
		overallStatus = "down"
	} else if err := h.db.PingContext(ctx); err != nil {
		dbStatus = "down"
		overallStatus = "down"
	}

	redisStatus := "disabled"
	if h.redis != nil {
		if err := h.redis.Ping(ctx); err != nil {
			redisStatus = "down"
			if overallStatus == "ok" {
				overallStatus = "degraded"
			}
		} else {
			redisStatus = "up"
		}
	}

	natsStatus := "disabled"
	if h.broker != nil {
		if h.broker.IsConnected() {
			natsStatus = "up"
		} else {
			natsStatus = "down"
			if overallStatus == "ok" {
				overallStatus = "degraded"
			}
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":    overallStatus,
		"timestamp": time.Now().Format(time.RFC3339),
		"components": map[string]any{
			"database": map[string]any{
				"status": dbStatus,
			},
			"redis": map[string]any{
				"status": redisStatus,
			},
			"nats": map[string]any{
				"status": natsStatus,
			},
		},
	})
}
