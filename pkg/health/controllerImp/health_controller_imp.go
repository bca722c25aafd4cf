package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"cacau/pkg/health/controller"
	"cacau/pkg/remote"
)

var appStart = time.Now()

type healthCtrl struct {
	db  *gorm.DB
	api *remote.Client
}

func NewHealthCtrl(db *gorm.DB, api *remote.Client) controller.HealthController {
	return &healthCtrl{db: db, api: api}
}

type sub struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

// Health pings the local database. The remote API is reported as
// configured or not; it is never called here since every gateway already
// falls back on its own.
func (h *healthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := sub{OK: true}
	if h.db == nil {
		db = sub{Err: "gorm db is nil"}
	} else if sqlDB, err := h.db.DB(); err != nil {
		db = sub{Err: "db.DB(): " + err.Error()}
	} else if err := sqlDB.PingContext(ctx); err != nil {
		db = sub{Err: "ping: " + err.Error()}
	}

	status := http.StatusOK
	if !db.OK {
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": db.OK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"database": db,
			"remote": map[string]any{
				"configured": h.api.Enabled(),
				"base_url":   h.api.BaseURL(),
			},
		},
		"time": time.Now().Format(time.RFC3339),
	})
}
