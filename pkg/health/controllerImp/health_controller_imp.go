package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Teo107/farmer-assistant/pkg/session"
)

var appStart = time.Now()

type HealthCtrl struct {
	db    *gorm.DB
	store *session.Store
}

func NewHealthCtrl(db *gorm.DB, store *session.Store) *HealthCtrl {
	return &HealthCtrl{db: db, store: store}
}

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func (h *HealthCtrl) pingDB(ctx context.Context) check {
	if h.db == nil {
		return check{Err: "gorm db is nil"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return check{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return check{Err: "ping: " + err.Error()}
	}
	return check{OK: true}
}

// Health pings the data repository and reports session counters.
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := h.pingDB(ctx)
	status := http.StatusOK
	if !db.OK {
		status = http.StatusServiceUnavailable
	}

	sessions := map[string]int{}
	if h.store != nil {
		snap := h.store.Snapshot()
		sessions["linked"] = len(snap.PhoneToFarmer)
		sessions["pending"] = len(snap.PendingLinking)
		sessions["scheduled"] = len(snap.ReportFreq)
	}

	return c.JSON(status, echo.Map{
		"status":     echo.Map{"ok": db.OK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks":     echo.Map{"database": db},
		"sessions":   sessions,
		"time":       time.Now().Format(time.RFC3339),
	})
}
