package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Teo107/farmer-assistant/pkg/session"
)

type DebugCtrl struct{ store *session.Store }

func New(store *session.Store) *DebugCtrl { return &DebugCtrl{store} }

// State dumps the in-memory session maps.
func (h *DebugCtrl) State(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Snapshot())
}
