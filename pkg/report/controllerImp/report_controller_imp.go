package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Teo107/farmer-assistant/pkg/report/service"
)

type ReportCtrl struct{ s service.ReportService }

func New(s service.ReportService) *ReportCtrl { return &ReportCtrl{s} }

// Generate simulates a scheduler tick and returns what would be sent.
func (h *ReportCtrl) Generate(c echo.Context) error {
	b, err := h.s.Generate(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, b)
}
