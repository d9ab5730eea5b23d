package controllerImp

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Teo107/farmer-assistant/pkg/message/service"
)

type MessageCtrl struct{ d service.Dispatcher }

func New(d service.Dispatcher) *MessageCtrl { return &MessageCtrl{d} }

type messageReq struct {
	From string `json:"from"`
	Text string `json:"text"`
}

// Receive answers one inbound message. Only a broken request is a transport
// error; everything else is a 200 with the reply text.
func (h *MessageCtrl) Receive(c echo.Context) error {
	var req messageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad json"})
	}
	from := strings.TrimSpace(req.From)
	if from == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from is required"})
	}
	return c.JSON(http.StatusOK, h.d.Handle(c.Request().Context(), from, req.Text))
}
