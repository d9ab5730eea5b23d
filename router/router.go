package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/Teo107/farmer-assistant/pkg/middleware"
)

func New(
	e *echo.Echo,
	log *zap.Logger,
	corsOrigins []string,
	messageCtrl interface{ Receive(echo.Context) error },
	reportCtrl interface{ Generate(echo.Context) error },
	debugCtrl interface{ State(echo.Context) error },
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestLogger(log))
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
	}))

	e.GET("/health", healthCtrl.Health)

	e.POST("/message", messageCtrl.Receive)
	e.POST("/generate-reports", reportCtrl.Generate)
	e.GET("/debug/state", debugCtrl.State)
	return e
}
