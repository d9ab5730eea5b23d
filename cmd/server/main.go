package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Teo107/farmer-assistant/config"
	"github.com/Teo107/farmer-assistant/database"
	"github.com/Teo107/farmer-assistant/pkg/intent"
	"github.com/Teo107/farmer-assistant/pkg/logging"
	"github.com/Teo107/farmer-assistant/pkg/session"
	"github.com/Teo107/farmer-assistant/router"

	// Parcels
	parcelRepoImp "github.com/Teo107/farmer-assistant/pkg/parcel/repositoryImp"
	parcelSvcImp "github.com/Teo107/farmer-assistant/pkg/parcel/serviceImp"

	// Linking
	linkingSvcImp "github.com/Teo107/farmer-assistant/pkg/linking/serviceImp"

	// Messages
	messageCtrlImp "github.com/Teo107/farmer-assistant/pkg/message/controllerImp"
	messageSvcImp "github.com/Teo107/farmer-assistant/pkg/message/serviceImp"

	// Reports
	reportCtrlImp "github.com/Teo107/farmer-assistant/pkg/report/controllerImp"
	reportSvcImp "github.com/Teo107/farmer-assistant/pkg/report/serviceImp"

	// Debug + Health
	debugCtrlImp "github.com/Teo107/farmer-assistant/pkg/debug/controllerImp"
	healthCtrlImp "github.com/Teo107/farmer-assistant/pkg/health/controllerImp"
)

func main() {
	// 1) Config + logger
	cfg, envLoaded := config.Load()
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		logger, _ = logging.New("info")
		logger.Warn("bad LOG_LEVEL, using info", zap.Error(err))
	}
	defer func() { _ = logger.Sync() }()
	if !envLoaded {
		logger.Info("no .env file, using process environment")
	}
	logger.Info("config", zap.Any("config", cfg.Redacted()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2) DB (sqlite) + seed
	db, err := database.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	if err := seed(db, cfg, logger); err != nil {
		logger.Fatal("seed database", zap.Error(err))
	}

	// 3) Domain services
	store := session.NewStore()
	repo := parcelRepoImp.New(db)
	parcels := parcelSvcImp.NewParcelService(repo)
	linking := linkingSvcImp.NewLinkingService(repo, store, logger)

	var routerOpts []intent.Option
	if client := interpreter(ctx, cfg, logger); client != nil {
		routerOpts = append(routerOpts, intent.WithInterpreter(client, cfg.AITimeout))
	}
	intents := intent.NewRouter(logger, routerOpts...)
	dispatcher := messageSvcImp.NewDispatcher(store, linking, intents, parcels, logger)

	loc := cfg.Location()
	now := func() time.Time { return time.Now().In(loc) }
	reports := reportSvcImp.NewReportService(store, reportSvcImp.NewScheduler(store), parcels, now, logger)
	go reportSvcImp.RunTicker(ctx, reports, cfg.ReportInterval, logger)

	// 4) Echo + routes
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	router.New(
		e,
		logger,
		cfg.CORSOrigins,
		messageCtrlImp.New(dispatcher),
		reportCtrlImp.New(reports),
		debugCtrlImp.New(store),
		healthCtrlImp.NewHealthCtrl(db, store),
	)

	// 5) Start
	go func() {
		logger.Info("listening", zap.String("port", cfg.Port))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("stopped")
}
