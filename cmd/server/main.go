package main

import (
	"fmt"
	"os"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/tappyimob/tappy-imob/internal/handler"
	"github.com/tappyimob/tappy-imob/internal/middleware"
	"github.com/tappyimob/tappy-imob/internal/model"
	"github.com/tappyimob/tappy-imob/pkg/config"
	"github.com/tappyimob/tappy-imob/pkg/database"
	"github.com/tappyimob/tappy-imob/pkg/jwtutil"
	"github.com/tappyimob/tappy-imob/pkg/logger"
	"github.com/tappyimob/tappy-imob/pkg/metrics"
	"go.uber.org/zap"
)

func main() {
	conf, err := config.Load("tappy-imob")
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.InitLogger(&logger.LogConfig{
		Level:       conf.Log.Level,
		Environment: conf.Server.Env,
		ServiceName: conf.ServiceName,
	})
	if err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.GetLogger()
	defer log.Sync()
	log.Info("Configuration loaded", conf.LogConfig()...)

	db, err := database.InitDB(&conf.DB, log)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if err := database.MigrateModels(db, model.All()...); err != nil {
		log.Fatal("Failed to migrate database models", zap.Error(err))
	}

	jwt := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
		SigningKey:      conf.Session.SigningKey,
		ExpirationHours: conf.Session.ExpirationHours,
	})

	httpMetrics := metrics.NewHTTPMetrics(conf.Metrics.Prefix)

	e := echo.New()
	e.HideBanner = true

	// Apply middleware
	e.Use(echomw.Recover())
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.Middleware())
	e.Use(httpMetrics.Middleware())

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(metrics.GetPrometheusHandler()))

	handler.RegisterRoutes(e, handler.Dependencies{
		DB:         db,
		JWT:        jwt,
		CookieName: conf.Session.CookieName,
		SessionTTL: conf.Session.TTL(),
	})

	log.Info("Starting tappy-imob on port " + conf.Server.Port)
	e.Logger.Fatal(e.Start(":" + conf.Server.Port))
}
