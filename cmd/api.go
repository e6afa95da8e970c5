package cmd

import (
	"context"
	"time"

	"kentekencheck/infra"
	_midlleware "kentekencheck/infra/middleware"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func StartAPI(ctx context.Context, container *infra.ContainerDI) {
	e := echo.New()

	go func() {
		for {
			select {
			case <-ctx.Done():
				if err := e.Shutdown(ctx); err != nil {
					panic(err)
				}
				return
			default:
				time.Sleep(1 * time.Second)
			}
		}
	}()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: container.Config.CorsAllowOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowMethods: middleware.DefaultCORSConfig.AllowMethods,
	}))
	e.Use(_midlleware.RequestID)
	e.Use(_midlleware.Metrics)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/api/rdw", container.HandlerVehicle.GetVehicle)
	e.GET("/api/health", container.HandlerHealth.GetHealth)
	e.GET("/env.js", container.HandlerClientEnv.GetEnvScript)
	e.Static("/", container.Config.StaticDir)

	e.Logger.Fatal(e.Start(container.Config.ServerPort))
}
