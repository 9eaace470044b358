package main

import (
	"context"
	"expvar"
	"log"
	"runtime"

	"github.com/plamen9/airline-bingo/internal/infrastructure/configs"
	"github.com/plamen9/airline-bingo/internal/infrastructure/metrics"
	"github.com/plamen9/airline-bingo/internal/infrastructure/ords"
	"github.com/plamen9/airline-bingo/internal/infrastructure/ratelimiter"
	"github.com/plamen9/airline-bingo/internal/infrastructure/registry"
	"github.com/plamen9/airline-bingo/internal/infrastructure/tracing"
	"github.com/plamen9/airline-bingo/internal/infrastructure/ws"
	"github.com/plamen9/airline-bingo/internal/presentation/api"
	"github.com/plamen9/airline-bingo/internal/presentation/handler/health"
	"github.com/plamen9/airline-bingo/internal/presentation/handler/live"
	"github.com/plamen9/airline-bingo/internal/presentation/handler/rooms"
	"go.uber.org/zap"
)

const serviceName = "airline-bingo"

func main() {
	logger := zap.Must(zap.NewProduction()).Sugar()
	defer logger.Sync()

	configPath := configs.DetermineConfigPath()
	cfg, err := configs.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Tracing.Enabled {
		sh, err := tracing.InitTracer(tracing.Config{
			ServiceName: serviceName,
			Environment: cfg.Tracing.Environment,
			Endpoint:    cfg.Tracing.Endpoint,
		})
		if err != nil {
			log.Fatalf("Failed to initialize the tracer: %v", err)
		}
		defer sh(ctx)
	}

	m := metrics.New()
	roomRegistry := registry.New()
	ordsClient := ords.NewClient(cfg.Ords, m)

	wsCore := ws.NewCore(roomRegistry, logger, m)
	go wsCore.Run()

	roomHandler := rooms.NewHandler(ordsClient, roomRegistry, wsCore, logger)
	healthHandler := health.NewHandler()
	liveHandler := live.NewHandler(wsCore, logger, cfg.HTTP.AllowedOrigins)

	rl := ratelimiter.NewFixedWindowRateLimiter(
		cfg.RateLimiter.RequestsPerTimeFrame,
		cfg.RateLimiter.TimeFrame,
	)
	defer rl.Close()

	app := api.NewApplication(*cfg, roomHandler, healthHandler, liveHandler, m.Handler(), logger, rl)

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.Mount()
	logger.Fatal(app.Run(mux))
}
