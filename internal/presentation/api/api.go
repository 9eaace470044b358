package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/plamen9/airline-bingo/internal/infrastructure/configs"
	"github.com/plamen9/airline-bingo/internal/infrastructure/ratelimiter"
	healthHandler "github.com/plamen9/airline-bingo/internal/presentation/handler/health"
	liveHandler "github.com/plamen9/airline-bingo/internal/presentation/handler/live"
	roomHandler "github.com/plamen9/airline-bingo/internal/presentation/handler/rooms"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

type Application struct {
	config         configs.Config
	roomHandler    *roomHandler.Handler
	healthHandler  *healthHandler.Handler
	liveHandler    *liveHandler.Handler
	metricsHandler http.Handler
	logger         *zap.SugaredLogger
	ratelimiter    ratelimiter.Limiter
}

func NewApplication(
	config configs.Config,
	roomHandler *roomHandler.Handler,
	healthHandler *healthHandler.Handler,
	liveHandler *liveHandler.Handler,
	metricsHandler http.Handler,
	logger *zap.SugaredLogger,
	ratelimiter ratelimiter.Limiter,
) *Application {
	return &Application{
		config:         config,
		roomHandler:    roomHandler,
		healthHandler:  healthHandler,
		liveHandler:    liveHandler,
		metricsHandler: metricsHandler,
		logger:         logger,
		ratelimiter:    ratelimiter,
	}
}

func (app *Application) Mount() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Use(app.enableCors)
	r.Use(app.loggerMiddleware)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		r.Use(app.rateLimiterMiddleware)

		r.Route("/api", func(r chi.Router) {
			r.Route("/rooms", func(r chi.Router) {
				r.Post("/", app.roomHandler.CreateRoomHandler)
				r.Get("/{roomCode}", app.roomHandler.GetRoomHandler)
				r.Post("/{roomCode}/join", app.roomHandler.JoinRoomHandler)
				r.Get("/{roomCode}/players", app.roomHandler.ListPlayersHandler)
				r.Post("/{roomCode}/start", app.roomHandler.StartGameHandler)
				r.Post("/{roomCode}/draw", app.roomHandler.DrawHandler)
				r.Get("/{roomCode}/card/{userId}", app.roomHandler.GetCardHandler)
				r.Get("/{roomCode}/drawn", app.roomHandler.GetDrawnHandler)
				r.Post("/{roomCode}/claim", app.roomHandler.ClaimHandler)
				r.Post("/{roomCode}/reset", app.roomHandler.ResetHandler)
				r.Post("/{roomCode}/kick", app.roomHandler.KickHandler)
			})

			r.Get("/health", app.healthHandler.HealthHandler)
			r.Get("/healthz", app.healthHandler.HealthHandler)
			r.Get("/ready", app.healthHandler.ReadyHandler)
			r.Get("/live", app.healthHandler.LiveHandler)
		})

		r.Get("/metrics", app.metricsHandler.ServeHTTP)
	})

	// Websocket endpoint skips the request timeout; connections are
	// long-lived by design.
	r.Get("/ws", app.liveHandler.ServeWS)

	return r
}

func (app *Application) Run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", app.config.HTTP.Host, app.config.HTTP.Port),
		Handler:      otelhttp.NewHandler(mux, "airline-bingo"),
		WriteTimeout: app.config.HTTP.WriteTimeout,
		ReadTimeout:  app.config.HTTP.ReadTimeout,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.healthHandler.SetReady(false)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", srv.Addr)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", srv.Addr)

	return nil
}
