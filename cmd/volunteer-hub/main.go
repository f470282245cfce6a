package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Sayden945/ito5031-webassignment/internal/config"
	"github.com/Sayden945/ito5031-webassignment/internal/http-server/handlers/booking/cancelBooking"
	"github.com/Sayden945/ito5031-webassignment/internal/http-server/handlers/booking/listBookings"
	"github.com/Sayden945/ito5031-webassignment/internal/http-server/handlers/donation/createDonation"
	"github.com/Sayden945/ito5031-webassignment/internal/http-server/handlers/event/bookEvent"
	"github.com/Sayden945/ito5031-webassignment/internal/http-server/handlers/event/createEvent"
	"github.com/Sayden945/ito5031-webassignment/internal/http-server/handlers/event/getAllEvents"
	"github.com/Sayden945/ito5031-webassignment/internal/http-server/handlers/event/getEventInfo"
	"github.com/Sayden945/ito5031-webassignment/internal/http-server/middleware/identity"
	"github.com/Sayden945/ito5031-webassignment/internal/http-server/middleware/mwlogger"
	"github.com/Sayden945/ito5031-webassignment/internal/lib/logger/handlers/slogpretty"
	"github.com/Sayden945/ito5031-webassignment/internal/lib/logger/sl"
	"github.com/Sayden945/ito5031-webassignment/internal/notification"
	"github.com/Sayden945/ito5031-webassignment/internal/service"
	"github.com/Sayden945/ito5031-webassignment/internal/storage/postgres"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting volunteer hub", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	storage, err := postgres.InitDB(&cfg.Database)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	notifier, err := notification.NewAMQPNotifier(cfg.AMQP.URL, log)
	if err != nil {
		log.Error("failed to init notifier", sl.Err(err))
		os.Exit(1)
	}

	bookingService := service.NewBookingService(storage, notifier, log)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Group(func(r chi.Router) {
		r.Use(identity.New())

		r.Post("/events", createEvent.New(log, storage))
		r.Get("/events/{id}", getEventInfo.New(log, storage))
		r.Post("/events/{id}/book", bookEvent.New(log, bookingService))
		r.Get("/bookings", listBookings.New(log, storage))
		r.Post("/bookings/{id}/cancel", cancelBooking.New(log, bookingService))
		r.Post("/donations", createDonation.New(log, storage))
	})

	router.Get("/events", getAllEvents.New(log, storage))

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(cfg.Housekeeping)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				count, err := storage.DeactivatePastEvents(context.Background(), time.Now())
				if err != nil {
					log.Error("failed to deactivate past events", sl.Err(err))
					continue
				}
				if count > 0 {
					log.Info("deactivated past events", slog.Int("count", count))
				}
			case <-done:
				return
			}
		}
	}()

	go func() {
		if err = srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop
	close(done)

	log.Info("application stopping", slog.String("signal", sign.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if err = notifier.Close(); err != nil {
		log.Error("failed to close notifier", sl.Err(err))
	}

	if err = storage.Close(); err != nil {
		log.Error("failed to close postgres connection", sl.Err(err))
	}

	log.Info("postgres connection closed")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
