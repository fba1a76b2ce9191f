package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/vincanto/bookings/internal/http/handlers"
	ratelimit "github.com/vincanto/bookings/internal/http/middleware"
	"github.com/vincanto/bookings/internal/platform/mailer"
	"github.com/vincanto/bookings/internal/pricing"
	"github.com/vincanto/bookings/internal/repo/postgres"
	redisstore "github.com/vincanto/bookings/internal/repo/redis"
	"github.com/vincanto/bookings/internal/service"
	"github.com/vincanto/bookings/pkg/config"
	"github.com/vincanto/bookings/pkg/database"
	"github.com/vincanto/bookings/pkg/events"
	"github.com/vincanto/bookings/pkg/logger"
	mw "github.com/vincanto/bookings/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// The event bus and the idempotency cache are conveniences, not
	// prerequisites: bookings must keep working when they are down.
	var publisher events.Publisher
	if bus, err := events.NewNATSEventBus(cfg.NATS.URL); err != nil {
		logger.Warn("event bus unavailable, reservation events disabled", "error", err)
	} else {
		publisher = bus
		defer bus.Close()
	}

	var idemStore *redisstore.IdempotencyStore
	if store, err := redisstore.NewIdempotencyStore(cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		logger.Warn("redis unavailable, idempotency cache disabled", "error", err)
	} else if err := store.Ping(ctx); err != nil {
		logger.Warn("redis unreachable, idempotency cache disabled", "error", err)
	} else {
		idemStore = store
		defer store.Close()
	}

	var mail mailer.Service
	switch {
	case cfg.Email.DevMode:
		mail = mailer.NewDevMailer()
	case cfg.Email.MailerSendKey != "":
		mail = mailer.NewMailer(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.SMTPFrom)
	default:
		mail = mailer.NewSMTPMailer(cfg.Email.SMTPHost, cfg.Email.SMTPPort,
			cfg.Email.SMTPFrom, cfg.Email.SMTPUser, cfg.Email.SMTPPass, cfg.Email.SMTPUseTLS)
	}

	schedule := scheduleFromConfig(cfg.Rates)

	reservations := postgres.NewReservationRepo(pool)
	bookings := service.NewBookingService(schedule, reservations, publisher, mail)
	h := handlers.NewBookingHandler(bookings)

	limiter := ratelimit.NewRateLimiter(pool, ratelimit.RateLimitConfig{
		Requests: 10,
		Window:   time.Hour,
		KeyFunc:  ratelimit.BookingRateLimitKeyFunc,
	})

	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("bookings"))
	r.Use(mw.Logging)
	r.Use(mw.Health)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Idempotency-Key"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/quote", h.Quote)
		r.Get("/booked-dates", h.BookedDates)
		r.Get("/booking-request/{id}", h.GetBookingRequest)

		submit := r.With(limiter.Middleware())
		if idemStore != nil {
			submit = submit.With(mw.Idempotency(idemStore))
		}
		submit.Post("/booking-request", h.CreateBookingRequest)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down booking service...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("booking service shutdown error", "error", err)
		}
	}()

	logger.Info("starting booking service", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("booking service error", "error", err)
		os.Exit(1)
	}
}

// scheduleFromConfig starts from the compiled-in policy and applies whatever
// knobs ops have overridden in the environment.
func scheduleFromConfig(rates config.RatesConfig) pricing.RateSchedule {
	s := pricing.DefaultSchedule()
	if rates.CleaningFeeCents > 0 {
		s.CleaningFee = pricing.Cents(rates.CleaningFeeCents)
	}
	if rates.TouristTaxCents > 0 {
		s.TouristTaxPerPersonNight = pricing.Cents(rates.TouristTaxCents)
	}
	if rates.ParkingLowCents > 0 {
		s.ParkingLowSeason = pricing.Cents(rates.ParkingLowCents)
	}
	if rates.ParkingHighCents > 0 {
		s.ParkingHighSeason = pricing.Cents(rates.ParkingHighCents)
	}
	if rates.DepositPercent > 0 {
		s.DepositPercent = rates.DepositPercent
	}
	if rates.MinNights > 0 {
		s.MinNights = rates.MinNights
	}
	if rates.MinAdvanceDays > 0 {
		s.MinAdvanceDays = rates.MinAdvanceDays
	}
	if rates.BookingCutoffHour > 0 {
		s.BookingCutoffHour = rates.BookingCutoffHour
	}
	return s
}
