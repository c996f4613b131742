package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/YusovID/rental-booking-service/internal/audit"
	"github.com/YusovID/rental-booking-service/internal/cache"
	"github.com/YusovID/rental-booking-service/internal/config"
	"github.com/YusovID/rental-booking-service/internal/domain"
	"github.com/YusovID/rental-booking-service/internal/kafka"
	"github.com/YusovID/rental-booking-service/internal/repository/postgres"
	"github.com/YusovID/rental-booking-service/internal/service"
	myhttp "github.com/YusovID/rental-booking-service/internal/transport/http"
	"github.com/YusovID/rental-booking-service/pkg/logger/sl"
	"github.com/YusovID/rental-booking-service/pkg/logger/slogpretty"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.MustLoad()
	log := slogpretty.SetupLogger(cfg.Env)

	log.Info("starting rental-booking-service",
		slog.String("env", cfg.Env),
		slog.String("settlement_policy", cfg.Settlement.Policy),
		slog.Bool("reject_overlaps", cfg.Reservation.RejectOverlaps),
	)

	db, err := postgres.NewDB(cfg.Postgres, log)
	if err != nil {
		return fmt.Errorf("failed to init db: %v", err)
	}
	defer func() {
		if err := db.DB().Close(); err != nil {
			log.Error("db close failed", sl.Err(err))
		}
	}()

	var (
		locker       service.ApartmentLocker
		availability service.AvailabilityCache
	)

	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, cfg.Cache.ApartmentsTTL, cfg.Reservation.LockTTL, log)
		if err := redisCache.Ping(ctx); err != nil {
			return fmt.Errorf("failed to connect to redis: %v", err)
		}
		defer redisCache.Close()

		locker, availability = redisCache, redisCache
	} else {
		log.Warn("redis is not configured, apartment lock and listing cache are disabled")
	}

	producer := kafka.NewProducer(cfg.Kafka.Brokers, log)
	defer func() {
		if err := producer.Close(); err != nil {
			log.Error("kafka producer close failed", sl.Err(err))
		}
	}()

	sqlDB := db.DB()

	users := postgres.NewUserRepository(sqlDB, log)
	apartments := postgres.NewApartmentRepository(sqlDB, log)
	bookings := postgres.NewBookingRepository(sqlDB, log)
	payments := postgres.NewPaymentRepository(sqlDB, log)
	ratings := postgres.NewRatingRepository(sqlDB, log)
	reviews := postgres.NewReviewRepository(sqlDB, log)
	auditRepo := postgres.NewAuditRepository(sqlDB, log)
	reports := postgres.NewReportRepository(sqlDB, log)

	recorder := audit.NewRecorder(sqlDB, auditRepo, producer, cfg.Kafka.Topic, cfg.Kafka.WriteTimeout, log)

	settlement := service.NewSettlementService(sqlDB, log, bookings, payments, domain.NewFixedRateCommission(), recorder)

	reservations := service.NewReservationService(
		sqlDB, log,
		users, apartments, bookings, auditRepo,
		settlement, recorder, locker, availability,
		service.ReservationOptions{
			RejectOverlaps:    cfg.Reservation.RejectOverlaps,
			SettleOnPlacement: cfg.Settlement.Policy == config.SettleImmediate,
			DefaultMethod:     domain.PaymentMethod(cfg.Settlement.DefaultMethod),
		},
	)

	srv := myhttp.NewServer(log, myhttp.Services{
		Users:        service.NewUserService(sqlDB, log, users),
		Apartments:   service.NewApartmentService(sqlDB, log, users, apartments, availability),
		Reservations: reservations,
		Settlement:   settlement,
		Reputation:   service.NewReputationService(sqlDB, log, users, apartments, bookings, ratings, reviews, availability),
		Reports:      service.NewReportService(sqlDB, log, users, reports),
	})

	httpServer := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:           srv.Routes(),
		ReadHeaderTimeout: cfg.Server.Timeout,
	}

	errChan := make(chan error, 1)

	go startServer(log, httpServer, errChan)

	select {
	case err, ok := <-errChan:
		if ok {
			return fmt.Errorf("http server error: %v", err)
		}
	case <-ctx.Done():
		log.Info("stopping server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down http server: %v", err)
	}

	return nil
}

func startServer(log *slog.Logger, httpServer *http.Server, errChan chan error) {
	defer close(errChan)

	log.Info("service started", slog.String("addr", httpServer.Addr))

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		errChan <- fmt.Errorf("error listening and serving: %v", err)
	}
}
