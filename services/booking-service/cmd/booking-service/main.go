package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/obelixq/obelixq/libs/config"
	"github.com/obelixq/obelixq/libs/db"
	"github.com/obelixq/obelixq/libs/grpcx"
	"github.com/obelixq/obelixq/libs/httpx"
	"github.com/obelixq/obelixq/libs/kafkax"
	otelx "github.com/obelixq/obelixq/libs/otel"
	"github.com/obelixq/obelixq/libs/runtime"
	"github.com/obelixq/obelixq/services/booking-service/internal/booking"
	"github.com/obelixq/obelixq/services/booking-service/internal/catalog"
	"github.com/obelixq/obelixq/services/booking-service/internal/grpcserver"
	"github.com/obelixq/obelixq/services/booking-service/internal/handlers"
	"github.com/obelixq/obelixq/services/booking-service/internal/ledger"
	"github.com/obelixq/obelixq/services/booking-service/internal/outbox"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/grpc"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "booking-service:", err)
		os.Exit(1)
	}
}

func run() error {
	config.LoadDotEnv(".env")

	service := config.String("SERVICE_NAME", "booking-service")
	port, err := config.Port("PORT", "8083")
	if err != nil {
		return err
	}
	grpcPort, err := config.Port("GRPC_PORT", "9083")
	if err != nil {
		return err
	}
	loc, err := config.Location("BOOKING_TIMEZONE")
	if err != nil {
		return err
	}
	queueSize, err := config.Int("OUTBOX_QUEUE_SIZE", 1024)
	if err != nil {
		return err
	}
	retryEvery, err := config.Duration("OUTBOX_RETRY_EVERY", time.Second)
	if err != nil {
		return err
	}
	perMinute, err := config.Int("RATE_LIMIT_PER_MINUTE", 120)
	if err != nil {
		return err
	}
	handlerTimeout, err := config.Duration("HTTP_HANDLER_TIMEOUT", 15*time.Second)
	if err != nil {
		return err
	}
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	var (
		lookups catalog.Lookups
		pool    *db.Pool
	)
	if dbURL := config.String("CATALOG_DATABASE_URL", ""); dbURL != "" {
		pool, err = db.Open(ctx, dbURL, db.Options{})
		if err != nil {
			return fmt.Errorf("catalog db: %w", err)
		}
		defer pool.Close()
		lookups = catalog.NewPostgres(pool)
		logger.Info("catalog backed by postgres")
	} else {
		lookups = catalog.Fixtures()
		logger.Info("catalog backed by in-memory fixtures")
	}

	brokers := config.String("KAFKA_BROKERS", "")
	publisher := outbox.NewPublisher(logger, outbox.PublisherConfig{
		Brokers:    brokers,
		QueueSize:  queueSize,
		RetryEvery: retryEvery,
	})
	go publisher.Run(ctx)

	bookingLedger := ledger.New(lookups, ledger.Config{
		Sink:     publisher,
		Location: loc,
		Logger:   logger,
	})
	svc := booking.NewService(bookingLedger, lookups)

	var rdb *redis.Client
	if addr := config.String("REDIS_ADDR", ""); addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: addr})
		defer func() { _ = rdb.Close() }()
	}

	mux := runtime.NewBaseMuxWithReady(
		runtime.ReadyCheck{Name: "catalog_db", Check: db.ReadyCheck(pool)},
		runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(brokers)},
		runtime.ReadyCheck{Name: "redis", Check: httpx.RedisReadyCheck(rdb)},
		runtime.ReadyCheck{Name: "outbox", Check: outboxCheck(publisher)},
	)
	handlers.NewBookingHandler(svc, logger).Register(mux)
	mux.HandleFunc("/debug/ledger", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]any{
			"appointments":   bookingLedger.Stats(),
			"outbox_pending": publisher.Pending(),
		})
	})

	var limit httpx.Middleware
	if rdb != nil {
		limit = httpx.NewRedisRateLimiter(rdb, perMinute, time.Minute, "booking:rl").Middleware(logger, true)
	} else {
		rl := httpx.NewRateLimiter(perMinute, perMinute/4+1)
		limit = rl.Middleware()
		go sweepLoop(ctx, rl, logger)
	}

	httpHandler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		limit,
		httpx.WithBodyLimit(1<<20),
		httpx.WithTimeout(handlerTimeout),
	)
	httpHandler = otelhttp.NewHandler(httpHandler, "booking")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcSrv := grpcx.NewServer([]grpc.UnaryServerInterceptor{grpcx.UnaryServerLogInterceptor(logger)})
	grpcserver.Register(grpcSrv, grpcserver.NewServer(svc, logger))
	lis, err := net.Listen("tcp", ":"+grpcPort)
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}

	go func() {
		logger.Info("grpc server starting", "addr", lis.Addr().String())
		if err := grpcSrv.Serve(lis); err != nil {
			logger.Error("grpc server error", "err", err)
		}
	}()
	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	grpcSrv.GracefulStop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown error", "err", err)
	}
	logger.Info("shutdown complete")
	return nil
}

// outboxCheck fails readiness once the queue is almost saturated.
func outboxCheck(p *outbox.Publisher) func(context.Context) error {
	return func(context.Context) error {
		if capacity := p.Capacity(); p.Pending() >= capacity*9/10 {
			return fmt.Errorf("outbox backlog %d/%d", p.Pending(), capacity)
		}
		return nil
	}
}

func sweepLoop(ctx context.Context, rl *httpx.RateLimiter, logger *slog.Logger) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := rl.Sweep(); n > 0 {
				logger.Debug("rate limiter sweep", "evicted", n)
			}
		}
	}
}
