package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apppay "payflow/internal/application/payment"
	"payflow/internal/config"
	dompay "payflow/internal/domain/payment"
	"payflow/internal/domain/user"
	"payflow/internal/infrastructure/eventbus"
	httptransport "payflow/internal/infrastructure/http"
	"payflow/internal/infrastructure/id"
	"payflow/internal/infrastructure/memory"
	"payflow/internal/infrastructure/postgres"
	"payflow/internal/infrastructure/settlement"
	"payflow/internal/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.MustNewLogger(cfg.ServiceName, cfg.Env)
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	users, payments, cleanup, err := buildRepositories(cfg, logger)
	if err != nil {
		logger.Fatal("storage_init_failed", zap.Error(err))
	}
	defer cleanup()

	metrics := apppay.NewMetrics(prometheus.DefaultRegisterer)

	bus := eventbus.NewBus(logger)
	bus.Start(context.Background())
	defer bus.Stop(context.Background())

	calculator := dompay.NewCalculator(id.NewUUIDGenerator())
	publisher := eventbus.NewPaymentPublisher(bus)

	processUC := apppay.NewProcessPaymentUseCase(users, payments, calculator, bus, logger, metrics)
	cancelUC := apppay.NewCancelPaymentUseCase(payments, logger, metrics)
	retryUC := apppay.NewRetryPaymentUseCase(users, payments, calculator, bus, logger, metrics)
	statusUC := apppay.NewGetPaymentStatusUseCase(payments, logger, metrics)
	listUC := apppay.NewListUserPaymentsUseCase(payments, logger, metrics)
	notifyUC := apppay.NewNotifyPaymentUseCase(payments, publisher, logger, metrics)

	worker := settlement.New(payments, bus, bus, cfg.SettlementSuccessRate, logger)
	worker.Start()

	handler := httptransport.NewHandler(processUC, cancelUC, retryUC, statusUC, listUC, notifyUC)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", httptransport.WithLogger(logger, handler.Router()))

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("http_server_start", zap.String("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_server_shutdown_error", zap.Error(err))
	} else {
		logger.Info("http_server_stopped")
	}
}

func buildRepositories(cfg *config.Config, logger *zap.Logger) (user.Repository, dompay.Repository, func(), error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		if err := postgres.Migrate(cfg.DatabaseURL); err != nil {
			return nil, nil, nil, err
		}
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		logger.Info("storage_ready", zap.String("backend", cfg.Storage))
		return postgres.NewUserRepository(db), postgres.NewPaymentRepository(db), func() { _ = db.Close() }, nil
	default:
		userRepo := memory.NewUserRepository()
		seedUsers(userRepo)
		logger.Info("storage_ready", zap.String("backend", cfg.Storage))
		return userRepo, memory.NewPaymentRepository(), func() {}, nil
	}
}

// seedUsers loads demo fixtures for the memory backend; real deployments use
// the postgres backend, where users come from the identity subsystem.
func seedUsers(repo *memory.UserRepository) {
	fixtures := []struct {
		id     string
		active bool
		limit  string
	}{
		{"u1", true, "100.00"},
		{"u2", true, "2500.00"},
		{"u3", false, "100.00"},
	}
	for _, f := range fixtures {
		limit, err := decimal.NewFromString(f.limit)
		if err != nil {
			continue
		}
		u, err := user.New(f.id, f.active, limit)
		if err != nil {
			continue
		}
		repo.Add(u)
	}
}
