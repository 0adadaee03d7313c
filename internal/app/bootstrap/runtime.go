package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/viralforge/crowdfund-ledger-service/internal/adapters/cache"
	eventadapter "github.com/viralforge/crowdfund-ledger-service/internal/adapters/events"
	httpadapter "github.com/viralforge/crowdfund-ledger-service/internal/adapters/http"
	ledgeradapter "github.com/viralforge/crowdfund-ledger-service/internal/adapters/ledger"
	"github.com/viralforge/crowdfund-ledger-service/internal/adapters/memory"
	"github.com/viralforge/crowdfund-ledger-service/internal/adapters/postgres"
	"github.com/viralforge/crowdfund-ledger-service/internal/application"
	"github.com/viralforge/crowdfund-ledger-service/internal/ports"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	grpcServer *grpc.Server
	grpcLis    net.Listener
	outbox     *eventadapter.OutboxWorker
	cleanupFn  func(context.Context)
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).With("service", cfg.ServiceID)
	slog.SetDefault(logger)

	var closers []io.Closer

	var campaigns ports.CampaignRepository
	var pledges ports.PledgeRepository
	var idempotency ports.IdempotencyRepository
	var outboxRepo ports.OutboxRepository
	var fundsLedger ports.FundsLedger
	if cfg.DatabaseURL != "" {
		db, dbErr := postgres.Connect(ctx, cfg.DatabaseURL, cfg.MaxDBConns)
		if dbErr != nil {
			return nil, dbErr
		}
		sqlDB, dbErr := db.DB()
		if dbErr != nil {
			return nil, dbErr
		}
		closers = append(closers, sqlDB)
		if migErr := postgres.RunMigrations(ctx, db); migErr != nil {
			_ = sqlDB.Close()
			return nil, migErr
		}
		repos := postgres.NewRepositories(db)
		campaigns = repos.Campaigns
		pledges = repos.Pledges
		idempotency = repos.Idempotency
		outboxRepo = repos.Outbox
		fundsLedger = ledgeradapter.NewPostgresLedger(db)
	} else {
		logger.WarnContext(ctx, "no database configured, using in-memory repositories")
		repos := memory.NewRepositories()
		campaigns = repos.Campaigns
		pledges = repos.Pledges
		idempotency = repos.Idempotency
		outboxRepo = repos.Outbox
		fundsLedger = ledgeradapter.NewMemoryLedger()
	}

	if cfg.RedisURL != "" {
		redisClient, redisErr := cache.Connect(ctx, cfg.RedisURL)
		if redisErr != nil {
			for _, closer := range closers {
				_ = closer.Close()
			}
			return nil, redisErr
		}
		closers = append(closers, redisClient)
		idempotency = cache.NewRedisIdempotencyStore(redisClient)
	}

	publisher := ports.EventPublisher(eventadapter.NewLoggingPublisher(logger))
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, pubErr := eventadapter.NewKafkaPublisher(cfg.KafkaBrokers, eventadapter.Topics{
			CampaignCreated:      cfg.KafkaTopicCampaignCreated,
			PledgeAccountCreated: cfg.KafkaTopicPledgeAccountCreated,
			Pledged:              cfg.KafkaTopicPledged,
			Unpledged:            cfg.KafkaTopicUnpledged,
			Claimed:              cfg.KafkaTopicClaimed,
		})
		if pubErr != nil {
			logger.WarnContext(ctx, "kafka publisher disabled, using logging publisher", "error", pubErr)
		} else {
			publisher = kafkaPublisher
			closers = append(closers, kafkaPublisher)
		}
	}

	service := application.NewService(application.Dependencies{
		Config: application.Config{
			ServiceName:          cfg.ServiceID,
			MinimumGoal:          cfg.MinimumGoal,
			IdempotencyTTL:       cfg.IdempotencyTTL,
			OutboxFlushBatchSize: cfg.OutboxBatchSize,
		},
		Campaigns:   campaigns,
		Pledges:     pledges,
		Idempotency: idempotency,
		Outbox:      outboxRepo,
		Ledger:      fundsLedger,
	})

	handler := httpadapter.NewHandler(service, int32(cfg.BaseUnitScale))
	router := httpadapter.NewRouter(handler, cfg.JWTSecret)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcServer := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		for _, closer := range closers {
			_ = closer.Close()
		}
		return nil, err
	}

	outbox := eventadapter.NewOutboxWorker(logger, outboxRepo, publisher, cfg.OutboxPollInterval, cfg.OutboxBatchSize)

	return &Runtime{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		grpcServer: grpcServer,
		grpcLis:    lis,
		outbox:     outbox,
		cleanupFn: func(context.Context) {
			for _, closer := range closers {
				_ = closer.Close()
			}
		},
	}, nil
}

func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	errCh := make(chan error, 2)

	go func() {
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		if err := r.grpcServer.Serve(r.grpcLis); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		r.logger.ErrorContext(ctx, "runtime failure", "error", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	r.grpcServer.GracefulStop()
	r.cleanupFn(shutdownCtx)
	return nil
}

func (r *Runtime) RunWorker(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := r.outbox.Run(ctx)
	r.cleanupFn(context.Background())
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
