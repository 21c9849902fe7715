package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JBB13/credit-risk-model/internal/application/usecase"
	"github.com/JBB13/credit-risk-model/internal/domain/model"
	"github.com/JBB13/credit-risk-model/internal/domain/port"
	"github.com/JBB13/credit-risk-model/internal/domain/service"
	"github.com/JBB13/credit-risk-model/internal/infrastructure/artifact"
	"github.com/JBB13/credit-risk-model/internal/infrastructure/config"
	"github.com/JBB13/credit-risk-model/internal/infrastructure/messaging"
	grpcpresentation "github.com/JBB13/credit-risk-model/internal/presentation/grpc"
	"github.com/JBB13/credit-risk-model/internal/presentation/rest"
	"github.com/JBB13/credit-risk-model/pkg/kafka"
	"github.com/JBB13/credit-risk-model/pkg/observability"
)

const serviceName = "credit-risk-service"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slog.SetDefault(logger)

	logger.Info("starting "+serviceName, "environment", cfg.Environment)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error(serviceName+" failed", "error", err)
		os.Exit(1)
	}
	logger.Info(serviceName + " stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// Tracing is optional.
	if cfg.TracingEnabled {
		shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: serviceName,
			Endpoint:    cfg.OTLPEndpoint,
			Insecure:    cfg.Environment == "development",
		})
		if err != nil {
			logger.Warn("tracing disabled", "error", err)
		} else {
			defer func() {
				flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer flushCancel()
				if err := shutdownTracer(flushCtx); err != nil {
					logger.Error("tracer shutdown error", "error", err)
				}
			}()
		}
	}

	meterProvider, metricsHandler, err := observability.InitMetrics()
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer func() {
		if err := meterProvider.Shutdown(context.Background()); err != nil {
			logger.Error("meter provider shutdown error", "error", err)
		}
	}()

	// Load model artifacts.
	schema := model.DefaultSchema()
	artifacts, err := artifact.Load(schema, cfg.ModelPath, cfg.ScalerPath)
	if err != nil {
		return err
	}
	logger.Info("model artifacts loaded",
		slog.String("model", artifacts.ModelPath),
		slog.String("model_version", artifacts.Model.Version()),
		slog.String("scaler", artifacts.ScalerPath),
		slog.String("scaler_version", artifacts.Scaler.Version()),
	)

	// Initialize infrastructure adapters.
	var publisher port.EventPublisher
	readiness := map[string]rest.ReadinessCheck{
		"artifacts": artifacts.Status,
	}
	kafkaCfg := cfg.Kafka()
	if kafkaCfg.Enabled() {
		producer := kafka.NewProducer(kafkaCfg)
		readiness["kafka"] = func() string {
			pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer pingCancel()
			if err := producer.Ping(pingCtx); err != nil {
				logger.Warn("kafka readiness check failed", "error", err)
				return "unreachable"
			}
			return "ok"
		}
		defer func() {
			if err := producer.Close(); err != nil {
				logger.Error("kafka producer close error", "error", err)
			}
		}()
		publisher = messaging.NewKafkaPublisher(producer, cfg.KafkaEventsTopic, logger)
	} else {
		logger.Info("no kafka brokers configured, events are logged only")
		publisher = messaging.NewLogPublisher(logger)
	}

	// Initialize domain services and use cases.
	pipeline := service.NewScoringPipeline(schema, artifacts.Scaler, artifacts.Model)
	scoreClientsUC, err := usecase.NewScoreClients(pipeline, publisher, usecase.Defaults{
		LGDPercent: cfg.DefaultLGDPercent,
		EAD:        cfg.DefaultEAD,
		Currency:   cfg.CurrencyCode(),
	}, logger)
	if err != nil {
		return err
	}
	getFeatureSchemaUC := usecase.NewGetFeatureSchema(schema)

	// gRPC server.
	grpcHandler := grpcpresentation.NewCreditRiskHandler(scoreClientsUC, getFeatureSchemaUC, logger)
	grpcServer, err := grpcpresentation.NewServer(grpcHandler, grpcpresentation.ServerConfig{
		Address:     cfg.GRPCAddress(),
		TLSCertFile: cfg.GRPCTLSCertFile,
		TLSKeyFile:  cfg.GRPCTLSKeyFile,
		Reflection:  cfg.GRPCReflection,
	}, logger)
	if err != nil {
		return err
	}

	// HTTP server: health, scoring and metrics.
	var draining atomic.Bool
	readiness["server"] = func() string {
		if draining.Load() {
			return "draining"
		}
		return "ok"
	}
	healthHandler := rest.NewHealthHandler(logger, readiness)
	scoringHandler := rest.NewScoringHandler(scoreClientsUC, getFeatureSchemaUC, logger)

	httpMux := http.NewServeMux()
	healthHandler.RegisterRoutes(httpMux)
	scoringHandler.RegisterRoutes(httpMux)
	httpMux.Handle("GET /metrics", metricsHandler)

	var limiter *rest.RateLimiter
	if cfg.HTTPRateLimit > 0 {
		limiter = rest.NewRateLimiter(cfg.HTTPRateLimit)
	}

	// Build middleware chain (applied in reverse order).
	var h http.Handler = httpMux
	h = rest.RateLimitMiddleware(limiter, logger)(h)
	h = rest.LoggingMiddleware(logger)(h)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      h,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := grpcServer.Start(); err != nil {
			return fmt.Errorf("gRPC server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("HTTP server starting", slog.String("address", cfg.HTTPAddress()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	if kafkaCfg.Enabled() && cfg.KafkaRequestTopic != "" {
		consumer := messaging.NewRequestConsumer(kafkaCfg, cfg.KafkaRequestTopic, scoreClientsUC, logger)
		g.Go(func() error {
			defer func() {
				if err := consumer.Close(); err != nil {
					logger.Error("kafka consumer close error", "error", err)
				}
			}()
			return consumer.Start(gctx)
		})
	}

	logger.Info(serviceName+" started",
		slog.String("grpc_address", cfg.GRPCAddress()),
		slog.String("http_address", cfg.HTTPAddress()),
		slog.String("environment", cfg.Environment),
	)

	g.Go(func() error {
		<-gctx.Done()
		draining.Store(true)
		logger.Info("shutting down " + serviceName)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()

		grpcServer.Stop()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP server shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
