package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sharoon-shahzad/Frame2Action/internal/infra/config"
	"github.com/sharoon-shahzad/Frame2Action/internal/infra/ffmpeg"
	"github.com/sharoon-shahzad/Frame2Action/internal/infra/httpserver"
	"github.com/sharoon-shahzad/Frame2Action/internal/infra/metrics"
	miniostorage "github.com/sharoon-shahzad/Frame2Action/internal/infra/minio"
	"github.com/sharoon-shahzad/Frame2Action/internal/infra/onnx"
	"github.com/sharoon-shahzad/Frame2Action/internal/infra/postgres"
	"github.com/sharoon-shahzad/Frame2Action/internal/infra/preprocess"
	"github.com/sharoon-shahzad/Frame2Action/internal/infra/rabbitmq"
	"github.com/sharoon-shahzad/Frame2Action/internal/infra/tracing"
	"github.com/sharoon-shahzad/Frame2Action/internal/usecase"
	"github.com/sharoon-shahzad/Frame2Action/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	fatalOnErr(err, "load config")

	log, err := logger.New(cfg.LogLevel)
	fatalOnErr(err, "init logger")
	defer log.Sync()

	log.Info("starting frame2action")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Tracing (non-fatal if the collector is unavailable)
	tp, err := tracing.InitTracer(ctx, cfg.OTLPEndpoint)
	if err != nil {
		log.Warn("tracing init failed, continuing without tracing", zap.Error(err))
	} else {
		defer tp.Shutdown(ctx)
	}

	// Model: loaded once, before the server accepts anything. A missing or
	// malformed model is fatal.
	predictor, err := onnx.Load(onnx.Config{
		ModelPath:   cfg.ModelPath,
		LibraryPath: cfg.ONNXLibraryPath,
		InputName:   cfg.ModelInputName,
		OutputName:  cfg.ModelOutputName,
		NumFrames:   cfg.ModelNumFrames,
	}, log)
	fatalOnErr(err, "load model")
	defer predictor.Close()

	// Database
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	fatalOnErr(err, "connect to postgres")
	defer pool.Close()

	if err := postgres.RunMigrations(cfg.DatabaseURL, "migrations"); err != nil {
		log.Warn("migration warning", zap.Error(err))
	}

	// MinIO
	storage, err := miniostorage.NewStorage(miniostorage.StorageConfig{
		Endpoint:      cfg.MinIOEndpoint,
		AccessKey:     cfg.MinIOAccessKey,
		SecretKey:     cfg.MinIOSecretKey,
		UseSSL:        cfg.MinIOUseSSL,
		ArchiveBucket: cfg.MinIOArchiveBucket,
	})
	fatalOnErr(err, "create minio storage")
	fatalOnErr(storage.EnsureBucket(ctx), "ensure minio bucket")

	// RabbitMQ publisher
	rmqConn, err := amqp.Dial(cfg.RabbitMQURL)
	fatalOnErr(err, "connect to rabbitmq")
	defer rmqConn.Close()

	pub, err := rabbitmq.NewPublisher(rmqConn, cfg.RabbitMQExchange)
	fatalOnErr(err, "create rabbitmq publisher")
	defer pub.Close()

	eventPub := rabbitmq.NewPredictionPublisher(pub, cfg.RabbitMQRoutingKey)

	// Infra adapters
	fatalOnErr(os.MkdirAll(cfg.TempDir, 0755), "create temp dir")
	decoder := ffmpeg.NewDecoder("png", log)
	repo := postgres.NewPredictionRepository(pool)

	// Use case
	uc := usecase.NewRecognizeActionUseCase(
		decoder, preprocess.NewBuilder(), predictor,
		repo, storage, eventPub,
		log,
		usecase.RecognizeConfig{
			DecodeTimeout: time.Duration(cfg.DecodeTimeoutSec) * time.Second,
		},
	)

	// Metrics server
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, log)

	// HTTP server
	handler := httpserver.NewHandler(uc, predictor, cfg.TempDir, log)
	router := httpserver.NewRouter(handler, httpserver.ServerConfig{
		Port:           cfg.HTTPPort,
		StaticDir:      cfg.StaticDir,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}, log)
	srv := httpserver.NewServer(router, cfg.HTTPPort)

	go func() {
		log.Info("http server starting", zap.Int("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", zap.Error(err))
			cancel()
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	srv.Shutdown(shutdownCtx)
	metricsSrv.Shutdown(shutdownCtx)

	log.Info("frame2action stopped")
}

func fatalOnErr(err error, msg string) {
	if err != nil {
		panic(msg + ": " + err.Error())
	}
}
