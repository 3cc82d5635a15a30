package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/wg-lux/agl-frame-extractor/internal/domain/port"
	"github.com/wg-lux/agl-frame-extractor/internal/infra/archive"
	"github.com/wg-lux/agl-frame-extractor/internal/infra/config"
	"github.com/wg-lux/agl-frame-extractor/internal/infra/decode"
	"github.com/wg-lux/agl-frame-extractor/internal/infra/ffmpeg"
	"github.com/wg-lux/agl-frame-extractor/internal/infra/metrics"
	miniostorage "github.com/wg-lux/agl-frame-extractor/internal/infra/minio"
	"github.com/wg-lux/agl-frame-extractor/internal/infra/scan"
	"github.com/wg-lux/agl-frame-extractor/internal/infra/sidecar"
	"github.com/wg-lux/agl-frame-extractor/internal/usecase"
	"github.com/wg-lux/agl-frame-extractor/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	fatalOnErr(err, "load config")

	log, err := logger.New(cfg.LogLevel, cfg.LogFile)
	fatalOnErr(err, "init logger")
	defer log.Sync()

	log.Info("starting agl-frame-extractor",
		zap.String("input", cfg.InputFolder),
		zap.String("output", cfg.OutputFolder),
		zap.String("image_format", cfg.ImageFormat),
		zap.Bool("multithreading", cfg.UseMultithreading),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	// Optional result upload target.
	var store port.ResultStore
	if cfg.MinIOEndpoint != "" {
		storage, err := miniostorage.NewStorage(miniostorage.StorageConfig{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			UseSSL:    cfg.MinIOUseSSL,
			Bucket:    cfg.MinIOBucket,
		})
		fatalOnErr(err, "create minio storage")
		fatalOnErr(storage.EnsureBucket(ctx), "ensure minio bucket")
		store = storage
	}

	var metricsSrv *http.Server
	if cfg.MetricsPort > 0 {
		metricsSrv = metrics.StartServer(cfg.MetricsPort, log)
	}

	sidecars := sidecar.NewStore()
	pipeline := usecase.NewProcessVideoUseCase(
		ffmpeg.NewTranscoder(cfg.FFmpegBin, log),
		sidecar.NewChecker(sidecars, log),
		decode.NewExtractor(sidecars, log),
		archive.NewZipper(),
		store,
		log,
		usecase.ProcessVideoConfig{
			TranscodeFirst: cfg.TranscodeFirst,
			ArchiveFrames:  cfg.ArchiveFrames,
		},
	)

	runner := usecase.NewBatchRunner(
		scan.NewScanner(cfg.IncludeMP4),
		pipeline.Execute,
		usecase.BatchConfig{
			InputFolder:       cfg.InputFolder,
			OutputFolder:      cfg.OutputFolder,
			ImageFormat:       cfg.ImageFormat,
			UseMultithreading: cfg.UseMultithreading,
			WorkerCount:       cfg.WorkerCount,
		},
		log,
	)

	report, err := runner.Run(ctx)

	if metricsSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		metricsSrv.Shutdown(shutdownCtx)
		shutdownCancel()
	}

	if err != nil {
		log.Error("batch run failed", zap.Error(err))
		os.Exit(1)
	}

	for _, res := range report.Failures() {
		log.Warn("failed video",
			zap.String("video", res.Job.Name()),
			zap.String("error", res.Job.ErrorMessage),
		)
	}
	if report.Failed > 0 {
		os.Exit(1)
	}
}

func fatalOnErr(err error, msg string) {
	if err != nil {
		panic(msg + ": " + err.Error())
	}
}
