package usecase

import (
	"context"
	"os"
	"runtime"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wg-lux/agl-frame-extractor/internal/domain/entity"
	"github.com/wg-lux/agl-frame-extractor/internal/domain/port"
)

// JobHandler processes one video job. The batch runner treats it as opaque;
// an error only means this job failed.
type JobHandler func(ctx context.Context, job *entity.VideoJob) error

type BatchConfig struct {
	InputFolder  string
	OutputFolder string
	ImageFormat  string

	// UseMultithreading switches from strictly ordered sequential
	// processing to a bounded worker pool. WorkerCount 0 means one worker
	// per CPU.
	UseMultithreading bool
	WorkerCount       int
}

// BatchRunner discovers input videos and drives the per-video handler over
// them, either sequentially or on a worker pool. Jobs share nothing but the
// pool and the progress counter, so a failing job never disturbs its
// siblings.
type BatchRunner struct {
	scanner   port.VideoScanner
	handler   JobHandler
	cfg       BatchConfig
	logger    *zap.Logger
	processed atomic.Int64
	wg        sync.WaitGroup
}

func NewBatchRunner(scanner port.VideoScanner, handler JobHandler, cfg BatchConfig, logger *zap.Logger) *BatchRunner {
	return &BatchRunner{
		scanner: scanner,
		handler: handler,
		cfg:     cfg,
		logger:  logger,
	}
}

func (b *BatchRunner) Run(ctx context.Context) (*entity.BatchReport, error) {
	if err := os.MkdirAll(b.cfg.OutputFolder, 0o755); err != nil {
		return nil, &entity.ConfigurationError{Field: "OUTPUT_FOLDER", Reason: err.Error()}
	}
	b.logger.Info("output folder ready", zap.String("path", b.cfg.OutputFolder))

	files, err := b.scanner.Videos(b.cfg.InputFolder)
	if err != nil {
		return nil, err
	}
	b.logger.Info("videos found",
		zap.Int("count", len(files)),
		zap.String("input", b.cfg.InputFolder),
	)

	report := entity.NewBatchReport(len(files))
	if len(files) == 0 {
		return report, nil
	}

	workers := b.workerCount()
	jobs := make(chan *entity.VideoJob)
	results := make(chan entity.JobResult)

	b.logger.Info("starting worker pool", zap.Int("workers", workers))
	for i := 0; i < workers; i++ {
		b.wg.Add(1)
		go b.worker(ctx, i, jobs, results)
	}

	go func() {
		defer close(jobs)
		for _, f := range files {
			select {
			case <-ctx.Done():
				return
			case jobs <- entity.NewVideoJob(f, b.cfg.OutputFolder, b.cfg.ImageFormat):
			}
		}
	}()

	go func() {
		b.wg.Wait()
		close(results)
	}()

	for res := range results {
		report.Add(res)
		done := b.processed.Add(1)
		b.logger.Info("progress",
			zap.Int64("done", done),
			zap.Int("total", len(files)),
			zap.String("video", res.Job.Name()),
			zap.String("status", string(res.Job.Status)),
		)
	}

	b.logger.Info("batch finished",
		zap.Int("total", report.Total),
		zap.Int("completed", report.Completed),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

func (b *BatchRunner) worker(ctx context.Context, id int, jobs <-chan *entity.VideoJob, results chan<- entity.JobResult) {
	defer b.wg.Done()
	log := b.logger.With(zap.Int("worker_id", id))

	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			err := b.handler(ctx, job)
			if err != nil {
				log.Warn("job failed", zap.String("video", job.Name()), zap.Error(err))
			}
			select {
			case results <- entity.JobResult{Job: job, Err: err}:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (b *BatchRunner) workerCount() int {
	if !b.cfg.UseMultithreading {
		return 1
	}
	if b.cfg.WorkerCount > 0 {
		return b.cfg.WorkerCount
	}
	return runtime.NumCPU()
}
