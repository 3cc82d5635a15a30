package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wg-lux/agl-frame-extractor/internal/domain/entity"
	"github.com/wg-lux/agl-frame-extractor/internal/domain/port"
	"github.com/wg-lux/agl-frame-extractor/internal/infra/metrics"
)

// ProcessVideoUseCase runs the per-video pipeline: completion check, optional
// transcode, frame extraction and optional archive/upload. Every stage
// failure is fatal for the job only; the caller decides what to do with the
// returned error.
type ProcessVideoUseCase struct {
	transcoder port.Transcoder
	checker    port.CompletionChecker
	extractor  port.FrameExtractor
	archiver   port.Archiver
	store      port.ResultStore // nil disables uploads
	logger     *zap.Logger
	cfg        ProcessVideoConfig
}

type ProcessVideoConfig struct {
	TranscodeFirst bool
	ArchiveFrames  bool
}

func NewProcessVideoUseCase(
	transcoder port.Transcoder,
	checker port.CompletionChecker,
	extractor port.FrameExtractor,
	archiver port.Archiver,
	store port.ResultStore,
	logger *zap.Logger,
	cfg ProcessVideoConfig,
) *ProcessVideoUseCase {
	return &ProcessVideoUseCase{
		transcoder: transcoder,
		checker:    checker,
		extractor:  extractor,
		archiver:   archiver,
		store:      store,
		logger:     logger,
		cfg:        cfg,
	}
}

func (uc *ProcessVideoUseCase) Execute(ctx context.Context, job *entity.VideoJob) error {
	log := uc.logger.With(
		zap.String("job_id", job.ID.String()),
		zap.String("video", job.Name()),
	)
	totalTimer := time.Now()

	// Check before transcoding: a completed video's re-run must touch
	// nothing, including the transcoder.
	if uc.checker.IsComplete(job) {
		job.MarkSkipped()
		metrics.JobsProcessedTotal.WithLabelValues("skipped").Inc()
		log.Info("video already processed, skipping")
		return nil
	}

	job.MarkProcessing()
	metrics.ActiveWorkers.Inc()
	defer metrics.ActiveWorkers.Dec()

	videoPath := job.SourcePath
	if uc.cfg.TranscodeFirst {
		start := time.Now()
		transcoded, err := uc.transcoder.Transcode(ctx, job)
		if err != nil {
			return uc.fail(job, "transcode", err, log)
		}
		metrics.JobStageDuration.WithLabelValues("transcode").Observe(time.Since(start).Seconds())
		videoPath = transcoded
	}

	start := time.Now()
	result, err := uc.extractor.ExtractFrames(ctx, videoPath, job)
	if err != nil {
		return uc.fail(job, "extract", err, log)
	}
	metrics.JobStageDuration.WithLabelValues("extract").Observe(time.Since(start).Seconds())
	metrics.FramesExtractedTotal.Add(float64(result.FramesWritten))

	if uc.cfg.ArchiveFrames {
		if err := uc.archiveAndUpload(ctx, job, log); err != nil {
			return uc.fail(job, "archive", err, log)
		}
	}

	job.MarkCompleted(result.FramesWritten)
	metrics.JobsProcessedTotal.WithLabelValues("completed").Inc()
	metrics.JobStageDuration.WithLabelValues("total").Observe(time.Since(totalTimer).Seconds())

	log.Info("video processed",
		zap.Int("frames_written", result.FramesWritten),
		zap.Int("reported_total_frames", result.Metadata.TotalFrames),
		zap.Int("duration_ms", result.Metadata.DurationMS),
	)
	return nil
}

func (uc *ProcessVideoUseCase) archiveAndUpload(ctx context.Context, job *entity.VideoJob, log *zap.Logger) error {
	start := time.Now()
	archivePath := job.ArchivePath()
	if err := uc.archiver.ArchiveFrames(ctx, job.FramesDir(), archivePath); err != nil {
		return err
	}
	metrics.JobStageDuration.WithLabelValues("archive").Observe(time.Since(start).Seconds())

	if uc.store == nil {
		return nil
	}

	start = time.Now()
	if err := uc.store.UploadFile(ctx, job.Name()+"/frames.zip", archivePath, "application/zip"); err != nil {
		return err
	}
	if err := uc.store.UploadFile(ctx, job.Name()+"/metadata.json", job.SidecarPath(), "application/json"); err != nil {
		return err
	}
	metrics.JobStageDuration.WithLabelValues("upload").Observe(time.Since(start).Seconds())

	log.Info("artifacts uploaded", zap.String("archive", archivePath))
	return nil
}

func (uc *ProcessVideoUseCase) fail(job *entity.VideoJob, stage string, err error, log *zap.Logger) error {
	job.MarkFailed(stage + ": " + err.Error())
	metrics.JobsProcessedTotal.WithLabelValues("failed").Inc()
	log.Error("stage failed", zap.String("stage", stage), zap.Error(err))
	return fmt.Errorf("%s %s: %w", stage, job.Name(), err)
}
