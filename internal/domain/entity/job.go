package entity

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusPending    JobStatus = "PENDING"
	JobStatusProcessing JobStatus = "PROCESSING"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusSkipped    JobStatus = "SKIPPED"
	JobStatusFailed     JobStatus = "FAILED"
)

// VideoJob is one input video discovered in the input folder, together with
// everything derived from it: output paths, status and the frame count once
// extraction finishes. A job is created per discovered file and owned by a
// single worker; nothing in it is shared across jobs.
type VideoJob struct {
	ID           uuid.UUID
	SourcePath   string
	OutputRoot   string
	ImageFormat  string
	Status       JobStatus
	FrameCount   int
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CompletedAt  *time.Time
}

func NewVideoJob(sourcePath, outputRoot, imageFormat string) *VideoJob {
	now := time.Now().UTC()
	return &VideoJob{
		ID:          uuid.New(),
		SourcePath:  sourcePath,
		OutputRoot:  outputRoot,
		ImageFormat: imageFormat,
		Status:      JobStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Name is the video's file name including its extension. Output artifacts are
// keyed on it, so "clip.mov" produces "clip.mov_frames" and
// "clip.mov_metadata.json".
func (j *VideoJob) Name() string {
	return filepath.Base(j.SourcePath)
}

func (j *VideoJob) FramesDir() string {
	return filepath.Join(j.OutputRoot, j.Name()+"_frames")
}

func (j *VideoJob) SidecarPath() string {
	return filepath.Join(j.OutputRoot, j.Name()+"_metadata.json")
}

// TranscodedPath is the normalized intermediate. The extension is stripped
// since the transcode always lands in an mp4 container.
func (j *VideoJob) TranscodedPath() string {
	stem := strings.TrimSuffix(j.Name(), filepath.Ext(j.Name()))
	return filepath.Join(j.OutputRoot, stem+"_transcoded.mp4")
}

func (j *VideoJob) ArchivePath() string {
	return filepath.Join(j.OutputRoot, j.Name()+"_frames.zip")
}

func (j *VideoJob) FramePath(index int) string {
	return filepath.Join(j.FramesDir(), fmt.Sprintf("frame_%d.%s", index, j.ImageFormat))
}

func (j *VideoJob) MarkProcessing() {
	j.Status = JobStatusProcessing
	j.UpdatedAt = time.Now().UTC()
}

func (j *VideoJob) MarkCompleted(frameCount int) {
	now := time.Now().UTC()
	j.Status = JobStatusCompleted
	j.FrameCount = frameCount
	j.UpdatedAt = now
	j.CompletedAt = &now
}

func (j *VideoJob) MarkSkipped() {
	now := time.Now().UTC()
	j.Status = JobStatusSkipped
	j.UpdatedAt = now
	j.CompletedAt = &now
}

func (j *VideoJob) MarkFailed(errMsg string) {
	j.Status = JobStatusFailed
	j.ErrorMessage = errMsg
	j.UpdatedAt = time.Now().UTC()
}
