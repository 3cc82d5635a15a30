package config

import (
	"os"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/wg-lux/agl-frame-extractor/internal/domain/entity"
)

type Config struct {
	InputFolder  string `env:"INPUT_FOLDER"`
	OutputFolder string `env:"OUTPUT_FOLDER"`

	UseMultithreading bool   `env:"USE_MULTITHREADING" envDefault:"false"`
	WorkerCount       int    `env:"WORKER_COUNT"       envDefault:"0"`
	ImageFormat       string `env:"IMAGE_FORMAT"       envDefault:"jpg"`
	IncludeMP4        bool   `env:"INCLUDE_MP4"        envDefault:"false"`

	TranscodeFirst bool   `env:"TRANSCODE_FIRST" envDefault:"false"`
	FFmpegBin      string `env:"FFMPEG_BIN"      envDefault:"ffmpeg"`

	ArchiveFrames bool `env:"ARCHIVE_FRAMES" envDefault:"false"`

	MinIOEndpoint  string `env:"MINIO_ENDPOINT"   envDefault:""`
	MinIOAccessKey string `env:"MINIO_ACCESS_KEY" envDefault:"minioadmin"`
	MinIOSecretKey string `env:"MINIO_SECRET_KEY" envDefault:"minioadmin"`
	MinIOUseSSL    bool   `env:"MINIO_USE_SSL"    envDefault:"false"`
	MinIOBucket    string `env:"MINIO_BUCKET"     envDefault:"frames"`

	MetricsPort int    `env:"METRICS_PORT" envDefault:"0"`
	LogLevel    string `env:"LOG_LEVEL"    envDefault:"info"`
	LogFile     string `env:"LOG_FILE"     envDefault:""`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate enforces the startup-fatal part of the configuration surface: the
// input folder must exist, the output folder must be named, and the image
// format must be one the extractor can encode.
func (c *Config) Validate() error {
	if c.InputFolder == "" {
		return &entity.ConfigurationError{Field: "INPUT_FOLDER", Reason: "not set"}
	}
	info, err := os.Stat(c.InputFolder)
	if err != nil {
		return &entity.ConfigurationError{Field: "INPUT_FOLDER", Reason: err.Error()}
	}
	if !info.IsDir() {
		return &entity.ConfigurationError{Field: "INPUT_FOLDER", Reason: "not a directory"}
	}
	if c.OutputFolder == "" {
		return &entity.ConfigurationError{Field: "OUTPUT_FOLDER", Reason: "not set"}
	}

	switch strings.ToLower(c.ImageFormat) {
	case "jpg", "jpeg", "png":
	default:
		return &entity.ConfigurationError{Field: "IMAGE_FORMAT", Reason: "unsupported format " + c.ImageFormat}
	}
	return nil
}
