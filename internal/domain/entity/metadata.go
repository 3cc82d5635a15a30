package entity

// VideoMetadata is the sidecar record written next to a frames directory.
// The field values are captured when the video is opened, before any frame
// is decoded; total_frames is therefore the container's estimate and may
// differ from the number of frame files actually written.
type VideoMetadata struct {
	TotalFrames int    `json:"total_frames"`
	FPS         int    `json:"fps"`
	DurationMS  int    `json:"duration"`
	VideoFile   string `json:"video_file,omitempty"`
}

// NewVideoMetadata truncates the decoder's float attributes to the integer
// fields of the sidecar record. Duration is converted from seconds to whole
// milliseconds.
func NewVideoMetadata(totalFrames int, fps float64, durationSec float64, videoFile string) VideoMetadata {
	if totalFrames < 0 {
		totalFrames = 0
	}
	return VideoMetadata{
		TotalFrames: totalFrames,
		FPS:         int(fps),
		DurationMS:  int(durationSec * 1000),
		VideoFile:   videoFile,
	}
}
