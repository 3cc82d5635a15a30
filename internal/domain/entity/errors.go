package entity

import "fmt"

// ConfigurationError is fatal at startup: the input or output path is missing
// or unusable.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
}

// ExternalProcessError reports a transcoder subprocess that exited non-zero.
// Output carries the captured combined stdout/stderr.
type ExternalProcessError struct {
	Command string
	Output  string
	Err     error
}

func (e *ExternalProcessError) Error() string {
	return fmt.Sprintf("external process %s: %v", e.Command, e.Err)
}

func (e *ExternalProcessError) Unwrap() error { return e.Err }

// DecodeOpenError reports a video stream that could not be opened.
type DecodeOpenError struct {
	Path string
	Err  error
}

func (e *DecodeOpenError) Error() string {
	return fmt.Sprintf("open video %s: %v", e.Path, e.Err)
}

func (e *DecodeOpenError) Unwrap() error { return e.Err }

// FrameWriteError reports a filesystem failure while persisting a frame image
// or the metadata sidecar. Partial output is left on disk.
type FrameWriteError struct {
	Path string
	Err  error
}

func (e *FrameWriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *FrameWriteError) Unwrap() error { return e.Err }
