package port

// VideoScanner enumerates candidate video files in an input directory.
type VideoScanner interface {
	Videos(inputDir string) ([]string, error)
}
