// Package archive bundles a frames directory into a zip file.
package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type Zipper struct{}

func NewZipper() *Zipper {
	return &Zipper{}
}

// ArchiveFrames zips every regular file in framesDir under its base name.
func (z *Zipper) ArchiveFrames(ctx context.Context, framesDir, outputPath string) error {
	entries, err := os.ReadDir(framesDir)
	if err != nil {
		return fmt.Errorf("read frames dir: %w", err)
	}

	zipFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer zipFile.Close()

	zipWriter := zip.NewWriter(zipFile)
	defer zipWriter.Close()

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		path := filepath.Join(framesDir, entry.Name())
		if err := addFileToZip(zipWriter, path); err != nil {
			return fmt.Errorf("add %s to archive: %w", path, err)
		}
	}

	return nil
}

func addFileToZip(zw *zip.Writer, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}

	header.Name = filepath.Base(filename)
	header.Method = zip.Deflate

	writer, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = io.Copy(writer, file)
	return err
}
