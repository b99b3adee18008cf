package submit

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/deslibris/accessonix/cli/internal/form"
)

// Upload limits enforced by the processing service.
const (
	MaxEPUBSize int64 = 10 * 1024 * 1024
	MaxONIXSize int64 = 5 * 1024 * 1024
)

// CheckFileSizes makes sure both files exist and fit the service limits.
func CheckFileSizes(epub, onix form.FileRef, stat func(string) (os.FileInfo, error)) form.Result {
	if r := checkSize("EPUB", epub, MaxEPUBSize, stat); !r.OK() {
		return r
	}
	return checkSize("ONIX", onix, MaxONIXSize, stat)
}

func checkSize(label string, ref form.FileRef, limit int64, stat func(string) (os.FileInfo, error)) form.Result {
	info, err := stat(ref.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return form.Invalid(label + " file not found")
		}
		return form.Invalid(fmt.Sprintf("%s file could not be read", label))
	}
	if info.IsDir() {
		return form.Invalid(label + " file not found")
	}
	if info.Size() > limit {
		return form.Invalid(fmt.Sprintf("%s file exceeds the %s limit", label, humanize.IBytes(uint64(limit))))
	}
	return form.Valid()
}

// DescribeFile renders "name (size)" for display, or just the name when
// the file cannot be read.
func DescribeFile(path string) string {
	if path == "" {
		return ""
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return filepath.Base(path)
	}
	return fmt.Sprintf("%s (%s)", filepath.Base(path), humanize.IBytes(uint64(info.Size())))
}

// DirSaver writes documents into a directory, the terminal stand-in for a
// browser download.
type DirSaver struct {
	Dir string
}

// Save writes data under name and returns the full path.
func (s DirSaver) Save(name string, data []byte) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}

// WriterNotifier prints notifications, one per line.
type WriterNotifier struct {
	W io.Writer
}

// Notify writes the message.
func (n WriterNotifier) Notify(message string) {
	fmt.Fprintf(n.W, "error: %s\n", message)
}
