package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}

// Exists reports whether path refers to an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// UniqueTempPath returns a collision-free path inside dir, named
// <prefix>-<uuid><ext>. Renders running in overlapping processes get
// distinct intermediate files.
func UniqueTempPath(dir, prefix, ext string) string {
	return filepath.Join(dir, fmt.Sprintf("%s-%s%s", prefix, uuid.NewString(), ext))
}
