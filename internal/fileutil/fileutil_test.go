package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUniqueTempPathIsUnique(t *testing.T) {
	dir := t.TempDir()
	a := UniqueTempPath(dir, "audio", ".m4a")
	b := UniqueTempPath(dir, "audio", ".m4a")
	if a == b {
		t.Fatalf("expected distinct paths, got %s twice", a)
	}
	if !strings.HasPrefix(filepath.Base(a), "audio-") || !strings.HasSuffix(a, ".m4a") {
		t.Fatalf("unexpected temp path shape: %s", a)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	if Exists(path) {
		t.Fatal("missing file reported as existing")
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !Exists(path) {
		t.Fatal("existing file reported as missing")
	}
	if Exists(dir) {
		t.Fatal("directory reported as regular file")
	}
}
