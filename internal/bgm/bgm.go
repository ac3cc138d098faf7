// Package bgm locates background music files for mixing.
package bgm

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"bookreel/internal/fileutil"
)

var audioExtensions = map[string]struct{}{
	".mp3": {},
	".wav": {},
	".m4a": {},
	".aac": {},
}

// Track is one discoverable background music file.
type Track struct {
	Name string
	Path string
}

// Discover scans the configured directories for audio files. Results are
// deduplicated by file name (first directory wins) and sorted by name.
// Missing directories are skipped rather than treated as errors.
func Discover(dirs []string) ([]Track, error) {
	seen := make(map[string]struct{})
	var tracks []Track
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("scan bgm directory %s: %w", dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			ext := strings.ToLower(filepath.Ext(entry.Name()))
			if _, ok := audioExtensions[ext]; !ok {
				continue
			}
			if _, dup := seen[entry.Name()]; dup {
				continue
			}
			seen[entry.Name()] = struct{}{}
			tracks = append(tracks, Track{Name: entry.Name(), Path: filepath.Join(dir, entry.Name())})
		}
	}
	sort.Slice(tracks, func(i, j int) bool { return tracks[i].Name < tracks[j].Name })
	return tracks, nil
}

// Resolve maps a BGM selection to a concrete file path. An absolute or
// relative path that exists is used directly; otherwise the name is
// looked up among the discovered tracks.
func Resolve(selection string, dirs []string) (string, error) {
	selection = strings.TrimSpace(selection)
	if selection == "" {
		return "", fmt.Errorf("bgm: no track selected")
	}
	if fileutil.Exists(selection) {
		return selection, nil
	}
	tracks, err := Discover(dirs)
	if err != nil {
		return "", err
	}
	for _, track := range tracks {
		if track.Name == selection {
			return track.Path, nil
		}
	}
	return "", fmt.Errorf("bgm: track %q not found in %s", selection, strings.Join(dirs, ", "))
}
