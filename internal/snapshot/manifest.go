package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
)

// Manifest summarizes one completed run. It is written next to the
// mirror tree so a snapshot can be identified without opening any of
// its report pages.
type Manifest struct {
	Generator string    `json:"generator"`
	Created   time.Time `json:"created"`
	Source    string    `json:"source"`
	SizeBytes int64     `json:"size_bytes"`
	Size      string    `json:"size"`
	Files     int64     `json:"files"`
	Dirs      int64     `json:"directories"`
	Symlinks  int64     `json:"symlinks"`
	Skipped   int64     `json:"skipped"`
}

const manifestName = "snapshot.json"

// WriteManifest saves the run summary as snapshot.json in the
// destination root.
func WriteManifest(destRoot, source string, stats Stats) error {
	manifest := Manifest{
		Generator: "dirsnap",
		Created:   time.Now(),
		Source:    source,
		SizeBytes: stats.TotalBytes,
		Size:      humanize.IBytes(uint64(stats.TotalBytes)),
		Files:     stats.Files,
		Dirs:      stats.Dirs,
		Symlinks:  stats.Symlinks,
		Skipped:   stats.Skipped,
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(filepath.Join(destRoot, manifestName), data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}

// LoadManifest reads a previously written run summary.
func LoadManifest(destRoot string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(destRoot, manifestName))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}

	return &manifest, nil
}
