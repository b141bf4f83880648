// Package store keeps rendered runs on disk, one directory per run holding
// its metadata, its configuration and the image.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/randomlogo/internal/config"
	"github.com/san-kum/randomlogo/internal/ifs"
	"github.com/san-kum/randomlogo/internal/materialize"
)

const (
	metadataFile = "metadata.json"
	configFile   = "config.toml"
	imageFile    = "fractal.png"
)

// ErrNotFound is returned for unknown run IDs.
var ErrNotFound = errors.New("run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string     `json:"id"`
	Timestamp time.Time  `json:"timestamp"`
	Seed      uint64     `json:"seed"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	NPoints   int        `json:"npoints"`
	RNG       string     `json:"rng"`
	Policy    string     `json:"policy"`
	Recorded  uint64     `json:"recorded"`
	Visited   int        `json:"visited"`
	Duration  float64    `json:"duration_seconds"`
	IFS       ifs.Export `json:"ifs"`
}

// Save writes a new run and returns its ID. ID and Timestamp of meta are
// filled in by the store.
func (s *Store) Save(meta RunMetadata, cfg *config.Config, img image.Image) (string, error) {
	meta.ID = uuid.NewString()
	meta.Timestamp = time.Now().UTC()
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := config.Save(filepath.Join(runDir, configFile), cfg); err != nil {
		return "", fmt.Errorf("save config: %w", err)
	}
	if err := materialize.WritePNG(filepath.Join(runDir, imageFile), img); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.runDir(runID), metadataFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
	}
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadConfig returns the configuration a run was rendered with.
func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	cfg, err := config.Load(filepath.Join(s.runDir(runID), configFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
	}
	return cfg, err
}

func (s *Store) ImagePath(runID string) string {
	return filepath.Join(s.runDir(runID), imageFile)
}

// Delete removes a run. Unknown IDs are not an error.
func (s *Store) Delete(runID string) error {
	return os.RemoveAll(s.runDir(runID))
}

func (s *Store) runDir(runID string) string {
	// Base keeps IDs from escaping the store directory.
	return filepath.Join(s.baseDir, filepath.Base(runID))
}
