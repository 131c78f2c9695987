package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bluby/brew-parser/internal/checksum"
	"github.com/bluby/brew-parser/internal/formula"
	"github.com/bluby/brew-parser/internal/logger"
)

const (
	snapshotFile = "formulas.json"
	metadataFile = "metadata.json"
)

// Store handles persistence of formula snapshots in a local data directory.
type Store struct {
	dataDir string
}

// Metadata describes the most recent successful Save. It is derived state,
// rebuilt on every write; the snapshot file is the source of truth.
type Metadata struct {
	LastUpdated  string `json:"last_updated"`
	FormulaCount int    `json:"formula_count"`
	Hash         string `json:"hash"`
}

// snapshotData is the canonical on-disk representation of a snapshot.
type snapshotData struct {
	Formulas []formula.Formula `json:"formulas"`
}

// New creates a new Store rooted at dataDir, creating the directory if
// needed. A leading ~/ is expanded to the user's home directory.
func New(dataDir string) (*Store, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Store{
		dataDir: dataDir,
	}, nil
}

// SnapshotPath returns the path to the snapshot file.
func (s *Store) SnapshotPath() string {
	return filepath.Join(s.dataDir, snapshotFile)
}

// MetadataPath returns the path to the metadata file.
func (s *Store) MetadataPath() string {
	return filepath.Join(s.dataDir, metadataFile)
}

// Save overwrites the stored snapshot with the given formulas and rewrites
// the metadata file. It hashes the previously stored file (if any) before
// writing and the fresh file after, and reports whether the persisted
// content actually changed, along with a human-readable summary.
func (s *Store) Save(formulas []formula.Formula) (changed bool, summary string, err error) {
	path := s.SnapshotPath()

	// Hash the existing snapshot so we can tell whether anything changed.
	oldHash := ""
	if _, statErr := os.Stat(path); statErr == nil {
		oldHash, err = checksum.FileSHA256(path)
		if err != nil {
			logger.Warn("Could not hash existing snapshot", logger.Fields{"path": path, "error": err.Error()})
			oldHash = ""
		}
	}

	data, err := json.MarshalIndent(snapshotData{Formulas: formulas}, "", "  ")
	if err != nil {
		return false, "", fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return false, "", fmt.Errorf("writing snapshot: %w", err)
	}

	newHash, err := checksum.FileSHA256(path)
	if err != nil {
		return false, "", fmt.Errorf("hashing snapshot: %w", err)
	}

	if err := s.writeMetadata(len(formulas), newHash); err != nil {
		return false, "", err
	}

	if oldHash != "" && oldHash == newHash {
		return false, "Formula data is already up to date.", nil
	}

	summary = fmt.Sprintf("Successfully updated formula data. Total formulas: %d", len(formulas))
	return true, summary, nil
}

// writeMetadata rewrites the metadata file describing this update.
func (s *Store) writeMetadata(count int, hash string) error {
	meta := Metadata{
		LastUpdated:  time.Now().UTC().Format(time.RFC3339),
		FormulaCount: count,
		Hash:         hash,
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}

	if err := os.WriteFile(s.MetadataPath(), data, 0644); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}

	return nil
}

// Load reads the stored snapshot. The second return value reports whether
// a usable snapshot was found. A missing file, unparsable JSON, or a
// missing/invalid "formulas" key all log and return (nil, false) — none of
// these conditions are fatal, they just mean there is no baseline yet.
func (s *Store) Load() ([]formula.Formula, bool) {
	path := s.SnapshotPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Error("Failed to read stored formulas file", logger.Fields{"path": path}, err)
		}
		return nil, false
	}

	var stored snapshotData
	if err := json.Unmarshal(data, &stored); err != nil {
		logger.Error("Failed to parse stored formulas", logger.Fields{"path": path}, err)
		return nil, false
	}

	if stored.Formulas == nil {
		logger.Error("Invalid stored data format", logger.Fields{"path": path}, nil)
		return nil, false
	}

	return stored.Formulas, true
}

// LoadMetadata reads the metadata file from the last Save, if present.
func (s *Store) LoadMetadata() (*Metadata, bool) {
	data, err := os.ReadFile(s.MetadataPath())
	if err != nil {
		return nil, false
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		logger.Error("Failed to parse metadata", logger.Fields{"path": s.MetadataPath()}, err)
		return nil, false
	}

	return &meta, true
}
