package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bluby/brew-parser/internal/formula"
)

func testFormulas() []formula.Formula {
	return []formula.Formula{
		{
			Name:     "jq",
			Desc:     "Lightweight and flexible command-line JSON processor",
			Homepage: "https://jqlang.github.io/jq/",
			Versions: formula.Versions{Stable: "1.7.1"},
		},
		{
			Name:     "wget",
			Desc:     "Internet file retriever",
			Homepage: "https://www.gnu.org/software/wget/",
			Versions: formula.Versions{Stable: "1.25.0"},
		},
	}
}

func TestSaveAndLoad(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	formulas := testFormulas()

	changed, summary, err := store.Save(formulas)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !changed {
		t.Error("expected first Save to report changed")
	}
	if !strings.Contains(summary, "Total formulas: 2") {
		t.Errorf("expected summary with formula count, got %q", summary)
	}

	loaded, ok := store.Load()
	if !ok {
		t.Fatal("expected Load to find the saved snapshot")
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 formulas, got %d", len(loaded))
	}
	if loaded[0].Name != "jq" || loaded[0].StableVersion() != "1.7.1" {
		t.Errorf("expected jq 1.7.1, got %s %s", loaded[0].Name, loaded[0].StableVersion())
	}
}

func TestSaveChangeDetection(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	formulas := testFormulas()

	if _, _, err := store.Save(formulas); err != nil {
		t.Fatalf("first Save() error = %v", err)
	}

	t.Run("identical save reports no changes", func(t *testing.T) {
		changed, summary, err := store.Save(formulas)
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if changed {
			t.Error("expected identical save to report no change")
		}
		if summary != "Formula data is already up to date." {
			t.Errorf("unexpected summary: %q", summary)
		}
	})

	t.Run("version bump reports changed", func(t *testing.T) {
		bumped := testFormulas()
		bumped[0].Versions.Stable = "1.8.0"

		changed, summary, err := store.Save(bumped)
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if !changed {
			t.Error("expected save with changed version to report changed")
		}
		if !strings.Contains(summary, "Successfully updated") {
			t.Errorf("unexpected summary: %q", summary)
		}
	})
}

func TestSaveWritesCanonicalFormat(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if _, _, err := store.Save(testFormulas()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(store.SnapshotPath())
	if err != nil {
		t.Fatalf("Failed to read snapshot file: %v", err)
	}

	// Wrapped in a single "formulas" key, pretty-printed
	if !strings.HasPrefix(string(data), "{\n  \"formulas\": [") {
		t.Errorf("unexpected snapshot file prefix: %q", string(data[:30]))
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapper); err != nil {
		t.Fatalf("snapshot file is not valid JSON: %v", err)
	}
	if _, ok := wrapper["formulas"]; !ok {
		t.Error("expected 'formulas' key in snapshot file")
	}
}

func TestSaveWritesMetadata(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if _, _, err := store.Save(testFormulas()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	meta, ok := store.LoadMetadata()
	if !ok {
		t.Fatal("expected metadata file after Save")
	}

	if meta.FormulaCount != 2 {
		t.Errorf("expected formula_count 2, got %d", meta.FormulaCount)
	}
	if len(meta.Hash) != 64 {
		t.Errorf("expected 64-character hash, got %d characters", len(meta.Hash))
	}
	if _, err := time.Parse(time.RFC3339, meta.LastUpdated); err != nil {
		t.Errorf("last_updated is not RFC3339: %v", err)
	}
}

func TestLoadAbsentConditions(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string)
	}{
		{
			name:  "no snapshot file",
			setup: func(t *testing.T, dir string) {},
		},
		{
			name: "unparsable file",
			setup: func(t *testing.T, dir string) {
				path := filepath.Join(dir, "formulas.json")
				if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
					t.Fatalf("failed to write file: %v", err)
				}
			},
		},
		{
			name: "missing formulas key",
			setup: func(t *testing.T, dir string) {
				path := filepath.Join(dir, "formulas.json")
				if err := os.WriteFile(path, []byte(`{"packages": []}`), 0644); err != nil {
					t.Fatalf("failed to write file: %v", err)
				}
			},
		},
		{
			name: "formulas key is not a sequence",
			setup: func(t *testing.T, dir string) {
				path := filepath.Join(dir, "formulas.json")
				if err := os.WriteFile(path, []byte(`{"formulas": "nope"}`), 0644); err != nil {
					t.Fatalf("failed to write file: %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.setup(t, dir)

			store, err := New(dir)
			if err != nil {
				t.Fatalf("Failed to create store: %v", err)
			}

			got, ok := store.Load()
			if ok {
				t.Errorf("expected Load to report no snapshot, got %d formulas", len(got))
			}
			if got != nil {
				t.Errorf("expected nil formulas, got %v", got)
			}
		})
	}
}

func TestLoadEmptySnapshotIsValid(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if _, _, err := store.Save([]formula.Formula{}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, ok := store.Load()
	if !ok {
		t.Fatal("expected empty snapshot to load as a valid baseline")
	}
	if len(loaded) != 0 {
		t.Errorf("expected 0 formulas, got %d", len(loaded))
	}
}

func TestNewCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	if _, err := New(dir); err != nil {
		t.Fatalf("New() error = %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("expected data directory to exist: %v", err)
	}
	if !info.IsDir() {
		t.Error("expected data directory to be a directory")
	}
}
