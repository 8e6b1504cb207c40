// Package corpus loads raw patent records from a directory of JSON files.
package corpus

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gcbaptista/patent-semantic-search/model"
)

// Loader reads patent JSON files from a corpus directory. File enumeration
// order is not significant.
type Loader struct {
	dataPath string
	logger   *slog.Logger
}

// NewLoader creates a Loader for the given corpus directory.
func NewLoader(dataPath string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{dataPath: dataPath, logger: logger}
}

// Load reads every *.json file under the corpus directory and unmarshals it
// into a raw patent record. Files that cannot be read or parsed are logged
// and skipped; a missing corpus directory is fatal.
func (l *Loader) Load() ([]model.RawPatent, error) {
	entries, err := os.ReadDir(l.dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus directory %s: %w", l.dataPath, err)
	}

	var raws []model.RawPatent
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(l.dataPath, entry.Name())
		data, err := os.ReadFile(path) // #nosec G304 -- path comes from the configured corpus directory
		if err != nil {
			l.logger.Warn("skipping unreadable corpus file", "file", entry.Name(), "error", err)
			continue
		}

		var raw model.RawPatent
		if err := json.Unmarshal(data, &raw); err != nil {
			l.logger.Warn("skipping malformed corpus file", "file", entry.Name(), "error", err)
			continue
		}

		raws = append(raws, raw)
	}

	l.logger.Info("loaded corpus files", "path", l.dataPath, "count", len(raws))
	return raws, nil
}
