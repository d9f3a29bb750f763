// Package corpus loads enriched conversation records from disk.
package corpus

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"chatwrapped/internal/record"
)

// Result carries the loaded records and the load accounting.
type Result struct {
	Records []*record.Record
	Skipped int
}

// Load reads every .json file under dir (one conversation per file, nested in
// month folders) and returns the records sorted by creation timestamp,
// oldest first. Files that fail to decode are skipped, logged, and counted;
// they never abort the load. An empty tree yields an empty result; whether
// that is fatal is the caller's call (aggregation treats it as one).
func Load(dir string, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("corpus: walking %s: %w", dir, err)
	}

	result := &Result{}
	for _, path := range paths {
		rec, err := readRecord(path)
		if err != nil {
			result.Skipped++
			logger.Warn("skipping unreadable record", "path", path, "error", err)
			continue
		}
		result.Records = append(result.Records, rec)
	}

	// Lexicographic order on the ISO timestamp is chronological; records
	// without a timestamp sort first.
	sort.SliceStable(result.Records, func(i, j int) bool {
		return result.Records[i].SortKey() < result.Records[j].SortKey()
	})

	logger.Info("corpus loaded",
		"records", len(result.Records), "skipped", result.Skipped, "dir", dir)
	return result, nil
}

func readRecord(path string) (*record.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec record.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decoding: %w", err)
	}
	return &rec, nil
}
