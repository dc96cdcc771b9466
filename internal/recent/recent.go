// Package recent persists the list of recently browsed root directories.
package recent

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/arborfs/arbor/internal/utils"
)

// DefaultLimit caps how many roots the store keeps when no limit is configured.
const DefaultLimit = 10

// Store reads and writes the recent-roots file.
type Store struct {
	filePath string
	limit    int
}

// NewStore resolves the recent-roots file under the global configuration
// directory in the user's home.
func NewStore(limit int) (*Store, error) {
	homeDirectory, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory for recent roots: %w", err)
	}
	filePath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.RecentRootsFileName)
	return NewStoreAtPath(filePath, limit), nil
}

// NewStoreAtPath creates a store backed by an explicit file path.
func NewStoreAtPath(filePath string, limit int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{filePath: filePath, limit: limit}
}

// Roots returns the recorded roots, most recent first. A missing file yields
// an empty list.
func (store *Store) Roots() ([]string, error) {
	content, readErr := os.ReadFile(store.filePath)
	if readErr != nil {
		if os.IsNotExist(readErr) {
			return nil, nil
		}
		return nil, fmt.Errorf("read recent roots from %s: %w", store.filePath, readErr)
	}
	var roots []string
	if decodeErr := json.Unmarshal(content, &roots); decodeErr != nil {
		return nil, fmt.Errorf("decode recent roots from %s: %w", store.filePath, decodeErr)
	}
	if len(roots) > store.limit {
		roots = roots[:store.limit]
	}
	return roots, nil
}

// Record moves rootPath to the front of the list and persists the result.
func (store *Store) Record(rootPath string) error {
	roots, loadErr := store.Roots()
	if loadErr != nil {
		return loadErr
	}
	updated := utils.DeduplicateNames(append([]string{rootPath}, roots...))
	if len(updated) > store.limit {
		updated = updated[:store.limit]
	}
	encoded, encodeErr := json.MarshalIndent(updated, "", "  ")
	if encodeErr != nil {
		return fmt.Errorf("encode recent roots: %w", encodeErr)
	}
	directory := filepath.Dir(store.filePath)
	if mkdirErr := os.MkdirAll(directory, 0o755); mkdirErr != nil {
		return fmt.Errorf("create state directory %s: %w", directory, mkdirErr)
	}
	if writeErr := os.WriteFile(store.filePath, append(encoded, '\n'), 0o600); writeErr != nil {
		return fmt.Errorf("write recent roots to %s: %w", store.filePath, writeErr)
	}
	return nil
}
