// Package file implements the persistence interfaces on top of flat JSON
// files, one per collection. It exists for development and small deployments
// that should not need a database server. Every operation rewrites the whole
// collection file, so a single store mutex serializes access.
package file

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"tastebud/config"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	usersFile       = "users.json"
	restaurantsFile = "restaurants.json"
	reviewsFile     = "reviews.json"
)

// Params defines the required parameters
type Params struct {
	fx.In

	Config *config.Config
}

// Store owns the data directory and the mutex guarding it. The repository
// and transaction implementations in this package all share one Store.
type Store struct {
	mu       sync.Mutex
	dataPath string
}

// NewStore creates the data directory and seeds empty collection files.
func NewStore(params Params) (*Store, error) {
	dataPath := params.Config.Storage.DataPath
	if dataPath == "" {
		return nil, errors.New("storage.dataPath is required for the file driver")
	}

	if err := os.MkdirAll(dataPath, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create data directory")
	}

	store := &Store{dataPath: dataPath}
	for _, name := range []string{usersFile, restaurantsFile, reviewsFile} {
		path := filepath.Join(dataPath, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := writeJSON(path, []json.RawMessage{}); err != nil {
				return nil, err
			}
		}
	}

	return store, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dataPath, name)
}

// readJSON loads a whole collection. A missing or corrupt file reads as an
// empty collection rather than an error, matching the store's best-effort
// character.
func readJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to read collection file")
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, nil
	}

	return items, nil
}

// writeJSON rewrites a whole collection through a temp file and rename so a
// crash mid-write never leaves a truncated collection behind.
func writeJSON[T any](path string, items []T) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode collection")
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(err, "failed to write collection file")
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrap(err, "failed to replace collection file")
	}

	return nil
}

// pageSlice applies skip/limit pagination to an in-memory collection.
// A non-positive limit means no upper bound.
func pageSlice[T any](items []T, skip, limit int) []T {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(items) {
		return nil
	}

	end := len(items)
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}

	return items[skip:end]
}

func newID(id uuid.UUID) uuid.UUID {
	if id != uuid.Nil {
		return id
	}

	return uuid.New()
}

func now() time.Time {
	return time.Now().UTC()
}
