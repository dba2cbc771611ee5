package storage

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jaehyuk-choi/coupang-hotdeal-bot/internal/models"
	apperrors "github.com/jaehyuk-choi/coupang-hotdeal-bot/pkg/errors"
)

// NotifiedStore persists the set of already-notified deal identifiers as a
// JSON document. Saves replace the whole file atomically.
type NotifiedStore struct {
	path string
}

func NewNotifiedStore(path string) *NotifiedStore {
	return &NotifiedStore{path: path}
}

type notifiedDocument struct {
	Notified []string `json:"notified"`
}

// Load reads the persisted identifier set. A missing file is the first-run
// condition and yields an empty set, not an error.
func (s *NotifiedStore) Load() (models.NotifiedSet, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.NotifiedSet{}, nil
	}
	if err != nil {
		return nil, apperrors.NewPersistence(s.path, "failed to read notified set", err)
	}

	var doc notifiedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.NewPersistence(s.path, "failed to parse notified set", err)
	}
	return models.NewNotifiedSet(doc.Notified...), nil
}

// Save atomically replaces the persisted set: the document is written to a
// temporary file in the same directory and renamed over the old one, so a
// crash mid-write never leaves a truncated set behind.
func (s *NotifiedStore) Save(set models.NotifiedSet) error {
	doc := notifiedDocument{Notified: set.IDs()}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return apperrors.NewPersistence(s.path, "failed to encode notified set", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.NewPersistence(dir, "failed to create data directory", err)
	}

	tmp, err := os.CreateTemp(dir, ".notified-*.json")
	if err != nil {
		return apperrors.NewPersistence(dir, "failed to create temp file", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.NewPersistence(tmpName, "failed to write notified set", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.NewPersistence(tmpName, "failed to close temp file", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return apperrors.NewPersistence(s.path, "failed to replace notified set", err)
	}
	return nil
}
