package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/jaehyuk-choi/coupang-hotdeal-bot/internal/models"
	apperrors "github.com/jaehyuk-choi/coupang-hotdeal-bot/pkg/errors"
)

const snapshotDateLayout = "20060102"

// SnapshotStore persists one dated CSV file per crawl run. Files are named
// by run date, so a run can never clobber a prior date's snapshot; the
// history is append-only.
type SnapshotStore struct {
	dir string
}

func NewSnapshotStore(dir string) *SnapshotStore {
	return &SnapshotStore{dir: dir}
}

// Path returns the snapshot file path for the given run date.
func (s *SnapshotStore) Path(date time.Time) string {
	name := fmt.Sprintf("coupang_deals_%s.csv", date.Format(snapshotDateLayout))
	return filepath.Join(s.dir, name)
}

// Write marshals the run's deals into the dated snapshot file and returns
// its path. Rerunning on the same date rewrites that date's file.
func (s *SnapshotStore) Write(deals []models.Deal, date time.Time) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", apperrors.NewPersistence(s.dir, "failed to create data directory", err)
	}

	path := s.Path(date)
	f, err := os.Create(path)
	if err != nil {
		return "", apperrors.NewPersistence(path, "failed to create snapshot file", err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&deals, f); err != nil {
		return "", apperrors.NewPersistence(path, "failed to write snapshot", err)
	}
	return path, nil
}

// Load reads back the snapshot for the given run date.
func (s *SnapshotStore) Load(date time.Time) ([]models.Deal, error) {
	path := s.Path(date)
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewPersistence(path, "failed to open snapshot file", err)
	}
	defer f.Close()

	var deals []models.Deal
	if err := gocsv.UnmarshalFile(f, &deals); err != nil {
		return nil, apperrors.NewPersistence(path, "failed to parse snapshot", err)
	}
	return deals, nil
}
