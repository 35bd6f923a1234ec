package card

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	errs "github.com/mwarrick/digital-business-card-sub004/pkg/errors"
)

// FileStore keeps one JSON document per card in a directory, named
// <id>.json. It suits the CLI and small single-host deployments.
type FileStore struct {
	dir string
}

// NewFileStore opens (and creates if needed) a file store in dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the store directory.
func (s *FileStore) Dir() string { return s.dir }

// Get implements Store.
func (s *FileStore) Get(ctx context.Context, id string) (*Record, error) {
	if err := errs.ValidateCardID(id); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(id))
	if os.IsNotExist(err) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "read card %s", id)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "decode card %s", id)
	}
	if rec.ID == "" {
		rec.ID = id
	}
	return &rec, nil
}

// List implements Store. Files that fail to decode are skipped.
func (s *FileStore) List(ctx context.Context) ([]Record, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var out []Record
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		rec, err := s.Get(ctx, strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		out = append(out, *rec)
	}
	sortByID(out)
	return out, nil
}

// Put implements Store.
func (s *FileStore) Put(ctx context.Context, rec *Record) error {
	if err := errs.ValidateCardID(rec.ID); err != nil {
		return err
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(rec.ID), data, 0o644)
}

// Close does nothing for file store.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

var _ Store = (*FileStore)(nil)
