package preset

import (
	"encoding/json"
	errs "errors"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Store persists a Collection to a single JSON file. Every mutating
// operation writes through to disk before the new collection is returned,
// so a crash never loses a confirmed edit. The file is a plain JSON array
// of records, human-editable; unknown keys in a record are ignored on load
// so the schema can grow without breaking older files.
type Store struct {
	path string
}

// NewStore returns a store backed by the file at path. Nothing is read
// until Load.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file location.
func (s *Store) Path() string { return s.path }

// Load reads the backing file. A missing file is the first-run case and
// yields an empty collection; anything unparseable, a non-array top level,
// or a record without a name yields ErrCorruptStore. Load never modifies
// the file.
func (s *Store) Load() (Collection, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errs.Is(err, os.ErrNotExist) {
			return Collection{}, nil
		}
		return nil, errors.Wrapf(err, "read %s", s.path)
	}

	var c Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrapf(ErrCorruptStore, "parse %s: %v", s.path, err)
	}
	seen := make(map[string]bool, len(c))
	for i, r := range c {
		if r.Name == "" {
			return nil, errors.Wrapf(ErrCorruptStore, "%s: record %d has no name", s.path, i)
		}
		if seen[r.Name] {
			return nil, errors.Wrapf(ErrCorruptStore, "%s: duplicate preset name %q", s.path, r.Name)
		}
		seen[r.Name] = true
	}
	return c, nil
}

// Save serializes the full collection and atomically replaces the backing
// file (temp file in the same directory, then rename), so an interrupted
// write can never leave a half-written store behind. Collections that Load
// would reject (nameless or duplicate records) are refused up front: the
// store never writes a file it cannot read back.
func (s *Store) Save(c Collection) error {
	if c == nil {
		c = Collection{}
	}
	seen := make(map[string]bool, len(c))
	for _, r := range c {
		if r.Name == "" {
			return ErrInvalidName
		}
		if seen[r.Name] {
			return errors.Wrapf(ErrDuplicateName, "%q", r.Name)
		}
		seen[r.Name] = true
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(ErrWriteStore, err.Error())
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(ErrWriteStore, "create %s: %v", dir, err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrapf(ErrWriteStore, "write %s: %v", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrapf(ErrWriteStore, "rename %s: %v", tmp, err)
	}
	return nil
}

// Add appends rec and persists. On ErrInvalidName, ErrDuplicateName or a
// write failure the original collection is returned unchanged.
func (s *Store) Add(c Collection, rec Record) (Collection, error) {
	if rec.Name == "" {
		return c, ErrInvalidName
	}
	if _, ok := c.Find(rec.Name); ok {
		return c, errors.Wrapf(ErrDuplicateName, "%q", rec.Name)
	}
	next := append(append(Collection{}, c...), rec)
	if err := s.Save(next); err != nil {
		return c, err
	}
	return next, nil
}

// Update replaces the record named name with rec (which may rename it) and
// persists. Renaming onto another existing preset is rejected with
// ErrDuplicateName. On any failure the original collection is returned.
func (s *Store) Update(c Collection, name string, rec Record) (Collection, error) {
	if rec.Name == "" {
		return c, ErrInvalidName
	}
	i := c.index(name)
	if i < 0 {
		return c, errors.Wrapf(ErrNotFound, "%q", name)
	}
	if rec.Name != name {
		if _, ok := c.Find(rec.Name); ok {
			return c, errors.Wrapf(ErrDuplicateName, "%q", rec.Name)
		}
	}
	next := append(Collection{}, c...)
	next[i] = rec
	if err := s.Save(next); err != nil {
		return c, err
	}
	return next, nil
}

// Remove deletes the record named name and persists. On ErrNotFound or a
// write failure the original collection is returned unchanged.
func (s *Store) Remove(c Collection, name string) (Collection, error) {
	i := c.index(name)
	if i < 0 {
		return c, errors.Wrapf(ErrNotFound, "%q", name)
	}
	next := append(append(Collection{}, c[:i]...), c[i+1:]...)
	if err := s.Save(next); err != nil {
		return c, err
	}
	return next, nil
}
