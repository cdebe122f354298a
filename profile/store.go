package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/yllada/sshfs-manager/common"
)

// ParseError reports a backing file that could not be decoded.
type ParseError struct {
	Path string
	// Line and Column locate TOML syntax errors; zero when unknown.
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s (line %d, column %d): %v", e.Path, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// document is the on-disk layout of the backing file.
type document struct {
	Connections []Profile `toml:"connections"`
}

// Store owns the ordered list of connection profiles and its backing file.
type Store struct {
	path     string
	profiles []*Profile
}

// NewStore returns an empty store backed by the file at path.
// Nothing is read until Load is called.
func NewStore(path string) *Store {
	return &Store{
		path:     path,
		profiles: make([]*Profile, 0),
	}
}

// Open creates a store for path and loads it. The store is returned even
// when loading fails so callers can report the error and keep going with
// an empty list.
func Open(path string) (*Store, error) {
	s := NewStore(path)
	_, err := s.Load()
	return s, err
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load replaces the in-memory list with the backing file's contents.
// A missing file yields an empty list and no error. A file that cannot be
// parsed yields an empty list and a *ParseError; the list is never left
// partially populated.
func (s *Store) Load() ([]Profile, error) {
	s.profiles = make([]*Profile, 0)

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		common.LogDebug("No profile file at %s, starting empty", s.path)
		return s.List(), nil
	}
	if err != nil {
		return s.List(), fmt.Errorf("%w: read %s: %w", common.ErrConfigLoad, s.path, err)
	}

	loaded, err := decode(data, s.path)
	if err != nil {
		common.LogError("Failed to read profiles: %v", err)
		return s.List(), err
	}

	s.profiles = loaded
	common.LogDebug("Loaded %d profiles from %s", len(loaded), s.path)
	return s.List(), nil
}

// decode parses the backing file and assigns IDs and defaults.
func decode(data []byte, path string) ([]*Profile, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		parseErr := &ParseError{Path: path, Err: err}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			parseErr.Line, parseErr.Column = decodeErr.Position()
		}
		return nil, parseErr
	}

	profiles := make([]*Profile, 0, len(doc.Connections))
	for i, entry := range doc.Connections {
		if err := entry.Validate(); err != nil {
			return nil, &ParseError{Path: path, Err: fmt.Errorf("connections[%d]: %w", i, err)}
		}
		p := New(entry.Host, entry.User, entry.RemoteDir)
		profiles = append(profiles, &p)
	}
	return profiles, nil
}

// Save overwrites the backing file with the full list. The write is not
// atomic. On failure the in-memory list is left as is, so calling Save
// again retries the same content.
func (s *Store) Save() error {
	doc := document{Connections: make([]Profile, 0, len(s.profiles))}
	for _, p := range s.profiles {
		doc.Connections = append(doc.Connections, *p)
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: serialize profiles: %w", common.ErrConfigSave, err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("%w: create %s: %w", common.ErrConfigSave, dir, err)
		}
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("%w: write %s: %w", common.ErrConfigSave, s.path, err)
	}

	common.LogDebug("Saved %d profiles to %s", len(s.profiles), s.path)
	return nil
}

// Add appends a new profile and saves. A blank host is treated as a
// cancelled dialog: it returns a nil profile and nil error without touching
// the list. If saving fails the profile stays in memory and is returned
// alongside the error.
func (s *Store) Add(host, user, remoteDir string) (*Profile, error) {
	p := New(host, user, remoteDir)
	if p.Host == "" {
		return nil, nil
	}

	s.profiles = append(s.profiles, &p)
	common.LogInfo("Added profile %s (%s)", p.Host, p.ShortID())

	added := p
	return &added, s.Save()
}

// Edit replaces the fields of the profile with the given ID and saves.
// It returns false without changing anything when host is blank.
func (s *Store) Edit(id, host, user, remoteDir string) (bool, error) {
	target, _ := s.lookup(id)
	if target == nil {
		return false, fmt.Errorf("%w: %s", common.ErrProfileNotFound, id)
	}

	updated := New(host, user, remoteDir)
	if updated.Host == "" {
		return false, nil
	}

	target.Host = updated.Host
	target.User = updated.User
	target.RemoteDir = updated.RemoteDir
	common.LogInfo("Edited profile %s (%s)", target.Host, target.ShortID())

	return true, s.Save()
}

// Delete removes the profile with the given ID and saves.
// Asking the user for confirmation is the caller's responsibility.
func (s *Store) Delete(id string) error {
	target, index := s.lookup(id)
	if target == nil {
		return fmt.Errorf("%w: %s", common.ErrProfileNotFound, id)
	}

	s.profiles = append(s.profiles[:index], s.profiles[index+1:]...)
	common.LogInfo("Deleted profile %s (%s)", target.Host, target.ShortID())

	return s.Save()
}

// List returns a snapshot of the profiles in insertion order.
func (s *Store) List() []Profile {
	result := make([]Profile, len(s.profiles))
	for i, p := range s.profiles {
		result[i] = *p
	}
	return result
}

// Len returns the number of profiles.
func (s *Store) Len() int {
	return len(s.profiles)
}

// Get returns a copy of the profile with the given ID.
func (s *Store) Get(id string) (Profile, error) {
	p, _ := s.lookup(id)
	if p == nil {
		return Profile{}, fmt.Errorf("%w: %s", common.ErrProfileNotFound, id)
	}
	return *p, nil
}

// Find resolves a user-supplied reference that stays meaningful across
// runs: a host name (first match, case-insensitive) or a 1-based position
// in the list. Hosts win, so a host named "2" is found by name. IDs are
// per-process and deliberately not accepted; use Get for those.
func (s *Store) Find(ref string) (Profile, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Profile{}, fmt.Errorf("%w: empty reference", common.ErrProfileNotFound)
	}

	for _, p := range s.profiles {
		if strings.EqualFold(p.Host, ref) {
			return *p, nil
		}
	}

	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(s.profiles) {
		return *s.profiles[n-1], nil
	}

	return Profile{}, fmt.Errorf("%w: %s", common.ErrProfileNotFound, ref)
}

// lookup returns the stored profile with the given ID and its index.
func (s *Store) lookup(id string) (*Profile, int) {
	for i, p := range s.profiles {
		if p.ID == id {
			return p, i
		}
	}
	return nil, -1
}
