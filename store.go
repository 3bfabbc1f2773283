package ttynamed

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/sys/unix"
)

// Alias binds a user chosen name to a device fingerprint
type Alias struct {
	Name        string
	Fingerprint Fingerprint
}

// storeFile is the on-disk layout. Keeping the aliases under their own
// table leaves room for program settings next to them.
type storeFile struct {
	TTYs map[string]Fingerprint `toml:"ttys"`
}

// Store maps alias names to fingerprints. The zero value is not usable;
// create one with NewStore or LoadStore.
type Store struct {
	aliases map[string]Fingerprint
}

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{aliases: make(map[string]Fingerprint)}
}

// LoadStore reads the store at path. A missing file yields an empty store;
// any other read or parse failure is a *LoadError.
func LoadStore(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewStore(), nil
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	var file storeFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	store := NewStore()
	for name, fp := range file.TTYs {
		store.aliases[name] = fp
	}
	return store, nil
}

// Save writes the whole store to path, replacing the previous file
// atomically. On failure the previous file is left as it was.
func (s *Store) Save(path string) error {
	data, err := toml.Marshal(storeFile{TTYs: s.aliases})
	if err != nil {
		return &SaveError{Path: path, Err: fmt.Errorf("encoding: %w", err)}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &SaveError{Path: path, Err: err}
	}

	if err := atomicWriteFile(path, data, 0o644); err != nil {
		return &SaveError{Path: path, Err: err}
	}
	return nil
}

// Get returns the fingerprint stored under name.
func (s *Store) Get(name string) (Fingerprint, bool) {
	fp, ok := s.aliases[name]
	return fp, ok
}

// Set stores fp under name, replacing any previous binding of that name.
func (s *Store) Set(name string, fp Fingerprint) {
	s.aliases[name] = fp.Clone()
}

// Remove deletes name and reports whether it existed.
func (s *Store) Remove(name string) bool {
	if _, ok := s.aliases[name]; !ok {
		return false
	}
	delete(s.aliases, name)
	return true
}

// Len returns the number of aliases.
func (s *Store) Len() int {
	return len(s.aliases)
}

// Aliases returns every alias sorted by name.
func (s *Store) Aliases() []Alias {
	aliases := make([]Alias, 0, len(s.aliases))
	for name, fp := range s.aliases {
		aliases = append(aliases, Alias{Name: name, Fingerprint: fp})
	}
	sort.Slice(aliases, func(i, j int) bool {
		return aliases[i].Name < aliases[j].Name
	})
	return aliases
}

// Clone returns a deep copy of the store.
func (s *Store) Clone() *Store {
	clone := NewStore()
	for name, fp := range s.aliases {
		clone.aliases[name] = fp.Clone()
	}
	return clone
}

// Equal reports whether both stores hold the same aliases.
func (s *Store) Equal(other *Store) bool {
	if s.Len() != other.Len() {
		return false
	}
	for name, fp := range s.aliases {
		otherFP, ok := other.aliases[name]
		if !ok || !fp.Equal(otherFP) {
			return false
		}
	}
	return true
}

// atomicWriteFile writes a file atomically using a temporary file and rename
func atomicWriteFile(filename string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(filename)

	tempFile, err := os.CreateTemp(dir, filepath.Base(filename)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tempPath := tempFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tempPath)
		}
	}()

	if _, err = tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write to temporary file: %w", err)
	}

	if err = tempFile.Chmod(perm); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to chmod temporary file: %w", err)
	}

	if err = tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err = tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err = os.Rename(tempPath, filename); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	success = true

	// The new file is already in place; a failed directory sync only loses
	// durability of the rename, so it is not reported as a save failure.
	_ = syncDir(dir)

	return nil
}

// syncDir flushes the directory entry of dir, making a rename durable
func syncDir(dir string) error {
	fd, err := unix.Open(dir, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		return fmt.Errorf("failed to open directory %s: %w", dir, err)
	}
	defer unix.Close(fd)

	if err := unix.Fsync(fd); err != nil {
		return fmt.Errorf("failed to sync directory %s: %w", dir, err)
	}
	return nil
}

// DefaultStorePath returns <user config dir>/ttynamed/ttys, falling back to
// ~/.ttynamed when no config directory can be determined.
func DefaultStorePath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "ttynamed", "ttys")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".ttynamed")
	}
	return ".ttynamed"
}
