package gadget

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileStore persists widget layout records to a single YAML file, one section
// per widget name. It is the host-side settings service: open the store, hand
// each widget its Section, and the store takes care of loading and flushing.
//
// Writes go through a temp file and rename so a crash mid-write never
// truncates the previous state.
type FileStore struct {
	path     string
	sections map[string]map[string]float64
}

// OpenFileStore loads the store at path, creating an empty one if the file
// does not exist yet.
func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:     path,
		sections: make(map[string]map[string]float64),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read settings %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s.sections); err != nil {
		return nil, fmt.Errorf("parse settings %q: %w", path, err)
	}
	if s.sections == nil {
		s.sections = make(map[string]map[string]float64)
	}
	return s, nil
}

// Section returns the Settings handle for the named widget. Sections are
// created on demand and share the store's backing file.
func (s *FileStore) Section(name string) Settings {
	return &fileSection{store: s, name: name}
}

// Save writes the whole store to disk.
func (s *FileStore) Save() error {
	data, err := yaml.Marshal(s.sections)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings directory %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("write settings %q: %w", s.path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write settings %q: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write settings %q: %w", s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write settings %q: %w", s.path, err)
	}
	return nil
}

// section returns the named record, creating it if needed.
func (s *FileStore) section(name string) map[string]float64 {
	sec := s.sections[name]
	if sec == nil {
		sec = make(map[string]float64)
		s.sections[name] = sec
	}
	return sec
}

// fileSection adapts one named record of a FileStore to the Settings
// interface. Flushes save the whole store; failures are logged to stderr
// because drag completion has no error path to surface them through.
type fileSection struct {
	store *FileStore
	name  string
}

func (f *fileSection) Get(key string, def float64) float64 {
	if v, ok := f.store.section(f.name)[key]; ok {
		return v
	}
	return def
}

func (f *fileSection) All() map[string]float64 {
	sec := f.store.section(f.name)
	out := make(map[string]float64, len(sec))
	for k, v := range sec {
		out[k] = v
	}
	return out
}

func (f *fileSection) Set(key string, v float64) {
	f.store.section(f.name)[key] = v
}

func (f *fileSection) SetAll(values map[string]float64, flush bool) {
	sec := make(map[string]float64, len(values))
	for k, v := range values {
		sec[k] = v
	}
	f.store.sections[f.name] = sec
	if flush {
		if err := f.store.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "[gadget] settings flush (%s): %v\n", f.name, err)
		}
	}
}
