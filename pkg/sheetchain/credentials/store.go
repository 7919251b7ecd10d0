// Package credentials stores the completion API key.
package credentials

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrReadOnly indicates a store that cannot be written.
var ErrReadOnly = errors.New("credential store is read-only")

// Store holds one opaque API key.
type Store interface {
	// Get returns the stored key; ok is false when none is stored.
	Get() (key string, ok bool, err error)
	Set(key string) error
	Clear() error
}

// DefaultPath returns the credentials file under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sheetchain", "credentials.yaml"), nil
}

type credentialsFile struct {
	APIKey string `yaml:"api_key"`
}

// FileStore keeps the key in a YAML file readable only by the user.
type FileStore struct {
	Path string
}

// NewFileStore creates a FileStore at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Get() (string, bool, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	var cf credentialsFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return "", false, fmt.Errorf("failed to parse %s: %w", s.Path, err)
	}
	key := strings.TrimSpace(cf.APIKey)
	return key, key != "", nil
}

func (s *FileStore) Set(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("empty API key")
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0700); err != nil {
		return err
	}
	data, err := yaml.Marshal(credentialsFile{APIKey: key})
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.Path, data, 0600); err != nil {
		return err
	}
	// WriteFile keeps the mode of an existing file
	return os.Chmod(s.Path, 0600)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// EnvStore reads the key from an environment variable.
type EnvStore struct {
	Var string
}

func (s EnvStore) Get() (string, bool, error) {
	key := strings.TrimSpace(os.Getenv(s.Var))
	return key, key != "", nil
}

func (s EnvStore) Set(string) error { return ErrReadOnly }

func (s EnvStore) Clear() error { return ErrReadOnly }

// Chain consults stores in order. Set and Clear go to the first writable store.
type Chain []Store

func (c Chain) Get() (string, bool, error) {
	for _, s := range c {
		key, ok, err := s.Get()
		if err != nil {
			return "", false, err
		}
		if ok {
			return key, true, nil
		}
	}
	return "", false, nil
}

func (c Chain) Set(key string) error {
	for _, s := range c {
		if err := s.Set(key); !errors.Is(err, ErrReadOnly) {
			return err
		}
	}
	return ErrReadOnly
}

func (c Chain) Clear() error {
	for _, s := range c {
		if err := s.Clear(); !errors.Is(err, ErrReadOnly) {
			return err
		}
	}
	return ErrReadOnly
}
