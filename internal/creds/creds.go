// Package creds persists the bearer token and the serialized user profile
// between runs, keyed by fixed names in a TOML file under the XDG data dir.
package creds

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

const (
	keyToken   = "token"
	keyProfile = "profile"
)

// ErrNotFound is returned when a credential has never been stored.
var ErrNotFound = fmt.Errorf("credential not found")

// Store reads and writes credentials at a single file path.
type Store struct {
	path string
}

// DefaultStore places the credential file in the plaza data directory.
func DefaultStore() (*Store, error) {
	dir := filepath.Join(xdg.DataHome, "plaza")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("error creating data directory (%s): %w", dir, err)
	}
	return &Store{path: filepath.Join(dir, "credentials.toml")}, nil
}

// NewStore uses an explicit file path. Used in tests.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Token returns the stored bearer token, or ErrNotFound.
func (s *Store) Token() (string, error) {
	return s.get(keyToken)
}

func (s *Store) SetToken(token string) error {
	return s.set(keyToken, token)
}

func (s *Store) ClearToken() error {
	return s.remove(keyToken)
}

// Profile returns the serialized user-profile blob, or ErrNotFound.
func (s *Store) Profile() (string, error) {
	return s.get(keyProfile)
}

func (s *Store) SetProfile(blob string) error {
	return s.set(keyProfile, blob)
}

func (s *Store) ClearProfile() error {
	return s.remove(keyProfile)
}

func (s *Store) get(key string) (string, error) {
	entries, err := s.load()
	if err != nil {
		return "", err
	}
	v, ok := entries[key].(string)
	if !ok || v == "" {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *Store) set(key, value string) error {
	entries, err := s.load()
	if err != nil {
		return err
	}
	entries[key] = value
	return s.save(entries)
}

func (s *Store) remove(key string) error {
	entries, err := s.load()
	if err != nil {
		return err
	}
	delete(entries, key)
	return s.save(entries)
}

func (s *Store) load() (map[string]any, error) {
	entries := map[string]any{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return entries, nil
		}
		return nil, fmt.Errorf("error reading credential file: %w", err)
	}
	if err := toml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("error parsing credential file: %w", err)
	}
	return entries, nil
}

func (s *Store) save(entries map[string]any) error {
	data, err := toml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling error: %w", err)
	}
	return os.WriteFile(s.path, data, 0o600)
}
