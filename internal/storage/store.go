// Package storage is a small persistent key/value store used for the session
// token and the last known preferences.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Well-known keys.
const (
	KeyToken        = "jwt_token"
	KeyCurrentPrefs = "currentPrefs"
)

// File is the on-disk format of the store.
type File struct {
	Version string            `json:"version"`
	Values  map[string]string `json:"values"`
}

// Store persists string values between sessions. Every mutation is written
// to disk atomically.
type Store struct {
	path    string
	mu      sync.RWMutex
	version string
	values  map[string]string
}

// Open creates a Store backed by path and loads it from disk if present.
func Open(path string) (*Store, error) {
	s := &Store{
		path:    path,
		version: "1.0",
		values:  make(map[string]string),
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	if err := s.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return s, nil
}

// Path is the backing file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the store from disk, replacing in-memory values.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if file.Version != "" {
		s.version = file.Version
	}
	s.values = file.Values
	if s.values == nil {
		s.values = make(map[string]string)
	}
	return nil
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key and persists the store.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return s.saveLocked()
}

// Remove deletes key and persists the store.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.saveLocked()
}

// GetJSON decodes the value under key into out. It reports false when the key
// is absent.
func (s *Store) GetJSON(key string, out any) (bool, error) {
	raw, ok := s.Get(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes value and stores it under key.
func (s *Store) SetJSON(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(key, string(data))
}

func (s *Store) saveLocked() error {
	data, err := json.MarshalIndent(File{Version: s.version, Values: s.values}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal storage: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}
