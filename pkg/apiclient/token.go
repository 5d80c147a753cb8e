package apiclient

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenStore persists the bearer credential between calls. An empty token
// means no credential is stored; calls then go out unauthenticated and the
// server decides.
type TokenStore interface {
	Token() (string, error)
	Set(token string) error
	Clear() error
}

// MemoryTokenStore keeps the token in process memory.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryTokenStore returns an empty in-memory token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Token returns the stored token, or "" when none is set.
func (s *MemoryTokenStore) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

// Set stores the token.
func (s *MemoryTokenStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear removes the stored token.
func (s *MemoryTokenStore) Clear() error {
	return s.Set("")
}

// FileTokenStore persists the token to a file so CLI invocations share a
// session. The file is written with 0600 permissions.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore returns a token store backed by the file at path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Token reads the stored token. A missing file means no credential.
func (s *FileTokenStore) Token() (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Set writes the token, creating parent directories as needed.
func (s *FileTokenStore) Set(token string) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create token directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// Clear deletes the token file. A missing file is not an error.
func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}
