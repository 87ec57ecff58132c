package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNoSession is returned by Load when no session is stored. A corrupt
// stored record is treated the same way: cleared and reported as
// ErrNoSession, never as a hard failure.
var ErrNoSession = errors.New("no session")

// Store persists the single session slot. Writes are last-write-wins; the
// lifecycle manager is the only logical writer.
type Store interface {
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Clear(ctx context.Context) error
}

// FileStore keeps the session as one JSON file, the server-side analog of a
// per-browser storage slot. Saves are atomic via rename.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file store rooted at dir, named after StorageKey.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, StorageKey+".json")}
}

func (f *FileStore) Load(ctx context.Context) (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		// Unparseable record: clear and report no session.
		os.Remove(f.path)
		return nil, ErrNoSession
	}
	return &s, nil
}

func (f *FileStore) Save(_ context.Context, s *Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

func (f *FileStore) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear session file: %w", err)
	}
	return nil
}

// MemStore is an in-memory Store for tests and ephemeral deployments.
type MemStore struct {
	mu  sync.Mutex
	raw []byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Corrupt overwrites the slot with unparseable bytes. Test helper.
func (m *MemStore) Corrupt() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = []byte("{not json")
}

func (m *MemStore) Load(_ context.Context) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.raw == nil {
		return nil, ErrNoSession
	}
	var s Session
	if err := json.Unmarshal(m.raw, &s); err != nil {
		m.raw = nil
		return nil, ErrNoSession
	}
	return &s, nil
}

func (m *MemStore) Save(_ context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	m.mu.Lock()
	m.raw = data
	m.mu.Unlock()
	return nil
}

func (m *MemStore) Clear(_ context.Context) error {
	m.mu.Lock()
	m.raw = nil
	m.mu.Unlock()
	return nil
}
