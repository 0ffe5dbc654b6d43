package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type session struct {
	Token           string `json:"token,omitempty"`
	RememberedEmail string `json:"rememberEmail,omitempty"`
}

// FileStore keeps the session as a small JSON document readable only by the
// current user.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// DefaultPath is <user config dir>/careerbridge/<profile>/session.json. An
// empty profile means "default".
func DefaultPath(profile string) (string, error) {
	if profile == "" {
		profile = "default"
	}
	if profile == "." || profile == ".." || strings.ContainsAny(profile, `/\`) {
		return "", fmt.Errorf("tokenstore: invalid profile name %q", profile)
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("tokenstore: resolve config dir: %w", err)
	}
	return filepath.Join(dir, "careerbridge", profile, "session.json"), nil
}

// NewFileStore opens the session file at path, or the profile's default
// location when path is empty.
func NewFileStore(path, profile string) (*FileStore, error) {
	if path == "" {
		p, err := DefaultPath(profile)
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &FileStore{path: path}, nil
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Token(_ context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, err := f.load()
	return s.Token, err
}

func (f *FileStore) SetToken(_ context.Context, token string) error {
	return f.update(func(s *session) { s.Token = token })
}

func (f *FileStore) ClearToken(ctx context.Context) error {
	return f.SetToken(ctx, "")
}

func (f *FileStore) RememberedEmail(_ context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, err := f.load()
	return s.RememberedEmail, err
}

func (f *FileStore) SetRememberedEmail(_ context.Context, email string) error {
	return f.update(func(s *session) { s.RememberedEmail = email })
}

func (f *FileStore) update(mutate func(*session)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.load()
	if err != nil {
		return err
	}
	mutate(&s)
	return f.save(s)
}

func (f *FileStore) load() (session, error) {
	var s session
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("tokenstore: read %s: %w", f.path, err)
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return session{}, fmt.Errorf("tokenstore: decode %s: %w", f.path, err)
	}
	return s, nil
}

func (f *FileStore) save(s session) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("tokenstore: create dir: %w", err)
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("tokenstore: encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".session-*")
	if err != nil {
		return fmt.Errorf("tokenstore: create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("tokenstore: write: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("tokenstore: chmod: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("tokenstore: close: %w", err)
	}
	return os.Rename(tmp.Name(), f.path)
}
