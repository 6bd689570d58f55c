package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var _ DurableStore = (*FileDurable)(nil)

// FileDurable is a DurableStore backed by a JSON file, mirroring the
// browser's localStorage persistence between runs. The file is created
// with 0600 since it holds the refresh token.
type FileDurable struct {
	mu   sync.Mutex
	path string
}

// NewFileDurable creates a durable store at path. The parent directory is
// created if missing.
func NewFileDurable(path string) (*FileDurable, error) {
	if path == "" {
		return nil, errors.New("credentials: path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("credentials: create dir: %w", err)
		}
	}
	return &FileDurable{path: path}, nil
}

func (f *FileDurable) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return "", false
	}
	v, ok := values[key]
	return v, ok
}

func (f *FileDurable) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}
	values[key] = value
	return f.save(values)
}

func (f *FileDurable) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.save(values)
}

func (f *FileDurable) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("credentials: read %s: %w", f.path, err)
	}

	values := make(map[string]string)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("credentials: parse %s: %w", f.path, err)
		}
	}
	return values, nil
}

func (f *FileDurable) save(values map[string]string) error {
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("credentials: marshal: %w", err)
	}

	// Write-then-rename so a crash never leaves a truncated file.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("credentials: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("credentials: rename: %w", err)
	}
	return nil
}
