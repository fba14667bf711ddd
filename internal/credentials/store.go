package credentials

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Secrets holds the persisted API credentials. The translate key may be
// empty; it is only required for the two-step translation path.
type Secrets struct {
	SpeechAPIKey    string `json:"speechApiKey"`
	TranslateAPIKey string `json:"translateApiKey,omitempty"`
}

// Store defines persistence operations for API credentials.
type Store interface {
	Load() (Secrets, error)
	Save(Secrets) error
}

// FileStore persists secrets in a single JSON file on disk.
type FileStore struct {
	path string
}

// NewFileStore creates a JSON-backed credential store.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads secrets from disk. A missing file returns zero Secrets and
// no error, signalling a first run.
func (s *FileStore) Load() (Secrets, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Secrets{}, nil
		}
		return Secrets{}, err
	}

	var secrets Secrets
	if err := json.Unmarshal(data, &secrets); err != nil {
		return Secrets{}, err
	}

	return secrets, nil
}

// Save writes secrets as indented JSON, creating parent directories.
// The file is owner-readable only.
func (s *FileStore) Save(secrets Secrets) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(secrets, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0o600)
}

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	Secrets Secrets
}

func (s *MemoryStore) Load() (Secrets, error)     { return s.Secrets, nil }
func (s *MemoryStore) Save(secrets Secrets) error { s.Secrets = secrets; return nil }

// Prompt asks the user for missing credentials on r, echoing prompts to w.
// The speech key is required; the translate key may be left blank.
func Prompt(r io.Reader, w io.Writer, current Secrets) (Secrets, error) {
	reader := bufio.NewReader(r)

	if current.SpeechAPIKey == "" {
		fmt.Fprint(w, "Speech API key: ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return current, fmt.Errorf("read speech API key: %w", err)
		}
		current.SpeechAPIKey = strings.TrimSpace(line)
		if current.SpeechAPIKey == "" {
			return current, fmt.Errorf("speech API key is required")
		}
	}

	if current.TranslateAPIKey == "" {
		fmt.Fprint(w, "Translation API key (optional, press Enter to skip): ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			// EOF with no input is fine for an optional key.
			return current, nil
		}
		current.TranslateAPIKey = strings.TrimSpace(line)
	}

	return current, nil
}
