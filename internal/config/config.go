package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/caarlos0/env/v9"
)

// Defaults matching the original CLI behavior.
const (
	DefaultModel    = "small"
	DefaultOutputs  = "txt,srt,vtt"
	DefaultLanguage = "it"
)

// Env holds environment overrides for API endpoints and credentials.
// Values set here take precedence over the persisted credential file
// and suppress the first-run prompt.
type Env struct {
	WhisperAPIKey  string `env:"WHISPER_API_KEY"`
	WhisperAPIBase string `env:"WHISPER_API_BASE"`
	DeepLAPIKey    string `env:"DEEPL_API_KEY"`
	DeepLAPIBase   string `env:"DEEPL_API_BASE"`
}

// LoadEnv parses environment overrides.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse environment: %w", err)
	}
	return e, nil
}

// CredentialsPath returns the default location of the persisted credential file.
func CredentialsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "whisper-transcriber", "credentials.json"), nil
}

// modelSizes are the supported whisper model presets, smallest to largest.
var modelSizes = []string{"tiny", "base", "small", "medium", "large-v3"}

// ValidModel reports whether name is a supported whisper model size.
func ValidModel(name string) bool {
	for _, m := range modelSizes {
		if m == name {
			return true
		}
	}
	return false
}

// ModelSizes returns the supported model size names.
func ModelSizes() []string {
	out := make([]string, len(modelSizes))
	copy(out, modelSizes)
	return out
}

// validFormats are the producible artifact formats.
var validFormats = map[string]bool{
	"txt": true,
	"srt": true,
	"vtt": true,
}

// ParseFormats parses a comma-separated output list into a deduplicated,
// sorted slice. Empty entries are skipped; unknown formats are an error.
func ParseFormats(s string) ([]string, error) {
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		f := strings.ToLower(strings.TrimSpace(part))
		if f == "" {
			continue
		}
		if !validFormats[f] {
			return nil, fmt.Errorf("unsupported output format: %q (expected txt, srt or vtt)", f)
		}
		seen[f] = true
	}
	if len(seen) == 0 {
		return nil, fmt.Errorf("no output formats requested")
	}
	formats := make([]string, 0, len(seen))
	for f := range seen {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats, nil
}
