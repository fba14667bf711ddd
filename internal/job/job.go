package job

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/matteooxx/whisper-transcriber/internal/config"
)

// Mode identifies which of the three execution paths a job takes.
type Mode int

const (
	// TranscribeOnly runs the speech engine in transcribe mode and emits
	// artifacts in the source language.
	TranscribeOnly Mode = iota
	// TranslateToEnglish runs the speech engine in translate mode and emits
	// English artifacts.
	TranslateToEnglish
	// TranslateThenLocalize runs the speech engine in translate mode, emits
	// English artifacts, then translates the English text into the target
	// language. Only a plain-text artifact is produced for the target
	// language; subtitle realignment is not attempted.
	TranslateThenLocalize
)

func (m Mode) String() string {
	switch m {
	case TranscribeOnly:
		return "transcribe-only"
	case TranslateToEnglish:
		return "translate-to-english"
	case TranslateThenLocalize:
		return "translate-then-localize"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// SelectMode picks the execution path from the input/output language pair.
// It is a pure function so the routing table can be tested in isolation
// from the external calls.
func SelectMode(inLang, outLang string) Mode {
	switch {
	case outLang == inLang:
		return TranscribeOnly
	case outLang == "en":
		return TranslateToEnglish
	default:
		return TranslateThenLocalize
	}
}

// Job describes one media file to process. Immutable once constructed.
type Job struct {
	ID        string
	MediaPath string
	Model     string
	Formats   []string
	InLang    string
	OutLang   string
}

// New validates the parameters and constructs a Job.
func New(mediaPath, model string, formats []string, inLang, outLang string) (Job, error) {
	if mediaPath == "" {
		return Job{}, fmt.Errorf("media path is empty")
	}
	if !config.ValidModel(model) {
		return Job{}, fmt.Errorf("unsupported model size: %q (expected one of %s)",
			model, strings.Join(config.ModelSizes(), ", "))
	}
	if len(formats) == 0 {
		return Job{}, fmt.Errorf("no output formats requested")
	}
	if !config.ValidLanguage(inLang) {
		return Job{}, fmt.Errorf("unsupported input language: %q", inLang)
	}
	if !config.ValidLanguage(outLang) {
		return Job{}, fmt.Errorf("unsupported output language: %q", outLang)
	}

	return Job{
		ID:        uuid.NewString(),
		MediaPath: mediaPath,
		Model:     model,
		Formats:   formats,
		InLang:    inLang,
		OutLang:   outLang,
	}, nil
}

// Mode returns the execution path for this job.
func (j Job) Mode() Mode {
	return SelectMode(j.InLang, j.OutLang)
}

// BaseName returns the media file name without its extension.
func (j Job) BaseName() string {
	base := filepath.Base(j.MediaPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
