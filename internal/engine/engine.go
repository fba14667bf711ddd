package engine

import "context"

// Task selects the speech engine mode.
type Task string

const (
	// TaskTranscribe produces text in the same language as the spoken audio.
	TaskTranscribe Task = "transcribe"
	// TaskTranslate produces English text regardless of spoken language.
	TaskTranslate Task = "translate"
)

// Segment is a timestamped portion of a transcript.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcript is the speech engine output: full text plus timed segments.
type Transcript struct {
	Text     string    `json:"text"`
	Language string    `json:"language"`
	Duration float64   `json:"duration"`
	Segments []Segment `json:"segments"`
}

// TranscribeOptions configures a single speech engine invocation.
type TranscribeOptions struct {
	Model    string // whisper model size: tiny, base, small, medium, large-v3
	Language string // spoken language hint; ignored by the translate task
	Task     Task
}

// SpeechEngine converts a media file into a transcript.
type SpeechEngine interface {
	Transcribe(ctx context.Context, path string, opts TranscribeOptions) (*Transcript, error)
}
