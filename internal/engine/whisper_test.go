package engine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func newMediaFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("fake audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestWhisperClient_Transcribe(t *testing.T) {
	var gotPath, gotAuth, gotModel, gotLang, gotFormat string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotModel = r.FormValue("model")
		gotLang = r.FormValue("language")
		gotFormat = r.FormValue("response_format")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"text": "Ciao a tutti.",
			"language": "italian",
			"duration": 1.5,
			"segments": [{"start": 0, "end": 1.5, "text": "Ciao a tutti."}]
		}`))
	}))
	defer srv.Close()

	client := NewWhisperClient("sk-test", srv.URL)
	transcript, err := client.Transcribe(context.Background(), newMediaFile(t, "clip.mp3"), TranscribeOptions{
		Model:    "small",
		Language: "it",
		Task:     TaskTranscribe,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/audio/transcriptions" {
		t.Errorf("path = %q, want /audio/transcriptions", gotPath)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("auth = %q", gotAuth)
	}
	if gotModel != "small" || gotLang != "it" || gotFormat != "verbose_json" {
		t.Errorf("form fields: model=%q language=%q response_format=%q", gotModel, gotLang, gotFormat)
	}
	if transcript.Text != "Ciao a tutti." {
		t.Errorf("text = %q", transcript.Text)
	}
	if len(transcript.Segments) != 1 || transcript.Segments[0].End != 1.5 {
		t.Errorf("segments = %+v", transcript.Segments)
	}
}

func TestWhisperClient_TranslateTask(t *testing.T) {
	var gotPath, gotLang string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotLang = r.FormValue("language")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text": "Hello everyone.", "language": "english", "segments": []}`))
	}))
	defer srv.Close()

	client := NewWhisperClient("sk-test", srv.URL)
	transcript, err := client.Transcribe(context.Background(), newMediaFile(t, "clip.mp3"), TranscribeOptions{
		Model:    "medium",
		Language: "it",
		Task:     TaskTranslate,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/audio/translations" {
		t.Errorf("path = %q, want /audio/translations", gotPath)
	}
	// The translate task always targets English; no language hint is sent.
	if gotLang != "" {
		t.Errorf("language field = %q, want empty", gotLang)
	}
	if transcript.Text != "Hello everyone." {
		t.Errorf("text = %q", transcript.Text)
	}
}

func TestWhisperClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "invalid model"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewWhisperClient("sk-test", srv.URL)
	_, err := client.Transcribe(context.Background(), newMediaFile(t, "clip.mp3"), TranscribeOptions{
		Model: "nope",
		Task:  TaskTranscribe,
	})
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestWhisperClient_MissingKey(t *testing.T) {
	client := NewWhisperClient("", "")
	_, err := client.Transcribe(context.Background(), "clip.mp3", TranscribeOptions{Task: TaskTranscribe})
	if err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestWhisperClient_MissingFile(t *testing.T) {
	client := NewWhisperClient("sk-test", "")
	_, err := client.Transcribe(context.Background(), filepath.Join(t.TempDir(), "nope.mp3"), TranscribeOptions{Task: TaskTranscribe})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
