package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultAPIBase = "https://api.openai.com/v1"
	uploadTimeout  = 30 * time.Minute
)

// WhisperClient talks to an OpenAI-compatible whisper HTTP API.
// The transcribe task posts to /audio/transcriptions, the translate task
// to /audio/translations; both return verbose_json with timed segments.
type WhisperClient struct {
	apiKey     string
	apiBase    string
	httpClient *http.Client
}

// NewWhisperClient creates a client. An empty apiBase selects the default
// endpoint.
func NewWhisperClient(apiKey, apiBase string) *WhisperClient {
	if apiBase == "" {
		apiBase = defaultAPIBase
	}
	return &WhisperClient{
		apiKey:  apiKey,
		apiBase: strings.TrimSuffix(apiBase, "/"),
		httpClient: &http.Client{
			Timeout: uploadTimeout,
		},
	}
}

// mimeFromExt returns the MIME type for common audio/video extensions.
func mimeFromExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".mp3":
		return "audio/mp3"
	case ".m4a":
		return "audio/m4a"
	case ".wav":
		return "audio/wav"
	case ".flac":
		return "audio/flac"
	case ".ogg":
		return "audio/ogg"
	case ".aac":
		return "audio/aac"
	case ".mp4":
		return "video/mp4"
	case ".mov":
		return "video/mov"
	case ".webm":
		return "video/webm"
	default:
		return "application/octet-stream"
	}
}

// Transcribe uploads a media file and returns the transcript.
func (c *WhisperClient) Transcribe(ctx context.Context, path string, opts TranscribeOptions) (*Transcript, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("speech API key not configured")
	}

	endpoint := c.apiBase + "/audio/transcriptions"
	if opts.Task == TaskTranslate {
		endpoint = c.apiBase + "/audio/translations"
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	// Build multipart form body using a pipe so large files stream
	// instead of buffering in memory.
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	errCh := make(chan error, 1)
	go func() {
		defer pw.Close()
		defer mw.Close()

		if err := mw.WriteField("model", opts.Model); err != nil {
			errCh <- err
			return
		}
		if err := mw.WriteField("response_format", "verbose_json"); err != nil {
			errCh <- err
			return
		}
		// The translate task always targets English; a language hint only
		// applies to native transcription.
		if opts.Task == TaskTranscribe && opts.Language != "" {
			if err := mw.WriteField("language", opts.Language); err != nil {
				errCh <- err
				return
			}
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filepath.Base(path)))
		h.Set("Content-Type", mimeFromExt(filepath.Ext(path)))
		part, err := mw.CreatePart(h)
		if err != nil {
			errCh <- err
			return
		}

		if _, err := io.Copy(part, f); err != nil {
			errCh <- err
			return
		}

		errCh <- nil
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, pr)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	slog.Debug("uploading media", "endpoint", endpoint, "model", opts.Model, "task", string(opts.Task))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if writeErr := <-errCh; writeErr != nil {
		return nil, fmt.Errorf("multipart write error: %w", writeErr)
	}

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("speech API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var transcript Transcript
	if err := json.NewDecoder(resp.Body).Decode(&transcript); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &transcript, nil
}
