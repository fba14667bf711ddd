package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/matteooxx/whisper-transcriber/internal/config"
	"github.com/matteooxx/whisper-transcriber/internal/engine"
	"github.com/matteooxx/whisper-transcriber/internal/job"
	"github.com/matteooxx/whisper-transcriber/internal/media"
	"github.com/matteooxx/whisper-transcriber/internal/subtitle"
	"github.com/matteooxx/whisper-transcriber/internal/translate"
)

// Options configures the worker for one job.
type Options struct {
	Job        job.Job
	Engine     engine.SpeechEngine
	Translator translate.Translator

	// OutputDir overrides where the per-file artifact directory is created.
	// Empty means next to the input file.
	OutputDir string
}

// Run executes a single job: it routes on the job's mode, invokes the
// speech engine once, writes the requested artifacts, and for the two-step
// path translates the English text into the target language. Any external
// failure is terminal for the job.
func Run(ctx context.Context, opts Options) error {
	j := opts.Job

	if _, err := os.Stat(j.MediaPath); err != nil {
		return fmt.Errorf("file not found: %s", j.MediaPath)
	}
	if ext := filepath.Ext(j.MediaPath); !media.SupportedExtension(ext) {
		return fmt.Errorf("unsupported file type: %s", ext)
	}

	mode := j.Mode()
	log := slog.With("job", j.ID, "file", filepath.Base(j.MediaPath), "mode", mode.String())
	log.Info("processing file",
		"model", j.Model,
		"in_lang", j.InLang,
		"out_lang", j.OutLang)

	media.LogInfo(ctx, j.MediaPath)

	outDir, err := artifactDir(j, opts.OutputDir)
	if err != nil {
		return err
	}

	engineOpts := engine.TranscribeOptions{
		Model:    j.Model,
		Language: j.InLang,
		Task:     engine.TaskTranscribe,
	}
	tag := j.InLang
	if mode != job.TranscribeOnly {
		engineOpts.Task = engine.TaskTranslate
		tag = config.EnglishTag
	}

	log.Info("invoking speech engine", "task", string(engineOpts.Task))
	transcript, err := opts.Engine.Transcribe(ctx, j.MediaPath, engineOpts)
	if err != nil {
		return fmt.Errorf("speech engine: %w", err)
	}
	if transcript.Text == "" && len(transcript.Segments) == 0 {
		return fmt.Errorf("empty transcript received")
	}

	if err := writeArtifacts(outDir, j.BaseName(), tag, j.Formats, transcript); err != nil {
		return err
	}

	if mode == job.TranslateThenLocalize {
		if opts.Translator == nil {
			return fmt.Errorf("translation API key not configured (required for %s -> %s)", j.InLang, j.OutLang)
		}

		log.Info("translating text", "target", j.OutLang)
		translated, err := opts.Translator.Translate(ctx, transcript.Text, j.OutLang)
		if err != nil {
			return fmt.Errorf("translate: %w", err)
		}

		// Target-language output is plain text only; translated subtitles
		// would need segment realignment, which is not attempted.
		name := subtitle.ArtifactName(j.BaseName(), j.OutLang, "txt")
		path := filepath.Join(outDir, name)
		if err := os.WriteFile(path, []byte(subtitle.RenderTXT(translated)), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		log.Info("artifact saved", "path", path)
	}

	log.Info("job complete")
	return nil
}

// artifactDir resolves and creates the per-file output directory, named
// after the input file's base name.
func artifactDir(j job.Job, override string) (string, error) {
	parent := filepath.Dir(j.MediaPath)
	if override != "" {
		parent = override
	}
	dir := filepath.Join(parent, j.BaseName())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	return dir, nil
}

// writeArtifacts renders and writes one file per requested format, all
// carrying the same language tag.
func writeArtifacts(dir, baseName, tag string, formats []string, transcript *engine.Transcript) error {
	for _, format := range formats {
		body, err := subtitle.Render(format, transcript)
		if err != nil {
			return err
		}
		name := subtitle.ArtifactName(baseName, tag, format)
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		slog.Info("artifact saved", "path", path)
	}
	return nil
}
