package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matteooxx/whisper-transcriber/internal/config"
	"github.com/matteooxx/whisper-transcriber/internal/credentials"
	"github.com/matteooxx/whisper-transcriber/internal/engine"
	"github.com/matteooxx/whisper-transcriber/internal/job"
	"github.com/matteooxx/whisper-transcriber/internal/translate"
	"github.com/matteooxx/whisper-transcriber/internal/worker"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <media-file>...",
	Short: "Transcribe audio/video files to text and subtitles",
	Long: `Transcribe one or more audio/video files into text and subtitle artifacts.

When the output language differs from the input language, the speech engine
runs in translate mode and produces English artifacts; a non-English output
language additionally produces a translated plain-text file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTranscribe,
}

var (
	model     string
	outputs   string
	inLang    string
	outLang   string
	outputDir string
)

func init() {
	transcribeCmd.Flags().StringVarP(&model, "model", "m", config.DefaultModel,
		"whisper model size: tiny, base, small, medium, large-v3")
	transcribeCmd.Flags().StringVar(&outputs, "outputs", config.DefaultOutputs,
		"comma-separated output formats: txt,srt,vtt")
	transcribeCmd.Flags().StringVar(&inLang, "in-lang", config.DefaultLanguage,
		"spoken language: en, zh, hi, es, ar, it")
	transcribeCmd.Flags().StringVar(&outLang, "out-lang", config.DefaultLanguage,
		"output language: en, zh, hi, es, ar, it")
	transcribeCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "",
		"directory for output folders (default: next to each input)")

	rootCmd.AddCommand(transcribeCmd)
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	formats, err := config.ParseFormats(outputs)
	if err != nil {
		return err
	}

	// Build one job per input up front so flag errors surface before any
	// credential prompt or external call.
	jobs := make([]job.Job, 0, len(args))
	for _, arg := range args {
		absPath, err := filepath.Abs(arg)
		if err != nil {
			return fmt.Errorf("resolve path: %w", err)
		}
		j, err := job.New(absPath, model, formats, inLang, outLang)
		if err != nil {
			return err
		}
		jobs = append(jobs, j)
	}

	env, err := config.LoadEnv()
	if err != nil {
		return err
	}

	secrets, err := loadSecrets(env, needsTranslator(jobs))
	if err != nil {
		return err
	}

	speech := engine.NewWhisperClient(secrets.SpeechAPIKey, env.WhisperAPIBase)

	var translator translate.Translator
	if secrets.TranslateAPIKey != "" {
		translator = translate.NewDeepLClient(secrets.TranslateAPIKey, env.DeepLAPIBase)
	}

	// Graceful cancellation on Ctrl-C.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Jobs run sequentially; one failure is reported and the batch moves on.
	var failures []error
	for _, j := range jobs {
		opts := worker.Options{
			Job:        j,
			Engine:     speech,
			Translator: translator,
			OutputDir:  outputDir,
		}
		if err := worker.Run(ctx, opts); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Error("job failed", "file", filepath.Base(j.MediaPath), "err", err)
			failures = append(failures, fmt.Errorf("%s: %w", filepath.Base(j.MediaPath), err))
		}
	}

	if len(failures) > 0 {
		return errors.Join(failures...)
	}

	if !quiet {
		slog.Info("done")
	}
	return nil
}

// needsTranslator reports whether any job takes the two-step path and so
// requires the text-translation credential.
func needsTranslator(jobs []job.Job) bool {
	for _, j := range jobs {
		if j.Mode() == job.TranslateThenLocalize {
			return true
		}
	}
	return false
}

// loadSecrets resolves credentials from the environment, then the persisted
// store, prompting for and saving whatever is still missing.
func loadSecrets(env config.Env, wantTranslate bool) (credentials.Secrets, error) {
	path, err := config.CredentialsPath()
	if err != nil {
		return credentials.Secrets{}, err
	}
	store := credentials.NewFileStore(path)

	stored, err := store.Load()
	if err != nil {
		return credentials.Secrets{}, fmt.Errorf("load credentials: %w", err)
	}

	secrets := stored
	if env.WhisperAPIKey != "" {
		secrets.SpeechAPIKey = env.WhisperAPIKey
	}
	if env.DeepLAPIKey != "" {
		secrets.TranslateAPIKey = env.DeepLAPIKey
	}

	if secrets.SpeechAPIKey != "" && (!wantTranslate || secrets.TranslateAPIKey != "") {
		return secrets, nil
	}

	prompted, err := credentials.Prompt(os.Stdin, os.Stderr, secrets)
	if err != nil {
		return credentials.Secrets{}, err
	}

	// Persist only what came from the prompt or the file, never the
	// environment overrides.
	toSave := stored
	if stored.SpeechAPIKey == "" && env.WhisperAPIKey == "" {
		toSave.SpeechAPIKey = prompted.SpeechAPIKey
	}
	if stored.TranslateAPIKey == "" && env.DeepLAPIKey == "" {
		toSave.TranslateAPIKey = prompted.TranslateAPIKey
	}
	if toSave != stored {
		if err := store.Save(toSave); err != nil {
			return credentials.Secrets{}, fmt.Errorf("save credentials: %w", err)
		}
		slog.Info("credentials saved", "path", path)
	}

	return prompted, nil
}
