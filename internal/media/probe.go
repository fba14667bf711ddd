package media

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Info holds duration and codec information from ffprobe.
type Info struct {
	Duration float64
	Codec    string
}

// ProbeAvailable returns true if ffprobe is on the PATH.
func ProbeAvailable() bool {
	_, err := exec.LookPath("ffprobe")
	return err == nil
}

// probeOutput mirrors ffprobe JSON structure.
type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecName string `json:"codec_name"`
	} `json:"streams"`
}

// Probe uses ffprobe to get media duration and audio codec.
func Probe(ctx context.Context, path string) (*Info, error) {
	cmd := exec.CommandContext(ctx,
		"ffprobe",
		"-v", "error",
		"-select_streams", "a:0",
		"-show_entries", "stream=codec_name:format=duration",
		"-of", "json",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe probeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return nil, fmt.Errorf("ffprobe JSON parse error: %w", err)
	}

	dur, _ := strconv.ParseFloat(probe.Format.Duration, 64)

	codec := "N/A"
	if len(probe.Streams) > 0 && probe.Streams[0].CodecName != "" {
		codec = probe.Streams[0].CodecName
	}

	return &Info{Duration: dur, Codec: codec}, nil
}

// SupportedExtension returns true for accepted audio/video extensions.
func SupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".mp3", ".m4a", ".wav", ".flac", ".ogg", ".aac",
		".mp4", ".mov", ".mkv", ".avi", ".flv", ".webm":
		return true
	}
	return false
}

// LogInfo logs file size and, when ffprobe is available, duration and codec.
func LogInfo(ctx context.Context, path string) {
	stat, err := os.Stat(path)
	if err != nil {
		slog.Warn("cannot stat file", "path", path, "err", err)
		return
	}

	sizeMB := float64(stat.Size()) / (1024 * 1024)
	msg := fmt.Sprintf("file size: %.2f MB", sizeMB)

	if ProbeAvailable() {
		if info, err := Probe(ctx, path); err == nil {
			minutes := int(info.Duration) / 60
			seconds := int(info.Duration) % 60
			msg += fmt.Sprintf(" | duration: %02d:%02d | codec: %s", minutes, seconds, info.Codec)
		}
	}

	slog.Info(msg)
}
