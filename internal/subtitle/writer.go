package subtitle

import (
	"fmt"
	"strings"

	"github.com/matteooxx/whisper-transcriber/internal/engine"
)

// formatTimestamp converts seconds to a subtitle timestamp. SRT uses a
// comma before the milliseconds, VTT a period. Negative inputs clamp to 0.
func formatTimestamp(seconds float64, comma bool) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	millis := int((seconds - float64(total)) * 1000)
	if comma {
		return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
	}
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, secs, millis)
}

// RenderTXT returns the plain-text artifact body.
func RenderTXT(text string) string {
	return strings.TrimSpace(text) + "\n"
}

// RenderSRT returns the SRT artifact body: numbered blocks separated by
// blank lines.
func RenderSRT(segments []engine.Segment) string {
	blocks := make([]string, 0, len(segments))
	for i, seg := range segments {
		start := formatTimestamp(seg.Start, true)
		end := formatTimestamp(seg.End, true)
		blocks = append(blocks, fmt.Sprintf("%d\n%s --> %s\n%s\n", i+1, start, end, strings.TrimSpace(seg.Text)))
	}
	return strings.TrimSpace(strings.Join(blocks, "\n")) + "\n"
}

// RenderVTT returns the WebVTT artifact body.
func RenderVTT(segments []engine.Segment) string {
	blocks := make([]string, 0, len(segments)+1)
	blocks = append(blocks, "WEBVTT\n")
	for _, seg := range segments {
		start := formatTimestamp(seg.Start, false)
		end := formatTimestamp(seg.End, false)
		blocks = append(blocks, fmt.Sprintf("%s --> %s\n%s\n", start, end, strings.TrimSpace(seg.Text)))
	}
	return strings.TrimSpace(strings.Join(blocks, "\n")) + "\n"
}

// Render returns the artifact body for the given format.
func Render(format string, transcript *engine.Transcript) (string, error) {
	switch format {
	case "txt":
		return RenderTXT(transcript.Text), nil
	case "srt":
		return RenderSRT(transcript.Segments), nil
	case "vtt":
		return RenderVTT(transcript.Segments), nil
	}
	return "", fmt.Errorf("unsupported output format: %q", format)
}

// ArtifactName builds the artifact file name: "<name> [<tag>].<ext>".
// The tag denotes the actual content language of the file.
func ArtifactName(baseName, langTag, format string) string {
	return fmt.Sprintf("%s [%s].%s", baseName, langTag, format)
}
