package whisper

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ExtractAudio extracts a single audio stream from a source file.
// The output is a mono 16kHz WAV file suitable for WhisperX and pyannote.
func ExtractAudio(ctx context.Context, ffmpegBinary, source string, audioIndex int, dest string) error {
	if audioIndex < 0 {
		return fmt.Errorf("extract audio: invalid audio stream index %d", audioIndex)
	}
	args := buildFFmpegExtractArgs(source, audioIndex, dest)
	cmd := exec.CommandContext(ctx, ffmpegBinary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg extract: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

func buildFFmpegExtractArgs(source string, audioIndex int, dest string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-map", fmt.Sprintf("0:%d", audioIndex),
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}
}
