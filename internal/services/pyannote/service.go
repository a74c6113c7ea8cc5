package pyannote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Config captures runtime settings for diarization runs.
type Config struct {
	// HFToken is the Hugging Face token for pyannote model access.
	HFToken string
	// SpeakerCount pins the exact number of speakers. Mutually exclusive
	// with MinSpeakers/MaxSpeakers.
	SpeakerCount int
	// MinSpeakers bounds the speaker search from below.
	MinSpeakers int
	// MaxSpeakers bounds the speaker search from above.
	MaxSpeakers int
	// CUDAEnabled enables GPU acceleration.
	CUDAEnabled bool
}

const (
	// UVXCommand runs the embedded Python driver.
	UVXCommand   = "uvx"
	cudaIndexURL = "https://download.pytorch.org/whl/cu128"
	pypiIndexURL = "https://pypi.org/simple"
)

// ErrMissingToken indicates no Hugging Face token was configured.
var ErrMissingToken = errors.New("pyannote: hugging face token required")

// ErrSpeakerBounds indicates conflicting speaker count settings.
var ErrSpeakerBounds = errors.New("pyannote: speaker count is mutually exclusive with min/max speakers")

// Service provides speaker diarization capabilities.
type Service struct {
	cfg           Config
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a diarization service with the given configuration.
func NewService(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Diarize runs speaker diarization over a WAV file and writes millisecond
// CSV turns to outputPath.
func (s *Service) Diarize(ctx context.Context, audioPath, outputPath string) error {
	if strings.TrimSpace(audioPath) == "" {
		return errors.New("pyannote: audio path required")
	}
	if strings.TrimSpace(outputPath) == "" {
		return errors.New("pyannote: output path required")
	}
	if strings.TrimSpace(s.cfg.HFToken) == "" {
		return ErrMissingToken
	}
	if s.cfg.SpeakerCount > 0 && (s.cfg.MinSpeakers > 0 || s.cfg.MaxSpeakers > 0) {
		return ErrSpeakerBounds
	}

	args := s.buildArgs(audioPath, outputPath)
	if s.commandRunner != nil {
		return s.commandRunner(ctx, UVXCommand, args...)
	}
	return s.run(ctx, args)
}

func (s *Service) buildArgs(audioPath, outputPath string) []string {
	// --refresh ensures we get the correct dependencies (uvx caches aggressively)
	args := []string{
		"--refresh",
		"--quiet",
		"--with", "pyannote.audio",
		"--with", "torchaudio",
		"--with", "soundfile",
	}
	if s.cfg.CUDAEnabled {
		args = append(args,
			"--index-url", cudaIndexURL,
			"--extra-index-url", pypiIndexURL,
		)
	}
	args = append(args,
		"python", "-c", diarizeScript,
		"--input", audioPath,
		"--output", outputPath,
		"--hf-token", s.cfg.HFToken,
	)
	if s.cfg.SpeakerCount > 0 {
		args = append(args, "--speaker-count", strconv.Itoa(s.cfg.SpeakerCount))
	} else {
		if s.cfg.MinSpeakers > 0 {
			args = append(args, "--min-speakers", strconv.Itoa(s.cfg.MinSpeakers))
		}
		if s.cfg.MaxSpeakers > 0 {
			args = append(args, "--max-speakers", strconv.Itoa(s.cfg.MaxSpeakers))
		}
	}
	return args
}

func (s *Service) run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, UVXCommand, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	env := os.Environ()
	env = append(env, "HF_TOKEN="+s.cfg.HFToken)
	if os.Getenv("TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD") == "" {
		env = append(env, "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1")
	}
	cmd.Env = env

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pyannote: %w: %s", err, summarizeStderr(stderr.String()))
	}
	return nil
}

// summarizeStderr reduces a Python traceback to its most useful line.
func summarizeStderr(output string) string {
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return "no diagnostic output"
	}
	if strings.Contains(trimmed, "GatedRepoError") || strings.Contains(trimmed, "401") {
		return "Hugging Face model access denied; accept the terms at https://hf.co/pyannote/speaker-diarization-3.1 and retry"
	}
	lines := strings.Split(trimmed, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if strings.Contains(line, "Error:") {
			return line
		}
	}
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return trimmed
}
