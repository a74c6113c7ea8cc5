package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"subweave/internal/config"
	"subweave/internal/logging"
	"subweave/internal/media/ffprobe"
	"subweave/internal/queue"
	"subweave/internal/services/pyannote"
	"subweave/internal/services/whisper"
)

// Transcriber extracts audio and produces word-timestamped transcript JSON.
type Transcriber interface {
	ExtractAudio(ctx context.Context, source string, audioIndex int, dest string) error
	TranscribeFile(ctx context.Context, source, outputDir string) (whisper.Result, error)
	Model() string
}

// Diarizer produces speaker turn CSV for an audio file.
type Diarizer interface {
	Diarize(ctx context.Context, audioPath, outputPath string) error
}

// Prober inspects media files. Matches ffprobe.Inspect.
type Prober func(ctx context.Context, binary, path string) (ffprobe.Result, error)

// Outputs names the artifacts a run should leave behind. Paths left empty are
// kept as staging intermediates only.
type Outputs struct {
	TranscriptPath  string
	DiarizationPath string
	SRTPath         string
	TextPath        string
}

// Requested reports whether at least one artifact was asked for.
func (o Outputs) Requested() bool {
	return o.TranscriptPath != "" || o.DiarizationPath != "" || o.SRTPath != "" || o.TextPath != ""
}

func (o Outputs) needsAlignment() bool {
	return o.SRTPath != "" || o.TextPath != ""
}

// Pipeline runs jobs end to end against the configured external tools.
type Pipeline struct {
	cfg         *config.Config
	store       *queue.Store
	logger      *slog.Logger
	transcriber Transcriber
	diarizer    Diarizer
	probe       Prober
}

// New wires a pipeline from configuration. External tool services are built
// from the config; tests replace them through the With setters.
func New(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	transcriber := whisper.NewService(whisper.Config{
		Model:                   cfg.Transcription.Model,
		Language:                cfg.Transcription.Language,
		BeamSize:                cfg.Transcription.BeamSize,
		ConditionOnPreviousText: cfg.Transcription.ConditionOnPreviousText,
		CUDAEnabled:             cfg.Transcription.CUDAEnabled,
		CacheDir:                cfg.Transcription.CacheDir,
	}, cfg.FFmpegBinary())
	diarizer := pyannote.NewService(pyannote.Config{
		HFToken:      cfg.Diarization.HFToken,
		SpeakerCount: cfg.Diarization.SpeakerCount,
		MinSpeakers:  cfg.Diarization.MinSpeakers,
		MaxSpeakers:  cfg.Diarization.MaxSpeakers,
		CUDAEnabled:  cfg.Transcription.CUDAEnabled,
	})
	return &Pipeline{
		cfg:         cfg,
		store:       store,
		logger:      logging.NewComponentLogger(logger, "pipeline"),
		transcriber: transcriber,
		diarizer:    diarizer,
		probe:       ffprobe.Inspect,
	}
}

// WithTranscriber replaces the transcription service (used in tests).
func (p *Pipeline) WithTranscriber(t Transcriber) { p.transcriber = t }

// WithDiarizer replaces the diarization service (used in tests).
func (p *Pipeline) WithDiarizer(d Diarizer) { p.diarizer = d }

// WithProber replaces the media prober (used in tests).
func (p *Pipeline) WithProber(probe Prober) { p.probe = probe }

// lockFileName sits inside the staging directory so concurrent process runs
// sharing a queue database serialize instead of interleaving writes.
const lockFileName = "subweave.lock"

// ErrLocked indicates another process run holds the staging lock.
var ErrLocked = errors.New("pipeline: another subweave run is in progress")

func (p *Pipeline) acquireLock() (*flock.Flock, error) {
	lock := flock.New(filepath.Join(p.cfg.Paths.StagingDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrLocked
	}
	return lock, nil
}

func (p *Pipeline) jobTimeout() time.Duration {
	if p.cfg.Workflow.JobTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(p.cfg.Workflow.JobTimeoutSeconds) * time.Second
}

func stageLabel(status queue.Status) string {
	switch status {
	case queue.StatusExtracting:
		return "Extracting audio"
	case queue.StatusRecognizing:
		return "Recognizing speech and speakers"
	case queue.StatusAligning:
		return "Aligning subtitles"
	case queue.StatusCompleted:
		return "Completed"
	default:
		value := strings.TrimSpace(string(status))
		if value == "" {
			return "Processing"
		}
		return strings.ToUpper(value[:1]) + value[1:]
	}
}
