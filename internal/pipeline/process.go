package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"subweave/internal/fileutil"
	"subweave/internal/logging"
	"subweave/internal/queue"
	"subweave/internal/services"
	"subweave/internal/subtitle"
)

// Process runs a source file through the full pipeline and records progress
// in the queue store. The returned job reflects the final persisted state;
// it is non-nil whenever a queue row was created, even on failure.
func (p *Pipeline) Process(ctx context.Context, sourcePath string, outputs Outputs) (*queue.Job, error) {
	if !outputs.Requested() {
		return nil, services.Wrap(services.ErrValidation, "process", "check outputs",
			"no outputs requested; pass at least one of transcript, diarization, SRT, or text", nil)
	}
	info, err := os.Stat(sourcePath)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "process", "stat source",
			fmt.Sprintf("source file %s is not readable", sourcePath), err)
	}
	if info.IsDir() {
		return nil, services.Wrap(services.ErrValidation, "process", "stat source",
			fmt.Sprintf("source %s is a directory", sourcePath), nil)
	}

	lock, err := p.acquireLock()
	if err != nil {
		return nil, err
	}
	defer func() { _ = lock.Unlock() }()

	requestID := uuid.NewString()
	ctx = services.WithRequestID(ctx, requestID)

	job, err := p.store.NewJob(ctx, sourcePath, requestID)
	if err != nil {
		return nil, fmt.Errorf("create queue job: %w", err)
	}
	ctx = services.WithJobID(ctx, job.ID)

	if timeout := p.jobTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	workDir := filepath.Join(p.cfg.Paths.StagingDir, fmt.Sprintf("job-%d", job.ID))
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return job, p.failJob(ctx, job, fmt.Errorf("create staging dir: %w", err))
	}

	start := time.Now()
	logging.WithContext(ctx, p.logger).Info("processing started",
		logging.String("source", sourcePath),
		logging.String("model", p.transcriber.Model()),
		logging.Bool("parallel", p.cfg.Workflow.Parallel),
	)

	audioPath, err := p.runExtract(ctx, job, workDir)
	if err != nil {
		return job, p.failJob(ctx, job, err)
	}

	transcriptPath, diarizationPath, err := p.runRecognize(ctx, job, audioPath, workDir, outputs)
	if err != nil {
		return job, p.failJob(ctx, job, err)
	}

	if outputs.needsAlignment() {
		if err := p.runAlign(ctx, job, transcriptPath, diarizationPath, outputs); err != nil {
			return job, p.failJob(ctx, job, err)
		}
	}

	job.Status = queue.StatusCompleted
	job.SetProgress(stageLabel(queue.StatusCompleted))
	if err := p.store.Update(ctx, job); err != nil {
		return job, fmt.Errorf("persist completion: %w", err)
	}
	logging.WithContext(ctx, p.logger).Info("processing completed",
		logging.Duration("elapsed", time.Since(start)),
		logging.String("srt_output", job.SRTPath),
		logging.String("text_output", job.TranscriptTextPath),
	)
	return job, nil
}

func (p *Pipeline) transition(ctx context.Context, job *queue.Job, status queue.Status) error {
	job.Status = status
	job.SetProgress(stageLabel(status))
	if err := p.store.Update(ctx, job); err != nil {
		return fmt.Errorf("persist %s transition: %w", status, err)
	}
	logging.WithContext(services.WithStage(ctx, string(status)), p.logger).Info("stage started",
		logging.String("status", string(status)),
	)
	return nil
}

func (p *Pipeline) failJob(ctx context.Context, job *queue.Job, stageErr error) error {
	job.Status = services.FailureStatus(stageErr)
	job.ErrorMessage = strings.TrimSpace(stageErr.Error())
	job.ProgressMessage = ""
	if err := p.store.Update(ctx, job); err != nil {
		logging.WithContext(ctx, p.logger).Error("failed to persist job failure", logging.Error(err))
	}
	logging.WithContext(ctx, p.logger).Error("processing failed",
		logging.String("resolved_status", string(job.Status)),
		logging.Error(stageErr),
	)
	return stageErr
}

func (p *Pipeline) runExtract(ctx context.Context, job *queue.Job, workDir string) (string, error) {
	if err := p.transition(ctx, job, queue.StatusExtracting); err != nil {
		return "", err
	}
	ctx = services.WithStage(ctx, string(queue.StatusExtracting))

	result, err := p.probe(ctx, p.cfg.FFprobeBinary(), job.SourcePath)
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "extract", "probe media",
			"ffprobe could not read the source; check the file is valid media", err)
	}
	stream, ok := result.FirstAudioStream()
	if !ok {
		return "", services.Wrap(services.ErrValidation, "extract", "select audio stream",
			"source has no audio streams", nil)
	}
	logging.WithContext(ctx, p.logger).Info("probed source",
		logging.Float64("duration_seconds", result.DurationSeconds()),
		logging.Int64("size_bytes", result.SizeBytes()),
		logging.Int("audio_streams", result.AudioStreamCount()),
		logging.String("codec", stream.CodecName),
		logging.String("language", stream.Language()),
	)

	audioPath := filepath.Join(workDir, "audio.wav")
	if err := p.transcriber.ExtractAudio(ctx, job.SourcePath, stream.Index, audioPath); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "extract", "extract audio",
			"ffmpeg audio extraction failed", err)
	}
	job.AudioPath = audioPath
	if err := p.store.Update(ctx, job); err != nil {
		return "", fmt.Errorf("persist audio path: %w", err)
	}
	return audioPath, nil
}

// runRecognize produces both timelines. Transcription and diarization are
// independent, so parallel mode runs them in separate goroutines; both must
// finish before alignment can start.
func (p *Pipeline) runRecognize(ctx context.Context, job *queue.Job, audioPath, workDir string, outputs Outputs) (string, string, error) {
	if err := p.transition(ctx, job, queue.StatusRecognizing); err != nil {
		return "", "", err
	}
	ctx = services.WithStage(ctx, string(queue.StatusRecognizing))

	diarizationPath := outputs.DiarizationPath
	if diarizationPath == "" {
		diarizationPath = filepath.Join(workDir, "turns.csv")
	}

	var (
		transcriptPath string
		transcribeErr  error
		diarizeErr     error
	)
	transcribe := func() {
		result, err := p.transcriber.TranscribeFile(ctx, audioPath, workDir)
		if err != nil {
			transcribeErr = services.Wrap(services.ErrExternalTool, "recognize", "transcribe",
				"speech recognition failed", err)
			return
		}
		transcriptPath = result.JSONPath
	}
	diarize := func() {
		if err := p.diarizer.Diarize(ctx, audioPath, diarizationPath); err != nil {
			diarizeErr = services.Wrap(services.ErrExternalTool, "recognize", "diarize",
				"speaker diarization failed", err)
		}
	}

	if p.cfg.Workflow.Parallel {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() { defer wg.Done(); transcribe() }()
		go func() { defer wg.Done(); diarize() }()
		wg.Wait()
	} else {
		transcribe()
		diarize()
	}
	if err := errors.Join(transcribeErr, diarizeErr); err != nil {
		return "", "", err
	}

	if outputs.TranscriptPath != "" && outputs.TranscriptPath != transcriptPath {
		if err := copyFile(transcriptPath, outputs.TranscriptPath); err != nil {
			return "", "", fmt.Errorf("copy transcript to %s: %w", outputs.TranscriptPath, err)
		}
		transcriptPath = outputs.TranscriptPath
	}

	job.TranscriptPath = transcriptPath
	job.DiarizationPath = diarizationPath
	if err := p.store.Update(ctx, job); err != nil {
		return "", "", fmt.Errorf("persist timeline paths: %w", err)
	}
	return transcriptPath, diarizationPath, nil
}

func (p *Pipeline) runAlign(ctx context.Context, job *queue.Job, transcriptPath, diarizationPath string, outputs Outputs) error {
	if err := p.transition(ctx, job, queue.StatusAligning); err != nil {
		return err
	}
	ctx = services.WithStage(ctx, string(queue.StatusAligning))

	doc, err := AlignFiles(transcriptPath, diarizationPath, p.cfg.Subtitles.MaxWordsPerLine)
	if err != nil {
		return err
	}
	logging.WithContext(ctx, p.logger).Info("aligned timelines",
		logging.Int("subtitle_lines", len(doc.Lines)),
	)

	if outputs.SRTPath != "" {
		if err := WriteDocument(doc, subtitle.FormatSRT, outputs.SRTPath); err != nil {
			return err
		}
		job.SRTPath = outputs.SRTPath
	}
	if outputs.TextPath != "" {
		if err := WriteDocument(doc, subtitle.FormatTranscript, outputs.TextPath); err != nil {
			return err
		}
		job.TranscriptTextPath = outputs.TextPath
	}
	if err := p.store.Update(ctx, job); err != nil {
		return fmt.Errorf("persist output paths: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(dst, data)
}
