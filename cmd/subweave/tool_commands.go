package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"subweave/internal/fileutil"
	"subweave/internal/services/pyannote"
	"subweave/internal/services/whisper"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var (
		output   string
		model    string
		language string
	)

	cmd := &cobra.Command{
		Use:   "transcribe <audio>",
		Short: "Run speech recognition only",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return fmt.Errorf("--output is required")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if model == "" {
				model = cfg.Transcription.Model
			}
			if language == "" {
				language = cfg.Transcription.Language
			}

			svc := whisper.NewService(whisper.Config{
				Model:                   model,
				Language:                language,
				BeamSize:                cfg.Transcription.BeamSize,
				ConditionOnPreviousText: cfg.Transcription.ConditionOnPreviousText,
				CUDAEnabled:             cfg.Transcription.CUDAEnabled,
				CacheDir:                cfg.Transcription.CacheDir,
			}, cfg.FFmpegBinary())

			workDir, err := os.MkdirTemp(cfg.Paths.StagingDir, "transcribe-")
			if err != nil {
				return err
			}
			defer os.RemoveAll(workDir)

			result, err := svc.TranscribeFile(cmd.Context(), args[0], workDir)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(result.JSONPath)
			if err != nil {
				return err
			}
			if err := fileutil.WriteFileAtomic(output, data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote transcript to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination for the transcript JSON")
	cmd.Flags().StringVar(&model, "model", "", "Whisper model override")
	cmd.Flags().StringVar(&language, "language", "", "Spoken language hint")

	return cmd
}

func newDiarizeCommand(ctx *commandContext) *cobra.Command {
	var (
		output       string
		speakerCount int
		minSpeakers  int
		maxSpeakers  int
	)

	cmd := &cobra.Command{
		Use:   "diarize <audio>",
		Short: "Run speaker diarization only",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return fmt.Errorf("--output is required")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			svcCfg := pyannote.Config{
				HFToken:      cfg.Diarization.HFToken,
				SpeakerCount: cfg.Diarization.SpeakerCount,
				MinSpeakers:  cfg.Diarization.MinSpeakers,
				MaxSpeakers:  cfg.Diarization.MaxSpeakers,
				CUDAEnabled:  cfg.Transcription.CUDAEnabled,
			}
			if cmd.Flags().Changed("speaker-count") {
				svcCfg.SpeakerCount = speakerCount
			}
			if cmd.Flags().Changed("min-speakers") {
				svcCfg.MinSpeakers = minSpeakers
			}
			if cmd.Flags().Changed("max-speakers") {
				svcCfg.MaxSpeakers = maxSpeakers
			}

			svc := pyannote.NewService(svcCfg)
			if err := svc.Diarize(cmd.Context(), args[0], output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote speaker turns to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination for the speaker turn CSV")
	cmd.Flags().IntVar(&speakerCount, "speaker-count", 0, "Exact number of speakers")
	cmd.Flags().IntVar(&minSpeakers, "min-speakers", 0, "Lower bound on speaker count")
	cmd.Flags().IntVar(&maxSpeakers, "max-speakers", 0, "Upper bound on speaker count")

	return cmd
}
