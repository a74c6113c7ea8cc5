package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subweave/internal/config"
	"subweave/internal/pipeline"
	"subweave/internal/queue"
)

type processFlags struct {
	transcriptOutput  string
	diarizationOutput string
	srtOutput         string
	textOutput        string
	model             string
	language          string
	speakerCount      int
	minSpeakers       int
	maxSpeakers       int
	parallel          bool
}

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var flags processFlags

	cmd := &cobra.Command{
		Use:   "process <audio>",
		Short: "Run the full transcription, diarization, and alignment pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runCfg, err := applyProcessOverrides(cfg, cmd, flags)
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			outputs := pipeline.Outputs{
				TranscriptPath:  flags.transcriptOutput,
				DiarizationPath: flags.diarizationOutput,
				SRTPath:         flags.srtOutput,
				TextPath:        flags.textOutput,
			}
			if !outputs.Requested() {
				return fmt.Errorf("no outputs requested; pass at least one of --srt-output, --text-output, --transcript-output, --diarization-output")
			}

			store, err := queue.Open(runCfg)
			if err != nil {
				return err
			}
			defer store.Close()

			p := pipeline.New(runCfg, store, logger)
			job, err := p.Process(cmd.Context(), args[0], outputs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Job %d completed\n", job.ID)
			if job.SRTPath != "" {
				fmt.Fprintf(out, "  SRT:        %s\n", job.SRTPath)
			}
			if job.TranscriptTextPath != "" {
				fmt.Fprintf(out, "  Transcript: %s\n", job.TranscriptTextPath)
			}
			if flags.transcriptOutput != "" {
				fmt.Fprintf(out, "  Words:      %s\n", flags.transcriptOutput)
			}
			if flags.diarizationOutput != "" {
				fmt.Fprintf(out, "  Speakers:   %s\n", flags.diarizationOutput)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.transcriptOutput, "transcript-output", "", "Write raw word-timestamped JSON here")
	cmd.Flags().StringVar(&flags.diarizationOutput, "diarization-output", "", "Write speaker turn CSV here")
	cmd.Flags().StringVar(&flags.srtOutput, "srt-output", "", "Write speaker-attributed SRT subtitles here")
	cmd.Flags().StringVar(&flags.textOutput, "text-output", "", "Write a plain speaker transcript here")
	cmd.Flags().StringVar(&flags.model, "model", "", "Whisper model override (tiny through large-v3)")
	cmd.Flags().StringVar(&flags.language, "language", "", "Spoken language hint (name, ISO code, or BCP 47 tag)")
	cmd.Flags().IntVar(&flags.speakerCount, "speaker-count", 0, "Exact number of speakers")
	cmd.Flags().IntVar(&flags.minSpeakers, "min-speakers", 0, "Lower bound on speaker count")
	cmd.Flags().IntVar(&flags.maxSpeakers, "max-speakers", 0, "Upper bound on speaker count")
	cmd.Flags().BoolVar(&flags.parallel, "parallel", true, "Run transcription and diarization concurrently")

	return cmd
}

// applyProcessOverrides copies the loaded config and layers command-line
// overrides on top, revalidating the result.
func applyProcessOverrides(cfg *config.Config, cmd *cobra.Command, flags processFlags) (*config.Config, error) {
	runCfg := *cfg
	if flags.model != "" {
		runCfg.Transcription.Model = flags.model
	}
	if flags.language != "" {
		runCfg.Transcription.Language = flags.language
	}
	if cmd.Flags().Changed("speaker-count") {
		runCfg.Diarization.SpeakerCount = flags.speakerCount
	}
	if cmd.Flags().Changed("min-speakers") {
		runCfg.Diarization.MinSpeakers = flags.minSpeakers
	}
	if cmd.Flags().Changed("max-speakers") {
		runCfg.Diarization.MaxSpeakers = flags.maxSpeakers
	}
	if cmd.Flags().Changed("parallel") {
		runCfg.Workflow.Parallel = flags.parallel
	}
	if err := runCfg.Validate(); err != nil {
		return nil, err
	}
	return &runCfg, nil
}
