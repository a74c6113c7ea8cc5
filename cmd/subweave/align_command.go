package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subweave/internal/pipeline"
	"subweave/internal/subtitle"
)

func newAlignCommand(ctx *commandContext) *cobra.Command {
	var (
		transcriptPath  string
		diarizationPath string
		srtOutput       string
		textOutput      string
		maxWords        int
	)

	cmd := &cobra.Command{
		Use:   "align",
		Short: "Merge existing transcript and diarization files into subtitles",
		Long: `Align runs only the pure core: it reads a word-timestamped transcript JSON
file and a speaker turn CSV file already on disk and produces subtitle
outputs. No external tools are invoked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if transcriptPath == "" || diarizationPath == "" {
				return fmt.Errorf("both --transcript and --diarization are required")
			}
			if srtOutput == "" && textOutput == "" {
				return fmt.Errorf("pass --srt-output and/or --text-output")
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			words := maxWords
			if !cmd.Flags().Changed("max-words") {
				words = cfg.Subtitles.MaxWordsPerLine
			}

			doc, err := pipeline.AlignFiles(transcriptPath, diarizationPath, words)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if srtOutput != "" {
				if err := pipeline.WriteDocument(doc, subtitle.FormatSRT, srtOutput); err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote %d subtitles to %s\n", len(doc.Lines), srtOutput)
			}
			if textOutput != "" {
				if err := pipeline.WriteDocument(doc, subtitle.FormatTranscript, textOutput); err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote transcript to %s\n", textOutput)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&transcriptPath, "transcript", "", "Word-timestamped transcript JSON file")
	cmd.Flags().StringVar(&diarizationPath, "diarization", "", "Speaker turn CSV file")
	cmd.Flags().StringVar(&srtOutput, "srt-output", "", "Write SRT subtitles here")
	cmd.Flags().StringVar(&textOutput, "text-output", "", "Write a plain speaker transcript here")
	cmd.Flags().IntVar(&maxWords, "max-words", subtitle.DefaultMaxWordsPerLine, "Maximum words per subtitle line")

	return cmd
}
