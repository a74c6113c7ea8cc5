package pipeline

import (
	"errors"
	"fmt"

	"subweave/internal/attribution"
	"subweave/internal/fileutil"
	"subweave/internal/services"
	"subweave/internal/subtitle"
	"subweave/internal/timeline"
)

// AlignFiles runs the pure alignment core over timeline files already on
// disk: parse both timelines, attribute speakers, and build the merged
// subtitle document. Used by the aligning stage and by the align command.
func AlignFiles(transcriptPath, diarizationPath string, maxWords int) (*subtitle.Document, error) {
	words, err := timeline.ParseTranscriptFile(transcriptPath)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "align", "parse transcript",
			fmt.Sprintf("transcript %s is not valid word-timestamped JSON", transcriptPath), err)
	}
	turns, err := timeline.ParseDiarizationFile(diarizationPath)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "align", "parse diarization",
			fmt.Sprintf("diarization %s is not valid interval CSV", diarizationPath), err)
	}

	cues, err := attribution.Assign(words, turns)
	if err != nil {
		if errors.Is(err, attribution.ErrNoTurns) {
			return nil, services.Wrap(services.ErrValidation, "align", "attribute speakers",
				"diarization produced no speaker turns; check the audio has speech", err)
		}
		return nil, services.Wrap(services.ErrValidation, "align", "attribute speakers", "", err)
	}

	doc, err := subtitle.Build(cues, maxWords)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "align", "build subtitles", "", err)
	}
	return doc, nil
}

// WriteDocument renders the document in the given format and writes it
// atomically, creating parent directories as needed.
func WriteDocument(doc *subtitle.Document, format subtitle.Format, path string) error {
	rendered, err := doc.Render(format)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(path, []byte(rendered)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
