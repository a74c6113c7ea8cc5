package subtitle

import (
	"fmt"
	"strings"
)

// Format selects the serialization dialect for a document.
type Format string

const (
	// FormatSRT emits numbered, timestamped subtitle blocks.
	FormatSRT Format = "srt"
	// FormatTranscript emits one "<speaker> HH:MM:SS.mmm <text>" row per line.
	FormatTranscript Format = "plain-transcript"
)

// Render serializes the document in the requested format. The format is an
// explicit parameter rather than document state, so the same document can be
// rendered both ways without mutation.
func (d *Document) Render(format Format) (string, error) {
	switch format {
	case FormatSRT:
		return d.renderSRT(), nil
	case FormatTranscript:
		return d.renderTranscript(), nil
	default:
		return "", fmt.Errorf("render: unsupported format %q", format)
	}
}

// renderSRT writes each line as four rows (index, timecode pair, bracketed
// speaker, text) followed by a blank separator line.
func (d *Document) renderSRT() string {
	var b strings.Builder
	for _, line := range d.Lines {
		fmt.Fprintf(&b, "%d\n%s --> %s\n[%s]\n%s\n\n",
			line.Index,
			FormatTimecode(line.StartMS, SRTDelimiter),
			FormatTimecode(line.EndMS, SRTDelimiter),
			line.Speaker,
			line.Text,
		)
	}
	return b.String()
}

func (d *Document) renderTranscript() string {
	var b strings.Builder
	for _, line := range d.Lines {
		fmt.Fprintf(&b, "%s %s %s\n",
			line.Speaker,
			FormatTimecode(line.StartMS, TranscriptDelimiter),
			line.Text,
		)
	}
	return b.String()
}
