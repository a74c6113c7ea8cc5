package subtitle

import (
	"fmt"
	"strconv"
	"strings"
)

// Millisecond delimiters for the two supported timecode dialects.
const (
	SRTDelimiter        byte = ','
	TranscriptDelimiter byte = '.'
)

// FormatTimecode renders milliseconds as HH:MM:SS<delim>mmm. Hours are
// zero-padded to two digits and the millisecond remainder is the exact
// ms mod 1000, never rounded, so formatting stays invertible.
func FormatTimecode(ms int64, delim byte) string {
	hours := ms / 3_600_000
	minutes := (ms % 3_600_000) / 60_000
	seconds := (ms % 60_000) / 1000
	return fmt.Sprintf("%02d:%02d:%02d%c%03d", hours, minutes, seconds, delim, ms%1000)
}

// ParseTimecode is the inverse of FormatTimecode for the same delimiter.
func ParseTimecode(value string, delim byte) (int64, error) {
	value = strings.TrimSpace(value)
	head, tail, found := strings.Cut(value, string(delim))
	if !found {
		return 0, fmt.Errorf("invalid timecode %q: missing %q delimiter", value, string(delim))
	}
	parts := strings.Split(head, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid timecode %q: expected HH:MM:SS", value)
	}
	hours, errH := strconv.ParseInt(parts[0], 10, 64)
	minutes, errM := strconv.ParseInt(parts[1], 10, 64)
	seconds, errS := strconv.ParseInt(parts[2], 10, 64)
	millis, errMS := strconv.ParseInt(tail, 10, 64)
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timecode %q", value)
	}
	if hours < 0 || minutes < 0 || minutes > 59 || seconds < 0 || seconds > 59 || millis < 0 || millis > 999 {
		return 0, fmt.Errorf("invalid timecode %q: component out of range", value)
	}
	return hours*3_600_000 + minutes*60_000 + seconds*1000 + millis, nil
}
