package timeline

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// diarizationHeaderToken identifies an optional header row. Detection keys on
// the literal first field so data rows are never skipped by position.
const diarizationHeaderToken = "start"

// ParseDiarization decodes line-oriented diarization output. Each line is
// "start_ms,end_ms,speaker"; speaker labels may themselves contain commas.
// A leading "start,end,speaker" header line is skipped when present.
func ParseDiarization(r io.Reader) ([]Turn, error) {
	var turns []Turn
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	sawContent := false
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.SplitN(line, ",", 3)
		if !sawContent && strings.TrimSpace(fields[0]) == diarizationHeaderToken {
			sawContent = true
			continue
		}
		sawContent = true

		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: diarization line %d: expected start_ms,end_ms,speaker", ErrMalformed, lineNo)
		}
		start, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: diarization line %d: invalid start %q", ErrMalformed, lineNo, fields[0])
		}
		end, err := strconv.ParseInt(strings.TrimSpace(fields[1]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: diarization line %d: invalid end %q", ErrMalformed, lineNo, fields[1])
		}
		speaker := strings.TrimSpace(fields[2])
		if speaker == "" {
			return nil, fmt.Errorf("%w: diarization line %d: empty speaker label", ErrMalformed, lineNo)
		}
		if start < 0 || end <= start {
			return nil, fmt.Errorf("%w: diarization line %d: invalid interval %d..%d", ErrMalformed, lineNo, start, end)
		}

		turns = append(turns, Turn{StartMS: start, EndMS: end, Speaker: speaker})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read diarization: %w", err)
	}

	sortTurns(turns)
	return turns, nil
}

// ParseDiarizationFile reads and parses a diarization CSV file.
func ParseDiarizationFile(path string) ([]Turn, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open diarization: %w", err)
	}
	defer file.Close()
	turns, err := ParseDiarization(file)
	if err != nil {
		return nil, fmt.Errorf("parse diarization %s: %w", path, err)
	}
	return turns, nil
}
