package subtitle

import "testing"

func TestFormatTimecode(t *testing.T) {
	cases := []struct {
		ms    int64
		delim byte
		want  string
	}{
		{0, SRTDelimiter, "00:00:00,000"},
		{999, SRTDelimiter, "00:00:00,999"},
		{1000, SRTDelimiter, "00:00:01,000"},
		{61_001, SRTDelimiter, "00:01:01,001"},
		{3_600_000, SRTDelimiter, "01:00:00,000"},
		{3_723_456, TranscriptDelimiter, "01:02:03.456"},
		{359_999_999, SRTDelimiter, "99:59:59,999"},
	}
	for _, tc := range cases {
		if got := FormatTimecode(tc.ms, tc.delim); got != tc.want {
			t.Errorf("FormatTimecode(%d, %q) = %q, want %q", tc.ms, string(tc.delim), got, tc.want)
		}
	}
}

func TestTimecodeRoundTrip(t *testing.T) {
	// Sample the full supported range (0 <= ms < 100 hours) with a prime
	// stride so every millisecond remainder class gets exercised.
	const limit = int64(360_000_000)
	for ms := int64(0); ms < limit; ms += 7_919 {
		for _, delim := range []byte{SRTDelimiter, TranscriptDelimiter} {
			formatted := FormatTimecode(ms, delim)
			parsed, err := ParseTimecode(formatted, delim)
			if err != nil {
				t.Fatalf("ParseTimecode(%q): %v", formatted, err)
			}
			if parsed != ms {
				t.Fatalf("round trip failed for %d: formatted %q, parsed %d", ms, formatted, parsed)
			}
		}
	}
}

func TestParseTimecodeRejectsGarbage(t *testing.T) {
	cases := []string{
		"",
		"00:00:00",
		"00:00,000",
		"aa:bb:cc,ddd",
		"00:61:00,000",
		"00:00:61,000",
	}
	for _, input := range cases {
		if _, err := ParseTimecode(input, SRTDelimiter); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}
