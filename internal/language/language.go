package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// wordForms maps full language names to ISO 639-1 codes for user-typed
// hints that the BCP 47 parser does not accept.
var wordForms = map[string]string{
	"english":    "en",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"italian":    "it",
	"portuguese": "pt",
	"japanese":   "ja",
	"korean":     "ko",
	"chinese":    "zh",
	"russian":    "ru",
	"arabic":     "ar",
	"hindi":      "hi",
	"dutch":      "nl",
	"polish":     "pl",
	"swedish":    "sv",
	"danish":     "da",
	"norwegian":  "no",
	"finnish":    "fi",
}

// ToISO2 converts any recognized language hint to ISO 639-1 (2-letter).
// Accepts BCP 47 tags ("en-US"), ISO 639-2 codes ("eng"), and word forms
// ("english"). Returns empty string for unrecognized input.
func ToISO2(hint string) string {
	hint = strings.ToLower(strings.TrimSpace(hint))
	if hint == "" {
		return ""
	}
	if code, ok := wordForms[hint]; ok {
		return code
	}
	tag, err := language.Parse(hint)
	if err != nil {
		return ""
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return ""
	}
	// Parse accepts any well-formed subtag, so unknown words come back as
	// themselves ("not-a-language" yields base "not"). Only a two-letter
	// base is an ISO 639-1 code whisper understands.
	code := base.String()
	if len(code) != 2 {
		return ""
	}
	return code
}

// DisplayName returns the English name for any recognized language hint.
// Returns "Unknown" for empty input, or the uppercased hint when
// unrecognized.
func DisplayName(hint string) string {
	trimmed := strings.TrimSpace(hint)
	if trimmed == "" {
		return "Unknown"
	}
	code := ToISO2(trimmed)
	if code == "" {
		return strings.ToUpper(trimmed)
	}
	tag := language.MustParse(code)
	return display.English.Tags().Name(tag)
}

// ExtractFromTags extracts and normalizes the language from stream metadata
// tags. Checks common tag keys: language, LANGUAGE, Language, language_ietf,
// lang, LANG.
func ExtractFromTags(tags map[string]string) string {
	if len(tags) == 0 {
		return ""
	}
	keys := []string{"language", "LANGUAGE", "Language", "language_ietf", "lang", "LANG"}
	for _, key := range keys {
		if value, ok := tags[key]; ok {
			value = strings.TrimSpace(strings.ReplaceAll(value, "\u0000", ""))
			if value != "" {
				return strings.ToLower(value)
			}
		}
	}
	return ""
}
