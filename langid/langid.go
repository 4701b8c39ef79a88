// Package langid detects the dominant language of transcript text.
// It wraps lingua-go, which works offline on statistical language
// models, so detection adds no network dependency to the pipeline.
package langid

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// byCode maps supported ISO 639-1 codes to lingua languages. The set is
// deliberately small: a narrow candidate list keeps lingua accurate on
// the short, noisy text meetings produce.
var byCode = map[string]lingua.Language{
	"en": lingua.English,
	"es": lingua.Spanish,
	"fr": lingua.French,
	"de": lingua.German,
	"it": lingua.Italian,
	"pt": lingua.Portuguese,
}

// DefaultLanguages is the candidate set used when none is configured.
var DefaultLanguages = []string{"en", "es"}

// Detector identifies the language of a text among a fixed candidate set.
type Detector struct {
	detector lingua.LanguageDetector
}

// New creates a Detector restricted to the given ISO 639-1 codes.
// Unknown codes are ignored; an empty or fully-unknown list falls back
// to DefaultLanguages.
func New(codes ...string) *Detector {
	langs := make([]lingua.Language, 0, len(codes))
	for _, c := range codes {
		if l, ok := byCode[strings.ToLower(c)]; ok {
			langs = append(langs, l)
		}
	}
	if len(langs) < 2 {
		langs = langs[:0]
		for _, c := range DefaultLanguages {
			langs = append(langs, byCode[c])
		}
	}
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(langs...).
			Build(),
	}
}

// Detect returns the ISO 639-1 code of the detected language. The second
// return is false when the text is empty or no language can be decided,
// mirroring how upstream consumers treat detection as best-effort.
func (d *Detector) Detect(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}
