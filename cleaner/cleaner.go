// Package cleaner normalizes transcript text for summarization:
// lowercasing, punctuation removal, whitespace collapsing, and
// language-specific stopword filtering.
package cleaner

import (
	"regexp"
	"strings"

	"github.com/skillsenselab/meetingminds/transcript"
)

var (
	// symbolRe strips punctuation and symbols while keeping letters in
	// any script (accented characters included), digits, underscores,
	// and whitespace.
	symbolRe = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	spaceRe  = regexp.MustCompile(`\s+`)
)

// Cleaner applies text normalization with a fixed stopword set.
type Cleaner struct {
	language  string
	stopwords map[string]struct{}
}

// New creates a Cleaner for the given ISO 639-1 language code. When
// stopwords are provided they replace the built-in set for that
// language; languages without a built-in set fall back to English.
func New(language string, stopwords ...string) *Cleaner {
	if len(stopwords) == 0 {
		stopwords = defaultStopwords(language)
	}
	set := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		set[w] = struct{}{}
	}
	return &Cleaner{language: language, stopwords: set}
}

// Language returns the language code the Cleaner was built for.
func (c *Cleaner) Language() string { return c.language }

// CleanText lowercases the text, removes punctuation and symbols,
// collapses runs of whitespace, and drops stopwords.
func (c *Cleaner) CleanText(text string) string {
	text = strings.ToLower(text)
	text = symbolRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))

	words := strings.Fields(text)
	kept := words[:0]
	for _, w := range words {
		if _, drop := c.stopwords[w]; !drop {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// CleanTranscript returns a new diarized transcript with every segment
// text and the full text cleaned. The input is not modified; segment
// boundaries and speaker labels are copied as-is, and segments whose
// text cleans down to nothing are kept with empty text.
func (c *Cleaner) CleanTranscript(dt *transcript.DiarizedTranscript) *transcript.DiarizedTranscript {
	if dt == nil {
		return nil
	}
	out := &transcript.DiarizedTranscript{
		Segments: make([]transcript.DiarizedSegment, len(dt.Segments)),
		FullText: c.CleanText(dt.FullText),
	}
	for i, seg := range dt.Segments {
		out.Segments[i] = transcript.DiarizedSegment{
			Start:   seg.Start,
			End:     seg.End,
			Speaker: seg.Speaker,
			Text:    c.CleanText(seg.Text),
		}
	}
	return out
}
