// Package summarize turns a diarized transcript into a meeting summary
// using a configured LLM provider.
package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/skillsenselab/meetingminds/errors"
	"github.com/skillsenselab/meetingminds/llm"
	"github.com/skillsenselab/meetingminds/transcript"
)

// Summarizer produces meeting summaries through an LLM backend.
type Summarizer struct {
	provider llm.Provider
	model    string
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithModel overrides the provider's default model.
func WithModel(model string) Option {
	return func(s *Summarizer) { s.model = model }
}

// New creates a Summarizer backed by the given LLM provider.
func New(p llm.Provider, opts ...Option) *Summarizer {
	s := &Summarizer{provider: p}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Summarize sends the text to the LLM with language-appropriate
// instructions and returns the summary.
func (s *Summarizer) Summarize(ctx context.Context, text, language string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errors.MissingField("text")
	}

	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Model: s.model,
		Messages: []llm.Message{
			{Role: "user", Content: buildPrompt(text, language)},
		},
	})
	if err != nil {
		return "", errors.ExternalService(s.provider.Name(), err)
	}
	return strings.TrimSpace(resp.Content), nil
}

// SummarizeTranscript renders the diarized transcript as speaker-tagged
// lines and summarizes that, so the model sees who said what.
func (s *Summarizer) SummarizeTranscript(ctx context.Context, dt *transcript.DiarizedTranscript, language string) (string, error) {
	if dt == nil {
		return "", errors.MissingField("transcript")
	}
	var b strings.Builder
	for _, seg := range dt.Segments {
		if seg.Text == "" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", seg.Speaker, seg.Text)
	}
	text := b.String()
	if text == "" {
		text = dt.FullText
	}
	return s.Summarize(ctx, text, language)
}

// buildPrompt selects instructions by language. Anything other than
// Spanish gets the English instructions.
func buildPrompt(text, language string) string {
	instructions := "Summarize the following meeting transcript, keeping key points and who said what."
	if language == "es" {
		instructions = "Resume la siguiente transcripción de una reunión, manteniendo los puntos clave y quién dijo qué."
	}
	return fmt.Sprintf("%s\n\nTranscript:\n%s\n\nSummary:", instructions, text)
}
