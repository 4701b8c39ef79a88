package meeting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown formats a pipeline result as a markdown document:
// a metadata header followed by timestamped, speaker-tagged lines and
// the summary when one was produced.
func RenderMarkdown(res *Result) string {
	var b strings.Builder
	b.WriteString("# Meeting Transcript\n\n")

	if res.AudioPath != "" {
		fmt.Fprintf(&b, "- Source: `%s`\n", res.AudioPath)
	}
	if res.JobID != "" {
		fmt.Fprintf(&b, "- Job: `%s`\n", res.JobID)
	}
	if res.Language != "" {
		fmt.Fprintf(&b, "- Language: %s\n", res.Language)
	}
	if res.Diarization != nil && res.Diarization.NumSpeakers > 0 {
		fmt.Fprintf(&b, "- Speakers: %d\n", res.Diarization.NumSpeakers)
	}
	if res.Transcription != nil && res.Transcription.Duration > 0 {
		d := time.Duration(res.Transcription.Duration*1000) * time.Millisecond
		fmt.Fprintf(&b, "- Duration: %s\n", d.Truncate(time.Second))
	}
	b.WriteString("\n---\n\n")

	if res.DiarizedTranscript != nil {
		for _, seg := range res.DiarizedTranscript.Segments {
			fmt.Fprintf(&b, "[%s-%s] %s: %s\n\n",
				secToTS(seg.Start), secToTS(seg.End), seg.Speaker, strings.TrimSpace(seg.Text))
		}
	}

	if res.Summary != "" {
		b.WriteString("## Summary\n\n")
		b.WriteString(res.Summary)
		b.WriteString("\n")
	}
	return b.String()
}

func secToTS(sec float64) string {
	d := time.Duration(sec*1000) * time.Millisecond
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
