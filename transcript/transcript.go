package transcript

import (
	"fmt"
	"math"
	"strings"

	"github.com/skillsenselab/meetingminds/diarization"
	"github.com/skillsenselab/meetingminds/errors"
	"github.com/skillsenselab/meetingminds/transcription"
)

// DiarizedSegment is one speaker turn with the transcript text attributed
// to it. Created only by Merge.
type DiarizedSegment struct {
	// Start is the turn start time in seconds, copied from the
	// diarization turn.
	Start float64 `json:"start"`
	// End is the turn end time in seconds, copied from the diarization turn.
	End float64 `json:"end"`
	// Speaker is the speaker label, copied from the diarization turn.
	Speaker string `json:"speaker"`
	// Text is the space-joined text of every transcript segment that
	// overlaps the turn. Never empty: turns with no overlapping text
	// are dropped.
	Text string `json:"text"`
}

// DiarizedTranscript is the speaker-attributed transcript. It is never
// mutated after creation; downstream transformations (such as cleaning)
// produce a new DiarizedTranscript so the original stays available for
// auditing.
type DiarizedTranscript struct {
	Segments []DiarizedSegment `json:"segments"`
	// FullText is carried through unchanged from the transcription
	// result. It is not recomputed from the diarized segments.
	FullText string `json:"full_text"`
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) strictly intersect. Intervals that merely touch at a
// boundary do not overlap, and two zero-length intervals at the same
// instant never overlap each other.
func Overlaps(aStart, aEnd, bStart, bEnd float64) bool {
	return aEnd > bStart && aStart < bEnd
}

// Merge attributes transcript text to speaker turns by temporal overlap,
// producing a diarized transcript.
//
// Turns are visited in the order the diarization backend produced them;
// no re-sorting happens on either input. For each turn, the text of every
// transcript segment overlapping it (per Overlaps) is joined with single
// spaces in transcript order. Turns with no overlapping text are dropped.
// Turn boundaries and speaker labels are copied verbatim, and FullText is
// carried through from the transcription result untouched.
//
// The same transcript text can appear in several output segments when
// multiple turns overlap one transcript segment, and text is not trimmed
// to the intersected time window. Both behaviors are intentional.
//
// Merge performs no I/O and is safe to call concurrently on independent
// inputs. It fails atomically with an INVALID_INPUT error if any input
// segment has start > end or a non-finite or negative timestamp.
func Merge(tr *transcription.Result, di *diarization.Result) (*DiarizedTranscript, error) {
	if tr == nil {
		return nil, errors.MissingField("transcript")
	}
	if di == nil {
		return nil, errors.MissingField("diarization")
	}
	for i, seg := range tr.Segments {
		if err := validateInterval(fmt.Sprintf("transcript.segments[%d]", i), seg.Start, seg.End); err != nil {
			return nil, err
		}
	}
	for i, turn := range di.Segments {
		if err := validateInterval(fmt.Sprintf("diarization.segments[%d]", i), turn.Start, turn.End); err != nil {
			return nil, err
		}
	}

	out := &DiarizedTranscript{
		Segments: make([]DiarizedSegment, 0, len(di.Segments)),
		FullText: tr.FullText,
	}

	for _, turn := range di.Segments {
		var texts []string
		for _, seg := range tr.Segments {
			if Overlaps(seg.Start, seg.End, turn.Start, turn.End) {
				texts = append(texts, seg.Text)
			}
		}
		if len(texts) == 0 {
			continue
		}
		out.Segments = append(out.Segments, DiarizedSegment{
			Start:   turn.Start,
			End:     turn.End,
			Speaker: turn.Speaker,
			Text:    strings.Join(texts, " "),
		})
	}

	return out, nil
}

// validateInterval enforces the input contract: finite, non-negative
// timestamps with start <= end.
func validateInterval(field string, start, end float64) *errors.AppError {
	switch {
	case math.IsNaN(start) || math.IsInf(start, 0):
		return errors.InvalidInput(field+".start", "must be a finite number")
	case math.IsNaN(end) || math.IsInf(end, 0):
		return errors.InvalidInput(field+".end", "must be a finite number")
	case start < 0:
		return errors.InvalidInput(field+".start", "must not be negative")
	case end < 0:
		return errors.InvalidInput(field+".end", "must not be negative")
	case start > end:
		return errors.InvalidInput(field, fmt.Sprintf("start (%v) must not exceed end (%v)", start, end))
	}
	return nil
}
