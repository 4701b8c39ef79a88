package transcript

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/skillsenselab/meetingminds/diarization"
	apperrors "github.com/skillsenselab/meetingminds/errors"
	"github.com/skillsenselab/meetingminds/transcription"
)

func seg(start, end float64, text string) transcription.Segment {
	return transcription.Segment{Start: start, End: end, Text: text}
}

func turn(start, end float64, speaker string) diarization.Turn {
	return diarization.Turn{Start: start, End: end, Speaker: speaker}
}

func mustMerge(t *testing.T, tr *transcription.Result, di *diarization.Result) *DiarizedTranscript {
	t.Helper()
	got, err := Merge(tr, di)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	return got
}

func assertSegments(t *testing.T, got *DiarizedTranscript, want []DiarizedSegment) {
	t.Helper()
	if len(got.Segments) != len(want) {
		t.Fatalf("got %d segments, want %d: %+v", len(got.Segments), len(want), got.Segments)
	}
	for i := range want {
		if got.Segments[i] != want[i] {
			t.Errorf("segment %d = %+v, want %+v", i, got.Segments[i], want[i])
		}
	}
}

func TestMerge_TwoSegmentsOneTurn(t *testing.T) {
	tr := &transcription.Result{
		Segments: []transcription.Segment{seg(0, 2, "hello"), seg(2, 4, "world")},
		FullText: "hello world",
	}
	di := &diarization.Result{Segments: []diarization.Turn{turn(0, 3, "A")}}

	got := mustMerge(t, tr, di)
	assertSegments(t, got, []DiarizedSegment{
		{Start: 0, End: 3, Speaker: "A", Text: "hello world"},
	})
	if got.FullText != "hello world" {
		t.Errorf("full text = %q, want %q", got.FullText, "hello world")
	}
}

func TestMerge_BoundaryTouchIsNotOverlap(t *testing.T) {
	tr := &transcription.Result{
		Segments: []transcription.Segment{seg(0, 1, "hi")},
		FullText: "hi",
	}
	di := &diarization.Result{Segments: []diarization.Turn{turn(1, 2, "B")}}

	got := mustMerge(t, tr, di)
	if len(got.Segments) != 0 {
		t.Errorf("expected turn dropped on boundary touch, got %+v", got.Segments)
	}
	if got.FullText != "hi" {
		t.Errorf("full text must pass through even with no segments, got %q", got.FullText)
	}
}

func TestMerge_EmptyTranscriptDropsEveryTurn(t *testing.T) {
	tr := &transcription.Result{FullText: ""}
	di := &diarization.Result{Segments: []diarization.Turn{turn(0, 5, "A")}}

	got := mustMerge(t, tr, di)
	if len(got.Segments) != 0 {
		t.Errorf("expected no segments, got %+v", got.Segments)
	}
	if got.FullText != "" {
		t.Errorf("expected empty full text, got %q", got.FullText)
	}
}

func TestMerge_OneSegmentDuplicatedAcrossTurns(t *testing.T) {
	tr := &transcription.Result{
		Segments: []transcription.Segment{seg(0, 10, "x")},
		FullText: "x",
	}
	di := &diarization.Result{Segments: []diarization.Turn{turn(0, 2, "A"), turn(3, 5, "B")}}

	got := mustMerge(t, tr, di)
	assertSegments(t, got, []DiarizedSegment{
		{Start: 0, End: 2, Speaker: "A", Text: "x"},
		{Start: 3, End: 5, Speaker: "B", Text: "x"},
	})
}

func TestMerge_EmptyDiarization(t *testing.T) {
	tr := &transcription.Result{
		Segments: []transcription.Segment{seg(0, 2, "hello")},
		FullText: "the full text",
	}
	got := mustMerge(t, tr, &diarization.Result{})
	if len(got.Segments) != 0 {
		t.Errorf("expected empty output, got %+v", got.Segments)
	}
	if got.FullText != "the full text" {
		t.Errorf("full text = %q, want pass-through", got.FullText)
	}
}

func TestMerge_FullTextIsNotRecomputed(t *testing.T) {
	tr := &transcription.Result{
		Segments: []transcription.Segment{seg(0, 2, "segment text")},
		FullText: "an unrelated summary string",
	}
	di := &diarization.Result{Segments: []diarization.Turn{turn(0, 2, "A")}}

	got := mustMerge(t, tr, di)
	if got.FullText != "an unrelated summary string" {
		t.Errorf("full text = %q, want verbatim input full text", got.FullText)
	}
}

func TestMerge_OutputOrderFollowsTurnOrder(t *testing.T) {
	tr := &transcription.Result{
		Segments: []transcription.Segment{seg(0, 2, "early"), seg(5, 7, "late")},
		FullText: "early late",
	}
	// Turns deliberately out of time order; output must mirror input order.
	di := &diarization.Result{Segments: []diarization.Turn{turn(5, 7, "B"), turn(0, 2, "A")}}

	got := mustMerge(t, tr, di)
	assertSegments(t, got, []DiarizedSegment{
		{Start: 5, End: 7, Speaker: "B", Text: "late"},
		{Start: 0, End: 2, Speaker: "A", Text: "early"},
	})
}

func TestMerge_ConcatenationPreservesTranscriptOrder(t *testing.T) {
	// Segments overlap the turn in transcript order even though the
	// later one starts earlier in the turn window.
	tr := &transcription.Result{
		Segments: []transcription.Segment{seg(4, 6, "second"), seg(1, 3, "first")},
		FullText: "",
	}
	di := &diarization.Result{Segments: []diarization.Turn{turn(0, 10, "A")}}

	got := mustMerge(t, tr, di)
	if got.Segments[0].Text != "second first" {
		t.Errorf("text = %q, want transcript input order %q", got.Segments[0].Text, "second first")
	}
}

func TestMerge_DuplicateTurnsAreNotDeduplicated(t *testing.T) {
	tr := &transcription.Result{
		Segments: []transcription.Segment{seg(0, 2, "hello")},
		FullText: "hello",
	}
	di := &diarization.Result{Segments: []diarization.Turn{turn(0, 2, "A"), turn(0, 2, "A")}}

	got := mustMerge(t, tr, di)
	assertSegments(t, got, []DiarizedSegment{
		{Start: 0, End: 2, Speaker: "A", Text: "hello"},
		{Start: 0, End: 2, Speaker: "A", Text: "hello"},
	})
}

func TestMerge_ZeroLengthIntervalsNeverOverlap(t *testing.T) {
	tr := &transcription.Result{
		Segments: []transcription.Segment{seg(1, 1, "point"), seg(0, 2, "span")},
		FullText: "",
	}
	di := &diarization.Result{Segments: []diarization.Turn{
		turn(1, 1, "A"), // zero-length turn at the same instant as the point segment
		turn(2, 2, "B"), // zero-length turn touching the span boundary
		turn(0, 2, "C"), // real turn: picks up both segments
	}}

	// A zero-length turn never overlaps another zero-length interval at
	// the same instant, and touching a span boundary is not overlap.
	// Strictly inside a span, the predicate does hold: turn A sits inside
	// "span" (0,2).
	got := mustMerge(t, tr, di)
	assertSegments(t, got, []DiarizedSegment{
		{Start: 1, End: 1, Speaker: "A", Text: "span"},
		{Start: 0, End: 2, Speaker: "C", Text: "point span"},
	})
}

func TestMerge_PartialOverlapKeepsWholeText(t *testing.T) {
	// Only a sliver of the segment lies inside the turn; the full text is
	// still attributed, untrimmed.
	tr := &transcription.Result{
		Segments: []transcription.Segment{seg(0, 10, "a very long utterance")},
		FullText: "",
	}
	di := &diarization.Result{Segments: []diarization.Turn{turn(9.5, 12, "A")}}

	got := mustMerge(t, tr, di)
	if got.Segments[0].Text != "a very long utterance" {
		t.Errorf("text = %q, want untrimmed segment text", got.Segments[0].Text)
	}
}

func TestMerge_MixedDroppedAndKeptTurns(t *testing.T) {
	tr := &transcription.Result{
		Segments: []transcription.Segment{seg(0, 2, "kept")},
		FullText: "kept",
	}
	di := &diarization.Result{Segments: []diarization.Turn{
		turn(10, 12, "silent"),
		turn(1, 3, "A"),
		turn(20, 22, "silent-too"),
	}}

	got := mustMerge(t, tr, di)
	assertSegments(t, got, []DiarizedSegment{
		{Start: 1, End: 3, Speaker: "A", Text: "kept"},
	})
}

func TestMerge_NilInputs(t *testing.T) {
	if _, err := Merge(nil, &diarization.Result{}); err == nil {
		t.Error("expected error for nil transcript")
	}
	if _, err := Merge(&transcription.Result{}, nil); err == nil {
		t.Error("expected error for nil diarization")
	}
}

func TestMerge_InvalidInputs(t *testing.T) {
	valid := &transcription.Result{Segments: []transcription.Segment{seg(0, 1, "ok")}}

	tests := []struct {
		name string
		tr   *transcription.Result
		di   *diarization.Result
	}{
		{
			"transcript start after end",
			&transcription.Result{Segments: []transcription.Segment{seg(5, 2, "bad")}},
			&diarization.Result{},
		},
		{
			"turn start after end",
			valid,
			&diarization.Result{Segments: []diarization.Turn{turn(3, 1, "A")}},
		},
		{
			"negative transcript start",
			&transcription.Result{Segments: []transcription.Segment{seg(-1, 2, "bad")}},
			&diarization.Result{},
		},
		{
			"NaN turn end",
			valid,
			&diarization.Result{Segments: []diarization.Turn{turn(0, math.NaN(), "A")}},
		},
		{
			"infinite transcript end",
			&transcription.Result{Segments: []transcription.Segment{seg(0, math.Inf(1), "bad")}},
			&diarization.Result{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Merge(tt.tr, tt.di)
			if err == nil {
				t.Fatal("expected invalid-input error")
			}
			if got != nil {
				t.Errorf("expected no partial output, got %+v", got)
			}
			var appErr *apperrors.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("expected *AppError, got %T", err)
			}
			if appErr.Code != apperrors.ErrCodeInvalidInput {
				t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
			}
		})
	}
}

func TestMerge_InputsAreNotMutated(t *testing.T) {
	tr := &transcription.Result{
		Segments: []transcription.Segment{seg(0, 2, "hello"), seg(2, 4, "world")},
		FullText: "hello world",
	}
	di := &diarization.Result{Segments: []diarization.Turn{turn(0, 3, "A")}}

	_ = mustMerge(t, tr, di)

	if tr.Segments[0] != seg(0, 2, "hello") || tr.Segments[1] != seg(2, 4, "world") {
		t.Error("transcript segments mutated")
	}
	if di.Segments[0].Text != "" {
		t.Error("diarization turn text must stay unset")
	}
}

func TestMerge_ConcurrentCalls(t *testing.T) {
	tr := &transcription.Result{
		Segments: []transcription.Segment{seg(0, 2, "hello"), seg(2, 4, "world")},
		FullText: "hello world",
	}
	di := &diarization.Result{Segments: []diarization.Turn{turn(0, 3, "A")}}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Merge(tr, di)
			if err != nil {
				t.Errorf("Merge: %v", err)
				return
			}
			if len(got.Segments) != 1 || got.Segments[0].Text != "hello world" {
				t.Errorf("unexpected result %+v", got.Segments)
			}
		}()
	}
	wg.Wait()
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd float64
		want                       bool
	}{
		{"full containment", 1, 2, 0, 5, true},
		{"partial overlap", 0, 3, 2, 5, true},
		{"identical intervals", 1, 4, 1, 4, true},
		{"disjoint", 0, 1, 2, 3, false},
		{"touching at boundary", 0, 1, 1, 2, false},
		{"touching at boundary reversed", 1, 2, 0, 1, false},
		{"zero-length strictly inside span", 1, 1, 0, 2, true},
		{"zero-length at span start", 0, 0, 0, 2, false},
		{"zero-length at span end", 2, 2, 0, 2, false},
		{"zero-length vs identical zero-length", 1, 1, 1, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
				t.Errorf("Overlaps(%v,%v,%v,%v) = %v, want %v",
					tt.aStart, tt.aEnd, tt.bStart, tt.bEnd, got, tt.want)
			}
		})
	}
}
