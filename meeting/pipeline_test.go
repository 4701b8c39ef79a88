package meeting

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/skillsenselab/meetingminds/diarization"
	"github.com/skillsenselab/meetingminds/errors"
	"github.com/skillsenselab/meetingminds/llm"
	"github.com/skillsenselab/meetingminds/resilience"
	"github.com/skillsenselab/meetingminds/summarize"
	"github.com/skillsenselab/meetingminds/transcription"
)

type stubTranscriber struct {
	result  *transcription.Result
	err     error
	calls   int
	lastReq transcription.Request
}

func (s *stubTranscriber) Name() string                         { return "stub-transcriber" }
func (s *stubTranscriber) IsAvailable(ctx context.Context) bool { return true }
func (s *stubTranscriber) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Result, error) {
	s.calls++
	s.lastReq = req
	return s.result, s.err
}

// fastRetry keeps failing-backend tests from sleeping through the
// default backoff schedule.
func fastRetry() Option {
	return WithRetry(resilience.RetryConfig{MaxAttempts: 2, InitialDelay: time.Millisecond})
}

type stubDiarizer struct {
	result  *diarization.Result
	err     error
	lastReq diarization.Request
}

func (s *stubDiarizer) Name() string                         { return "stub-diarizer" }
func (s *stubDiarizer) IsAvailable(ctx context.Context) bool { return true }
func (s *stubDiarizer) Diarize(ctx context.Context, req diarization.Request) (*diarization.Result, error) {
	s.lastReq = req
	return s.result, s.err
}

type stubLLM struct {
	reply string
	err   error
}

func (s *stubLLM) Name() string                         { return "stub-llm" }
func (s *stubLLM) IsAvailable(ctx context.Context) bool { return true }
func (s *stubLLM) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llm.CompletionResponse{Content: s.reply}, nil
}

func englishFixtures() (*stubTranscriber, *stubDiarizer) {
	tr := &stubTranscriber{result: &transcription.Result{
		Segments: []transcription.Segment{
			{Start: 0, End: 5, Text: "We should review the budget for this quarter."},
			{Start: 5, End: 10, Text: "I agree, the numbers look much better than before."},
		},
		FullText: "We should review the budget for this quarter. I agree, the numbers look much better than before.",
		Duration: 10,
	}}
	di := &stubDiarizer{result: &diarization.Result{
		Segments: []diarization.Turn{
			{Start: 0, End: 5, Speaker: "SPEAKER_00"},
			{Start: 5, End: 10, Speaker: "SPEAKER_01"},
		},
		NumSpeakers: 2,
	}}
	return tr, di
}

func TestPipelineRun_AllStages(t *testing.T) {
	tr, di := englishFixtures()
	p := NewPipeline(tr, di)

	res, err := p.Run(context.Background(), Request{AudioPath: "meeting.wav"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.JobID == "" {
		t.Error("expected a job id")
	}
	if res.Transcription != tr.result {
		t.Error("transcription result not carried through")
	}
	if res.Diarization != di.result {
		t.Error("diarization result not carried through")
	}
	if res.DiarizedTranscript == nil || len(res.DiarizedTranscript.Segments) != 2 {
		t.Fatalf("expected 2 diarized segments, got %+v", res.DiarizedTranscript)
	}
	if got := res.DiarizedTranscript.Segments[0].Text; got != "We should review the budget for this quarter." {
		t.Errorf("unexpected first segment text: %q", got)
	}
	if res.Language != "en" {
		t.Errorf("expected detected language en, got %q", res.Language)
	}
	if res.CleanedTranscript == nil {
		t.Fatal("expected cleaned transcript")
	}
	// Cleaning lowercases and drops stopwords but keeps content words.
	if got := res.CleanedTranscript.Segments[0].Text; !strings.Contains(got, "budget") || strings.Contains(got, "the ") {
		t.Errorf("unexpected cleaned text: %q", got)
	}
	if res.Summary != "" {
		t.Errorf("summary not requested but got %q", res.Summary)
	}
}

func TestPipelineRun_RequestForwarding(t *testing.T) {
	tr, di := englishFixtures()
	p := NewPipeline(tr, di)

	_, err := p.Run(context.Background(), Request{
		AudioPath:   "meeting.wav",
		Language:    "en",
		NumSpeakers: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.lastReq.AudioPath != "meeting.wav" || tr.lastReq.Language != "en" {
		t.Errorf("transcription request not forwarded: %+v", tr.lastReq)
	}
	if di.lastReq.NumSpeakers != 3 {
		t.Errorf("diarization request not forwarded: %+v", di.lastReq)
	}
}

func TestPipelineRun_WithSummarizer(t *testing.T) {
	tr, di := englishFixtures()
	p := NewPipeline(tr, di, WithSummarizer(summarize.New(&stubLLM{reply: "Budget reviewed."})))

	res, err := p.Run(context.Background(), Request{AudioPath: "meeting.wav", Summarize: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Summary != "Budget reviewed." {
		t.Errorf("expected summary, got %q", res.Summary)
	}
}

func TestPipelineRun_SummarizeWithoutSummarizer(t *testing.T) {
	tr, di := englishFixtures()
	p := NewPipeline(tr, di)

	_, err := p.Run(context.Background(), Request{AudioPath: "meeting.wav", Summarize: true})
	if err == nil {
		t.Fatal("expected error when summarizer is not configured")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeServiceUnavailable {
		t.Errorf("expected SERVICE_UNAVAILABLE, got %v", err)
	}
}

func TestPipelineRun_MissingAudioPath(t *testing.T) {
	tr, di := englishFixtures()
	p := NewPipeline(tr, di)

	_, err := p.Run(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error for missing audio path")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeMissingField {
		t.Errorf("expected MISSING_FIELD, got %v", err)
	}
}

func TestPipelineRun_TranscriptionFailureStopsRun(t *testing.T) {
	tr := &stubTranscriber{err: errors.ConnectionFailed("whisper service")}
	_, di := englishFixtures()
	p := NewPipeline(tr, di, fastRetry())

	_, err := p.Run(context.Background(), Request{AudioPath: "meeting.wav"})
	if err == nil {
		t.Fatal("expected transcription failure to surface")
	}
	if tr.calls != 2 {
		t.Errorf("expected the unreachable backend to be retried once, got %d calls", tr.calls)
	}
	if di.lastReq.AudioPath != "" {
		t.Error("diarization should not run after transcription fails")
	}
}

func TestPipelineRun_NonRetryableBackendErrorIsNotRetried(t *testing.T) {
	tr := &stubTranscriber{err: errors.InvalidInput("audio_path", "unsupported container")}
	_, di := englishFixtures()
	p := NewPipeline(tr, di, fastRetry())

	_, err := p.Run(context.Background(), Request{AudioPath: "meeting.avi"})
	if err == nil {
		t.Fatal("expected transcription failure to surface")
	}
	if tr.calls != 1 {
		t.Errorf("invalid input must not be retried, got %d calls", tr.calls)
	}
}

func TestPipelineRun_MergeFailurePropagates(t *testing.T) {
	tr, di := englishFixtures()
	// Corrupt one transcription interval so the merge rejects the input.
	tr.result.Segments[0].Start = 7
	tr.result.Segments[0].End = 3
	p := NewPipeline(tr, di)

	_, err := p.Run(context.Background(), Request{AudioPath: "meeting.wav"})
	if err == nil {
		t.Fatal("expected merge failure to surface")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestPipelineRun_UndetectableLanguageFallsBackToEnglishCleaning(t *testing.T) {
	tr := &stubTranscriber{result: &transcription.Result{
		Segments: []transcription.Segment{{Start: 0, End: 1, Text: "9472 13"}},
		FullText: "9472 13",
	}}
	di := &stubDiarizer{result: &diarization.Result{
		Segments:    []diarization.Turn{{Start: 0, End: 1, Speaker: "SPEAKER_00"}},
		NumSpeakers: 1,
	}}
	p := NewPipeline(tr, di)

	res, err := p.Run(context.Background(), Request{AudioPath: "numbers.wav"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Language != "" {
		t.Errorf("expected no language for numeric text, got %q", res.Language)
	}
	if res.CleanedTranscript == nil {
		t.Error("cleaning must still run without a detected language")
	}
}

func TestPipelineRun_UniqueJobIDs(t *testing.T) {
	tr, di := englishFixtures()
	p := NewPipeline(tr, di)

	a, err := p.Run(context.Background(), Request{AudioPath: "a.wav"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := p.Run(context.Background(), Request{AudioPath: "b.wav"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.JobID == b.JobID {
		t.Errorf("job ids must be unique, both were %q", a.JobID)
	}
}
