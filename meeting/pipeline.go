package meeting

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/skillsenselab/meetingminds/cleaner"
	"github.com/skillsenselab/meetingminds/diarization"
	"github.com/skillsenselab/meetingminds/errors"
	"github.com/skillsenselab/meetingminds/langid"
	"github.com/skillsenselab/meetingminds/logger"
	"github.com/skillsenselab/meetingminds/observability"
	"github.com/skillsenselab/meetingminds/resilience"
	"github.com/skillsenselab/meetingminds/summarize"
	"github.com/skillsenselab/meetingminds/transcript"
	"github.com/skillsenselab/meetingminds/transcription"
)

// cleanerLanguages are the languages with a dedicated stopword list;
// anything else cleans with the English rules.
var cleanerLanguages = map[string]bool{"en": true, "es": true}

// Pipeline runs the full meeting processing sequence: transcribe,
// diarize, merge, detect language, clean, and optionally summarize.
type Pipeline struct {
	transcriber transcription.Provider
	diarizer    diarization.Provider
	detector    *langid.Detector
	summarizer  *summarize.Summarizer
	metrics     *observability.PipelineMetrics
	retry       resilience.RetryConfig
	log         *logger.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSummarizer enables the summarization stage.
func WithSummarizer(s *summarize.Summarizer) Option {
	return func(p *Pipeline) { p.summarizer = s }
}

// WithDetector overrides the default language detector.
func WithDetector(d *langid.Detector) Option {
	return func(p *Pipeline) { p.detector = d }
}

// WithMetrics records run and stage metrics on the given instruments.
func WithMetrics(m *observability.PipelineMetrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// WithLogger overrides the default component logger.
func WithLogger(l *logger.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// WithRetry overrides the backoff schedule used for backend calls.
func WithRetry(cfg resilience.RetryConfig) Option {
	return func(p *Pipeline) { p.retry = cfg }
}

// NewPipeline creates a Pipeline with the given backends. Summarization
// is off unless WithSummarizer is supplied.
func NewPipeline(t transcription.Provider, d diarization.Provider, opts ...Option) *Pipeline {
	p := &Pipeline{
		transcriber: t,
		diarizer:    d,
		detector:    langid.New(langid.DefaultLanguages...),
		retry:       resilience.DefaultRetryConfig(),
		log:         logger.Get("meeting"),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Run processes one recording end to end. It fails on the first stage
// error; every stage that completed is still present on the returned
// Result only when the run succeeds.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	if req.AudioPath == "" {
		return nil, errors.MissingField("audio_path")
	}

	res := &Result{
		JobID:     uuid.NewString(),
		AudioPath: req.AudioPath,
	}
	log := p.log.WithFields(logger.Fields("job_id", res.JobID, "audio_path", req.AudioPath))

	ctx, span := observability.StartSpan(ctx, observability.SpanPipelineRun)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrJobID, res.JobID)
	observability.SetSpanAttribute(ctx, observability.AttrAudioPath, req.AudioPath)

	runStart := time.Now()
	if p.metrics != nil {
		p.metrics.RecordRunStart(ctx)
	}
	log.Info("pipeline started")

	err := p.runStages(ctx, req, res, log)

	status := "ok"
	if err != nil {
		status = "error"
		observability.SetSpanError(ctx, err)
		log.WithError(err).Error("pipeline failed", logger.DurationFields("pipeline", time.Since(runStart)))
	} else {
		log.Info("pipeline completed", logger.DurationFields("pipeline", time.Since(runStart)))
	}
	if p.metrics != nil {
		p.metrics.RecordRunEnd(ctx, status, time.Since(runStart))
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (p *Pipeline) runStages(ctx context.Context, req Request, res *Result, log *logger.Logger) error {
	// 1. Transcription.
	err := p.stage(ctx, observability.SpanTranscribe, log, func(ctx context.Context) error {
		tr, err := resilience.Retry(ctx, p.backendRetry(log, observability.SpanTranscribe),
			func(ctx context.Context) (*transcription.Result, error) {
				return p.transcriber.Transcribe(ctx, transcription.Request{
					AudioPath: req.AudioPath,
					Language:  req.Language,
				})
			})
		if err != nil {
			return err
		}
		res.Transcription = tr
		return nil
	})
	if err != nil {
		return err
	}

	// 2. Diarization.
	err = p.stage(ctx, observability.SpanDiarize, log, func(ctx context.Context) error {
		di, err := resilience.Retry(ctx, p.backendRetry(log, observability.SpanDiarize),
			func(ctx context.Context) (*diarization.Result, error) {
				return p.diarizer.Diarize(ctx, diarization.Request{
					AudioPath:   req.AudioPath,
					NumSpeakers: req.NumSpeakers,
				})
			})
		if err != nil {
			return err
		}
		res.Diarization = di
		return nil
	})
	if err != nil {
		return err
	}

	// 3. Merge transcription and diarization.
	err = p.stage(ctx, observability.SpanMerge, log, func(ctx context.Context) error {
		dt, err := transcript.Merge(res.Transcription, res.Diarization)
		if err != nil {
			return err
		}
		res.DiarizedTranscript = dt
		observability.SetSpanAttribute(ctx, observability.AttrNumSegments, len(dt.Segments))
		return nil
	})
	if err != nil {
		return err
	}

	// 4. Language detection. Best-effort: an undecidable text is not an
	// error, the cleaner just falls back to English rules.
	err = p.stage(ctx, observability.SpanDetectLang, log, func(ctx context.Context) error {
		if lang, ok := p.detector.Detect(res.DiarizedTranscript.FullText); ok {
			res.Language = lang
			observability.SetSpanAttribute(ctx, observability.AttrLanguage, lang)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// 5. Cleaning.
	err = p.stage(ctx, observability.SpanClean, log, func(ctx context.Context) error {
		lang := res.Language
		if !cleanerLanguages[lang] {
			lang = "en"
		}
		res.CleanedTranscript = cleaner.New(lang).CleanTranscript(res.DiarizedTranscript)
		return nil
	})
	if err != nil {
		return err
	}

	// 6. Summarization (optional).
	if !req.Summarize {
		return nil
	}
	if p.summarizer == nil {
		return errors.ServiceUnavailable("summarizer")
	}
	return p.stage(ctx, observability.SpanSummarize, log, func(ctx context.Context) error {
		summary, err := resilience.Retry(ctx, p.backendRetry(log, observability.SpanSummarize),
			func(ctx context.Context) (string, error) {
				return p.summarizer.SummarizeTranscript(ctx, res.CleanedTranscript, res.Language)
			})
		if err != nil {
			return err
		}
		res.Summary = summary
		return nil
	})
}

// backendRetry derives the retry schedule for one backend call. Only
// errors flagged retryable (unreachable or timed out backends) trigger
// another attempt.
func (p *Pipeline) backendRetry(log *logger.Logger, stage string) resilience.RetryConfig {
	cfg := p.retry
	cfg.RetryIf = func(err error) bool {
		if appErr, ok := errors.AsAppError(err); ok {
			return appErr.Retryable
		}
		return resilience.DefaultRetryIf(err)
	}
	cfg.OnRetry = func(attempt int, err error) {
		log.WithError(err).Warn("retrying backend call",
			logger.Fields("stage", stage, "attempt", attempt))
	}
	return cfg
}

// stage wraps one pipeline stage with a span, duration metrics, and
// completion logging.
func (p *Pipeline) stage(ctx context.Context, name string, log *logger.Logger, fn func(context.Context) error) error {
	ctx, span := observability.StartSpan(ctx, name)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)

	status := "ok"
	if err != nil {
		status = "error"
		observability.SetSpanError(ctx, err)
		if p.metrics != nil {
			p.metrics.RecordError(ctx, name, errType(err))
		}
		log.WithError(err).Error("stage failed", logger.Fields("stage", name))
	} else {
		log.Info("stage completed", logger.Fields("stage", name, "duration_ms", elapsed.Milliseconds()))
	}
	if p.metrics != nil {
		p.metrics.RecordStage(ctx, name, status, elapsed)
	}
	return err
}

// errType extracts a stable error classification for metrics.
func errType(err error) string {
	if appErr, ok := errors.AsAppError(err); ok {
		return string(appErr.Code)
	}
	return "unknown"
}
