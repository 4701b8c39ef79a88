// Command meetingminds processes meeting recordings: transcription,
// speaker diarization, transcript alignment, language detection, text
// cleaning, and optional LLM summarization. It runs either as an HTTP
// service or as a one-shot CLI over a single audio file.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/skillsenselab/meetingminds/config"
	"github.com/skillsenselab/meetingminds/diarization"
	"github.com/skillsenselab/meetingminds/diarization/pyannote"
	"github.com/skillsenselab/meetingminds/langid"
	"github.com/skillsenselab/meetingminds/llm"
	"github.com/skillsenselab/meetingminds/llm/ollama"
	"github.com/skillsenselab/meetingminds/logger"
	"github.com/skillsenselab/meetingminds/meeting"
	"github.com/skillsenselab/meetingminds/observability"
	"github.com/skillsenselab/meetingminds/server"
	"github.com/skillsenselab/meetingminds/summarize"
	"github.com/skillsenselab/meetingminds/transcription"
	"github.com/skillsenselab/meetingminds/transcription/whisper"
	"github.com/skillsenselab/meetingminds/version"
)

func main() {
	var (
		configFile  string
		audioFile   string
		outPath     string
		format      string
		language    string
		speakers    int
		doSummarize bool
	)
	flag.StringVar(&configFile, "config", "", "path to config.yml (default: standard search paths)")
	flag.StringVar(&audioFile, "file", "", "process a single audio file and exit instead of serving")
	flag.StringVar(&outPath, "output", "", "output path for one-shot mode (default: stdout)")
	flag.StringVar(&format, "format", "markdown", "one-shot output format: markdown|json")
	flag.StringVar(&language, "language", "", "language hint for transcription (e.g. en, es)")
	flag.IntVar(&speakers, "speakers", 0, "exact number of speakers (0 = auto-detect)")
	flag.BoolVar(&doSummarize, "summarize", false, "summarize the transcript in one-shot mode")
	flag.Parse()

	cfg := &appConfig{}
	var loadOpts []config.LoaderOption
	if configFile != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(configFile))
	}
	if err := config.LoadConfig("meetingminds", cfg, loadOpts...); err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging)
	log := logger.Get("main")
	log.Info("starting meetingminds", logger.Fields("version", version.Short(), "environment", cfg.Environment))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var metrics *observability.PipelineMetrics
	if cfg.Telemetry.Enabled {
		shutdown, m, err := initTelemetry(ctx, cfg)
		if err != nil {
			log.Fatal("telemetry init failed", logger.Fields("error", err.Error()))
		}
		defer shutdown()
		metrics = m
	}

	pipeline, checkers, err := buildPipeline(cfg, metrics, doSummarize || cfg.Summarizer.Enabled)
	if err != nil {
		log.Fatal("pipeline init failed", logger.Fields("error", err.Error()))
	}

	if audioFile != "" {
		if err := runFile(ctx, pipeline, audioFile, outPath, format, language, speakers, doSummarize); err != nil {
			log.Fatal("processing failed", logger.Fields("file", audioFile, "error", err.Error()))
		}
		return
	}

	runServe(ctx, cfg, pipeline, checkers, log)
}

// initTelemetry starts the OTLP tracer and meter and returns a combined
// shutdown func plus the pipeline metric instruments.
func initTelemetry(ctx context.Context, cfg *appConfig) (func(), *observability.PipelineMetrics, error) {
	tcfg := observability.DefaultTracerConfig(cfg.Name)
	tcfg.ServiceVersion = cfg.Version
	tcfg.Environment = cfg.Environment
	tcfg.Endpoint = cfg.Telemetry.Endpoint
	tp, err := observability.InitTracer(ctx, tcfg)
	if err != nil {
		return nil, nil, err
	}

	mcfg := observability.DefaultMeterConfig(cfg.Name)
	mcfg.ServiceVersion = cfg.Version
	mcfg.Environment = cfg.Environment
	mcfg.Endpoint = cfg.Telemetry.Endpoint
	mp, err := observability.InitMeter(ctx, &mcfg)
	if err != nil {
		return nil, nil, err
	}

	metrics, err := observability.NewPipelineMetrics(observability.Meter(cfg.Name))
	if err != nil {
		return nil, nil, err
	}

	shutdown := func() {
		shutdownCtx := context.Background()
		_ = tp.Shutdown(shutdownCtx)
		_ = mp.Shutdown(shutdownCtx)
	}
	return shutdown, metrics, nil
}

// buildPipeline registers and initializes the backend providers and
// assembles the processing pipeline.
func buildPipeline(cfg *appConfig, metrics *observability.PipelineMetrics, withSummarizer bool) (*meeting.Pipeline, []server.Availability, error) {
	tm := transcription.NewManager()
	tm.Register(whisper.ProviderName, whisper.Factory())
	if err := tm.Initialize(whisper.ProviderName, map[string]any{
		"url":      cfg.Whisper.URL,
		"model":    cfg.Whisper.Model,
		"language": cfg.Whisper.Language,
		"timeout":  cfg.Whisper.Timeout,
	}); err != nil {
		return nil, nil, err
	}
	transcriber, err := tm.GetByName(whisper.ProviderName)
	if err != nil {
		return nil, nil, err
	}

	dm := diarization.NewManager()
	dm.Register(pyannote.ProviderName, pyannote.Factory())
	if err := dm.Initialize(pyannote.ProviderName, map[string]any{
		"base_url": cfg.Pyannote.BaseURL,
		"timeout":  cfg.Pyannote.Timeout,
	}); err != nil {
		return nil, nil, err
	}
	diarizer, err := dm.GetByName(pyannote.ProviderName)
	if err != nil {
		return nil, nil, err
	}

	opts := []meeting.Option{
		meeting.WithDetector(langid.New(cfg.Languages...)),
	}
	if metrics != nil {
		opts = append(opts, meeting.WithMetrics(metrics))
	}

	checkers := []server.Availability{transcriber, diarizer}

	if withSummarizer {
		lm := llm.NewManager()
		lm.Register(ollama.ProviderName, ollama.Factory())
		if err := lm.Initialize(ollama.ProviderName, map[string]any{
			"base_url":    cfg.Ollama.BaseURL,
			"model":       cfg.Ollama.Model,
			"temperature": cfg.Ollama.Temperature,
			"timeout":     cfg.Ollama.Timeout,
		}); err != nil {
			return nil, nil, err
		}
		llmProvider, err := lm.GetByName(ollama.ProviderName)
		if err != nil {
			return nil, nil, err
		}
		var sumOpts []summarize.Option
		if cfg.Summarizer.Model != "" {
			sumOpts = append(sumOpts, summarize.WithModel(cfg.Summarizer.Model))
		}
		opts = append(opts, meeting.WithSummarizer(summarize.New(llmProvider, sumOpts...)))
		checkers = append(checkers, llmProvider)
	}

	return meeting.NewPipeline(transcriber, diarizer, opts...), checkers, nil
}

// runFile processes a single recording and writes the result.
func runFile(ctx context.Context, p *meeting.Pipeline, audioFile, outPath, format, language string, speakers int, doSummarize bool) error {
	res, err := p.Run(ctx, meeting.Request{
		AudioPath:   audioFile,
		Language:    language,
		NumSpeakers: speakers,
		Summarize:   doSummarize,
	})
	if err != nil {
		return err
	}

	var out []byte
	switch format {
	case "json":
		out, err = json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		out = append(out, '\n')
	case "markdown":
		out = []byte(meeting.RenderMarkdown(res))
	default:
		return fmt.Errorf("unknown format %q (want markdown or json)", format)
	}

	if outPath == "" || outPath == "-" {
		_, err = os.Stdout.Write(out)
		return err
	}
	return os.WriteFile(outPath, out, 0o644)
}

// runServe starts the HTTP server and blocks until shutdown.
func runServe(ctx context.Context, cfg *appConfig, p *meeting.Pipeline, checkers []server.Availability, log *logger.Logger) {
	srv := server.New(cfg.Server, logger.GetGlobalLogger())
	srv.ApplyMiddleware()
	srv.RegisterHealth(cfg.Name, server.ProviderChecker(checkers...))

	handler := server.NewMeetingHandler(p, cfg.Server.UploadDir)
	handler.Register(srv.GinEngine())

	if err := srv.Start(ctx); err != nil {
		log.Fatal("server start failed", logger.Fields("error", err.Error()))
	}

	<-ctx.Done()
	if err := srv.Stop(context.Background()); err != nil {
		log.Error("server stop failed", logger.Fields("error", err.Error()))
	}
}
