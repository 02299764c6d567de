package notegen

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Atharva2922/notesgenai/ai/core/llm"
	"github.com/Atharva2922/notesgenai/ai/metrics"
	"github.com/Atharva2922/notesgenai/ai/purpose"
)

// Request carries one note generation call. Purpose is optional; when nil the
// effective purpose is classified from the recovered instruction text.
type Request struct {
	RawContent string
	Config     GenerationConfig
	Purpose    *purpose.Definition
}

// Generator produces a structured note from a request. Two implementations
// exist: RemoteGenerator (LLM-backed) and HeuristicGenerator (deterministic).
type Generator interface {
	Generate(ctx context.Context, req *Request) (*StructuredNote, error)
}

// Generation sources, used for metrics and note records.
const (
	SourceLLM      = "llm"
	SourceFallback = "fallback"
)

// chatApology is returned when the chat path cannot reach the LLM.
const chatApology = "Sorry, I could not reach the AI service right now. Please try again in a moment."

// batchConcurrency bounds concurrent LLM calls during bulk reprocessing.
const batchConcurrency = 4

// Service orchestrates note generation: it tries the remote generator first
// and falls back to heuristic synthesis on any failure. Stateless and safe
// for concurrent use.
type Service struct {
	llm      llm.Service // nil when AI is disabled
	remote   Generator
	fallback Generator
	metrics  *metrics.Recorder // optional
}

// NewService creates the generation service. llmSvc may be nil, in which case
// every call takes the fallback path. recorder may be nil to disable metrics.
func NewService(llmSvc llm.Service, recorder *metrics.Recorder) *Service {
	var remote Generator
	if llmSvc != nil {
		remote = NewRemoteGenerator(llmSvc, recorder)
	}
	return &Service{
		llm:      llmSvc,
		remote:   remote,
		fallback: NewHeuristicGenerator(),
		metrics:  recorder,
	}
}

// GenerateNote produces a structured note for rawContent. It never returns an
// error: a failed or malformed remote call triggers immediate heuristic
// synthesis, with no retries against the external service. Callers always get
// a usable note; fallback notes are distinguishable by their tag set.
func (s *Service) GenerateNote(ctx context.Context, rawContent string, cfg GenerationConfig, def *purpose.Definition) (*StructuredNote, error) {
	req := &Request{
		RawContent: rawContent,
		Config:     cfg.withDefaults(),
		Purpose:    def,
	}

	requestID := uuid.NewString()
	start := time.Now()

	if s.remote != nil {
		note, err := s.remote.Generate(ctx, req)
		if err == nil {
			s.record(SourceLLM, def, time.Since(start))
			slog.Info("notegen: note generated",
				"request_id", requestID,
				"source", SourceLLM,
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return note, nil
		}
		slog.Warn("notegen: remote generation failed, falling back",
			"request_id", requestID,
			"error", err,
		)
	}

	note, _ := s.fallback.Generate(ctx, req)
	s.record(SourceFallback, def, time.Since(start))
	slog.Info("notegen: note generated",
		"request_id", requestID,
		"source", SourceFallback,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return note, nil
}

// GenerateBatch processes independent inputs concurrently, preserving input
// order in the result. Individual failures are absorbed the same way as in
// GenerateNote, so the result has exactly one note per input.
func (s *Service) GenerateBatch(ctx context.Context, inputs []Request) []*StructuredNote {
	notes := make([]*StructuredNote, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i := range inputs {
		i := i
		g.Go(func() error {
			in := inputs[i]
			note, _ := s.GenerateNote(ctx, in.RawContent, in.Config, in.Purpose)
			notes[i] = note
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	return notes
}

// Warmup pings the LLM once so the first real call does not pay for
// connection setup. No-op when AI is disabled.
func (s *Service) Warmup(ctx context.Context) {
	if s.llm == nil {
		return
	}
	s.llm.Warmup(ctx)
}

// ChatWithAI performs a single free-form chat turn over the given history.
// On any failure it returns a plain apology string instead of an error.
func (s *Service) ChatWithAI(ctx context.Context, history []llm.Message) string {
	if s.llm == nil {
		s.recordChat("error")
		return chatApology
	}

	content, stats, err := s.llm.Chat(ctx, history)
	if err != nil || content == "" {
		slog.Warn("notegen: chat failed", "error", err)
		s.recordChat("error")
		return chatApology
	}

	s.recordChat("ok")
	if s.metrics != nil && stats != nil {
		s.metrics.RecordTokens(stats.PromptTokens, stats.CompletionTokens)
	}
	return content
}

// AnalyzeImageNote asks the LLM to describe an image as a structured note.
// This path has no heuristic synthesis: on any failure the result is an
// apology note rather than an error.
func (s *Service) AnalyzeImageNote(ctx context.Context, image []byte, mimeType, prompt string) *StructuredNote {
	apology := &StructuredNote{
		Title:            "Image Note",
		Summary:          "",
		FormattedContent: chatApology,
		Tags:             []string{"image"},
	}

	if s.llm == nil {
		return apology
	}

	if prompt == "" {
		prompt = "Describe this image as a note."
	}
	prompt += " Respond with a single JSON object with the fields title, summary, formattedContent (Markdown) and tags."

	content, stats, err := s.llm.ChatVision(ctx, prompt, image, mimeType)
	if err != nil {
		slog.Warn("notegen: image analysis failed", "error", err)
		return apology
	}
	if s.metrics != nil && stats != nil {
		s.metrics.RecordTokens(stats.PromptTokens, stats.CompletionTokens)
	}

	note, err := parseStructuredNote(content)
	if err != nil {
		slog.Warn("notegen: image analysis returned malformed payload", "error", err)
		return apology
	}
	return note
}

func (s *Service) record(source string, def *purpose.Definition, d time.Duration) {
	if s.metrics == nil {
		return
	}
	tag := string(purpose.TagDefault)
	if def != nil {
		tag = string(def.Tag)
	}
	s.metrics.RecordGeneration(source, tag, d)
}

func (s *Service) recordChat(status string) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordChatRequest(status)
}
