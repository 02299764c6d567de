package notegen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Atharva2922/notesgenai/ai/core/llm"
	"github.com/Atharva2922/notesgenai/ai/metrics"
)

// RemoteGenerator delegates note structuring to the LLM service using a
// schema-constrained chat completion.
type RemoteGenerator struct {
	llm     llm.Service
	metrics *metrics.Recorder // optional
}

// NewRemoteGenerator creates an LLM-backed generator. recorder may be nil to
// disable token accounting.
func NewRemoteGenerator(llmSvc llm.Service, recorder *metrics.Recorder) *RemoteGenerator {
	return &RemoteGenerator{llm: llmSvc, metrics: recorder}
}

// structuredNoteSchema constrains the model response to the StructuredNote
// shape.
var structuredNoteSchema = &llm.ResponseSchema{
	Name:   "structured_note",
	Strict: true,
	Schema: &llm.JSONSchema{
		Type: "object",
		Properties: map[string]*llm.JSONSchema{
			"title": {
				Type:        "string",
				Description: "Short descriptive note title",
			},
			"summary": {
				Type:        "string",
				Description: "One or two sentence summary of the note",
			},
			"formattedContent": {
				Type:        "string",
				Description: "The full note body in Markdown",
			},
			"tags": {
				Type:     "array",
				Items:    &llm.JSONSchema{Type: "string"},
				MinItems: 3,
				MaxItems: 5,
			},
		},
		Required: []string{"title", "summary", "formattedContent", "tags"},
	},
}

// Generate implements Generator. Any transport failure, empty response or
// unparseable payload surfaces as an error for the orchestrator to recover
// from.
func (g *RemoteGenerator) Generate(ctx context.Context, req *Request) (*StructuredNote, error) {
	messages := []llm.Message{
		llm.SystemPrompt(composeSystemInstruction(req.Config, req.Purpose)),
		llm.UserMessage(composeUserContent(req.RawContent, req.Purpose)),
	}

	content, stats, err := g.llm.ChatStructured(ctx, messages, structuredNoteSchema)
	if err != nil {
		return nil, fmt.Errorf("LLM note generation failed: %w", err)
	}

	note, err := parseStructuredNote(content)
	if err != nil {
		return nil, err
	}

	if stats != nil {
		if g.metrics != nil {
			g.metrics.RecordTokens(stats.PromptTokens, stats.CompletionTokens)
		}
		slog.Debug("notegen: remote generation succeeded",
			"total_tokens", stats.TotalTokens,
			"duration_ms", stats.TotalDurationMs,
		)
	}

	return note, nil
}

// parseStructuredNote decodes the model output into a StructuredNote. The
// output is trusted as-is once it parses; no field-level validation happens
// on the happy path.
func parseStructuredNote(content string) (*StructuredNote, error) {
	// Strip markdown code block wrapper if present
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var note StructuredNote
	if err := json.Unmarshal([]byte(content), &note); err != nil {
		return nil, fmt.Errorf("malformed structured note payload: %w", err)
	}
	return &note, nil
}
