package notegen

import (
	"context"
	"log/slog"

	"github.com/Atharva2922/notesgenai/ai/purpose"
)

// HeuristicGenerator deterministically synthesizes a structured note from the
// raw text, without any external calls. It is the safety net behind the
// remote generator and never fails on any input.
type HeuristicGenerator struct{}

// NewHeuristicGenerator creates the fallback generator.
func NewHeuristicGenerator() *HeuristicGenerator {
	return &HeuristicGenerator{}
}

// Generate implements Generator. The returned error is always nil.
func (g *HeuristicGenerator) Generate(_ context.Context, req *Request) (*StructuredNote, error) {
	// Recover content and instruction from the same composed blob the remote
	// arm sends, so both arms agree on what the instruction was.
	content, instruction := splitActionRequest(composeUserContent(req.RawContent, req.Purpose))
	if content == "" {
		content = req.RawContent
	}

	tag := purpose.TagDefault
	if req.Purpose != nil {
		tag = req.Purpose.Tag
	} else {
		tag = purpose.Classify(instruction)
	}

	slog.Debug("notegen: heuristic synthesis",
		"purpose", string(tag),
		"content_length", len(content),
	)

	return Render(tag, content, req.Config, instruction), nil
}
