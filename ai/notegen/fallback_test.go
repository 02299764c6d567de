package notegen

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Atharva2922/notesgenai/ai/purpose"
)

func TestSplitActionRequest(t *testing.T) {
	tests := []struct {
		name            string
		input           string
		wantContent     string
		wantInstruction string
	}{
		{
			name:            "single marker",
			input:           "Some content here.\n\nAction Requested: summarize this",
			wantContent:     "Some content here.",
			wantInstruction: "summarize this",
		},
		{
			name:            "no marker",
			input:           "Just plain content.",
			wantContent:     "Just plain content.",
			wantInstruction: "",
		},
		{
			name:            "last marker wins",
			input:           "A Action Requested: B Action Requested: C",
			wantContent:     "A Action Requested: B",
			wantInstruction: "C",
		},
		{
			name:            "empty input",
			input:           "",
			wantContent:     "",
			wantInstruction: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, instruction := splitActionRequest(tt.input)
			assert.Equal(t, tt.wantContent, content)
			assert.Equal(t, tt.wantInstruction, instruction)
		})
	}
}

func TestComposeUserContent(t *testing.T) {
	def := purpose.Lookup(purpose.TagSummary)
	require.NotNil(t, def)

	composed := composeUserContent("raw text", def)
	assert.True(t, strings.HasPrefix(composed, "raw text"))
	assert.Contains(t, composed, actionRequestedMarker+" "+def.Instructions)

	// Round trip: the fallback recovers exactly what was composed.
	content, instruction := splitActionRequest(composed)
	assert.Equal(t, "raw text", content)
	assert.Equal(t, def.Instructions, instruction)

	assert.Equal(t, "raw text", composeUserContent("raw text", nil))
}

func TestComposeSystemInstruction(t *testing.T) {
	def := purpose.Lookup(purpose.TagFlashcards)
	require.NotNil(t, def)

	prompt := composeSystemInstruction(GenerationConfig{Tone: ToneCreative, Format: FormatFlashcards}, def)
	assert.Contains(t, prompt, "creative")
	assert.Contains(t, prompt, "flashcards")
	assert.Contains(t, prompt, def.Label)
	assert.Contains(t, prompt, def.Instructions)

	prompt = composeSystemInstruction(GenerationConfig{Tone: ToneProfessional, Format: FormatParagraph}, nil)
	assert.NotContains(t, prompt, "Purpose:")
}

func TestHeuristicGenerator_ExplicitPurpose(t *testing.T) {
	gen := NewHeuristicGenerator()

	note, err := gen.Generate(context.Background(), &Request{
		RawContent: sampleContent,
		Config:     defaultCfg,
		Purpose:    purpose.Lookup(purpose.TagSummary),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(note.Title, "— Summary"))
	assert.Contains(t, note.FormattedContent, "## Executive Summary")
}

func TestHeuristicGenerator_ClassifiesFromInstruction(t *testing.T) {
	gen := NewHeuristicGenerator()

	// No explicit purpose, but the raw content carries an appended
	// instruction behind the marker.
	raw := sampleContent + "\n\nAction Requested: Please create meeting notes with agenda and decisions"
	note, err := gen.Generate(context.Background(), &Request{
		RawContent: raw,
		Config:     defaultCfg,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(note.Title, "— Meeting Notes"))
	agendaIdx := strings.Index(note.FormattedContent, "## Agenda Highlights")
	discussionIdx := strings.Index(note.FormattedContent, "## Discussion Notes")
	decisionsIdx := strings.Index(note.FormattedContent, "## Decisions & Next Steps")
	assert.True(t, agendaIdx >= 0 && discussionIdx > agendaIdx && decisionsIdx > discussionIdx)
}

// An instruction that matches no catalog purpose still reaches the default
// renderer through a resolved default-tag definition.
func TestHeuristicGenerator_UnmatchedInstructionEchoed(t *testing.T) {
	gen := NewHeuristicGenerator()

	def := purpose.Resolve("please water my plants reminder")
	require.NotNil(t, def)
	require.Equal(t, purpose.TagDefault, def.Tag)

	note, err := gen.Generate(context.Background(), &Request{
		RawContent: sampleContent,
		Config:     defaultCfg,
		Purpose:    def,
	})
	require.NoError(t, err)
	assert.Equal(t, purpose.TagDefault, purpose.Classify("please water my plants reminder"))
	assert.Contains(t, note.FormattedContent, "Request: please water my plants reminder")
}

func TestHeuristicGenerator_EmptyContent(t *testing.T) {
	gen := NewHeuristicGenerator()

	note, err := gen.Generate(context.Background(), &Request{Config: defaultCfg})
	require.NoError(t, err)
	assert.NotEmpty(t, note.Title)
	assert.NotEmpty(t, note.FormattedContent)
	assert.Contains(t, note.FormattedContent, "_Generated offline from your content._")
}

func TestHeuristicGenerator_Deterministic(t *testing.T) {
	gen := NewHeuristicGenerator()
	req := &Request{RawContent: sampleContent, Config: defaultCfg, Purpose: purpose.Lookup(purpose.TagQA)}

	a, _ := gen.Generate(context.Background(), req)
	b, _ := gen.Generate(context.Background(), req)
	assert.Equal(t, a, b)
}
