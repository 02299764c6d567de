// Package notegen turns free-form input into structured notes. It delegates to
// an LLM when one is available and synthesizes an equivalent note from the raw
// text when the call fails or returns unusable output.
package notegen

import (
	"github.com/lithammer/shortuuid/v4"
)

// Tone controls the voice of the generated note.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneCreative     Tone = "creative"
	ToneConcise      Tone = "concise"
)

// Format controls the overall layout of the generated note.
type Format string

const (
	FormatBulletPoints Format = "bullet_points"
	FormatParagraph    Format = "paragraph"
	FormatFlashcards   Format = "flashcards"
)

// GenerationConfig is the immutable caller-supplied generation configuration.
type GenerationConfig struct {
	Tone   Tone   `json:"tone"`
	Format Format `json:"format"`
}

// withDefaults returns a copy with empty fields replaced by defaults.
func (c GenerationConfig) withDefaults() GenerationConfig {
	if c.Tone == "" {
		c.Tone = ToneProfessional
	}
	if c.Format == "" {
		c.Format = FormatBulletPoints
	}
	return c
}

// StructuredNote is the canonical output of the generation pipeline.
// Title and FormattedContent are non-empty for any non-empty input.
type StructuredNote struct {
	Title            string   `json:"title"`
	Summary          string   `json:"summary"`
	FormattedContent string   `json:"formattedContent"`
	Tags             []string `json:"tags"`
}

// NoteRecord is the flat record handed off to the persistence layer. The
// pipeline itself never stores anything; it only mints the record.
type NoteRecord struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
	Type    string   `json:"type"`
}

// ToRecord converts the note into a persistence hand-off record. noteType
// distinguishes AI-authored notes from heuristic ones ("llm" or "fallback").
func (n *StructuredNote) ToRecord(noteType string) *NoteRecord {
	return &NoteRecord{
		ID:      shortuuid.New(),
		Title:   n.Title,
		Content: n.FormattedContent,
		Summary: n.Summary,
		Tags:    n.Tags,
		Type:    noteType,
	}
}
