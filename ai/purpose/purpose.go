// Package purpose defines the closed catalog of note generation purposes and
// the rule-based classifier that infers a purpose from free-text instructions.
package purpose

import "strings"

// Tag identifies a note generation purpose. The set is closed; TagDefault is
// the residual case when no purpose matches.
type Tag string

const (
	TagSmartNotes    Tag = "smart_notes"
	TagSummary       Tag = "summary"
	TagKeyPoints     Tag = "key_points"
	TagQA            Tag = "qa"
	TagFlashcards    Tag = "flashcards"
	TagRewriteSocial Tag = "rewrite_social"
	TagFAQs          Tag = "faqs"
	TagMeetingNotes  Tag = "meeting_notes"
	TagDefault       Tag = "default"
)

// Definition describes a single purpose: a stable tag, a user-facing label,
// and natural-language instructions. The instructions are sent to the LLM and
// double as the classifier's matching corpus.
type Definition struct {
	Tag          Tag    `json:"tag"`
	Label        string `json:"label"`
	Instructions string `json:"instructions"`
}

// catalog is the fixed set of selectable purposes, in display order.
// TagDefault is intentionally absent: it is never offered to callers.
var catalog = []Definition{
	{
		Tag:          TagSmartNotes,
		Label:        "Smart Notes",
		Instructions: "Organize the content into smart, structured notes with clear sections for an overview, key highlights, and next steps.",
	},
	{
		Tag:          TagSummary,
		Label:        "Summary",
		Instructions: "Summarize the content into a concise executive summary followed by the key insights.",
	},
	{
		Tag:          TagKeyPoints,
		Label:        "Key Points",
		Instructions: "Extract the key points as short bullets highlighting the most important facts.",
	},
	{
		Tag:          TagQA,
		Label:        "Q&A",
		Instructions: "Turn the content into question and answer pairs that test understanding of the main ideas.",
	},
	{
		Tag:          TagFlashcards,
		Label:        "Flashcards",
		Instructions: "Convert the content into study flashcards, each with a short prompt and answer.",
	},
	{
		Tag:          TagRewriteSocial,
		Label:        "Social Rewrite",
		Instructions: "Rewrite the content as an engaging first-person post suitable for LinkedIn or a blog.",
	},
	{
		Tag:          TagFAQs,
		Label:        "FAQs",
		Instructions: "Produce frequently asked questions about the content with short, insight-driven answers.",
	},
	{
		Tag:          TagMeetingNotes,
		Label:        "Meeting Notes",
		Instructions: "Structure the content as meeting notes with agenda highlights, discussion notes, decisions and next steps.",
	},
}

// Catalog returns the fixed set of selectable purpose definitions.
// Callers must not mutate the returned slice.
func Catalog() []Definition {
	return catalog
}

// Lookup returns the definition for tag, or nil if tag is not in the catalog.
func Lookup(tag Tag) *Definition {
	for i := range catalog {
		if catalog[i].Tag == tag {
			return &catalog[i]
		}
	}
	return nil
}

// Resolve maps a free-text instruction to its purpose definition. When the
// instruction matches no catalog entry, it still returns a default-tag
// definition carrying the instruction verbatim, so the request text reaches
// prompts and renderers instead of being dropped. Empty input resolves to nil.
func Resolve(instruction string) *Definition {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return nil
	}
	if def := Lookup(Classify(instruction)); def != nil {
		return def
	}
	return &Definition{
		Tag:          TagDefault,
		Label:        "General Note",
		Instructions: instruction,
	}
}
