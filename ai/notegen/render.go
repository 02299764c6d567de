package notegen

import (
	"fmt"
	"strings"

	"github.com/Atharva2922/notesgenai/ai/purpose"
	"github.com/Atharva2922/notesgenai/ai/segment"
)

// Rendering parameters shared by all purposes.
const (
	titleMaxRunes = 90
	sentenceLimit = 6

	untitledTitle = "Untitled Note"
	draftTitle    = "AI Draft"

	placeholderSummary = "A quick note synthesized from your content."
)

// renderContext holds the derived values every renderer consumes. They are
// computed once per Render call.
type renderContext struct {
	cfg         GenerationConfig
	instruction string
	baseTitle   string // first sentence, truncated and stripped; may be empty
	summary     string
	sentences   []string
	paragraphs  []string
	keyPoints   []string
}

func newRenderContext(content string, cfg GenerationConfig, instruction string) *renderContext {
	sentences := segment.Sentences(content, sentenceLimit)
	paragraphs := segment.Paragraphs(content)

	keyPoints := make([]string, 0, len(sentences))
	for _, s := range sentences {
		keyPoints = append(keyPoints, "- "+s)
	}

	summary := placeholderSummary
	if len(sentences) > 0 {
		summary = strings.Join(firstN(sentences, 2), " ")
	}

	var baseTitle string
	if first := segment.FirstSentence(content); first != "" {
		baseTitle = truncateRunes(first, titleMaxRunes)
		baseTitle = strings.TrimSpace(strings.TrimRight(baseTitle, ".!?,;:"))
	}

	return &renderContext{
		cfg:         cfg,
		instruction: instruction,
		baseTitle:   baseTitle,
		summary:     summary,
		sentences:   sentences,
		paragraphs:  paragraphs,
		keyPoints:   keyPoints,
	}
}

// renderSpec binds one purpose tag to its output shape: the title suffix, the
// fallback title for empty input, the body renderer and the emitted tag set.
type renderSpec struct {
	titleSuffix string
	emptyTitle  string
	body        func(rc *renderContext) string
	tags        func(cfg GenerationConfig) []string
}

var renderSpecs = map[purpose.Tag]renderSpec{
	purpose.TagSmartNotes: {
		titleSuffix: " — Smart Notes",
		emptyTitle:  untitledTitle,
		body:        renderSmartNotes,
		tags: func(cfg GenerationConfig) []string {
			return []string{"smart-notes", string(cfg.Tone), string(cfg.Format)}
		},
	},
	purpose.TagSummary: {
		titleSuffix: " — Summary",
		emptyTitle:  untitledTitle,
		body:        renderSummary,
		tags: func(cfg GenerationConfig) []string {
			return []string{"summary", string(cfg.Tone)}
		},
	},
	purpose.TagKeyPoints: {
		titleSuffix: " — Key Points",
		emptyTitle:  untitledTitle,
		body:        renderKeyPoints,
		tags: func(cfg GenerationConfig) []string {
			return []string{"key-points", string(cfg.Format)}
		},
	},
	purpose.TagQA: {
		titleSuffix: " — Q&A",
		emptyTitle:  untitledTitle,
		body:        renderQA,
		tags: func(GenerationConfig) []string {
			return []string{"qa", "insights"}
		},
	},
	purpose.TagFlashcards: {
		titleSuffix: " — Flashcards",
		emptyTitle:  untitledTitle,
		body:        renderFlashcards,
		tags: func(GenerationConfig) []string {
			return []string{"flashcards", "study"}
		},
	},
	purpose.TagRewriteSocial: {
		titleSuffix: " — Social Rewrite",
		emptyTitle:  untitledTitle,
		body:        renderRewriteSocial,
		tags: func(GenerationConfig) []string {
			return []string{"rewrite", "social"}
		},
	},
	purpose.TagFAQs: {
		titleSuffix: " — FAQs",
		emptyTitle:  untitledTitle,
		body:        renderFAQs,
		tags: func(GenerationConfig) []string {
			return []string{"faqs", "insights"}
		},
	},
	purpose.TagMeetingNotes: {
		titleSuffix: " — Meeting Notes",
		emptyTitle:  untitledTitle,
		body:        renderMeetingNotes,
		tags: func(GenerationConfig) []string {
			return []string{"meeting-notes", "recap"}
		},
	},
	purpose.TagDefault: {
		titleSuffix: "",
		emptyTitle:  draftTitle,
		body:        renderDefault,
		tags: func(cfg GenerationConfig) []string {
			return []string{"ai-fallback", string(cfg.Tone), string(cfg.Format)}
		},
	},
}

// Render deterministically synthesizes a structured note for the given
// purpose. It is total: every tag, including unknown ones, yields a note with
// non-empty Title and FormattedContent for any content.
func Render(tag purpose.Tag, content string, cfg GenerationConfig, instruction string) *StructuredNote {
	cfg = cfg.withDefaults()
	rc := newRenderContext(content, cfg, instruction)

	spec, ok := renderSpecs[tag]
	if !ok {
		spec = renderSpecs[purpose.TagDefault]
	}

	title := rc.baseTitle
	if title == "" {
		title = spec.emptyTitle
	}
	title += spec.titleSuffix

	return &StructuredNote{
		Title:            title,
		Summary:          rc.summary,
		FormattedContent: spec.body(rc),
		Tags:             spec.tags(cfg),
	}
}

func renderSmartNotes(rc *renderContext) string {
	var b strings.Builder
	b.WriteString("## Overview\n")
	b.WriteString(rc.summary)
	b.WriteString("\n\n## Highlights\n")
	b.WriteString(strings.Join(firstN(rc.keyPoints, 4), "\n"))
	b.WriteString("\n\n## Next Steps\n")
	b.WriteString(strings.Join(sliceFrom(rc.keyPoints, 4), "\n"))
	return strings.TrimSpace(b.String())
}

func renderSummary(rc *renderContext) string {
	var b strings.Builder
	b.WriteString("## Executive Summary\n")
	b.WriteString(rc.summary)
	b.WriteString("\n\n## Key Insights\n")
	b.WriteString(strings.Join(rc.keyPoints, "\n"))
	return strings.TrimSpace(b.String())
}

func renderKeyPoints(rc *renderContext) string {
	var b strings.Builder
	b.WriteString("## Key Points\n")
	b.WriteString(strings.Join(rc.keyPoints, "\n"))
	return strings.TrimSpace(b.String())
}

func renderQA(rc *renderContext) string {
	var b strings.Builder
	b.WriteString("## Generated Q&A\n")
	for i, s := range firstN(rc.sentences, 3) {
		question := "What is the main idea here?"
		if i > 0 {
			question = "What is the main idea next?"
		}
		fmt.Fprintf(&b, "\n**Q: %s**\nA: %s\n", question, s)
	}
	return strings.TrimSpace(b.String())
}

func renderFlashcards(rc *renderContext) string {
	cards := firstN(rc.sentences, 3)
	if len(cards) == 0 {
		return "### Card 1\n**Prompt:** Key idea\n**Answer:** " + placeholderSummary
	}

	var b strings.Builder
	for i, s := range cards {
		prompt := leadBefore(s, ":-", "Key idea")
		fmt.Fprintf(&b, "### Card %d\n**Prompt:** %s\n**Answer:** %s\n\n", i+1, prompt, s)
	}
	return strings.TrimSpace(b.String())
}

func renderRewriteSocial(rc *renderContext) string {
	var b strings.Builder
	b.WriteString("Hey everyone — ")
	b.WriteString(rc.summary)
	for _, p := range rc.paragraphs {
		b.WriteString("\n\n")
		b.WriteString(p)
	}
	return b.String()
}

func renderFAQs(rc *renderContext) string {
	pairs := firstN(rc.sentences, 4)
	if len(pairs) == 0 {
		return "### Key takeaway?\n" + placeholderSummary
	}

	var b strings.Builder
	for _, s := range pairs {
		question := leadBefore(s, ":.-", "Key takeaway")
		fmt.Fprintf(&b, "### %s?\n%s\n\n", question, s)
	}
	return strings.TrimSpace(b.String())
}

func renderMeetingNotes(rc *renderContext) string {
	var b strings.Builder
	b.WriteString("## Agenda Highlights\n")
	b.WriteString(strings.Join(firstN(rc.keyPoints, 3), "\n"))
	b.WriteString("\n\n## Discussion Notes\n")
	b.WriteString(strings.Join(firstN(rc.paragraphs, 2), "\n\n"))
	b.WriteString("\n\n## Decisions & Next Steps\n")
	b.WriteString(strings.Join(sliceRange(rc.keyPoints, 3, 6), "\n"))
	return strings.TrimSpace(b.String())
}

func renderDefault(rc *renderContext) string {
	var body string
	if rc.cfg.Format == FormatParagraph {
		body = strings.Join(rc.paragraphs, "\n\n")
	} else {
		body = strings.Join(rc.keyPoints, "\n")
	}

	notice := "_Generated offline from your content._"
	if rc.instruction != "" {
		notice = fmt.Sprintf("_Generated offline from your content. Request: %s_", rc.instruction)
	}

	if body == "" {
		return notice
	}
	return body + "\n\n" + notice
}

// leadBefore returns the trimmed text before the first occurrence of any rune
// in cutset, or fallback when there is none or it would be empty.
func leadBefore(s, cutset, fallback string) string {
	idx := strings.IndexAny(s, cutset)
	if idx <= 0 {
		return fallback
	}
	if lead := strings.TrimSpace(s[:idx]); lead != "" {
		return lead
	}
	return fallback
}

func firstN(ss []string, n int) []string {
	if len(ss) <= n {
		return ss
	}
	return ss[:n]
}

func sliceFrom(ss []string, n int) []string {
	if len(ss) <= n {
		return nil
	}
	return ss[n:]
}

func sliceRange(ss []string, from, to int) []string {
	return firstN(sliceFrom(ss, from), to-from)
}

// truncateRunes truncates s to at most maxLen runes, never splitting a rune.
func truncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}
