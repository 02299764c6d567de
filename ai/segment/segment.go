// Package segment splits free-form text into sentences and paragraphs.
// All functions are pure and total: any input string, including the empty
// string, yields a well-defined result.
package segment

import (
	"regexp"
	"strings"
)

// Pre-compiled patterns for text segmentation.
var (
	whitespaceRunRegex    = regexp.MustCompile(`\s+`)
	sentenceBoundaryRegex = regexp.MustCompile(`[.!?]\s`)
	paragraphBreakRegex   = regexp.MustCompile(`\n{2,}`)
)

// Sentences splits text into sentences. Whitespace runs are collapsed first,
// then the text is cut after each `.`, `!` or `?` that is followed by
// whitespace, keeping the terminal punctuation attached to its sentence.
// Input without terminal punctuation is treated as a single sentence.
// A max of 0 or less means unlimited.
func Sentences(text string, max int) []string {
	normalized := strings.TrimSpace(whitespaceRunRegex.ReplaceAllString(text, " "))
	if normalized == "" {
		return nil
	}

	var sentences []string
	start := 0
	for _, loc := range sentenceBoundaryRegex.FindAllStringIndex(normalized, -1) {
		// loc[0] is the punctuation byte; cut just after it so the
		// punctuation stays with its sentence.
		if s := strings.TrimSpace(normalized[start : loc[0]+1]); s != "" {
			sentences = append(sentences, s)
		}
		start = loc[1]
	}
	if rest := strings.TrimSpace(normalized[start:]); rest != "" {
		sentences = append(sentences, rest)
	}

	if max > 0 && len(sentences) > max {
		sentences = sentences[:max]
	}
	return sentences
}

// Paragraphs splits text on runs of two or more newlines, trimming each
// paragraph and dropping empty ones.
func Paragraphs(text string) []string {
	var paragraphs []string
	for _, p := range paragraphBreakRegex.Split(text, -1) {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	return paragraphs
}

// FirstSentence returns the first sentence of text, or "" if text has none.
func FirstSentence(text string) string {
	sentences := Sentences(text, 1)
	if len(sentences) == 0 {
		return ""
	}
	return sentences[0]
}
