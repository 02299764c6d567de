package purpose

import (
	"regexp"
	"strings"
)

// classifierRule maps a purpose tag to its trigger pattern. Rules are checked
// in declaration order and the first match wins; the order matters because the
// patterns overlap (e.g. "summary" is claimed before the looser patterns
// further down).
type classifierRule struct {
	tag     Tag
	pattern *regexp.Regexp
}

// Pre-compiled classification rules, in priority order.
var classifierRules = []classifierRule{
	{TagSmartNotes, regexp.MustCompile(`smart|structured|sections`)},
	{TagSummary, regexp.MustCompile(`summary|summarize|concise`)},
	{TagKeyPoints, regexp.MustCompile(`key points|bullets|highlights`)},
	{TagQA, regexp.MustCompile(`q&a|question|answer`)},
	{TagFlashcards, regexp.MustCompile(`flashcard|prompt and answer`)},
	{TagRewriteSocial, regexp.MustCompile(`rewrite|linkedin|blog|first-person`)},
	{TagFAQs, regexp.MustCompile(`faq|frequently asked|insight`)},
	{TagMeetingNotes, regexp.MustCompile(`meeting|agenda|decisions|next steps`)},
}

// Classify infers a purpose tag from a free-text instruction. An empty
// instruction, or one matching no rule, yields TagDefault. Pure function.
func Classify(instruction string) Tag {
	if instruction == "" {
		return TagDefault
	}

	lower := strings.ToLower(instruction)
	for _, rule := range classifierRules {
		if rule.pattern.MatchString(lower) {
			return rule.tag
		}
	}
	return TagDefault
}
