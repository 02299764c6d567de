package notegen

import (
	"fmt"
	"strings"

	"github.com/Atharva2922/notesgenai/ai/purpose"
)

// actionRequestedMarker separates raw content from an appended purpose
// instruction inside a single text blob.
const actionRequestedMarker = "Action Requested:"

// composeSystemInstruction builds the system prompt embedding tone, format
// and, when a purpose is supplied, its label and instructions.
func composeSystemInstruction(cfg GenerationConfig, def *purpose.Definition) string {
	var b strings.Builder
	b.WriteString("You are a note structuring assistant for a note-taking app. ")
	fmt.Fprintf(&b, "Write in a %s tone and prefer a %s layout.", cfg.Tone, cfg.Format)
	if def != nil {
		fmt.Fprintf(&b, " Purpose: %s. %s", def.Label, def.Instructions)
	}
	b.WriteString(" Respond with a single JSON object with the fields title, summary, formattedContent (Markdown) and tags (3 to 5 short strings).")
	return b.String()
}

// composeUserContent appends the purpose instructions to the raw content
// behind the marker, so a later fallback can recover both parts from the one
// blob.
func composeUserContent(rawContent string, def *purpose.Definition) string {
	if def == nil || def.Instructions == "" {
		return rawContent
	}
	return rawContent + "\n\n" + actionRequestedMarker + " " + def.Instructions
}

// splitActionRequest splits composed user content at the LAST occurrence of
// the marker, so raw content that itself contains the literal marker string
// is not misparsed at an earlier position. Returns the trimmed content and
// instruction; the instruction is empty when no marker is present.
func splitActionRequest(userContent string) (content, instruction string) {
	idx := strings.LastIndex(userContent, actionRequestedMarker)
	if idx < 0 {
		return strings.TrimSpace(userContent), ""
	}
	content = strings.TrimSpace(userContent[:idx])
	instruction = strings.TrimSpace(userContent[idx+len(actionRequestedMarker):])
	return content, instruction
}
