package prompt

import (
	"fmt"
	"strings"
)

// systemPrompt returns the system-role message content for pt, followed by
// the glossary when one is given.
func systemPrompt(pt PromptType, glossary []glossaryEntry) string {
	var sb strings.Builder
	switch pt {
	case TypeRestore:
		sb.WriteString(restoreSystem)
	default:
		sb.WriteString(answerSystem)
	}

	if len(glossary) > 0 {
		sb.WriteString("\n\nAbbreviations used in this message:\n")
		for _, e := range glossary {
			fmt.Fprintf(&sb, "- %s = %s\n", e.abbr, e.full)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// shorthandRules describes the compression so the model can read it.
const shorthandRules = `The user's text has been compressed to save tokens:
- Common words are abbreviated ("pls" = please, "w/" = with, "&" = and, "b4" = before)
- Filler words such as "the", "a", "just" and "very" were removed
- Long words lost their inner vowels ("ftrs" = features, "exmpls" = examples)
- Text was lowercased
- URLs, email addresses, @mentions, #hashtags and numbers are exact and were not changed`

// answerSystem is the system prompt for TypeAnswer.
const answerSystem = `You are a helpful assistant.

` + shorthandRules + `

Guidelines:
1. Read the compressed text as the full request it stands for
2. Answer in normal, complete English; do not imitate the shorthand
3. Copy URLs, emails, mentions, hashtags and numbers exactly when you refer to them
4. If an abbreviation is ambiguous, say which reading you chose`

// restoreSystem is the system prompt for TypeRestore.
const restoreSystem = `You rewrite compressed text back into natural English.

` + shorthandRules + `

Rules:
1. Output ONLY the rewritten text, with no preamble or commentary
2. Restore abbreviations, missing filler words, vowels and capitalization
3. Keep the meaning; do not add information that is not implied
4. Copy URLs, emails, mentions, hashtags and numbers exactly`
