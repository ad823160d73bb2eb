package prompt

import (
	"fmt"
	"strings"

	"github.com/bimmerbailey/kevinify/internal/kevinify"
	"github.com/bimmerbailey/kevinify/internal/llm"
)

// Build constructs a []llm.Message slice ready to be sent to any llm.Provider:
// a system message chosen by pt, then one user message carrying the
// compressed text.
//
// Returns ErrMissingField if Compressed is empty.
func Build(pt PromptType, opts BuildOptions) ([]llm.Message, error) {
	if strings.TrimSpace(opts.Compressed) == "" {
		return nil, missingField("Compressed")
	}

	glossary := buildGlossary(opts.Compressed, opts.Abbreviations)

	return []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt(pt, glossary)},
		{Role: llm.RoleUser, Content: userMessage(pt, opts)},
	}, nil
}

func userMessage(pt PromptType, opts BuildOptions) string {
	var sb strings.Builder

	if pt == TypeRestore {
		sb.WriteString("Rewrite the following text:\n\n")
	}

	if len(opts.Files) == 1 {
		sb.WriteString(fmt.Sprintf("Source file: %s\n\n", opts.Files[0]))
	} else if len(opts.Files) > 1 {
		sb.WriteString(fmt.Sprintf("Source files (%d): %s\n\n",
			len(opts.Files), strings.Join(opts.Files, ", ")))
	}

	sb.WriteString(opts.Compressed)

	if opts.Instruction != "" {
		sb.WriteString("\n\n")
		sb.WriteString(opts.Instruction)
	}
	return sb.String()
}

type glossaryEntry struct {
	abbr string
	full string
}

var glossaryTokenizer = kevinify.NewTokenizer(kevinify.GrammarExpand)

// buildGlossary lists the abbreviations found in text, outside protected
// spans, in order of first appearance.
func buildGlossary(text string, abbrs *kevinify.Abbreviations) []glossaryEntry {
	if abbrs == nil {
		abbrs = kevinify.DefaultAbbreviations()
	}
	reverse := kevinify.BuildReverse(abbrs, kevinify.LastWriteWins)

	var entries []glossaryEntry
	seen := make(map[string]bool)
	for _, seg := range kevinify.Split(text, kevinify.DetectSpans(text, kevinify.ModeExpand)) {
		if seg.Protected {
			continue
		}
		for token := range glossaryTokenizer.All(seg.Text) {
			abbr := strings.ToLower(token)
			full, ok := reverse[abbr]
			if !ok || seen[abbr] {
				continue
			}
			seen[abbr] = true
			entries = append(entries, glossaryEntry{abbr: abbr, full: full})
		}
	}
	return entries
}
