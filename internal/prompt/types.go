package prompt

import (
	"errors"
	"fmt"

	"github.com/bimmerbailey/kevinify/internal/kevinify"
)

// PromptType identifies what the model should do with a compressed prompt.
type PromptType string

const (
	// TypeAnswer asks the model to respond to the compressed text as if it
	// were the original request. It is the default for `kevinify send`.
	TypeAnswer PromptType = "answer"

	// TypeRestore asks the model to rewrite the compressed text as fluent
	// English. Used by `kevinify expand --llm`, where the table-driven
	// expansion cannot bring back dropped words or vowels.
	TypeRestore PromptType = "restore"
)

// ParsePromptType maps a flag value onto a PromptType.
func ParsePromptType(s string) (PromptType, error) {
	switch PromptType(s) {
	case TypeAnswer, TypeRestore:
		return PromptType(s), nil
	case "":
		return TypeAnswer, nil
	default:
		return "", fmt.Errorf("unknown prompt type %q (supported: answer, restore)", s)
	}
}

// BuildOptions holds the context for a single prompt.
type BuildOptions struct {
	// Compressed is the kevinified text. Required.
	Compressed string

	// Abbreviations is the table used to compress the text. The system
	// prompt carries a glossary of the entries that appear in Compressed.
	// Nil means the built-in table.
	Abbreviations *kevinify.Abbreviations

	// Files lists the inputs the text was read from. Optional.
	Files []string

	// Instruction is appended to the user turn uncompressed, e.g. "reply
	// in one paragraph". Optional.
	Instruction string
}

// ErrMissingField is returned by [Build] when a required field for the
// requested [PromptType] is absent from [BuildOptions].
var ErrMissingField = errors.New("prompt: missing required field")

// missingField wraps [ErrMissingField] with the specific field name.
func missingField(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}
