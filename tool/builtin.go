package tool

import (
	"time"

	"github.com/calumari/jprune"
	"github.com/calumari/jprune/textcompress"
)

var (
	// FieldRemover removes field paths from every object of a JSON array.
	//
	// Params:
	//	fields  comma-separated dot paths to remove
	//	indent  output indent in spaces (default 2, 0 for compact)
	FieldRemover = NewTool(Tool{
		Name:        "json.field-remover",
		Title:       "JSON field remover",
		Path:        "/json-field-remover",
		Description: "Detect the fields of an array of JSON objects and remove the selected ones.",
		Keywords:    []string{"json", "fields", "remove", "delete", "object", "array"},
		Run:         runFieldRemover,
	})

	// TextCompressor joins the non-blank lines of a text with single spaces.
	TextCompressor = NewTool(Tool{
		Name:        "text.compressor",
		Title:       "Text compressor",
		Path:        "/text-compressor",
		Description: "Trim every line and join the non-empty ones into a single line.",
		Keywords:    []string{"text", "compressor", "compress", "newline", "single", "line", "remove", "trim", "flatten"},
		CreatedAt:   time.Date(2026, time.February, 12, 0, 0, 0, 0, time.UTC),
		Run: func(input string, _ Params) (string, error) {
			return textcompress.Compress(input), nil
		},
	})
)

// DefaultIndent is the field remover output indent when none is given.
const DefaultIndent = 2

// Builtin groups every tool shipped with jprune.
func Builtin() Registration {
	return Group(FieldRemover, TextCompressor)
}

func runFieldRemover(input string, params Params) (string, error) {
	indent, err := params.Int("indent", DefaultIndent)
	if err != nil {
		return "", err
	}
	out, err := jprune.Prune(input, params.List("fields"), indent)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
