package jprune

import (
	"fmt"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Marshalers returns the marshalers that encode a Record as a JSON object in
// entry order. Array and Document encode through the default []any logic.
func Marshalers() *json.Marshalers {
	return json.MarshalToFunc(func(enc *jsontext.Encoder, r Record) error {
		if err := enc.WriteToken(jsontext.BeginObject); err != nil {
			return err
		}
		for _, e := range r {
			if err := enc.WriteToken(jsontext.String(e.Key)); err != nil {
				return fmt.Errorf("write object key %q: %w", e.Key, err)
			}
			if err := json.MarshalEncode(enc, e.Value); err != nil {
				return fmt.Errorf("write object value for key %q: %w", e.Key, err)
			}
		}
		return enc.WriteToken(jsontext.EndObject)
	})
}

// Marshal encodes v as JSON preserving record key order. An indent of zero
// produces compact output; otherwise each level is indented by that many
// spaces.
func Marshal(v any, indent int) ([]byte, error) {
	opts := []json.Options{
		json.WithMarshalers(Marshalers()),
		jsontext.AllowDuplicateNames(true),
	}
	if indent > 0 {
		opts = append(opts, jsontext.WithIndent(strings.Repeat(" ", indent)))
	}
	out, err := json.Marshal(v, opts...)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return out, nil
}

// Prune parses text, removes paths from every record and encodes the result
// with the given indent.
func Prune(text string, paths []string, indent int) ([]byte, error) {
	doc, err := ParseDocument(text)
	if err != nil {
		return nil, err
	}
	return Marshal(RemoveFields(doc, paths), indent)
}
