package jprune

import (
	"errors"
	"sort"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// ParseDocument parses text as a relaxed JSON array.
//
// Besides strict JSON it accepts unquoted identifier keys, single-quoted
// strings, trailing commas, comments, hexadecimal numbers and numbers with a
// leading plus sign or a bare decimal point. It fails with a *ParseError when
// the text is not valid under that grammar and with a *NotAnArrayError when
// the top-level value is not an array.
func ParseDocument(text string) (Document, error) {
	src := []byte(text)
	norm, marks, err := normalize(src)
	if err != nil {
		return nil, err
	}

	var v any
	err = json.Unmarshal(norm, &v,
		json.WithUnmarshalers(Unmarshalers()),
		jsontext.AllowDuplicateNames(true),
	)
	if err != nil {
		return nil, decodeError(src, len(norm), marks, err)
	}

	arr, ok := v.(Array)
	if !ok {
		return nil, &NotAnArrayError{Kind: kindOf(v)}
	}
	return Document(arr), nil
}

// MustParseDocument is like ParseDocument but panics on error.
func MustParseDocument(text string) Document {
	doc, err := ParseDocument(text)
	if err != nil {
		panic(err)
	}
	return doc
}

// decodeError converts a strict decoder error into a *ParseError positioned in
// the input text.
func decodeError(src []byte, normLen int, marks []mark, err error) *ParseError {
	var se *jsontext.SyntacticError
	if errors.As(err, &se) {
		msg := se.Error()
		if se.Err != nil {
			msg = se.Err.Error()
		}
		return newParseError(src, inputOffset(marks, int(se.ByteOffset), normLen, len(src)), msg, err)
	}
	return newParseError(src, len(src), err.Error(), err)
}

// inputOffset maps an offset in the normalized text to the start of the input
// token that produced it. Offsets at or past the end of the normalized text
// map to the end of the input.
func inputOffset(marks []mark, out, normLen, srcLen int) int {
	if out >= normLen || len(marks) == 0 {
		return srcLen
	}
	i := sort.Search(len(marks), func(i int) bool { return marks[i].out > out })
	if i == 0 {
		return marks[0].in
	}
	return marks[i-1].in
}

func kindOf(v any) string {
	switch v.(type) {
	case Record:
		return "object"
	case Array, Document, []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return "number"
	}
}
