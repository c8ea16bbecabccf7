package jprune

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Unmarshalers returns the set of jprune unmarshalers allowing decoding into:
//   - any/interface{} -> objects as Record, arrays as Array
//   - *Record         -> direct ordered object decoding
//   - *Array          -> direct array decoding
//   - *Document       -> top-level array decoding
//
// Decoding must run with jsontext.AllowDuplicateNames(true) for duplicate keys
// to collapse into a single entry instead of failing.
func Unmarshalers() *json.Unmarshalers {
	return json.JoinUnmarshalers(
		unmarshalValue(),
		unmarshalRecord(),
		unmarshalArray(),
		unmarshalDocument(),
	)
}

// unmarshalValue wraps JSON objects as Record rather than map[string]any and
// JSON arrays as Array so callers can distinguish them from []any. Primitive
// values are left to the default logic by returning json.SkipFunc.
//
// Empty objects ({}) produce an empty Record; empty arrays ([]) produce an
// empty Array.
func unmarshalValue() *json.Unmarshalers {
	return json.UnmarshalFromFunc(func(dec *jsontext.Decoder, v *any) error {
		switch dec.PeekKind() {
		case '{':
			rec, err := decodeRecord(dec)
			if err != nil {
				return err
			}
			*v = rec
			return nil
		case '[':
			arr, err := decodeArray(dec)
			if err != nil {
				return err
			}
			*v = Array(arr)
			return nil
		default:
			return json.SkipFunc
		}
	})
}

func unmarshalRecord() *json.Unmarshalers {
	return json.UnmarshalFromFunc(func(dec *jsontext.Decoder, v *Record) error {
		if dec.PeekKind() != '{' {
			return json.SkipFunc
		}
		rec, err := decodeRecord(dec)
		if err != nil {
			return err
		}
		*v = rec
		return nil
	})
}

func unmarshalArray() *json.Unmarshalers {
	return json.UnmarshalFromFunc(func(dec *jsontext.Decoder, v *Array) error {
		if dec.PeekKind() != '[' {
			return json.SkipFunc
		}
		arr, err := decodeArray(dec)
		if err != nil {
			return err
		}
		*v = Array(arr)
		return nil
	})
}

func unmarshalDocument() *json.Unmarshalers {
	return json.UnmarshalFromFunc(func(dec *jsontext.Decoder, v *Document) error {
		if dec.PeekKind() != '[' {
			return json.SkipFunc
		}
		arr, err := decodeArray(dec)
		if err != nil {
			return err
		}
		*v = Document(arr)
		return nil
	})
}

// decodeRecord decodes a JSON object into a Record. A repeated key keeps the
// position of its first occurrence and the value of its last.
func decodeRecord(dec *jsontext.Decoder) (Record, error) {
	if _, err := dec.ReadToken(); err != nil { // '{'
		return nil, fmt.Errorf("read object open: %w", err)
	}
	res := Record{}
	for dec.PeekKind() != '}' {
		var k string
		if err := json.UnmarshalDecode(dec, &k); err != nil {
			return nil, fmt.Errorf("read object key: %w", err)
		}
		var vv any
		if err := json.UnmarshalDecode(dec, &vv); err != nil {
			return nil, fmt.Errorf("read object value for key %q: %w", k, err)
		}
		res = res.Set(k, vv)
	}
	if _, err := dec.ReadToken(); err != nil { // '}'
		return nil, fmt.Errorf("read object close: %w", err)
	}
	return res, nil
}

// decodeArray decodes a JSON array into a slice.
func decodeArray(dec *jsontext.Decoder) ([]any, error) {
	if _, err := dec.ReadToken(); err != nil { // '['
		return nil, fmt.Errorf("read array open: %w", err)
	}
	arr := make([]any, 0)
	for dec.PeekKind() != ']' {
		var elem any
		if err := json.UnmarshalDecode(dec, &elem); err != nil {
			return nil, fmt.Errorf("read array element: %w", err)
		}
		arr = append(arr, elem)
	}
	if _, err := dec.ReadToken(); err != nil { // ']'
		return nil, fmt.Errorf("read array close: %w", err)
	}
	return arr, nil
}
