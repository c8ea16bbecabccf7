// Package jprune discovers and removes field paths in arrays of JSON objects.
//
// Input is parsed from a relaxed JSON dialect (unquoted keys, single-quoted
// strings, trailing commas, comments) into an ordered value model: objects
// decode as Record, nested arrays as Array and the top-level array as
// Document. Every operation is a pure function over its input; nothing is
// cached or shared between calls.
package jprune

// Document is the parsed top-level array. Elements are usually Records but
// any value is allowed; non-Record elements pass through every operation
// untouched.
type Document []any

// Array represents a nested JSON array.
type Array []any

// Record represents a JSON object, defined as an ordered collection of
// key-value pairs. Keys are unique.
type Record []Entry

// Entry represents a single entry in a record. It consists of a string key and
// an associated value of any type.
type Entry struct {
	Key   string
	Value any
}

// Len returns the number of entries.
func (r Record) Len() int { return len(r) }

func (r Record) index(key string) int {
	for i := range r {
		if r[i].Key == key {
			return i
		}
	}
	return -1
}

// Get returns the value stored under key.
func (r Record) Get(key string) (any, bool) {
	if i := r.index(key); i >= 0 {
		return r[i].Value, true
	}
	return nil, false
}

// Has reports whether key is present.
func (r Record) Has(key string) bool { return r.index(key) >= 0 }

// Keys returns the keys in record order.
func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i := range r {
		keys[i] = r[i].Key
	}
	return keys
}

// Set replaces the value of an existing key in place or appends a new entry.
func (r Record) Set(key string, value any) Record {
	if i := r.index(key); i >= 0 {
		r[i].Value = value
		return r
	}
	return append(r, Entry{Key: key, Value: value})
}

// Delete removes key and reports whether it was present. The returned record
// shares its backing array with r.
func (r Record) Delete(key string) (Record, bool) {
	i := r.index(key)
	if i < 0 {
		return r, false
	}
	return append(r[:i], r[i+1:]...), true
}

// Clone returns a structural deep copy of v. Records, Arrays and Documents are
// copied recursively; scalars are returned as is.
func Clone(v any) any {
	switch val := v.(type) {
	case Record:
		return val.clone()
	case Array:
		return Array(cloneSlice(val))
	case Document:
		return Document(cloneSlice(val))
	case []any:
		return cloneSlice(val)
	default:
		return v
	}
}

func (r Record) clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for i, e := range r {
		out[i] = Entry{Key: e.Key, Value: Clone(e.Value)}
	}
	return out
}

func cloneSlice(s []any) []any {
	if s == nil {
		return nil
	}
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = Clone(v)
	}
	return out
}
