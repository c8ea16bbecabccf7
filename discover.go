package jprune

import (
	"slices"
	"strings"
)

// PathSeparator joins the segments of a field path.
const PathSeparator = "."

// Mode selects what DiscoverFields reports.
type Mode int

const (
	// ModePaths reports field paths only.
	ModePaths Mode = iota
	// ModeSamples reports field paths paired with a sample value.
	ModeSamples
)

func (m Mode) String() string {
	switch m {
	case ModePaths:
		return "paths"
	case ModeSamples:
		return "samples"
	default:
		return "unknown"
	}
}

// Sample pairs a field path with the first value observed at that path.
type Sample struct {
	Path  string
	Value any
}

// Discovery is the result of DiscoverFields. Exactly one of Paths or Samples
// is set, according to the mode.
type Discovery struct {
	Mode    Mode
	Paths   []string
	Samples []Sample
}

// DiscoverFields reports the field paths present in doc, sorted by path.
func DiscoverFields(doc Document, mode Mode) Discovery {
	if mode == ModeSamples {
		return Discovery{Mode: mode, Samples: Samples(doc)}
	}
	return Discovery{Mode: ModePaths, Paths: Paths(doc)}
}

// Paths returns every field path reachable in doc, deduplicated and sorted.
// Nested records add one dot-joined segment per level; arrays are traversed
// without adding a segment.
func Paths(doc Document) []string {
	samples := collect(doc)
	out := make([]string, len(samples))
	for i, s := range samples {
		out[i] = s.Path
	}
	return out
}

// Samples returns every field path reachable in doc together with the first
// value seen at that path, in document order and then record key order. The
// result is sorted by path. Sample values are copies; mutating them does not
// affect doc.
func Samples(doc Document) []Sample {
	samples := collect(doc)
	for i := range samples {
		samples[i].Value = Clone(samples[i].Value)
	}
	return samples
}

// TopLevelKeys returns the keys of the Record elements of doc, deduplicated
// and sorted. Nested records are not inspected.
func TopLevelKeys(doc Document) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, el := range doc {
		rec, ok := el.(Record)
		if !ok {
			continue
		}
		for _, e := range rec {
			if _, dup := seen[e.Key]; dup {
				continue
			}
			seen[e.Key] = struct{}{}
			out = append(out, e.Key)
		}
	}
	slices.Sort(out)
	return out
}

type collector struct {
	seen    map[string]struct{}
	samples []Sample
}

func collect(doc Document) []Sample {
	c := &collector{seen: make(map[string]struct{})}
	for _, el := range doc {
		c.walk(el, "")
	}
	slices.SortFunc(c.samples, func(a, b Sample) int { return strings.Compare(a.Path, b.Path) })
	return c.samples
}

func (c *collector) walk(v any, prefix string) {
	switch val := v.(type) {
	case Record:
		for _, e := range val {
			path := e.Key
			if prefix != "" {
				path = prefix + PathSeparator + e.Key
			}
			if _, ok := c.seen[path]; !ok {
				c.seen[path] = struct{}{}
				c.samples = append(c.samples, Sample{Path: path, Value: e.Value})
			}
			c.walk(e.Value, path)
		}
	case Array:
		for _, item := range val {
			c.walk(item, prefix)
		}
	case []any:
		for _, item := range val {
			c.walk(item, prefix)
		}
	}
}
