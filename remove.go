package jprune

import "strings"

// RemoveFields returns a copy of doc with every path in paths deleted from
// each Record element. Paths are dot-joined key sequences; a path that does
// not resolve in a record, including one that crosses an array or a scalar,
// is ignored for that record.
//
// When a deletion leaves its containing record empty, that record is removed
// from its parent as well, repeating upwards until a non-empty ancestor or the
// element itself is reached. Elements are never removed from the document.
//
// The result never shares mutable structure with doc. An empty paths slice
// returns doc itself.
func RemoveFields(doc Document, paths []string) Document {
	if len(paths) == 0 {
		return doc
	}
	segments := make([][]string, len(paths))
	for i, p := range paths {
		segments[i] = strings.Split(p, PathSeparator)
	}

	out := make(Document, len(doc))
	for i, el := range doc {
		rec, ok := el.(Record)
		if !ok {
			out[i] = Clone(el)
			continue
		}
		rec = rec.clone()
		for _, segs := range segments {
			rec, _ = deletePath(rec, segs)
		}
		out[i] = rec
	}
	return out
}

// deletePath deletes segs from rec in place and reports whether anything was
// deleted. Nested records emptied by the deletion are dropped.
func deletePath(rec Record, segs []string) (Record, bool) {
	i := rec.index(segs[0])
	if i < 0 {
		return rec, false
	}
	if len(segs) == 1 {
		return append(rec[:i], rec[i+1:]...), true
	}

	child, ok := rec[i].Value.(Record)
	if !ok {
		return rec, false
	}
	child, removed := deletePath(child, segs[1:])
	if !removed {
		return rec, false
	}
	if len(child) == 0 {
		return append(rec[:i], rec[i+1:]...), true
	}
	rec[i].Value = child
	return rec, true
}
