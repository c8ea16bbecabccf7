package jprune

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaths(t *testing.T) {
	t.Run("top-level keys sorted and deduplicated", func(t *testing.T) {
		doc := MustParseDocument(`[{"id":1,"name":"A","age":20},{"id":2,"name":"B","city":"NY"}]`)
		assert.Equal(t, []string{"age", "city", "id", "name"}, Paths(doc))
	})

	t.Run("nested records use dot-joined paths", func(t *testing.T) {
		doc := MustParseDocument(`[{"id":1,"meta":{"a":1}},{"id":2,"age":30}]`)
		assert.Equal(t, []string{"age", "id", "meta", "meta.a"}, Paths(doc))
	})

	t.Run("arrays are traversed without index segments", func(t *testing.T) {
		doc := MustParseDocument(`[{"items":[{"sku":"x"},{"qty":2},[{"deep":true}]]},[{"loose":1}]]`)
		assert.Equal(t, []string{"items", "items.deep", "items.qty", "items.sku", "loose"}, Paths(doc))
	})

	t.Run("scalar elements contribute nothing", func(t *testing.T) {
		doc := MustParseDocument(`[1, "x", null, {"a": 1}]`)
		assert.Equal(t, []string{"a"}, Paths(doc))
	})

	t.Run("empty document", func(t *testing.T) {
		assert.Empty(t, Paths(Document{}))
	})

	t.Run("sorted lexicographically by full path", func(t *testing.T) {
		doc := MustParseDocument(`[{"b":{"z":1,"a":2},"a":{"b":1},"B":0}]`)
		assert.Equal(t, []string{"B", "a", "a.b", "b", "b.a", "b.z"}, Paths(doc))
	})
}

func TestSamples(t *testing.T) {
	t.Run("first value seen wins", func(t *testing.T) {
		doc := MustParseDocument(`[
			{"id": 1, "name": "Alice", "meta": {"a": 1}},
			{"id": 2, "name": "Bob", "age": 30, "meta": {"a": 99, "b": null}}
		]`)
		got := Samples(doc)
		assert.Equal(t, []Sample{
			{Path: "age", Value: float64(30)},
			{Path: "id", Value: float64(1)},
			{Path: "meta", Value: Record{{Key: "a", Value: float64(1)}}},
			{Path: "meta.a", Value: float64(1)},
			{Path: "meta.b", Value: nil},
			{Path: "name", Value: "Alice"},
		}, got)
	})

	t.Run("samples are copies", func(t *testing.T) {
		doc := MustParseDocument(`[{"meta": {"a": 1}}]`)
		got := Samples(doc)
		require.Equal(t, "meta", got[0].Path)
		got[0].Value.(Record)[0].Value = "changed"

		v, _ := doc[0].(Record).Get("meta")
		assert.Equal(t, Record{{Key: "a", Value: float64(1)}}, v)
	})

	t.Run("does not mutate the document", func(t *testing.T) {
		doc := MustParseDocument(`[{"a": {"b": [1, {"c": 2}]}}]`)
		snapshot := Clone(doc)
		_ = Samples(doc)
		_ = Paths(doc)
		assert.Equal(t, snapshot, doc)
	})
}

func TestDiscoverFields(t *testing.T) {
	doc := MustParseDocument(`[{"a":1,"m":{"x":true}}]`)

	t.Run("paths mode", func(t *testing.T) {
		d := DiscoverFields(doc, ModePaths)
		assert.Equal(t, ModePaths, d.Mode)
		assert.Equal(t, []string{"a", "m", "m.x"}, d.Paths)
		assert.Nil(t, d.Samples)
	})

	t.Run("samples mode", func(t *testing.T) {
		d := DiscoverFields(doc, ModeSamples)
		assert.Equal(t, ModeSamples, d.Mode)
		assert.Nil(t, d.Paths)
		require.Len(t, d.Samples, 3)
		assert.Equal(t, Sample{Path: "m.x", Value: true}, d.Samples[2])
	})

	t.Run("mode names", func(t *testing.T) {
		assert.Equal(t, "paths", ModePaths.String())
		assert.Equal(t, "samples", ModeSamples.String())
		assert.Equal(t, "unknown", Mode(9).String())
	})
}

func TestTopLevelKeys(t *testing.T) {
	t.Run("only top-level keys of records", func(t *testing.T) {
		doc := MustParseDocument(`[{"a":1,"b":2},{"a":3,"c":{"d":4}},[{"e":5}],7]`)
		assert.Equal(t, []string{"a", "b", "c"}, TopLevelKeys(doc))
	})
}
