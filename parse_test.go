package jprune

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const people = `[
    { "id": 1, "name": "Alice", "age": 20 },
    { "id": 2, "name": "Bob", "city": "NY" }
  ]`

func TestParseDocument(t *testing.T) {
	t.Run("parses strict JSON array", func(t *testing.T) {
		doc, err := ParseDocument(people)
		require.NoError(t, err)
		require.Len(t, doc, 2)
		assert.Equal(t, Record{
			{Key: "id", Value: float64(1)},
			{Key: "name", Value: "Alice"},
			{Key: "age", Value: float64(20)},
		}, doc[0])
	})

	t.Run("empty array", func(t *testing.T) {
		doc, err := ParseDocument(`[]`)
		require.NoError(t, err)
		assert.Len(t, doc, 0)
	})

	t.Run("accepts relaxed syntax", func(t *testing.T) {
		doc, err := ParseDocument(`[
			// people
			{id: 1, name: 'Alice', tags: ['a', 'b',],},
			/* second */ {$ref: "x", _n: +2, f: .5, g: 5., h: 0xFF, "q": 'it\'s'},
		]`)
		require.NoError(t, err)
		require.Len(t, doc, 2)
		assert.Equal(t, Record{
			{Key: "id", Value: float64(1)},
			{Key: "name", Value: "Alice"},
			{Key: "tags", Value: Array{"a", "b"}},
		}, doc[0])
		assert.Equal(t, Record{
			{Key: "$ref", Value: "x"},
			{Key: "_n", Value: float64(2)},
			{Key: "f", Value: 0.5},
			{Key: "g", Value: float64(5)},
			{Key: "h", Value: float64(255)},
			{Key: "q", Value: "it's"},
		}, doc[1])
	})

	t.Run("reserved words as unquoted keys", func(t *testing.T) {
		doc, err := ParseDocument(`[{true: 1, null: false}]`)
		require.NoError(t, err)
		assert.Equal(t, Record{{Key: "true", Value: float64(1)}, {Key: "null", Value: false}}, doc[0])
	})

	t.Run("string escapes", func(t *testing.T) {
		doc, err := ParseDocument(`['\x41é\u{1F600}😀\t"', "line\
cont"]`)
		require.NoError(t, err)
		assert.Equal(t, Document{"Aé😀😀\t\"", "linecont"}, doc)
	})

	t.Run("adjacent values need a separator", func(t *testing.T) {
		_, err := ParseDocument(`[1+2]`)
		var pe *ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, 3, pe.Column)
		assert.Contains(t, pe.Msg, "unexpected number")

		doc, err := ParseDocument(`[1,+2,/**/3, {a:-1}]`)
		require.NoError(t, err)
		assert.Equal(t, Document{float64(1), float64(2), float64(3), Record{{Key: "a", Value: float64(-1)}}}, doc)
	})

	t.Run("non-record elements are kept", func(t *testing.T) {
		doc, err := ParseDocument(`[1, "two", null, [3], {a: 1}]`)
		require.NoError(t, err)
		assert.Equal(t, Document{float64(1), "two", nil, Array{float64(3)}, Record{{Key: "a", Value: float64(1)}}}, doc)
	})

	t.Run("non-array top level fails with NotAnArrayError", func(t *testing.T) {
		tests := map[string]string{
			`{"a":1}`: "object",
			`"text"`:  "string",
			`42`:      "number",
			`true`:    "boolean",
			`null`:    "null",
		}
		for src, kind := range tests {
			t.Run(src, func(t *testing.T) {
				_, err := ParseDocument(src)
				require.Error(t, err)
				var nae *NotAnArrayError
				require.True(t, errors.As(err, &nae))
				assert.Equal(t, kind, nae.Kind)
				assert.ErrorIs(t, err, ErrNotArray)
				assert.NotErrorIs(t, err, ErrParse)
				assert.Contains(t, err.Error(), "expected an array")
			})
		}
	})

	t.Run("malformed text fails with ParseError", func(t *testing.T) {
		tests := []string{
			`{a: }`,
			``,
			`   `,
			`[1, 2`,
			`[1,,]`,
			`[,]`,
			`['unterminated]`,
			"['line\nbreak']",
			`[foo]`,
			`[Infinity]`,
			`[-NaN]`,
			`[0x]`,
			`[1e]`,
			`[.]`,
			`[1] [2]`,
			`[/* open`,
			`[1] /`,
			`[@]`,
			`[01]`,
			`[1..5]`,
			`[1+2]`,
			`[0x1.5]`,
			`[0x10+3]`,
			`[1.5+2]`,
			`[{a: 1+2}]`,
			`[1true]`,
			`['\8']`,
			`["\1"]`,
		}
		for _, src := range tests {
			t.Run(src, func(t *testing.T) {
				_, err := ParseDocument(src)
				require.Error(t, err)
				var pe *ParseError
				require.True(t, errors.As(err, &pe), "expected ParseError, got %T: %v", err, err)
				assert.ErrorIs(t, err, ErrParse)
				assert.NotErrorIs(t, err, ErrNotArray)
			})
		}
	})

	t.Run("parse error position refers to the input text", func(t *testing.T) {
		_, err := ParseDocument("[\n  {a: 1},\n  {b: }\n]")
		var pe *ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, 3, pe.Line)
		assert.Contains(t, []int{6, 7}, pe.Column)
	})

	t.Run("normalizer error position", func(t *testing.T) {
		_, err := ParseDocument("[\n  'abc")
		var pe *ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, 2, pe.Line)
		assert.Equal(t, 3, pe.Column)
		assert.Contains(t, pe.Error(), "unterminated string")
	})
}

func TestMustParseDocument(t *testing.T) {
	t.Run("panics on error", func(t *testing.T) {
		require.Panics(t, func() { MustParseDocument(`{}`) })
	})

	t.Run("returns document", func(t *testing.T) {
		require.Len(t, MustParseDocument(`[1]`), 1)
	})
}

func TestPosition(t *testing.T) {
	src := []byte("ab\r\ncd\ré")
	line, col := position(src, 0)
	assert.Equal(t, []int{1, 1}, []int{line, col})
	line, col = position(src, 5)
	assert.Equal(t, []int{2, 2}, []int{line, col})
	line, col = position(src, len(src))
	assert.Equal(t, []int{3, 2}, []int{line, col})
}
