package tool

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echo(prefix string) Func {
	return func(input string, _ Params) (string, error) { return prefix + input, nil }
}

func TestRegistry_Register(t *testing.T) {
	t.Run("valid tool registration succeeds", func(t *testing.T) {
		r := newRegistry()
		require.NoError(t, r.Register(Tool{Name: "valid", Run: echo("")}))
	})

	t.Run("namespaced tool registration succeeds", func(t *testing.T) {
		r := newRegistry()
		require.NoError(t, r.Register(Tool{Name: "ns.tool", Run: echo("")}))
	})

	t.Run("duplicate name returns error", func(t *testing.T) {
		r := newRegistry()
		require.NoError(t, r.Register(Tool{Name: "dup", Run: echo("")}))

		err := r.Register(Tool{Name: "dup", Run: echo("")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already registered")
	})

	t.Run("invalid namespace format returns error", func(t *testing.T) {
		r := newRegistry()
		for _, name := range []string{".bad", "bad.", "a.b.c", "."} {
			err := r.Register(Tool{Name: name, Run: echo("")})
			require.Error(t, err, "expected error for name %s", name)
			assert.Contains(t, err.Error(), "invalid namespace")
		}
	})

	t.Run("missing run function returns error", func(t *testing.T) {
		r := newRegistry()
		require.Error(t, r.Register(Tool{Name: "norun"}))
	})
}

func TestRegistry_Lookup(t *testing.T) {
	t.Run("fully qualified name resolves", func(t *testing.T) {
		r := newRegistry()
		require.NoError(t, r.Register(Tool{Name: "ns.val", Run: echo("")}))

		got, err := r.Lookup("ns.val")
		require.NoError(t, err)
		assert.Equal(t, "ns.val", got.Name)
	})

	t.Run("unique short name resolves", func(t *testing.T) {
		r := newRegistry()
		require.NoError(t, r.Register(Tool{Name: "ns.val", Run: echo("")}))

		got, err := r.Lookup("val")
		require.NoError(t, err)
		assert.Equal(t, "ns.val", got.Name)
	})

	t.Run("bare name resolves when namespaced duplicate exists", func(t *testing.T) {
		r := newRegistry()
		require.NoError(t, r.Register(Tool{Name: "val", Run: echo("bare:")}))
		require.NoError(t, r.Register(Tool{Name: "ns.val", Run: echo("ns:")}))

		out, err := r.Run("val", "x", nil)
		require.NoError(t, err)
		assert.Equal(t, "bare:x", out)

		out, err = r.Run("ns.val", "x", nil)
		require.NoError(t, err)
		assert.Equal(t, "ns:x", out)
	})

	t.Run("missing tool returns error", func(t *testing.T) {
		r := newRegistry()
		_, err := r.Lookup("missing")
		require.Error(t, err)
		_, err = r.Lookup("ns.missing")
		require.Error(t, err)
	})

	t.Run("ambiguous short name returns error", func(t *testing.T) {
		r := newRegistry()
		require.NoError(t, r.Register(Tool{Name: "b.value", Run: echo("")}))
		require.NoError(t, r.Register(Tool{Name: "a.value", Run: echo("")}))

		_, err := r.Lookup("value")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ambiguous")
		assert.Contains(t, err.Error(), "a.value, b.value")

		got, err := r.Lookup("a.value")
		require.NoError(t, err)
		assert.Equal(t, "a.value", got.Name)
	})
}

func TestRegistry_Run(t *testing.T) {
	t.Run("tool error wraps error", func(t *testing.T) {
		r := newRegistry()
		require.NoError(t, r.Register(Tool{Name: "ns.err", Run: func(string, Params) (string, error) { return "", assert.AnError }}))

		out, err := r.Run("err", "x", nil) // short name
		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "ns.err")
		assert.Empty(t, out)
	})

	t.Run("lookup error is returned", func(t *testing.T) {
		r := newRegistry()
		_, err := r.Run("missing", "x", nil)
		require.Error(t, err)
	})
}

func TestRegistry_ListAndSearch(t *testing.T) {
	r := newRegistry()
	require.NoError(t, r.Register(Tool{Name: "text.upper", Title: "Upper", Keywords: []string{"case"}, Run: echo("")}))
	require.NoError(t, r.Register(Tool{Name: "json.sort", Title: "Sort keys", Description: "Sorts JSON object keys", Run: echo("")}))

	names := func(tools []Tool) []string {
		var out []string
		for _, t := range tools {
			out = append(out, t.Name)
		}
		return out
	}

	t.Run("list is sorted by name", func(t *testing.T) {
		assert.Equal(t, []string{"json.sort", "text.upper"}, names(r.List()))
	})

	t.Run("empty query returns everything", func(t *testing.T) {
		assert.Len(t, r.Search("  "), 2)
	})

	t.Run("matches keywords case-insensitively", func(t *testing.T) {
		assert.Equal(t, []string{"text.upper"}, names(r.Search("CASE")))
	})

	t.Run("every term must match", func(t *testing.T) {
		assert.Equal(t, []string{"json.sort"}, names(r.Search("json keys")))
		assert.Empty(t, r.Search("json case"))
	})
}

func TestRegistryEdgeCases(t *testing.T) {
	t.Run("concurrent registration and calls are safe", func(t *testing.T) {
		r := newRegistry()
		done := make(chan bool, 2)

		go func() {
			defer func() { done <- true }()
			_ = r.Register(Tool{Name: "concurrent", Run: echo("ok:")})
		}()

		go func() {
			defer func() { done <- true }()
			_, _ = r.Run("concurrent", "x", nil) // might error, we don't care
			_ = r.Search("concurrent")
		}()

		<-done
		<-done

		out, err := r.Run("concurrent", "x", nil)
		require.NoError(t, err)
		assert.Equal(t, "ok:x", out)
	})

	t.Run("empty string name is valid", func(t *testing.T) {
		r := newRegistry()
		require.NoError(t, r.Register(Tool{Name: "", Run: echo("empty")}))

		out, err := r.Run("", "", nil)
		require.NoError(t, err)
		assert.Equal(t, "empty", out)
	})

	t.Run("namespace with single character names", func(t *testing.T) {
		r := newRegistry()
		require.NoError(t, r.Register(Tool{Name: "a.b", Run: echo("")}))

		got, err := r.Lookup("b")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got.Name, "a."))
	})
}
