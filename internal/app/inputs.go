package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// StdinName labels standard input in reports and logs.
const StdinName = "<stdin>"

type input struct {
	name string
	path string // empty for stdin
}

// resolveInputs expands args into concrete inputs. No args or "-" read stdin;
// arguments containing glob metacharacters are expanded with doublestar
// relative to root; anything else is taken as a file path.
func resolveInputs(root string, args []string) ([]input, error) {
	if len(args) == 0 {
		return []input{{name: StdinName}}, nil
	}

	var out []input
	seen := map[string]bool{}
	add := func(path string) {
		if seen[path] {
			return
		}
		seen[path] = true
		out = append(out, input{name: path, path: path})
	}

	for _, arg := range args {
		switch {
		case arg == "-":
			out = append(out, input{name: StdinName})
		case strings.ContainsAny(arg, "*?[{"):
			matches, err := glob(root, arg)
			if err != nil {
				return nil, err
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("pattern %q matched no files", arg)
			}
			for _, m := range matches {
				add(m)
			}
		default:
			path := arg
			if !filepath.IsAbs(path) && root != "" {
				path = filepath.Join(root, path)
			}
			add(path)
		}
	}
	return out, nil
}

func glob(root, pattern string) ([]string, error) {
	base := root
	pat := filepath.ToSlash(pattern)
	if filepath.IsAbs(pattern) {
		base, pat = doublestar.SplitPattern(pat)
		base = filepath.FromSlash(base)
	}
	matches, err := doublestar.Glob(os.DirFS(base), pat, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	slices.Sort(matches)
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = filepath.Join(base, filepath.FromSlash(m))
	}
	return out, nil
}

func (in input) read(stdin io.Reader) (string, error) {
	if in.path == "" {
		if stdin == nil {
			stdin = os.Stdin
		}
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(in.path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (in input) write(data []byte) error {
	info, err := os.Stat(in.path)
	if err != nil {
		return err
	}
	return os.WriteFile(in.path, data, info.Mode().Perm())
}
