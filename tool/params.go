package tool

import (
	"fmt"
	"strconv"
	"strings"
)

// Params carries named string arguments to a tool.
type Params map[string]string

// List splits the value of key on commas, trimming blanks and dropping empty
// items.
func (p Params) List(key string) []string {
	var out []string
	for _, item := range strings.Split(p[key], ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Int returns the integer value of key, or def when key is unset.
func (p Params) Int(key string, def int) (int, error) {
	raw, ok := p[key]
	if !ok || strings.TrimSpace(raw) == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("param %q: %w", key, err)
	}
	return n, nil
}
