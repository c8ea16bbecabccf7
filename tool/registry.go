package tool

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"
)

const namespaceSep = "."

// Func runs a tool over its text input.
type Func func(input string, params Params) (string, error)

// Tool describes a registered text transformation.
type Tool struct {
	// Name is either "name" or "namespace.name".
	Name        string
	Title       string
	Path        string
	Description string
	Keywords    []string
	CreatedAt   time.Time
	Run         Func
}

// Registry holds tools by fully qualified name. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

func newRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

func validateName(name string) error {
	parts := strings.Split(name, namespaceSep)
	if len(parts) > 2 {
		return fmt.Errorf("tool %q invalid namespace (at most one %q allowed)", name, namespaceSep)
	}
	if len(parts) == 2 && (parts[0] == "" || parts[1] == "") {
		return fmt.Errorf("tool %q invalid namespace (empty segment)", name)
	}
	return nil
}

// Register adds t to the registry. Names must be unique.
func (r *Registry) Register(t Tool) error {
	if err := validateName(t.Name); err != nil {
		return err
	}
	if t.Run == nil {
		return fmt.Errorf("tool %q has no run function", t.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[t.Name]; exists {
		return fmt.Errorf("tool %q already registered", t.Name)
	}
	r.tools[t.Name] = t
	return nil
}

// Lookup resolves name to a tool. A fully qualified or bare name matches
// exactly; otherwise name is treated as a short name and must match exactly
// one namespaced tool.
func (r *Registry) Lookup(name string) (Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if t, ok := r.tools[name]; ok {
		return t, nil
	}
	if strings.Contains(name, namespaceSep) {
		return Tool{}, fmt.Errorf("tool %q not registered", name)
	}

	var candidates []string
	for full := range r.tools {
		if _, short, ok := strings.Cut(full, namespaceSep); ok && short == name {
			candidates = append(candidates, full)
		}
	}
	switch len(candidates) {
	case 0:
		return Tool{}, fmt.Errorf("tool %q not registered", name)
	case 1:
		return r.tools[candidates[0]], nil
	default:
		sort.Strings(candidates)
		return Tool{}, fmt.Errorf("tool %q ambiguous (candidates: %s)", name, strings.Join(candidates, ", "))
	}
}

// Run resolves name and runs the tool over input. Errors name the fully
// qualified tool.
func (r *Registry) Run(name, input string, params Params) (string, error) {
	t, err := r.Lookup(name)
	if err != nil {
		return "", err
	}
	out, err := t.Run(input, params)
	if err != nil {
		return "", fmt.Errorf("tool %q: %w", t.Name, err)
	}
	return out, nil
}

// List returns all tools sorted by name.
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b Tool) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// Search returns the tools whose name, title, description or keywords contain
// every whitespace-separated term of query, case-insensitively. An empty query
// returns every tool.
func (r *Registry) Search(query string) []Tool {
	terms := strings.Fields(strings.ToLower(query))
	var out []Tool
	for _, t := range r.List() {
		if t.matches(terms) {
			out = append(out, t)
		}
	}
	return out
}

func (t Tool) matches(terms []string) bool {
	haystack := strings.ToLower(strings.Join(append([]string{t.Name, t.Title, t.Description}, t.Keywords...), " "))
	for _, term := range terms {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}
