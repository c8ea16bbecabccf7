package tool

// Registration is a deferred tool registration. Packages that define tools
// expose values of this type so callers opt in explicitly instead of relying
// on import side-effects (init functions).
//
// Usage:
//
//	r, _ := tool.NewRegistry(tool.FieldRemover, tool.TextCompressor)
type Registration func(r *Registry) error

// NewTool wraps t into a Registration.
func NewTool(t Tool) Registration {
	return func(r *Registry) error { return r.Register(t) }
}

// Group groups multiple registrations into one. This allows fluent usage
// without variadic expansion, e.g.:
//
//	tool.NewRegistry(tool.Group(tool.FieldRemover, tool.TextCompressor), other)
func Group(regs ...Registration) Registration {
	return func(r *Registry) error { return Apply(r, regs...) }
}

// Apply applies one or more registrations to an existing registry. Stops at the
// first error and returns it.
func Apply(r *Registry, regs ...Registration) error {
	for _, reg := range regs {
		if err := reg(r); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry constructs a new registry and applies the provided registrations.
func NewRegistry(regs ...Registration) (*Registry, error) {
	r := newRegistry()
	if err := Apply(r, regs...); err != nil {
		return nil, err
	}
	return r, nil
}
