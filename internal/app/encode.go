package app

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/calumari/jprune"
	"github.com/calumari/jprune/internal/config"
)

// encode renders doc in format. YAML output keeps record key order.
func encode(doc jprune.Document, format string, indent int) ([]byte, error) {
	switch format {
	case "", config.FormatJSON:
		out, err := jprune.Marshal(doc, indent)
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case config.FormatYAML:
		opts := []yaml.EncodeOption{yaml.AutoInt()}
		if indent > 0 {
			opts = append(opts, yaml.Indent(indent))
		}
		out, err := yaml.MarshalWithOptions(toYAML(doc), opts...)
		if err != nil {
			return nil, fmt.Errorf("encode YAML: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

func toYAML(v any) any {
	switch val := v.(type) {
	case jprune.Record:
		out := make(yaml.MapSlice, len(val))
		for i, e := range val {
			out[i] = yaml.MapItem{Key: e.Key, Value: toYAML(e.Value)}
		}
		return out
	case jprune.Array:
		return toYAMLSlice(val)
	case jprune.Document:
		return toYAMLSlice(val)
	default:
		return v
	}
}

func toYAMLSlice(s []any) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = toYAML(v)
	}
	return out
}
