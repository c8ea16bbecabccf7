package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/calumari/jprune"
	"github.com/calumari/jprune/tool"
)

// Options are shared by every batch operation.
type Options struct {
	// Inputs are file paths or doublestar patterns. Empty reads Stdin.
	Inputs   []string
	Root     string
	Stdin    io.Reader
	Stdout   io.Writer
	Reporter Reporter
	Logger   *slog.Logger
}

type FieldsOptions struct {
	Options
	Samples  bool
	TopLevel bool
}

type RemoveOptions struct {
	Options
	Fields []string
	Format string
	Indent int
	// Write rewrites file inputs in place instead of printing them.
	Write bool
}

type RunOptions struct {
	Options
	Registry *tool.Registry
	Tool     string
	Params   tool.Params
}

// ErrFailed is returned when at least one input could not be processed.
var ErrFailed = errors.New("some inputs failed")

// Fields reports the field paths of every input.
func Fields(opts FieldsOptions) error {
	reporter := ensureReporter(opts.Reporter)
	return each(opts.Options, "fields", func(in input, text string) error {
		doc, err := jprune.ParseDocument(text)
		if err != nil {
			return err
		}
		switch {
		case opts.Samples:
			reporter.Samples(in.name, jprune.Samples(doc))
		case opts.TopLevel:
			reporter.Fields(in.name, jprune.TopLevelKeys(doc))
		default:
			reporter.Fields(in.name, jprune.Paths(doc))
		}
		return nil
	})
}

// Remove deletes opts.Fields from every input and prints or rewrites the
// result.
func Remove(opts RemoveOptions) error {
	if len(opts.Fields) == 0 {
		return errors.New("no fields to remove")
	}
	if opts.Write {
		for _, in := range opts.Inputs {
			if in == "-" {
				return errors.New("cannot write stdin in place")
			}
		}
		if len(opts.Inputs) == 0 {
			return errors.New("cannot write stdin in place")
		}
	}
	reporter := ensureReporter(opts.Reporter)
	stdout := ensureWriter(opts.Stdout)

	return each(opts.Options, "remove", func(in input, text string) error {
		doc, err := jprune.ParseDocument(text)
		if err != nil {
			return err
		}
		out, err := encode(jprune.RemoveFields(doc, opts.Fields), opts.Format, opts.Indent)
		if err != nil {
			return err
		}
		if opts.Write {
			if err := in.write(out); err != nil {
				return err
			}
			reporter.Written(in.name)
			return nil
		}
		_, err = stdout.Write(out)
		return err
	})
}

// Run runs a registered tool over every input and prints each result on its
// own line.
func Run(opts RunOptions) error {
	if opts.Registry == nil {
		return errors.New("no tool registry")
	}
	t, err := opts.Registry.Lookup(opts.Tool)
	if err != nil {
		return err
	}
	stdout := ensureWriter(opts.Stdout)

	return each(opts.Options, "run", func(_ input, text string) error {
		out, err := opts.Registry.Run(t.Name, text, opts.Params)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, out)
		return err
	})
}

// each resolves the inputs and calls fn for every one of them. A single input
// fails with its own error. With several inputs, failures are reported and
// processing moves on; ErrFailed is returned at the end if any input failed.
func each(opts Options, op string, fn func(in input, text string) error) error {
	reporter := ensureReporter(opts.Reporter)
	log := ensureLogger(opts.Logger).With(slog.String("op", op))

	inputs, err := resolveInputs(opts.Root, opts.Inputs)
	if err != nil {
		return err
	}

	progress := reporter.Progress(op, len(inputs))
	if len(inputs) < 2 {
		progress = noopProgress{}
	}

	failed := 0
	var lastErr error
	for _, in := range inputs {
		start := time.Now()
		text, err := in.read(opts.Stdin)
		if err == nil {
			err = fn(in, text)
		}
		if err != nil {
			failed++
			lastErr = err
			log.Error("app."+op+".fail", slog.String("input", in.name), slog.String("err", err.Error()))
			if len(inputs) > 1 {
				reporter.Failed(in.name, err)
			}
		} else {
			log.Debug("app."+op+".ok", slog.String("input", in.name), slog.Int64("dur_ms", time.Since(start).Milliseconds()))
		}
		progress.Increment(in.name)
	}
	progress.Done()

	if len(inputs) == 1 {
		if lastErr != nil {
			return fmt.Errorf("%s: %w", inputs[0].name, lastErr)
		}
		return nil
	}
	reporter.Summary(len(inputs)-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs: %w", failed, len(inputs), ErrFailed)
	}
	return nil
}

func ensureLogger(log *slog.Logger) *slog.Logger {
	if log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return log
}

func ensureWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
