package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/calumari/jprune/internal/app"
	"github.com/calumari/jprune/internal/config"
	"github.com/calumari/jprune/internal/ui"
	"github.com/calumari/jprune/tool"
)

type CLI struct {
	Config   string      `help:"Config file (default ./.jprune.toml)." type:"path" env:"JPRUNE_CONFIG"`
	NoColor  bool        `help:"Disable color output." env:"JPRUNE_NO_COLOR"`
	Verbose  bool        `short:"v" help:"Log every input to stderr."`
	Fields   FieldsCmd   `cmd:"" help:"List the field paths of JSON arrays of objects."`
	Remove   RemoveCmd   `cmd:"" help:"Remove field paths from JSON arrays of objects."`
	Compress CompressCmd `cmd:"" help:"Join the non-blank lines of text into one line."`
	Tools    ToolsCmd    `cmd:"" help:"List or search available tools."`
	Run      RunCmd      `cmd:"" help:"Run a tool by name."`
}

type FieldsCmd struct {
	Samples  bool     `short:"s" help:"Show a sample value for every path."`
	TopLevel bool     `help:"Only list top-level keys."`
	Inputs   []string `arg:"" optional:"" help:"Files or doublestar patterns (default stdin)."`
}

type RemoveCmd struct {
	Field  []string `short:"f" required:"" help:"Dot path to remove (repeatable or comma-separated)."`
	Write  bool     `short:"w" help:"Rewrite files in place."`
	Format string   `help:"Output format: json or yaml (default from config)." env:"JPRUNE_FORMAT"`
	Indent int      `help:"Indent width (-1 uses config, 0 for compact)." default:"-1" env:"JPRUNE_INDENT"`
	Inputs []string `arg:"" optional:"" help:"Files or doublestar patterns (default stdin)."`
}

type CompressCmd struct {
	Inputs []string `arg:"" optional:"" help:"Files or doublestar patterns (default stdin)."`
}

type ToolsCmd struct {
	Query []string `arg:"" optional:"" help:"Search terms."`
}

type RunCmd struct {
	Tool   string            `arg:"" help:"Tool name, full or short."`
	Param  map[string]string `short:"p" help:"Tool parameter as key=value."`
	Inputs []string          `arg:"" optional:"" help:"Files or doublestar patterns (default stdin)."`
}

type Context struct {
	Root     string
	Config   config.Config
	Renderer *ui.Renderer
	Logger   *slog.Logger
	Registry *tool.Registry
}

func (c *Context) options(inputs []string) app.Options {
	return app.Options{
		Inputs:   inputs,
		Root:     c.Root,
		Reporter: c.Renderer,
		Logger:   c.Logger,
	}
}

func (c *FieldsCmd) Run(ctx *Context) error {
	return app.Fields(app.FieldsOptions{
		Options:  ctx.options(c.Inputs),
		Samples:  c.Samples,
		TopLevel: c.TopLevel,
	})
}

func (c *RemoveCmd) Run(ctx *Context) error {
	cfg := ctx.Config
	if c.Format != "" {
		cfg.Format = c.Format
	}
	if c.Indent >= 0 {
		cfg.Indent = c.Indent
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return app.Remove(app.RemoveOptions{
		Options: ctx.options(c.Inputs),
		Fields:  c.Field,
		Format:  cfg.Format,
		Indent:  cfg.Indent,
		Write:   c.Write,
	})
}

func (c *CompressCmd) Run(ctx *Context) error {
	return app.Run(app.RunOptions{
		Options:  ctx.options(c.Inputs),
		Registry: ctx.Registry,
		Tool:     "text.compressor",
	})
}

func (c *ToolsCmd) Run(ctx *Context) error {
	ctx.Renderer.Tools(ctx.Registry.Search(strings.Join(c.Query, " ")))
	return nil
}

func (c *RunCmd) Run(ctx *Context) error {
	return app.Run(app.RunOptions{
		Options:  ctx.options(c.Inputs),
		Registry: ctx.Registry,
		Tool:     c.Tool,
		Params:   c.Param,
	})
}

func main() {
	var cli CLI
	parser := kong.Must(&cli,
		kong.Name("jprune"),
		kong.Description("Discover and remove fields in arrays of JSON objects."),
		kong.UsageOnError(),
	)
	ctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	root, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.Load(root, cli.Config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	registry, err := tool.NewRegistry(tool.Builtin())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	noColor := cli.NoColor || cfg.NoColor || os.Getenv("NO_COLOR") != ""
	renderer := ui.NewRenderer(ui.Options{
		NoColor:     noColor,
		Out:         os.Stdout,
		Err:         os.Stderr,
		SampleWidth: cfg.SampleWidth,
	})

	err = ctx.Run(&Context{
		Root:     root,
		Config:   cfg,
		Renderer: renderer,
		Logger:   newLogger(cli.Verbose),
		Registry: registry,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
