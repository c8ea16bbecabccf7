package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/calumari/jprune"
	"github.com/calumari/jprune/internal/app"
	"github.com/calumari/jprune/tool"
)

type Options struct {
	NoColor     bool
	Out         io.Writer
	Err         io.Writer
	SampleWidth int
}

type Renderer struct {
	out         io.Writer
	err         io.Writer
	isTTY       bool
	noColor     bool
	sampleWidth int
	styles      styles
}

type styles struct {
	path    lipgloss.Style
	source  lipgloss.Style
	sample  lipgloss.Style
	ok      lipgloss.Style
	error   lipgloss.Style
	label   lipgloss.Style
	tool    lipgloss.Style
	summary lipgloss.Style
}

func NewRenderer(opts Options) *Renderer {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := opts.Err
	if errOut == nil {
		errOut = os.Stderr
	}
	isTTY := isTerminal(out)
	profile := termenv.EnvColorProfile()
	if opts.NoColor || !isTTY {
		profile = termenv.Ascii
	}
	lipgloss.SetColorProfile(profile)

	width := opts.SampleWidth
	if width <= 0 {
		width = 48
	}

	return &Renderer{
		out:         out,
		err:         errOut,
		isTTY:       isTTY,
		noColor:     opts.NoColor || profile == termenv.Ascii,
		sampleWidth: width,
		styles: styles{
			path:    lipgloss.NewStyle().Foreground(lipgloss.Color("69")).Bold(true),
			source:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Underline(true),
			sample:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
			ok:      lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
			error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			label:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			tool:    lipgloss.NewStyle().Foreground(lipgloss.Color("105")).Bold(true),
			summary: lipgloss.NewStyle().Bold(true),
		},
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (r *Renderer) header(source string) {
	if source == app.StdinName {
		return
	}
	r.println(r.styles.source.Render(source))
}

func (r *Renderer) Fields(source string, paths []string) {
	r.header(source)
	for _, p := range paths {
		r.println(r.styles.path.Render(p))
	}
}

func (r *Renderer) Samples(source string, samples []jprune.Sample) {
	r.header(source)
	width := 0
	for _, s := range samples {
		width = max(width, ansi.StringWidth(s.Path))
	}
	for _, s := range samples {
		path := r.styles.path.Render(s.Path + strings.Repeat(" ", width-ansi.StringWidth(s.Path)))
		r.println(path + "  " + r.styles.sample.Render(truncate(formatSample(s.Value), r.sampleWidth)))
	}
}

func (r *Renderer) Written(path string) {
	r.println(r.styles.ok.Render("wrote") + " " + path)
}

func (r *Renderer) Failed(source string, err error) {
	r.eprintln(r.styles.error.Render("failed") + " " + source + ": " + err.Error())
}

func (r *Renderer) Summary(ok, failed int) {
	msg := fmt.Sprintf("summary: %d ok, %d failed", ok, failed)
	r.eprintln(r.styles.summary.Render(msg))
}

func (r *Renderer) Tools(tools []tool.Tool) {
	if len(tools) == 0 {
		r.println(r.styles.label.Render("no tools found"))
		return
	}
	for _, t := range tools {
		msg := r.styles.tool.Render(t.Name) + " " + r.styles.label.Render(t.Path)
		if t.Description != "" {
			msg += "\n  " + t.Description
		}
		r.println(msg)
	}
}

func (r *Renderer) Progress(label string, total int) app.ProgressReporter {
	if total <= 0 {
		return noopProgress{}
	}
	return &progressReporter{
		out:     r.err,
		total:   total,
		label:   label,
		enabled: r.isTTY,
		model: progress.New(
			progress.WithWidth(28),
			progress.WithDefaultGradient(),
		),
	}
}

func (r *Renderer) println(message string) {
	if strings.TrimSpace(message) == "" {
		return
	}
	fmt.Fprintln(r.out, message)
}

func (r *Renderer) eprintln(message string) {
	fmt.Fprintln(r.err, message)
}

type progressReporter struct {
	out     io.Writer
	model   progress.Model
	total   int
	current int
	label   string
	enabled bool
}

func (p *progressReporter) Increment(label string) {
	if label != "" {
		p.label = label
	}
	p.current++
	if p.enabled {
		p.renderLine()
	}
}

func (p *progressReporter) Done() {
	if !p.enabled {
		return
	}
	p.current = p.total
	p.renderLine()
}

func (p *progressReporter) renderLine() {
	percent := float64(p.current) / float64(p.total)
	bar := p.model.ViewAs(percent)
	fmt.Fprintf(p.out, "\r%s %d/%d %s", bar, p.current, p.total, truncate(p.label, 64))
	if p.current >= p.total {
		fmt.Fprintln(p.out)
	}
}

type noopProgress struct{}

func (n noopProgress) Increment(string) {}
func (n noopProgress) Done()            {}

func formatSample(v any) string {
	out, err := jprune.Marshal(v, 0)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(out)
}

// truncate cuts value to at most max terminal cells.
func truncate(value string, max int) string {
	if ansi.StringWidth(value) <= max {
		return value
	}
	if max <= 3 {
		return ansi.Truncate(value, max, "")
	}
	return ansi.Truncate(value, max, "...")
}
