package app

import "github.com/calumari/jprune"

type ProgressReporter interface {
	Increment(label string)
	Done()
}

type Reporter interface {
	Fields(source string, paths []string)
	Samples(source string, samples []jprune.Sample)
	Written(path string)
	Failed(source string, err error)
	Summary(ok, failed int)
	Progress(label string, total int) ProgressReporter
}

type noopReporter struct{}

func (n noopReporter) Fields(string, []string)               {}
func (n noopReporter) Samples(string, []jprune.Sample)       {}
func (n noopReporter) Written(string)                        {}
func (n noopReporter) Failed(string, error)                  {}
func (n noopReporter) Summary(int, int)                      {}
func (n noopReporter) Progress(string, int) ProgressReporter { return noopProgress{} }

type noopProgress struct{}

func (n noopProgress) Increment(string) {}
func (n noopProgress) Done()            {}

func ensureReporter(reporter Reporter) Reporter {
	if reporter == nil {
		return noopReporter{}
	}
	return reporter
}
