package identify

import (
	"go.uber.org/zap"

	"github.com/m-manu/digipres-columns/fmte"
)

// Reporter receives identification failures. This is the diagnostics channel: results
// still go back to the caller, failures go here.
type Reporter interface {
	Report(failure *Failure)
}

// ReporterFunc adapts a function to Reporter
type ReporterFunc func(failure *Failure)

func (f ReporterFunc) Report(failure *Failure) {
	f(failure)
}

// Discard drops all failures
var Discard Reporter = ReporterFunc(func(*Failure) {})

type consoleReporter struct{}

// NewConsoleReporter prints failures to stderr, with the underlying error in verbose mode
func NewConsoleReporter() Reporter {
	return consoleReporter{}
}

func (consoleReporter) Report(failure *Failure) {
	fmte.PrintfErr("%s\n", failure.Message())
	if failure.Err != nil {
		fmte.PrintfErrV("  %s: %v\n", failure.Kind, failure.Err)
	}
}

type zapReporter struct {
	logger *zap.Logger
}

// NewZapReporter logs failures as structured warnings
func NewZapReporter(logger *zap.Logger) Reporter {
	return zapReporter{logger: logger}
}

func (r zapReporter) Report(failure *Failure) {
	r.logger.Warn(failure.Message(),
		zap.String("kind", failure.Kind.String()),
		zap.String("path", failure.Path),
		zap.Error(failure.Err),
	)
}
