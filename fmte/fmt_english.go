package fmte

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var p *message.Printer

var mx sync.Mutex // Shared across stdout and stderr to keep ordering

var stdout io.Writer = os.Stdout

var stderr io.Writer = os.Stderr

var verbosePrint = false

func init() {
	p = message.NewPrinter(language.English)
}

// VerboseOn turns on verbose print functions within fmte package
func VerboseOn() {
	verbosePrint = true
}

// SetOutput redirects printing (meant for tests). A nil writer leaves that stream unchanged.
func SetOutput(out, errOut io.Writer) {
	mx.Lock()
	defer mx.Unlock()
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

// Printf is goroutine-safe fmt.Printf for English
func Printf(format string, a ...any) {
	mx.Lock()
	_, _ = p.Fprintf(stdout, format, a...)
	mx.Unlock()
}

// PrintfErr is goroutine-safe fmt.Printf to StdErr for English
func PrintfErr(format string, a ...any) {
	mx.Lock()
	_, _ = p.Fprintf(stderr, format, a...)
	mx.Unlock()
}

// PrintfErrV is PrintfErr that prints only in verbose mode
func PrintfErrV(format string, a ...any) {
	if verbosePrint {
		PrintfErr(format, a...)
	}
}

// Errors combines multiple errors into one, prefixed by message
func Errors(message string, errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%s: %w", message, errors.Join(errs...))
}
