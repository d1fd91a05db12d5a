package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiBold  = "\033[1m"
	ansiRed   = "\033[31m"
	ansiReset = "\033[0m"
)

// ColorEnabled resolves a color mode ("auto", "always", "never") for f.
// In auto mode color is used only for terminals, honoring NO_COLOR and
// TERM=dumb.
func ColorEnabled(f *os.File, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Printer writes diagnostics one per line.
type Printer struct {
	w     io.Writer
	color bool
}

func NewPrinter(w io.Writer, color bool) *Printer {
	return &Printer{w: w, color: color}
}

func (p *Printer) Print(err *DiagnosticError) error {
	if !p.color {
		_, werr := fmt.Fprintln(p.w, err.Error())
		return werr
	}
	var werr error
	if err.HasPosition() {
		_, werr = fmt.Fprintf(p.w, "%s%s%s, %s%s%s: %s\n",
			ansiBold, err.Location(), ansiReset,
			ansiRed, err.Kind(), ansiReset, err.Message)
	} else {
		_, werr = fmt.Fprintf(p.w, "%s%s%s: %s\n", ansiRed, err.Kind(), ansiReset, err.Message)
	}
	return werr
}

func (p *Printer) PrintAll(errs []*DiagnosticError) error {
	for _, err := range errs {
		if werr := p.Print(err); werr != nil {
			return werr
		}
	}
	return nil
}
