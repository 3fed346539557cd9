// Package ui formats operator-facing messages for the lucid CLI.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Printer writes prefixed, colored messages. Errors go to the error writer,
// everything else to the output writer.
type Printer struct {
	out io.Writer
	err io.Writer
}

// New creates a Printer. Nil writers default to stdout and stderr.
func New(out, err io.Writer) *Printer {
	if out == nil {
		out = os.Stdout
	}
	if err == nil {
		err = os.Stderr
	}
	return &Printer{out: out, err: err}
}

// Out returns the writer used for normal output.
func (p *Printer) Out() io.Writer {
	return p.out
}

// Success prints a green success message.
func (p *Printer) Success(format string, args ...interface{}) {
	p.print(p.out, color.New(color.FgGreen).Sprint("✓"), format, args...)
}

// Info prints a blue informational message.
func (p *Printer) Info(format string, args ...interface{}) {
	p.print(p.out, color.New(color.FgBlue).Sprint("ℹ"), format, args...)
}

// Warning prints a yellow warning.
func (p *Printer) Warning(format string, args ...interface{}) {
	p.print(p.out, color.New(color.FgYellow).Sprint("!"), format, args...)
}

// Error prints a red error to the error writer.
func (p *Printer) Error(format string, args ...interface{}) {
	p.print(p.err, color.New(color.FgRed).Sprint("✗"), format, args...)
}

// Action prints a generator action such as CREATE or SKIP followed by a path.
func (p *Printer) Action(action, path string) {
	var c *color.Color
	switch action {
	case "CREATE":
		c = color.New(color.FgGreen)
	case "OVERWRITE":
		c = color.New(color.FgYellow)
	default:
		c = color.New(color.FgRed)
	}
	fmt.Fprintf(p.out, "%s %s\n", c.Sprint(action+":"), path)
}

func (p *Printer) print(w io.Writer, prefix, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}

// ConfigureColor honors FORCE_COLOR, which parent processes set when they
// capture our output but still want colors, and NO_COLOR.
func ConfigureColor() {
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
		return
	}
	switch strings.ToLower(os.Getenv("FORCE_COLOR")) {
	case "1", "true", "yes":
		color.NoColor = false
	case "0", "false", "no":
		color.NoColor = true
	}
}
