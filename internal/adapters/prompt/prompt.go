// Package prompt implements secondary.Prompter on a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ErrNotInteractive is returned when no user is available to answer.
var ErrNotInteractive = errors.New("prompt requires an interactive terminal")

// TerminalPrompter asks yes/no questions on a terminal.
type TerminalPrompter struct {
	reader      *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewTerminalPrompter creates a prompter on stdin/stdout. It refuses to ask
// when nonInteractive is set or stdin is not a terminal.
func NewTerminalPrompter(nonInteractive bool) *TerminalPrompter {
	fd := os.Stdin.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return NewPrompter(os.Stdin, os.Stdout, tty && !nonInteractive)
}

// NewPrompter creates a prompter over arbitrary streams.
func NewPrompter(in io.Reader, out io.Writer, interactive bool) *TerminalPrompter {
	return &TerminalPrompter{
		reader:      bufio.NewReader(in),
		out:         out,
		interactive: interactive,
	}
}

// Confirm asks a yes/no question. Only "y" and "yes" (any case) confirm;
// an empty answer is "no". Running out of input is an error.
func (p *TerminalPrompter) Confirm(question string) (bool, error) {
	if !p.interactive {
		return false, ErrNotInteractive
	}

	fmt.Fprintf(p.out, "%s %s %s ", color.New(color.FgCyan).Sprint("?"), question, color.New(color.Faint).Sprint("(y/N)"))
	input, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && input != "") {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
