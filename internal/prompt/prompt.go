// Package prompt reads interactive tool input from a line-oriented stream.
// Empty input accepts the offered default; "q" or "cancel" (or closing the
// stream) abandons the tool run.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrCancelled reports that the user abandoned the prompt sequence.
var ErrCancelled = errors.New("cancelled")

// Prompter asks for values on out and reads answers from in.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// New returns a prompter over the given streams.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// String asks for a string, returning def on empty input.
func (p *Prompter) String(label, def string) (string, error) {
	fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// Float asks for a number, returning def on empty input and re-asking on
// input that does not parse.
func (p *Prompter) Float(label string, def float64) (float64, error) {
	for {
		fmt.Fprintf(p.out, "%s [%v]: ", label, def)
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		if line == "" {
			return def, nil
		}
		v, err := strconv.ParseFloat(line, 64)
		if err == nil {
			return v, nil
		}
		fmt.Fprintf(p.out, "not a number: %s\n", line)
	}
}

func (p *Prompter) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", ErrCancelled
	}
	line := strings.TrimSpace(p.in.Text())
	switch strings.ToLower(line) {
	case "q", "cancel":
		return "", ErrCancelled
	}
	return line, nil
}
