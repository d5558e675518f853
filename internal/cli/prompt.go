package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// consolePrompter asks the operator through line-based console input. It
// keeps one buffered reader so typed-ahead answers are not lost between
// prompts.
type consolePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newConsolePrompter(app *AppContext) *consolePrompter {
	return &consolePrompter{in: bufio.NewReader(app.IO.In), out: promptWriter(app)}
}

var errNoInput = errors.New("input closed before an answer was given")

func (p *consolePrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", errNoInput
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Choose prints the numbered options and reads until a valid index arrives.
func (p *consolePrompter) Choose(prompt string, options []string) (int, error) {
	if prompt != "" {
		fmt.Fprintln(p.out, prompt)
	}
	for {
		for i, option := range options {
			fmt.Fprintf(p.out, "[%d] %s\n", i, option)
		}
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		choice, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr == nil && choice >= 0 && choice < len(options) {
			return choice, nil
		}
		fmt.Fprintln(p.out, "invalid input")
	}
}

func (p *consolePrompter) Line(prompt string) (string, error) {
	fmt.Fprintln(p.out, prompt)
	return p.readLine()
}

// Confirm treats an empty answer or y as yes and n as no, in any case.
// Anything else is asked again.
func (p *consolePrompter) Confirm(prompt string) (bool, error) {
	for {
		fmt.Fprintf(p.out, "%s [y/N]? ", prompt)
		line, err := p.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "", "y":
			return true, nil
		case "n":
			return false, nil
		}
		fmt.Fprintln(p.out, "invalid input")
	}
}

// promptYesNo is the strict variant used for destructive CLI housekeeping:
// only y or yes count as yes.
func promptYesNo(app *AppContext, prompt string) (bool, error) {
	p := newConsolePrompter(app)
	fmt.Fprintf(p.out, "%s [y/N]: ", prompt)
	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	response := strings.ToLower(strings.TrimSpace(line))
	return response == "y" || response == "yes", nil
}
