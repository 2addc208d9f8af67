package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
)

// Selector asks the user for a choice or a line of text.
type Selector interface {
	Select(message string, options []string, def string) (string, error)
	Input(message, def string) (string, error)
}

// NewSelector picks survey prompts for "survey", numbered plain prompts for
// "plain", and decides by whether stdin is a terminal for "auto".
func NewSelector(mode string, in io.Reader, out io.Writer) Selector {
	switch mode {
	case "survey":
		return surveySelector{}
	case "plain":
		return newPlainSelector(in, out)
	}
	if f, ok := in.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return surveySelector{}
	}
	return newPlainSelector(in, out)
}

type surveySelector struct{}

func (surveySelector) Select(message string, options []string, def string) (string, error) {
	var choice string
	prompt := &survey.Select{
		Message: message,
		Options: options,
	}
	if def != "" {
		prompt.Default = def
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return "", err
	}
	return choice, nil
}

func (surveySelector) Input(message, def string) (string, error) {
	var v string
	if err := survey.AskOne(&survey.Input{Message: message, Default: def}, &v); err != nil {
		return "", err
	}
	return strings.TrimSpace(v), nil
}

type plainSelector struct {
	in  *bufio.Reader
	out io.Writer
}

func newPlainSelector(in io.Reader, out io.Writer) *plainSelector {
	return &plainSelector{in: bufio.NewReader(in), out: out}
}

var errNoOptions = errors.New("no options to choose from")

// Select prints numbered options and reads a number. Empty input takes def.
func (p *plainSelector) Select(message string, options []string, def string) (string, error) {
	if len(options) == 0 {
		return "", errNoOptions
	}
	defIdx := 0
	for i, o := range options {
		if o == def {
			defIdx = i
		}
	}

	fmt.Fprintln(p.out, message)
	for i, o := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, o)
	}
	for {
		fmt.Fprintf(p.out, "Choice [%d]: ", defIdx+1)
		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		if line == "" {
			return options[defIdx], nil
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		fmt.Fprintf(p.out, "Enter a number between 1 and %d.\n", len(options))
	}
}

func (p *plainSelector) Input(message, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", message, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", message)
	}
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// readLine returns io.EOF only when no text was read.
func (p *plainSelector) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
