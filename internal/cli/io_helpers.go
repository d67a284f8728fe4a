package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// console pairs a buffered reader with the output stream so the prompt loop
// can be exercised from tests.
type console struct {
	in  *bufio.Reader
	out io.Writer
}

func newConsole(in io.Reader, out io.Writer) *console {
	return &console{in: bufio.NewReader(in), out: out}
}

func (c *console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *console) println(args ...any) {
	fmt.Fprintln(c.out, args...)
}

// readLine prompts with label and returns the trimmed input. io.EOF is
// surfaced so callers can treat a closed stdin as quit.
func (c *console) readLine(label string) (string, error) {
	fmt.Fprintf(c.out, "%s: ", label)
	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// choose prompts for a numbered selection from options, returning the
// fallback on empty input.
func (c *console) choose(label string, options []string, fallback string) (string, error) {
	for i, opt := range options {
		marker := " "
		if opt == fallback {
			marker = "*"
		}
		fmt.Fprintf(c.out, " %s%d) %s\n", marker, i+1, opt)
	}
	answer, err := c.readLine(label)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return fallback, nil
	}
	if idx, err := strconv.Atoi(answer); err == nil && idx >= 1 && idx <= len(options) {
		return options[idx-1], nil
	}
	for _, opt := range options {
		if strings.EqualFold(opt, answer) {
			return opt, nil
		}
	}
	c.printf("Unrecognized choice %q, using %s\n", answer, fallback)
	return fallback, nil
}

// confirm prompts for a yes/no answer, defaulting to fallback on empty input.
func (c *console) confirm(label string, fallback bool) (bool, error) {
	hint := "y/N"
	if fallback {
		hint = "Y/n"
	}
	answer, err := c.readLine(label + " [" + hint + "]")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "":
		return fallback, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
