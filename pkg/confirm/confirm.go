// Package confirm asks the user to approve destructive commands.
package confirm

import (
	"errors"
	"io"
	"strconv"

	"github.com/manifoldco/promptui"
)

// Prompter asks a yes/no question.
type Prompter interface {
	Confirm(label string) (bool, error)
}

// Prompt is a promptui backed Prompter. Zero values read stdin and write stdout.
type Prompt struct {
	In  io.ReadCloser
	Out io.WriteCloser
}

// Confirm asks label and reports whether the user agreed. Declining or
// interrupting the prompt is not an error.
func (p Prompt) Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     p.In,
		Stdout:    p.Out,
	}
	result, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return false, nil
		}
		return false, err
	}
	if result == "" {
		return false, nil
	}
	return ParseBool(result)
}

// Always approves without asking, for --yes.
type Always struct{}

func (Always) Confirm(string) (bool, error) { return true, nil }

// ParseBool is strconv.ParseBool with the addition of Yes/No parsing.
func ParseBool(str string) (bool, error) {
	switch str {
	case "1", "t", "T", "true", "TRUE", "True", "y", "Y", "yes", "YES", "Yes":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "n", "N", "no", "NO", "No":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}

// NopCloser wraps w so it can be handed to a prompt as its output.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
