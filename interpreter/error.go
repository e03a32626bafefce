// interpreter/error.go
package interpreter

import (
	"fmt"
	"io"
	"strings"
)

// ErrorKind classifies a runtime fault.
type ErrorKind string

const (
	// SyntaxError: a line fails every dispatch pattern, or a declaration
	// or function header fails to parse.
	SyntaxError ErrorKind = "SyntaxError"
	// NameError: a call names a function that was never registered.
	NameError ErrorKind = "NameError"
	// ValueError: a call's argument count does not match the parameter count.
	ValueError ErrorKind = "ValueError"
	// EvaluationError: an expression fails to evaluate.
	EvaluationError ErrorKind = "EvaluationError"
)

// RuntimeError is the single error type raised by the interpreter.
// Line is 1-based; 0 means no line context is known.
type RuntimeError struct {
	Kind  ErrorKind
	Msg   string
	Line  int
	Text  string   // trimmed source line, when Line > 0
	Stack []string // script frames, innermost first
}

func (e *RuntimeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d: %s)", e.Kind, e.Msg, e.Line, e.Text)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func newError(kind ErrorKind, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

const bannerRule = "========================================"

// Report prints the uniform diagnostic banner for err. Non-RuntimeError
// values (bootstrap failures) print with a generic kind. The CLI wraps its
// own bootstrap faults through here so every failure looks the same.
func Report(w io.Writer, err error) {
	fmt.Fprintf(w, "\n %s Error text %s \n\n", bannerRule, bannerRule)

	re, ok := err.(*RuntimeError)
	if !ok {
		fmt.Fprintf(w, "Error: %s\n", err)
		return
	}

	fmt.Fprintf(w, "%s: %s\n", re.Kind, re.Msg)
	if re.Line > 0 {
		fmt.Fprintf(w, "    at line %d: %s\n", re.Line, strings.TrimSpace(re.Text))
	}
	for _, frame := range re.Stack {
		fmt.Fprintf(w, "    at %s\n", frame)
	}
}
