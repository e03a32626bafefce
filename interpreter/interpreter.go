// interpreter/interpreter.go
package interpreter

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// Function is a user-defined function: its parameter names and its body as
// raw trimmed lines. Bodies are re-dispatched on every call.
type Function struct {
	Name   string
	Params []string
	Body   []string
}

type Interpreter struct {
	vars  map[string]Value
	funcs map[string]*Function

	filename string
	lines    []string

	callStack []string

	out io.Writer
}

func NewWithSource(filename string, source string) *Interpreter {
	return &Interpreter{
		vars:      map[string]Value{},
		funcs:     map[string]*Function{},
		filename:  filename,
		lines:     splitLinesPreserve(source),
		callStack: []string{},
		out:       os.Stdout,
	}
}

func New() *Interpreter { return NewWithSource("", "") }

// SetOutput redirects all interpreter output (log statements and
// diagnostics). Tests and the REPL use this.
func (i *Interpreter) SetOutput(w io.Writer) { i.out = w }

// SetSource points the interpreter at new program text while variables and
// functions persist. Each REPL chunk runs through this so its diagnostics
// and stack frames carry the chunk name.
func (i *Interpreter) SetSource(filename string, source string) {
	i.filename = filename
	i.lines = splitLinesPreserve(source)
}

func splitLinesPreserve(src string) []string {
	if src == "" {
		return []string{}
	}
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")
	return strings.Split(src, "\n")
}

var (
	declPattern = regexp.MustCompile(`^var\s+(\w+)\s*=\s*(.*)$`)
	funcPattern = regexp.MustCompile(`^func\s+(\w+)\((.*?)\)\s*\{`)
	callPattern = regexp.MustCompile(`^(\w+)\((.*)\)`)
	callish     = regexp.MustCompile(`\(.*\)`)
)

// Run executes the whole program: top-level scan, then the automatic main()
// invocation. Every fault is reported on the interpreter's output; Run
// itself never fails, so runtime script errors do not affect the caller's
// exit status.
func (i *Interpreter) Run() {
	err := i.processLines(i.lines)

	if err == nil {
		if fn, ok := i.funcs["main"]; ok {
			fmt.Fprintf(i.out, "Locate the main function and start executing\n\n")
			err = i.callFunction(fn, nil)
		}
	}

	// Outermost catch: the fault already printed a banner at each dispatch
	// level it unwound through; this one carries no line context.
	if err != nil {
		Report(i.out, err)
	}
}

// RunChunk processes the current source lines without the automatic main
// invocation. The REPL executes each input chunk this way, so defining a
// main function does not re-run it on every chunk. Faults are already
// reported at each dispatch level.
func (i *Interpreter) RunChunk() {
	_ = i.processLines(i.lines)
}

// processLines dispatches a statement sequence in order. The first fault is
// reported with this level's line context and aborts the remainder; the
// error is returned so enclosing dispatch levels report it again at their
// own call site.
func (i *Interpreter) processLines(lines []string) error {
	for idx := 0; idx < len(lines); idx++ {
		line := strings.TrimSpace(lines[idx])
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		var err error
		switch {
		case strings.HasPrefix(line, "var "):
			err = i.handleDeclaration(line)
		case strings.HasPrefix(line, "func "):
			idx, err = i.handleDefinition(lines, idx)
		case strings.HasPrefix(line, "log("):
			i.handleLog(line)
		case callish.MatchString(line):
			err = i.handleCall(line)
		default:
			err = newError(SyntaxError, "unknown statement: %s", line)
		}

		if err != nil {
			i.reportAt(idx+1, line, err)
			return err
		}
	}
	return nil
}

// reportAt prints the diagnostic banner for err with this dispatch level's
// line attribution and the script call stack as seen at this level.
func (i *Interpreter) reportAt(line int, text string, err error) {
	re, ok := err.(*RuntimeError)
	if !ok {
		re = &RuntimeError{Kind: EvaluationError, Msg: err.Error()}
	}

	stack := make([]string, 0, len(i.callStack))
	for idx := len(i.callStack) - 1; idx >= 0; idx-- {
		stack = append(stack, i.callStack[idx])
	}

	Report(i.out, &RuntimeError{
		Kind:  re.Kind,
		Msg:   re.Msg,
		Line:  line,
		Text:  text,
		Stack: stack,
	})
}

// var <identifier> = <expression>
func (i *Interpreter) handleDeclaration(line string) error {
	m := declPattern.FindStringSubmatch(line)
	if m == nil {
		return newError(SyntaxError, "variable declaration syntax error: %s", line)
	}
	v, err := evalExpression(m[2], i.vars)
	if err != nil {
		return err
	}
	i.vars[m[1]] = v
	return nil
}

// func <identifier>(<params>) { ... }
//
// Body extraction counts brace lines starting at 1 for the header's opening
// brace; the line that brings the count to 0 terminates the body and is not
// part of it. Returns the index of that terminating line so the caller's
// scan resumes after the block. A body with no terminator runs to the end
// of the input and still registers. The counting is textual, per line: a
// brace inside a string literal counts like any other.
func (i *Interpreter) handleDefinition(lines []string, start int) (int, error) {
	m := funcPattern.FindStringSubmatch(strings.TrimSpace(lines[start]))
	if m == nil {
		return start, newError(SyntaxError, "function definition syntax error: %s",
			strings.TrimSpace(lines[start]))
	}

	name := m[1]
	params := splitList(m[2])

	body := []string{}
	depth := 1
	idx := start + 1
	for ; idx < len(lines); idx++ {
		line := strings.TrimSpace(lines[idx])
		if strings.Contains(line, "{") {
			depth++
		}
		if strings.Contains(line, "}") {
			depth--
			if depth == 0 {
				break
			}
		}
		body = append(body, line)
	}

	// Re-declaration silently overwrites.
	i.funcs[name] = &Function{Name: name, Params: params, Body: body}
	return idx, nil
}

// log(<content>)
//
// A bound variable name prints its value; anything else prints as a literal
// with one layer of surrounding quotes removed. A malformed log prints an
// inline message and never aborts the sequence.
func (i *Interpreter) handleLog(line string) {
	open := strings.Index(line, "(")
	end := strings.LastIndex(line, ")")
	if end <= open+1 {
		fmt.Fprintf(i.out, "log() syntax error: %s\n", line)
		return
	}

	content := strings.TrimSpace(line[open+1 : end])
	if v, ok := i.vars[content]; ok {
		fmt.Fprintln(i.out, v.ToString())
		return
	}
	fmt.Fprintln(i.out, dequote(content))
}

func dequote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// <identifier>(<args>)
func (i *Interpreter) handleCall(line string) error {
	m := callPattern.FindStringSubmatch(line)
	if m == nil {
		return newError(SyntaxError, "function call syntax error: %s", line)
	}

	fn, ok := i.funcs[m[1]]
	if !ok {
		return newError(NameError, "unknown function: %s", m[1])
	}
	return i.callFunction(fn, splitList(m[2]))
}

// callFunction binds arguments to parameters and runs the body as a nested
// statement sequence. The body sees a copy of the caller's scope with the
// parameters bound on top, so caller variables are readable inside the call
// while every write lands in the copy; the saved scope comes back on every
// exit path, faults included, discarding the call's bindings.
func (i *Interpreter) callFunction(fn *Function, args []string) error {
	if len(args) != len(fn.Params) {
		return newError(ValueError, "function %q expects %d arguments, got %d",
			fn.Name, len(fn.Params), len(args))
	}

	bound := make(map[string]Value, len(i.vars)+len(args))
	for k, v := range i.vars {
		bound[k] = v
	}

	// Arguments evaluate in the caller's scope, before the swap. A failing
	// argument is reported and bound as null; only declarations propagate
	// evaluation failures.
	for idx, arg := range args {
		v, err := evalExpression(arg, i.vars)
		if err != nil {
			Report(i.out, err)
			v = NullValue()
		}
		bound[fn.Params[idx]] = v
	}

	saved := i.vars
	i.vars = bound
	i.callStack = append(i.callStack, fmt.Sprintf("%s (%s)", fn.Name, i.sourceName()))
	defer func() {
		i.vars = saved
		i.callStack = i.callStack[:len(i.callStack)-1]
	}()

	return i.processLines(fn.Body)
}

func (i *Interpreter) sourceName() string {
	if i.filename == "" {
		return "<source>"
	}
	return i.filename
}

// splitList splits a comma-separated parameter or argument list, trimming
// each entry and dropping empties. The split is textual, so a comma inside
// a quoted argument splits too.
func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
