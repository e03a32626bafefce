package interpreter

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestReportFormatsRuntimeError(t *testing.T) {
	var out bytes.Buffer
	Report(&out, &RuntimeError{
		Kind:  SyntaxError,
		Msg:   "unknown statement: ???",
		Line:  3,
		Text:  "???",
		Stack: []string{"inner (demo.jvs)", "main (demo.jvs)"},
	})

	got := out.String()
	for _, want := range []string{
		"Error text",
		"SyntaxError: unknown statement: ???",
		"    at line 3: ???",
		"    at inner (demo.jvs)",
		"    at main (demo.jvs)",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("report missing %q:\n%s", want, got)
		}
	}
}

func TestReportSuppressesUnknownLine(t *testing.T) {
	var out bytes.Buffer
	Report(&out, &RuntimeError{Kind: NameError, Msg: "unknown function: f"})

	got := out.String()
	if strings.Contains(got, "at line") {
		t.Fatalf("line printed without line context:\n%s", got)
	}
	if !strings.Contains(got, "NameError: unknown function: f") {
		t.Fatalf("missing kind and message:\n%s", got)
	}
}

func TestReportWrapsPlainErrors(t *testing.T) {
	var out bytes.Buffer
	Report(&out, errors.New("file not found: demo.jvs"))

	got := out.String()
	if !strings.Contains(got, "Error text") || !strings.Contains(got, "file not found: demo.jvs") {
		t.Fatalf("bootstrap error not bannered:\n%s", got)
	}
}

func TestRuntimeErrorString(t *testing.T) {
	err := &RuntimeError{Kind: ValueError, Msg: "boom", Line: 2, Text: "f(1)"}
	if got := err.Error(); got != "ValueError: boom (line 2: f(1))" {
		t.Fatalf("Error() = %q", got)
	}
	err = &RuntimeError{Kind: ValueError, Msg: "boom"}
	if got := err.Error(); got != "ValueError: boom" {
		t.Fatalf("Error() = %q", got)
	}
}
