package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const ruleWidth = 72

// Writer renders the diagnostic report. All stage output goes through it, so
// nothing else in the run writes to stdout directly.
type Writer struct {
	out io.Writer
}

func New(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Section prints a banner-delimited section title.
func (w *Writer) Section(title string) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintf(w.out, "\n%s\n%s\n%s\n", rule, title, rule)
}

func (w *Writer) Printf(format string, args ...any) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Field prints a labeled value on one line.
func (w *Writer) Field(label string, value any) {
	fmt.Fprintf(w.out, "%s: %v\n", label, value)
}

// Command echoes a command about to run, with its working directory.
func (w *Writer) Command(argv []string, dir string) {
	fmt.Fprintf(w.out, "\n$ %s  (cwd=%s)\n", strings.Join(argv, " "), dir)
}

// Raw writes captured process output verbatim, ensuring a trailing newline.
func (w *Writer) Raw(s string) {
	fmt.Fprint(w.out, s)
	if s == "" || !strings.HasSuffix(s, "\n") {
		fmt.Fprintln(w.out)
	}
}

// JSON prints a labeled value as indented JSON, falling back to %v when the
// value cannot be marshalled.
func (w *Writer) JSON(label string, v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		w.Field(label, v)
		return
	}
	fmt.Fprintf(w.out, "%s: %s\n", label, b)
}
