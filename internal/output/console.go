package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/urlup/urlup"
	"github.com/urlup/urlup/internal/statuscolor"
)

// Console renders results as human-readable lines in the form
//
//	<original> ==> <final> [<status>]
//
// or, on failure,
//
//	<original> ==> ERROR: <error>
type Console struct {
	w        io.Writer
	explain  bool
	colorize bool
}

// NewConsole returns a Console writing to w. With explain set, each line is
// followed by a wrapped description of what the status code means. With
// colorize set, lines are tinted by status severity.
func NewConsole(w io.Writer, explain, colorize bool) *Console {
	return &Console{w: w, explain: explain, colorize: colorize}
}

// Write renders a single result.
func (c *Console) Write(res urlup.Result) {
	if !res.OK() {
		line := fmt.Sprintf("%s ==> ERROR: %s", res.Original, res.Error)
		if c.colorize {
			line = statuscolor.Error(line)
		}
		fmt.Fprintln(c.w, line)
		return
	}

	line := fmt.Sprintf("%s ==> %s [%d]", res.Original, res.Final, res.Status)
	if c.colorize {
		line = statuscolor.WrapByStatus(line, res.Status)
	}
	fmt.Fprintln(c.w, line)

	if c.explain {
		details := fmt.Sprintf("[status code %d = %s]", res.Status, urlup.CodeMeaning(res.Status))
		text := wrap(details, 78, "   ")
		if c.colorize {
			text = statuscolor.Gray(text)
		}
		fmt.Fprintln(c.w, text)
	}
}

// WriteAll renders results in order.
func (c *Console) WriteAll(results []urlup.Result) {
	for _, res := range results {
		c.Write(res)
	}
}

// wrap folds text to at most width columns per line, prefixing every line
// with indent.
func wrap(text string, width int, indent string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return indent
	}

	var b strings.Builder
	line := indent + words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			b.WriteString(line)
			b.WriteByte('\n')
			line = indent + word
			continue
		}
		line += " " + word
	}
	b.WriteString(line)
	return b.String()
}
