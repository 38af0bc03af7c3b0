// Package stylesetter turns style struct fields into fluent setter methods.
//
// Each input line is a field declaration copied from the style struct, such
// as "    width: u32,". The fixed-width indentation and trailing comma are
// stripped and the remaining "name: type" pair becomes
//
//	pub fn width(&mut self, width: u32) -> &mut Self { self.style.width = width; self.mark_dirty() }
package stylesetter

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"shireesh.com/boilergen/internal/textgen"
)

const (
	DefaultPrefixWidth = 4
	DefaultSuffixWidth = 1

	separator = ": "
)

var (
	ErrShortLine        = errors.New("line shorter than prefix and suffix")
	ErrMissingSeparator = errors.New("attribute line lacks \"name: type\"")
	ErrNegativeWidth    = errors.New("negative prefix or suffix width")
)

// Options describes the fixed-width wrapping around every attribute.
// The suffix is counted after the line terminator is removed.
type Options struct {
	PrefixWidth int
	SuffixWidth int
}

// DefaultOptions matches four-space indented, comma terminated fields.
func DefaultOptions() Options {
	return Options{PrefixWidth: DefaultPrefixWidth, SuffixWidth: DefaultSuffixWidth}
}

type Attribute struct {
	Name string
	Type string
}

// ParseAttribute unwraps one field declaration.
func ParseAttribute(line string, opts Options) (Attribute, error) {
	if opts.PrefixWidth < 0 || opts.SuffixWidth < 0 {
		return Attribute{}, ErrNegativeWidth
	}
	if len(line) < opts.PrefixWidth+opts.SuffixWidth {
		return Attribute{}, ErrShortLine
	}
	inner := line[opts.PrefixWidth : len(line)-opts.SuffixWidth]
	name, typ, found := strings.Cut(inner, separator)
	if !found || name == "" || typ == "" {
		return Attribute{}, ErrMissingSeparator
	}
	return Attribute{Name: name, Type: typ}, nil
}

// FormatSetter renders the setter for a, newline included.
func FormatSetter(a Attribute) string {
	return fmt.Sprintf("pub fn %[1]s(&mut self, %[1]s: %[2]s) -> &mut Self { self.style.%[1]s = %[1]s; self.mark_dirty() }\n",
		a.Name, a.Type)
}

type Stats struct {
	Lines   int
	Setters int
}

// Generate writes one setter per attribute line of r to w, in input order.
// Blank lines are skipped; any other line that does not unwrap into a
// "name: type" pair aborts the run.
func Generate(r io.Reader, w io.Writer, opts Options) (Stats, error) {
	var stats Stats
	if opts.PrefixWidth < 0 || opts.SuffixWidth < 0 {
		return stats, ErrNegativeWidth
	}
	n, err := textgen.EachLine(r, func(n int, line string) error {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			return nil
		}
		attr, err := ParseAttribute(line, opts)
		if err != nil {
			return &textgen.LineError{Line: n, Text: line, Err: err}
		}
		if _, err := io.WriteString(w, FormatSetter(attr)); err != nil {
			return err
		}
		stats.Setters++
		return nil
	})
	stats.Lines = n
	return stats, err
}
