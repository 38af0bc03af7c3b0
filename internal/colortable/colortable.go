// Package colortable turns a color-constant listing into match arm entries.
//
// The input is the documented constant block of a color module, where every
// constant is preceded by a swatch annotation:
//
//	/// <div style="background-color:#F0F8FF; width: 10px; padding: 10px; border: 1px solid;"></div>
//	pub const ALICE_BLUE: Color = Color::rgb(0.94, 0.97, 1.0);
//
// For every definition two lines are written: a comment holding the most
// recent annotation color, and a `"alice_blue" => Color::ALICE_BLUE,` entry.
package colortable

import (
	"errors"
	"fmt"
	"io"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"shireesh.com/boilergen/internal/textgen"
)

const (
	CommentMarker    = "#"
	AnnotationMarker = "/// <div"
	DefinitionMarker = "pub const"

	annotationPrefix = "/// <div style=\"background-color:"
	definitionPrefix = "pub const "

	annotationSep = "; "
	definitionSep = ": "

	indent = "                "
)

var (
	ErrMalformedAnnotation = errors.New("malformed annotation line")
	ErrMalformedDefinition = errors.New("malformed definition line")
	ErrInvalidColor        = errors.New("invalid color value")
)

var lineBreaks = strings.NewReplacer("\n", "", "\r", "")

type LineKind int

const (
	Other LineKind = iota
	Comment
	Annotation
	Definition
)

func (k LineKind) String() string {
	switch k {
	case Comment:
		return "comment"
	case Annotation:
		return "annotation"
	case Definition:
		return "definition"
	default:
		return "other"
	}
}

// Classify reports the kind of an already trimmed line. Comments win over
// annotations, which win over definitions.
func Classify(line string) LineKind {
	switch {
	case strings.HasPrefix(line, CommentMarker):
		return Comment
	case strings.HasPrefix(line, AnnotationMarker):
		return Annotation
	case strings.HasPrefix(line, DefinitionMarker):
		return Definition
	default:
		return Other
	}
}

// body drops a fixed-width prefix and the final character of line.
func body(line, prefix string) (string, bool) {
	if len(line) < len(prefix)+1 || !strings.HasPrefix(line, prefix) {
		return "", false
	}
	return line[len(prefix) : len(line)-1], true
}

// ParseAnnotation extracts the color value from an annotation line.
func ParseAnnotation(line string) (string, error) {
	b, ok := body(line, annotationPrefix)
	if !ok {
		return "", ErrMalformedAnnotation
	}
	color, _, found := strings.Cut(b, annotationSep)
	if !found {
		return "", ErrMalformedAnnotation
	}
	return color, nil
}

// ParseDefinition extracts the lowercased constant name from a definition line.
func ParseDefinition(line string) (string, error) {
	b, ok := body(line, definitionPrefix)
	if !ok {
		return "", ErrMalformedDefinition
	}
	name, _, found := strings.Cut(b, definitionSep)
	if !found || name == "" {
		return "", ErrMalformedDefinition
	}
	return strings.ToLower(name), nil
}

// FormatEntry renders the comment and match arm for one definition.
func FormatEntry(color, name string) string {
	var sb strings.Builder
	sb.WriteString(indent + "// " + color + "\n")
	sb.WriteString(indent + "\"" + name + "\" => Color::" + strings.ToUpper(name) + ",\n")
	return sb.String()
}

// Options tunes a generation run.
type Options struct {
	// ValidateColors rejects annotation values that are not hex colors.
	ValidateColors bool
}

// Stats counts what a run consumed and produced.
type Stats struct {
	Lines       int
	Annotations int
	Entries     int
}

// scanner carries the pending annotation value between lines.
type scanner struct {
	opts    Options
	pending string
	stats   Stats
}

func (s *scanner) line(n int, raw string, w io.Writer) error {
	line := strings.TrimSpace(lineBreaks.Replace(raw))
	switch Classify(line) {
	case Annotation:
		color, err := ParseAnnotation(line)
		if err != nil {
			return &textgen.LineError{Line: n, Text: line, Err: err}
		}
		if s.opts.ValidateColors {
			if _, err := colorful.Hex(color); err != nil {
				return &textgen.LineError{Line: n, Text: line, Err: fmt.Errorf("%w %q", ErrInvalidColor, color)}
			}
		}
		s.pending = color
		s.stats.Annotations++
	case Definition:
		name, err := ParseDefinition(line)
		if err != nil {
			return &textgen.LineError{Line: n, Text: line, Err: err}
		}
		if _, err := io.WriteString(w, FormatEntry(s.pending, name)); err != nil {
			return err
		}
		s.stats.Entries++
	}
	return nil
}

// Generate scans r and writes one entry per definition line to w. The run
// stops at the first malformed marker line.
func Generate(r io.Reader, w io.Writer, opts Options) (Stats, error) {
	s := &scanner{opts: opts}
	n, err := textgen.EachLine(r, func(n int, line string) error {
		return s.line(n, line, w)
	})
	s.stats.Lines = n
	return s.stats, err
}
