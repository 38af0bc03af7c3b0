// Package textgen holds the line loop shared by the generators.
package textgen

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// LineError reports the input line a generation run stopped on.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *LineError) Unwrap() error { return e.Err }

// EachLine calls fn for every line of r, numbered from 1, without the line
// terminator ("\n" or "\r\n"). Lines have no length limit. It stops at the
// first error fn returns and reports how many lines were read.
func EachLine(r io.Reader, fn func(n int, line string) error) (int, error) {
	br := bufio.NewReader(r)
	n := 0
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return n, err
		}
		if line == "" && err != nil {
			return n, nil
		}
		n++
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if ferr := fn(n, line); ferr != nil {
			return n, ferr
		}
		if err != nil {
			return n, nil
		}
	}
}
