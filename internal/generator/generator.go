package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"shireesh.com/boilergen/internal/colortable"
	"shireesh.com/boilergen/internal/config"
	"shireesh.com/boilergen/internal/stylesetter"
)

// ErrStale is returned by Check when an output no longer matches its input.
var ErrStale = errors.New("generated output is stale")

type Result struct {
	Job     config.Job
	Lines   int
	Entries int
}

// Render runs the job's generator over its input and writes to w.
func Render(job config.Job, w io.Writer) (Result, error) {
	res := Result{Job: job}
	in, err := os.Open(job.Input)
	if err != nil {
		return res, err
	}
	defer in.Close()

	switch job.Kind {
	case config.KindColors:
		st, err := colortable.Generate(in, w, colortable.Options{ValidateColors: job.ValidateColors})
		res.Lines, res.Entries = st.Lines, st.Entries
		return res, err
	case config.KindStyles:
		st, err := stylesetter.Generate(in, w, styleOptions(job))
		res.Lines, res.Entries = st.Lines, st.Setters
		return res, err
	default:
		return res, fmt.Errorf("unknown generator %q", job.Kind)
	}
}

func styleOptions(job config.Job) stylesetter.Options {
	opts := stylesetter.DefaultOptions()
	if job.PrefixWidth != nil {
		opts.PrefixWidth = *job.PrefixWidth
	}
	if job.SuffixWidth != nil {
		opts.SuffixWidth = *job.SuffixWidth
	}
	return opts
}

// Generate renders the job and replaces its output file. Nothing is written
// unless the whole input was processed.
func Generate(job config.Job, logger *log.Logger) (Result, error) {
	var buf bytes.Buffer
	res, err := Render(job, &buf)
	if err != nil {
		return res, fmt.Errorf("%s: %w", job.Input, err)
	}
	if err := writeFile(job.Output, buf.Bytes()); err != nil {
		return res, err
	}
	logger.Info("generated", "kind", job.Kind, "input", job.Input, "output", job.Output, "entries", res.Entries)
	return res, nil
}

// Check renders the job and compares it with the existing output.
func Check(job config.Job, logger *log.Logger) (Result, error) {
	var buf bytes.Buffer
	res, err := Render(job, &buf)
	if err != nil {
		return res, fmt.Errorf("%s: %w", job.Input, err)
	}
	have, err := os.ReadFile(job.Output)
	if errors.Is(err, os.ErrNotExist) {
		return res, fmt.Errorf("%s: %w: missing", job.Output, ErrStale)
	}
	if err != nil {
		return res, err
	}
	if !bytes.Equal(have, buf.Bytes()) {
		return res, fmt.Errorf("%s: %w", job.Output, ErrStale)
	}
	logger.Debug("up to date", "output", job.Output)
	return res, nil
}

// Run generates (or, with check set, verifies) every job in order,
// stopping at the first failure.
func Run(ctx context.Context, cfg *config.Config, check bool, logger *log.Logger) ([]Result, error) {
	results := make([]Result, 0, len(cfg.Jobs))
	for _, job := range cfg.Jobs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		logger.Debug("running job", "kind", job.Kind, "input", job.Input, "output", job.Output)
		run := Generate
		if check {
			run = Check
		}
		res, err := run(job, logger)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// writeFile replaces path through a temporary file in the same directory,
// keeping the permissions of any file it replaces.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
