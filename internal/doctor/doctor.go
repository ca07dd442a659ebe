// Package doctor provides preflight checks for a meme's data directory.
package doctor

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/example/memetrend/internal/config"
	"github.com/example/memetrend/internal/dataset"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// Config holds the inputs for each doctor check.
type Config struct {
	Paths config.PathsConfig
	// Kinds lists the analysis output directories to probe for writability.
	Kinds []string
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Run executes all checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result
	p := cfg.Paths

	// ---- data directory ---------------------------------------------------
	if info, err := os.Stat(p.DataDir); err != nil {
		res.fail(fmt.Sprintf("data dir %q: %v", p.DataDir, err))
		fmt.Fprintf(w, "%s data dir %s: not found\n", FailMark, p.DataDir)
	} else if !info.IsDir() {
		res.fail(fmt.Sprintf("data dir %q: not a directory", p.DataDir))
		fmt.Fprintf(w, "%s data dir %s: not a directory\n", FailMark, p.DataDir)
	} else {
		fmt.Fprintf(w, "%s data dir: %s\n", PassMark, p.DataDir)
	}

	// ---- raw posts and preprocessed table ---------------------------------
	raw, pre := p.RawPosts(), p.Preprocessed()
	nPosts, rawErr := countPosts(raw)
	nRows, preErr := countRecords(pre)
	rawMissing := errors.Is(rawErr, fs.ErrNotExist)
	preMissing := errors.Is(preErr, fs.ErrNotExist)

	switch {
	case rawMissing && preMissing:
		res.fail(fmt.Sprintf("no input for meme %q: neither %s nor %s exists", p.Meme, raw, pre))
		fmt.Fprintf(w, "%s raw posts %s: not found\n", FailMark, raw)
	case rawMissing:
		fmt.Fprintf(w, "%s raw posts: none, using preprocessed table\n", PassMark)
	case rawErr != nil:
		res.fail(fmt.Sprintf("raw posts %q: %v", raw, rawErr))
		fmt.Fprintf(w, "%s raw posts %s: %v\n", FailMark, raw, rawErr)
	default:
		fmt.Fprintf(w, "%s raw posts: %d posts in %s\n", PassMark, nPosts, raw)
	}

	switch {
	case preMissing && rawMissing:
		fmt.Fprintf(w, "%s preprocessed table %s: not found\n", FailMark, pre)
	case preMissing:
		fmt.Fprintf(w, "%s preprocessed table: not built yet\n", PassMark)
	case preErr != nil:
		res.fail(fmt.Sprintf("preprocessed table %q: %v", pre, preErr))
		fmt.Fprintf(w, "%s preprocessed table %s: %v\n", FailMark, pre, preErr)
	default:
		fmt.Fprintf(w, "%s preprocessed table: %d rows in %s\n", PassMark, nRows, pre)
	}

	// ---- output directories -----------------------------------------------
	for _, kind := range cfg.Kinds {
		dir := p.AnalysisDir(kind)
		if err := checkWritable(dir); err != nil {
			res.fail(fmt.Sprintf("output dir %q: %v", dir, err))
			fmt.Fprintf(w, "%s output dir %s: not writable\n", FailMark, dir)
		} else {
			fmt.Fprintf(w, "%s output dir: %s\n", PassMark, dir)
		}
	}

	return res
}

func countPosts(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	posts, err := dataset.ReadPosts(f)
	if err != nil {
		return 0, err
	}
	return len(posts), nil
}

func countRecords(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	records, err := dataset.ReadRecords(f)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// checkWritable creates dir if needed and probes it with a temp file.
func checkWritable(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
