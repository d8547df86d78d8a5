// Package batch annotates many transcript files at once.
package batch

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yugant99/C-UnitSegmentation/internal/docx"
	"github.com/yugant99/C-UnitSegmentation/internal/processor"
	"github.com/yugant99/C-UnitSegmentation/internal/slack"
	"github.com/yugant99/C-UnitSegmentation/internal/transcript"
)

var descriptSuffix = regexp.MustCompile(`(?i)\s*\(descript generated\)\s*$`)

// Config holds the batch command configuration.
type Config struct {
	Paths        []string
	OutDir       string // default: next to each input
	Workers      int
	Refine       bool
	Resume       bool
	StateFile    string
	SlackToken   string // optional: Slack bot token for posting summaries
	SlackChannel string // optional: Slack channel for summaries
}

// FileProcessor annotates and stores one file.
type FileProcessor interface {
	Process(ctx context.Context, name string, r io.Reader, refine bool) (*processor.Result, error)
	Persist(ctx context.Context, res *processor.Result) error
}

// FileResult is the outcome for one input file.
type FileResult struct {
	Path    string
	Output  string
	Units   int
	Pauses  int
	Notes   int
	Refined bool
	Skipped bool
	Line    int
	Err     error
}

// Runner processes a batch of files.
type Runner struct {
	cfg    Config
	proc   FileProcessor
	slack  *slack.Poster
	logger *slog.Logger
}

// NewRunner creates a batch runner.
func NewRunner(cfg Config, proc FileProcessor, logger *slog.Logger) *Runner {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.StateFile == "" {
		cfg.StateFile = DefaultStatePath
	}
	r := &Runner{
		cfg:    cfg,
		proc:   proc,
		logger: logger,
	}

	if cfg.SlackToken != "" && cfg.SlackChannel != "" {
		r.slack = slack.NewPoster(cfg.SlackToken, cfg.SlackChannel, logger)
	}

	return r
}

// Run processes every discovered file. A failed file never stops the
// others; results come back in input order. The error is only set when the
// batch could not start.
func (r *Runner) Run(ctx context.Context) ([]FileResult, error) {
	files, err := Discover(r.cfg.Paths)
	if err != nil {
		return nil, fmt.Errorf("discover files: %w", err)
	}

	var state *State
	if r.cfg.Resume {
		if state, err = LoadState(r.cfg.StateFile); err != nil {
			return nil, fmt.Errorf("load state: %w", err)
		}
	} else {
		state = NewState(r.cfg.StateFile)
	}

	r.logger.Info("files discovered", "files", len(files), "workers", r.cfg.Workers, "resume", r.cfg.Resume)

	results := make([]FileResult, len(files))
	var g errgroup.Group
	g.SetLimit(r.cfg.Workers)
	for i, path := range files {
		if r.cfg.Resume && state.IsProcessed(path) {
			results[i] = FileResult{Path: path, Skipped: true}
			continue
		}
		i, path := i, path // per-iteration copies (go directive < 1.22)
		g.Go(func() error {
			results[i] = r.processFile(ctx, path)
			res := results[i]
			if res.Err != nil {
				state.AddError(fmt.Sprintf("%s: %v", path, res.Err))
			} else {
				state.MarkProcessed(path, res.Units, res.Pauses)
			}
			if err := state.Save(); err != nil {
				r.logger.Warn("failed to save state", "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	r.postSummary(ctx, results)

	r.logger.Info("batch complete",
		"files", len(results),
		"failed", Failed(results),
		"state_file", expandHome(r.cfg.StateFile),
	)
	return results, nil
}

func (r *Runner) processFile(ctx context.Context, path string) FileResult {
	fr := FileResult{Path: path}

	var src io.Reader
	if docx.IsDocx(path) {
		text, err := docx.Extract(path)
		if err != nil {
			fr.Err = err
			return fr
		}
		src = strings.NewReader(text)
	} else {
		f, err := os.Open(path)
		if err != nil {
			fr.Err = fmt.Errorf("open: %w", err)
			return fr
		}
		defer f.Close()
		src = f
	}

	res, err := r.proc.Process(ctx, filepath.Base(path), src, r.cfg.Refine)
	if err != nil {
		r.logger.Error("annotation failed", "path", path, "error", err)
		fr.Err = err
		fr.Line, _ = transcript.ErrorLine(err)
		return fr
	}

	dir := r.cfg.OutDir
	if dir == "" {
		dir = filepath.Dir(path)
	}
	out := filepath.Join(dir, OutputName(path))
	if err := writeAtomic(out, res.Document); err != nil {
		fr.Err = err
		return fr
	}
	if res.Refined != "" {
		refinedOut := strings.TrimSuffix(out, ".slt") + ".refined.slt"
		if err := writeAtomic(refinedOut, res.Refined); err != nil {
			r.logger.Warn("failed to write refined output", "path", refinedOut, "error", err)
		} else {
			fr.Refined = true
		}
	}

	if err := r.proc.Persist(ctx, res); err != nil {
		r.logger.Error("persist failed", "path", path, "error", err)
	}

	fr.Output = out
	fr.Units = res.Units
	fr.Pauses = res.Pauses
	fr.Notes = len(res.Notes)
	return fr
}

func (r *Runner) postSummary(ctx context.Context, results []FileResult) {
	if len(results) == 0 {
		return
	}

	text := FormatSummary(results)

	if r.slack == nil {
		r.logger.Info("batch summary (no Slack configured)", "summary", text)
		return
	}

	ts, err := r.slack.PostMessage(ctx, text)
	if err != nil {
		r.logger.Warn("failed to post batch summary to Slack", "error", err)
		return
	}
	if failures := formatFailures(results); failures != "" {
		if err := r.slack.PostThread(ctx, ts, failures); err != nil {
			r.logger.Warn("failed to post failures thread", "error", err)
		}
	}
}

// FormatSummary formats batch results grouped into processed, skipped and
// failed files.
func FormatSummary(results []FileResult) string {
	var processed, skipped, failed []FileResult
	units, pauses := 0, 0
	for _, res := range results {
		switch {
		case res.Err != nil:
			failed = append(failed, res)
		case res.Skipped:
			skipped = append(skipped, res)
		default:
			processed = append(processed, res)
			units += res.Units
			pauses += res.Pauses
		}
	}

	var sb strings.Builder
	sb.WriteString("*C-unit Batch Summary*\n")
	fmt.Fprintf(&sb, "\n*Processed* (%d files, %d units, %d pauses)\n", len(processed), units, pauses)
	for _, res := range processed {
		fmt.Fprintf(&sb, "  - %s: %d units, %d pauses", filepath.Base(res.Path), res.Units, res.Pauses)
		if res.Notes > 0 {
			fmt.Fprintf(&sb, " (%d notes)", res.Notes)
		}
		sb.WriteString("\n")
	}
	if len(skipped) > 0 {
		fmt.Fprintf(&sb, "\n*Skipped* (%d files already processed)\n", len(skipped))
	}
	if len(failed) > 0 {
		fmt.Fprintf(&sb, "\n*Failed* (%d files)\n", len(failed))
		for _, res := range failed {
			fmt.Fprintf(&sb, "  - %s: %v\n", filepath.Base(res.Path), res.Err)
		}
	}
	return sb.String()
}

func formatFailures(results []FileResult) string {
	var sb strings.Builder
	for _, res := range results {
		if res.Err == nil {
			continue
		}
		sb.WriteString(filepath.Base(res.Path))
		if res.Line > 0 {
			fmt.Fprintf(&sb, " (line %d)", res.Line)
		}
		fmt.Fprintf(&sb, ": %v\n", res.Err)
	}
	return sb.String()
}

// Discover expands paths into transcript files. Directories contribute
// their *.txt and *.docx files, without descending into subdirectories.
// Files named explicitly are kept whatever their extension.
func Discover(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, p := range paths {
		p = expandHome(p)
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil // skip errors
			}
			if d.IsDir() {
				if path != p {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.EqualFold(filepath.Ext(path), ".txt") || docx.IsDocx(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", p, err)
		}
	}
	return files, nil
}

// OutputName maps an input file name to its SALT output name.
func OutputName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = descriptSuffix.ReplaceAllString(base, "")
	return base + ".slt"
}

// writeAtomic writes data next to path and renames it into place, so a
// failed write never leaves a partial output.
func writeAtomic(path, data string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	if _, err := tmp.WriteString(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// Failed reports whether any result failed.
func Failed(results []FileResult) bool {
	for _, res := range results {
		if res.Err != nil {
			return true
		}
	}
	return false
}
