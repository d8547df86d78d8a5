package refiner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Refiner post-processes a rendered SALT document.
type Refiner interface {
	Refine(ctx context.Context, document string) (string, error)
}

// Noop returns documents unchanged.
type Noop struct{}

func (Noop) Refine(_ context.Context, document string) (string, error) {
	return document, nil
}

// Completer is a text-completion backend.
type Completer interface {
	Complete(ctx context.Context, system, prompt string, maxTokens int) (string, error)
}

// CompleterFunc adapts a function to Completer.
type CompleterFunc func(ctx context.Context, system, prompt string, maxTokens int) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, system, prompt string, maxTokens int) (string, error) {
	return f(ctx, system, prompt, maxTokens)
}

const (
	maxLineTokens = 200
	parallelCalls = 4
)

// LLM refines each C-unit line of a document with a language model. Header,
// pause and time-marker lines are passed through untouched.
type LLM struct {
	completer Completer
	logger    *slog.Logger
}

func NewLLM(c Completer, logger *slog.Logger) *LLM {
	return &LLM{completer: c, logger: logger}
}

// Refine sends every unit line to the model. A reply that is empty or that
// drops the line's speaker prefix keeps the original line. Any backend
// error fails the whole refinement.
func (l *LLM) Refine(ctx context.Context, document string) (string, error) {
	lines := strings.Split(strings.TrimRight(document, "\n"), "\n")
	out := make([]string, len(lines))
	copy(out, lines)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelCalls)
	for i, line := range lines {
		prefix, ok := unitPrefix(line)
		if !ok {
			continue
		}
		i, line := i, line // per-iteration copies (go directive < 1.22)
		g.Go(func() error {
			reply, err := l.completer.Complete(gctx, systemPrompt, buildPrompt(line), maxLineTokens)
			if err != nil {
				return fmt.Errorf("refine line %d: %w", i+1, err)
			}
			if refined, ok := clean(reply, prefix); ok {
				out[i] = refined
			} else {
				l.logger.Debug("discarded refinement", "line", i+1, "reply", reply)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	return strings.Join(out, "\n") + "\n", nil
}

// unitPrefix returns "P:" for a unit line such as "P: Hi.".
func unitPrefix(line string) (string, bool) {
	if line == "" {
		return "", false
	}
	switch line[0] {
	case '$', '+', '-', ';', '#', '=':
		return "", false
	}
	i := strings.Index(line, ": ")
	if i <= 0 || strings.ContainsAny(line[:i], " \t") {
		return "", false
	}
	return line[:i+1], true
}

// clean strips code fences and blank lines from a reply and keeps it only if
// every line still carries the speaker prefix.
func clean(reply, prefix string) (string, bool) {
	var kept []string
	for _, l := range strings.Split(reply, "\n") {
		l = strings.TrimSpace(l)
		if l == "" || strings.HasPrefix(l, "```") {
			continue
		}
		if !strings.HasPrefix(l, prefix) {
			return "", false
		}
		kept = append(kept, l)
	}
	if len(kept) == 0 {
		return "", false
	}
	return strings.Join(kept, "\n"), true
}
