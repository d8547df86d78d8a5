package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yugant99/C-UnitSegmentation/internal/assemble"
	"github.com/yugant99/C-UnitSegmentation/internal/hermes"
	"github.com/yugant99/C-UnitSegmentation/internal/parser"
	"github.com/yugant99/C-UnitSegmentation/internal/refiner"
	"github.com/yugant99/C-UnitSegmentation/internal/store"
	"github.com/yugant99/C-UnitSegmentation/internal/telemetry"
	"github.com/yugant99/C-UnitSegmentation/internal/transcript"
)

// ErrNoStore is returned by Lookup when persistence is disabled.
var ErrNoStore = errors.New("store not configured")

// Store persists annotated transcripts.
type Store interface {
	WriteTranscript(ctx context.Context, in store.TranscriptInput) error
	WriteFailure(ctx context.Context, name string, line int, cause error) error
	GetTranscript(ctx context.Context, id uuid.UUID) (*store.TranscriptRow, error)
}

// Publisher emits events.
type Publisher interface {
	Publish(subject string, data any) error
}

// Processor runs the annotation pipeline for whole files.
type Processor struct {
	parser    *parser.Parser
	assembler *assemble.Assembler
	refiner   refiner.Refiner
	store     Store
	events    Publisher
	recorder  *telemetry.Recorder
	logger    *slog.Logger
}

// New builds a Processor. ref, s and pub may be nil.
func New(p *parser.Parser, a *assemble.Assembler, ref refiner.Refiner, s Store, pub Publisher, rec *telemetry.Recorder, logger *slog.Logger) *Processor {
	return &Processor{
		parser:    p,
		assembler: a,
		refiner:   ref,
		store:     s,
		events:    pub,
		recorder:  rec,
		logger:    logger,
	}
}

// Result is one annotated file.
type Result struct {
	ID         uuid.UUID
	Name       string
	Source     string
	Transcript *transcript.Transcript
	Document   string
	Refined    string
	Notes      []transcript.Note
	Units      int
	Pauses     int
}

// Process annotates the transcript read from r. Parse errors and
// cancellation abort the file; the returned error is prefixed with name.
func (p *Processor) Process(ctx context.Context, name string, r io.Reader, refine bool) (*Result, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		p.recorder.RecordFailure(name, err)
		return nil, fmt.Errorf("%s: read: %w", name, err)
	}
	source := string(raw)

	doc, err := p.parser.ParseReader(strings.NewReader(source))
	if err != nil {
		p.recorder.RecordFailure(name, err)
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	t, notes, err := p.assembler.Assemble(ctx, name, doc.Title, doc.Lines)
	if err != nil {
		p.recorder.RecordFailure(name, err)
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	for _, n := range notes {
		p.logger.Debug("annotation note",
			"file", name,
			"kind", string(n.Kind),
			"line", n.Line,
			"token", n.Token,
			"detail", n.Detail,
		)
	}

	res := &Result{
		ID:         uuid.New(),
		Name:       name,
		Source:     source,
		Transcript: t,
		Document:   assemble.Render(t),
		Notes:      notes,
		Units:      len(t.Units()),
		Pauses:     t.Pauses(),
	}

	if refine && p.refiner != nil {
		res.Refined = p.refine(ctx, name, res.Document)
	}

	p.recorder.RecordFile(name, res.Units, res.Pauses, notes)
	p.logger.Info("transcript annotated",
		"file", name,
		"id", res.ID,
		"lines", len(doc.Lines),
		"units", res.Units,
		"pauses", res.Pauses,
		"notes", len(notes),
		"refined", res.Refined != "",
	)
	return res, nil
}

// refine returns the refined document, or "" when the refiner failed,
// changed nothing, or its output did not pass the gate.
func (p *Processor) refine(ctx context.Context, name, document string) string {
	refined, err := p.refiner.Refine(ctx, document)
	if err != nil {
		p.logger.Warn("refinement failed, keeping rule-based document", "file", name, "error", err)
		return ""
	}
	if refined == document {
		return ""
	}
	if err := checkRefined(document, refined); err != nil {
		p.logger.Warn("refinement rejected", "file", name, "error", err)
		return ""
	}
	return refined
}

// Persist stores res. It is a no-op without a store.
func (p *Processor) Persist(ctx context.Context, res *Result) error {
	if p.store == nil {
		return nil
	}
	err := p.store.WriteTranscript(ctx, store.TranscriptInput{
		ID:         res.ID,
		Source:     res.Source,
		Document:   res.Document,
		Refined:    res.Refined,
		Transcript: res.Transcript,
		Notes:      res.Notes,
	})
	if err != nil {
		return fmt.Errorf("persist %s: %w", res.Name, err)
	}
	return nil
}

// Lookup fetches a stored transcript.
func (p *Processor) Lookup(ctx context.Context, id uuid.UUID) (*store.TranscriptRow, error) {
	if p.store == nil {
		return nil, ErrNoStore
	}
	return p.store.GetTranscript(ctx, id)
}

// HandleTranscriptSubmitted is the NATS handler for salt.transcript.submitted.
func (p *Processor) HandleTranscriptSubmitted(subject string, data []byte) {
	ctx := context.Background()

	var evt hermes.SubmitEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		p.logger.Error("failed to parse submit event", "subject", subject, "error", err)
		return
	}
	if evt.Name == "" {
		evt.Name = "submitted-" + uuid.New().String()[:8]
	}

	res, err := p.Process(ctx, evt.Name, strings.NewReader(evt.Text), evt.Refine)
	if err != nil {
		p.logger.Error("annotation failed", "file", evt.Name, "error", err)
		line, _ := transcript.ErrorLine(err)
		if p.store != nil {
			if serr := p.store.WriteFailure(ctx, evt.Name, line, err); serr != nil {
				p.logger.Error("failed to record failure", "file", evt.Name, "error", serr)
			}
		}
		p.publish(hermes.SubjectFailed, hermes.FailedEvent{
			Name:  evt.Name,
			Line:  line,
			Error: err.Error(),
		})
		return
	}

	if err := p.Persist(ctx, res); err != nil {
		p.logger.Error("persistence failed", "file", evt.Name, "error", err)
	}

	p.publish(hermes.SubjectProcessed, hermes.ProcessedEvent{
		ID:          res.ID.String(),
		Name:        res.Name,
		Units:       res.Units,
		Pauses:      res.Pauses,
		Notes:       len(res.Notes),
		Document:    res.Document,
		Refined:     res.Refined,
		ProcessedAt: time.Now().UTC(),
	})
}

func (p *Processor) publish(subject string, evt any) {
	if p.events == nil {
		return
	}
	if err := p.events.Publish(subject, evt); err != nil {
		p.logger.Error("failed to publish event", "subject", subject, "error", err)
	}
}
