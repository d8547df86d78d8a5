package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yugant99/C-UnitSegmentation/internal/transcript"
)

// TranscriptInput is everything persisted for one annotated file.
type TranscriptInput struct {
	ID         uuid.UUID
	Source     string
	Document   string
	Refined    string
	Transcript *transcript.Transcript
	Notes      []transcript.Note
}

// TranscriptRow is a stored transcript.
type TranscriptRow struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Title      string    `json:"title,omitempty"`
	Document   string    `json:"document"`
	Refined    string    `json:"refined,omitempty"`
	UnitCount  int       `json:"units"`
	PauseCount int       `json:"pauses"`
	NoteCount  int       `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	Units      []UnitRow `json:"cunits"`
}

// UnitRow is one stored C-unit.
type UnitRow struct {
	Seq        int    `json:"seq"`
	Speaker    string `json:"speaker"`
	SourceLine int    `json:"line"`
	Offset     int    `json:"offset_seconds"`
	Text       string `json:"text"`
}

// WriteTranscript stores a transcript with its units and notes.
// Tables: transcripts, cunits, transcript_notes.
func (s *Store) WriteTranscript(ctx context.Context, in TranscriptInput) error {
	t := in.Transcript
	units := t.Units()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO transcripts (id, name, title, source, document, refined, unit_count, pause_count, note_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())`,
		in.ID, t.Name, t.Header.Title, in.Source, in.Document, in.Refined, len(units), t.Pauses(), len(in.Notes),
	)
	if err != nil {
		return fmt.Errorf("insert transcript: %w", err)
	}

	batch := &pgx.Batch{}
	for _, u := range units {
		batch.Queue(`
			INSERT INTO cunits (id, transcript_id, seq, speaker, source_line, offset_seconds, text)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.New(), in.ID, u.Seq, u.Speaker.Code, u.Line, int(u.Timestamp/time.Second), u.Text(),
		)
	}
	for _, n := range in.Notes {
		batch.Queue(`
			INSERT INTO transcript_notes (id, transcript_id, kind, source_line, token, detail)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.New(), in.ID, string(n.Kind), n.Line, n.Token, n.Detail,
		)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert units: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// GetTranscript fetches a stored transcript and its units in sequence order.
func (s *Store) GetTranscript(ctx context.Context, id uuid.UUID) (*TranscriptRow, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, name, title, document, refined, unit_count, pause_count, note_count, created_at
		FROM transcripts WHERE id = $1`, id)

	var t TranscriptRow
	err := row.Scan(&t.ID, &t.Name, &t.Title, &t.Document, &t.Refined, &t.UnitCount, &t.PauseCount, &t.NoteCount, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get transcript: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT seq, speaker, source_line, offset_seconds, text
		FROM cunits WHERE transcript_id = $1 ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("query units: %w", err)
	}
	t.Units, err = pgx.CollectRows(rows, func(r pgx.CollectableRow) (UnitRow, error) {
		var u UnitRow
		err := r.Scan(&u.Seq, &u.Speaker, &u.SourceLine, &u.Offset, &u.Text)
		return u, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan units: %w", err)
	}
	return &t, nil
}

// WriteFailure records a file that failed to parse. line is 0 when unknown.
func (s *Store) WriteFailure(ctx context.Context, name string, line int, cause error) error {
	var l *int
	if line > 0 {
		l = &line
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO transcript_failures (id, name, source_line, error, created_at)
		VALUES ($1, $2, $3, $4, now())`,
		uuid.New(), name, l, cause.Error(),
	)
	if err != nil {
		return fmt.Errorf("insert failure: %w", err)
	}
	return nil
}
