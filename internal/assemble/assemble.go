package assemble

import (
	"context"
	"sort"
	"time"

	"github.com/yugant99/C-UnitSegmentation/internal/fillers"
	"github.com/yugant99/C-UnitSegmentation/internal/morph"
	"github.com/yugant99/C-UnitSegmentation/internal/pause"
	"github.com/yugant99/C-UnitSegmentation/internal/redact"
	"github.com/yugant99/C-UnitSegmentation/internal/rules"
	"github.com/yugant99/C-UnitSegmentation/internal/segment"
	"github.com/yugant99/C-UnitSegmentation/internal/transcript"
)

// Assembler runs the per-line stages and orders their output into a
// Transcript.
type Assembler struct {
	rules   *rules.Rules
	redact  *redact.Normalizer
	fillers *fillers.Detector
	seg     *segment.Segmenter
	coder   *pause.Coder
	marker  *morph.Marker
}

func New(r *rules.Rules, seg *segment.Segmenter, coder *pause.Coder, marker *morph.Marker) *Assembler {
	return &Assembler{
		rules:   r,
		redact:  redact.New(r),
		fillers: fillers.New(r),
		seg:     seg,
		coder:   coder,
		marker:  marker,
	}
}

// Context is the state carried from one line to the next.
type Context struct {
	Seq  int
	Prev *pause.Boundary
	Last time.Duration
}

// Assemble builds the transcript for lines. It only fails when ctx is
// cancelled, in which case nothing is returned.
func (a *Assembler) Assemble(ctx context.Context, name, title string, lines []transcript.RawLine) (*transcript.Transcript, []transcript.Note, error) {
	t := &transcript.Transcript{
		Name: name,
		Header: transcript.Header{
			Title:        title,
			Speakers:     a.speakers(),
			Language:     a.rules.Language,
			RedactionKey: a.rules.RedactionKey,
		},
	}

	var carry Context
	var notes []transcript.Note
	for _, rl := range lines {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		items, n := a.Line(ctx, &carry, rl)
		t.Items = append(t.Items, items...)
		notes = append(notes, n...)
	}
	if carry.Prev != nil {
		t.Items = append(t.Items, transcript.TimeMarker{At: carry.Last})
	}
	return t, notes, nil
}

// Line turns one RawLine into transcript items, advancing carry.
func (a *Assembler) Line(ctx context.Context, carry *Context, rl transcript.RawLine) ([]transcript.Item, []transcript.Note) {
	text := a.fillers.Annotate(a.redact.Normalize(rl.Text))
	res := a.seg.Segment(ctx, rl.Line, text)
	notes := res.Notes

	var items []transcript.Item
	cursor := rl.Timestamp
	for _, toks := range res.Units {
		// markers before the first word move the unit's start
		k := 0
		for k < len(toks) && toks[k].Kind == transcript.Marker {
			cursor = later(cursor, toks[k])
			k++
		}
		// markers after the last word belong to the next unit
		end := len(toks)
		for end > k && toks[end-1].Kind == transcript.Marker {
			end--
		}
		start := cursor
		body := a.inlinePauses(toks[k:end], &cursor)
		ref := cursor
		for _, m := range toks[end:] {
			cursor = later(cursor, m)
		}
		if len(body) == 0 {
			continue
		}

		next := pause.Boundary{Speaker: rl.Speaker.Code, At: start}
		if carry.Prev == nil {
			items = append(items, transcript.TimeMarker{At: start})
		} else {
			items = append(items, a.coder.Between(*carry.Prev, next))
			if a.coder.IsLongSilence(start - carry.Prev.At) {
				items = append(items, transcript.TimeMarker{At: start})
			}
		}

		carry.Seq++
		u := &transcript.CUnit{
			Seq:       carry.Seq,
			Speaker:   rl.Speaker,
			Line:      rl.Line,
			Timestamp: rl.Timestamp,
			Tokens:    body,
		}
		notes = append(notes, a.marker.Mark(ctx, u)...)
		items = append(items, u)
		carry.Prev = &pause.Boundary{Speaker: rl.Speaker.Code, At: ref}
	}
	carry.Last = max(carry.Last, rl.Timestamp, cursor)
	return items, notes
}

// inlinePauses replaces embedded timestamps inside a unit with ":NN" codes
// measured from the previous time reference.
func (a *Assembler) inlinePauses(toks []transcript.Token, cursor *time.Duration) []transcript.Token {
	out := make([]transcript.Token, len(toks))
	copy(out, toks)
	for i, tok := range out {
		if tok.Kind != transcript.Marker {
			continue
		}
		prev := *cursor
		*cursor = later(prev, tok)
		out[i] = transcript.Token{
			Surface: a.coder.Within(*cursor - prev).String(),
			Pos:     tok.Pos,
			Kind:    transcript.PauseMark,
		}
	}
	return out
}

// later returns the marker's time if it is after cur. Markers that go
// backwards are ignored.
func later(cur time.Duration, marker transcript.Token) time.Duration {
	secs, ok := marker.MarkerTime()
	if !ok {
		return cur
	}
	at := time.Duration(secs) * time.Second
	if at > cur {
		return at
	}
	return cur
}

func (a *Assembler) speakers() []transcript.Speaker {
	out := make([]transcript.Speaker, len(a.rules.Speakers))
	for i, s := range a.rules.Speakers {
		out[i] = transcript.Speaker{Code: s.Code, Name: s.Name}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
