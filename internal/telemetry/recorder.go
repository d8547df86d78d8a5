package telemetry

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/yugant99/C-UnitSegmentation/internal/transcript"
)

// Recorder tracks annotation totals for the status endpoint and batch
// summaries.
type Recorder struct {
	log     *slog.Logger
	started time.Time

	filesProcessed atomic.Uint64
	filesFailed    atomic.Uint64
	units          atomic.Uint64
	pauses         atomic.Uint64
	ambiguities    atomic.Uint64
	conflicts      atomic.Uint64
}

// Snapshot captures cumulative metrics recorded so far.
type Snapshot struct {
	FilesProcessed uint64  `json:"files_processed"`
	FilesFailed    uint64  `json:"files_failed"`
	Units          uint64  `json:"units"`
	Pauses         uint64  `json:"pauses"`
	Ambiguities    uint64  `json:"ambiguity_notes"`
	Conflicts      uint64  `json:"conflict_notes"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
}

func NewRecorder(logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		log:     logger.With("component", "telemetry.Recorder"),
		started: time.Now(),
	}
}

// RecordFile adds one successfully annotated file.
func (r *Recorder) RecordFile(name string, units, pauses int, notes []transcript.Note) {
	if r == nil {
		return
	}
	var amb, conf int
	for _, n := range notes {
		switch n.Kind {
		case transcript.Ambiguity:
			amb++
		case transcript.Conflict:
			conf++
		}
	}
	r.filesProcessed.Add(1)
	r.units.Add(uint64(units))
	r.pauses.Add(uint64(pauses))
	r.ambiguities.Add(uint64(amb))
	r.conflicts.Add(uint64(conf))

	r.log.Debug("file recorded",
		"file", name,
		"units", units,
		"pauses", pauses,
		"ambiguities", amb,
		"conflicts", conf,
	)
}

// RecordFailure adds one file that could not be annotated.
func (r *Recorder) RecordFailure(name string, err error) {
	if r == nil {
		return
	}
	r.filesFailed.Add(1)
	r.log.Debug("file failed", "file", name, "error", err)
}

// Snapshot returns an immutable view of the recorder totals.
func (r *Recorder) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}
	return Snapshot{
		FilesProcessed: r.filesProcessed.Load(),
		FilesFailed:    r.filesFailed.Load(),
		Units:          r.units.Load(),
		Pauses:         r.pauses.Load(),
		Ambiguities:    r.ambiguities.Load(),
		Conflicts:      r.conflicts.Load(),
		UptimeSeconds:  time.Since(r.started).Seconds(),
	}
}
