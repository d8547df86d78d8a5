package hermes

import "time"

const (
	// SubjectSubmitted carries raw transcripts to annotate.
	SubjectSubmitted = "salt.transcript.submitted"
	// SubjectProcessed announces an annotated transcript.
	SubjectProcessed = "salt.transcript.processed"
	// SubjectFailed announces a transcript that could not be annotated.
	SubjectFailed = "salt.transcript.failed"

	// QueueAnnotators is the queue group of annotation workers.
	QueueAnnotators = "cunit-annotators"
)

// SubmitEvent asks for a transcript to be annotated.
type SubmitEvent struct {
	Name   string `json:"name"`
	Text   string `json:"text"`
	Refine bool   `json:"refine,omitempty"`
}

// ProcessedEvent reports a finished annotation.
type ProcessedEvent struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Units       int       `json:"units"`
	Pauses      int       `json:"pauses"`
	Notes       int       `json:"notes"`
	Document    string    `json:"document"`
	Refined     string    `json:"refined,omitempty"`
	ProcessedAt time.Time `json:"processed_at"`
}

// FailedEvent reports a transcript rejected by the parser.
type FailedEvent struct {
	Name  string `json:"name"`
	Line  int    `json:"line,omitempty"`
	Error string `json:"error"`
}
