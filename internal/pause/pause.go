package pause

import (
	"time"

	"github.com/yugant99/C-UnitSegmentation/internal/transcript"
)

// Policy is the pause-coding heuristic. The values are a majority vote over
// hand-coded transcripts, not a measurement, and are expected to be re-tuned.
type Policy struct {
	// Threshold is the shortest gap treated as a real silence.
	Threshold time.Duration
	// Default is the bucket, in seconds, for every shorter gap.
	Default int
	// TurnGaps reports the actual latency, floored at Default, when the
	// speaker changes between two units.
	TurnGaps bool
}

func DefaultPolicy() Policy {
	return Policy{Threshold: 15 * time.Second, Default: 2, TurnGaps: true}
}

// Boundary is the speaker and start time of a unit.
type Boundary struct {
	Speaker string
	At      time.Duration
}

// Coder turns time gaps into pause annotations.
type Coder struct {
	policy Policy
}

func New(p Policy) *Coder {
	if p.Threshold <= 0 {
		p.Threshold = DefaultPolicy().Threshold
	}
	if p.Default <= 0 {
		p.Default = DefaultPolicy().Default
	}
	return &Coder{policy: p}
}

// Between codes the pause between two adjacent units.
func (c *Coder) Between(prev, next Boundary) transcript.Pause {
	gap := next.At - prev.At
	secs := c.seconds(gap)
	if c.policy.TurnGaps && prev.Speaker != next.Speaker && !c.IsLongSilence(gap) {
		secs = max(c.policy.Default, round(gap))
	}
	return transcript.Pause{Kind: transcript.Inter, Seconds: secs}
}

// Within codes a pause inside one unit.
func (c *Coder) Within(gap time.Duration) transcript.Pause {
	return transcript.Pause{Kind: transcript.Intra, Seconds: c.seconds(gap)}
}

// IsLongSilence reports whether gap reaches the silence threshold.
func (c *Coder) IsLongSilence(gap time.Duration) bool {
	return gap >= c.policy.Threshold
}

func (c *Coder) seconds(gap time.Duration) int {
	if !c.IsLongSilence(gap) {
		return c.policy.Default
	}
	return round(gap)
}

// round rounds half up to whole seconds. Negative gaps count as zero.
func round(gap time.Duration) int {
	if gap < 0 {
		return 0
	}
	return int((gap + time.Second/2) / time.Second)
}
