package pause

import (
	"testing"
	"time"
)

func TestBetween_SameSpeaker(t *testing.T) {
	c := New(DefaultPolicy())
	tests := []struct {
		gap  time.Duration
		want string
	}{
		{0, "; :02"},
		{3 * time.Second, "; :02"},
		{14 * time.Second, "; :02"},
		{15 * time.Second, "; :15"},
		{20 * time.Second, "; :20"},
		{20*time.Second + 500*time.Millisecond, "; :21"},
		{20*time.Second + 499*time.Millisecond, "; :20"},
		{125 * time.Second, "; :125"},
	}
	for _, tt := range tests {
		t.Run(tt.gap.String(), func(t *testing.T) {
			got := c.Between(Boundary{Speaker: "P"}, Boundary{Speaker: "P", At: tt.gap}).String()
			if got != tt.want {
				t.Errorf("gap %s = %q, want %q", tt.gap, got, tt.want)
			}
		})
	}
}

func TestBetween_TurnGap(t *testing.T) {
	c := New(DefaultPolicy())
	tests := []struct {
		gap  time.Duration
		want int
	}{
		{0, 2},
		{1 * time.Second, 2},
		{12 * time.Second, 12},
		{20 * time.Second, 20},
	}
	for _, tt := range tests {
		got := c.Between(Boundary{Speaker: "P"}, Boundary{Speaker: "Av", At: tt.gap})
		if got.Seconds != tt.want {
			t.Errorf("gap %s = %d, want %d", tt.gap, got.Seconds, tt.want)
		}
	}

	off := DefaultPolicy()
	off.TurnGaps = false
	c = New(off)
	if got := c.Between(Boundary{Speaker: "P"}, Boundary{Speaker: "Av", At: 12 * time.Second}); got.Seconds != 2 {
		t.Errorf("turn gaps disabled: got %d, want 2", got.Seconds)
	}
}

func TestWithin(t *testing.T) {
	c := New(Policy{Threshold: 10 * time.Second, Default: 3})
	if got := c.Within(4 * time.Second).String(); got != ":03" {
		t.Errorf("short = %q", got)
	}
	if got := c.Within(12 * time.Second).String(); got != ":12" {
		t.Errorf("long = %q", got)
	}
}

func TestNew_FillsZeroPolicy(t *testing.T) {
	c := New(Policy{})
	if !c.IsLongSilence(15*time.Second) || c.IsLongSilence(14*time.Second) {
		t.Error("expected default threshold")
	}
	if got := c.Within(0).Seconds; got != 2 {
		t.Errorf("default bucket = %d", got)
	}
}
