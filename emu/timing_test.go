package emu

import (
	"testing"
	"time"
)

func TestTimingConverter_ClockRates(t *testing.T) {
	if got := NewTimingConverter(false).ClockHz(); got != PALClockHz {
		t.Errorf("PAL clock: got %f", got)
	}
	if got := NewTimingConverter(true).ClockHz(); got != NTSCClockHz {
		t.Errorf("NTSC clock: got %f", got)
	}
}

func TestTimingConverter_OneSecond(t *testing.T) {
	tc := NewTimingConverter(false)
	ticks := tc.DurationToTicks(time.Second)
	if ticks < 3546894 || ticks > 3546895 {
		t.Errorf("ticks in one second: got %d, want 3546895", ticks)
	}
	d := tc.TicksToDuration(ticks)
	if diff := (time.Second - d).Abs(); diff > time.Microsecond {
		t.Errorf("round trip: got %v", d)
	}
}

func TestTimingConverter_NegativeDuration(t *testing.T) {
	tc := NewTimingConverter(true)
	if got := tc.DurationToTicks(-time.Second); got != 0 {
		t.Errorf("negative duration: got %d ticks, want 0", got)
	}
}

func TestTimingConverter_DayRollover(t *testing.T) {
	tc := NewTimingConverter(false)
	perDay := tc.CyclesPerDay()

	tc.Advance(perDay - 1)
	if tc.Days() != 0 || tc.Cycles() != perDay-1 {
		t.Fatalf("before rollover: days %d cycles %d", tc.Days(), tc.Cycles())
	}

	tc.Advance(1)
	if tc.Days() != 1 || tc.Cycles() != 0 {
		t.Errorf("at rollover: days %d cycles %d, want 1 0", tc.Days(), tc.Cycles())
	}

	tc.Advance(2*perDay + 5)
	if tc.Days() != 3 || tc.Cycles() != 5 {
		t.Errorf("after multi-day advance: days %d cycles %d, want 3 5", tc.Days(), tc.Cycles())
	}
}

func TestTimingConverter_DayRolloverNTSC(t *testing.T) {
	tc := NewTimingConverter(true)
	const k = 1234
	tc.Advance(tc.CyclesPerDay() + k)
	if tc.Days() != 1 || tc.Cycles() != k {
		t.Errorf("NTSC rollover: days %d cycles %d, want 1 %d", tc.Days(), tc.Cycles(), k)
	}
}

func TestTimingConverter_Elapsed(t *testing.T) {
	tc := NewTimingConverter(false)
	tc.Restore(2, tc.DurationToTicks(time.Hour))
	got := tc.Elapsed()
	want := 49 * time.Hour
	if diff := (want - got).Abs(); diff > time.Microsecond {
		t.Errorf("elapsed: got %v, want %v", got, want)
	}
}

func TestTimingConverter_NextWake(t *testing.T) {
	tc := NewTimingConverter(false)
	if tc.NextWake() <= tc.Elapsed() {
		t.Error("next wake should be after elapsed")
	}
	tc.Advance(10)
	if got, want := tc.NextWake(), tc.TicksToDuration(11); got != want {
		t.Errorf("next wake: got %v, want %v", got, want)
	}
}

func TestTimingConverter_Reset(t *testing.T) {
	tc := NewTimingConverter(false)
	tc.Restore(4, 100)
	tc.Reset()
	if tc.Days() != 0 || tc.Cycles() != 0 {
		t.Errorf("after reset: days %d cycles %d", tc.Days(), tc.Cycles())
	}
}
