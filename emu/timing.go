package emu

import "time"

// DMA clock rates. The clock is fixed by the crystal, independent of the
// screen mode selected by software.
const (
	PALClockHz  = 3546895.0   // 28.375160 MHz / 8
	NTSCClockHz = 3579545.375 // 28.636363 MHz / 8

	nsPerSecond = 1e9
	secsPerDay  = 86400
)

// TimingConverter converts between DMA cycles and time for one video
// standard and tracks uptime as whole days plus cycles within the current
// day. Keeping the within-day count small bounds float conversion error
// on long-running machines.
type TimingConverter struct {
	clockHz      float64
	cyclesPerDay uint64

	days   uint32
	cycles uint64 // cycles into the current day
}

// NewTimingConverter creates a converter for the NTSC or PAL clock.
func NewTimingConverter(ntsc bool) *TimingConverter {
	hz := PALClockHz
	if ntsc {
		hz = NTSCClockHz
	}
	return &TimingConverter{
		clockHz:      hz,
		cyclesPerDay: uint64(hz * secsPerDay),
	}
}

// ClockHz returns the DMA clock frequency.
func (t *TimingConverter) ClockHz() float64 {
	return t.clockHz
}

// CyclesPerDay returns the number of DMA cycles in one day.
func (t *TimingConverter) CyclesPerDay() uint64 {
	return t.cyclesPerDay
}

// TicksToDuration converts a cycle count to nanoseconds.
func (t *TimingConverter) TicksToDuration(cycles uint64) time.Duration {
	return time.Duration(float64(cycles) * (nsPerSecond / t.clockHz))
}

// DurationToTicks converts nanoseconds to whole DMA cycles.
func (t *TimingConverter) DurationToTicks(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	return uint64(float64(d) * (t.clockHz / nsPerSecond))
}

// Advance adds n cycles, rolling whole days out of the cycle count.
// A rollover subtracts exactly one day so the sub-day phase is kept.
func (t *TimingConverter) Advance(n uint64) {
	t.cycles += n
	for t.cycles >= t.cyclesPerDay {
		t.days++
		t.cycles -= t.cyclesPerDay
	}
}

// Days returns the number of completed days of uptime.
func (t *TimingConverter) Days() uint32 {
	return t.days
}

// Cycles returns the cycles elapsed within the current day.
func (t *TimingConverter) Cycles() uint64 {
	return t.cycles
}

// Elapsed returns total virtual uptime.
func (t *TimingConverter) Elapsed() time.Duration {
	return time.Duration(t.days)*24*time.Hour + t.TicksToDuration(t.cycles)
}

// NextWake returns the virtual time at which the next cycle is due. It
// is derived from the current counters on every call, so repeated calls
// never accumulate drift.
func (t *TimingConverter) NextWake() time.Duration {
	return time.Duration(t.days)*24*time.Hour + t.TicksToDuration(t.cycles+1)
}

// Restore sets the counters from a saved state.
func (t *TimingConverter) Restore(days uint32, cycles uint64) {
	t.days = days
	t.cycles = cycles
}

// Reset clears the uptime counters.
func (t *TimingConverter) Reset() {
	t.days = 0
	t.cycles = 0
}
