package emu

import (
	"log"
	"time"

	"github.com/user-none/go-chip-m68k"
)

// RP5C01A registers in mode 0.
const (
	rtcSecond1 = iota
	rtcSecond10
	rtcMinute1
	rtcMinute10
	rtcHour1
	rtcHour10
	rtcWeekday
	rtcDay1
	rtcDay10
	rtcMonth1
	rtcMonth10
	rtcYear1
	rtcYear10
	rtcMode
	rtcTest
	rtcReset
)

const (
	rtcRegisterMask = 0x0f
	rtcModeMask     = 0x03
	rtcAlarmEnable  = 0x04
	rtcTimerEnable  = 0x08
	rtc12Or24Select = 0x0a // mode 1
	rtcRAMSize      = 13
)

// rtc10Hour12 is the 10-hour digit in 12-hour mode, indexed by hour.
// Bit 1 is the PM flag.
var rtc10Hour12 = [24]uint8{
	1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1,
	3, 2, 2, 2, 2, 2, 2, 2, 2, 2, 3, 3,
}

// RTC is the Ricoh RP5C01A real-time clock of the A3000/A4000. The time
// registers mirror the injected clock and are not writable. Modes 2 and
// 3 expose 13 nibbles each of battery-backed RAM.
type RTC struct {
	mode  uint8
	use24 bool
	ram   [rtcRAMSize]uint8 // bank 0 low nibble, bank 1 high nibble

	now   func() time.Time
	quiet bool
}

// NewRTC creates a clock in its power-on state: mode 0, 24-hour. A nil
// now uses the host clock.
func NewRTC(now func() time.Time) *RTC {
	if now == nil {
		now = time.Now
	}
	return &RTC{use24: true, now: now}
}

// SetClock replaces the time source.
func (r *RTC) SetClock(now func() time.Time) {
	r.now = now
}

// SetQuiet suppresses diagnostic logging.
func (r *RTC) SetQuiet(quiet bool) {
	r.quiet = quiet
}

func (r *RTC) logf(format string, args ...any) {
	if !r.quiet {
		log.Printf("rtc: "+format, args...)
	}
}

// rtcDecode maps a bus access to a chip register. The chip sits in the
// low nibble of every fourth byte. Byte and word accesses must land on
// that nibble; a long access covers it from any lane.
func rtcDecode(addr uint32, size m68k.Size) (reg uint8, ok bool) {
	reg = uint8(addr>>2) & rtcRegisterMask
	switch size {
	case m68k.Byte:
		return reg, addr&3 == 3
	case m68k.Word:
		return reg, addr&3 == 2
	}
	return reg, true
}

// Read handles a CPU read from the RTC window.
func (r *RTC) Read(addr uint32, size m68k.Size) uint32 {
	reg, ok := rtcDecode(addr, size)
	if !ok {
		r.logf("unmapped read at 0x%x returns 0", addr)
		return 0
	}
	return uint32(r.ReadRegister(reg))
}

// Write handles a CPU write to the RTC window.
func (r *RTC) Write(addr uint32, size m68k.Size, v uint32) {
	reg, ok := rtcDecode(addr, size)
	if !ok {
		r.logf("unmapped write 0x%x at 0x%x ignored", v, addr)
		return
	}
	r.WriteRegister(reg, uint8(v))
}

// ReadRegister returns the 4-bit value of a chip register.
func (r *RTC) ReadRegister(reg uint8) uint8 {
	reg &= rtcRegisterMask
	switch {
	case reg == rtcMode:
		// the timer always runs
		return r.mode | rtcTimerEnable
	case reg >= rtcTest:
		return 0
	}

	switch r.mode {
	case 0:
		return r.readTime(reg)
	case 1:
		if reg == rtc12Or24Select && r.use24 {
			return 1
		}
		return 0
	case 2:
		return r.ram[reg] & 0x0f
	default:
		return r.ram[reg] >> 4
	}
}

func (r *RTC) readTime(reg uint8) uint8 {
	t := r.now()
	hour := t.Hour()
	switch reg {
	case rtcSecond1:
		return uint8(t.Second() % 10)
	case rtcSecond10:
		return uint8(t.Second() / 10)
	case rtcMinute1:
		return uint8(t.Minute() % 10)
	case rtcMinute10:
		return uint8(t.Minute() / 10)
	case rtcHour1:
		if !r.use24 {
			switch {
			case hour == 0:
				hour = 12
			case hour > 12:
				hour -= 12
			}
		}
		return uint8(hour % 10)
	case rtcHour10:
		if r.use24 {
			return uint8(hour / 10)
		}
		return rtc10Hour12[hour]
	case rtcWeekday:
		return uint8(t.Weekday())
	case rtcDay1:
		return uint8(t.Day() % 10)
	case rtcDay10:
		return uint8(t.Day() / 10)
	case rtcMonth1:
		return uint8(int(t.Month()) % 10)
	case rtcMonth10:
		return uint8(int(t.Month()) / 10)
	case rtcYear1:
		return uint8((t.Year() - 1900) % 10)
	case rtcYear10:
		return uint8((t.Year() - 1900) / 10 % 10)
	}
	return 0
}

// WriteRegister stores the low nibble of v. Only the mode register, the
// 12/24 select and the RAM banks are writable.
func (r *RTC) WriteRegister(reg uint8, v uint8) {
	reg &= rtcRegisterMask
	v &= 0x0f
	switch reg {
	case rtcMode:
		r.mode = v & rtcModeMask
		return
	case rtcTest, rtcReset:
		r.logf("write 0x%x to unsupported register %d ignored", v, reg)
		return
	}

	switch r.mode {
	case 1:
		if reg == rtc12Or24Select {
			r.use24 = v&1 != 0
			return
		}
	case 2:
		r.ram[reg] = r.ram[reg]&0xf0 | v
		return
	case 3:
		r.ram[reg] = r.ram[reg]&0x0f | v<<4
		return
	}
	r.logf("write 0x%x to register %d in mode %d ignored", v, reg, r.mode)
}

// Mode returns the selected register bank (0-3).
func (r *RTC) Mode() uint8 {
	return r.mode
}

// Use24Hour reports whether the hour registers count 0-23.
func (r *RTC) Use24Hour() bool {
	return r.use24
}

// RAM returns a copy of the battery-backed RAM.
func (r *RTC) RAM() []byte {
	out := make([]byte, rtcRAMSize)
	copy(out, r.ram[:])
	return out
}

// SetRAM loads battery-backed RAM, e.g. from a save file.
func (r *RTC) SetRAM(data []byte) {
	copy(r.ram[:], data)
}
