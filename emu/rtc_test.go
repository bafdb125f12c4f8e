package emu

import (
	"testing"
	"time"

	"github.com/user-none/go-chip-m68k"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2023, time.March, 15, 13, 5, 9, 0, time.UTC)
	}
}

func newTestRTC() *RTC {
	r := NewRTC(fixedClock())
	r.SetQuiet(true)
	return r
}

func TestRTC_TimeRegisters(t *testing.T) {
	r := newTestRTC()
	want := []uint8{
		rtcSecond1: 9, rtcSecond10: 0,
		rtcMinute1: 5, rtcMinute10: 0,
		rtcHour1: 3, rtcHour10: 1,
		rtcWeekday: 3,
		rtcDay1: 5, rtcDay10: 1,
		rtcMonth1: 3, rtcMonth10: 0,
		rtcYear1: 3, rtcYear10: 2,
	}
	for reg, w := range want {
		if got := r.ReadRegister(uint8(reg)); got != w {
			t.Errorf("register %d: got %d, want %d", reg, got, w)
		}
	}
}

func TestRTC_TwelveHour(t *testing.T) {
	r := newTestRTC()
	r.WriteRegister(rtcMode, 1)
	r.WriteRegister(rtc12Or24Select, 0)
	r.WriteRegister(rtcMode, 0)
	if r.Use24Hour() {
		t.Fatal("still in 24-hour mode")
	}
	if got := r.ReadRegister(rtcHour1); got != 1 {
		t.Errorf("hour units: got %d, want 1", got)
	}
	if got := r.ReadRegister(rtcHour10); got != 2 {
		t.Errorf("hour tens: got %d, want 2 (PM)", got)
	}
}

func TestRTC_TwelveHourMidnight(t *testing.T) {
	r := NewRTC(func() time.Time { return time.Date(2023, 1, 1, 0, 30, 0, 0, time.UTC) })
	r.SetQuiet(true)
	r.WriteRegister(rtcMode, 1)
	r.WriteRegister(rtc12Or24Select, 0)
	r.WriteRegister(rtcMode, 0)
	if got := r.ReadRegister(rtcHour1); got != 2 {
		t.Errorf("hour units: got %d, want 2", got)
	}
	if got := r.ReadRegister(rtcHour10); got != 1 {
		t.Errorf("hour tens: got %d, want 1 (12 AM)", got)
	}
}

func TestRTC_ModeRegister(t *testing.T) {
	r := newTestRTC()
	if got := r.ReadRegister(rtcMode); got != rtcTimerEnable {
		t.Errorf("power-on mode register: got 0x%X", got)
	}
	r.WriteRegister(rtcMode, 0x0e)
	if r.Mode() != 2 {
		t.Errorf("mode: got %d, want 2", r.Mode())
	}
	if got := r.ReadRegister(rtcTest); got != 0 {
		t.Errorf("test register: got %d", got)
	}
}

func TestRTC_TwelveTwentyFourSelect(t *testing.T) {
	r := newTestRTC()
	r.WriteRegister(rtcMode, 1)
	if got := r.ReadRegister(rtc12Or24Select); got != 1 {
		t.Errorf("12/24 select at power-on: got %d, want 1", got)
	}
	if got := r.ReadRegister(rtcSecond1); got != 0 {
		t.Errorf("other mode 1 register: got %d, want 0", got)
	}
}

func TestRTC_RAMBanks(t *testing.T) {
	r := newTestRTC()
	r.WriteRegister(rtcMode, 2)
	r.WriteRegister(4, 0x5)
	r.WriteRegister(rtcMode, 3)
	r.WriteRegister(4, 0xa)

	if got := r.ReadRegister(4); got != 0xa {
		t.Errorf("bank 1: got 0x%X, want 0xA", got)
	}
	r.WriteRegister(rtcMode, 2)
	if got := r.ReadRegister(4); got != 0x5 {
		t.Errorf("bank 0: got 0x%X, want 0x5", got)
	}
	if ram := r.RAM(); ram[4] != 0xa5 {
		t.Errorf("RAM byte: got 0x%02X, want 0xA5", ram[4])
	}
}

func TestRTC_TimeNotWritable(t *testing.T) {
	r := newTestRTC()
	r.WriteRegister(rtcSecond1, 0)
	if got := r.ReadRegister(rtcSecond1); got != 9 {
		t.Errorf("seconds after write: got %d, want 9", got)
	}
}

func TestRTC_BusDecode(t *testing.T) {
	r := newTestRTC()
	// Register n sits at byte 4n+3 and word 4n+2.
	if got := r.Read(rtcMinute1*4+3, m68k.Byte); got != 5 {
		t.Errorf("byte read: got %d, want 5", got)
	}
	if got := r.Read(rtcMinute1*4+2, m68k.Word); got != 5 {
		t.Errorf("word read: got %d, want 5", got)
	}
	if got := r.Read(rtcMinute1*4+2, m68k.Byte); got != 0 {
		t.Errorf("misaligned byte read: got %d, want 0", got)
	}
	if got := r.Read(rtcMinute1*4, m68k.Long); got != 5 {
		t.Errorf("long read: got %d, want 5", got)
	}

	r.Write(rtcMode*4+3, m68k.Byte, 3)
	if r.Mode() != 3 {
		t.Errorf("mode after bus write: %d", r.Mode())
	}

	r.Write(rtcMode*4, m68k.Long, 2)
	if r.Mode() != 2 {
		t.Errorf("mode after long write: %d", r.Mode())
	}
}

func TestRTC_SetClock(t *testing.T) {
	r := newTestRTC()
	r.SetClock(func() time.Time { return time.Date(1999, 12, 31, 23, 59, 58, 0, time.UTC) })
	if got := r.ReadRegister(rtcYear10); got != 9 {
		t.Errorf("year tens: got %d, want 9", got)
	}
	if got := r.ReadRegister(rtcSecond1); got != 8 {
		t.Errorf("seconds: got %d, want 8", got)
	}
}

func TestRTC_SerializeRoundTrip(t *testing.T) {
	r := newTestRTC()
	r.WriteRegister(rtcMode, 1)
	r.WriteRegister(rtc12Or24Select, 0)
	r.WriteRegister(rtcMode, 2)
	r.WriteRegister(7, 0xc)

	buf := make([]byte, RTCSerializeSize)
	if err := r.Serialize(buf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	r2 := newTestRTC()
	if err := r2.Deserialize(buf); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if r2.Mode() != 2 || r2.Use24Hour() || r2.ReadRegister(7) != 0xc {
		t.Errorf("restored: mode %d use24 %v reg7 0x%X", r2.Mode(), r2.Use24Hour(), r2.ReadRegister(7))
	}
}
