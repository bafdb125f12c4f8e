package cli

import (
	"testing"
	"time"
)

func TestOSD_ShowExpires(t *testing.T) {
	var o osd
	o.Show("State saved")
	now := time.Now()
	if got := o.Current(now); got != "State saved" {
		t.Errorf("Current: got %q", got)
	}
	if got := o.Current(now.Add(osdDuration + time.Second)); got != "" {
		t.Errorf("Current after expiry: got %q", got)
	}
}

func TestOSD_HoldUntilClear(t *testing.T) {
	var o osd
	o.Hold("Paused")
	if got := o.Current(time.Now().Add(time.Hour)); got != "Paused" {
		t.Errorf("held message: got %q", got)
	}
	o.Clear()
	if got := o.Current(time.Now()); got != "" {
		t.Errorf("Current after Clear: got %q", got)
	}
}

func TestMask(t *testing.T) {
	m := mask(true, false, false, true, true, false)
	if m&(1<<buttonFire) == 0 || m&(1<<buttonFire2) != 0 {
		t.Errorf("fire bits: 0x%X", m)
	}
	if mask(false, false, false, false, false, false) != 0 {
		t.Error("idle mask should be 0")
	}
}
