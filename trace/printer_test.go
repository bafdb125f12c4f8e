package trace

import (
	"bytes"
	"strings"
	"testing"

	"github.com/user-none/ema4k/emu"
)

func TestPrinter_Write(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.RegisterWrite(0x180>>1, "COLOR00", 0x0f80)

	out := buf.String()
	for _, want := range []string{"W", "$180", "COLOR00", "$0F80"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
	if p.Lines() != 1 {
		t.Errorf("lines: got %d, want 1", p.Lines())
	}
}

func TestPrinter_ReadsOffByDefault(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.RegisterRead(0x01e>>1, "INTREQR", 0x0020)
	if buf.Len() != 0 {
		t.Errorf("read traced while disabled: %q", buf.String())
	}

	p.Reads = true
	p.RegisterRead(0x01e>>1, "INTREQR", 0x0020)
	if !strings.Contains(buf.String(), "INTREQR") {
		t.Errorf("read not traced: %q", buf.String())
	}
}

func TestPrinter_SkipName(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	if !p.SkipName("COLOR00") {
		t.Fatal("COLOR00 should be a known register")
	}
	if p.SkipName("NOTAREG") {
		t.Error("unknown register reported as found")
	}
	p.RegisterWrite(0x180>>1, "COLOR00", 0)
	if buf.Len() != 0 {
		t.Errorf("skipped register traced: %q", buf.String())
	}
}

func TestPrinter_Warning(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Warning("chipset", "byte write to BLTSIZE")
	out := buf.String()
	if !strings.Contains(out, "chipset:") || !strings.Contains(out, "byte write to BLTSIZE") {
		t.Errorf("warning output: %q", out)
	}
}

func TestPrinter_TracesChipset(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	rom := make([]byte, 512*1024)
	rom[0], rom[1] = 0x11, 0x14
	cfg := emu.DefaultConfig()
	cfg.Quiet = true
	cfg.Tracer = p
	e, err := emu.NewEmulatorWithConfig(rom, cfg)
	if err != nil {
		t.Fatalf("NewEmulatorWithConfig: %v", err)
	}
	e.Chipset().WriteWord(0x096>>1, 0x8200)

	if !strings.Contains(buf.String(), "DMACON") {
		t.Errorf("DMACON write not traced: %q", buf.String())
	}
}
