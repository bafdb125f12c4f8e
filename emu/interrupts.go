package emu

// Paula interrupt bits, shared by INTENA/INTENAR and INTREQ/INTREQR.
const (
	IntMasterEnable = 1 << 14
	IntExternal     = 1 << 13 // CIA-B and external level 6
	IntDiskSync     = 1 << 12
	IntSerialRBF    = 1 << 11
	IntAudio3       = 1 << 10
	IntAudio2       = 1 << 9
	IntAudio1       = 1 << 8
	IntAudio0       = 1 << 7
	IntBlitter      = 1 << 6
	IntVertBlank    = 1 << 5
	IntCopper       = 1 << 4
	IntPorts        = 1 << 3 // CIA-A and external level 2
	IntSoftware     = 1 << 2
	IntDiskBlock    = 1 << 1
	IntSerialTBE    = 1 << 0
)

// InterruptRegister selects which mask a set/clear write targets.
type InterruptRegister int

const (
	InterruptEnable InterruptRegister = iota
	InterruptRequest
)

// ipl maps each request bit (0-13) to the 68000 interrupt level it drives:
// TBE, DSKBLK and SOFT on 1, PORTS on 2, COPER, VERTB and BLIT on 3, the
// audio channels on 4, RBF and DSKSYN on 5, EXTER on 6.
var ipl = [14]uint8{1, 1, 1, 2, 3, 3, 3, 4, 4, 4, 4, 5, 5, 6}

// InterruptSink receives the interrupt level computed after each cycle.
type InterruptSink interface {
	SetInterruptLevel(level uint8)
}

// InterruptController holds the Paula enable and request masks.
type InterruptController struct {
	Enable  uint16 // INTENA, bits 0-14
	Request uint16 // INTREQ, bits 0-13
}

// applySetClear applies a set/clear control word to reg. Bit 15 selects
// set (OR in v&mask) or clear (AND NOT v); bit 15 itself is never stored.
func applySetClear(reg *uint16, v, mask uint16) {
	if v&setClearBit != 0 {
		*reg |= v & mask
	} else {
		*reg &^= v
	}
	*reg &^= setClearBit
}

// SetClearWrite applies a guest write to INTENA or INTREQ.
func (ic *InterruptController) SetClearWrite(reg InterruptRegister, v uint16) {
	switch reg {
	case InterruptEnable:
		applySetClear(&ic.Enable, v, intenaWriteMask)
	case InterruptRequest:
		applySetClear(&ic.Request, v, intreqWriteMask)
	}
}

// Raise sets request bits on behalf of a hardware source.
func (ic *InterruptController) Raise(bits uint16) {
	ic.Request |= bits & intreqWriteMask
}

// Acknowledge clears request bits.
func (ic *InterruptController) Acknowledge(bits uint16) {
	ic.Request &^= bits
}

// Pending returns the highest-priority source that is both requested and
// enabled. Higher bit positions win. Nothing is pending while the master
// enable is clear.
func (ic *InterruptController) Pending() (bit int, ok bool) {
	if ic.Enable&IntMasterEnable == 0 {
		return 0, false
	}
	active := ic.Request & ic.Enable & intreqWriteMask
	for bit = 13; bit >= 0; bit-- {
		if active&(1<<bit) != 0 {
			return bit, true
		}
	}
	return 0, false
}

// Level returns the 68000 interrupt priority level for the current
// state, or 0 when nothing is pending.
func (ic *InterruptController) Level() uint8 {
	bit, ok := ic.Pending()
	if !ok {
		return 0
	}
	return ipl[bit]
}

// Reset clears both masks.
func (ic *InterruptController) Reset() {
	ic.Enable = 0
	ic.Request = 0
}
