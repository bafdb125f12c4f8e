package emu

import "github.com/user-none/go-chip-m68k"

// Joystick lines in MousePortState.Direction.
const (
	joyUp = 1 << iota
	joyDown
	joyLeft
	joyRight
)

// Buttons in MousePortState.Buttons.
const (
	portButtonFire = 1 << iota
	portButton2
)

// CIA registers, one per 256-byte step.
const (
	ciaPRA  = 0x0
	ciaPRB  = 0x1
	ciaDDRA = 0x2
	ciaDDRB = 0x3
	ciaICR  = 0xd

	ciaAOverlay  = 1 << 0
	ciaAFirePort = 6 // PRA bit 6 is port 1 fire, bit 7 port 2
	ciaAInputs   = 0xfc
)

// Input holds the state of one Amiga joystick.
type Input struct {
	up, down, left, right bool
	fire, fire2           bool
}

// Set sets joystick state.
func (inp *Input) Set(up, down, left, right, fire, fire2 bool) {
	inp.up = up
	inp.down = down
	inp.left = left
	inp.right = right
	inp.fire = fire
	inp.fire2 = fire2
}

func (inp *Input) direction() uint8 {
	var d uint8
	if inp.up {
		d |= joyUp
	}
	if inp.down {
		d |= joyDown
	}
	if inp.left {
		d |= joyLeft
	}
	if inp.right {
		d |= joyRight
	}
	return d
}

func (inp *Input) buttons() uint8 {
	var b uint8
	if inp.fire {
		b |= portButtonFire
	}
	if inp.fire2 {
		b |= portButton2
	}
	return b
}

// cia is the register file of one 8520. Timers and the serial port do
// not run; the port registers are enough for game ports and the overlay.
type cia struct {
	regs [16]uint8
}

// IO wires the joysticks to the game ports and provides the minimal
// CIA-A and CIA-B register files.
type IO struct {
	InputP1 Input
	InputP2 Input

	// SwapPorts moves player 1 from port 2 to port 1.
	SwapPorts bool

	cs   *Chipset
	ciaA cia
	ciaB cia

	overlay func(enabled bool)
}

// NewIO creates the game port and CIA state for a chipset.
func NewIO(cs *Chipset) *IO {
	return &IO{cs: cs}
}

// SetOverlayHandler registers the callback run when CIA-A changes the
// Kickstart overlay line.
func (io *IO) SetOverlayHandler(fn func(enabled bool)) {
	io.overlay = fn
}

// Reset clears the CIA registers. Joystick state is kept.
func (io *IO) Reset() {
	io.ciaA = cia{}
	io.ciaB = cia{}
	io.UpdatePorts()
}

// UpdatePorts copies the joystick state into the chipset game ports.
// Player 1 uses port 2 (JOY1DAT) unless the ports are swapped.
func (io *IO) UpdatePorts() {
	p1, p2 := 1, 0
	if io.SwapPorts {
		p1, p2 = 0, 1
	}
	io.cs.Ports[p1].Direction = io.InputP1.direction()
	io.cs.Ports[p1].Buttons = io.InputP1.buttons()
	io.cs.Ports[p2].Direction = io.InputP2.direction()
	io.cs.Ports[p2].Buttons = io.InputP2.buttons()
}

// joyData returns JOYxDAT for a game port. A deflected joystick uses the
// quadrature encoding; otherwise the mouse counters are returned.
func (cs *Chipset) joyData(port int) uint16 {
	p := &cs.Ports[port]
	if p.Direction == 0 {
		return uint16(p.Y)<<8 | uint16(p.X)
	}
	up := p.Direction&joyUp != 0
	down := p.Direction&joyDown != 0
	left := p.Direction&joyLeft != 0
	right := p.Direction&joyRight != 0

	var v uint16
	if right {
		v |= 1 << 1
	}
	if left {
		v |= 1 << 9
	}
	if down != right {
		v |= 1 << 0
	}
	if up != left {
		v |= 1 << 8
	}
	return v
}

// OverlayEnabled reports the OVL output of CIA-A. The line floats high
// until the port bit is configured as an output.
func (io *IO) OverlayEnabled() bool {
	a := &io.ciaA
	return a.regs[ciaDDRA]&ciaAOverlay == 0 || a.regs[ciaPRA]&ciaAOverlay != 0
}

// readCIAAPRA merges the driven outputs with the input lines. The fire
// buttons are active low.
func (io *IO) readCIAAPRA() uint8 {
	in := uint8(ciaAInputs)
	for port := 0; port < numMousePorts; port++ {
		if io.cs.Ports[port].Buttons&portButtonFire != 0 {
			in &^= 1 << (ciaAFirePort + port)
		}
	}
	ddr := io.ciaA.regs[ciaDDRA]
	return io.ciaA.regs[ciaPRA]&ddr | in&^ddr
}

func (io *IO) readByte(addr uint32) uint8 {
	reg := uint8(addr>>8) & 0x0f
	switch {
	case addr&1 == 1 && addr&0x1000 == 0:
		switch reg {
		case ciaPRA:
			return io.readCIAAPRA()
		case ciaICR:
			return 0
		}
		return io.ciaA.regs[reg]
	case addr&1 == 0 && addr&0x2000 == 0:
		if reg == ciaICR {
			return 0
		}
		return io.ciaB.regs[reg]
	}
	return 0xff
}

func (io *IO) writeByte(addr uint32, v uint8) {
	reg := uint8(addr>>8) & 0x0f
	switch {
	case addr&1 == 1 && addr&0x1000 == 0:
		before := io.OverlayEnabled()
		io.ciaA.regs[reg] = v
		if after := io.OverlayEnabled(); after != before && io.overlay != nil {
			io.overlay(after)
		}
	case addr&1 == 0 && addr&0x2000 == 0:
		io.ciaB.regs[reg] = v
	}
}

// Read handles a CPU read from the CIA window. CIA-A answers on odd
// bytes, CIA-B on even bytes.
func (io *IO) Read(addr uint32, size m68k.Size) uint32 {
	switch size {
	case m68k.Byte:
		return uint32(io.readByte(addr))
	case m68k.Word:
		return uint32(io.readByte(addr))<<8 | uint32(io.readByte(addr|1))
	default:
		return io.Read(addr, m68k.Word)<<16 | io.Read(addr+2, m68k.Word)
	}
}

// Write handles a CPU write to the CIA window.
func (io *IO) Write(addr uint32, size m68k.Size, v uint32) {
	switch size {
	case m68k.Byte:
		io.writeByte(addr, uint8(v))
	case m68k.Word:
		io.writeByte(addr, uint8(v>>8))
		io.writeByte(addr|1, uint8(v))
	default:
		io.Write(addr, m68k.Word, v>>16)
		io.Write(addr+2, m68k.Word, v)
	}
}
