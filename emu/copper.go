package emu

// Copper instruction fields.
const (
	copperWaitBit     = 0x0001 // IR1: WAIT/SKIP rather than MOVE
	copperSkipBit     = 0x0001 // IR2: SKIP rather than WAIT
	copperBlitterWait = 0x8000 // IR2: clear means also wait for blitter idle
	copperMoveMask    = 0x01fe
	copperHPosMask    = 0x00fe
	copperVEnableHigh = 0x80 // VE bit 7 cannot be masked
)

// copperJump restarts the copper at one of its location registers.
func (cs *Chipset) copperJump(n int) {
	cs.Copper.PC = cs.Copper.Location[n]
	cs.Copper.State = CopperLoadingWord1
}

// StepCopper advances the copper by one DMA cycle.
func (cs *Chipset) StepCopper() {
	c := &cs.Copper
	switch c.State {
	case CopperIdle:
	case CopperLoadingWord1:
		w, ok := cs.fetchCopperWord()
		if !ok {
			return
		}
		c.IR1 = w
		c.State = CopperLoadingWord2
	case CopperLoadingWord2:
		w, ok := cs.fetchCopperWord()
		if !ok {
			return
		}
		c.IR2 = w
		cs.executeCopper()
	case CopperWaitingForBeam:
		if cs.copperConditionMet() {
			c.State = CopperWakingUp
		}
	case CopperWakingUp:
		c.State = CopperLoadingWord1
	}
}

// copperNeedsBus reports whether the next copper step fetches from chip RAM.
func (cs *Chipset) copperNeedsBus() bool {
	switch cs.Copper.State {
	case CopperLoadingWord1, CopperLoadingWord2, CopperWakingUp:
		return true
	}
	return false
}

func (cs *Chipset) fetchCopperWord() (uint16, bool) {
	if cs.mem == nil {
		cs.logf("copper has no chip memory, stopping")
		cs.Copper.State = CopperIdle
		return 0, false
	}
	w := cs.mem.ReadChipWord(cs.Copper.PC)
	cs.Copper.PC += 2
	return w, true
}

// executeCopper runs the instruction held in IR1/IR2.
func (cs *Chipset) executeCopper() {
	c := &cs.Copper
	skip := c.SkipNextMove
	c.SkipNextMove = false

	if c.IR1&copperWaitBit == 0 {
		// MOVE. The state is set first so a MOVE to COPJMPx takes effect.
		c.State = CopperLoadingWord1
		dest := c.IR1 & copperMoveMask
		switch {
		case skip:
		case dest < cs.copperBoundary && !c.Danger:
			cs.logf("copper move to %s blocked without COPCON danger", registerNames[dest>>1])
		default:
			cs.WriteWord(uint8(dest>>1), c.IR2)
		}
		return
	}

	met := cs.copperConditionMet()
	if c.IR2&copperSkipBit != 0 {
		c.SkipNextMove = met
		c.State = CopperLoadingWord1
		return
	}
	if met {
		c.State = CopperWakingUp
	} else {
		c.State = CopperWaitingForBeam
	}
}

// copperConditionMet compares the masked beam position against the
// WAIT/SKIP position in IR1/IR2.
func (cs *Chipset) copperConditionMet() bool {
	c := &cs.Copper
	ve := (c.IR2>>8)&0x7f | copperVEnableHigh
	he := c.IR2 & copperHPosMask
	vp := c.IR1 >> 8
	hp := c.IR1 & copperHPosMask

	beam := (cs.Display.BeamY&0xff&ve)<<8 | cs.Display.BeamX&he
	target := (vp&ve)<<8 | hp&he
	if beam < target {
		return false
	}
	if c.IR2&copperBlitterWait == 0 && cs.Blitter.Busy {
		return false
	}
	return true
}
