package ui

import (
	"sync"

	"github.com/user-none/ema4k/emu"
)

// SharedInput holds joystick state written by the Ebiten thread
// and read by the emulation goroutine. Each player is a button bitmask
// in the emucore layout.
type SharedInput struct {
	mu      sync.Mutex
	buttons [2]uint32
}

// Set updates the button mask of a player from the Ebiten thread.
// Players other than 0 and 1 are ignored.
func (si *SharedInput) Set(player int, buttons uint32) {
	if player < 0 || player >= len(si.buttons) {
		return
	}
	si.mu.Lock()
	si.buttons[player] = buttons
	si.mu.Unlock()
}

// Read returns the current button masks of both players.
func (si *SharedInput) Read() [2]uint32 {
	si.mu.Lock()
	b := si.buttons
	si.mu.Unlock()
	return b
}

// SharedFramebuffer hands finished frames from the emulation goroutine
// to Ebiten's Draw. Update copies into a back buffer; Read copies into a
// front buffer only when a newer frame has arrived, so redraws of an
// unchanged frame cost nothing.
type SharedFramebuffer struct {
	mu           sync.Mutex
	back         []byte
	front        []byte
	stride       int
	activeHeight int
	frame        uint64 // frames received
	shown        uint64 // frame held in front
}

// NewSharedFramebuffer creates a framebuffer sized for the largest frame.
func NewSharedFramebuffer() *SharedFramebuffer {
	size := emu.ScreenWidth * emu.MaxScreenHeight * 4
	return &SharedFramebuffer{
		back:  make([]byte, size),
		front: make([]byte, size),
	}
}

// Update copies a finished frame from the emulation goroutine.
func (sf *SharedFramebuffer) Update(pixels []byte, stride, activeHeight int) {
	sf.mu.Lock()
	n := min(stride*activeHeight, len(sf.back), len(pixels))
	copy(sf.back[:n], pixels[:n])
	sf.stride = stride
	sf.activeHeight = activeHeight
	sf.frame++
	sf.mu.Unlock()
}

// Read returns the latest frame. The returned slice stays valid until the
// next Read and must not be modified.
func (sf *SharedFramebuffer) Read() (pixels []byte, stride, activeHeight int) {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	if sf.shown != sf.frame {
		n := min(sf.stride*sf.activeHeight, len(sf.back))
		copy(sf.front[:n], sf.back[:n])
		sf.shown = sf.frame
	}
	return sf.front, sf.stride, sf.activeHeight
}

// Frames returns the number of frames received.
func (sf *SharedFramebuffer) Frames() uint64 {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	return sf.frame
}

type emuState int

const (
	emuRunning emuState = iota
	emuPauseRequested
	emuPaused
	emuStopped
)

// EmuControl coordinates pause, resume and stop between the Ebiten
// thread and the emulation goroutine, which polls CheckPause between
// frames.
type EmuControl struct {
	mu    sync.Mutex
	cond  *sync.Cond
	state emuState
}

// NewEmuControl creates a control in the running state.
func NewEmuControl() *EmuControl {
	ec := &EmuControl{}
	ec.cond = sync.NewCond(&ec.mu)
	return ec
}

// RequestPause asks the emulation goroutine to pause and blocks until it
// has stopped between frames (or the control was stopped).
func (ec *EmuControl) RequestPause() {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	if ec.state != emuRunning {
		return
	}
	ec.state = emuPauseRequested
	for ec.state == emuPauseRequested {
		ec.cond.Wait()
	}
}

// RequestResume lets a paused emulation goroutine continue.
func (ec *EmuControl) RequestResume() {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	if ec.state == emuPaused || ec.state == emuPauseRequested {
		ec.state = emuRunning
		ec.cond.Broadcast()
	}
}

// CheckPause is called by the emulation goroutine between frames. It
// blocks while paused and returns false once the goroutine should exit.
func (ec *EmuControl) CheckPause() bool {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	if ec.state == emuPauseRequested {
		ec.state = emuPaused
		ec.cond.Broadcast()
	}
	for ec.state == emuPaused {
		ec.cond.Wait()
	}
	return ec.state != emuStopped
}

// Stop makes the emulation goroutine exit at its next CheckPause.
func (ec *EmuControl) Stop() {
	ec.mu.Lock()
	ec.state = emuStopped
	ec.cond.Broadcast()
	ec.mu.Unlock()
}

// ShouldRun returns true if the goroutine should continue running.
func (ec *EmuControl) ShouldRun() bool {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	return ec.state != emuStopped
}

// IsPaused returns true if the emulation goroutine is currently paused.
func (ec *EmuControl) IsPaused() bool {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	return ec.state == emuPaused
}
