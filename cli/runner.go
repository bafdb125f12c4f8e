// Package cli provides a command-line runner for the emulator.
// It handles input polling and runs the emulator in a window without the full UI.
package cli

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	emucore "github.com/user-none/eblitui/api"
	emubridge "github.com/user-none/ema4k/bridge/ebiten"
	"github.com/user-none/ema4k/emu"
	"github.com/user-none/ema4k/ui"
)

// Joystick button bits beyond the directions.
const (
	buttonFire  = 4
	buttonFire2 = 5
)

// ADT buffer thresholds: frames are sped up below the minimum and
// slowed down above the maximum.
const (
	adtMinBuffer = 50 * time.Millisecond
	adtMaxBuffer = 100 * time.Millisecond
)

// Runner wraps an emulator for command-line mode.
// The emulator runs on a dedicated goroutine with audio-driven timing.
// The Ebiten thread handles input polling and rendering from the shared framebuffer.
type Runner struct {
	emulator    *emubridge.Emulator
	audioPlayer *ui.AudioPlayer

	// ADT goroutine control
	emuControl        *ui.EmuControl
	sharedInput       *ui.SharedInput
	sharedFramebuffer *ui.SharedFramebuffer
	emuDone           chan struct{}

	// Hotkey state, owned by the Ebiten thread
	paused     bool
	quickState []byte
	osd        osd
}

// NewRunner creates a new Runner wrapping the given emulator.
// Audio initialization failure is non-fatal; the runner will work without sound.
func NewRunner(e *emubridge.Emulator) *Runner {
	player, err := ui.NewAudioPlayer(emu.SampleRate, 1.0)
	if err != nil {
		log.Printf("Warning: audio initialization failed: %v", err)
	}

	r := &Runner{
		emulator:          e,
		audioPlayer:       player,
		emuControl:        ui.NewEmuControl(),
		sharedInput:       &ui.SharedInput{},
		sharedFramebuffer: ui.NewSharedFramebuffer(),
		emuDone:           make(chan struct{}),
	}

	// Start emulation goroutine
	go r.emulationLoop()

	return r
}

// Close cleans up the runner's resources.
func (r *Runner) Close() {
	// Stop emulation goroutine
	if r.emuControl != nil {
		r.emuControl.Stop()
		<-r.emuDone
	}

	if r.audioPlayer != nil {
		r.audioPlayer.Close()
		r.audioPlayer = nil
	}
}

// emulationLoop runs on a dedicated goroutine with ADT.
func (r *Runner) emulationLoop() {
	defer close(r.emuDone)

	timing := r.emulator.GetTiming()
	frameTime := time.Duration(float64(time.Second) / float64(timing.FPS))
	lastFrameTime := time.Now()

	for {
		if !r.emuControl.CheckPause() {
			return
		}

		// Read input from shared state
		for player, buttons := range r.sharedInput.Read() {
			r.emulator.SetInput(player, buttons)
		}

		// Run one frame
		r.emulator.RunFrame()

		// Queue audio
		if r.audioPlayer != nil {
			r.audioPlayer.QueueSamples(r.emulator.GetAudioSamples())
		}

		// Update shared framebuffer
		r.sharedFramebuffer.Update(
			r.emulator.GetFramebuffer(),
			r.emulator.GetFramebufferStride(),
			r.emulator.GetActiveHeight(),
		)

		// ADT sleep
		elapsed := time.Since(lastFrameTime)
		sleepTime := frameTime - elapsed

		if r.audioPlayer != nil {
			bufferLevel := r.audioPlayer.Buffered()
			if bufferLevel < adtMinBuffer {
				sleepTime = time.Duration(float64(sleepTime) * 0.9)
			} else if bufferLevel > adtMaxBuffer {
				sleepTime = time.Duration(float64(sleepTime) * 1.1)
			}
		}

		if sleepTime > time.Millisecond {
			time.Sleep(sleepTime)
		}

		lastFrameTime = time.Now()
	}
}

// Update implements ebiten.Game.
func (r *Runner) Update() error {
	if !ebiten.IsFocused() {
		return nil
	}

	r.handleHotkeys()
	r.pollInputToShared()
	return nil
}

// handleHotkeys: P pauses, F5 saves a quick state, F9 loads it, F12
// resets the machine.
func (r *Runner) handleHotkeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		if r.paused {
			r.emuControl.RequestResume()
			r.osd.Clear()
		} else {
			r.emuControl.RequestPause()
			r.osd.Hold("Paused")
		}
		r.paused = !r.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyF5):
		r.whilePaused(func() {
			state, err := r.emulator.Serialize()
			if err != nil {
				log.Printf("Save state failed: %v", err)
				r.osd.Show("Save state failed")
				return
			}
			r.quickState = state
			r.osd.Show("State saved")
		})
	case inpututil.IsKeyJustPressed(ebiten.KeyF9):
		if r.quickState == nil {
			return
		}
		r.whilePaused(func() {
			if err := r.emulator.Deserialize(r.quickState); err != nil {
				log.Printf("Load state failed: %v", err)
				r.osd.Show("Load state failed")
				return
			}
			r.osd.Show("State loaded")
		})
	case inpututil.IsKeyJustPressed(ebiten.KeyF12):
		r.whilePaused(r.emulator.Reset)
		r.osd.Show("Reset")
	}
}

// whilePaused runs fn with the emulation goroutine stopped between frames.
func (r *Runner) whilePaused(fn func()) {
	if !r.paused {
		r.emuControl.RequestPause()
		defer r.emuControl.RequestResume()
	}
	fn()
}

// Draw implements ebiten.Game.
func (r *Runner) Draw(screen *ebiten.Image) {
	pixels, stride, height := r.sharedFramebuffer.Read()
	if height == 0 {
		return
	}
	r.emulator.DrawCachedFramebuffer(screen, pixels, stride, height)
	r.osd.Draw(screen)
}

// Layout implements ebiten.Game.
func (r *Runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	return r.emulator.Layout(outsideWidth, outsideHeight)
}

// pollInputToShared reads keyboard and gamepad input and writes to shared state.
// The keyboard and the first gamepad drive player 1; a second gamepad
// drives player 2.
func (r *Runner) pollInputToShared() {
	var players [2]uint32

	// Keyboard (WASD + arrows for movement, J and K for the fire buttons)
	players[0] = mask(
		ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		ebiten.IsKeyPressed(ebiten.KeyJ) || ebiten.IsKeyPressed(ebiten.KeySpace),
		ebiten.IsKeyPressed(ebiten.KeyK),
	)

	player := 0
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		if player >= len(players) {
			break
		}

		// Left analog stick (with deadzone)
		const deadzone = 0.5
		axisX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		axisY := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)

		// D-pad or stick; A/Cross fires, B/Circle is the second button
		players[player] |= mask(
			ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftTop) || axisY < -deadzone,
			ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftBottom) || axisY > deadzone,
			ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft) || axisX < -deadzone,
			ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight) || axisX > deadzone,
			ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom),
			ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightRight),
		)
		player++
	}

	for p, buttons := range players {
		r.sharedInput.Set(p, buttons)
	}
}

// mask packs joystick lines into an emucore button bitmask.
func mask(up, down, left, right, fire, fire2 bool) uint32 {
	var m uint32
	for _, b := range []struct {
		pressed bool
		bit     uint
	}{
		{up, uint(emucore.ButtonUp)},
		{down, uint(emucore.ButtonDown)},
		{left, uint(emucore.ButtonLeft)},
		{right, uint(emucore.ButtonRight)},
		{fire, buttonFire},
		{fire2, buttonFire2},
	} {
		if b.pressed {
			m |= 1 << b.bit
		}
	}
	return m
}
