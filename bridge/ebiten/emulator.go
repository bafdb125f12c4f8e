// Package ebiten provides an Ebiten-specific wrapper for the emulator.
package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/user-none/ema4k/emu"
)

// displayAspect is the shape of the visible picture on a monitor. Lores
// pixels are not square, so the frame is stretched to fit it.
const displayAspect = 4.0 / 3.0

// Emulator wraps emu.Emulator with Ebiten-specific functionality
type Emulator struct {
	*emu.Emulator

	offscreen *ebiten.Image           // native resolution frame
	drawOpts  ebiten.DrawImageOptions // reused every frame
}

// NewEmulator creates a new emulator instance with Ebiten rendering.
func NewEmulator(rom []byte, cfg emu.Config) (*Emulator, error) {
	m, err := emu.NewEmulatorWithConfig(rom, cfg)
	if err != nil {
		return nil, err
	}
	return &Emulator{Emulator: m}, nil
}

// Close releases the offscreen image and the machine.
func (e *Emulator) Close() {
	if e.offscreen != nil {
		e.offscreen.Deallocate()
		e.offscreen = nil
	}
	e.Emulator.Close()
}

// Layout implements ebiten.Game.
func (e *Emulator) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// fitRect returns the size and origin of a displayAspect rectangle
// centred in a screenW x screenH screen.
func fitRect(screenW, screenH int) (w, h, x, y float64) {
	w, h = float64(screenW), float64(screenH)
	if w/h > displayAspect {
		w = h * displayAspect
	} else {
		h = w / displayAspect
	}
	return w, h, (float64(screenW) - w) / 2, (float64(screenH) - h) / 2
}

// DrawCachedFramebuffer renders a frame copied out of the emulation
// goroutine. pixels is RGBA with the given stride; only activeHeight
// rows are shown.
func (e *Emulator) DrawCachedFramebuffer(screen *ebiten.Image, pixels []byte, stride, activeHeight int) {
	if activeHeight == 0 || stride != emu.ScreenWidth*4 || len(pixels) < stride*activeHeight {
		return
	}

	if e.offscreen == nil || e.offscreen.Bounds().Dy() != activeHeight {
		if e.offscreen != nil {
			e.offscreen.Deallocate()
		}
		e.offscreen = ebiten.NewImage(emu.ScreenWidth, activeHeight)
	}
	e.offscreen.WritePixels(pixels[:stride*activeHeight])

	w, h, x, y := fitRect(screen.Bounds().Dx(), screen.Bounds().Dy())

	e.drawOpts = ebiten.DrawImageOptions{}
	e.drawOpts.GeoM.Scale(w/emu.ScreenWidth, h/float64(activeHeight))
	e.drawOpts.GeoM.Translate(x, y)
	e.drawOpts.Filter = ebiten.FilterLinear
	screen.DrawImage(e.offscreen, &e.drawOpts)
}
