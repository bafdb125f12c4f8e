package cli

import (
	"image/color"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// osdDuration is how long a status message stays on screen.
const osdDuration = 2 * time.Second

// osd shows a short status line over the picture, e.g. after a hotkey.
type osd struct {
	mu      sync.Mutex
	msg     string
	expires time.Time
	sticky  bool
}

// Show displays msg for osdDuration.
func (o *osd) Show(msg string) {
	o.mu.Lock()
	o.msg = msg
	o.expires = time.Now().Add(osdDuration)
	o.sticky = false
	o.mu.Unlock()
}

// Hold displays msg until the next Show or Clear.
func (o *osd) Hold(msg string) {
	o.mu.Lock()
	o.msg = msg
	o.sticky = true
	o.mu.Unlock()
}

// Clear removes the message.
func (o *osd) Clear() {
	o.mu.Lock()
	o.msg = ""
	o.sticky = false
	o.mu.Unlock()
}

// Current returns the message to show at now, or "".
func (o *osd) Current(now time.Time) string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.sticky || now.Before(o.expires) {
		return o.msg
	}
	return ""
}

var (
	osdText   = color.White
	osdShadow = color.RGBA{A: 0xc0}
)

// Draw renders the current message in the bottom left corner.
func (o *osd) Draw(screen *ebiten.Image) {
	msg := o.Current(time.Now())
	if msg == "" {
		return
	}
	face := basicfont.Face7x13
	x := 8
	y := screen.Bounds().Dy() - 8
	text.Draw(screen, msg, face, x+1, y+1, osdShadow)
	text.Draw(screen, msg, face, x, y, osdText)
}
