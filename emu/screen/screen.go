// Package screen renders the CHIP-8 framebuffer in a pixel window and
// feeds keyboard events into the keypad.
package screen

import (
	"gochip8/emu/chip8"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"
)

// Scale is the on-screen size of one CHIP-8 pixel.
const Scale = 10

// KeyMap lays the hex keypad onto the left side of a QWERTY keyboard:
//
//	1 2 3 C        1 2 3 4
//	4 5 6 D   ->   Q W E R
//	7 8 9 E        A S D F
//	A 0 B F        Z X C V
var KeyMap = map[uint8]pixelgl.Button{
	0x1: pixelgl.Key1, 0x2: pixelgl.Key2, 0x3: pixelgl.Key3, 0xC: pixelgl.Key4,
	0x4: pixelgl.KeyQ, 0x5: pixelgl.KeyW, 0x6: pixelgl.KeyE, 0xD: pixelgl.KeyR,
	0x7: pixelgl.KeyA, 0x8: pixelgl.KeyS, 0x9: pixelgl.KeyD, 0xE: pixelgl.KeyF,
	0xA: pixelgl.KeyZ, 0x0: pixelgl.KeyX, 0xB: pixelgl.KeyC, 0xF: pixelgl.KeyV,
}

// Window wraps a pixel window as the emulator front end.
type Window struct {
	win *pixelgl.Window
	imd *imdraw.IMDraw
}

// New opens the emulator window. It must run on the pixelgl main thread,
// which main.go arranges with pixelgl.Run.
func New(title string) (*Window, error) {
	cfg := pixelgl.WindowConfig{
		Title:  title,
		Bounds: pixel.R(0, 0, chip8.DisplayWidth*Scale, chip8.DisplayHeight*Scale),
		VSync:  true,
	}
	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, err
	}
	return &Window{
		win: win,
		imd: imdraw.New(nil),
	}, nil
}

// Render draws the framebuffer as white cells on black and pumps window
// events. The y axis is flipped: CHIP-8 has its origin top-left, pixel
// bottom-left.
func (w *Window) Render(d *chip8.Display) {
	w.win.Clear(colornames.Black)
	w.imd.Clear()
	w.imd.Color = colornames.White
	for y := 0; y < chip8.DisplayHeight; y++ {
		for x := 0; x < chip8.DisplayWidth; x++ {
			if !d.Pixel(x, y) {
				continue
			}
			fx := float64(x) * Scale
			fy := float64(chip8.DisplayHeight-1-y) * Scale
			w.imd.Push(pixel.V(fx, fy), pixel.V(fx+Scale, fy+Scale))
			w.imd.Rectangle(0)
		}
	}
	w.imd.Draw(w.win)
	w.win.Update()
}

// PollInput forwards the keyboard state to the keypad. Held keys re-press
// every frame so their hold window keeps getting re-armed; the keypad
// decides what a release inside the hold window means.
func (w *Window) PollInput(k *chip8.Keypad) {
	for key, button := range KeyMap {
		if w.win.Pressed(button) {
			k.Press(key)
		} else if w.win.JustReleased(button) {
			k.Release(key)
		}
	}
}

// Closed reports whether the window was closed or Escape pressed.
func (w *Window) Closed() bool {
	return w.win.Closed() || w.win.JustPressed(pixelgl.KeyEscape)
}
