package termview

import (
	"context"
	"fmt"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/rmdl/go-diorama-raytracer/pkg/renderer"
)

// Terminal presents framebuffers as half-block cells. Each cell shows
// two framebuffer rows: ▀ with the foreground set to the top pixel and
// the background set to the bottom one, so the vertical resolution is
// twice the terminal's row count.
type Terminal struct {
	term   *uv.Terminal
	width  int // Terminal columns
	height int // Terminal rows
}

// OpenTerminal takes over the controlling terminal: alt screen, hidden
// cursor. Close restores it.
func OpenTerminal() (*Terminal, error) {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return nil, fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return nil, fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	return &Terminal{term: term, width: width, height: height}, nil
}

// FramebufferSize returns the pixel dimensions matching the current
// terminal size. One row of status line is reserved at the bottom.
func (t *Terminal) FramebufferSize() (int, int) {
	rows := t.height - 1
	if rows < 1 {
		rows = 1
	}
	return t.width, rows * 2
}

// Events returns the terminal's input event channel
func (t *Terminal) Events() <-chan uv.Event {
	return t.term.Events()
}

// HandleResize adopts a new terminal size reported by a resize event
func (t *Terminal) HandleResize(width, height int) {
	t.width = width
	t.height = height
	t.term.Erase()
	t.term.Resize(width, height)
}

// Present draws a framebuffer to the terminal and flushes it
func (t *Terminal) Present(fb *renderer.Framebuffer) error {
	rows := fb.Height / 2
	for row := 0; row < rows && row < t.height; row++ {
		topY := row * 2
		botY := topY + 1

		for col := 0; col < fb.Width && col < t.width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: packedToColor(fb.At(col, topY)),
					Bg: packedToColor(fb.At(col, botY)),
				},
			}
			t.term.SetCell(col, row, cell)
		}
	}
	return t.term.Display()
}

// Status writes a line of text into the reserved bottom row
func (t *Terminal) Status(text string) {
	row := t.height - 1
	for col := 0; col < t.width; col++ {
		content := " "
		if col < len(text) {
			content = string(text[col])
		}
		cell := &uv.Cell{
			Content: content,
			Width:   1,
			Style: uv.Style{
				Fg: color.RGBA{R: 235, G: 235, B: 235, A: 255},
				Bg: color.RGBA{R: 20, G: 20, B: 28, A: 255},
			},
		}
		t.term.SetCell(col, row, cell)
	}
}

// Close restores the terminal state
func (t *Terminal) Close() {
	t.term.ExitAltScreen()
	t.term.ShowCursor()
	t.term.Shutdown(context.Background())
}

// packedToColor converts a packed 24-bit RGB pixel to a terminal color
func packedToColor(packed uint32) color.Color {
	r, g, b := renderer.UnpackColor(packed)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
