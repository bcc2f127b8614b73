package viz

import "github.com/arvid-sk/threebody/internal/sim"

// Viewport maps simulation coordinates onto canvas sub-pixels:
// one sub-pixel per Scale meters, origin at the canvas center, y up.
type Viewport struct {
	Width, Height int // in sub-pixels
	Scale         float64
	Center        sim.Vec2
}

func (v Viewport) ToScreen(p sim.Vec2) (int, int) {
	x := v.Width/2 + int((p.X-v.Center.X)/v.Scale)
	y := v.Height/2 - int((p.Y-v.Center.Y)/v.Scale)
	return x, y
}

// Contains reports whether the screen point is on the canvas.
func (v Viewport) Contains(x, y int) bool {
	return x >= 0 && x < v.Width && y >= 0 && y < v.Height
}
