package sim

// History is a fixed-capacity FIFO record of past positions for one body.
// Once full, each push evicts the oldest entry.
type History struct {
	data []Vec2
	pos  int
	full bool
}

func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{data: make([]Vec2, capacity)}
}

func (h *History) Cap() int { return len(h.data) }

func (h *History) Len() int {
	if h.full {
		return len(h.data)
	}
	return h.pos
}

// Push appends a position, evicting the oldest entry when at capacity.
func (h *History) Push(p Vec2) {
	h.data[h.pos] = p
	h.pos++
	if h.pos == len(h.data) {
		h.pos = 0
		h.full = true
	}
}

// Positions returns the stored positions, oldest to newest.
func (h *History) Positions() []Vec2 {
	n := h.Len()
	out := make([]Vec2, n)
	if h.full {
		copy(out, h.data[h.pos:])
		copy(out[len(h.data)-h.pos:], h.data[:h.pos])
	} else {
		copy(out, h.data[:h.pos])
	}
	return out
}
