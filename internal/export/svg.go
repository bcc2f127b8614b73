package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/arvid-sk/threebody/internal/sim"
)

// Per-body stroke colors, body 0 first. Wraps around past three bodies.
var bodyColors = []string{"#00c853", "#ff1744", "#00e5ff"}

// TrajectoriesToSVG renders one polyline per body onto a dark background,
// fitted to the bounding box of all trajectories.
func TrajectoriesToSVG(trails [][]sim.Vec2, width, height int) string {
	var all []sim.Vec2
	for _, trail := range trails {
		all = append(all, trail...)
	}
	if len(all) < 2 {
		return ""
	}

	minX, maxX := all[0].X, all[0].X
	minY, maxY := all[0].Y, all[0].Y
	for _, p := range all {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.05
	minY -= rangeY * 0.05
	rangeX *= 1.1
	rangeY *= 1.1

	toScreen := func(p sim.Vec2) (float64, float64) {
		sx := (p.X - minX) / rangeX * float64(width)
		// SVG y grows downward, simulation y grows upward.
		sy := float64(height) - (p.Y-minY)/rangeY*float64(height)
		return sx, sy
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i, trail := range trails {
		if len(trail) < 2 {
			continue
		}
		color := bodyColors[i%len(bodyColors)]
		sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-width="1" points="`, color))
		for j, p := range trail {
			sx, sy := toScreen(p)
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", sx, sy))
		}
		sb.WriteString("\"/>\n")

		// Mark the final position.
		sx, sy := toScreen(trail[len(trail)-1])
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" fill="%s"/>
`, sx, sy, color))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// WriteSVG renders trails and writes the result to path.
func WriteSVG(path string, trails [][]sim.Vec2, width, height int) error {
	svg := TrajectoriesToSVG(trails, width, height)
	if svg == "" {
		return fmt.Errorf("export: not enough trajectory points for SVG")
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
