package canvas

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Cell is one character of a rasterized scene
type Cell struct {
	Ch    rune
	Color string
}

// Grid is a rasterized scene, indexed [row][col]
type Grid [][]Cell

// String returns the grid without colours, rows separated by newlines
func (g Grid) String() string {
	var b strings.Builder
	for i, row := range g {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, c := range row {
			b.WriteRune(c.Ch)
		}
	}
	return b.String()
}

// Rasterize maps a snapshot onto a cols x rows character grid. Shapes are
// drawn in creation order, so later shapes overwrite earlier ones.
func Rasterize(snap Snapshot, cols, rows int) Grid {
	if cols <= 0 || rows <= 0 {
		return Grid{}
	}
	grid := make(Grid, rows)
	for r := range grid {
		grid[r] = make([]Cell, cols)
		for c := range grid[r] {
			grid[r][c] = Cell{Ch: ' '}
		}
	}

	width, height := snap.Width, snap.Height
	if width <= 0 {
		width = cols
	}
	if height <= 0 {
		height = rows
	}
	// off-grid coordinates are clamped to one grid size away so drawing stays bounded
	col := func(x int) int { return scale(x, cols, width) }
	row := func(z int) int { return scale(z, rows, height) }
	plot := func(c, r int, ch rune, color string) {
		if r < 0 || r >= rows || c < 0 || c >= cols {
			return
		}
		grid[r][c] = Cell{Ch: ch, Color: color}
	}

	for _, s := range snap.Shapes {
		switch s.Kind {
		case KindText:
			c0, r0 := col(s.X), row(s.Z)
			i := 0
			for _, ch := range s.Text {
				plot(c0+i, r0, ch, s.Color)
				i++
			}

		case KindRect:
			c0, c1 := order(col(s.X), col(s.X2))
			r0, r1 := order(row(s.Z), row(s.Z2))
			for c := c0; c <= c1; c++ {
				plot(c, r0, '-', s.Color)
				plot(c, r1, '-', s.Color)
			}
			for r := r0; r <= r1; r++ {
				plot(c0, r, '|', s.Color)
				plot(c1, r, '|', s.Color)
			}
			plot(c0, r0, '+', s.Color)
			plot(c1, r0, '+', s.Color)
			plot(c0, r1, '+', s.Color)
			plot(c1, r1, '+', s.Color)

		case KindOval:
			c0, c1 := order(col(s.X), col(s.X2))
			r0, r1 := order(row(s.Z), row(s.Z2))
			cx, cz := float64(c0+c1)/2, float64(r0+r1)/2
			rx, rz := float64(c1-c0)/2, float64(r1-r0)/2
			steps := 4 * (c1 - c0 + r1 - r0 + 4)
			for i := 0; i < steps; i++ {
				t := 2 * math.Pi * float64(i) / float64(steps)
				plot(int(math.Round(cx+rx*math.Cos(t))), int(math.Round(cz+rz*math.Sin(t))), 'o', s.Color)
			}

		case KindLine:
			line(col(s.X), row(s.Z), col(s.X2), row(s.Z2), func(c, r int) {
				plot(c, r, '*', s.Color)
			})
		}
	}

	return grid
}

// Render rasterizes a snapshot and colours every run of cells with lipgloss
func Render(snap Snapshot, cols, rows int) string {
	grid := Rasterize(snap, cols, rows)

	var b strings.Builder
	for i, cells := range grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for j := 1; j <= len(cells); j++ {
			if j < len(cells) && cells[j].Color == cells[start].Color {
				continue
			}
			var run strings.Builder
			for _, c := range cells[start:j] {
				run.WriteRune(c.Ch)
			}
			if color := cells[start].Color; color != "" {
				b.WriteString(lipgloss.NewStyle().Foreground(TerminalColor(color)).Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			start = j
		}
	}
	return b.String()
}

var namedColors = map[string]string{
	"black":   "0",
	"red":     "1",
	"green":   "2",
	"yellow":  "3",
	"blue":    "4",
	"magenta": "5",
	"purple":  "5",
	"cyan":    "6",
	"white":   "7",
	"gray":    "8",
	"grey":    "8",
	"orange":  "208",
	"pink":    "213",
	"brown":   "94",
}

// TerminalColor maps a colour name or #rrggbb value to a lipgloss colour
func TerminalColor(name string) lipgloss.TerminalColor {
	name = strings.ToLower(strings.TrimSpace(name))
	if strings.HasPrefix(name, "#") {
		return lipgloss.Color(name)
	}
	if code, ok := namedColors[name]; ok {
		return lipgloss.Color(code)
	}
	return lipgloss.NoColor{}
}

// line walks the cells between two points with Bresenham's algorithm
func line(c0, r0, c1, r1 int, fn func(c, r int)) {
	dc, dr := abs(c1-c0), -abs(r1-r0)
	sc, sr := 1, 1
	if c0 > c1 {
		sc = -1
	}
	if r0 > r1 {
		sr = -1
	}
	e := dc + dr
	for {
		fn(c0, r0)
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * e
		if e2 >= dr {
			e += dr
			c0 += sc
		}
		if e2 <= dc {
			e += dc
			r0 += sr
		}
	}
}

func scale(v, cells, extent int) int {
	f := math.Floor(float64(v) * float64(cells) / float64(extent))
	return int(math.Max(-float64(cells), math.Min(2*float64(cells), f)))
}

func order(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
