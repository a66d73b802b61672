// ============================================================================
// PebbleCode - Pebble scripting language
// ============================================================================
//
// Package:     canvas
// Description: Retained-mode drawing surface for the console GUI mode
// Author:      Adam Nassar
// Created:     2025-09-14
// License:     MIT
// ============================================================================

// Package canvas implements the drawing side of the console: the Surface
// capability interface, an in-memory Scene, the command Dispatcher, a
// character rasterizer for terminals and a websocket live viewer.
package canvas

// Kind identifies the type of a shape
type Kind string

const (
	KindText Kind = "text"
	KindOval Kind = "oval"
	KindRect Kind = "rect"
	KindLine Kind = "line"
)

// Valid reports whether k is a known shape kind
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindOval, KindRect, KindLine:
		return true
	}
	return false
}

// Handle identifies a shape on one surface
type Handle int

// Shape is one element on the surface. Text shapes anchor their top-left
// corner at (X, Z); the others span the box from (X, Z) to (X2, Z2).
type Shape struct {
	Handle Handle `json:"handle"`
	Kind   Kind   `json:"kind"`
	X      int    `json:"x"`
	Z      int    `json:"z"`
	X2     int    `json:"x2,omitempty"`
	Z2     int    `json:"z2,omitempty"`
	Text   string `json:"text,omitempty"`
	Color  string `json:"color"`
}

// Surface is the capability the console draws on
type Surface interface {
	CreateShape(shape Shape) (Handle, error)
	Move(h Handle, dx, dz int) error
	Delete(h Handle) error
	Clear()
	Resize(width, height int)
	Recolor(color string)
}

// Snapshot is a copy of a scene at one point in time
type Snapshot struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Background string  `json:"background"`
	Shapes     []Shape `json:"shapes"`
}

// Find returns the shape with the given handle
func (s Snapshot) Find(h Handle) (Shape, bool) {
	for _, shape := range s.Shapes {
		if shape.Handle == h {
			return shape, true
		}
	}
	return Shape{}, false
}
