package canvas

import (
	"sync"

	mdwerror "github.com/AGOODGITDUCK/PebbleCode/foundation/core/error"
)

// EventType names a scene change
type EventType string

const (
	EventCreate  EventType = "create"
	EventMove    EventType = "move"
	EventDelete  EventType = "delete"
	EventClear   EventType = "clear"
	EventResize  EventType = "resize"
	EventRecolor EventType = "recolor"
	EventReset   EventType = "reset"
)

// Event describes one change applied to a scene
type Event struct {
	Type   EventType `json:"type"`
	Shape  *Shape    `json:"shape,omitempty"`
	Handle Handle    `json:"handle,omitempty"`
	DX     int       `json:"dx,omitempty"`
	DZ     int       `json:"dz,omitempty"`
	Width  int       `json:"width,omitempty"`
	Height int       `json:"height,omitempty"`
	Color  string    `json:"color,omitempty"`
}

// Scene is the in-memory Surface. Shapes keep their creation order.
// Listeners run after the scene lock is released, in the calling goroutine.
type Scene struct {
	mu         sync.RWMutex
	width      int
	height     int
	background string
	shapes     []Shape
	next       Handle

	initWidth      int
	initHeight     int
	initBackground string

	listenerMu sync.Mutex
	listeners  map[int]func(Event)
	nextSub    int
}

// NewScene creates an empty scene
func NewScene(width, height int, background string) *Scene {
	return &Scene{
		width:          width,
		height:         height,
		background:     background,
		next:           1,
		initWidth:      width,
		initHeight:     height,
		initBackground: background,
		listeners:      make(map[int]func(Event)),
	}
}

// Subscribe registers fn for every later change and returns a function
// that removes it again
func (s *Scene) Subscribe(fn func(Event)) func() {
	s.listenerMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	s.listenerMu.Unlock()

	return func() {
		s.listenerMu.Lock()
		delete(s.listeners, id)
		s.listenerMu.Unlock()
	}
}

func (s *Scene) emit(ev Event) {
	s.listenerMu.Lock()
	fns := make([]func(Event), 0, len(s.listeners))
	for i := 0; i < s.nextSub; i++ {
		if fn, ok := s.listeners[i]; ok {
			fns = append(fns, fn)
		}
	}
	s.listenerMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// CreateShape adds a shape and returns its handle
func (s *Scene) CreateShape(shape Shape) (Handle, error) {
	if !shape.Kind.Valid() {
		return 0, mdwerror.Newf("unknown shape kind %q", shape.Kind).
			WithCode(mdwerror.CodeCanvasCommand).
			WithOperation("canvas.CreateShape")
	}

	s.mu.Lock()
	shape.Handle = s.next
	s.next++
	s.shapes = append(s.shapes, shape)
	s.mu.Unlock()

	s.emit(Event{Type: EventCreate, Shape: &shape, Handle: shape.Handle})
	return shape.Handle, nil
}

// Move shifts a shape by dx, dz
func (s *Scene) Move(h Handle, dx, dz int) error {
	s.mu.Lock()
	i := s.indexOf(h)
	if i < 0 {
		s.mu.Unlock()
		return unknownHandle("canvas.Move", h)
	}
	shape := &s.shapes[i]
	shape.X += dx
	shape.Z += dz
	if shape.Kind != KindText {
		shape.X2 += dx
		shape.Z2 += dz
	}
	s.mu.Unlock()

	s.emit(Event{Type: EventMove, Handle: h, DX: dx, DZ: dz})
	return nil
}

// Delete removes a shape
func (s *Scene) Delete(h Handle) error {
	s.mu.Lock()
	i := s.indexOf(h)
	if i < 0 {
		s.mu.Unlock()
		return unknownHandle("canvas.Delete", h)
	}
	s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
	s.mu.Unlock()

	s.emit(Event{Type: EventDelete, Handle: h})
	return nil
}

// Clear removes every shape. Handles keep counting.
func (s *Scene) Clear() {
	s.mu.Lock()
	s.shapes = nil
	s.mu.Unlock()

	s.emit(Event{Type: EventClear})
}

// Resize changes the drawing area
func (s *Scene) Resize(width, height int) {
	s.mu.Lock()
	s.width, s.height = width, height
	s.mu.Unlock()

	s.emit(Event{Type: EventResize, Width: width, Height: height})
}

// Recolor changes the background colour
func (s *Scene) Recolor(color string) {
	s.mu.Lock()
	s.background = color
	s.mu.Unlock()

	s.emit(Event{Type: EventRecolor, Color: color})
}

// Reset drops every shape and restores the initial size and background
func (s *Scene) Reset() {
	s.mu.Lock()
	s.shapes = nil
	s.width, s.height, s.background = s.initWidth, s.initHeight, s.initBackground
	s.mu.Unlock()

	s.emit(Event{Type: EventReset, Width: s.initWidth, Height: s.initHeight, Color: s.initBackground})
}

// Len returns the number of shapes
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.shapes)
}

// Snapshot copies the current state
func (s *Scene) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shapes := make([]Shape, len(s.shapes))
	copy(shapes, s.shapes)
	return Snapshot{
		Width:      s.width,
		Height:     s.height,
		Background: s.background,
		Shapes:     shapes,
	}
}

func (s *Scene) indexOf(h Handle) int {
	for i := range s.shapes {
		if s.shapes[i].Handle == h {
			return i
		}
	}
	return -1
}

func unknownHandle(op string, h Handle) error {
	return mdwerror.Newf("no element with handle %d", h).
		WithCode(mdwerror.CodeCanvasCommand).
		WithOperation(op).
		WithDetail("handle", int(h))
}
