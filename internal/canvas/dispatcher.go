package canvas

import (
	"fmt"
	"strconv"
	"strings"

	mdwerror "github.com/AGOODGITDUCK/PebbleCode/foundation/core/error"
	mdwlog "github.com/AGOODGITDUCK/PebbleCode/foundation/core/log"
)

// Console messages shared with callers
const (
	MsgNoGUI          = "No GUI initialized. Use 'gui mode' first."
	MsgInvalidCommand = "Invalid command"
	DefaultColor      = "black"
)

// Options configures a Dispatcher
type Options struct {
	Logger *mdwlog.Logger
}

// Dispatcher parses drawing commands and applies them to the attached
// surface. Element IDs are numbered by the dispatcher, starting at 1, and
// keep counting across clears and GUI sessions.
type Dispatcher struct {
	surface  Surface
	elements map[int]Handle
	nextID   int
	logger   *mdwlog.Logger
}

// NewDispatcher creates a dispatcher with no surface attached
func NewDispatcher(opts Options) *Dispatcher {
	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	return &Dispatcher{
		elements: make(map[int]Handle),
		nextID:   1,
		logger:   logger.WithField("component", "pebble-canvas"),
	}
}

// Attach makes s the target of later commands
func (d *Dispatcher) Attach(s Surface) {
	d.surface = s
}

// Detach drops the surface and forgets its elements
func (d *Dispatcher) Detach() {
	d.surface = nil
	d.elements = make(map[int]Handle)
}

// Attached reports whether a surface is attached
func (d *Dispatcher) Attached() bool {
	return d.surface != nil
}

// Elements returns the number of live elements
func (d *Dispatcher) Elements() int {
	return len(d.elements)
}

// Exec runs one drawing command and returns the message for the user.
// Malformed commands are reported in the message; the error is reserved
// for commands the surface rejects.
func (d *Dispatcher) Exec(line string) (string, error) {
	if d.surface == nil {
		return MsgNoGUI, nil
	}

	parts := strings.Fields(line)
	if len(parts) == 0 {
		return MsgInvalidCommand, nil
	}

	switch parts[0] {
	case "canvas":
		if len(parts) != 3 {
			return MsgInvalidCommand, nil
		}
		return d.execResize(parts[1], parts[2])

	case "color":
		if len(parts) != 2 {
			return MsgInvalidCommand, nil
		}
		d.surface.Recolor(parts[1])
		return fmt.Sprintf("Canvas color set to %s", parts[1]), nil

	case "text":
		return d.execText(line)

	case "oval", "rect", "line":
		return d.execShape(Kind(parts[0]), parts[1:])

	case "move":
		return d.execMove(parts[1:])

	case "delete":
		return d.execDelete(parts[1:])

	case "clear":
		d.surface.Clear()
		d.elements = make(map[int]Handle)
		return "Canvas cleared", nil
	}

	return MsgInvalidCommand, nil
}

func (d *Dispatcher) execResize(ws, hs string) (string, error) {
	w, errW := strconv.Atoi(ws)
	h, errH := strconv.Atoi(hs)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return "", mdwerror.Newf("invalid canvas size %s %s", ws, hs).
			WithCode(mdwerror.CodeCanvasCommand).
			WithOperation("canvas.Exec")
	}
	d.surface.Resize(w, h)
	return fmt.Sprintf("Canvas resized to %dx%d", w, h), nil
}

func (d *Dispatcher) execText(line string) (string, error) {
	start := strings.IndexByte(line, '"')
	if start < 0 {
		return d.invalid(KindText, "missing quoted text"), nil
	}
	end := strings.IndexByte(line[start+1:], '"')
	if end < 0 {
		return d.invalid(KindText, "unterminated text"), nil
	}
	end += start + 1
	text := line[start+1 : end]

	rest := strings.Fields(line[end+1:])
	if len(rest) == 0 || rest[0] != "pos" {
		return d.invalid(KindText, "missing pos"), nil
	}
	args := parsePairs(rest[1:])
	x, reason := intArg(args, "x")
	if reason != "" {
		return d.invalid(KindText, reason), nil
	}
	z, reason := intArg(args, "z")
	if reason != "" {
		return d.invalid(KindText, reason), nil
	}

	return d.create(Shape{Kind: KindText, X: x, Z: z, Text: text, Color: DefaultColor})
}

func (d *Dispatcher) execShape(kind Kind, fields []string) (string, error) {
	args := parsePairs(fields)
	var coords [4]int
	for i, key := range []string{"x", "z", "x2", "z2"} {
		v, reason := intArg(args, key)
		if reason != "" {
			return d.invalid(kind, reason), nil
		}
		coords[i] = v
	}

	color := DefaultColor
	for _, f := range fields {
		key, value, ok := strings.Cut(f, ":")
		if ok && (key == "fill" || key == "color") && value != "" {
			color = value
			break
		}
	}

	return d.create(Shape{Kind: kind, X: coords[0], Z: coords[1], X2: coords[2], Z2: coords[3], Color: color})
}

func (d *Dispatcher) create(shape Shape) (string, error) {
	h, err := d.surface.CreateShape(shape)
	if err != nil {
		return "", err
	}
	id := d.nextID
	d.nextID++
	d.elements[id] = h

	d.logger.Debug("element created", mdwlog.Fields{"id": id, "kind": string(shape.Kind)})
	return fmt.Sprintf("%s added with ID %d", kindLabel(shape.Kind), id), nil
}

func (d *Dispatcher) execMove(fields []string) (string, error) {
	args := parsePairs(fields)
	id, reason := intArg(args, "id")
	if reason != "" {
		return d.invalid("move", reason), nil
	}
	dx, reason := intArg(args, "x")
	if reason != "" {
		return d.invalid("move", reason), nil
	}
	dz, reason := intArg(args, "z")
	if reason != "" {
		return d.invalid("move", reason), nil
	}

	h, ok := d.elements[id]
	if !ok {
		return d.invalid("move", fmt.Sprintf("unknown element %d", id)), nil
	}
	if err := d.surface.Move(h, dx, dz); err != nil {
		return "", err
	}
	return fmt.Sprintf("Moved element %d", id), nil
}

func (d *Dispatcher) execDelete(fields []string) (string, error) {
	id, reason := intArg(parsePairs(fields), "id")
	if reason != "" {
		return d.invalid("delete", reason), nil
	}

	h, ok := d.elements[id]
	if !ok {
		return d.invalid("delete", fmt.Sprintf("unknown element %d", id)), nil
	}
	if err := d.surface.Delete(h); err != nil {
		return "", err
	}
	delete(d.elements, id)
	return fmt.Sprintf("Deleted element %d", id), nil
}

func (d *Dispatcher) invalid(kind Kind, reason string) string {
	d.logger.Debug("rejected drawing command", mdwlog.Fields{"kind": string(kind), "reason": reason})
	return fmt.Sprintf("Invalid GUI %s command: %s", kind, reason)
}

// parsePairs collects key:value fields; the first occurrence of a key wins
func parsePairs(fields []string) map[string]string {
	args := make(map[string]string, len(fields))
	for _, f := range fields {
		key, value, ok := strings.Cut(f, ":")
		if !ok {
			continue
		}
		if _, seen := args[key]; !seen {
			args[key] = value
		}
	}
	return args
}

func intArg(args map[string]string, key string) (int, string) {
	raw, ok := args[key]
	if !ok {
		return 0, "missing " + key
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Sprintf("invalid value for %s: %q", key, raw)
	}
	return v, ""
}

func kindLabel(k Kind) string {
	s := string(k)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
