package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwerror "github.com/AGOODGITDUCK/PebbleCode/foundation/core/error"
	mdwlog "github.com/AGOODGITDUCK/PebbleCode/foundation/core/log"
)

func newTestDispatcher() (*Dispatcher, *Scene) {
	scene := NewScene(400, 300, "white")
	d := NewDispatcher(Options{Logger: mdwlog.Discard()})
	d.Attach(scene)
	return d, scene
}

func TestDispatcher_NoSurface(t *testing.T) {
	d := NewDispatcher(Options{Logger: mdwlog.Discard()})
	assert.False(t, d.Attached())

	msg, err := d.Exec("rect x:0 z:0 x2:1 z2:1")
	require.NoError(t, err)
	assert.Equal(t, MsgNoGUI, msg)
}

func TestDispatcher_Session(t *testing.T) {
	d, scene := newTestDispatcher()

	steps := []struct {
		line string
		want string
	}{
		{"canvas 640 480", "Canvas resized to 640x480"},
		{"color lightblue", "Canvas color set to lightblue"},
		{`text "Hello Pebble" pos x:10 z:20`, "Text added with ID 1"},
		{"oval x:10 z:10 x2:50 z2:50 fill:red", "Oval added with ID 2"},
		{"rect x:60 z:10 x2:120 z2:40", "Rect added with ID 3"},
		{"line x:0 z:0 x2:100 z2:100 color:blue", "Line added with ID 4"},
		{"move id:2 x:5 z:-5", "Moved element 2"},
		{"delete id:3", "Deleted element 3"},
	}
	for _, step := range steps {
		msg, err := d.Exec(step.line)
		require.NoError(t, err, step.line)
		assert.Equal(t, step.want, msg, step.line)
	}

	snap := scene.Snapshot()
	assert.Equal(t, 640, snap.Width)
	assert.Equal(t, "lightblue", snap.Background)
	require.Len(t, snap.Shapes, 3)

	text := snap.Shapes[0]
	assert.Equal(t, KindText, text.Kind)
	assert.Equal(t, "Hello Pebble", text.Text)
	assert.Equal(t, DefaultColor, text.Color)

	oval := snap.Shapes[1]
	assert.Equal(t, []int{15, 5, 55, 45}, []int{oval.X, oval.Z, oval.X2, oval.Z2})
	assert.Equal(t, "red", oval.Color)

	assert.Equal(t, "blue", snap.Shapes[2].Color)
	assert.Equal(t, 3, d.Elements())
}

func TestDispatcher_ClearKeepsIDs(t *testing.T) {
	d, scene := newTestDispatcher()

	_, _ = d.Exec("rect x:0 z:0 x2:1 z2:1")
	msg, err := d.Exec("clear")
	require.NoError(t, err)
	assert.Equal(t, "Canvas cleared", msg)
	assert.Zero(t, scene.Len())
	assert.Zero(t, d.Elements())

	msg, _ = d.Exec("rect x:0 z:0 x2:1 z2:1")
	assert.Equal(t, "Rect added with ID 2", msg)

	// a new surface forgets the elements but not the numbering
	d.Detach()
	d.Attach(NewScene(10, 10, "white"))
	msg, _ = d.Exec("line x:0 z:0 x2:1 z2:1")
	assert.Equal(t, "Line added with ID 3", msg)
	msg, _ = d.Exec("delete id:2")
	assert.Equal(t, "Invalid GUI delete command: unknown element 2", msg)
}

func TestDispatcher_InvalidCommands(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"oval x:10 z:10 x2:50", "Invalid GUI oval command: missing z2"},
		{"rect x:a z:0 x2:1 z2:1", `Invalid GUI rect command: invalid value for x: "a"`},
		{"line", "Invalid GUI line command: missing x"},
		{`text "unterminated pos x:1 z:1`, "Invalid GUI text command: unterminated text"},
		{"text hello pos x:1 z:1", "Invalid GUI text command: missing quoted text"},
		{`text "hi" x:1 z:1`, "Invalid GUI text command: missing pos"},
		{`text "hi" pos x:1`, "Invalid GUI text command: missing z"},
		{"move id:1 x:1", "Invalid GUI move command: missing z"},
		{"move id:7 x:1 z:1", "Invalid GUI move command: unknown element 7"},
		{"delete", "Invalid GUI delete command: missing id"},
		{"delete id:x", `Invalid GUI delete command: invalid value for id: "x"`},
		{"canvas 100", MsgInvalidCommand},
		{"color", MsgInvalidCommand},
		{"triangle x:1", MsgInvalidCommand},
		{"   ", MsgInvalidCommand},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			d, scene := newTestDispatcher()
			msg, err := d.Exec(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, msg)
			assert.Zero(t, scene.Len())
		})
	}
}

func TestDispatcher_InvalidCanvasSize(t *testing.T) {
	d, scene := newTestDispatcher()

	for _, line := range []string{"canvas wide 300", "canvas 0 300", "canvas 100 -1"} {
		_, err := d.Exec(line)
		require.Error(t, err, line)
		assert.True(t, mdwerror.HasCode(err, mdwerror.CodeCanvasCommand), line)
	}
	assert.Equal(t, 400, scene.Snapshot().Width)
}

func TestDispatcher_TextMayContainKeywords(t *testing.T) {
	d, scene := newTestDispatcher()

	msg, err := d.Exec(`text "pos x:9 z:9" pos x:1 z:2`)
	require.NoError(t, err)
	assert.Equal(t, "Text added with ID 1", msg)

	shape := scene.Snapshot().Shapes[0]
	assert.Equal(t, "pos x:9 z:9", shape.Text)
	assert.Equal(t, 1, shape.X)
	assert.Equal(t, 2, shape.Z)
}
