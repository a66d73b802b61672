package history

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwerror "github.com/AGOODGITDUCK/PebbleCode/foundation/core/error"
	mdwlog "github.com/AGOODGITDUCK/PebbleCode/foundation/core/log"
	"github.com/AGOODGITDUCK/PebbleCode/foundation/pebble/value"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := Open(Config{
		Path:   filepath.Join(t.TempDir(), "nested", "history.db"),
		Logger: mdwlog.Discard(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_Sessions(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	id, err := store.StartSession(ctx)
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err, "session IDs are UUIDs")

	require.NoError(t, store.Append(ctx, &Command{SessionID: id, Line: "x = 1", OK: true}))
	require.NoError(t, store.EndSession(ctx, id))

	sessions, err := store.Sessions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, id, sessions[0].ID)
	assert.Equal(t, 1, sessions[0].Commands)
	assert.False(t, sessions[0].EndedAt.IsZero())
	assert.False(t, sessions[0].EndedAt.Before(sessions[0].StartedAt))

	err = store.EndSession(ctx, "missing")
	require.Error(t, err)
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeNotFound))
}

func TestSQLiteStore_Recent(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	id, err := store.StartSession(ctx)
	require.NoError(t, err)

	lines := []string{"cd /tmp", "print 1 + 1", "gui mode", "rect x:0 z:0 x2:1 z2:1", "leavegui"}
	for i, line := range lines {
		mode := ModeConsole
		if i == 3 {
			mode = ModeGUI
		}
		cmd := &Command{SessionID: id, Mode: mode, Line: line, OK: i != 1, Message: "m"}
		require.NoError(t, store.Append(ctx, cmd))
		assert.NotZero(t, cmd.ID)
	}

	recent, err := store.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "gui mode", recent[0].Line)
	assert.Equal(t, "rect x:0 z:0 x2:1 z2:1", recent[1].Line)
	assert.Equal(t, ModeGUI, recent[1].Mode)
	assert.Equal(t, "leavegui", recent[2].Line)
	assert.Equal(t, id, recent[2].SessionID)
	assert.True(t, recent[2].OK)

	all, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, len(lines))
	assert.Equal(t, "cd /tmp", all[0].Line)
	assert.False(t, all[1].OK)
	assert.Equal(t, ModeConsole, all[0].Mode)
}

func TestSQLiteStore_Variables(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	id, err := store.StartSession(ctx)
	require.NoError(t, err)

	env := value.NewEnv()
	env.Set("zeta", value.Int(-42))
	env.Set("name", value.Str("two words"))
	env.Set("ratio", value.Float(0.5))
	env.Set("big", value.Float(math.Inf(1)))
	env.Set("flag", value.Bool(true))
	env.Set("zeta", value.Int(7))

	require.NoError(t, store.SaveVariables(ctx, id, env))

	loaded, err := store.LoadVariables(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "name", "ratio", "big", "flag"}, loaded.Names())
	for _, name := range env.Names() {
		want, _ := env.Get(name)
		got, ok := loaded.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	// saving again replaces the previous set
	smaller := value.NewEnv()
	smaller.Set("only", value.Bool(false))
	require.NoError(t, store.SaveVariables(ctx, id, smaller))
	loaded, err = store.LoadVariables(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, loaded.Names())

	empty, err := store.LoadVariables(ctx, "unknown")
	require.NoError(t, err)
	assert.Zero(t, empty.Len())
}

func TestSQLiteStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(Config{Path: path, Logger: mdwlog.Discard()})
	require.NoError(t, err)
	assert.Equal(t, path, store.Path())
	id, err := store.StartSession(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, &Command{SessionID: id, Line: "credits", OK: true}))
	require.NoError(t, store.Close())

	store, err = Open(Config{Path: path, Logger: mdwlog.Discard()})
	require.NoError(t, err)
	defer store.Close()

	recent, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "credits", recent[0].Line)
}

func TestDecodeValue(t *testing.T) {
	tests := []struct {
		kind, text string
		want       value.Value
		wantErr    bool
	}{
		{"int", "12", value.Int(12), false},
		{"int", "x", nil, true},
		{"str", "", value.Str(""), false},
		{"float", "1e+16", value.Float(1e16), false},
		{"float", "nan?", nil, true},
		{"bool", "False", value.Bool(false), false},
		{"bool", "yes", nil, true},
		{"list", "[]", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.kind+"/"+tt.text, func(t *testing.T) {
			got, err := decodeValue(tt.kind, tt.text)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, mdwerror.CodeDatabaseError, mdwerror.GetCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNopStore(t *testing.T) {
	ctx := context.Background()
	var store Store = NopStore{}

	id, err := store.StartSession(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	require.NoError(t, store.Append(ctx, &Command{SessionID: id, Line: "x"}))

	recent, err := store.Recent(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, recent)

	env := value.NewEnv()
	env.Set("x", value.Int(1))
	require.NoError(t, store.SaveVariables(ctx, id, env))
	loaded, err := store.LoadVariables(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, loaded.Len())
	assert.NoError(t, store.Close())
}
