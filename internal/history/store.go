// ============================================================================
// PebbleCode - Pebble scripting language
// ============================================================================
//
// Package:     history
// Description: Persistent console history and saved session variables
// Author:      Adam Nassar
// Created:     2025-09-14
// License:     MIT
// ============================================================================

// Package history records console commands and session variables.
package history

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	mdwerror "github.com/AGOODGITDUCK/PebbleCode/foundation/core/error"
	"github.com/AGOODGITDUCK/PebbleCode/foundation/pebble/value"
)

// Mode is the console mode a command ran in
type Mode string

const (
	ModeConsole Mode = "console"
	ModeGUI     Mode = "gui"
	ModeScript  Mode = "script"
)

// Command is one handled console line
type Command struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	Mode      Mode      `json:"mode"`
	Line      string    `json:"line"`
	OK        bool      `json:"ok"`
	Message   string    `json:"message,omitempty"`
}

// Session is one console run
type Session struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at,omitempty"`
	Commands  int       `json:"commands"`
}

// Store defines the interface for history persistence
type Store interface {
	// Sessions
	StartSession(ctx context.Context) (string, error)
	EndSession(ctx context.Context, sessionID string) error
	Sessions(ctx context.Context, limit int) ([]*Session, error)

	// Commands
	Append(ctx context.Context, cmd *Command) error
	Recent(ctx context.Context, limit int) ([]*Command, error)

	// Variables
	SaveVariables(ctx context.Context, sessionID string, env *value.Env) error
	LoadVariables(ctx context.Context, sessionID string) (*value.Env, error)

	Close() error
}

// NopStore keeps nothing. It is used when history is disabled.
type NopStore struct{}

// StartSession returns a fresh session ID without storing it
func (NopStore) StartSession(context.Context) (string, error) { return uuid.NewString(), nil }

func (NopStore) EndSession(context.Context, string) error { return nil }

func (NopStore) Sessions(context.Context, int) ([]*Session, error) { return nil, nil }

func (NopStore) Append(context.Context, *Command) error { return nil }

func (NopStore) Recent(context.Context, int) ([]*Command, error) { return nil, nil }

func (NopStore) SaveVariables(context.Context, string, *value.Env) error { return nil }

// LoadVariables returns an empty environment
func (NopStore) LoadVariables(context.Context, string) (*value.Env, error) {
	return value.NewEnv(), nil
}

func (NopStore) Close() error { return nil }

// encodeValue splits a value into its stored kind and text
func encodeValue(v value.Value) (string, string) {
	return v.Kind().String(), v.String()
}

// decodeValue rebuilds a stored value
func decodeValue(kind, text string) (value.Value, error) {
	switch kind {
	case value.KindInt.String():
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, badValue(kind, text)
		}
		return value.Int(n), nil
	case value.KindStr.String():
		return value.Str(text), nil
	case value.KindFloat.String():
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, badValue(kind, text)
		}
		return value.Float(f), nil
	case value.KindBool.String():
		switch text {
		case "True":
			return value.Bool(true), nil
		case "False":
			return value.Bool(false), nil
		}
		return nil, badValue(kind, text)
	}
	return nil, badValue(kind, text)
}

func badValue(kind, text string) error {
	return mdwerror.Newf("cannot decode stored %s value %q", kind, text).
		WithCode(mdwerror.CodeDatabaseError).
		WithOperation("history.LoadVariables")
}
