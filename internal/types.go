// Copyright 2024 Kelvin Clement Mwinuka
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package internal

import (
	"context"
	"net"
	"time"

	"github.com/kelvinmwinuka/xsetdb/internal/clock"
	"github.com/kelvinmwinuka/xsetdb/internal/config"
)

// KeyData is the value stored against a key in the keyspace store, alongside
// its optional expiry.
type KeyData struct {
	Value    interface{}
	ExpireAt time.Time
}

type ContextServerID string
type ContextConnID string

// ConnectionInfo tracks the per-connection bookkeeping the dispatcher needs
// (protocol is kept for wire-compatibility with tidwall/resp clients; there
// is only one database).
type ConnectionInfo struct {
	Id       uint64
	Name     string
	Protocol int
}

type KeyExtractionFuncResult struct {
	Channels  []string
	ReadKeys  []string
	WriteKeys []string
}

type KeyExtractionFunc func(cmd []string) (KeyExtractionFuncResult, error)

// HandlerFuncParams is the set of server collaborators a command handler is
// given access to. Field names mirror the accessor shape the command layer
// actually calls (plural Keys/Values, since a single command may touch more
// than one key), rather than a single-key GetValue/SetValue pair.
type HandlerFuncParams struct {
	Context    context.Context
	Command    []string
	Connection *net.Conn

	KeysExist func(ctx context.Context, keys []string) map[string]bool
	GetValues func(ctx context.Context, keys []string) map[string]interface{}
	SetValues func(ctx context.Context, entries map[string]interface{}) error
	DeleteKey func(ctx context.Context, key string) error

	GetExpiry func(ctx context.Context, key string) time.Time
	SetExpiry func(ctx context.Context, key string, expireAt time.Time)

	GetClock       func() clock.Clock
	GetAllCommands func() []Command
	// GetConfig returns the server-wide defaults (xset_finity, xset_pruning,
	// the Packed-encoding thresholds, ...) a command needs when creating an
	// XSet from scratch.
	GetConfig func() config.Config

	// Notify publishes a keyspace-event notification. eventClass is the
	// notification category (e.g. "xset", "generic"); eventName is the
	// specific event (e.g. "xadd", "del").
	Notify func(ctx context.Context, eventClass string, eventName string, key string)
}

type HandlerFunc func(params HandlerFuncParams) ([]byte, error)

type Command struct {
	Command     string
	Module      string
	Categories  []string
	Description string
	SubCommands []SubCommand
	Sync        bool
	KeyExtractionFunc
	HandlerFunc
}

type SubCommand struct {
	Command     string
	Module      string
	Categories  []string
	Description string
	Sync        bool
	KeyExtractionFunc
	HandlerFunc
}
