// Copyright 2024 Kelvin Clement Mwinuka
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package xsetdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/kelvinmwinuka/xsetdb/internal"
	"github.com/kelvinmwinuka/xsetdb/internal/clock"
	"github.com/kelvinmwinuka/xsetdb/internal/config"
)

func (server *XSetDB) getCommand(cmd string) (internal.Command, error) {
	server.commandsRWMut.RLock()
	defer server.commandsRWMut.RUnlock()
	for _, command := range server.commands {
		if strings.EqualFold(command.Command, cmd) {
			return command, nil
		}
	}
	return internal.Command{}, fmt.Errorf("command %s not supported", cmd)
}

func (server *XSetDB) getCommands() []internal.Command {
	return server.commands
}

func (server *XSetDB) getClock() clock.Clock {
	return server.clock
}

func (server *XSetDB) getConfig() config.Config {
	return server.config
}

// notify publishes a keyspace-event notification to the
// __keyevent@<eventClass>__:<eventName> channel, payload being the key
// (spec.md "Keyspace integration" -> notify(event_class, event_name, key),
// SPEC_FULL.md's supplemented keyspace-notification feature).
func (server *XSetDB) notify(ctx context.Context, eventClass string, eventName string, key string) {
	channel := fmt.Sprintf("__keyevent@%s__:%s", eventClass, eventName)
	server.pubSub.Publish(ctx, key, channel)
}

func (server *XSetDB) getHandlerFuncParams(ctx context.Context, cmd []string, conn *net.Conn) internal.HandlerFuncParams {
	return internal.HandlerFuncParams{
		Context:        ctx,
		Command:        cmd,
		Connection:     conn,
		KeysExist:      server.keysExist,
		GetValues:      server.getValues,
		SetValues:      server.setValues,
		DeleteKey:      server.deleteKey,
		GetExpiry:      server.getExpiry,
		SetExpiry:      server.setExpiry,
		GetClock:       server.getClock,
		GetAllCommands: server.getCommands,
		GetConfig:      server.getConfig,
		Notify:         server.notify,
	}
}

func (server *XSetDB) handleCommand(ctx context.Context, message []byte, conn *net.Conn) ([]byte, error) {
	cmd, err := internal.Decode(message)
	if err != nil {
		return nil, err
	}

	if len(cmd) == 0 {
		return nil, errors.New("empty command")
	}

	if strings.EqualFold(cmd[0], "quit") {
		return nil, io.EOF
	}

	command, err := server.getCommand(cmd[0])
	if err != nil {
		return nil, err
	}

	handler := command.HandlerFunc

	sc, err := internal.GetSubCommand(command, cmd)
	if err != nil {
		return nil, err
	}
	if subCommand, ok := sc.(internal.SubCommand); ok {
		handler = subCommand.HandlerFunc
	}

	return handler(server.getHandlerFuncParams(ctx, cmd, conn))
}
