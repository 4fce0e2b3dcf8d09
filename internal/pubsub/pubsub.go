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

package pubsub

import (
	"context"
	"net"
	"slices"
	"sync"
)

// PubSub is the broadcast manager backing the server's keyspace
// notifications (spec "Keyspace integration" -> notify(event_class,
// event_name, key)). Channels are created lazily, on the first publish or
// subscribe that names them.
type PubSub struct {
	channels      []*Channel
	channelsRWMut sync.RWMutex
}

func NewPubSub() *PubSub {
	return &PubSub{
		channels:      []*Channel{},
		channelsRWMut: sync.RWMutex{},
	}
}

// Publish delivers message to every channel whose name equals channelName,
// or whose glob pattern matches it, creating the channel on demand so
// connections that subscribe afterwards still observe the broadcast
// mechanism being live.
func (ps *PubSub) Publish(_ context.Context, message string, channelName string) {
	ps.channelsRWMut.Lock()
	defer ps.channelsRWMut.Unlock()

	exists := slices.ContainsFunc(ps.channels, func(channel *Channel) bool {
		return channel.name == channelName
	})
	if !exists {
		ch := NewChannel(WithName(channelName))
		ch.Start()
		ps.channels = append(ps.channels, ch)
	}

	for _, channel := range ps.channels {
		if channel.pattern == nil {
			if channel.name == channelName {
				channel.Publish(message)
			}
			continue
		}
		if channel.pattern.Match(channelName) {
			channel.Publish(message)
		}
	}
}

// Subscribe registers conn against the named channels, creating each one
// lazily. Kept for parity with the reference broadcast mechanism even
// though spec.md does not expose a client-facing SUBSCRIBE command.
func (ps *PubSub) Subscribe(conn *net.Conn, channels []string, withPattern bool) {
	ps.channelsRWMut.Lock()
	defer ps.channelsRWMut.Unlock()

	for _, name := range channels {
		idx := slices.IndexFunc(ps.channels, func(channel *Channel) bool {
			return channel.name == name
		})
		if idx == -1 {
			var ch *Channel
			if withPattern {
				ch = NewChannel(WithPattern(name))
			} else {
				ch = NewChannel(WithName(name))
			}
			ch.Start()
			ch.Subscribe(conn)
			ps.channels = append(ps.channels, ch)
			continue
		}
		ps.channels[idx].Subscribe(conn)
	}
}

func (ps *PubSub) GetAllChannels() []*Channel {
	ps.channelsRWMut.RLock()
	defer ps.channelsRWMut.RUnlock()

	channels := make([]*Channel, len(ps.channels))
	copy(channels, ps.channels)
	return channels
}
