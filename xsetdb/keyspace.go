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
	"log"
	"time"

	"github.com/kelvinmwinuka/xsetdb/internal"
)

func (server *XSetDB) keysExist(_ context.Context, keys []string) map[string]bool {
	server.storeLock.RLock()
	defer server.storeLock.RUnlock()

	exists := make(map[string]bool, len(keys))
	for _, key := range keys {
		_, ok := server.store[key]
		exists[key] = ok
	}
	return exists
}

func (server *XSetDB) getExpiry(_ context.Context, key string) time.Time {
	server.storeLock.RLock()
	defer server.storeLock.RUnlock()

	entry, ok := server.store[key]
	if !ok {
		return time.Time{}
	}
	return entry.ExpireAt
}

// getValues returns a snapshot of the requested keys, lazily expiring any
// whose TTL has elapsed (spec.md leaves key-level TTL as an external
// collaborator; this keeps the same reap-on-read policy the reference
// uses rather than running a background sweep).
func (server *XSetDB) getValues(ctx context.Context, keys []string) map[string]interface{} {
	server.storeLock.Lock()
	defer server.storeLock.Unlock()

	values := make(map[string]interface{}, len(keys))

	for _, key := range keys {
		entry, ok := server.store[key]
		if !ok {
			values[key] = nil
			continue
		}
		if entry.ExpireAt != (time.Time{}) && entry.ExpireAt.Before(server.clock.Now()) {
			delete(server.store, key)
			values[key] = nil
			continue
		}
		values[key] = entry.Value
	}

	return values
}

func (server *XSetDB) setValues(_ context.Context, entries map[string]interface{}) error {
	server.storeLock.Lock()
	defer server.storeLock.Unlock()

	for key, value := range entries {
		expireAt := time.Time{}
		if existing, ok := server.store[key]; ok {
			expireAt = existing.ExpireAt
		}
		server.store[key] = internal.KeyData{
			Value:    value,
			ExpireAt: expireAt,
		}
	}
	return nil
}

func (server *XSetDB) setExpiry(_ context.Context, key string, expireAt time.Time) {
	server.storeLock.Lock()
	defer server.storeLock.Unlock()

	entry := server.store[key]
	entry.ExpireAt = expireAt
	server.store[key] = entry
}

func (server *XSetDB) deleteKey(_ context.Context, key string) error {
	server.storeLock.Lock()
	defer server.storeLock.Unlock()

	delete(server.store, key)
	log.Printf("deleted key %s\n", key)
	return nil
}
