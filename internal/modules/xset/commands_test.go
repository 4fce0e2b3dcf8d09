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

package xset_test

import (
	"strings"
	"testing"

	"github.com/tidwall/resp"

	"github.com/kelvinmwinuka/xsetdb/internal"
	"github.com/kelvinmwinuka/xsetdb/internal/config"
	"github.com/kelvinmwinuka/xsetdb/xsetdb"
)

func runCommand(t *testing.T, client *resp.Conn, cmd ...string) resp.Value {
	t.Helper()
	values := make([]resp.Value, len(cmd))
	for i, c := range cmd {
		values[i] = resp.StringValue(c)
	}
	if err := client.WriteArray(values); err != nil {
		t.Fatal(err)
	}
	res, _, err := client.ReadValue()
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func newTestServer(t *testing.T) (*resp.Conn, int) {
	t.Helper()

	port, err := internal.GetFreePort()
	if err != nil {
		t.Fatal(err)
	}

	server, err := xsetdb.New(xsetdb.WithConfig(config.Config{
		BindAddr:              "localhost",
		Port:                  uint16(port),
		DataDir:               "",
		XSetFinity:            config.DefaultXSetFinity,
		XSetPruning:           "maxscore",
		XSetMaxZiplistEntries: 128,
		XSetMaxZiplistValue:   64,
	}))
	if err != nil {
		t.Fatal(err)
	}

	go server.Start()
	t.Cleanup(server.ShutDown)

	conn, err := internal.GetConnection("localhost", port)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	return resp.NewConn(conn), port
}

func Test_XADD(t *testing.T) {
	t.Parallel()
	client, _ := newTestServer(t)

	t.Run("creates a new set and reports added count", func(t *testing.T) {
		res := runCommand(t, client, "XADD", "xadd1", "5", "a", "10", "b", "1", "c")
		if res.Integer() != 3 {
			t.Errorf("expected 3 added, got %s", res.String())
		}
	})

	t.Run("NX only adds new members", func(t *testing.T) {
		runCommand(t, client, "XADD", "xadd2", "1", "a", "2", "b")
		res := runCommand(t, client, "XADD", "xadd2", "NX", "99", "a", "3", "c")
		if res.Integer() != 1 {
			t.Errorf("expected only 'c' to be added under NX, got %s", res.String())
		}
		score := runCommand(t, client, "XSCORE", "xadd2", "a")
		if score.String() != "1" {
			t.Errorf("expected NX to leave existing score untouched, got %s", score.String())
		}
	})

	t.Run("XX refuses to create a new key", func(t *testing.T) {
		res := runCommand(t, client, "XADD", "xaddMissing", "XX", "1", "a")
		if res.Integer() != 0 {
			t.Errorf("expected 0 when XX against a missing key, got %s", res.String())
		}
		exists := runCommand(t, client, "XCARD", "xaddMissing")
		if exists.Integer() != 0 {
			t.Errorf("expected XX to not have created the key, got cardinality %s", exists.String())
		}
	})

	t.Run("NX and XX together is an incompatible-options error", func(t *testing.T) {
		res := runCommand(t, client, "XADD", "xadd3", "NX", "XX", "1", "a")
		if res.Error() == nil {
			t.Error("expected an error when NX and XX are combined")
		}
	})

	t.Run("CH reports added plus changed", func(t *testing.T) {
		runCommand(t, client, "XADD", "xadd4", "1", "a", "2", "b")
		res := runCommand(t, client, "XADD", "xadd4", "CH", "5", "a", "9", "c")
		if res.Integer() != 2 {
			t.Errorf("expected CH to report 1 changed + 1 added = 2, got %s", res.String())
		}
	})
}

func Test_XINCRBY(t *testing.T) {
	t.Parallel()
	client, _ := newTestServer(t)

	runCommand(t, client, "XADD", "xincr1", "5", "a")

	res := runCommand(t, client, "XINCRBY", "xincr1", "3", "a")
	if res.String() != "8" {
		t.Errorf("expected incremented score of 8, got %s", res.String())
	}

	res = runCommand(t, client, "XINCRBY", "xincr1", "-10", "a")
	if res.String() != "-2" {
		t.Errorf("expected decremented score of -2, got %s", res.String())
	}

	res = runCommand(t, client, "XINCRBY", "xincrMissingXX", "XX", "1", "a")
	if !res.IsNull() {
		t.Errorf("expected nil reply when XX against a missing key, got %s", res.String())
	}
}

func Test_XREM_XCARD(t *testing.T) {
	t.Parallel()
	client, _ := newTestServer(t)

	runCommand(t, client, "XADD", "xrem1", "1", "a", "2", "b", "3", "c")

	res := runCommand(t, client, "XCARD", "xrem1")
	if res.Integer() != 3 {
		t.Errorf("expected cardinality 3, got %s", res.String())
	}

	res = runCommand(t, client, "XREM", "xrem1", "a", "zzz")
	if res.Integer() != 1 {
		t.Errorf("expected only 1 of 2 members removed, got %s", res.String())
	}

	res = runCommand(t, client, "XREM", "xrem1", "b", "c")
	if res.Integer() != 2 {
		t.Errorf("expected remaining 2 members removed, got %s", res.String())
	}

	res = runCommand(t, client, "XCARD", "xrem1")
	if res.Integer() != 0 {
		t.Errorf("expected emptied set's key to be deleted, got cardinality %s", res.String())
	}
}

func Test_XRANK_XREVRANK(t *testing.T) {
	t.Parallel()
	client, _ := newTestServer(t)

	runCommand(t, client, "XADD", "xrank1", "1", "a", "2", "b", "3", "c")

	res := runCommand(t, client, "XRANK", "xrank1", "b")
	if res.Integer() != 1 {
		t.Errorf("expected ascending rank 1 for 'b', got %s", res.String())
	}

	res = runCommand(t, client, "XREVRANK", "xrank1", "b")
	if res.Integer() != 1 {
		t.Errorf("expected descending rank 1 for 'b' in a 3-member set, got %s", res.String())
	}

	res = runCommand(t, client, "XRANK", "xrank1", "nope")
	if !res.IsNull() {
		t.Errorf("expected nil rank for absent member, got %s", res.String())
	}
}

func Test_XRANGE_family(t *testing.T) {
	t.Parallel()
	client, _ := newTestServer(t)

	runCommand(t, client, "XADD", "xrange1", "1", "a", "2", "b", "3", "c", "4", "d")

	res := runCommand(t, client, "XRANGE", "xrange1", "0", "-1")
	members := res.Array()
	if len(members) != 4 || members[0].String() != "a" || members[3].String() != "d" {
		t.Errorf("unexpected XRANGE result: %s", res.String())
	}

	res = runCommand(t, client, "XRANGE", "xrange1", "0", "1", "WITHSCORES")
	members = res.Array()
	if len(members) != 4 || members[0].String() != "a" || members[1].String() != "1" {
		t.Errorf("unexpected XRANGE WITHSCORES result: %s", res.String())
	}

	res = runCommand(t, client, "XREVRANGE", "xrange1", "0", "-1")
	members = res.Array()
	if len(members) != 4 || members[0].String() != "d" || members[3].String() != "a" {
		t.Errorf("unexpected XREVRANGE result: %s", res.String())
	}

	res = runCommand(t, client, "XRANGEBYSCORE", "xrange1", "(1", "3")
	members = res.Array()
	if len(members) != 2 || members[0].String() != "b" || members[1].String() != "c" {
		t.Errorf("unexpected XRANGEBYSCORE result: %s", res.String())
	}

	res = runCommand(t, client, "XREVRANGEBYSCORE", "xrange1", "3", "(1")
	members = res.Array()
	if len(members) != 2 || members[0].String() != "c" || members[1].String() != "b" {
		t.Errorf("unexpected XREVRANGEBYSCORE result: %s", res.String())
	}

	res = runCommand(t, client, "XRANGEBYSCORE", "xrange1", "-inf", "+inf", "LIMIT", "1", "2")
	members = res.Array()
	if len(members) != 2 || members[0].String() != "b" || members[1].String() != "c" {
		t.Errorf("unexpected XRANGEBYSCORE LIMIT result: %s", res.String())
	}
}

func Test_XRANGEBYLEX(t *testing.T) {
	t.Parallel()
	client, _ := newTestServer(t)

	runCommand(t, client, "XADD", "xlex1", "0", "apple", "0", "banana", "0", "cherry", "0", "date")

	res := runCommand(t, client, "XRANGEBYLEX", "xlex1", "[banana", "[cherry")
	members := res.Array()
	if len(members) != 2 || members[0].String() != "banana" || members[1].String() != "cherry" {
		t.Errorf("unexpected XRANGEBYLEX result: %s", res.String())
	}

	res = runCommand(t, client, "XREVRANGEBYLEX", "xlex1", "+", "-")
	members = res.Array()
	if len(members) != 4 || members[0].String() != "date" {
		t.Errorf("unexpected XREVRANGEBYLEX result: %s", res.String())
	}

	res = runCommand(t, client, "XLEXCOUNT", "xlex1", "-", "+")
	if res.Integer() != 4 {
		t.Errorf("expected XLEXCOUNT 4, got %s", res.String())
	}
}

func Test_XCOUNT(t *testing.T) {
	t.Parallel()
	client, _ := newTestServer(t)

	runCommand(t, client, "XADD", "xcount1", "1", "a", "2", "b", "3", "c", "4", "d")

	res := runCommand(t, client, "XCOUNT", "xcount1", "2", "3")
	if res.Integer() != 2 {
		t.Errorf("expected XCOUNT of 2, got %s", res.String())
	}
}

func Test_XREMRANGEBY_family(t *testing.T) {
	t.Parallel()
	client, _ := newTestServer(t)

	runCommand(t, client, "XADD", "xremrange1", "1", "a", "2", "b", "3", "c", "4", "d", "5", "e")
	res := runCommand(t, client, "XREMRANGEBYRANK", "xremrange1", "0", "1")
	if res.Integer() != 2 {
		t.Errorf("expected 2 removed by rank, got %s", res.String())
	}
	card := runCommand(t, client, "XCARD", "xremrange1")
	if card.Integer() != 3 {
		t.Errorf("expected 3 members left, got %s", card.String())
	}

	runCommand(t, client, "XADD", "xremrange2", "1", "a", "2", "b", "3", "c")
	res = runCommand(t, client, "XREMRANGEBYSCORE", "xremrange2", "2", "3")
	if res.Integer() != 2 {
		t.Errorf("expected 2 removed by score, got %s", res.String())
	}

	runCommand(t, client, "XADD", "xremrange3", "0", "apple", "0", "banana", "0", "cherry")
	res = runCommand(t, client, "XREMRANGEBYLEX", "xremrange3", "[apple", "[banana")
	if res.Integer() != 2 {
		t.Errorf("expected 2 removed by lex, got %s", res.String())
	}
}

func Test_XSETOPTIONS_and_XGET(t *testing.T) {
	t.Parallel()
	client, _ := newTestServer(t)

	runCommand(t, client, "XADD", "xopt1", "1", "a", "2", "b", "3", "c", "4", "d", "5", "e")

	res := runCommand(t, client, "XGETFINITY", "xopt1")
	if res.Integer() != int(config.DefaultXSetFinity) {
		t.Errorf("expected default finity, got %s", res.String())
	}

	res = runCommand(t, client, "XSETOPTIONS", "xopt1", "FINITY", "3", "PRUNING", "minscore")
	if !strings.EqualFold(res.String(), "OK") {
		t.Errorf("expected OK, got %s", res.String())
	}

	res = runCommand(t, client, "XCARD", "xopt1")
	if res.Integer() != 3 {
		t.Errorf("expected pruning down to 3 members, got %s", res.String())
	}

	res = runCommand(t, client, "XGETPRUNING", "xopt1")
	if res.String() != "minscore" {
		t.Errorf("expected pruning direction minscore, got %s", res.String())
	}

	res = runCommand(t, client, "XGETFINITY", "missingKey")
	if res.Error() == nil {
		t.Error("expected an error for XGETFINITY against a missing key")
	}
}

func Test_XSCAN(t *testing.T) {
	t.Parallel()
	client, _ := newTestServer(t)

	runCommand(t, client, "XADD", "xscan1", "1", "alpha", "2", "beta", "3", "gamma", "4", "delta")

	res := runCommand(t, client, "XSCAN", "xscan1", "0", "COUNT", "2")
	page := res.Array()
	if len(page) != 2 {
		t.Fatalf("expected a 2-element scan reply, got %s", res.String())
	}
	cursor := page[0].String()
	if cursor == "0" {
		t.Error("expected a non-zero cursor since there are more entries left")
	}

	res = runCommand(t, client, "XSCAN", "xscan1", "0", "MATCH", "g*")
	page = res.Array()
	members := page[1].Array()
	if len(members) != 2 || members[0].String() != "gamma" {
		t.Errorf("expected MATCH to filter down to gamma's (member, score) pair, got %s", res.String())
	}
}

func Test_XSet_encodingConversion(t *testing.T) {
	t.Parallel()
	client, _ := newTestServer(t)

	longMember := strings.Repeat("x", 100)
	res := runCommand(t, client, "XADD", "xconv1", "1", longMember)
	if res.Integer() != 1 {
		t.Errorf("expected the oversized member to still be added, got %s", res.String())
	}

	score := runCommand(t, client, "XSCORE", "xconv1", longMember)
	if score.String() != "1" {
		t.Errorf("expected score 1 from the indexed backing, got %s", score.String())
	}
}
