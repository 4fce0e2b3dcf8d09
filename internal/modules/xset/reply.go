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

package xset

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/kelvinmwinuka/xsetdb/internal/xset"
)

// formatScore serializes a score as the shortest decimal that round-trips
// the IEEE-754 value, with inf/-inf special-cased to the textual forms the
// wire protocol uses (spec §6).
func formatScore(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

func bulkString(s string) []byte {
	return []byte(fmt.Sprintf("$%d\r\n%s\r\n", len(s), s))
}

func nullBulk() []byte {
	return []byte("$-1\r\n")
}

func integerReply(n int) []byte {
	return []byte(fmt.Sprintf(":%d\r\n", n))
}

func flatArray(items []string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "*%d\r\n", len(items))
	for _, it := range items {
		buf.Write(bulkString(it))
	}
	return buf.Bytes()
}

// entriesReply flattens k entries into a flat array: k members, or 2*k
// alternating member/score items when withScores is set.
func entriesReply(entries []xset.Entry, withScores bool) []byte {
	items := make([]string, 0, len(entries)*2)
	for _, e := range entries {
		items = append(items, e.Member)
		if withScores {
			items = append(items, formatScore(e.Score))
		}
	}
	return flatArray(items)
}
