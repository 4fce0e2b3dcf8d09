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
	"math"
	"testing"

	"github.com/go-test/deep"

	"github.com/kelvinmwinuka/xsetdb/internal/xset"
)

func Test_InsertOrUpdate(t *testing.T) {
	xs := xset.New(1<<32, xset.PruningMaxScore, 128, 64, len("member1"))

	outcome, score, err := xs.InsertOrUpdate("member1", 5, false, false, false)
	if err != nil {
		t.Error(err)
	}
	if outcome != xset.Added || score != 5 {
		t.Errorf("expected Added/5, got %v/%v", outcome, score)
	}

	outcome, _, err = xs.InsertOrUpdate("member1", 10, true, false, false)
	if err != nil {
		t.Error(err)
	}
	if outcome != xset.Skipped {
		t.Errorf("expected Skipped when NX against existing member, got %v", outcome)
	}
	if got, _ := xs.ScoreOf("member1"); got != 5 {
		t.Errorf("expected score to remain 5 after skipped NX, got %v", got)
	}

	outcome, _, err = xs.InsertOrUpdate("member2", 1, false, true, false)
	if err != nil {
		t.Error(err)
	}
	if outcome != xset.Skipped {
		t.Errorf("expected Skipped when XX against absent member, got %v", outcome)
	}
	if _, ok := xs.ScoreOf("member2"); ok {
		t.Error("expected member2 to not have been created by XX")
	}

	outcome, score, err = xs.InsertOrUpdate("member1", 5, false, true, false)
	if err != nil {
		t.Error(err)
	}
	if outcome != xset.Unchanged || score != 5 {
		t.Errorf("expected Unchanged/5 when re-writing the same score, got %v/%v", outcome, score)
	}

	outcome, score, err = xs.InsertOrUpdate("member1", 3, false, false, true)
	if err != nil {
		t.Error(err)
	}
	if outcome != xset.Updated || score != 8 {
		t.Errorf("expected Updated/8 after INCR, got %v/%v", outcome, score)
	}

	if _, _, err = xs.InsertOrUpdate("member1", math.NaN(), false, false, false); err != xset.ErrScoreNaN {
		t.Errorf("expected ErrScoreNaN, got %v", err)
	}
}

func Test_PackedIndexedParity(t *testing.T) {
	entries := []struct {
		member string
		score  float64
	}{
		{"alpha", 3},
		{"bravo", 1},
		{"charlie", 2},
		{"delta", 1},
		{"echo", -5},
	}

	packed := xset.New(1<<32, xset.PruningMaxScore, 128, 64, len("alpha"))
	// maxPackedEntries of 1 forces the very first insertion past it to convert.
	indexed := xset.New(1<<32, xset.PruningMaxScore, 1, 64, len("alpha"))

	for _, e := range entries {
		if _, _, err := packed.InsertOrUpdate(e.member, e.score, false, false, false); err != nil {
			t.Error(err)
		}
		if _, _, err := indexed.InsertOrUpdate(e.member, e.score, false, false, false); err != nil {
			t.Error(err)
		}
	}

	if packed.Encoding() != xset.EncodingPacked {
		t.Errorf("expected packed set to remain packed, got %s", packed.Encoding())
	}
	if indexed.Encoding() != xset.EncodingIndexed {
		t.Errorf("expected indexed set to have converted, got %s", indexed.Encoding())
	}

	if diff := deep.Equal(packed.All(), indexed.All()); diff != nil {
		t.Error(diff)
	}

	for _, e := range entries {
		pr, pok := packed.RankOf(e.member, false)
		ir, iok := indexed.RankOf(e.member, false)
		if pok != iok || pr != ir {
			t.Errorf("rank mismatch for %s: packed=%v/%v indexed=%v/%v", e.member, pr, pok, ir, iok)
		}
	}
}

func Test_RangeByRankNegativeIndices(t *testing.T) {
	xs := xset.New(1<<32, xset.PruningMaxScore, 128, 64, len("m0"))
	for i := 0; i < 5; i++ {
		if _, _, err := xs.InsertOrUpdate(string(rune('a'+i)), float64(i), false, false, false); err != nil {
			t.Error(err)
		}
	}

	got := xs.RangeByRank(-2, -1, false)
	if len(got) != 2 || got[0].Member != "d" || got[1].Member != "e" {
		t.Errorf("unexpected negative-index range result: %+v", got)
	}

	if got := xs.RangeByRank(10, 20, false); got != nil {
		t.Errorf("expected nil for out-of-bounds range, got %+v", got)
	}
}

func Test_EnforceMaxScorePruning(t *testing.T) {
	xs := xset.New(3, xset.PruningMaxScore, 128, 64, len("m0"))
	for i := 0; i < 5; i++ {
		if _, _, err := xs.InsertOrUpdate(string(rune('a'+i)), float64(i), false, false, false); err != nil {
			t.Error(err)
		}
	}

	evicted := xset.Enforce(xs, xset.EnforceOptions{ReportElements: true})
	if xs.Len() != 3 {
		t.Errorf("expected 3 members to survive maxscore pruning, got %d", xs.Len())
	}
	if len(evicted) != 2 || evicted[0].Member != "e" || evicted[1].Member != "d" {
		t.Errorf("expected highest scores evicted first (e, d), got %+v", evicted)
	}
}

func Test_EnforceMinScorePruning(t *testing.T) {
	xs := xset.New(3, xset.PruningMinScore, 128, 64, len("m0"))
	for i := 0; i < 5; i++ {
		if _, _, err := xs.InsertOrUpdate(string(rune('a'+i)), float64(i), false, false, false); err != nil {
			t.Error(err)
		}
	}

	evicted := xset.Enforce(xs, xset.EnforceOptions{ReportElements: true})
	if xs.Len() != 3 {
		t.Errorf("expected 3 members to survive minscore pruning, got %d", xs.Len())
	}
	if len(evicted) != 2 || evicted[0].Member != "a" || evicted[1].Member != "b" {
		t.Errorf("expected lowest scores evicted first (a, b), got %+v", evicted)
	}
}

func Test_ScoreRangeParsing(t *testing.T) {
	r, err := xset.ParseScoreRange("(5", "10")
	if err != nil {
		t.Fatal(err)
	}
	if !r.MinEx || r.MaxEx {
		t.Errorf("expected open-min/closed-max, got %+v", r)
	}

	r, err = xset.ParseScoreRange("-inf", "+inf")
	if err != nil {
		t.Fatal(err)
	}
	if r.Min != math.Inf(-1) || r.Max != math.Inf(1) {
		t.Errorf("expected infinite bounds, got %+v", r)
	}
}

func Test_LexRangeParsing(t *testing.T) {
	r, err := xset.ParseLexRange("-", "+")
	if err != nil {
		t.Fatal(err)
	}
	if !r.MinusInf || !r.PlusInf {
		t.Errorf("expected both infinities set, got %+v", r)
	}

	r, err = xset.ParseLexRange("[b", "(d")
	if err != nil {
		t.Fatal(err)
	}
	if r.Min != "b" || r.Max != "d" || r.MinEx || !r.MaxEx {
		t.Errorf("unexpected lex range bounds: %+v", r)
	}
}
