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

// Package xset implements the finite sorted set: a dual-encoding ordered
// associative container mapping members to float64 scores in
// (score, member) order, bounded by a configurable capacity and pruning
// direction enforced after every mutation.
package xset

import (
	"errors"
	"math"
)

const (
	PruningMinScore = "minscore"
	PruningMaxScore = "maxscore"
)

// Encoding is the current backing representation of an XSet.
type Encoding int

const (
	EncodingPacked Encoding = iota
	EncodingIndexed
)

func (e Encoding) String() string {
	if e == EncodingIndexed {
		return "indexed"
	}
	return "packed"
}

// Outcome describes what InsertOrUpdate did to the set.
type Outcome int

const (
	Added Outcome = iota
	Updated
	Unchanged
	Skipped
)

// Entry is a single (member, score) pair.
type Entry struct {
	Member string
	Score  float64
}

var (
	ErrScoreNaN = errors.New("resulting score is not a number (NaN)")
)

// backing is the contract both the Packed and Indexed representations
// satisfy. The container dispatches every operation to whichever backing is
// currently active; the externally observable answer is identical either
// way (spec invariant: backing dispatch).
type backing interface {
	Len() int
	Get(member string) (float64, bool)
	Put(member string, score float64)
	Delete(member string) bool
	RankOf(member string, reverse bool) (int, bool)
	ByRank(rank int, reverse bool) (Entry, bool)
	RangeByRank(lo, hi int, reverse bool) []Entry
	RangeByScore(r ScoreRange, reverse bool, offset, limit int) []Entry
	RangeByLex(r LexRange, reverse bool, offset, limit int) []Entry
	CountByScore(r ScoreRange) int
	CountByLex(r LexRange) int
	DeleteByRank(lo, hi int) []Entry
	DeleteByScore(r ScoreRange) []Entry
	DeleteByLex(r LexRange) []Entry
	All() []Entry
	MaxMemberLen() int
}

// XSet is a finite sorted set bound to a single keyspace key.
type XSet struct {
	finity  int64
	pruning string

	encoding Encoding
	backing  backing

	maxPackedEntries int
	maxPackedValue   int
}

// New creates an empty XSet. firstMemberLen is the length of the member
// about to be inserted; if it already violates maxPackedValue the set is
// created directly in the Indexed encoding (spec §4.3).
func New(finity int64, pruning string, maxPackedEntries, maxPackedValue, firstMemberLen int) *XSet {
	xs := &XSet{
		finity:           finity,
		pruning:          pruning,
		maxPackedEntries: maxPackedEntries,
		maxPackedValue:   maxPackedValue,
	}
	if firstMemberLen > maxPackedValue {
		xs.encoding = EncodingIndexed
		xs.backing = newIndexed()
	} else {
		xs.encoding = EncodingPacked
		xs.backing = newPacked()
	}
	return xs
}

func (xs *XSet) Len() int { return xs.backing.Len() }

func (xs *XSet) Encoding() Encoding { return xs.encoding }

func (xs *XSet) Finity() int64 { return xs.finity }

func (xs *XSet) Pruning() string { return xs.pruning }

func (xs *XSet) SetFinity(finity int64) { xs.finity = finity }

func (xs *XSet) SetPruning(pruning string) { xs.pruning = pruning }

func (xs *XSet) ScoreOf(member string) (float64, bool) {
	return xs.backing.Get(member)
}

// RankOf returns the 0-based rank of member, or false if absent.
func (xs *XSet) RankOf(member string, reverse bool) (int, bool) {
	return xs.backing.RankOf(member, reverse)
}

// InsertOrUpdate applies the insertion/update rules from spec §4.1/§4.4.
// When incr is true, score is treated as a delta added to the member's
// current score (0 if absent). Returns the outcome and the member's score
// after the operation (meaningless when Skipped).
func (xs *XSet) InsertOrUpdate(member string, score float64, nx, xx, incr bool) (Outcome, float64, error) {
	existing, exists := xs.backing.Get(member)

	if exists && nx {
		return Skipped, existing, nil
	}
	if !exists && xx {
		return Skipped, 0, nil
	}

	newScore := score
	if incr {
		base := 0.0
		if exists {
			base = existing
		}
		newScore = base + score
	}
	if math.IsNaN(newScore) {
		return Skipped, 0, ErrScoreNaN
	}

	if exists {
		if newScore == existing {
			return Unchanged, existing, nil
		}
		// Remove and reinsert to preserve ordering invariant (2); this keeps
		// the entry externally present throughout (atomic from an observer's
		// point of view under the single-threaded execution model).
		xs.backing.Delete(member)
		xs.backing.Put(member, newScore)
		return Updated, newScore, nil
	}

	xs.backing.Put(member, newScore)
	xs.maybeConvert(len(member))
	return Added, newScore, nil
}

func (xs *XSet) Remove(member string) bool {
	return xs.backing.Delete(member)
}

func normalizeRank(lo, hi, length int) (int, int, bool) {
	if lo < 0 {
		lo += length
	}
	if hi < 0 {
		hi += length
	}
	if lo < 0 {
		lo = 0
	}
	if lo > hi || lo >= length {
		return 0, 0, false
	}
	if hi >= length {
		hi = length - 1
	}
	return lo, hi, true
}

func (xs *XSet) RangeByRank(lo, hi int, reverse bool) []Entry {
	lo, hi, ok := normalizeRank(lo, hi, xs.Len())
	if !ok {
		return nil
	}
	return xs.backing.RangeByRank(lo, hi, reverse)
}

func (xs *XSet) RangeByScore(r ScoreRange, reverse bool, offset, limit int) []Entry {
	return xs.backing.RangeByScore(r, reverse, offset, limit)
}

func (xs *XSet) RangeByLex(r LexRange, reverse bool, offset, limit int) []Entry {
	return xs.backing.RangeByLex(r, reverse, offset, limit)
}

func (xs *XSet) CountByScore(r ScoreRange) int {
	return xs.backing.CountByScore(r)
}

func (xs *XSet) CountByLex(r LexRange) int {
	return xs.backing.CountByLex(r)
}

func (xs *XSet) DeleteByRank(lo, hi int) []Entry {
	lo, hi, ok := normalizeRank(lo, hi, xs.Len())
	if !ok {
		return nil
	}
	return xs.backing.DeleteByRank(lo, hi)
}

func (xs *XSet) DeleteByScore(r ScoreRange) []Entry {
	return xs.backing.DeleteByScore(r)
}

func (xs *XSet) DeleteByLex(r LexRange) []Entry {
	return xs.backing.DeleteByLex(r)
}

func (xs *XSet) All() []Entry { return xs.backing.All() }

// maybeConvert performs the one-shot, irreversible Packed->Indexed
// conversion once either encoding bound is crossed (spec invariant 6, §4.3).
func (xs *XSet) maybeConvert(lastInsertedMemberLen int) {
	if xs.encoding != EncodingPacked {
		return
	}
	if xs.backing.Len() <= xs.maxPackedEntries && lastInsertedMemberLen <= xs.maxPackedValue && xs.backing.MaxMemberLen() <= xs.maxPackedValue {
		return
	}
	newBacking := newIndexed()
	for _, e := range xs.backing.All() {
		newBacking.Put(e.Member, e.Score)
	}
	xs.backing = newBacking
	xs.encoding = EncodingIndexed
}
