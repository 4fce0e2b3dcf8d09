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

import "sort"

// packed is the compact backing: a single slice kept sorted in
// (score, member) order, grounded in the reference source's ziplist
// representation but expressed as an ordinary Go slice rather than a
// hand-packed byte buffer. O(N) insert/delete, O(log N) insertion-point
// search, O(N) lookup by member.
type packed struct {
	entries []Entry
}

func newPacked() *packed {
	return &packed{}
}

func entryLess(a, b Entry) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return compareLex(a.Member, b.Member) < 0
}

func (p *packed) Len() int { return len(p.entries) }

func (p *packed) indexOf(member string) (int, bool) {
	for i, e := range p.entries {
		if e.Member == member {
			return i, true
		}
	}
	return -1, false
}

func (p *packed) Get(member string) (float64, bool) {
	if i, ok := p.indexOf(member); ok {
		return p.entries[i].Score, true
	}
	return 0, false
}

// insertionPoint returns the index at which an entry with the given
// (score, member) belongs, preserving sort order.
func (p *packed) insertionPoint(e Entry) int {
	return sort.Search(len(p.entries), func(i int) bool {
		return !entryLess(p.entries[i], e)
	})
}

func (p *packed) Put(member string, score float64) {
	if i, ok := p.indexOf(member); ok {
		p.entries = append(p.entries[:i], p.entries[i+1:]...)
	}
	e := Entry{Member: member, Score: score}
	i := p.insertionPoint(e)
	p.entries = append(p.entries, Entry{})
	copy(p.entries[i+1:], p.entries[i:])
	p.entries[i] = e
}

func (p *packed) Delete(member string) bool {
	i, ok := p.indexOf(member)
	if !ok {
		return false
	}
	p.entries = append(p.entries[:i], p.entries[i+1:]...)
	return true
}

func (p *packed) RankOf(member string, reverse bool) (int, bool) {
	i, ok := p.indexOf(member)
	if !ok {
		return 0, false
	}
	if reverse {
		return len(p.entries) - 1 - i, true
	}
	return i, true
}

func (p *packed) ByRank(rank int, reverse bool) (Entry, bool) {
	if rank < 0 || rank >= len(p.entries) {
		return Entry{}, false
	}
	if reverse {
		rank = len(p.entries) - 1 - rank
	}
	return p.entries[rank], true
}

func (p *packed) RangeByRank(lo, hi int, reverse bool) []Entry {
	n := len(p.entries)
	res := make([]Entry, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		idx := r
		if reverse {
			idx = n - 1 - r
		}
		res = append(res, p.entries[idx])
	}
	return res
}

// scoreRangeIndices finds the contiguous [start, end) window matching r.
// Valid because entries are sorted by score first: Contains depends only on
// score, so matches form a single contiguous run.
func (p *packed) scoreRangeIndices(r ScoreRange) (int, int) {
	start := 0
	for start < len(p.entries) && !r.Contains(p.entries[start].Score) {
		start++
	}
	end := start
	for end < len(p.entries) && r.Contains(p.entries[end].Score) {
		end++
	}
	return start, end
}

func (p *packed) RangeByScore(r ScoreRange, reverse bool, offset, limit int) []Entry {
	start, end := p.scoreRangeIndices(r)
	return sliceWindow(p.entries[start:end], reverse, offset, limit)
}

// lexMatches filters in (score, member) order. Unlike scores, member order
// is only monotonic within a single score stratum, so membership isn't
// assumed to be a single contiguous run (spec §4.4: lex ranges are only
// meaningful within one stratum in general; this still behaves sensibly
// outside that case by filtering rather than windowing).
func (p *packed) lexMatches(r LexRange) []int {
	var idxs []int
	for i, e := range p.entries {
		if r.Contains(e.Member) {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

func (p *packed) RangeByLex(r LexRange, reverse bool, offset, limit int) []Entry {
	idxs := p.lexMatches(r)
	entries := make([]Entry, len(idxs))
	for i, idx := range idxs {
		entries[i] = p.entries[idx]
	}
	return sliceWindow(entries, reverse, offset, limit)
}

func (p *packed) CountByScore(r ScoreRange) int {
	start, end := p.scoreRangeIndices(r)
	return end - start
}

func (p *packed) CountByLex(r LexRange) int {
	return len(p.lexMatches(r))
}

func (p *packed) DeleteByRank(lo, hi int) []Entry {
	deleted := append([]Entry(nil), p.entries[lo:hi+1]...)
	p.entries = append(p.entries[:lo], p.entries[hi+1:]...)
	return deleted
}

func (p *packed) DeleteByScore(r ScoreRange) []Entry {
	start, end := p.scoreRangeIndices(r)
	deleted := append([]Entry(nil), p.entries[start:end]...)
	p.entries = append(p.entries[:start], p.entries[end:]...)
	return deleted
}

func (p *packed) DeleteByLex(r LexRange) []Entry {
	idxs := p.lexMatches(r)
	deleted := make([]Entry, len(idxs))
	remaining := p.entries[:0:0]
	idxSet := make(map[int]bool, len(idxs))
	for i, idx := range idxs {
		deleted[i] = p.entries[idx]
		idxSet[idx] = true
	}
	for i, e := range p.entries {
		if !idxSet[i] {
			remaining = append(remaining, e)
		}
	}
	p.entries = remaining
	return deleted
}

func (p *packed) All() []Entry {
	return append([]Entry(nil), p.entries...)
}

func (p *packed) MaxMemberLen() int {
	max := 0
	for _, e := range p.entries {
		if len(e.Member) > max {
			max = len(e.Member)
		}
	}
	return max
}

// sliceWindow applies LIMIT offset/count semantics (count < 0 means
// unlimited) over an already range-filtered, forward-ordered slice.
func sliceWindow(entries []Entry, reverse bool, offset, limit int) []Entry {
	ordered := entries
	if reverse {
		ordered = make([]Entry, len(entries))
		for i, e := range entries {
			ordered[len(entries)-1-i] = e
		}
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(ordered) {
		return nil
	}
	ordered = ordered[offset:]
	if limit < 0 || limit > len(ordered) {
		limit = len(ordered)
	}
	return append([]Entry(nil), ordered[:limit]...)
}
