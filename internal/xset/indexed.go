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

// indexed is the skip-list + hash-map backing used once an XSet crosses the
// Packed thresholds. The skip list and the member->score map are kept in
// lockstep (spec invariant 5); every mutation touches both.
type indexed struct {
	sl      *skiplist
	members map[string]float64
}

func newIndexed() *indexed {
	return &indexed{sl: newSkiplist(), members: make(map[string]float64)}
}

func (ix *indexed) Len() int { return len(ix.members) }

func (ix *indexed) Get(member string) (float64, bool) {
	score, ok := ix.members[member]
	return score, ok
}

func (ix *indexed) Put(member string, score float64) {
	if old, ok := ix.members[member]; ok {
		ix.sl.Delete(old, member)
	}
	ix.sl.Insert(score, member)
	ix.members[member] = score
}

func (ix *indexed) Delete(member string) bool {
	score, ok := ix.members[member]
	if !ok {
		return false
	}
	if !ix.sl.Delete(score, member) {
		panic("xset: indexed backing member->score map and skip list diverged")
	}
	delete(ix.members, member)
	return true
}

func (ix *indexed) RankOf(member string, reverse bool) (int, bool) {
	score, ok := ix.members[member]
	if !ok {
		return 0, false
	}
	rank, ok := ix.sl.RankOf(score, member)
	if !ok {
		return 0, false
	}
	if reverse {
		return ix.sl.Len() - 1 - rank, true
	}
	return rank, true
}

func (ix *indexed) ByRank(rank int, reverse bool) (Entry, bool) {
	if reverse {
		rank = ix.sl.Len() - 1 - rank
	}
	node := ix.sl.ByRank(rank)
	if node == nil {
		return Entry{}, false
	}
	return Entry{Member: node.member, Score: node.score}, true
}

func (ix *indexed) RangeByRank(lo, hi int, reverse bool) []Entry {
	n := ix.sl.Len()
	res := make([]Entry, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		idx := r
		if reverse {
			idx = n - 1 - r
		}
		node := ix.sl.ByRank(idx)
		res = append(res, Entry{Member: node.member, Score: node.score})
	}
	return res
}

// rangeByScoreNodes walks forward from the first in-range node to the last,
// inclusive.
func (ix *indexed) rangeByScoreNodes(r ScoreRange) []*slNode {
	first := ix.sl.FirstInScoreRange(r)
	if first == nil {
		return nil
	}
	last := ix.sl.LastInScoreRange(r)
	var nodes []*slNode
	for x := first; x != nil; x = x.levels[0].forward {
		nodes = append(nodes, x)
		if x == last {
			break
		}
	}
	return nodes
}

func (ix *indexed) RangeByScore(r ScoreRange, reverse bool, offset, limit int) []Entry {
	nodes := ix.rangeByScoreNodes(r)
	entries := nodesToEntries(nodes)
	return sliceWindow(entries, reverse, offset, limit)
}

// rangeByLexNodes filters the full set by lex membership, preserving
// (score, member) order (see packed.lexMatches for why this isn't assumed
// contiguous).
func (ix *indexed) rangeByLexNodes(r LexRange) []*slNode {
	var nodes []*slNode
	for x := ix.sl.header.levels[0].forward; x != nil; x = x.levels[0].forward {
		if r.Contains(x.member) {
			nodes = append(nodes, x)
		}
	}
	return nodes
}

func (ix *indexed) RangeByLex(r LexRange, reverse bool, offset, limit int) []Entry {
	nodes := ix.rangeByLexNodes(r)
	entries := nodesToEntries(nodes)
	return sliceWindow(entries, reverse, offset, limit)
}

// CountByScore derives the count from the rank delta between the first and
// last in-range nodes instead of walking the range (spec §4.4's
// optimization, supplemented from the rank-aware skip list).
func (ix *indexed) CountByScore(r ScoreRange) int {
	first := ix.sl.FirstInScoreRange(r)
	if first == nil {
		return 0
	}
	last := ix.sl.LastInScoreRange(r)
	firstRank, _ := ix.sl.RankOf(first.score, first.member)
	lastRank, _ := ix.sl.RankOf(last.score, last.member)
	return lastRank - firstRank + 1
}

func (ix *indexed) CountByLex(r LexRange) int {
	return len(ix.rangeByLexNodes(r))
}

func (ix *indexed) DeleteByRank(lo, hi int) []Entry {
	// Collect members first since deleting mutates rank positions.
	members := make([]string, 0, hi-lo+1)
	scores := make([]float64, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		node := ix.sl.ByRank(r)
		members = append(members, node.member)
		scores = append(scores, node.score)
	}
	deleted := make([]Entry, len(members))
	for i := range members {
		ix.sl.Delete(scores[i], members[i])
		delete(ix.members, members[i])
		deleted[i] = Entry{Member: members[i], Score: scores[i]}
	}
	return deleted
}

func (ix *indexed) DeleteByScore(r ScoreRange) []Entry {
	nodes := ix.rangeByScoreNodes(r)
	return ix.deleteNodes(nodes)
}

func (ix *indexed) DeleteByLex(r LexRange) []Entry {
	nodes := ix.rangeByLexNodes(r)
	return ix.deleteNodes(nodes)
}

func (ix *indexed) deleteNodes(nodes []*slNode) []Entry {
	deleted := make([]Entry, len(nodes))
	for i, n := range nodes {
		deleted[i] = Entry{Member: n.member, Score: n.score}
	}
	for _, e := range deleted {
		ix.sl.Delete(e.Score, e.Member)
		delete(ix.members, e.Member)
	}
	return deleted
}

func (ix *indexed) All() []Entry {
	return nodesToEntries(ix.sl.All())
}

func (ix *indexed) MaxMemberLen() int {
	// Once Indexed, the Packed bounds no longer apply (no downgrade, spec
	// §9), so this is only consulted while still Packed.
	return 0
}

func nodesToEntries(nodes []*slNode) []Entry {
	entries := make([]Entry, len(nodes))
	for i, n := range nodes {
		entries[i] = Entry{Member: n.member, Score: n.score}
	}
	return entries
}
