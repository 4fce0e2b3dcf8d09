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

// EnforceOptions carries the capacity-enforcement inputs for a single
// mutating command (spec §4.2).
type EnforceOptions struct {
	// ModifyFinity/ModifyPruning request updating the stored attributes
	// before enforcement runs.
	ModifyFinity  bool
	Finity        int64
	ModifyPruning bool
	Pruning       string
	// ReportElements requests the evicted entries be returned instead of
	// discarded silently.
	ReportElements bool
}

// Enforce is the single capacity-enforcement routine that every command
// handler which can grow a set or change its bounds (XADD, XINCRBY,
// XSETOPTIONS) calls exactly once (spec §9 "Enforcement coupling"). The
// removal commands (XREM, XREMRANGEBY*) do not call it, since they only
// shrink the set. It never deletes the key itself, even when enforcement
// empties the set entirely (spec §4.2) — unlike the command-level removal
// paths.
//
// Returns the evicted entries, most extreme first (ascending for minscore,
// descending for maxscore), when opts.ReportElements is set (possibly
// empty); nil otherwise.
func Enforce(xs *XSet, opts EnforceOptions) []Entry {
	if opts.ModifyFinity {
		xs.SetFinity(opts.Finity)
	}
	if opts.ModifyPruning {
		xs.SetPruning(opts.Pruning)
	}

	length := int64(xs.Len())
	finity := xs.Finity()

	if length <= finity {
		if opts.ReportElements {
			return []Entry{}
		}
		return nil
	}

	var lo, hi int
	if xs.Pruning() == PruningMaxScore {
		lo, hi = int(finity), int(length)-1
	} else {
		lo, hi = 0, int(length-finity)-1
	}

	if opts.ReportElements {
		// minscore discards the low end and reports it ascending (the most
		// extreme — lowest score — entry first); maxscore discards the high
		// end and reports it descending (the most extreme — highest score —
		// entry first). Both read as "most extreme evictee first".
		evicted := xs.RangeByRank(lo, hi, false)
		if xs.Pruning() == PruningMaxScore {
			for i, j := 0, len(evicted)-1; i < j; i, j = i+1, j-1 {
				evicted[i], evicted[j] = evicted[j], evicted[i]
			}
		}
		xs.DeleteByRank(lo, hi)
		return evicted
	}

	xs.DeleteByRank(lo, hi)
	return nil
}
