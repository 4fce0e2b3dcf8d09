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

// Package xset implements the command layer for the finite sorted set data
// type: XADD, XINCRBY, XREM, XCARD, XSCORE, XRANK/XREVRANK, the XRANGE
// family, XCOUNT/XLEXCOUNT, XREMRANGEBY*, XSETOPTIONS, XGETFINITY/
// XGETPRUNING and XSCAN (spec §3-§6).
package xset

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gobwas/glob"

	"github.com/kelvinmwinuka/xsetdb/internal"
	"github.com/kelvinmwinuka/xsetdb/internal/config"
	"github.com/kelvinmwinuka/xsetdb/internal/constants"
	"github.com/kelvinmwinuka/xsetdb/internal/xset"
)

var errNoSuchKey = errors.New("no such key")
var errNotXSet = errors.New("value at key is not an xset")

// getXSet fetches the XSet stored at key, if any. The second return value is
// false when the key is absent; a key present but holding a non-XSet value
// is reported as an error rather than silently ignored.
func getXSet(params internal.HandlerFuncParams, key string) (*xset.XSet, bool, error) {
	values := params.GetValues(params.Context, []string{key})
	v, ok := values[key]
	if !ok || v == nil {
		return nil, false, nil
	}
	xs, ok := v.(*xset.XSet)
	if !ok {
		return nil, true, errNotXSet
	}
	return xs, true, nil
}

func newXSetFromConfig(cfg config.Config, firstMemberLen int) *xset.XSet {
	return xset.New(cfg.XSetFinity, cfg.XSetPruning, cfg.XSetMaxZiplistEntries, cfg.XSetMaxZiplistValue, firstMemberLen)
}

// enforceAndPersist runs capacity enforcement exactly once (spec §9
// "Enforcement coupling") and writes the (possibly now-empty) set back to
// the keyspace. Enforce never deletes the key itself even when it empties
// the set (spec §4.2).
func enforceAndPersist(params internal.HandlerFuncParams, key string, xs *xset.XSet, opts xset.EnforceOptions) []xset.Entry {
	evicted := xset.Enforce(xs, opts)
	_ = params.SetValues(params.Context, map[string]interface{}{key: xs})
	return evicted
}

// xaddGeneric implements both XADD and XINCRBY, which share everything but
// the implicit INCR flag and the minimum pair count (spec §4.4, §4.5).
func xaddGeneric(params internal.HandlerFuncParams, forceIncr bool) ([]byte, error) {
	cmd := params.Command
	key := cmd[1]

	opts, pairsIdx, err := parseAddOptions(cmd, 2)
	if err != nil {
		return nil, err
	}
	if forceIncr {
		opts.incr = true
	}

	pairTokens := cmd[pairsIdx:]
	if len(pairTokens) == 0 || len(pairTokens)%2 != 0 {
		return nil, errors.New(constants.WrongArgsResponse)
	}
	if opts.incr && len(pairTokens) != 2 {
		return nil, errors.New(constants.WrongArgsResponse)
	}

	scores := make([]float64, len(pairTokens)/2)
	members := make([]string, len(pairTokens)/2)
	for i := 0; i < len(pairTokens); i += 2 {
		s, err := parseScoreToken(pairTokens[i])
		if err != nil {
			return nil, err
		}
		scores[i/2] = s
		members[i/2] = pairTokens[i+1]
	}

	xs, existed, err := getXSet(params, key)
	if err != nil {
		return nil, err
	}
	createdNew := false
	if !existed {
		if opts.xx {
			if opts.incr {
				return nullBulk(), nil
			}
			return integerReply(0), nil
		}
		xs = newXSetFromConfig(params.GetConfig(), len(members[0]))
		createdNew = true
	}
	if opts.modifyFinity {
		xs.SetFinity(opts.finity)
	}
	if opts.modifyPruning {
		xs.SetPruning(opts.pruning)
	}

	var added, updated, unchanged int
	var lastScore float64
	var incrErr error
	for i, member := range members {
		outcome, score, err := xs.InsertOrUpdate(member, scores[i], opts.nx, opts.xx, opts.incr)
		if err != nil {
			incrErr = err
			break
		}
		lastScore = score
		switch outcome {
		case xset.Added:
			added++
		case xset.Updated:
			updated++
		case xset.Unchanged:
			unchanged++
		}
	}

	if xs.Len() > 0 {
		_ = params.SetValues(params.Context, map[string]interface{}{key: xs})
		if added > 0 || updated > 0 {
			eventName := "xadd"
			if opts.incr {
				eventName = "xincr"
			}
			params.Notify(params.Context, constants.XSetCategory, eventName, key)
		}
	} else if createdNew {
		// Nothing was ever successfully inserted; don't materialize an empty key.
		return nil, incrErr
	}

	if incrErr != nil {
		return nil, incrErr
	}

	evicted := enforceAndPersist(params, key, xs, xset.EnforceOptions{
		ReportElements: opts.elements,
	})

	if opts.elements {
		return entriesReply(evicted, true), nil
	}
	if opts.incr {
		if unchanged > 0 || added > 0 || updated > 0 {
			return bulkString(formatScore(lastScore)), nil
		}
		return nullBulk(), nil
	}
	if opts.ch {
		return integerReply(added + updated), nil
	}
	return integerReply(added), nil
}

func handleXADD(params internal.HandlerFuncParams) ([]byte, error) {
	return xaddGeneric(params, false)
}

func handleXINCRBY(params internal.HandlerFuncParams) ([]byte, error) {
	cmd := params.Command
	if len(cmd) < 4 {
		return nil, errors.New(constants.WrongArgsResponse)
	}
	return xaddGeneric(params, true)
}

func handleXREM(params internal.HandlerFuncParams) ([]byte, error) {
	cmd := params.Command
	key := cmd[1]
	members := cmd[2:]

	xs, existed, err := getXSet(params, key)
	if err != nil {
		return nil, err
	}
	if !existed {
		return integerReply(0), nil
	}

	removed := 0
	for _, m := range members {
		if xs.Remove(m) {
			removed++
		}
	}
	if removed > 0 {
		params.Notify(params.Context, constants.XSetCategory, "xrem", key)
	}
	if xs.Len() == 0 {
		_ = params.DeleteKey(params.Context, key)
		params.Notify(params.Context, constants.GenericModule, "del", key)
	} else {
		_ = params.SetValues(params.Context, map[string]interface{}{key: xs})
	}
	return integerReply(removed), nil
}

func handleXCARD(params internal.HandlerFuncParams) ([]byte, error) {
	xs, existed, err := getXSet(params, params.Command[1])
	if err != nil {
		return nil, err
	}
	if !existed {
		return integerReply(0), nil
	}
	return integerReply(xs.Len()), nil
}

func handleXSCORE(params internal.HandlerFuncParams) ([]byte, error) {
	cmd := params.Command
	xs, existed, err := getXSet(params, cmd[1])
	if err != nil {
		return nil, err
	}
	if !existed {
		return nullBulk(), nil
	}
	score, ok := xs.ScoreOf(cmd[2])
	if !ok {
		return nullBulk(), nil
	}
	return bulkString(formatScore(score)), nil
}

func handleRank(params internal.HandlerFuncParams, reverse bool) ([]byte, error) {
	cmd := params.Command
	xs, existed, err := getXSet(params, cmd[1])
	if err != nil {
		return nil, err
	}
	if !existed {
		return nullBulk(), nil
	}
	rank, ok := xs.RankOf(cmd[2], reverse)
	if !ok {
		return nullBulk(), nil
	}
	return integerReply(rank), nil
}

func handleXRANK(params internal.HandlerFuncParams) ([]byte, error) {
	return handleRank(params, false)
}

func handleXREVRANK(params internal.HandlerFuncParams) ([]byte, error) {
	return handleRank(params, true)
}

func handleRangeByRank(params internal.HandlerFuncParams, reverse bool) ([]byte, error) {
	cmd := params.Command
	lo, err := strconv.Atoi(cmd[2])
	if err != nil {
		return nil, errors.New("start value is not an integer")
	}
	hi, err := strconv.Atoi(cmd[3])
	if err != nil {
		return nil, errors.New("stop value is not an integer")
	}
	withScores := false
	if len(cmd) == 5 {
		if !strings.EqualFold(cmd[4], "withscores") {
			return nil, errors.New(constants.SyntaxErrorResponse)
		}
		withScores = true
	}

	xs, existed, err := getXSet(params, cmd[1])
	if err != nil {
		return nil, err
	}
	if !existed {
		return flatArray(nil), nil
	}
	entries := xs.RangeByRank(lo, hi, reverse)
	return entriesReply(entries, withScores), nil
}

func handleXRANGE(params internal.HandlerFuncParams) ([]byte, error) {
	return handleRangeByRank(params, false)
}

func handleXREVRANGE(params internal.HandlerFuncParams) ([]byte, error) {
	return handleRangeByRank(params, true)
}

func handleRangeByScore(params internal.HandlerFuncParams, reverse bool) ([]byte, error) {
	cmd := params.Command
	minTok, maxTok := cmd[2], cmd[3]
	if reverse {
		minTok, maxTok = cmd[3], cmd[2]
	}
	r, err := xset.ParseScoreRange(minTok, maxTok)
	if err != nil {
		return nil, err
	}

	rest := cmd[4:]
	withScores := containsFold(rest, "withscores")
	offset, limit, err := parseLimit(rest)
	if err != nil {
		return nil, err
	}

	xs, existed, err := getXSet(params, cmd[1])
	if err != nil {
		return nil, err
	}
	if !existed {
		return flatArray(nil), nil
	}
	entries := xs.RangeByScore(r, reverse, offset, limit)
	return entriesReply(entries, withScores), nil
}

func handleXRANGEBYSCORE(params internal.HandlerFuncParams) ([]byte, error) {
	return handleRangeByScore(params, false)
}

func handleXREVRANGEBYSCORE(params internal.HandlerFuncParams) ([]byte, error) {
	return handleRangeByScore(params, true)
}

func handleRangeByLex(params internal.HandlerFuncParams, reverse bool) ([]byte, error) {
	cmd := params.Command
	minTok, maxTok := cmd[2], cmd[3]
	if reverse {
		minTok, maxTok = cmd[3], cmd[2]
	}
	r, err := xset.ParseLexRange(minTok, maxTok)
	if err != nil {
		return nil, err
	}

	offset, limit, err := parseLimit(cmd[4:])
	if err != nil {
		return nil, err
	}

	xs, existed, err := getXSet(params, cmd[1])
	if err != nil {
		return nil, err
	}
	if !existed {
		return flatArray(nil), nil
	}
	entries := xs.RangeByLex(r, reverse, offset, limit)
	return entriesReply(entries, false), nil
}

func handleXRANGEBYLEX(params internal.HandlerFuncParams) ([]byte, error) {
	return handleRangeByLex(params, false)
}

func handleXREVRANGEBYLEX(params internal.HandlerFuncParams) ([]byte, error) {
	return handleRangeByLex(params, true)
}

func handleXCOUNT(params internal.HandlerFuncParams) ([]byte, error) {
	cmd := params.Command
	r, err := xset.ParseScoreRange(cmd[2], cmd[3])
	if err != nil {
		return nil, err
	}
	xs, existed, err := getXSet(params, cmd[1])
	if err != nil {
		return nil, err
	}
	if !existed {
		return integerReply(0), nil
	}
	return integerReply(xs.CountByScore(r)), nil
}

func handleXLEXCOUNT(params internal.HandlerFuncParams) ([]byte, error) {
	cmd := params.Command
	r, err := xset.ParseLexRange(cmd[2], cmd[3])
	if err != nil {
		return nil, err
	}
	xs, existed, err := getXSet(params, cmd[1])
	if err != nil {
		return nil, err
	}
	if !existed {
		return integerReply(0), nil
	}
	return integerReply(xs.CountByLex(r)), nil
}

// removeRangeCommon runs the shared post-removal bookkeeping for the
// XREMRANGEBY* family: delete the key if emptied, notify, reply with the
// removal count (spec §4.6). Capacity enforcement does not apply to
// explicit removals since they can only shrink the set.
func removeRangeCommon(params internal.HandlerFuncParams, key string, xs *xset.XSet, evicted []xset.Entry, eventName string) ([]byte, error) {
	if len(evicted) > 0 {
		params.Notify(params.Context, constants.XSetCategory, eventName, key)
	}
	if xs.Len() == 0 {
		_ = params.DeleteKey(params.Context, key)
		params.Notify(params.Context, constants.GenericModule, "del", key)
	} else {
		_ = params.SetValues(params.Context, map[string]interface{}{key: xs})
	}
	return integerReply(len(evicted)), nil
}

func handleXREMRANGEBYRANK(params internal.HandlerFuncParams) ([]byte, error) {
	cmd := params.Command
	lo, err := strconv.Atoi(cmd[2])
	if err != nil {
		return nil, errors.New("start value is not an integer")
	}
	hi, err := strconv.Atoi(cmd[3])
	if err != nil {
		return nil, errors.New("stop value is not an integer")
	}
	xs, existed, err := getXSet(params, cmd[1])
	if err != nil {
		return nil, err
	}
	if !existed {
		return integerReply(0), nil
	}
	evicted := xs.DeleteByRank(lo, hi)
	return removeRangeCommon(params, cmd[1], xs, evicted, "xremrangebyrank")
}

func handleXREMRANGEBYSCORE(params internal.HandlerFuncParams) ([]byte, error) {
	cmd := params.Command
	r, err := xset.ParseScoreRange(cmd[2], cmd[3])
	if err != nil {
		return nil, err
	}
	xs, existed, err := getXSet(params, cmd[1])
	if err != nil {
		return nil, err
	}
	if !existed {
		return integerReply(0), nil
	}
	evicted := xs.DeleteByScore(r)
	return removeRangeCommon(params, cmd[1], xs, evicted, "xremrangebyscore")
}

func handleXREMRANGEBYLEX(params internal.HandlerFuncParams) ([]byte, error) {
	cmd := params.Command
	r, err := xset.ParseLexRange(cmd[2], cmd[3])
	if err != nil {
		return nil, err
	}
	xs, existed, err := getXSet(params, cmd[1])
	if err != nil {
		return nil, err
	}
	if !existed {
		return integerReply(0), nil
	}
	evicted := xs.DeleteByLex(r)
	return removeRangeCommon(params, cmd[1], xs, evicted, "xremrangebylex")
}

func handleXSETOPTIONS(params internal.HandlerFuncParams) ([]byte, error) {
	cmd := params.Command
	key := cmd[1]

	opts, err := parseSetOptions(cmd, 2)
	if err != nil {
		return nil, err
	}
	if !opts.modifyFinity && !opts.modifyPruning && !opts.elements {
		return nil, errors.New(constants.WrongArgsResponse)
	}

	xs, existed, err := getXSet(params, key)
	if err != nil {
		return nil, err
	}
	if !existed {
		return nil, errNoSuchKey
	}

	evicted := enforceAndPersist(params, key, xs, xset.EnforceOptions{
		ModifyFinity:   opts.modifyFinity,
		Finity:         opts.finity,
		ModifyPruning:  opts.modifyPruning,
		Pruning:        opts.pruning,
		ReportElements: opts.elements,
	})
	params.Notify(params.Context, constants.XSetCategory, "xsetoptions", key)

	if opts.elements {
		return entriesReply(evicted, true), nil
	}
	return []byte(constants.OkResponse), nil
}

func handleXGETFINITY(params internal.HandlerFuncParams) ([]byte, error) {
	xs, existed, err := getXSet(params, params.Command[1])
	if err != nil {
		return nil, err
	}
	if !existed {
		return nil, errNoSuchKey
	}
	return integerReply(int(xs.Finity())), nil
}

func handleXGETPRUNING(params internal.HandlerFuncParams) ([]byte, error) {
	xs, existed, err := getXSet(params, params.Command[1])
	if err != nil {
		return nil, err
	}
	if !existed {
		return nil, errNoSuchKey
	}
	return bulkString(xs.Pruning()), nil
}

// handleXSCAN implements a non-cursor-stable but fully deterministic scan:
// since XSets are already maintained in sorted order, the cursor is simply
// the rank to resume from (spec §4.8's "no ordering guarantees beyond the
// set's own sort order" note).
func handleXSCAN(params internal.HandlerFuncParams) ([]byte, error) {
	cmd := params.Command
	cursor, err := strconv.Atoi(cmd[2])
	if err != nil || cursor < 0 {
		return nil, errors.New("cursor must be a non-negative integer")
	}

	count := 10
	rest := cmd[3:]
	if idx := indexFold(rest, "count"); idx != -1 {
		if idx+1 >= len(rest) {
			return nil, errors.New(constants.WrongArgsResponse)
		}
		count, err = strconv.Atoi(rest[idx+1])
		if err != nil || count <= 0 {
			return nil, errors.New("count must be a positive integer")
		}
	}

	var pattern glob.Glob
	if idx := indexFold(rest, "match"); idx != -1 {
		if idx+1 >= len(rest) {
			return nil, errors.New(constants.WrongArgsResponse)
		}
		g, err := glob.Compile(rest[idx+1])
		if err != nil {
			return nil, errors.New("invalid MATCH pattern")
		}
		pattern = g
	}

	xs, existed, err := getXSet(params, cmd[1])
	if err != nil {
		return nil, err
	}
	if !existed {
		return scanReply(0, nil), nil
	}

	all := xs.All()
	if cursor >= len(all) {
		return scanReply(0, nil), nil
	}
	end := cursor + count
	nextCursor := end
	if end >= len(all) {
		end = len(all)
		nextCursor = 0
	}
	page := all[cursor:end]
	if pattern != nil {
		filtered := make([]xset.Entry, 0, len(page))
		for _, e := range page {
			if pattern.Match(e.Member) {
				filtered = append(filtered, e)
			}
		}
		page = filtered
	}
	return scanReply(nextCursor, page), nil
}

func scanReply(nextCursor int, entries []xset.Entry) []byte {
	items := make([]string, 0, len(entries)*2)
	for _, e := range entries {
		items = append(items, e.Member, formatScore(e.Score))
	}
	var buf []byte
	buf = append(buf, []byte("*2\r\n")...)
	buf = append(buf, bulkString(strconv.Itoa(nextCursor))...)
	buf = append(buf, flatArray(items)...)
	return buf
}

// Commands returns the registration list for the xset module's commands.
func Commands() []internal.Command {
	return []internal.Command{
		{
			Command:           "xadd",
			Module:            constants.XSetModule,
			Categories:        []string{constants.XSetCategory, constants.WriteCategory, constants.SlowCategory},
			Description:       "(XADD key [NX | XX] [CH] [FINITY n] [PRUNING minscore|maxscore] [ELEMENTS] score member [score member ...]) Adds one or more (score, member) pairs to the finite sorted set at key, creating it if necessary.",
			Sync:               true,
			KeyExtractionFunc: xaddKeyFunc,
			HandlerFunc:       handleXADD,
		},
		{
			Command:           "xincrby",
			Module:            constants.XSetModule,
			Categories:        []string{constants.XSetCategory, constants.WriteCategory, constants.FastCategory},
			Description:       "(XINCRBY key [FINITY n] [PRUNING minscore|maxscore] [ELEMENTS] increment member) Increments the score of member in the finite sorted set at key by increment.",
			Sync:               true,
			KeyExtractionFunc: xaddKeyFunc,
			HandlerFunc:       handleXINCRBY,
		},
		{
			Command:           "xrem",
			Module:            constants.XSetModule,
			Categories:        []string{constants.XSetCategory, constants.WriteCategory, constants.FastCategory},
			Description:       "(XREM key member [member ...]) Removes the given members from the finite sorted set at key.",
			Sync:               true,
			KeyExtractionFunc: xremKeyFunc,
			HandlerFunc:       handleXREM,
		},
		{
			Command:           "xcard",
			Module:            constants.XSetModule,
			Categories:        []string{constants.XSetCategory, constants.ReadCategory, constants.FastCategory},
			Description:       "(XCARD key) Returns the cardinality of the finite sorted set at key.",
			Sync:               false,
			KeyExtractionFunc: xcardKeyFunc,
			HandlerFunc:       handleXCARD,
		},
		{
			Command:           "xscore",
			Module:            constants.XSetModule,
			Categories:        []string{constants.XSetCategory, constants.ReadCategory, constants.FastCategory},
			Description:       "(XSCORE key member) Returns the score of member in the finite sorted set at key.",
			Sync:               false,
			KeyExtractionFunc: xscoreKeyFunc,
			HandlerFunc:       handleXSCORE,
		},
		{
			Command:           "xrank",
			Module:            constants.XSetModule,
			Categories:        []string{constants.XSetCategory, constants.ReadCategory, constants.FastCategory},
			Description:       "(XRANK key member) Returns the 0-based ascending rank of member in the finite sorted set at key.",
			Sync:               false,
			KeyExtractionFunc: xrankKeyFunc,
			HandlerFunc:       handleXRANK,
		},
		{
			Command:           "xrevrank",
			Module:            constants.XSetModule,
			Categories:        []string{constants.XSetCategory, constants.ReadCategory, constants.FastCategory},
			Description:       "(XREVRANK key member) Returns the 0-based descending rank of member in the finite sorted set at key.",
			Sync:               false,
			KeyExtractionFunc: xrankKeyFunc,
			HandlerFunc:       handleXREVRANK,
		},
		{
			Command:           "xrange",
			Module:            constants.XSetModule,
			Categories:        []string{constants.XSetCategory, constants.ReadCategory, constants.SlowCategory},
			Description:       "(XRANGE key start stop [WITHSCORES]) Returns the ascending-rank range [start, stop] of the finite sorted set at key.",
			Sync:               false,
			KeyExtractionFunc: xrangeKeyFunc,
			HandlerFunc:       handleXRANGE,
		},
		{
			Command:           "xrevrange",
			Module:            constants.XSetModule,
			Categories:        []string{constants.XSetCategory, constants.ReadCategory, constants.SlowCategory},
			Description:       "(XREVRANGE key start stop [WITHSCORES]) Returns the descending-rank range [start, stop] of the finite sorted set at key.",
			Sync:               false,
			KeyExtractionFunc: xrangeKeyFunc,
			HandlerFunc:       handleXREVRANGE,
		},
		{
			Command:           "xrangebyscore",
			Module:            constants.XSetModule,
			Categories:        []string{constants.XSetCategory, constants.ReadCategory, constants.SlowCategory},
			Description:       "(XRANGEBYSCORE key min max [WITHSCORES] [LIMIT offset count]) Returns members with score in [min, max], ascending.",
			Sync:               false,
			KeyExtractionFunc: xrangeByScoreKeyFunc,
			HandlerFunc:       handleXRANGEBYSCORE,
		},
		{
			Command:           "xrevrangebyscore",
			Module:            constants.XSetModule,
			Categories:        []string{constants.XSetCategory, constants.ReadCategory, constants.SlowCategory},
			Description:       "(XREVRANGEBYSCORE key max min [WITHSCORES] [LIMIT offset count]) Returns members with score in [min, max], descending.",
			Sync:               false,
			KeyExtractionFunc: xrangeByScoreKeyFunc,
			HandlerFunc:       handleXREVRANGEBYSCORE,
		},
		{
			Command:           "xrangebylex",
			Module:            constants.XSetModule,
			Categories:        []string{constants.XSetCategory, constants.ReadCategory, constants.SlowCategory},
			Description:       "(XRANGEBYLEX key min max [LIMIT offset count]) Returns members with equal score in lexicographic range [min, max], ascending.",
			Sync:               false,
			KeyExtractionFunc: xrangeByLexKeyFunc,
			HandlerFunc:       handleXRANGEBYLEX,
		},
		{
			Command:           "xrevrangebylex",
			Module:            constants.XSetModule,
			Categories:        []string{constants.XSetCategory, constants.ReadCategory, constants.SlowCategory},
			Description:       "(XREVRANGEBYLEX key max min [LIMIT offset count]) Returns members with equal score in lexicographic range [min, max], descending.",
			Sync:               false,
			KeyExtractionFunc: xrangeByLexKeyFunc,
			HandlerFunc:       handleXREVRANGEBYLEX,
		},
		{
			Command:           "xcount",
			Module:            constants.XSetModule,
			Categories:        []string{constants.XSetCategory, constants.ReadCategory, constants.FastCategory},
			Description:       "(XCOUNT key min max) Returns the number of members with score in [min, max].",
			Sync:               false,
			KeyExtractionFunc: xcountKeyFunc,
			HandlerFunc:       handleXCOUNT,
		},
		{
			Command:           "xlexcount",
			Module:            constants.XSetModule,
			Categories:        []string{constants.XSetCategory, constants.ReadCategory, constants.FastCategory},
			Description:       "(XLEXCOUNT key min max) Returns the number of members in the lexicographic range [min, max] among equal-score members.",
			Sync:               false,
			KeyExtractionFunc: xcountKeyFunc,
			HandlerFunc:       handleXLEXCOUNT,
		},
		{
			Command:           "xremrangebyrank",
			Module:            constants.XSetModule,
			Categories:        []string{constants.XSetCategory, constants.WriteCategory, constants.SlowCategory},
			Description:       "(XREMRANGEBYRANK key start stop) Removes all members within the ascending-rank range [start, stop].",
			Sync:               true,
			KeyExtractionFunc: xremrangeKeyFunc,
			HandlerFunc:       handleXREMRANGEBYRANK,
		},
		{
			Command:           "xremrangebyscore",
			Module:            constants.XSetModule,
			Categories:        []string{constants.XSetCategory, constants.WriteCategory, constants.SlowCategory},
			Description:       "(XREMRANGEBYSCORE key min max) Removes all members with score in [min, max].",
			Sync:               true,
			KeyExtractionFunc: xremrangeKeyFunc,
			HandlerFunc:       handleXREMRANGEBYSCORE,
		},
		{
			Command:           "xremrangebylex",
			Module:            constants.XSetModule,
			Categories:        []string{constants.XSetCategory, constants.WriteCategory, constants.SlowCategory},
			Description:       "(XREMRANGEBYLEX key min max) Removes all equal-score members in the lexicographic range [min, max].",
			Sync:               true,
			KeyExtractionFunc: xremrangeKeyFunc,
			HandlerFunc:       handleXREMRANGEBYLEX,
		},
		{
			Command:           "xsetoptions",
			Module:            constants.XSetModule,
			Categories:        []string{constants.XSetCategory, constants.WriteCategory, constants.FastCategory},
			Description:       "(XSETOPTIONS key [FINITY n] [PRUNING minscore|maxscore] [ELEMENTS]) Updates capacity/pruning attributes on an existing finite sorted set and runs enforcement.",
			Sync:               true,
			KeyExtractionFunc: xsetOptionsKeyFunc,
			HandlerFunc:       handleXSETOPTIONS,
		},
		{
			Command:           "xgetfinity",
			Module:            constants.XSetModule,
			Categories:        []string{constants.XSetCategory, constants.ReadCategory, constants.FastCategory},
			Description:       "(XGETFINITY key) Returns the capacity bound of the finite sorted set at key.",
			Sync:               false,
			KeyExtractionFunc: xgetOptionKeyFunc,
			HandlerFunc:       handleXGETFINITY,
		},
		{
			Command:           "xgetpruning",
			Module:            constants.XSetModule,
			Categories:        []string{constants.XSetCategory, constants.ReadCategory, constants.FastCategory},
			Description:       "(XGETPRUNING key) Returns the pruning direction of the finite sorted set at key.",
			Sync:               false,
			KeyExtractionFunc: xgetOptionKeyFunc,
			HandlerFunc:       handleXGETPRUNING,
		},
		{
			Command:           "xscan",
			Module:            constants.XSetModule,
			Categories:        []string{constants.XSetCategory, constants.ReadCategory, constants.SlowCategory},
			Description:       "(XSCAN key cursor [MATCH pattern] [COUNT count]) Incrementally iterates the finite sorted set at key in its natural sort order.",
			Sync:               false,
			KeyExtractionFunc: xscanKeyFunc,
			HandlerFunc:       handleXSCAN,
		},
	}
}
