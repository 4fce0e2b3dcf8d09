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
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/kelvinmwinuka/xsetdb/internal/constants"
	"github.com/kelvinmwinuka/xsetdb/internal/xset"
)

// addOptions is the configuration struct form of the XADD_NX/XADD_CH/...
// bit mask from the reference source (spec §9 "Option flags").
type addOptions struct {
	nx, xx, ch, incr bool
	modifyFinity     bool
	finity           int64
	modifyPruning    bool
	pruning          string
	elements         bool
}

var errNxXxIncompatible = errors.New("XX and NX options at the same time are not compatible")

// parseAddOptions walks cmd token by token starting at idx, recognizing
// nx/xx/ch/incr/finity/pruning/elements (spec §4.4's "Option parsing
// rules"), stopping at the first token it doesn't recognize. Errors surface
// in the order the offending tokens appear. The returned int is the index
// of that first non-option token.
func parseAddOptions(cmd []string, idx int) (addOptions, int, error) {
	var opts addOptions
	i := idx
	for i < len(cmd) {
		switch strings.ToLower(cmd[i]) {
		case "nx":
			if opts.xx {
				return opts, i, errNxXxIncompatible
			}
			opts.nx = true
			i++
		case "xx":
			if opts.nx {
				return opts, i, errNxXxIncompatible
			}
			opts.xx = true
			i++
		case "ch":
			opts.ch = true
			i++
		case "incr":
			opts.incr = true
			i++
		case "finity":
			if i+1 >= len(cmd) {
				return opts, i, errors.New(constants.WrongArgsResponse)
			}
			n, err := parseFinityToken(cmd[i+1])
			if err != nil {
				return opts, i, err
			}
			opts.modifyFinity = true
			opts.finity = n
			i += 2
		case "pruning":
			if i+1 >= len(cmd) {
				return opts, i, errors.New(constants.WrongArgsResponse)
			}
			p, err := parsePruningToken(cmd[i+1])
			if err != nil {
				return opts, i, err
			}
			opts.modifyPruning = true
			opts.pruning = p
			i += 2
		case "elements":
			opts.elements = true
			i++
		default:
			return opts, i, nil
		}
	}
	return opts, i, nil
}

// parseSetOptions is the narrower option parser XSETOPTIONS uses: only
// FINITY/PRUNING/ELEMENTS are legal, and any unrecognized token is a syntax
// error rather than the start of a score/member list (spec §4.4).
func parseSetOptions(cmd []string, idx int) (addOptions, error) {
	var opts addOptions
	i := idx
	for i < len(cmd) {
		switch strings.ToLower(cmd[i]) {
		case "finity":
			if i+1 >= len(cmd) {
				return opts, errors.New(constants.WrongArgsResponse)
			}
			n, err := parseFinityToken(cmd[i+1])
			if err != nil {
				return opts, err
			}
			opts.modifyFinity = true
			opts.finity = n
			i += 2
		case "pruning":
			if i+1 >= len(cmd) {
				return opts, errors.New(constants.WrongArgsResponse)
			}
			p, err := parsePruningToken(cmd[i+1])
			if err != nil {
				return opts, err
			}
			opts.modifyPruning = true
			opts.pruning = p
			i += 2
		case "elements":
			opts.elements = true
			i++
		default:
			return opts, errors.New(constants.SyntaxErrorResponse)
		}
	}
	return opts, nil
}

func parseFinityToken(tok string) (int64, error) {
	n, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, errors.New("finity is not a number (NaN)")
	}
	if n <= 0 {
		return 0, errors.New("Invalid finity")
	}
	return n, nil
}

func parsePruningToken(tok string) (string, error) {
	switch strings.ToLower(tok) {
	case xset.PruningMinScore:
		return xset.PruningMinScore, nil
	case xset.PruningMaxScore:
		return xset.PruningMaxScore, nil
	default:
		return "", errors.New(constants.SyntaxErrorResponse)
	}
}

// parseScoreToken parses one score token from a score/member pair list,
// honoring the +inf/-inf sentinels (spec §4.4).
func parseScoreToken(tok string) (float64, error) {
	switch strings.ToLower(tok) {
	case "+inf", "inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, errors.New("value is not a valid float")
	}
	if math.IsNaN(f) {
		return 0, xset.ErrScoreNaN
	}
	return f, nil
}

func containsFold(tokens []string, target string) bool {
	for _, t := range tokens {
		if strings.EqualFold(t, target) {
			return true
		}
	}
	return false
}

func indexFold(tokens []string, target string) int {
	for i, t := range tokens {
		if strings.EqualFold(t, target) {
			return i
		}
	}
	return -1
}

// parseLimit scans tokens for a "LIMIT offset count" clause (spec §4.4). It
// returns the default offset=0/limit=-1 (unlimited) when absent.
func parseLimit(tokens []string) (offset int, limit int, err error) {
	limit = -1
	idx := indexFold(tokens, "limit")
	if idx == -1 {
		return 0, -1, nil
	}
	if idx+2 >= len(tokens) {
		return 0, 0, errors.New("limit should contain offset and count as integers")
	}
	offset, err = strconv.Atoi(tokens[idx+1])
	if err != nil {
		return 0, 0, errors.New("limit offset must be integer")
	}
	limit, err = strconv.Atoi(tokens[idx+2])
	if err != nil {
		return 0, 0, errors.New("limit count must be integer")
	}
	return offset, limit, nil
}
