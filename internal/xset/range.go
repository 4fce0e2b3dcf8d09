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
)

// ScoreRange is a half-open-or-closed interval over scores, parsed from the
// "(1.0"/"2.5"-style syntax in spec §4.1.
type ScoreRange struct {
	Min, Max     float64
	MinEx, MaxEx bool
}

func (r ScoreRange) Contains(score float64) bool {
	if r.MinEx {
		if score <= r.Min {
			return false
		}
	} else if score < r.Min {
		return false
	}
	if r.MaxEx {
		if score >= r.Max {
			return false
		}
	} else if score > r.Max {
		return false
	}
	return true
}

// ErrRangeParse is returned when a score range bound cannot be parsed.
var ErrRangeParse = errors.New("min or max is not a float")

// ParseScoreRange parses the two score-range tokens, honoring a leading '('
// for an open/exclusive bound and the "+inf"/"-inf" sentinels.
func ParseScoreRange(minTok, maxTok string) (ScoreRange, error) {
	min, minEx, err := parseScoreBound(minTok)
	if err != nil {
		return ScoreRange{}, err
	}
	max, maxEx, err := parseScoreBound(maxTok)
	if err != nil {
		return ScoreRange{}, err
	}
	return ScoreRange{Min: min, Max: max, MinEx: minEx, MaxEx: maxEx}, nil
}

func parseScoreBound(tok string) (float64, bool, error) {
	exclusive := false
	if strings.HasPrefix(tok, "(") {
		exclusive = true
		tok = tok[1:]
	}
	switch strings.ToLower(tok) {
	case "+inf", "inf":
		return math.Inf(1), exclusive, nil
	case "-inf":
		return math.Inf(-1), exclusive, nil
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false, ErrRangeParse
	}
	if math.IsNaN(f) {
		return 0, false, ErrRangeParse
	}
	return f, exclusive, nil
}

// LexRange is a half-open-or-closed interval over members, compared
// byte-lexicographically, with the '-'/'+' infinity sentinels from spec §4.1.
type LexRange struct {
	Min, Max         string
	MinEx, MaxEx     bool
	MinusInf, PlusInf bool
}

// ErrLexRangeParse is returned when a lex bound isn't one of
// '[...'/'(...'/'-'/'+'. It is also returned for '+' as the lower bound and
// '-' as the upper bound: those combinations are rejected rather than
// parsed as an empty range.
var ErrLexRangeParse = errors.New("min or max not valid string range item")

// ParseLexRange parses the two lex-range tokens.
func ParseLexRange(minTok, maxTok string) (LexRange, error) {
	r := LexRange{}
	switch {
	case minTok == "-":
		r.MinusInf = true
	case minTok == "+":
		r.PlusInf = true
		return LexRange{}, ErrLexRangeParse // '+' is never a valid lower bound
	case strings.HasPrefix(minTok, "["):
		r.Min = minTok[1:]
	case strings.HasPrefix(minTok, "("):
		r.Min = minTok[1:]
		r.MinEx = true
	default:
		return LexRange{}, ErrLexRangeParse
	}

	switch {
	case maxTok == "+":
		r.PlusInf = true
	case maxTok == "-":
		return LexRange{}, ErrLexRangeParse // '-' is never a valid upper bound
	case strings.HasPrefix(maxTok, "["):
		r.Max = maxTok[1:]
	case strings.HasPrefix(maxTok, "("):
		r.Max = maxTok[1:]
		r.MaxEx = true
	default:
		return LexRange{}, ErrLexRangeParse
	}

	return r, nil
}

func (r LexRange) Contains(member string) bool {
	if !r.MinusInf {
		c := compareLex(member, r.Min)
		if r.MinEx {
			if c <= 0 {
				return false
			}
		} else if c < 0 {
			return false
		}
	}
	if !r.PlusInf {
		c := compareLex(member, r.Max)
		if r.MaxEx {
			if c >= 0 {
				return false
			}
		} else if c > 0 {
			return false
		}
	}
	return true
}

// compareLex is a byte-lexicographic comparator local to the xset package
// so the core has no dependency on the server glue package.
func compareLex(a, b string) int {
	limit := len(a)
	if len(b) < limit {
		limit = len(b)
	}
	for i := 0; i < limit; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
