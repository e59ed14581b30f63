// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package relevance scores how closely a candidate string matches the live query.
package relevance

import (
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/poiesic/suggestor/core"
	"github.com/xrash/smetrics"
)

const (
	exactScore    = 1.0
	prefixScore   = 0.9
	containsScore = 0.7

	// maxFrequency is the frequency at which a learned term's frequency component saturates.
	maxFrequency = 10.0

	frequencyWeight = 0.6
	relevanceWeight = 0.4

	// recencyWindow is how long a use keeps earning a recency bonus.
	recencyWindow = 30 * 24 * time.Hour
	recencyWeight = 0.2
)

// Relevance returns a score in [0,1] for candidate against query.
// Comparisons are case-insensitive. Exact matches score 1.0, prefix matches
// 0.9 and substring matches 0.7; anything else falls back to normalized
// Levenshtein similarity.
func Relevance(candidate, query string) float64 {
	c := strings.ToLower(candidate)
	q := strings.ToLower(query)

	switch {
	case c == q:
		return exactScore
	case strings.HasPrefix(c, q):
		return prefixScore
	case strings.Contains(c, q):
		return containsScore
	}

	longest := max(utf8.RuneCountInString(c), utf8.RuneCountInString(q))
	if longest == 0 {
		return exactScore
	}
	return math.Max(0, 1-float64(Levenshtein(c, q))/float64(longest))
}

// Levenshtein returns the single-character edit distance between a and b,
// counted in runes, with unit cost for insertion, deletion and substitution.
func Levenshtein(a, b string) int {
	ea, eb, ok := compactRunes(a, b)
	if !ok {
		ea, eb = a, b
	}
	return smetrics.WagnerFischer(ea, eb, 1, 1, 1)
}

// compactRunes re-encodes a and b over a shared alphabet of single ASCII
// bytes, one per distinct rune, so that a multi-byte rune is one symbol.
// It reports false when the pair uses more distinct runes than fit.
func compactRunes(a, b string) (string, string, bool) {
	symbols := make(map[rune]byte)
	encode := func(s string) (string, bool) {
		out := make([]byte, 0, len(s))
		for _, r := range s {
			sym, seen := symbols[r]
			if !seen {
				if len(symbols) > unicode.MaxASCII {
					return "", false
				}
				sym = byte(len(symbols))
				symbols[r] = sym
			}
			out = append(out, sym)
		}
		return string(out), true
	}

	ea, ok := encode(a)
	if !ok {
		return "", "", false
	}
	eb, ok := encode(b)
	if !ok {
		return "", "", false
	}
	return ea, eb, true
}

// LearnedScore combines a learned term's frequency, its textual relevance to
// query and how recently it was used:
//
//	min(freq/10, 1)*0.6 + Relevance(key, query)*0.4 + max(0, 1-days/30)*0.2
func LearnedScore(term *core.Term, query string, now time.Time) float64 {
	frequency := math.Min(term.Frequency/maxFrequency, 1)
	return frequency*frequencyWeight +
		Relevance(term.Key, query)*relevanceWeight +
		RecencyBonus(term.LastUsedAt, now)
}

// RecencyBonus decays linearly from 0.2 at now to 0 after thirty days.
func RecencyBonus(lastUsed, now time.Time) float64 {
	age := now.Sub(lastUsed)
	if age < 0 {
		age = 0
	}
	return math.Max(0, 1-float64(age)/float64(recencyWindow)) * recencyWeight
}
