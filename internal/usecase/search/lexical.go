package search

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/storefront/internal/domain/item"
	"github.com/kailas-cloud/storefront/internal/domain/search/result"
)

// MaxAlternatives caps the ranked sequence returned by Score.
const MaxAlternatives = 10

// minTokenRunes is the shortest reference token that counts.
const minTokenRunes = 3

// Score ranks pool by naive lexical overlap with referenceText.
//
// This is a placeholder heuristic, not a ranking algorithm: it has no recall or
// precision guarantees and is kept deliberately simple. Each candidate scores one
// point per reference token (duplicates included) found as a substring of its
// lower-cased name and description, so "cup" matches "cupboard". Zero scores are
// dropped, ties keep pool order, and at most MaxAlternatives results are returned
// with 1-based ranks. The candidate whose id equals excludeID never appears.
func Score(referenceText string, pool []item.Item, excludeID string) []result.Scored {
	tokens := tokenize(referenceText)
	if len(tokens) == 0 {
		return []result.Scored{}
	}

	type hit struct {
		idx   int
		score int
	}

	hits := make([]hit, 0, len(pool))
	for i := range pool {
		it := &pool[i]
		if excludeID != "" && it.ID() == excludeID {
			continue
		}
		haystack := strings.ToLower(it.Haystack())
		n := 0
		for _, tok := range tokens {
			if strings.Contains(haystack, tok) {
				n++
			}
		}
		if n > 0 {
			hits = append(hits, hit{idx: i, score: n})
		}
	}

	slices.SortStableFunc(hits, func(a, b hit) int { return b.score - a.score })
	if len(hits) > MaxAlternatives {
		hits = hits[:MaxAlternatives]
	}

	out := make([]result.Scored, len(hits))
	for i, h := range hits {
		out[i] = result.New(pool[h.idx], i+1, h.score)
	}
	return out
}

// tokenize lower-cases s, splits it on whitespace and keeps tokens of at least minTokenRunes runes.
func tokenize(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= minTokenRunes {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
