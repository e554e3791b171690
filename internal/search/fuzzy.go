package search

import (
	"sort"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Match is a ranked hit against a list of strings
type Match struct {
	Index          int   // Index in source slice
	Score          int   // Match quality (lower = better)
	MatchedIndexes []int // Rune positions that matched (for highlighting)
}

// Rank performs token-based fuzzy matching tuned for short titles and names.
//
// Every query token must match some word of the target (AND semantics) and
// word order does not matter, so "knight dark" finds "The Dark Knight".
// Longer tokens tolerate a typo or two.
//
// Returns matches sorted by score, then by target length.
func Rank(query string, targets []string) []Match {
	queryTokens := tokenize(strings.TrimSpace(query))
	if len(queryTokens) == 0 {
		return nil
	}

	var matches []Match
	for i, target := range targets {
		if m, ok := matchTarget(target, queryTokens, i); ok {
			matches = append(matches, m)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Score != b.Score {
			return a.Score < b.Score
		}
		return len(targets[a.Index]) < len(targets[b.Index])
	})
	return matches
}

// token is a lowercased word and its rune span in the original string
type token struct {
	text  string
	start int
	end   int
}

func tokenize(text string) []token {
	var tokens []token
	runes := []rune(strings.ToLower(text))

	inWord := false
	wordStart := 0
	for i, r := range runes {
		isWordChar := unicode.IsLetter(r) || unicode.IsDigit(r)
		switch {
		case isWordChar && !inWord:
			wordStart = i
			inWord = true
		case !isWordChar && inWord:
			tokens = append(tokens, token{text: string(runes[wordStart:i]), start: wordStart, end: i})
			inWord = false
		}
	}
	if inWord {
		tokens = append(tokens, token{text: string(runes[wordStart:]), start: wordStart, end: len(runes)})
	}
	return tokens
}

type tokenMatch struct {
	score   int
	indexes []int
}

var noMatch = tokenMatch{score: -1}

func matchTarget(target string, queryTokens []token, index int) (Match, bool) {
	lower := strings.ToLower(target)
	targetTokens := tokenize(target)

	// each target word can satisfy only one query token
	used := make([]bool, len(targetTokens))

	var indexes []int
	total := 0
	for _, qt := range queryTokens {
		best, bestIdx := bestTokenMatch(qt, targetTokens, lower, used)
		if best.score < 0 {
			return Match{}, false
		}
		if bestIdx >= 0 {
			used[bestIdx] = true
		}
		total += best.score
		indexes = append(indexes, best.indexes...)
	}

	// prefer targets without many extra words
	if extra := len(targetTokens) - len(queryTokens); extra > 0 {
		total += extra * 5
	}

	return Match{Index: index, Score: total, MatchedIndexes: dedupeSorted(indexes)}, true
}

func bestTokenMatch(qt token, targetTokens []token, lower string, used []bool) (tokenMatch, int) {
	best, bestIdx := noMatch, -1
	for i, tt := range targetTokens {
		if used[i] {
			continue
		}
		m := matchToken(qt.text, tt)
		if m.score >= 0 && (best.score < 0 || m.score < best.score) {
			best, bestIdx = m, i
		}
	}

	if best.score < 0 {
		if m := matchSubstring(qt.text, lower); m.score >= 0 {
			return m, -1
		}
	}
	return best, bestIdx
}

func matchToken(query string, tt token) tokenMatch {
	word := tt.text
	qLen := len([]rune(query))

	switch {
	case query == word:
		return tokenMatch{score: 0, indexes: indexRange(tt.start, tt.end)}
	case strings.HasPrefix(word, query):
		return tokenMatch{score: 10, indexes: indexRange(tt.start, tt.start+qLen)}
	case strings.HasPrefix(query, word):
		return tokenMatch{score: 20, indexes: indexRange(tt.start, tt.end)}
	}

	if idx := strings.Index(word, query); idx >= 0 {
		start := tt.start + len([]rune(word[:idx]))
		return tokenMatch{score: 50 + idx, indexes: indexRange(start, start+qLen)}
	}

	if maxTypos := allowedTypos(qLen); maxTypos > 0 {
		if dist := fuzzy.LevenshteinDistance(query, word); dist <= maxTypos {
			return tokenMatch{score: 100 + dist*20, indexes: indexRange(tt.start, tt.end)}
		}
	}

	return noMatch
}

func matchSubstring(query, lower string) tokenMatch {
	if idx := strings.Index(lower, query); idx >= 0 {
		runeIdx := len([]rune(lower[:idx]))
		return tokenMatch{score: 150 + runeIdx, indexes: indexRange(runeIdx, runeIdx+len([]rune(query)))}
	}
	return noMatch
}

// allowedTypos: 1-3 runes = 0, 4-6 = 1, 7+ = 2
func allowedTypos(length int) int {
	switch {
	case length <= 3:
		return 0
	case length <= 6:
		return 1
	default:
		return 2
	}
}

func indexRange(start, end int) []int {
	if end < start {
		return nil
	}
	out := make([]int, end-start)
	for i := range out {
		out[i] = start + i
	}
	return out
}

func dedupeSorted(indexes []int) []int {
	if len(indexes) == 0 {
		return indexes
	}
	seen := make(map[int]bool, len(indexes))
	out := make([]int, 0, len(indexes))
	for _, idx := range indexes {
		if !seen[idx] {
			seen[idx] = true
			out = append(out, idx)
		}
	}
	sort.Ints(out)
	return out
}
