// Package search ranks catalog entries against a free text query.
package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/cinelog/internal/domain"
)

// directorPenalty pushes director-only hits below any title hit
const directorPenalty = 300

// Result is a movie that matched a query
type Result struct {
	Movie          domain.Movie
	Field          domain.Field // field the query matched
	MatchedIndexes []int        // rune positions in that field, for highlighting
	Score          int          // lower = better
}

// Movies ranks movies by how well query matches their title. Movies whose
// title does not match are tried against the director name and ranked
// after every title match.
func Movies(query string, movies []domain.Movie) []Result {
	query = strings.TrimSpace(query)
	if query == "" || len(movies) == 0 {
		return nil
	}

	titles := make([]string, len(movies))
	for i, m := range movies {
		titles[i] = m.Title
	}

	matched := make(map[int]bool)
	var results []Result
	for _, m := range Rank(query, titles) {
		matched[m.Index] = true
		results = append(results, Result{
			Movie:          movies[m.Index],
			Field:          domain.FieldTitle,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		})
	}

	// Directors are matched as a subsequence, so "nolan" and "cnolan" both hit
	var directors []string
	var owners []int
	for i, m := range movies {
		if !matched[i] && m.Director != "" {
			directors = append(directors, m.Director)
			owners = append(owners, i)
		}
	}
	for _, r := range sortedRanks(fuzzy.RankFindFold(query, directors)) {
		results = append(results, Result{
			Movie: movies[owners[r.OriginalIndex]],
			Field: domain.FieldDirector,
			Score: directorPenalty + r.Distance,
		})
	}

	return results
}

func sortedRanks(ranks fuzzy.Ranks) fuzzy.Ranks {
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Distance < ranks[j].Distance
	})
	return ranks
}
