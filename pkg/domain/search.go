package domain

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SearchHackathons returns the hackathons whose title fuzzily matches query,
// best match first. A blank query returns hs unchanged.
func SearchHackathons(hs []Hackathon, query string) []Hackathon {
	query = strings.TrimSpace(query)
	if query == "" {
		return hs
	}
	titles := make([]string, len(hs))
	for i, h := range hs {
		titles[i] = h.Title
	}
	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	sort.Stable(ranks)

	out := make([]Hackathon, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, hs[r.OriginalIndex])
	}
	return out
}
