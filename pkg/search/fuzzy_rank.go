// Package search ranks recipes by fuzzy matching a query against a document
// built from each recipe's title, description and ingredient names.
package search

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// BuildDocument is the whole text surface the ranker sees, in fixed field order.
func BuildDocument(title, description string, ingredients []string) string {
	return title + " " + description + " " + strings.Join(ingredients, ", ")
}

// Score reports how well query matches document as an ordered subsequence.
// ok is false when the query characters do not appear in order. An empty
// query matches everything with score 0.
func Score(document, query string) (score int, ok bool) {
	if query == "" {
		return 0, true
	}
	matches := fuzzy.Find(query, []string{document})
	if len(matches) == 0 {
		return 0, false
	}
	return matches[0].Score, true
}

type ranked struct {
	index int
	score int
}

// RankAndPaginate drops items that do not match query, orders the rest by
// ascending score (weakest match first, ties keep input order), skips offset
// items and keeps at most limit. Zero offset or limit means unset.
//
// An offset at or past the number of matches yields an empty result. The
// older behaviour ignored such an offset and returned every match; callers
// paging past the end now get an empty page instead.
func RankAndPaginate[T any](items []T, document func(T) string, query string, offset, limit int) []T {
	hits := scoreAll(items, document, query)

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score < hits[j].score
		}
		return hits[i].index < hits[j].index
	})

	if offset > 0 {
		if offset >= len(hits) {
			return []T{}
		}
		hits = hits[offset:]
	}
	if limit > 0 && limit < len(hits) {
		hits = hits[:limit]
	}

	out := make([]T, 0, len(hits))
	for _, h := range hits {
		out = append(out, items[h.index])
	}
	return out
}

func scoreAll[T any](items []T, document func(T) string, query string) []ranked {
	hits := make([]ranked, 0, len(items))
	for i, item := range items {
		if score, ok := Score(document(item), query); ok {
			hits = append(hits, ranked{index: i, score: score})
		}
	}
	return hits
}
