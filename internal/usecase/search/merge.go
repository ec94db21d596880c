package search

import "github.com/2025DataEdu/project-5/internal/domain/search/result"

// Merge concatenates smart and keyword results, keeping the first result of
// every dedup key and every id. Smart hits come first, so they win over
// keyword duplicates. Ids are checked separately because a vector hit keeps
// the title stored at embedding time, which may differ from the live row.
func Merge(smart, keyword []result.Result) []result.Result {
	n := len(smart) + len(keyword)
	out := make([]result.Result, 0, n)
	seenKeys := make(map[string]struct{}, n)
	seenIDs := make(map[string]struct{}, n)

	for _, list := range [][]result.Result{smart, keyword} {
		for i := range list {
			key := list[i].DedupKey()
			if _, ok := seenKeys[key]; ok {
				continue
			}
			id := list[i].ID
			if _, ok := seenIDs[id]; ok && id != "" {
				continue
			}
			seenKeys[key] = struct{}{}
			if id != "" {
				seenIDs[id] = struct{}{}
			}
			out = append(out, list[i])
		}
	}
	return out
}

// Dedup removes results that share a dedup key or an id with an earlier one.
func Dedup(results []result.Result) []result.Result {
	return Merge(results, nil)
}
