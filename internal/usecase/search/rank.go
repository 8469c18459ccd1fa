package search

import (
	"sort"

	"github.com/kailas-cloud/scandex/internal/domain/search/result"
)

// sortResults orders results by score descending. Equal scores rank
// the shorter total matched length first, so matches in compact fields
// beat the same score spread across long ones. Full ties keep their
// collection order.
func sortResults(results []result.Result) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score() != results[j].Score() {
			return results[i].Score() > results[j].Score()
		}
		return results[i].MatchedLength() < results[j].MatchedLength()
	})
}
