package algorithms

import "sort"

// RankByScore returns a copy of scores sorted by descending score. Equal
// scores keep ascending node index order.
func RankByScore(scores []Score) []Score {
	ranked := make([]Score, len(scores))
	copy(ranked, scores)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Index < ranked[j].Index
	})
	return ranked
}

// TopK returns the k highest scores. k <= 0 keeps every score.
func TopK(scores []Score, k int) []Score {
	ranked := RankByScore(scores)
	if k > 0 && k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked
}
