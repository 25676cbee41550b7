// Package attack recovers substitution keys from letter-frequency statistics.
package attack

import (
	"sort"

	"github.com/verte-zerg/subcrack/internal/cipher"
)

// LetterFrequency is one entry of a frequency ranking.
type LetterFrequency struct {
	Letter    rune
	Count     int
	Frequency float64
}

// Ranking lists letters by descending frequency.
type Ranking []LetterFrequency

// FrequencyAnalysis counts alphabet letters in ciphertext and ranks them.
// Letters with equal counts stay in the order they first appeared.
// Text without letters yields an empty ranking.
func FrequencyAnalysis(ciphertext string) Ranking {
	counts := map[rune]int{}
	var order []rune
	total := 0
	for _, r := range ciphertext {
		if !cipher.IsLetter(r) {
			continue
		}
		if _, seen := counts[r]; !seen {
			order = append(order, r)
		}
		counts[r]++
		total++
	}
	if total == 0 {
		return nil
	}

	ranking := make(Ranking, 0, len(order))
	for _, r := range order {
		ranking = append(ranking, LetterFrequency{
			Letter:    r,
			Count:     counts[r],
			Frequency: float64(counts[r]) / float64(total),
		})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Count > ranking[j].Count
	})
	return ranking
}

// Letters returns the ranked letters as a string.
func (r Ranking) Letters() string {
	out := make([]rune, len(r))
	for i, lf := range r {
		out[i] = lf.Letter
	}
	return string(out)
}
