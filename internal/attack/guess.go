package attack

import "github.com/verte-zerg/subcrack/internal/cipher"

// ReferenceOrder is the typical descending letter frequency of English text.
const ReferenceOrder = "ETAOINSHRDLCUMWFGYPBVKJXQZ"

var referenceRunes = []rune(ReferenceOrder)

// GuessKey aligns the ciphertext ranking with ReferenceOrder position by position.
// Letters missing from the ranking get no guess.
func GuessKey(ranking Ranking) cipher.GuessedKey {
	n := len(ranking)
	if n > len(referenceRunes) {
		n = len(referenceRunes)
	}
	guess := make(cipher.GuessedKey, n)
	for i := 0; i < n; i++ {
		guess[ranking[i].Letter] = referenceRunes[i]
	}
	return guess
}
