// Package cipher implements monoalphabetic substitution over the A-Z alphabet.
package cipher

import (
	"fmt"
	"strings"
)

// Alphabet is the ordered plaintext and ciphertext alphabet.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Placeholder marks a ciphertext letter that has no guessed plaintext letter.
const Placeholder = '_'

// Key maps plaintext letters to ciphertext letters.
type Key map[rune]rune

// GuessedKey maps ciphertext letters to guessed plaintext letters. It may be partial.
type GuessedKey map[rune]rune

// IsLetter reports whether r is one of the 26 uppercase alphabet letters.
func IsLetter(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// String returns the images of A..Z as a 26-letter string.
func (k Key) String() string {
	var b strings.Builder
	b.Grow(len(Alphabet))
	for _, r := range Alphabet {
		if img, ok := k[r]; ok {
			b.WriteRune(img)
		} else {
			b.WriteRune(Placeholder)
		}
	}
	return b.String()
}

// Validate checks that the key is a bijection over the alphabet.
func (k Key) Validate() error {
	if len(k) != len(Alphabet) {
		return fmt.Errorf("key defines %d letters, want %d", len(k), len(Alphabet))
	}
	seen := make(map[rune]rune, len(k))
	for _, r := range Alphabet {
		img, ok := k[r]
		if !ok {
			return fmt.Errorf("key has no image for %c", r)
		}
		if !IsLetter(img) {
			return fmt.Errorf("key maps %c to non-letter %q", r, img)
		}
		if prev, dup := seen[img]; dup {
			return fmt.Errorf("key maps both %c and %c to %c", prev, r, img)
		}
		seen[img] = r
	}
	return nil
}

// ParseKey parses the 26-letter form produced by Key.String.
func ParseKey(s string) (Key, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	runes := []rune(s)
	if len(runes) != len(Alphabet) {
		return nil, fmt.Errorf("key must have %d letters, got %d", len(Alphabet), len(runes))
	}
	key := make(Key, len(Alphabet))
	for i, r := range Alphabet {
		key[r] = runes[i]
	}
	if err := key.Validate(); err != nil {
		return nil, err
	}
	return key, nil
}

// Inverse returns the ciphertext-to-plaintext mapping of a full key.
func (k Key) Inverse() GuessedKey {
	inv := make(GuessedKey, len(k))
	for plain, enc := range k {
		inv[enc] = plain
	}
	return inv
}

// String lists the guessed mappings in alphabet order as "C>P" pairs.
func (g GuessedKey) String() string {
	parts := make([]string, 0, len(g))
	for _, r := range Alphabet {
		if p, ok := g[r]; ok {
			parts = append(parts, string([]rune{r, '>', p}))
		}
	}
	return strings.Join(parts, " ")
}
