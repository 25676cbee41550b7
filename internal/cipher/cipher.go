package cipher

import "strings"

// Encrypt uppercases plaintext and substitutes every alphabet letter through key.
// Other runes pass through unchanged.
func Encrypt(plaintext string, key Key) string {
	upper := strings.ToUpper(plaintext)
	var b strings.Builder
	b.Grow(len(upper))
	for _, r := range upper {
		if IsLetter(r) {
			b.WriteRune(key[r])
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Decrypt applies a guessed key. Letters without a guess become Placeholder.
func Decrypt(ciphertext string, guess GuessedKey) string {
	var b strings.Builder
	b.Grow(len(ciphertext))
	for _, r := range ciphertext {
		if p, ok := guess[r]; ok {
			b.WriteRune(p)
			continue
		}
		if IsLetter(r) {
			b.WriteRune(Placeholder)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
