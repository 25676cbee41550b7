package stats

import "github.com/verte-zerg/subcrack/internal/cipher"

// SuccessRate returns the percentage of original alphabet letters that the
// decrypted text reproduces at the same position. Text without letters scores 0.
func SuccessRate(original, decrypted string) float64 {
	orig := []rune(original)
	dec := []rune(decrypted)
	n := len(orig)
	if len(dec) < n {
		n = len(dec)
	}
	correct, total := 0, 0
	for i := 0; i < n; i++ {
		if !cipher.IsLetter(orig[i]) {
			continue
		}
		total++
		if dec[i] == orig[i] {
			correct++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}
