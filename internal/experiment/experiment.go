// Package experiment runs the frequency-analysis attack over several message lengths.
package experiment

import (
	"fmt"
	"os"
	"strings"

	"github.com/verte-zerg/subcrack/internal/attack"
	"github.com/verte-zerg/subcrack/internal/cipher"
	"github.com/verte-zerg/subcrack/internal/generator"
	"github.com/verte-zerg/subcrack/internal/model"
	"github.com/verte-zerg/subcrack/internal/stats"
)

// DefaultSentence is repeated to build the built-in sample text.
const DefaultSentence = "CRYPTOGRAPHY IS THE PRACTICE AND STUDY OF TECHNIQUES " +
	"FOR SECURE COMMUNICATION IN THE PRESENCE OF ADVERSARIES "

// DefaultRepeat is how many times DefaultSentence is repeated.
const DefaultRepeat = 20

// DefaultLengths returns the message lengths measured by default.
func DefaultLengths() []int {
	return []int{50, 100, 300, 600, 1000}
}

// Trace records every stage of one attack.
type Trace struct {
	Plaintext   string
	Ciphertext  string
	Ranking     attack.Ranking
	Guess       cipher.GuessedKey
	Decrypted   string
	SuccessRate float64
}

// Result is the outcome of one experiment run.
type Result struct {
	Key     cipher.Key
	Results []model.ExperimentResult
	Traces  []Trace
}

// SampleText uppercases sentence and repeats it the given number of times.
func SampleText(sentence string, repeat int) string {
	if repeat < 1 {
		repeat = 1
	}
	return strings.Repeat(strings.ToUpper(sentence), repeat)
}

// LoadSample reads a sample file and repeats its contents.
func LoadSample(path string, repeat int) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read sample: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("sample file %s is empty", path)
	}
	return SampleText(text+" ", repeat), nil
}

// Prefix returns the first n runes of text, or all of it when shorter.
func Prefix(text string, n int) string {
	return Window(text, 0, n)
}

// Window returns n runes of text starting at rune offset off.
func Window(text string, off, n int) string {
	runes := []rune(text)
	if off < 0 {
		off = 0
	}
	if off > len(runes) {
		off = len(runes)
	}
	end := off + n
	if n < 0 || end > len(runes) {
		end = len(runes)
	}
	return string(runes[off:end])
}

// Attack encrypts plaintext with key and tries to recover it from frequencies alone.
func Attack(plaintext string, key cipher.Key) Trace {
	ciphertext := cipher.Encrypt(plaintext, key)
	ranking := attack.FrequencyAnalysis(ciphertext)
	guess := attack.GuessKey(ranking)
	decrypted := cipher.Decrypt(ciphertext, guess)
	return Trace{
		Plaintext:   plaintext,
		Ciphertext:  ciphertext,
		Ranking:     ranking,
		Guess:       guess,
		Decrypted:   decrypted,
		SuccessRate: stats.SuccessRate(plaintext, decrypted),
	}
}

// Run generates one key and attacks the first L runes of sample for each length, in order.
func Run(gen *generator.Generator, sample string, lengths []int) Result {
	key := gen.GenerateKey()
	res := Result{
		Key:     key,
		Results: make([]model.ExperimentResult, 0, len(lengths)),
		Traces:  make([]Trace, 0, len(lengths)),
	}
	for _, l := range lengths {
		trace := Attack(Prefix(sample, l), key)
		res.Traces = append(res.Traces, trace)
		res.Results = append(res.Results, model.ExperimentResult{
			Length:      l,
			SuccessRate: trace.SuccessRate,
		})
	}
	return res
}
