// Package generator builds random substitution keys and sample windows.
package generator

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/subcrack/internal/cipher"
)

// Generator produces random keys from its own source.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// GenerateKey returns a uniformly random permutation of the alphabet zipped against A..Z.
func (g *Generator) GenerateKey() cipher.Key {
	images := []rune(cipher.Alphabet)
	g.rnd.Shuffle(len(images), func(i, j int) {
		images[i], images[j] = images[j], images[i]
	})
	key := make(cipher.Key, len(images))
	for i, r := range cipher.Alphabet {
		key[r] = images[i]
	}
	return key
}

// Offset picks a uniform start position for a window of length n inside total runes.
func (g *Generator) Offset(total, n int) int {
	if n >= total || total <= 0 {
		return 0
	}
	return g.rnd.Intn(total - n + 1)
}

// Int63 exposes the underlying source for deriving child seeds.
func (g *Generator) Int63() int64 {
	return g.rnd.Int63()
}
