package engine

import (
	"crypto/rand"
	"io"
	"math/big"
	mrand "math/rand/v2"
)

// RandomSource picks an index in [0, n). It is the only source of
// randomness the engine uses, so tests can inject a deterministic one.
type RandomSource interface {
	Intn(n int) int
}

// RandomFunc adapts a plain function to RandomSource.
type RandomFunc func(n int) int

// Intn calls f(n).
func (f RandomFunc) Intn(n int) int { return f(n) }

// CryptoSource draws from the operating system entropy pool. When the pool
// cannot be read every draw is 0, which yields a degenerate but valid board.
type CryptoSource struct {
	// Reader overrides crypto/rand.Reader when set.
	Reader io.Reader
}

// Intn returns a uniform index in [0, n), or 0 if entropy is unavailable.
func (s CryptoSource) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	r := s.Reader
	if r == nil {
		r = rand.Reader
	}
	v, err := rand.Int(r, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

// SeededSource returns a reproducible source; equal seeds give equal games.
// It is not safe for concurrent use.
func SeededSource(seed uint64) RandomSource {
	return seededSource{r: mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

type seededSource struct {
	r *mrand.Rand
}

func (s seededSource) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	return s.r.IntN(n)
}

func drawIndex(rng RandomSource, n int) int {
	if n <= 1 || rng == nil {
		return 0
	}
	i := rng.Intn(n)
	if i < 0 || i >= n {
		return 0
	}
	return i
}

func drawValue(rng RandomSource) int {
	return SpawnValues[drawIndex(rng, len(SpawnValues))]
}

// Spawn places a 2 or 4 (equal odds) into an empty cell chosen uniformly at
// random. A full board is left untouched and Spawn reports false.
func (b *Board) Spawn(rng RandomSource) bool {
	empty := make([]*int, 0, CellCount)
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			if b.cells[i][j] == 0 {
				empty = append(empty, &b.cells[i][j])
			}
		}
	}
	if len(empty) == 0 {
		return false
	}

	cell := empty[drawIndex(rng, len(empty))]
	*cell = drawValue(rng)
	return true
}
