package t2048

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrRandomExhausted is returned by a SequenceSource that ran out of draws.
var ErrRandomExhausted = errors.New("t2048: random source exhausted")

// RandomSource supplies uniform draws in [0, 1).
// A failing source stops the spawn that asked for the draw.
type RandomSource interface {
	Float64() (float64, error)
}

// MathRandSource adapts a seeded math/rand generator.
type MathRandSource struct {
	rng *rand.Rand
}

// NewMathRandSource returns a source seeded with seed; equal seeds give
// equal spawn sequences.
func NewMathRandSource(seed int64) *MathRandSource {
	return &MathRandSource{rng: rand.New(rand.NewSource(seed))}
}

// Float64 never fails.
func (s *MathRandSource) Float64() (float64, error) {
	return s.rng.Float64(), nil
}

// SequenceSource replays a fixed list of draws, then fails with
// ErrRandomExhausted. Used for scripted games and tests.
type SequenceSource struct {
	draws []float64
	next  int
}

// NewSequenceSource returns a source that yields draws in order.
func NewSequenceSource(draws ...float64) *SequenceSource {
	return &SequenceSource{draws: draws}
}

// Float64 returns the next scripted draw.
func (s *SequenceSource) Float64() (float64, error) {
	if s.next >= len(s.draws) {
		return 0, ErrRandomExhausted
	}
	v := s.draws[s.next]
	s.next++
	if v < 0 || v >= 1 {
		return 0, fmt.Errorf("t2048: scripted draw %v outside [0, 1)", v)
	}
	return v, nil
}

// Remaining returns the number of unused draws.
func (s *SequenceSource) Remaining() int {
	return len(s.draws) - s.next
}

// intn maps a draw onto [0, n).
func intn(src RandomSource, n int) (int, error) {
	f, err := src.Float64()
	if err != nil {
		return 0, err
	}
	i := int(f * float64(n))
	if i >= n {
		i = n - 1
	}
	return i, nil
}

// shuffle permutes cells in place with Fisher-Yates, drawing once per
// position from the back, so every ordering is equally likely.
func shuffle(src RandomSource, cells []Pos) error {
	for i := len(cells) - 1; i > 0; i-- {
		j, err := intn(src, i+1)
		if err != nil {
			return err
		}
		cells[i], cells[j] = cells[j], cells[i]
	}
	return nil
}
