package core

import (
	"errors"
	"math/rand/v2"

	"github.com/scrimkit/scrimbot/internal/domain"
)

var ErrInsufficientPool = errors.New("too few players")

// Teams is the result of partitioning a pool. A and B are disjoint and
// each has exactly the requested size. Extras is the unconsumed pool;
// it is never assigned to either side.
type Teams struct {
	A      []domain.Participant
	B      []domain.Participant
	Extras []domain.Participant
}

// Partition draws two teams of size players each from pool by uniform
// sampling without replacement. Draws alternate between the teams so
// both grow in lock-step. The pool is not mutated.
func Partition(pool []domain.Participant, size int, rng *rand.Rand) (Teams, error) {
	if len(pool) < size*2 {
		return Teams{}, ErrInsufficientPool
	}
	remaining := make([]domain.Participant, len(pool))
	copy(remaining, pool)

	take := func() domain.Participant {
		i := rng.IntN(len(remaining))
		p := remaining[i]
		remaining = append(remaining[:i], remaining[i+1:]...)
		return p
	}

	t := Teams{
		A: make([]domain.Participant, 0, size),
		B: make([]domain.Participant, 0, size),
	}
	for len(t.B) < size {
		t.A = append(t.A, take())
		t.B = append(t.B, take())
	}
	t.Extras = remaining
	return t, nil
}
