package core

import (
	"errors"
	"math/rand/v2"
)

var ErrUnsupportedGame = errors.New("unsupported game")

// MapPool holds the fixed per-game map lists. Unknown games are a
// reported condition, never a panic; callers abort match creation
// before any room is touched.
type MapPool struct {
	games map[string][]string
}

// DefaultMaps is the pool used when configuration provides none.
func DefaultMaps() map[string][]string {
	return map[string][]string{
		"valorant": {"Split", "Bind", "Haven"},
	}
}

func NewMapPool(games map[string][]string) *MapPool {
	pools := make(map[string][]string, len(games))
	for game, maps := range games {
		if len(maps) == 0 {
			continue
		}
		pools[game] = append([]string(nil), maps...)
	}
	return &MapPool{games: pools}
}

// Pick returns one map drawn uniformly from the game's pool.
func (p *MapPool) Pick(game string, rng *rand.Rand) (string, error) {
	maps, ok := p.games[game]
	if !ok {
		return "", ErrUnsupportedGame
	}
	return maps[rng.IntN(len(maps))], nil
}

// Supports reports whether the game has a map pool.
func (p *MapPool) Supports(game string) bool {
	_, ok := p.games[game]
	return ok
}
