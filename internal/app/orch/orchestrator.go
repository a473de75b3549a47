// Package orch holds the match lifecycle controller. A match moves
// Forming -> Active -> Completed/Expired; Forming never touches the
// registry, and once a match leaves Active its id is dead for good.
package orch

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/scrimkit/scrimbot/internal/app"
	"github.com/scrimkit/scrimbot/internal/core"
	"github.com/scrimkit/scrimbot/internal/domain"
)

// Settings are the knobs the lifecycle controller honors. One canonical
// team size; no per-command drift.
type Settings struct {
	TeamSize       int
	AnnounceExtras bool
	MatchTTL       time.Duration
	CategoryName   domain.RoomName
	WaitingRoom    domain.RoomName
}

// Controller orchestrates partitioning, map selection, provisioning and
// relocation into the two-phase start/complete workflows.
type Controller struct {
	Registry *app.Registry
	Rooms    *app.Provisioner
	Movers   *app.Relocator
	Platform core.Platform
	Maps     *core.MapPool
	Clock    core.Clock
	NewID    core.IDSource
	Settings Settings

	// Rand may be set by tests for deterministic draws; defaults to a
	// time-seeded PCG on first use.
	Rand *rand.Rand

	randMu sync.Mutex
}

// draw runs f with the controller's random source held. rand.Rand is
// not safe for concurrent use.
func (c *Controller) draw(f func(rng *rand.Rand)) {
	c.randMu.Lock()
	defer c.randMu.Unlock()
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
	}
	f(c.Rand)
}
