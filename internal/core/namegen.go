package core

import "math/rand/v2"

// Team rooms get two-word names like "hidden-sova" so operators can
// tell concurrent matches apart at a glance.

var nameAdjectives = []string{
	"angry", "bold", "brave", "calm", "clever", "crimson", "daring",
	"eager", "fierce", "frozen", "gentle", "hidden", "iron", "jolly",
	"keen", "lucky", "mighty", "nimble", "quiet", "rapid", "rogue",
	"silent", "solar", "swift", "vivid", "wild",
}

var nameAgents = []string{
	"jett", "phoenix", "raze", "viper", "cypher",
	"brimstone", "breach", "sage", "sova", "omen",
}

// TeamName returns a random adjective-agent pair.
func TeamName(rng *rand.Rand) string {
	adj := nameAdjectives[rng.IntN(len(nameAdjectives))]
	agent := nameAgents[rng.IntN(len(nameAgents))]
	return adj + "-" + agent
}

// TeamNamePair returns two distinct team names.
func TeamNamePair(rng *rand.Rand) (string, string) {
	a := TeamName(rng)
	b := TeamName(rng)
	for b == a {
		b = TeamName(rng)
	}
	return a, b
}
