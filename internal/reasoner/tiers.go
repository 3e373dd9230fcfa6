package reasoner

import (
	"fmt"
	"strings"

	"github.com/wayfarer-ai/wayfarer/internal/entities"
)

const (
	maxTier = 4.0

	tierDepthWeight    = 0.3
	tierNeighborWeight = 0.3
	tierNameWeight     = 0.2
	tierDeathWeight    = 0.2

	// Neighbor average for the very first creature on a floor, before any
	// tier has been cached.
	tierNeighborDefault = 2.0
)

// dangerTokens are name fragments that mark a creature as high tier.
var dangerTokens = []string{
	"lord", "ancient", "demon", "dragon", "king", "queen",
	"grim", "infernal", "abyss", "elder",
}

// tierFor returns the tier for a creature, inferring and caching it on
// first sight. Tiers are in [0, 4]; the cache is never invalidated, a
// creature keeps the tier inferred where it was first seen.
func (r *Reasoner) tierFor(name string, x, y, z int, grid *entities.CellGrid) float64 {
	if tier, ok := r.tiers[name]; ok {
		return tier
	}

	depth := float64(z)
	if depth < 0 {
		depth = -depth
	}
	if depth > maxTier {
		depth = maxTier
	}

	neighbor := tierNeighborDefault
	if len(r.tiers) > 0 {
		sum := 0.0
		for _, t := range r.tiers {
			sum += t
		}
		neighbor = sum / float64(len(r.tiers))
	}

	nameScore := 0.0
	lower := strings.ToLower(name)
	for _, token := range dangerTokens {
		if strings.Contains(lower, token) {
			nameScore = maxTier
			break
		}
	}

	deathScore := 0.0
	if cell, ok := grid.At(x, y); ok {
		deathScore = float64(cell.DeathCount)
		if deathScore > maxTier {
			deathScore = maxTier
		}
	}

	tier := tierDepthWeight*depth +
		tierNeighborWeight*neighbor +
		tierNameWeight*nameScore +
		tierDeathWeight*deathScore
	if tier < 0 {
		tier = 0
	}
	if tier > maxTier {
		tier = maxTier
	}

	r.tiers[name] = tier
	r.logInference("tier", fmt.Sprintf("%s inferred tier %.2f at (%d,%d,%d)", name, tier, x, y, z))
	return tier
}

// difficultyFor buckets the sighting-weighted tier average of the
// creatures in the area.
func (r *Reasoner) difficultyFor(creatures map[string]int, x, y, z int, grid *entities.CellGrid) Difficulty {
	total := 0
	weighted := 0.0
	for name, count := range creatures {
		weighted += r.tierFor(name, x, y, z, grid) * float64(count)
		total += count
	}
	if total == 0 {
		return DifficultyEmpty
	}

	avg := weighted / float64(total)
	switch {
	case avg < 1:
		return DifficultyEasy
	case avg < 2:
		return DifficultyMedium
	case avg < 3:
		return DifficultyHard
	default:
		return DifficultyLethal
	}
}
