package explorer

import (
	"fmt"
	"sort"

	"github.com/wayfarer-ai/wayfarer/internal/entities"
)

// synthesizeRoute turns a finished episode's waypoints into a reusable
// route: aggregated creature encounters ranked by frequency and a label
// derived from the waypoint centroid.
func (e *Explorer) synthesizeRoute(s *session) *entities.Route {
	encounters := make(map[string]int)
	sumX, sumY := 0, 0
	for _, w := range s.waypoints {
		sumX += w.X
		sumY += w.Y
		for name, n := range w.Creatures {
			encounters[name] += n
		}
	}

	targets := make([]entities.CreatureTarget, 0, len(encounters))
	for name, n := range encounters {
		targets = append(targets, entities.CreatureTarget{Name: name, Encounters: n})
	}
	sort.Slice(targets, func(i, j int) bool {
		if targets[i].Encounters != targets[j].Encounters {
			return targets[i].Encounters > targets[j].Encounters
		}
		return targets[i].Name < targets[j].Name
	})
	if len(targets) > routeTopCreatures {
		targets = targets[:routeTopCreatures]
	}

	cx := sumX / len(s.waypoints)
	cy := sumY / len(s.waypoints)

	return &entities.Route{
		ID:        e.idgen.Generate(),
		Label:     fmt.Sprintf("area_%d_%d_floor_%d", cx, cy, s.startZ),
		Z:         s.startZ,
		Waypoints: s.waypoints,
		Targets:   targets,
		CreatedAt: e.clock.Now(),
	}
}
