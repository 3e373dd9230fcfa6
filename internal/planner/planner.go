// Package planner implements danger-weighted A* over the explored,
// walkable subgraph of one floor.
package planner

import (
	"container/heap"

	"github.com/wayfarer-ai/wayfarer/internal/entities"
	"github.com/wayfarer-ai/wayfarer/internal/errors"
)

const (
	defaultNodeBudget = 200

	cardinalCost = 1.0
	diagonalCost = 1.414

	// Cells above this danger score cost extra to enter when avoidance is
	// on. The penalty is steep but finite: a dangerous chokepoint stays
	// routable when there is no alternative.
	dangerThreshold = 0.3
	dangerWeight    = 5.0
)

// Config holds the planner configuration.
type Config struct {
	// NodeBudget caps node expansions per search; the search aborts and
	// returns an empty path once spent.
	NodeBudget int
}

// Validate validates the Config.
func (c *Config) Validate() error {
	if c.NodeBudget < 0 {
		return errors.InvalidArgument("NodeBudget must not be negative")
	}
	return nil
}

// Planner searches paths over floor snapshots. It never routes through
// unexplored cells; extending into the unknown is the explorer's job.
type Planner struct {
	budget int
}

// New creates a new planner
func New(cfg *Config) (*Planner, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	budget := cfg.NodeBudget
	if budget == 0 {
		budget = defaultNodeBudget
	}
	return &Planner{budget: budget}, nil
}

// FindPath returns a path from start to goal over the grid's explored,
// walkable cells, start and goal inclusive. An empty result means no
// route was found within budget; callers fall back to direct-bearing
// movement, this is not an error.
func (p *Planner) FindPath(grid *entities.CellGrid, start, goal entities.Point, avoidDanger bool) []entities.Point {
	if start == goal {
		return []entities.Point{start}
	}
	if !grid.IsWalkable(goal.X, goal.Y) {
		return nil
	}

	open := &openList{}
	heap.Init(open)
	heap.Push(open, &node{point: start, fScore: entities.EuclideanDist(start, goal)})

	gScore := map[entities.Point]float64{start: 0}
	cameFrom := make(map[entities.Point]entities.Point)
	closed := make(map[entities.Point]bool)

	expansions := 0
	for open.Len() > 0 {
		current := heap.Pop(open).(*node)
		if current.point == goal {
			return reconstruct(cameFrom, goal)
		}
		if closed[current.point] {
			continue
		}
		closed[current.point] = true

		expansions++
		if expansions > p.budget {
			return nil
		}

		for _, off := range entities.Neighbors8 {
			next := entities.Point{X: current.point.X + off.X, Y: current.point.Y + off.Y}
			if closed[next] || !grid.IsWalkable(next.X, next.Y) {
				continue
			}

			cost := cardinalCost
			if off.X != 0 && off.Y != 0 {
				cost = diagonalCost
			}
			if avoidDanger {
				if danger := grid.Danger(next.X, next.Y); danger > dangerThreshold {
					cost += danger * dangerWeight
				}
			}

			tentative := gScore[current.point] + cost
			if best, seen := gScore[next]; seen && tentative >= best {
				continue
			}
			gScore[next] = tentative
			cameFrom[next] = current.point
			heap.Push(open, &node{
				point:  next,
				fScore: tentative + entities.EuclideanDist(next, goal),
			})
		}
	}

	return nil
}

func reconstruct(cameFrom map[entities.Point]entities.Point, goal entities.Point) []entities.Point {
	path := []entities.Point{goal}
	p := goal
	for {
		prev, ok := cameFrom[p]
		if !ok {
			break
		}
		path = append(path, prev)
		p = prev
	}
	// Reverse in place.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// node is an open-list entry. seq breaks f-score ties in insertion order
// so searches are deterministic.
type node struct {
	point  entities.Point
	fScore float64
	seq    int
	index  int
}

type openList struct {
	nodes   []*node
	nextSeq int
}

func (l *openList) Len() int { return len(l.nodes) }

func (l *openList) Less(i, j int) bool {
	if l.nodes[i].fScore != l.nodes[j].fScore {
		return l.nodes[i].fScore < l.nodes[j].fScore
	}
	return l.nodes[i].seq < l.nodes[j].seq
}

func (l *openList) Swap(i, j int) {
	l.nodes[i], l.nodes[j] = l.nodes[j], l.nodes[i]
	l.nodes[i].index = i
	l.nodes[j].index = j
}

func (l *openList) Push(x interface{}) {
	n := x.(*node)
	n.seq = l.nextSeq
	l.nextSeq++
	n.index = len(l.nodes)
	l.nodes = append(l.nodes, n)
}

func (l *openList) Pop() interface{} {
	old := l.nodes
	n := old[len(old)-1]
	old[len(old)-1] = nil
	l.nodes = old[:len(old)-1]
	return n
}

// PathCost returns the total cost of a path under the planner's cost
// model, for comparing alternatives in tests and route ranking.
func PathCost(grid *entities.CellGrid, path []entities.Point, avoidDanger bool) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		step := cardinalCost
		if path[i].X != path[i-1].X && path[i].Y != path[i-1].Y {
			step = diagonalCost
		}
		if avoidDanger {
			if danger := grid.Danger(path[i].X, path[i].Y); danger > dangerThreshold {
				step += danger * dangerWeight
			}
		}
		total += step
	}
	return total
}
