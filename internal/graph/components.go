package graph

import (
	"cmp"
	"slices"
)

// Unassigned marks a node that no traversal has reached yet.
const Unassigned = -1

// SizeCount is one histogram bucket: Count components have Size members.
type SizeCount struct {
	Size  int `json:"size"`
	Count int `json:"count"`
}

// Labeling assigns each node of a Graph a connected-component id.
// Component ids are dense, starting at 0, and numbered in the order of each
// component's smallest actor id.
type Labeling struct {
	graph  *Graph
	labels []int // node index → component id
	sizes  []int // component id → member count
}

// LabelComponents partitions g into connected components. Seeds are taken in
// ascending actor id order and each component is flooded breadth-first before
// the next seed is considered, so labels are reproducible across runs.
func LabelComponents(g *Graph) *Labeling {
	n := g.NodeCount()
	labels := make([]int, n)
	for i := range labels {
		labels[i] = Unassigned
	}

	var sizes []int
	queue := make([]int, 0, 64)
	for seed := 0; seed < n; seed++ {
		if labels[seed] != Unassigned {
			continue
		}
		id := len(sizes)
		labels[seed] = id
		queue = append(queue[:0], seed)
		for head := 0; head < len(queue); head++ {
			for _, e := range g.adj[queue[head]] {
				if labels[e.To] == Unassigned {
					labels[e.To] = id
					queue = append(queue, e.To)
				}
			}
		}
		sizes = append(sizes, len(queue))
	}
	return &Labeling{graph: g, labels: labels, sizes: sizes}
}

// Label returns the component id of an actor.
func (l *Labeling) Label(actorID string) (int, bool) {
	i, ok := l.graph.Lookup(actorID)
	if !ok {
		return Unassigned, false
	}
	return l.labels[i], true
}

// LabelOf returns the component id of node index i.
func (l *Labeling) LabelOf(i int) int {
	return l.labels[i]
}

// Count returns the number of components.
func (l *Labeling) Count() int {
	return len(l.sizes)
}

// Size returns the member count of component id, 0 if it does not exist.
func (l *Labeling) Size(id int) int {
	if id < 0 || id >= len(l.sizes) {
		return 0
	}
	return l.sizes[id]
}

// Largest returns the size of the biggest component.
func (l *Labeling) Largest() int {
	if len(l.sizes) == 0 {
		return 0
	}
	return slices.Max(l.sizes)
}

// Members returns the actors of component id in ascending id order.
func (l *Labeling) Members(id int) []Actor {
	var out []Actor
	for i, lbl := range l.labels {
		if lbl == id {
			out = append(out, l.graph.actors[i])
		}
	}
	return out
}

// Histogram groups components by size. Buckets are ordered by count
// ascending, then size descending, so the giant component comes first and
// the long tail of small ones last.
func (l *Labeling) Histogram() []SizeCount {
	bySize := make(map[int]int)
	for _, s := range l.sizes {
		bySize[s]++
	}
	out := make([]SizeCount, 0, len(bySize))
	for size, count := range bySize {
		out = append(out, SizeCount{Size: size, Count: count})
	}
	slices.SortFunc(out, func(a, b SizeCount) int {
		if c := cmp.Compare(a.Count, b.Count); c != 0 {
			return c
		}
		return cmp.Compare(b.Size, a.Size)
	})
	return out
}
