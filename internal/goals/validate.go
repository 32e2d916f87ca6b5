package goals

import "sort"

// findCycles runs Tarjan's strongly-connected-components algorithm over
// the prerequisite edge set and returns the ids participating in at least
// one cycle: members of SCCs of size > 1, plus self-loops. An empty result
// means the graph is a DAG.
//
// Edges to ids without records are ignored — an undefined prerequisite has
// no outgoing edges and can never lie on a cycle.
//
// The traversal is iterative (explicit frame stack) so pathological chains
// cannot overflow the goroutine stack.
func (g *graph) findCycles() []string {
	index := make(map[string]int, len(g.goals))
	lowlink := make(map[string]int, len(g.goals))
	onStack := make(map[string]bool, len(g.goals))
	var stack []string
	next := 0

	var cyclic []string

	type frame struct {
		id    string
		edges []string // unvisited neighbors, deterministic order
	}

	neighbors := func(id string) []string {
		var out []string
		for p := range g.goals[id].Prereqs {
			if _, ok := g.goals[p]; ok {
				out = append(out, p)
			}
		}
		sort.Strings(out)
		return out
	}

	// Roots in sorted order so reported sets are stable across runs.
	roots := make([]string, 0, len(g.goals))
	for id := range g.goals {
		roots = append(roots, id)
	}
	sort.Strings(roots)

	for _, root := range roots {
		if _, visited := index[root]; visited {
			continue
		}

		frames := []frame{{id: root, edges: neighbors(root)}}
		index[root] = next
		lowlink[root] = next
		next++
		stack = append(stack, root)
		onStack[root] = true

		for len(frames) > 0 {
			f := &frames[len(frames)-1]

			if len(f.edges) > 0 {
				n := f.edges[0]
				f.edges = f.edges[1:]
				if _, visited := index[n]; !visited {
					index[n] = next
					lowlink[n] = next
					next++
					stack = append(stack, n)
					onStack[n] = true
					frames = append(frames, frame{id: n, edges: neighbors(n)})
				} else if onStack[n] {
					if index[n] < lowlink[f.id] {
						lowlink[f.id] = index[n]
					}
				}
				continue
			}

			// Frame exhausted: maybe an SCC root, then propagate lowlink.
			if lowlink[f.id] == index[f.id] {
				var scc []string
				for {
					top := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[top] = false
					scc = append(scc, top)
					if top == f.id {
						break
					}
				}
				if len(scc) > 1 || g.goals[scc[0]].HasPrereq(scc[0]) {
					cyclic = append(cyclic, scc...)
				}
			}

			frames = frames[:len(frames)-1]
			if len(frames) > 0 {
				parent := &frames[len(frames)-1]
				if lowlink[f.id] < lowlink[parent.id] {
					lowlink[parent.id] = lowlink[f.id]
				}
			}
		}
	}

	sort.Strings(cyclic)
	return cyclic
}
