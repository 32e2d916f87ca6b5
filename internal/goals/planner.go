package goals

// closure collects every id reachable from start over prerequisite edges,
// start included, without stopping at completed goals. Returned ids may or
// may not have records.
func (g *graph) closure(start string) map[string]struct{} {
	seen := map[string]struct{}{start: {}}
	stack := []string{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		goal, ok := g.goals[id]
		if !ok {
			continue
		}
		for p := range goal.Prereqs {
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			stack = append(stack, p)
		}
	}
	return seen
}

// Assess classifies one goal id on demand. The classification is a pure
// function of the committed graph; nothing is stored.
func (s *Store) Assess(id string) *Assessment {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := &Assessment{ID: id}
	goal, ok := s.g.goals[id]
	if !ok {
		a.State = StateUndefined
		return a
	}

	for cid := range s.g.closure(id) {
		member, recorded := s.g.goals[cid]
		if !recorded {
			a.UndefinedPrereqs = append(a.UndefinedPrereqs, cid)
			continue
		}
		a.ClosureTotal++
		if member.Completed {
			a.ClosureDone++
		}
		if cid != id && member.Description == "" {
			a.NeedsDetail = append(a.NeedsDetail, cid)
		}
	}
	for p := range goal.Prereqs {
		if pg, ok := s.g.goals[p]; ok && !pg.Completed {
			a.Incomplete = append(a.Incomplete, p)
		}
	}
	s.g.bySeq(a.Incomplete)
	s.g.bySeq(a.UndefinedPrereqs)
	s.g.bySeq(a.NeedsDetail)

	switch {
	case goal.Completed:
		a.State = StateComplete
	case len(a.UndefinedPrereqs) > 0:
		a.State = StateNeedsDefinition
	case s.g.allPrereqsDone(goal):
		a.State = StateReady
	default:
		a.State = StateBlocked
	}
	return a
}

// Plan produces the ordered sequence of not-yet-complete goals in the
// transitive prerequisite closure of the target, target included, such
// that every goal appears after all of its prerequisites. Ties between
// unordered goals break by first-declared order, so repeated calls on an
// unchanged graph return the same plan. Undefined prerequisite ids appear
// as DEFINE placeholder steps in their topological position.
//
// maxSteps > 0 truncates the plan to its first maxSteps entries
// (closest-to-ready first) without reordering. Planning never mutates the
// store. The target itself must have a record (*UnknownGoalError
// otherwise); a fully-completed closure yields an empty plan.
func (s *Store) Plan(id string, maxSteps int) ([]PlanStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.g.goals[id]; !ok {
		return nil, &UnknownGoalError{ID: id}
	}

	nodes := s.g.closure(id)

	// Kahn's algorithm over the closure subgraph: a node is available once
	// all of its in-closure prerequisites are scheduled. Undefined ids have
	// no prerequisites and surface first. Completed goals participate in
	// the ordering (they can sit between incomplete goals) but are dropped
	// from the emitted plan.
	pending := make(map[string]int, len(nodes))
	for n := range nodes {
		if goal, ok := s.g.goals[n]; ok {
			pending[n] = len(goal.Prereqs)
		} else {
			pending[n] = 0
		}
	}

	var order []string
	scheduled := make(map[string]struct{}, len(nodes))
	for len(order) < len(nodes) {
		pick := ""
		for n, deg := range pending {
			if deg != 0 {
				continue
			}
			if _, done := scheduled[n]; done {
				continue
			}
			if pick == "" || s.g.seq[n] < s.g.seq[pick] {
				pick = n
			}
		}
		if pick == "" {
			// The validator admits only acyclic graphs; a stuck walk means
			// a committed graph is cyclic, which is a bug, not bad input.
			panic("goals: committed graph is cyclic")
		}
		scheduled[pick] = struct{}{}
		order = append(order, pick)
		for _, depID := range s.g.dependentsOf(pick) {
			if _, in := nodes[depID]; in {
				pending[depID]--
			}
		}
	}

	var plan []PlanStep
	for _, n := range order {
		goal, ok := s.g.goals[n]
		switch {
		case !ok:
			plan = append(plan, PlanStep{ID: n, Action: ActionDefine})
		case !goal.Completed:
			plan = append(plan, PlanStep{ID: n, Description: goal.Description, Action: ActionComplete})
		}
	}
	if maxSteps > 0 && len(plan) > maxSteps {
		plan = plan[:maxSteps]
	}
	return plan, nil
}
