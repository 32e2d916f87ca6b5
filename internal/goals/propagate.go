package goals

// MarkComplete sets completed on each named goal that exists. State
// changes are independent per goal: unknown ids are reported in
// MarkResult.Unknown without aborting the rest of the batch.
//
// For every goal that transitioned, each dependent whose prerequisites are
// now all recorded and complete is surfaced in BecameReady. Readiness is
// advisory only — dependents are never auto-completed. A goal may be
// marked complete while its own prerequisites are incomplete or undefined;
// completion is caller-asserted, not inferred.
func (s *Store) MarkComplete(ids []string) *MarkResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := &MarkResult{}
	var transitioned []string
	for _, id := range ids {
		goal, ok := s.g.goals[id]
		switch {
		case !ok:
			res.Unknown = append(res.Unknown, id)
		case goal.Completed:
			res.Unchanged = append(res.Unchanged, id)
		default:
			goal.Completed = true
			res.Updated = append(res.Updated, id)
			transitioned = append(transitioned, id)
		}
	}

	notified := make(map[string]struct{})
	for _, id := range transitioned {
		for _, depID := range s.g.dependentsOf(id) {
			if _, dup := notified[depID]; dup {
				continue
			}
			dep, ok := s.g.goals[depID]
			if !ok || dep.Completed || !s.g.allPrereqsDone(dep) {
				continue
			}
			notified[depID] = struct{}{}
			res.BecameReady = append(res.BecameReady, Notification{
				ID:          dep.ID,
				Description: dep.Description,
			})
		}
	}
	return res
}

// allPrereqsDone reports whether every prerequisite of the goal has a
// record and is complete.
func (g *graph) allPrereqsDone(goal *Goal) bool {
	for p := range goal.Prereqs {
		pg, ok := g.goals[p]
		if !ok || !pg.Completed {
			return false
		}
	}
	return true
}

// MarkIncomplete reopens each named goal that exists and cascades: every
// goal transitively reachable over dependent edges from a named goal is
// forced back to incomplete, because a completed goal must never have an
// incomplete transitive prerequisite. The cascade is unconditional and
// visits each goal at most once, so diamond-shaped graphs are walked in
// linear time.
//
// The cascade runs from every named goal whether or not it transitioned:
// a completed dependent of an already-open goal is an invariant violation
// this operation exists to repair.
func (s *Store) MarkIncomplete(ids []string) *MarkResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := &MarkResult{}
	visited := make(map[string]struct{})
	var queue []string
	for _, id := range ids {
		goal, ok := s.g.goals[id]
		switch {
		case !ok:
			res.Unknown = append(res.Unknown, id)
			continue
		case goal.Completed:
			goal.Completed = false
			res.Updated = append(res.Updated, id)
		default:
			res.Unchanged = append(res.Unchanged, id)
		}
		if _, dup := visited[id]; !dup {
			visited[id] = struct{}{}
			queue = append(queue, id)
		}
	}

	// Reverse-reachability walk over dependent edges.
	named := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		named[id] = struct{}{}
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, depID := range s.g.dependentsOf(id) {
			if _, dup := visited[depID]; dup {
				continue
			}
			visited[depID] = struct{}{}
			queue = append(queue, depID)
			dep, ok := s.g.goals[depID]
			if !ok {
				continue
			}
			if dep.Completed {
				dep.Completed = false
				if _, isNamed := named[depID]; !isNamed {
					res.Cascaded = append(res.Cascaded, depID)
				}
			}
		}
	}
	s.g.bySeq(res.Cascaded)
	return res
}
