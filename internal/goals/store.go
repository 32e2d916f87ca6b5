package goals

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/conductor-mcp/conductor/internal/tree"
)

// graph is the mutable state of one workspace: the id → record map, the
// materialized reverse-edge index, and first-sight sequence numbers used
// for deterministic ordering.
//
// revDeps is keyed by prerequisite id and covers referenced-but-undefined
// ids too, so that edge symmetry survives a prerequisite being defined
// after it was first referenced.
type graph struct {
	goals   map[string]*Goal
	revDeps map[string]map[string]struct{}
	seq     map[string]int
	nextSeq int
}

func newGraph() graph {
	return graph{
		goals:   make(map[string]*Goal),
		revDeps: make(map[string]map[string]struct{}),
		seq:     make(map[string]int),
	}
}

func (g *graph) clone() *graph {
	c := &graph{
		goals:   make(map[string]*Goal, len(g.goals)),
		revDeps: make(map[string]map[string]struct{}, len(g.revDeps)),
		seq:     make(map[string]int, len(g.seq)),
		nextSeq: g.nextSeq,
	}
	for id, goal := range g.goals {
		c.goals[id] = goal.clone()
	}
	for id, deps := range g.revDeps {
		m := make(map[string]struct{}, len(deps))
		for d := range deps {
			m[d] = struct{}{}
		}
		c.revDeps[id] = m
	}
	for id, n := range g.seq {
		c.seq[id] = n
	}
	return c
}

// touch assigns a sequence number the first time an id is seen, whether as
// a record or as a bare prerequisite reference.
func (g *graph) touch(id string) {
	if _, ok := g.seq[id]; !ok {
		g.seq[id] = g.nextSeq
		g.nextSeq++
	}
}

// upsert creates or updates a record. overwriteDesc controls whether an
// existing record's description is replaced (explicit batch entries) or
// kept (auto-created placeholders with nothing to say).
func (g *graph) upsert(id, description string, overwriteDesc bool) *Goal {
	g.touch(id)
	if goal, ok := g.goals[id]; ok {
		if overwriteDesc || (goal.Description == "" && description != "") {
			goal.Description = description
		}
		return goal
	}
	goal := &Goal{ID: id, Description: description, Prereqs: make(map[string]struct{})}
	g.goals[id] = goal
	return goal
}

// addEdge records p as a prerequisite of goalID on both endpoints.
// The forward record must already exist.
func (g *graph) addEdge(goalID, prereqID string) {
	goal := g.goals[goalID]
	goal.Prereqs[prereqID] = struct{}{}
	g.touch(prereqID)
	deps, ok := g.revDeps[prereqID]
	if !ok {
		deps = make(map[string]struct{})
		g.revDeps[prereqID] = deps
	}
	deps[goalID] = struct{}{}
}

// bySeq sorts ids in place by first-sight order.
func (g *graph) bySeq(ids []string) {
	sort.Slice(ids, func(i, j int) bool { return g.seq[ids[i]] < g.seq[ids[j]] })
}

// undefinedRefs returns every prerequisite id referenced by some record
// that has no record itself, in first-sight order.
func (g *graph) undefinedRefs() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, goal := range g.goals {
		for p := range goal.Prereqs {
			if _, ok := g.goals[p]; ok {
				continue
			}
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	g.bySeq(out)
	return out
}

// Store is the goal graph of one workspace. All exported operations take
// the store's lock for their full duration, giving each call the
// one-exclusive-writer-per-workspace discipline; there is no cross-call
// state beyond the committed graph.
type Store struct {
	mu sync.Mutex
	g  graph
}

// NewStore creates an empty goal store.
func NewStore() *Store {
	return &Store{g: newGraph()}
}

// Define applies a batch of goal specifications atomically: every record
// and edge in the batch commits, or none do. New ids create records;
// existing ids update the description and union in new prerequisite edges
// (edges are never removed by this operation). Duplicate ids within one
// batch resolve last-write-wins. Reverse (RequiredFor) edges and tree
// (StepsText) expansions normalize into the same forward edge set before
// the cycle check runs.
//
// A detected cycle aborts the whole batch with a *CycleError enumerating
// the participating ids. References to undefined prerequisite ids do not
// block the commit; they are reported in DefineResult.Undefined.
func (s *Store) Define(batch []Spec) (*DefineResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.g.clone()
	res := &DefineResult{}
	defined := make(map[string]struct{})
	auto := make(map[string]struct{})

	noteAuto := func(id string) {
		if _, isBatch := defined[id]; isBatch {
			return
		}
		if _, dup := auto[id]; dup {
			return
		}
		auto[id] = struct{}{}
		res.AutoCreated = append(res.AutoCreated, id)
	}

	for _, spec := range batch {
		if err := ValidateID(spec.ID); err != nil {
			return nil, err
		}
		w.upsert(spec.ID, spec.Description, true)
		if _, dup := defined[spec.ID]; !dup {
			defined[spec.ID] = struct{}{}
			res.Defined = append(res.Defined, spec.ID)
		}

		for _, p := range spec.Prerequisites {
			if strings.TrimSpace(p) == "" {
				continue
			}
			w.addEdge(spec.ID, p)
		}

		// Reverse edges: spec.ID is a prerequisite *for* each named goal.
		// The forward record has to exist to carry the edge.
		for _, r := range spec.RequiredFor {
			if strings.TrimSpace(r) == "" {
				continue
			}
			if _, ok := w.goals[r]; !ok {
				w.upsert(r, "", false)
				noteAuto(r)
			}
			w.addEdge(r, spec.ID)
		}

		if strings.TrimSpace(spec.StepsText) != "" {
			entries, err := tree.Expand(spec.StepsText, spec.ID)
			if err != nil {
				return nil, fmt.Errorf("expanding steps for goal %q: %w", spec.ID, err)
			}
			for _, e := range entries {
				if _, ok := w.goals[e.ID]; !ok {
					w.upsert(e.ID, e.Description, false)
					noteAuto(e.ID)
				} else if e.Description != "" {
					w.upsert(e.ID, e.Description, false)
				}
				w.addEdge(e.Parent, e.ID)
			}
		}
	}

	if cyclic := w.findCycles(); len(cyclic) > 0 {
		return nil, &CycleError{IDs: cyclic}
	}

	s.g = *w
	res.Undefined = s.g.undefinedRefs()
	return res, nil
}

// AddPrereqs adds prerequisite edges to an existing goal. The target must
// already have a record (*UnknownGoalError otherwise — a hard error,
// unlike the soft undefined-prerequisite warning). Prerequisite ids with
// no record are created as empty-description placeholder goals. The call
// is atomic: a cycle rejects every edge in it with a *CycleError.
func (s *Store) AddPrereqs(goalID string, prereqIDs []string) (*AddResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.g.goals[goalID]; !ok {
		return nil, &UnknownGoalError{ID: goalID}
	}

	w := s.g.clone()
	res := &AddResult{}
	for _, p := range prereqIDs {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if w.goals[goalID].HasPrereq(p) {
			res.Existing = append(res.Existing, p)
			continue
		}
		if _, ok := w.goals[p]; !ok {
			w.upsert(p, "", false)
			res.Created = append(res.Created, p)
		}
		w.addEdge(goalID, p)
		res.Added = append(res.Added, p)
	}

	if cyclic := w.findCycles(); len(cyclic) > 0 {
		return nil, &CycleError{IDs: cyclic}
	}

	s.g = *w
	return res, nil
}

// Get returns a snapshot copy of one goal record.
func (s *Store) Get(id string) (*Goal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	goal, ok := s.g.goals[id]
	if !ok {
		return nil, false
	}
	return goal.clone(), true
}

// Dependents returns the ids of goals that list id as a prerequisite, in
// first-declared order.
func (s *Store) Dependents(id string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.g.dependentsOf(id)
}

func (g *graph) dependentsOf(id string) []string {
	var out []string
	for d := range g.revDeps[id] {
		out = append(out, d)
	}
	g.bySeq(out)
	return out
}

// IDs returns every recorded goal id in first-declared order.
func (s *Store) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.g.goals))
	for id := range s.g.goals {
		out = append(out, id)
	}
	s.g.bySeq(out)
	return out
}

// Len returns the number of recorded goals.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.g.goals)
}

// Reset clears the store. Test isolation only.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.g = newGraph()
}
