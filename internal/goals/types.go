// Package goals implements the per-workspace goal dependency graph:
// goal records, the mutation protocol that keeps the graph acyclic,
// completion-state propagation, and the topological planner.
//
// The package follows the same design principles as the rest of the server:
//   - SRP: types, validation, propagation, and planning in separate files
//   - every exported operation is atomic with respect to the store
//   - recoverable failures are typed errors; invariant violations panic
package goals

import "strings"

// Goal is a named unit of work with a completion flag and a set of
// prerequisite goal ids ("steps"). Prerequisites may reference ids that
// have no record yet — such references are legal but flagged by
// feasibility queries.
type Goal struct {
	ID          string
	Description string
	Completed   bool
	Prereqs     map[string]struct{}
}

// HasPrereq reports whether id is a direct prerequisite of the goal.
func (g *Goal) HasPrereq(id string) bool {
	_, ok := g.Prereqs[id]
	return ok
}

// clone returns a deep copy of the goal.
func (g *Goal) clone() *Goal {
	c := &Goal{
		ID:          g.ID,
		Description: g.Description,
		Completed:   g.Completed,
		Prereqs:     make(map[string]struct{}, len(g.Prereqs)),
	}
	for p := range g.Prereqs {
		c.Prereqs[p] = struct{}{}
	}
	return c
}

// Spec is one entry of a batch define/update operation.
//
// Prerequisites name this goal's own steps. RequiredFor names goals that
// this goal is a step *for* (reverse edges); both forms normalize to the
// same forward edge set before validation. StepsText, when present, is an
// indented tree elaborating this goal's steps (see the tree package).
type Spec struct {
	ID            string
	Description   string
	Prerequisites []string
	RequiredFor   []string
	StepsText     string
}

// DefineResult reports the outcome of a committed batch define.
type DefineResult struct {
	// Defined lists the ids explicitly named by the batch, in batch order.
	Defined []string
	// AutoCreated lists step goals created as a side effect (tree expansion
	// and reverse-edge placeholders), in first-created order.
	AutoCreated []string
	// Undefined lists prerequisite ids referenced anywhere in the committed
	// graph that have no record. A warning, not an error.
	Undefined []string
}

// AddResult reports the outcome of a committed edge addition.
type AddResult struct {
	// Added lists the prerequisite ids newly wired to the target goal.
	Added []string
	// Existing lists requested prerequisite ids that were already present.
	Existing []string
	// Created lists prerequisite ids that had no record and were created
	// as empty-description placeholders.
	Created []string
}

// Notification identifies a goal that became ready as a consequence of a
// completion, carrying its description for display. Readiness is advisory:
// completion stays an explicit caller action.
type Notification struct {
	ID          string
	Description string
}

// MarkResult reports a completion-state change. Unlike edge mutations,
// state changes are independent per goal, so a batch can partially succeed.
type MarkResult struct {
	// Updated lists the named goals whose flag actually changed.
	Updated []string
	// Unchanged lists named goals already in the requested state.
	Unchanged []string
	// Unknown lists named ids with no record; reported per id, never fatal.
	Unknown []string
	// BecameReady lists dependents whose prerequisites are now all complete
	// (mark-complete only).
	BecameReady []Notification
	// Cascaded lists goals beyond the named ones that were forced back to
	// incomplete by the reopen cascade (mark-incomplete only).
	Cascaded []string
}

// State classifies a goal id on demand. The five states are mutually
// exclusive and exhaustive for any id.
type State string

const (
	// StateUndefined: the id has no record.
	StateUndefined State = "UNDEFINED"
	// StateComplete: the goal is marked completed. Terminal.
	StateComplete State = "COMPLETE"
	// StateNeedsDefinition: the goal's prerequisite closure references an
	// id with no record.
	StateNeedsDefinition State = "NEEDS_DEFINITION"
	// StateReady: every direct prerequisite exists and is complete.
	StateReady State = "READY"
	// StateBlocked: well-defined, but at least one prerequisite incomplete.
	StateBlocked State = "BLOCKED"
)

// Assessment is the feasibility readout for one goal.
type Assessment struct {
	ID    string
	State State
	// Incomplete lists direct prerequisites that have a record but are not
	// complete.
	Incomplete []string
	// UndefinedPrereqs lists closure ids with no record.
	UndefinedPrereqs []string
	// NeedsDetail lists recorded closure goals with empty descriptions —
	// the "needs more definition" advisory signal.
	NeedsDetail []string
	// ClosureDone and ClosureTotal count completed vs all recorded goals in
	// the closure, target included.
	ClosureDone  int
	ClosureTotal int
}

// Action is what a plan step asks the caller to do.
type Action string

const (
	// ActionComplete: do the work and mark the goal complete.
	ActionComplete Action = "COMPLETE"
	// ActionDefine: the id is referenced but has no record; define it.
	ActionDefine Action = "DEFINE"
)

// PlanStep is one entry of an ordered execution plan.
type PlanStep struct {
	ID          string
	Description string
	Action      Action
}

// ValidateID rejects ids that cannot name a goal. Ids are otherwise opaque:
// case and interior whitespace are significant and no normalization is
// applied.
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errEmptyID
	}
	return nil
}
