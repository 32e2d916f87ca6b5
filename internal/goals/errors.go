package goals

import (
	"errors"
	"fmt"
	"strings"
)

var errEmptyID = errors.New("goal id must not be empty")

// CycleError rejects a batch define or edge addition that would make the
// prerequisite graph cyclic. IDs enumerates every goal participating in at
// least one detected cycle (members of strongly-connected components of
// size > 1, plus self-loops), sorted for stable reporting. The mutation was
// rolled back in full; the caller must remove an edge and retry.
type CycleError struct {
	IDs []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("operation would create a dependency deadlock among: %s",
		strings.Join(e.IDs, ", "))
}

// UnknownGoalError reports an operation that named a goal id with no
// record where a record is required (edge-addition targets, plan targets).
// Distinct from the soft undefined-prerequisite warning.
type UnknownGoalError struct {
	ID string
}

func (e *UnknownGoalError) Error() string {
	return fmt.Sprintf("goal %q not found", e.ID)
}
