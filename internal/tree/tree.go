// Package tree converts an indented tree-of-text description of steps
// into a flat list of (id, description, parent) triples. It knows nothing
// about goal stores: callers feed the triples into their own batch-commit
// path, where the usual cycle validation applies.
//
// Input looks like:
//
//	Goal: Build the thing
//	├── Step: Phase 1
//	│   ├── Step: Task A
//	│   └── Step: Task B
//	└── Step: Phase 2
//
// but the exact glyphs never matter: a line's depth is the length of its
// leading run of spaces, tabs, and connector characters, and its parent is
// the nearest preceding line with strictly smaller depth. Mixed bullet
// styles and inconsistent spacing still produce a stable parent
// assignment.
package tree

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAmbiguousRoot rejects a tree whose later lines sit at or above the
// header line's depth: the input would have more than one root and no
// consistent parent can be assigned.
var ErrAmbiguousRoot = errors.New("tree line is not nested under the header")

// Entry is one parsed node: a goal id, its description (possibly empty),
// and the id of the goal it is a prerequisite for.
type Entry struct {
	ID          string
	Description string
	Parent      string
}

// Expand parses stepsText into entries rooted at rootID. The first
// non-blank line is a human-readable header for the root goal — its text
// is discarded and rootID is used as the parent of the top-level children.
// Blank-only input yields no entries.
//
// Two lines parsing to the same id refer to the same goal: the caller
// unions their edges. Ids are verbatim (case and interior spacing
// preserved); no normalization beyond trimming is applied.
func Expand(stepsText, rootID string) ([]Entry, error) {
	type level struct {
		depth int
		id    string
	}

	var entries []Entry
	var stack []level
	headerSeen := false
	headerDepth := 0

	for i, line := range strings.Split(stepsText, "\n") {
		depth, content := splitIndent(line)
		if content == "" {
			continue
		}

		if !headerSeen {
			headerSeen = true
			headerDepth = depth
			stack = []level{{depth: depth, id: rootID}}
			continue
		}

		if depth <= headerDepth {
			return nil, fmt.Errorf("line %d: %w", i+1, ErrAmbiguousRoot)
		}

		for len(stack) > 0 && stack[len(stack)-1].depth >= depth {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1].id

		id, desc := splitLabel(content)
		if id == "" {
			continue
		}
		entries = append(entries, Entry{ID: id, Description: desc, Parent: parent})
		stack = append(stack, level{depth: depth, id: id})
	}

	return entries, nil
}

// splitIndent splits a line into its indentation depth and trimmed
// content. Depth counts leading runes that are whitespace or tree
// connector glyphs; which glyph appears where is irrelevant.
func splitIndent(line string) (int, string) {
	depth := 0
	for _, r := range line {
		if !isConnector(r) {
			break
		}
		depth++
	}
	rest := []rune(line)[depth:]
	return depth, strings.TrimSpace(string(rest))
}

// isConnector reports whether r belongs to a line's indentation prefix:
// plain whitespace, the Unicode box-drawing block, or common ASCII
// stand-ins for bullets and branches.
func isConnector(r rune) bool {
	if r == ' ' || r == '\t' {
		return true
	}
	if r >= 0x2500 && r <= 0x257F { // box drawing: │ ├ └ ─ …
		return true
	}
	switch r {
	case '|', '+', '`', '*', '-', '>':
		return true
	}
	return false
}

// splitLabel extracts a node's id and description from its content text.
//
// At most one leading single-word label ("Goal:", "Step:", "Task:", any
// one token followed by a colon) is stripped, then the remainder splits on
// its first colon: text before is the id, text after the description.
// Without a colon the whole text is the id.
//
//	"Step: Phase 1"                  → ("Phase 1", "")
//	"Phase 1: lay the groundwork"    → ("Phase 1", "lay the groundwork")
//	"Step: Phase 1: lay groundwork"  → ("Phase 1", "lay groundwork")
//	"Phase 1"                        → ("Phase 1", "")
func splitLabel(content string) (string, string) {
	if i := strings.Index(content, ":"); i >= 0 {
		head := strings.TrimSpace(content[:i])
		rest := strings.TrimSpace(content[i+1:])
		if head != "" && rest != "" && !strings.ContainsAny(head, " \t") {
			content = rest
		}
	}
	if i := strings.Index(content, ":"); i >= 0 {
		return strings.TrimSpace(content[:i]), strings.TrimSpace(content[i+1:])
	}
	return strings.TrimSpace(content), ""
}
