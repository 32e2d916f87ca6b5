package goals

import (
	"reflect"
	"testing"
)

func notificationIDs(ns []Notification) []string {
	var out []string
	for _, n := range ns {
		out = append(out, n.ID)
	}
	return out
}

func TestMarkComplete_Basic(t *testing.T) {
	s := NewStore()
	mustDefine(t, s,
		Spec{ID: "a", Description: "a"},
		Spec{ID: "b", Description: "b"},
	)

	res := s.MarkComplete([]string{"a", "b"})
	if !reflect.DeepEqual(res.Updated, []string{"a", "b"}) {
		t.Errorf("Updated = %v", res.Updated)
	}
	a, _ := s.Get("a")
	if !a.Completed {
		t.Error("a not completed")
	}

	// Marking again is a no-op reported as Unchanged.
	res = s.MarkComplete([]string{"a"})
	if len(res.Updated) != 0 || !reflect.DeepEqual(res.Unchanged, []string{"a"}) {
		t.Errorf("repeat mark: %+v", res)
	}
}

func TestMarkComplete_UnknownIDsDoNotAbort(t *testing.T) {
	s := NewStore()
	mustDefine(t, s, Spec{ID: "a", Description: "a"})

	res := s.MarkComplete([]string{"ghost", "a"})
	if !reflect.DeepEqual(res.Unknown, []string{"ghost"}) {
		t.Errorf("Unknown = %v", res.Unknown)
	}
	if !reflect.DeepEqual(res.Updated, []string{"a"}) {
		t.Errorf("Updated = %v", res.Updated)
	}
}

func TestMarkComplete_BecameReady(t *testing.T) {
	s := NewStore()
	mustDefine(t, s,
		Spec{ID: "base", Description: "shared prerequisite"},
		Spec{ID: "dep1", Description: "first dependent", Prerequisites: []string{"base"}},
		Spec{ID: "dep2", Description: "second dependent", Prerequisites: []string{"base"}},
	)

	res := s.MarkComplete([]string{"base"})
	if got := notificationIDs(res.BecameReady); !reflect.DeepEqual(got, []string{"dep1", "dep2"}) {
		t.Errorf("BecameReady = %v, want [dep1 dep2]", got)
	}
	if res.BecameReady[0].Description != "first dependent" {
		t.Errorf("notification description = %q", res.BecameReady[0].Description)
	}
}

func TestMarkComplete_NotReadyDependentsExcluded(t *testing.T) {
	s := NewStore()
	mustDefine(t, s,
		Spec{ID: "a", Description: "a"},
		Spec{ID: "b", Description: "b"},
		Spec{ID: "both", Description: "needs a and b", Prerequisites: []string{"a", "b"}},
		Spec{ID: "ghostly", Description: "one prereq undefined", Prerequisites: []string{"a", "missing"}},
		Spec{ID: "done", Description: "already complete", Prerequisites: []string{"a"}},
	)
	s.MarkComplete([]string{"done"})

	// Completing a leaves: both still missing b, ghostly missing a record,
	// done already complete. Nobody becomes ready.
	res := s.MarkComplete([]string{"a"})
	if len(res.BecameReady) != 0 {
		t.Errorf("BecameReady = %v, want none", notificationIDs(res.BecameReady))
	}

	// Completing b unblocks both.
	res = s.MarkComplete([]string{"b"})
	if got := notificationIDs(res.BecameReady); !reflect.DeepEqual(got, []string{"both"}) {
		t.Errorf("BecameReady = %v, want [both]", got)
	}
}

func TestMarkComplete_ReadyNotificationOnce(t *testing.T) {
	s := NewStore()
	mustDefine(t, s,
		Spec{ID: "a", Description: "a"},
		Spec{ID: "b", Description: "b"},
		Spec{ID: "dep", Description: "needs both", Prerequisites: []string{"a", "b"}},
	)

	// Both prerequisites complete in one batch: dep is notified once even
	// though it is a dependent of each.
	res := s.MarkComplete([]string{"a", "b"})
	if got := notificationIDs(res.BecameReady); !reflect.DeepEqual(got, []string{"dep"}) {
		t.Errorf("BecameReady = %v, want [dep]", got)
	}
}

func TestMarkIncomplete_Cascade(t *testing.T) {
	s := NewStore()
	mustDefine(t, s,
		Spec{ID: "c", Description: "bottom"},
		Spec{ID: "b", Description: "middle", Prerequisites: []string{"c"}},
		Spec{ID: "a", Description: "top", Prerequisites: []string{"b"}},
	)
	s.MarkComplete([]string{"a", "b", "c"})

	// Reopening the bottom forces everything above it open.
	res := s.MarkIncomplete([]string{"c"})
	if !reflect.DeepEqual(res.Updated, []string{"c"}) {
		t.Errorf("Updated = %v", res.Updated)
	}
	if !reflect.DeepEqual(res.Cascaded, []string{"b", "a"}) {
		t.Errorf("Cascaded = %v, want [b a]", res.Cascaded)
	}
	for _, id := range []string{"a", "b", "c"} {
		g, _ := s.Get(id)
		if g.Completed {
			t.Errorf("%s still completed after cascade", id)
		}
	}
}

func TestMarkIncomplete_CascadeStopsDownward(t *testing.T) {
	s := NewStore()
	mustDefine(t, s,
		Spec{ID: "c", Description: "bottom"},
		Spec{ID: "b", Description: "middle", Prerequisites: []string{"c"}},
		Spec{ID: "a", Description: "top", Prerequisites: []string{"b"}},
	)
	s.MarkComplete([]string{"a", "b", "c"})

	// Reopening the middle touches the top but never its own prerequisites.
	res := s.MarkIncomplete([]string{"b"})
	if !reflect.DeepEqual(res.Cascaded, []string{"a"}) {
		t.Errorf("Cascaded = %v, want [a]", res.Cascaded)
	}
	c, _ := s.Get("c")
	if !c.Completed {
		t.Error("prerequisite c was reopened by the cascade")
	}
}

func TestMarkIncomplete_DiamondVisitedOnce(t *testing.T) {
	s := NewStore()
	mustDefine(t, s,
		Spec{ID: "base", Description: "base"},
		Spec{ID: "left", Description: "left", Prerequisites: []string{"base"}},
		Spec{ID: "right", Description: "right", Prerequisites: []string{"base"}},
		Spec{ID: "top", Description: "top", Prerequisites: []string{"left", "right"}},
	)
	s.MarkComplete([]string{"base", "left", "right", "top"})

	res := s.MarkIncomplete([]string{"base"})
	if !reflect.DeepEqual(res.Cascaded, []string{"left", "right", "top"}) {
		t.Errorf("Cascaded = %v, want [left right top]", res.Cascaded)
	}
}

func TestMarkIncomplete_AlreadyOpenStillCascades(t *testing.T) {
	s := NewStore()
	mustDefine(t, s,
		Spec{ID: "base", Description: "base"},
		Spec{ID: "dep", Description: "dep", Prerequisites: []string{"base"}},
	)
	// dep completed while base is open: the graph is already inconsistent.
	s.MarkComplete([]string{"dep"})

	res := s.MarkIncomplete([]string{"base"})
	if !reflect.DeepEqual(res.Unchanged, []string{"base"}) {
		t.Errorf("Unchanged = %v", res.Unchanged)
	}
	if !reflect.DeepEqual(res.Cascaded, []string{"dep"}) {
		t.Errorf("Cascaded = %v, want [dep]", res.Cascaded)
	}
	dep, _ := s.Get("dep")
	if dep.Completed {
		t.Error("dep still completed")
	}
}

func TestMarkIncomplete_NamedIDsNotListedAsCascaded(t *testing.T) {
	s := NewStore()
	mustDefine(t, s,
		Spec{ID: "base", Description: "base"},
		Spec{ID: "dep", Description: "dep", Prerequisites: []string{"base"}},
	)
	s.MarkComplete([]string{"base", "dep"})

	res := s.MarkIncomplete([]string{"base", "dep"})
	if !reflect.DeepEqual(res.Updated, []string{"base", "dep"}) {
		t.Errorf("Updated = %v", res.Updated)
	}
	if len(res.Cascaded) != 0 {
		t.Errorf("Cascaded = %v, want none", res.Cascaded)
	}
}
