package history

import "time"

// BeginGroup starts a group. Operations recorded until the matching EndGroup
// form a single undo entry. Nested calls join the outer group.
func (h *History) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.depth == 0 {
		h.groupName = name
		h.groupOps = nil
	}
	h.depth++
}

// EndGroup finishes a group. An empty group leaves no entry.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.depth == 0 {
		return
	}
	h.depth--
	if h.depth > 0 {
		return
	}

	if len(h.groupOps) > 0 {
		h.pushLocked(&undoEntry{
			name:      h.groupName,
			ops:       h.groupOps,
			timestamp: time.Now(),
		})
	}
	h.groupOps = nil
}

// IsGrouping returns true if currently in a group.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.depth > 0
}

// GroupScope provides a convenient way to group edits using defer:
//
//	func indent(doc *document.Document) {
//	    defer doc.History().GroupScope("Indent").End()
//	    // ... multiple edits ...
//	}
type GroupScope struct {
	history *History
	active  bool
}

// GroupScope starts a new group scope.
func (h *History) GroupScope(name string) *GroupScope {
	h.BeginGroup(name)
	return &GroupScope{
		history: h,
		active:  true,
	}
}

// End ends the group scope.
// Safe to call multiple times; only the first call has effect.
func (g *GroupScope) End() {
	if g.active {
		g.history.EndGroup()
		g.active = false
	}
}
