package state

// HistoryCapacity bounds both the undo and redo stacks.
const HistoryCapacity = 10

// History is a snapshot-based undo/redo stack. Every entry is a deep copy
// of the scene taken before a mutation.
type History struct {
	undoStack [][]Item
	redoStack [][]Item
}

// Push records a snapshot of the scene prior to a mutation. It clears the
// redo stack: history is linear.
func (h *History) Push(snapshot []Item) {
	h.undoStack = pushBounded(h.undoStack, CloneItems(snapshot))
	h.redoStack = h.redoStack[:0]
}

// Undo pops the most recent snapshot. The current scene is pushed onto the
// redo stack. It returns false when there is nothing to undo.
func (h *History) Undo(current []Item) ([]Item, bool) {
	if len(h.undoStack) == 0 {
		return nil, false
	}
	last := len(h.undoStack) - 1
	snap := h.undoStack[last]
	h.undoStack = h.undoStack[:last]
	h.redoStack = pushBounded(h.redoStack, CloneItems(current))
	return snap, true
}

// Redo is the inverse of Undo.
func (h *History) Redo(current []Item) ([]Item, bool) {
	if len(h.redoStack) == 0 {
		return nil, false
	}
	last := len(h.redoStack) - 1
	snap := h.redoStack[last]
	h.redoStack = h.redoStack[:last]
	h.undoStack = pushBounded(h.undoStack, CloneItems(current))
	return snap, true
}

func (h *History) Reset() {
	h.undoStack = nil
	h.redoStack = nil
}

func (h *History) UndoDepth() int { return len(h.undoStack) }
func (h *History) RedoDepth() int { return len(h.redoStack) }
func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// pushBounded appends snap and evicts the oldest entries past capacity.
func pushBounded(stack [][]Item, snap []Item) [][]Item {
	stack = append(stack, snap)
	if over := len(stack) - HistoryCapacity; over > 0 {
		stack = append(stack[:0], stack[over:]...)
	}
	return stack
}
