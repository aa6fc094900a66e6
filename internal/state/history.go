package state

import "github.com/splitsnap/splitsnap/internal/models"

// history is a bounded deque of prior AppState snapshots, most recent first.
// Pushing beyond capacity evicts the oldest snapshot; popping removes and
// returns the most recent one. It exists solely to support undo.
type history struct {
	snapshots []models.AppState
	capacity  int
}

func newHistory(capacity int) *history {
	return &history{capacity: capacity}
}

func (h *history) push(s models.AppState) {
	if h.capacity <= 0 {
		return
	}
	if len(h.snapshots) == h.capacity {
		h.snapshots = h.snapshots[:h.capacity-1]
	}
	h.snapshots = append([]models.AppState{s}, h.snapshots...)
}

// pop removes and returns the most recent snapshot, or false when empty.
func (h *history) pop() (models.AppState, bool) {
	if len(h.snapshots) == 0 {
		return models.AppState{}, false
	}
	top := h.snapshots[0]
	h.snapshots = h.snapshots[1:]
	return top, true
}

func (h *history) clear() {
	h.snapshots = nil
}

func (h *history) len() int {
	return len(h.snapshots)
}
