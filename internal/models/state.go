package models

// StateVersion is the persisted AppState schema version.
const StateVersion = 1

// AppState is the root persisted and undoable unit.
type AppState struct {
	// Version is the schema version, always StateVersion. Snapshots with a
	// different version are ignored on load.
	Version int `json:"v"`

	// Receipt is the canonical receipt document.
	Receipt Receipt `json:"receipt"`

	// LastUpdated is the epoch-millisecond timestamp of the last committed
	// mutation.
	LastUpdated int64 `json:"lastUpdated"`
}

// Clone returns a deep copy of the state.
func (s AppState) Clone() AppState {
	out := s
	out.Receipt = s.Receipt.Clone()
	return out
}
