// Package state owns the canonical AppState and its undo history.
//
// Every change goes through Apply: the current state is snapshotted to a
// bounded history (capacity 50 by default), then replaced wholesale with the
// mutated document. Snapshots are deep copies, so they never alias live
// state. Undo pops the most recent snapshot; there is no redo.
//
// Each committed state is also written to a best-effort snapshot store.
// Persistence failures are logged, counted and swallowed; the in-memory
// state machine keeps working without it.
package state

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/splitsnap/splitsnap/internal/models"
	"github.com/splitsnap/splitsnap/internal/observability"
	"github.com/splitsnap/splitsnap/internal/storage"
)

// DefaultHistoryCapacity bounds the undo history.
const DefaultHistoryCapacity = 50

// personColors is the rotating palette assigned to new people.
var personColors = []string{"#22D3EE", "#8B5CF6", "#F97316", "#34D399", "#F472B6", "#EAB308", "#60A5FA"}

// ItemCandidate is a {name, price} pair produced by the scan parser, not yet
// part of the receipt.
type ItemCandidate struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ItemPatch is a partial LineItem update. Nil fields are left unchanged.
type ItemPatch struct {
	Name        *string   `json:"name,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	AssignedTo  *[]string `json:"assignedTo,omitempty"`
	SplitEvenly *bool     `json:"splitEvenly,omitempty"`
}

// Store holds the canonical AppState and its undo history. It is the only
// mutable component; mutations are serialized by a mutex so the HTTP host can
// call it from any goroutine.
type Store struct {
	mu        sync.Mutex
	state     models.AppState
	history   *history
	snapshots storage.Snapshots // nil disables persistence
}

// Option configures a Store.
type Option func(*Store)

// WithSnapshots attaches a best-effort persistence backend.
func WithSnapshots(snaps storage.Snapshots) Option {
	return func(s *Store) { s.snapshots = snaps }
}

// WithHistoryCapacity overrides the undo history bound.
func WithHistoryCapacity(n int) Option {
	return func(s *Store) { s.history = newHistory(n) }
}

// New creates a Store with a default state. When a snapshot backend is
// attached, a prior snapshot with the current schema version is restored;
// anything else is treated as no prior state.
func New(opts ...Option) *Store {
	s := &Store{
		state:   defaultState(),
		history: newHistory(DefaultHistoryCapacity),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.snapshots != nil {
		loaded, err := s.snapshots.Load(context.Background())
		if err != nil {
			slog.Warn("Failed to load state snapshot, starting fresh", "error", err)
		} else if loaded != nil && loaded.Version == models.StateVersion {
			s.state = loaded.Clone()
			slog.Info("Restored state snapshot", "last_updated", loaded.LastUpdated)
		}
	}
	return s
}

func defaultState() models.AppState {
	return models.AppState{
		Version:     models.StateVersion,
		Receipt:     models.DefaultReceipt(),
		LastUpdated: time.Now().UnixMilli(),
	}
}

// State returns a deep copy of the current AppState.
func (s *Store) State() models.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Receipt returns a deep copy of the current receipt.
func (s *Store) Receipt() models.Receipt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Receipt.Clone()
}

// HistoryLen reports how many undo steps are available.
func (s *Store) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.len()
}

// apply snapshots the current state, then commits the mutated receipt as the
// new current state. This is the only path for any change.
func (s *Store) apply(op string, mutate func(receipt models.Receipt) models.Receipt) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history.push(s.state.Clone())
	s.state = models.AppState{
		Version:     models.StateVersion,
		Receipt:     mutate(s.state.Receipt.Clone()),
		LastUpdated: time.Now().UnixMilli(),
	}
	observability.MutationsTotal.WithLabelValues(op).Inc()
	s.autosave()
}

// autosave persists the current state best-effort. Callers hold the mutex.
func (s *Store) autosave() {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.Save(context.Background(), s.state); err != nil {
		observability.SnapshotSaveFailures.Inc()
		slog.Warn("Failed to save state snapshot", "error", err)
	}
}

// Undo restores the most recent history snapshot. It reports false and leaves
// the state untouched when there is nothing to undo. Undo itself is not
// recorded; there is no redo.
func (s *Store) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.history.pop()
	if !ok {
		return false
	}
	s.state = prev
	observability.UndosTotal.Inc()
	s.autosave()
	return true
}

// Reset clears the history and restores a fresh default state.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history.clear()
	s.state = defaultState()
	s.autosave()
}

// HydrateFromSharedState merges a partial receipt over defaults and applies
// it as one mutation. Both link-import and file-import land here.
func (s *Store) HydrateFromSharedState(shared models.PartialReceipt) {
	s.apply("hydrate", func(models.Receipt) models.Receipt {
		return shared.Merge(models.DefaultReceipt())
	})
}

// SetVenue sets the venue name.
func (s *Store) SetVenue(venue string) {
	s.apply("set_venue", func(r models.Receipt) models.Receipt {
		r.Venue = venue
		return r
	})
}

// SetCurrency sets the display currency.
func (s *Store) SetCurrency(currency models.Currency) {
	s.apply("set_currency", func(r models.Receipt) models.Receipt {
		r.Currency = currency
		return r
	})
}

// SetRoundingMode sets the rounding policy.
func (s *Store) SetRoundingMode(mode models.RoundingMode) {
	s.apply("set_rounding", func(r models.Receipt) models.Receipt {
		r.RoundingMode = mode
		return r
	})
}

// SetExtras sets tax and tip. Non-finite or negative input is sanitized to 0.
func (s *Store) SetExtras(tax, tip float64) {
	s.apply("set_extras", func(r models.Receipt) models.Receipt {
		r.Tax = sanitizeAmount(tax)
		r.Tip = sanitizeAmount(tip)
		return r
	})
}

// SetPaidBy records who paid the receipt. Empty clears it.
func (s *Store) SetPaidBy(personID string) {
	s.apply("set_paid_by", func(r models.Receipt) models.Receipt {
		r.PaidBy = personID
		return r
	})
}

// AddPerson appends a person with a generated ID and a palette color. A blank
// name becomes "Person N".
func (s *Store) AddPerson(name string) models.Person {
	person := models.Person{ID: uuid.New().String()}
	s.apply("add_person", func(r models.Receipt) models.Receipt {
		person.Color = personColors[len(r.People)%len(personColors)]
		person.Name = strings.TrimSpace(name)
		if person.Name == "" {
			person.Name = defaultPersonName(len(r.People) + 1)
		}
		r.People = append(r.People, person)
		return r
	})
	return person
}

func defaultPersonName(n int) string {
	return "Person " + strconv.Itoa(n)
}

// RenamePerson updates a person's name; a blank name keeps the old one.
func (s *Store) RenamePerson(personID, name string) {
	s.apply("rename_person", func(r models.Receipt) models.Receipt {
		name = strings.TrimSpace(name)
		for i, p := range r.People {
			if p.ID == personID && name != "" {
				r.People[i].Name = name
			}
		}
		return r
	})
}

// RemovePerson drops the person and, within the same mutation, strips their
// ID from every item's assignment set. Assignments never dangle.
func (s *Store) RemovePerson(personID string) {
	s.apply("remove_person", func(r models.Receipt) models.Receipt {
		people := r.People[:0]
		for _, p := range r.People {
			if p.ID != personID {
				people = append(people, p)
			}
		}
		r.People = people
		for i, item := range r.Items {
			assigned := item.AssignedTo[:0]
			for _, id := range item.AssignedTo {
				if id != personID {
					assigned = append(assigned, id)
				}
			}
			r.Items[i].AssignedTo = assigned
		}
		return r
	})
}

// SetItems replaces the whole item list. Incoming items are sanitized:
// missing IDs are generated, prices clamped, assignments deduplicated and
// restricted to current people.
func (s *Store) SetItems(items []models.LineItem) {
	s.apply("set_items", func(r models.Receipt) models.Receipt {
		sanitized := make([]models.LineItem, len(items))
		for i, item := range items {
			if item.ID == "" {
				item.ID = uuid.New().String()
			}
			item.Name = itemName(item.Name)
			item.Price = sanitizeAmount(item.Price)
			item.AssignedTo = dedupeKnown(item.AssignedTo, r.People)
			sanitized[i] = item
		}
		r.Items = sanitized
		return r
	})
}

// AddItem appends an unassigned item with a generated ID. A blank name
// becomes "Item"; a non-finite or negative price becomes 0.
func (s *Store) AddItem(name string, price float64) models.LineItem {
	item := models.LineItem{
		ID:          uuid.New().String(),
		Name:        itemName(name),
		Price:       sanitizeAmount(price),
		AssignedTo:  []string{},
		SplitEvenly: true,
	}
	s.apply("add_item", func(r models.Receipt) models.Receipt {
		r.Items = append(r.Items, item)
		return r
	})
	return item
}

func itemName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Item"
	}
	return name
}

// UpdateItem applies a partial patch to one item. Unknown IDs are a no-op
// mutation (still recorded, like any other whole-document replacement).
func (s *Store) UpdateItem(itemID string, patch ItemPatch) {
	s.apply("update_item", func(r models.Receipt) models.Receipt {
		for i, item := range r.Items {
			if item.ID != itemID {
				continue
			}
			if patch.Name != nil {
				r.Items[i].Name = itemName(*patch.Name)
			}
			if patch.Price != nil {
				r.Items[i].Price = sanitizeAmount(*patch.Price)
			}
			if patch.AssignedTo != nil {
				r.Items[i].AssignedTo = dedupeKnown(*patch.AssignedTo, r.People)
			}
			if patch.SplitEvenly != nil {
				r.Items[i].SplitEvenly = *patch.SplitEvenly
			}
		}
		return r
	})
}

// RemoveItem deletes one item.
func (s *Store) RemoveItem(itemID string) {
	s.apply("remove_item", func(r models.Receipt) models.Receipt {
		items := r.Items[:0]
		for _, item := range r.Items {
			if item.ID != itemID {
				items = append(items, item)
			}
		}
		r.Items = items
		return r
	})
}

// ImportScannedItems appends fresh unassigned items for the scan candidates
// and adopts the guessed currency, all as one mutation.
func (s *Store) ImportScannedItems(candidates []ItemCandidate, currency models.Currency) {
	s.apply("import_scan", func(r models.Receipt) models.Receipt {
		for _, c := range candidates {
			r.Items = append(r.Items, models.LineItem{
				ID:          uuid.New().String(),
				Name:        itemName(c.Name),
				Price:       sanitizeAmount(c.Price),
				AssignedTo:  []string{},
				SplitEvenly: true,
			})
		}
		if currency != "" && currency != models.CurrencyUnknown {
			r.Currency = currency
		}
		return r
	})
}

// sanitizeAmount maps non-finite and negative input to 0. Currency amounts
// entering the store are never negative.
func sanitizeAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// dedupeKnown keeps only IDs of current people, once each, preserving order.
func dedupeKnown(ids []string, people []models.Person) []string {
	known := make(map[string]bool, len(people))
	for _, p := range people {
		known[p.ID] = true
	}
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if known[id] && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
