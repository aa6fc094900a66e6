// Package models defines the core domain models for SplitSnap.
//
// # Models
//
//   - Receipt: The full bill being split (items, people, extras, settings)
//   - LineItem: One purchased product/service with a price and an assignment set
//   - Person: A participant the bill is split among
//   - AppState: The root persisted and undoable unit wrapping a Receipt
//
// People are local to a single receipt and identified by generated IDs; there
// are no user accounts. Receipts reference people only through those IDs
// (never pointers), and removing a person cascades through every item's
// assignment set so an ID in AssignedTo always resolves.
//
// # Design Principles
//
//  1. **Value semantics**: components receive Receipt values and return newly
//     computed values; nothing outside the state store mutates a Receipt.
//  2. **Stable wire shape**: JSON field names match the persisted and shared
//     payloads of the SplitSnap frontend (camelCase, version field "v").
//  3. **Avoid circular references**: IDs instead of pointers for relationships.
package models
