package models

// Person represents one participant splitting the receipt.
type Person struct {
	// ID is the unique identifier for the person within a receipt.
	ID string `json:"id"`

	// Name is the display name (e.g., "Alice").
	Name string `json:"name"`

	// Color is the display tag assigned when the person is created.
	Color string `json:"color"`
}
