package entity

// SlotStatus classifies a single grid slot in an availability response.
type SlotStatus string

const (
	SlotStatusAvailable    SlotStatus = "available"
	SlotStatusBooked       SlotStatus = "booked"
	SlotStatusOutsideHours SlotStatus = "outside_hours"
)

// Slot is a derived, non-persisted value describing one grid start time.
// It is regenerated on every availability query and has no lifecycle of its own.
type Slot struct {
	Time   ClockTime  `json:"time"`
	Label  string     `json:"label"`
	Status SlotStatus `json:"status"`
}
