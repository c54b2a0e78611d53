package domain

import "time"

// AvailabilitySlot is one bookable interval in a master's schedule for a
// given date. Slots drive capacity reporting only, never order visibility.
type AvailabilitySlot struct {
	ID        uint
	MasterID  uint
	Date      time.Time
	StartTime string
	EndTime   string
}
