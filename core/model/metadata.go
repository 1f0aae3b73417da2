package model

import (
	"fmt"
	"strconv"
	"strings"
)

// DayNames lists the school days of the week in index order.
var DayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// Metadata describes the discretization of the school week into days and
// fixed-duration time slots. Start and end times use "HH:MM" 24-hour form.
type Metadata struct {
	MinutesPerSlot       int    `json:"minutes_per_slot"`
	MinutesPerAssignment int    `json:"minutes_per_assignment"`
	StartTime            string `json:"start_time"`
	EndTime              string `json:"end_time"`
}

// NewMetadata returns Metadata with the default school-day window.
func NewMetadata() Metadata {
	return Metadata{
		MinutesPerSlot:       15,
		MinutesPerAssignment: 30,
		StartTime:            "08:30",
		EndTime:              "15:30",
	}
}

// Validate checks that the window and durations are coherent.
func (m Metadata) Validate() error {
	if m.MinutesPerSlot <= 0 {
		return fmt.Errorf("minutes_per_slot must be positive")
	}
	if m.MinutesPerAssignment <= 0 {
		return fmt.Errorf("minutes_per_assignment must be positive")
	}
	start, err := parseClock(m.StartTime)
	if err != nil {
		return fmt.Errorf("start_time: %w", err)
	}
	end, err := parseClock(m.EndTime)
	if err != nil {
		return fmt.Errorf("end_time: %w", err)
	}
	if end <= start {
		return fmt.Errorf("end_time %s not after start_time %s", m.EndTime, m.StartTime)
	}
	return nil
}

// NumDays returns the number of school days in a week.
func (m Metadata) NumDays() int { return len(DayNames) }

// NumSlots returns the number of slots between the start and end times.
func (m Metadata) NumSlots() int {
	start, _ := parseClock(m.StartTime)
	end, _ := parseClock(m.EndTime)
	return (end - start) / m.MinutesPerSlot
}

// SlotsPerAssignment returns how many contiguous slots one visit segment
// occupies: ceil(assignment duration / slot duration).
func (m Metadata) SlotsPerAssignment() int {
	return (m.MinutesPerAssignment + m.MinutesPerSlot - 1) / m.MinutesPerSlot
}

// TimeToSlot converts a clock string to a slot index. Times before the start
// of the window are assumed to be PM and shifted by twelve hours; times past
// the end of the window are an error.
func (m Metadata) TimeToSlot(s string) (int, error) {
	t, err := parseClock(s)
	if err != nil {
		return 0, err
	}
	start, _ := parseClock(m.StartTime)
	end, _ := parseClock(m.EndTime)
	if t < start {
		t += 12 * 60
	}
	if t > end {
		return 0, fmt.Errorf("time %s falls outside window %s-%s", s, m.StartTime, m.EndTime)
	}
	return (t - start) / m.MinutesPerSlot, nil
}

// SlotToTime converts a slot index back to a clock string. Hours past noon
// are rendered on a twelve-hour clock, matching the registration forms.
func (m Metadata) SlotToTime(slot int) string {
	start, _ := parseClock(m.StartTime)
	t := start + slot*m.MinutesPerSlot
	hours := t / 60
	minutes := t % 60
	if hours > 12 {
		hours -= 12
	}
	return fmt.Sprintf("%d:%02d", hours, minutes)
}

// DayName returns the name for a day index.
func (m Metadata) DayName(day int) string { return DayNames[day] }

// DayIndex returns the index for a day name.
func (m Metadata) DayIndex(name string) (int, error) {
	for i, d := range DayNames {
		if d == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown day %q", name)
}

// parseClock parses "H:MM" or "HH:MM" into minutes since midnight.
func parseClock(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return hours*60 + minutes, nil
}
