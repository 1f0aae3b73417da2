package model

// Slot cell states in a Schedule matrix.
const (
	SlotUnavailable = 0
	SlotAvailable   = 1
	SlotCommitted   = 2
)

// Schedule is a day-by-slot availability matrix. Cells hold
// SlotUnavailable, SlotAvailable, or SlotCommitted.
type Schedule [][]int

// NewSchedule returns an all-unavailable matrix of the given dimensions.
func NewSchedule(days, slots int) Schedule {
	s := make(Schedule, days)
	for i := range s {
		s[i] = make([]int, slots)
	}
	return s
}

// Clone returns a deep copy of the matrix.
func (s Schedule) Clone() Schedule {
	out := make(Schedule, len(s))
	for i, day := range s {
		out[i] = make([]int, len(day))
		copy(out[i], day)
	}
	return out
}

// MarkWindow sets [from, to) on the given day to the supplied state.
func (s Schedule) MarkWindow(day, from, to, state int) {
	for slot := from; slot < to && slot < len(s[day]); slot++ {
		s[day][slot] = state
	}
}
