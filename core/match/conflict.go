package match

import (
	"fmt"

	"github.com/readingcorps/rsmatch/core/model"
)

// ConflictKind classifies why a candidate assignment clashes with committed
// state.
type ConflictKind int

const (
	// SlotOccupied: the coach or student is not free for the full span.
	SlotOccupied ConflictKind = iota
	// StudentAlreadyAssigned: the student already has a committed assignment.
	StudentAlreadyAssigned
	// CoachDoubleBookedSameDay: the coach already visits this school at the
	// same day and slot.
	CoachDoubleBookedSameDay
	// CoachCrossSchoolConflictSameDay: the coach already visits a different
	// school on the same day.
	CoachCrossSchoolConflictSameDay
	// DuplicateAssignment: the identical tuple is already committed.
	DuplicateAssignment
)

func (k ConflictKind) String() string {
	switch k {
	case SlotOccupied:
		return "slot occupied"
	case StudentAlreadyAssigned:
		return "student already assigned"
	case CoachDoubleBookedSameDay:
		return "coach double-booked same day"
	case CoachCrossSchoolConflictSameDay:
		return "coach at another school same day"
	case DuplicateAssignment:
		return "duplicate assignment"
	}
	return "unknown conflict"
}

// ConflictError is returned by AssignmentStore.Check when a candidate tuple
// clashes with committed state.
type ConflictError struct {
	Kind       ConflictKind
	Assignment model.Assignment
	Detail     string
}

func (e *ConflictError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Assignment)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Assignment, e.Detail)
}
