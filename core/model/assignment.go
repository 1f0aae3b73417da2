package model

import (
	"encoding/json"
	"fmt"
)

// Assignment is one committed visit segment: a coach meets a student from the
// given teacher's class starting at (Day, Slot). The tuple order defines the
// total ordering used by the store's sorted assignment list.
type Assignment struct {
	Day     int
	Slot    int
	Teacher GUID
	Student GUID
	Coach   GUID
}

// Less reports whether a sorts before o under tuple ordering.
func (a Assignment) Less(o Assignment) bool {
	if a.Day != o.Day {
		return a.Day < o.Day
	}
	if a.Slot != o.Slot {
		return a.Slot < o.Slot
	}
	if a.Teacher != o.Teacher {
		return a.Teacher < o.Teacher
	}
	if a.Student != o.Student {
		return a.Student < o.Student
	}
	return a.Coach < o.Coach
}

// MarshalJSON encodes the tuple as a five-element array, the on-disk form.
func (a Assignment) MarshalJSON() ([]byte, error) {
	return json.Marshal([5]int{a.Day, a.Slot, int(a.Teacher), int(a.Student), int(a.Coach)})
}

// UnmarshalJSON decodes the five-element array form.
func (a *Assignment) UnmarshalJSON(b []byte) error {
	var arr [5]int
	if err := json.Unmarshal(b, &arr); err != nil {
		return fmt.Errorf("assignment tuple: %w", err)
	}
	a.Day = arr[0]
	a.Slot = arr[1]
	a.Teacher = GUID(arr[2])
	a.Student = GUID(arr[3])
	a.Coach = GUID(arr[4])
	return nil
}

func (a Assignment) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d,%d)", a.Day, a.Slot, a.Teacher, a.Student, a.Coach)
}
