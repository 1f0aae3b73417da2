package model

import "testing"

func TestScheduleMarkWindow(t *testing.T) {
	s := NewSchedule(5, 28)
	s.MarkWindow(0, 2, 4, SlotAvailable)
	if s[0][1] != SlotUnavailable || s[0][2] != SlotAvailable || s[0][3] != SlotAvailable || s[0][4] != SlotUnavailable {
		t.Fatalf("unexpected day 0 row %v", s[0])
	}
	// Out-of-range windows clamp at the end of the day.
	s.MarkWindow(1, 26, 40, SlotCommitted)
	if s[1][26] != SlotCommitted || s[1][27] != SlotCommitted {
		t.Fatalf("unexpected day 1 row %v", s[1])
	}
}

func TestScheduleClone(t *testing.T) {
	s := NewSchedule(2, 4)
	s.MarkWindow(0, 0, 2, SlotAvailable)
	c := s.Clone()
	c.MarkWindow(0, 0, 2, SlotCommitted)
	if s[0][0] != SlotAvailable {
		t.Fatal("clone shares backing storage with original")
	}
}
