package model

import (
	"encoding/json"
	"testing"
)

func TestAssignmentLess(t *testing.T) {
	base := Assignment{Day: 1, Slot: 4, Teacher: 300001, Student: 100001, Coach: 200001}
	cases := []struct {
		other Assignment
		want  bool
	}{
		{base, false},
		{Assignment{Day: 2, Slot: 0, Teacher: 0, Student: 0, Coach: 0}, true},
		{Assignment{Day: 1, Slot: 5, Teacher: 0, Student: 0, Coach: 0}, true},
		{Assignment{Day: 1, Slot: 4, Teacher: 300002, Student: 0, Coach: 0}, true},
		{Assignment{Day: 1, Slot: 4, Teacher: 300001, Student: 100002, Coach: 0}, true},
		{Assignment{Day: 1, Slot: 4, Teacher: 300001, Student: 100001, Coach: 200002}, true},
		{Assignment{Day: 0, Slot: 9, Teacher: 300009, Student: 100009, Coach: 200009}, false},
	}
	for i, c := range cases {
		if got := base.Less(c.other); got != c.want {
			t.Fatalf("case %d: %s.Less(%s) = %v, want %v", i, base, c.other, got, c.want)
		}
	}
}

func TestAssignmentJSON(t *testing.T) {
	a := Assignment{Day: 0, Slot: 2, Teacher: 300001, Student: 100001, Coach: 200001}
	b, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "[0,2,300001,100001,200001]" {
		t.Fatalf("unexpected encoding %s", b)
	}
	var back Assignment
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != a {
		t.Fatalf("round trip changed value: %s -> %s", a, back)
	}
	if err := json.Unmarshal([]byte(`{"day":0}`), &back); err == nil {
		t.Fatal("expected error for non-array form")
	}
}
