package match

import (
	"testing"

	"github.com/readingcorps/rsmatch/core/model"
)

func TestEnumerateSingleBlock(t *testing.T) {
	meta := model.NewMetadata()
	school := oneBlockSchool(meta)
	coach := newCoach(coachA, 1, 1, availability(meta, map[int][2]int{0: {2, 4}}))

	ag, err := BuildGraph(school, school.Students, meta)
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}
	cycles := EnumerateCoachCycles(ag, coach, school, meta)
	if len(cycles) != 1 {
		t.Fatalf("expected 1 cycle, got %d", len(cycles))
	}
	cyc := cycles[0]
	want := []NodeKey{
		{Day: 0, Slot: 2, Teacher: teacherA},
		{Day: 0, Slot: 3, Teacher: teacherA},
	}
	if len(cyc.Nodes) != len(want) || cyc.Nodes[0] != want[0] || cyc.Nodes[1] != want[1] {
		t.Fatalf("unexpected cycle nodes %v", cyc.Nodes)
	}
	if cyc.Coach != coachA || cyc.Teacher() != teacherA || cyc.Day() != 0 {
		t.Fatalf("unexpected cycle identity %+v", cyc)
	}
	if cyc.Units(meta.SlotsPerAssignment()) != 1 {
		t.Fatalf("expected 1 unit, got %d", cyc.Units(meta.SlotsPerAssignment()))
	}
}

func TestEnumerateRespectsStudentCapacity(t *testing.T) {
	meta := model.NewMetadata()
	teacher := newTeacher(teacherA, "teacher-a@school.test")
	student := newStudent(studentA, teacher.Email, availability(meta, map[int][2]int{0: {2, 6}}))
	school := &model.School{
		Name:     "Lincoln",
		Teachers: []*model.Teacher{teacher},
		Students: []*model.Student{student},
	}
	coach := newCoach(coachA, 1, 1, availability(meta, map[int][2]int{0: {2, 6}}))

	ag, err := BuildGraph(school, school.Students, meta)
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}
	// Four chained slots admit runs of length 2 and 4; the length-4 run is
	// two units, more than the coach's single remaining student.
	cycles := EnumerateCoachCycles(ag, coach, school, meta)
	if len(cycles) != 3 {
		t.Fatalf("expected 3 cycles, got %d", len(cycles))
	}
	for _, cyc := range cycles {
		if len(cyc.Nodes) != 2 {
			t.Fatalf("over-capacity cycle survived: %v", cyc.Nodes)
		}
	}
}

func TestEnumerateSortsShortestFirst(t *testing.T) {
	meta := model.NewMetadata()
	teacher := newTeacher(teacherA, "teacher-a@school.test")
	student := newStudent(studentA, teacher.Email, availability(meta, map[int][2]int{0: {2, 6}}))
	school := &model.School{
		Name:     "Lincoln",
		Teachers: []*model.Teacher{teacher},
		Students: []*model.Student{student},
	}
	coach := newCoach(coachA, 2, 1, availability(meta, map[int][2]int{0: {2, 6}}))

	ag, err := BuildGraph(school, school.Students, meta)
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}
	cycles := EnumerateCoachCycles(ag, coach, school, meta)
	if len(cycles) != 4 {
		t.Fatalf("expected 4 cycles, got %d", len(cycles))
	}
	for i := 1; i < len(cycles); i++ {
		if len(cycles[i].Nodes) < len(cycles[i-1].Nodes) {
			t.Fatalf("cycles not sorted by length: %d before %d",
				len(cycles[i-1].Nodes), len(cycles[i].Nodes))
		}
	}
	if len(cycles[len(cycles)-1].Nodes) != 4 {
		t.Fatalf("longest cycle should be last, got %v", cycles[len(cycles)-1].Nodes)
	}
}

func TestEnumerateGradeFilter(t *testing.T) {
	meta := model.NewMetadata()
	school := oneBlockSchool(meta)
	coach := newCoach(coachA, 1, 1, availability(meta, map[int][2]int{0: {2, 4}}))
	coach.Grades = []string{"K"}

	ag, err := BuildGraph(school, school.Students, meta)
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}
	if cycles := EnumerateCoachCycles(ag, coach, school, meta); len(cycles) != 0 {
		t.Fatalf("expected no cycles for rejected grade, got %d", len(cycles))
	}
}

func TestEnumerateCoachUnavailable(t *testing.T) {
	meta := model.NewMetadata()
	school := oneBlockSchool(meta)
	coach := newCoach(coachA, 1, 1, model.NewSchedule(meta.NumDays(), meta.NumSlots()))

	ag, err := BuildGraph(school, school.Students, meta)
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}
	if cycles := EnumerateCoachCycles(ag, coach, school, meta); len(cycles) != 0 {
		t.Fatalf("expected no cycles for unavailable coach, got %d", len(cycles))
	}
}

func TestOrderCycles(t *testing.T) {
	nodes := func(day int, teacher model.GUID, slots ...int) []NodeKey {
		keys := make([]NodeKey, len(slots))
		for i, s := range slots {
			keys[i] = NodeKey{Day: day, Slot: s, Teacher: teacher}
		}
		return keys
	}
	a1 := Cycle{Coach: coachA, Nodes: nodes(0, teacherA, 2, 3)}
	a2 := Cycle{Coach: coachA, Nodes: nodes(1, teacherA, 2, 3, 4, 5)}
	b1 := Cycle{Coach: coachB, Nodes: nodes(2, teacherB, 2, 3)}

	// Tail-pop round robin by coach yields a2, b1, a1; teacher regrouping
	// then interleaves, keeping first-seen teacher order.
	ordered := OrderCycles([][]Cycle{{a1, a2}, {b1}})
	if len(ordered) != 3 {
		t.Fatalf("expected 3 cycles, got %d", len(ordered))
	}
	if ordered[0].Day() != a2.Day() || ordered[1].Day() != b1.Day() || ordered[2].Day() != a1.Day() {
		t.Fatalf("unexpected order: days %d %d %d", ordered[0].Day(), ordered[1].Day(), ordered[2].Day())
	}
}
