package match

import (
	"github.com/readingcorps/rsmatch/core/model"
)

const (
	teacherA model.GUID = 300001
	teacherB model.GUID = 300002
	studentA model.GUID = 100001
	studentB model.GUID = 100002
	coachA   model.GUID = 200001
	coachB   model.GUID = 200002
)

// availability builds a schedule with [from, to) available per day.
func availability(meta model.Metadata, windows map[int][2]int) model.Schedule {
	s := model.NewSchedule(meta.NumDays(), meta.NumSlots())
	for day, w := range windows {
		s.MarkWindow(day, w[0], w[1], model.SlotAvailable)
	}
	return s
}

func newTeacher(guid model.GUID, email string) *model.Teacher {
	return &model.Teacher{GUID: guid, Email: email, Grade: "2"}
}

func newStudent(guid model.GUID, teacherEmail string, sched model.Schedule) *model.Student {
	return &model.Student{GUID: guid, Teacher: teacherEmail, Grade: "2", Schedule: sched}
}

func newCoach(guid model.GUID, students, days int, sched model.Schedule) *model.Coach {
	return &model.Coach{
		GUID:         guid,
		NumStudents:  students,
		NumDays:      days,
		Schedule:     sched,
		AssignedDays: make(map[int]struct{}),
		Assignments:  make(map[model.Assignment]struct{}),
	}
}

// oneBlockSchool has a single teacher and a single student available for
// exactly one Monday half-hour block (slots 2 and 3).
func oneBlockSchool(meta model.Metadata) *model.School {
	teacher := newTeacher(teacherA, "teacher-a@school.test")
	student := newStudent(studentA, teacher.Email, availability(meta, map[int][2]int{0: {2, 4}}))
	return &model.School{
		Name:     "Lincoln",
		Teachers: []*model.Teacher{teacher},
		Students: []*model.Student{student},
	}
}
