package importer

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/readingcorps/rsmatch/core/model"
	"github.com/readingcorps/rsmatch/infra/logger"
)

const (
	firstTimeAnswer = "This is my first time referring students this year"
	returningAnswer = "I have referred students earlier this year"
)

// referralRow builds a referral spreadsheet row for one teacher with the
// given per-day windows and student groups.
func referralRow(email, school, firstTime string, days [5]string, exclusion string, students ...[]string) []string {
	row := make([]string, 17)
	row[0] = "1/12/2026 9:00:00"
	row[1] = email
	row[4] = school
	row[5] = "Pat"
	row[6] = "Jones"
	row[8] = firstTime
	row[9] = exclusion
	row[10] = "N/A"
	row[11] = "N/A"
	for i, d := range days {
		row[12+i] = d
	}
	for _, s := range students {
		row = append(row, s...)
	}
	return row
}

func studentGroup(id, first, last, grade string, more bool) []string {
	cont := "No - that is all of my students"
	if more {
		cont = "Yes - I have more students to refer"
	}
	return []string{id, first, last, grade, "F", "No", "", "", cont}
}

func TestParseReferralRowFirstTime(t *testing.T) {
	meta := model.NewMetadata()
	days := [5]string{"9:00-11:00", "NONE - my class is not available", "NONE", "NONE", "NONE"}
	row := referralRow("t1@lincoln.test", "Lincoln", firstTimeAnswer, days, "10:00-10:30",
		studentGroup("S1", "Alex", "Kim", "2", false))

	ref, err := ParseReferralRow(row, meta)
	if err != nil {
		t.Fatalf("parse referral: %v", err)
	}
	if ref.School != "Lincoln" || ref.Teacher.Email != "t1@lincoln.test" {
		t.Fatalf("unexpected identity %+v", ref)
	}
	if len(ref.Students) != 1 {
		t.Fatalf("expected 1 student, got %d", len(ref.Students))
	}
	student := ref.Students[0]
	if student.StudentID != "S1" || student.Teacher != ref.Teacher.Email {
		t.Fatalf("unexpected student %+v", student)
	}
	if ref.Teacher.Grade != "2" {
		t.Fatalf("teacher grade not taken from students, got %q", ref.Teacher.Grade)
	}

	// 9:00-11:00 covers slots 2-9; the 10:00-10:30 exclusion blanks 6-7.
	sched := ref.Schedule
	for slot, want := range map[int]int{1: 0, 2: 1, 5: 1, 6: 0, 7: 0, 8: 1, 9: 1, 10: 0} {
		if sched[0][slot] != want {
			t.Fatalf("day 0 slot %d = %d, want %d", slot, sched[0][slot], want)
		}
	}
	if sched[1][2] != model.SlotUnavailable {
		t.Fatal("NONE day has availability")
	}
}

func TestParseReferralRowMultipleStudents(t *testing.T) {
	meta := model.NewMetadata()
	days := [5]string{"9:00-11:00", "NONE", "NONE", "NONE", "NONE"}
	row := referralRow("t1@lincoln.test", "Lincoln", firstTimeAnswer, days, "N/A",
		studentGroup("S1", "Alex", "Kim", "2", true),
		studentGroup("S2", "Sam", "Lee", "2", false))

	ref, err := ParseReferralRow(row, meta)
	if err != nil {
		t.Fatalf("parse referral: %v", err)
	}
	if len(ref.Students) != 2 || ref.Students[1].StudentID != "S2" {
		t.Fatalf("unexpected students %+v", ref.Students)
	}
}

func TestParseReferralRowNoneConflict(t *testing.T) {
	meta := model.NewMetadata()
	days := [5]string{"NONE - my class is not available, 9:00-10:00", "NONE", "NONE", "NONE", "NONE"}
	row := referralRow("t1@lincoln.test", "Lincoln", firstTimeAnswer, days, "N/A",
		studentGroup("S1", "Alex", "Kim", "2", false))
	if _, err := ParseReferralRow(row, meta); err == nil {
		t.Fatal("expected error for NONE combined with a window")
	}
}

func TestParseReferralRowReturningTeacher(t *testing.T) {
	meta := model.NewMetadata()
	days := [5]string{"", "", "", "", ""}
	row := referralRow("t1@lincoln.test", "Lincoln", returningAnswer, days, "N/A",
		studentGroup("S1", "Alex", "Kim", "2", false))
	ref, err := ParseReferralRow(row, meta)
	if err != nil {
		t.Fatalf("parse referral: %v", err)
	}
	if ref.Schedule != nil {
		t.Fatal("returning teacher should carry no schedule")
	}
}

func TestParseReferralRowTooShort(t *testing.T) {
	meta := model.NewMetadata()
	if _, err := ParseReferralRow([]string{"1/12/2026", "t@x"}, meta); err == nil {
		t.Fatal("expected error for short row")
	}
}

func coachRow(email, vid, school1, school2, avail, students, days string) []string {
	row := make([]string, 14)
	row[0] = "1/12/2026 9:00:00"
	row[1] = email
	row[2] = vid
	row[3] = "Chris"
	row[4] = "Nguyen"
	row[9] = school1
	row[10] = school2
	row[11] = avail
	row[12] = students
	row[13] = days
	return row
}

func TestParseCoachRow(t *testing.T) {
	meta := model.NewMetadata()
	row := coachRow("coach@volunteer.test", "V42", "Lincoln", "Roosevelt",
		"Monday 9:00-11:00, Wednesday 1:00-2:00", "2", "1")

	coach, err := ParseCoachRow(row, meta)
	if err != nil {
		t.Fatalf("parse coach: %v", err)
	}
	if coach.VID != "V42" || coach.Email != "coach@volunteer.test" {
		t.Fatalf("unexpected identity %+v", coach)
	}
	if coach.NumStudents != 2 || coach.NumDays != 1 {
		t.Fatalf("unexpected capacities %+v", coach)
	}
	if coach.Schools[0] != "Lincoln" || coach.Schools[1] != "Roosevelt" {
		t.Fatalf("unexpected schools %v", coach.Schools)
	}
	if coach.Schedule[0][2] != model.SlotAvailable || coach.Schedule[0][9] != model.SlotAvailable {
		t.Fatalf("monday window missing: %v", coach.Schedule[0])
	}
	if coach.Schedule[2][18] != model.SlotAvailable || coach.Schedule[2][21] != model.SlotAvailable {
		t.Fatalf("wednesday window missing: %v", coach.Schedule[2])
	}
	if coach.Schedule[1][2] != model.SlotUnavailable {
		t.Fatal("unexpected tuesday availability")
	}
	if !coach.AcceptsGrade("K") || !coach.AcceptsGrade("5") {
		t.Fatal("imported coach should accept the full grade range")
	}
}

func TestParseCoachRowErrors(t *testing.T) {
	meta := model.NewMetadata()
	if _, err := ParseCoachRow(coachRow("c@x", "V1", "Lincoln", "", "Monday 9:00-11:00", "two", "1"), meta); err == nil {
		t.Fatal("expected error for bad student count")
	}
	if _, err := ParseCoachRow(coachRow("c@x", "V1", "Lincoln", "", "Funday 9:00-11:00", "2", "1"), meta); err == nil {
		t.Fatal("expected error for unknown day")
	}
	if _, err := ParseCoachRow(coachRow("c@x", "V1", "Lincoln", "", "Monday", "2", "1"), meta); err == nil {
		t.Fatal("expected error for malformed window")
	}
}

func csvBody(t *testing.T, header string, rows ...[]string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{header}); err != nil {
		t.Fatal(err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			t.Fatal(err)
		}
	}
	w.Flush()
	return &buf
}

func TestLoadAssemblesSchools(t *testing.T) {
	meta := model.NewMetadata()
	days := [5]string{"9:00-11:00", "NONE", "NONE", "NONE", "NONE"}
	referrals := csvBody(t, "Timestamp",
		referralRow("t1@lincoln.test", "Lincoln", firstTimeAnswer, days, "N/A",
			studentGroup("S1", "Alex", "Kim", "2", false)),
		// Returning referral from the same teacher reuses the schedule on
		// file.
		referralRow("t1@lincoln.test", "Lincoln", returningAnswer, [5]string{}, "N/A",
			studentGroup("S2", "Sam", "Lee", "2", false)),
		referralRow("t2@roosevelt.test", "Roosevelt", firstTimeAnswer, days, "N/A",
			studentGroup("S3", "Max", "Diaz", "3", false)),
	)
	coaches := csvBody(t, "Timestamp",
		coachRow("coach@volunteer.test", "V42", "Lincoln", "Roosevelt", "Monday 9:00-11:00", "2", "1"))

	res, err := Load(referrals, coaches, meta, logger.NopLogger{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Schools) != 2 {
		t.Fatalf("expected 2 schools, got %d", len(res.Schools))
	}
	// Schools come out sorted by name.
	if res.Schools[0].Name != "Lincoln" || res.Schools[1].Name != "Roosevelt" {
		t.Fatalf("unexpected school order %v %v", res.Schools[0].Name, res.Schools[1].Name)
	}
	lincoln := res.Schools[0]
	if len(lincoln.Students) != 2 || len(lincoln.Teachers) != 1 {
		t.Fatalf("unexpected lincoln roster: %d students, %d teachers", len(lincoln.Students), len(lincoln.Teachers))
	}
	if lincoln.Students[1].Schedule == nil || lincoln.Students[1].Schedule[0][2] != model.SlotAvailable {
		t.Fatal("returning teacher's student missing the carried-over schedule")
	}
	if len(res.Coaches) != 1 {
		t.Fatalf("expected 1 coach, got %d", len(res.Coaches))
	}
	if len(res.InvalidReferrals) != 0 || len(res.InvalidCoaches) != 0 {
		t.Fatalf("unexpected invalid rows: %v %v", res.InvalidReferrals, res.InvalidCoaches)
	}
}

func TestLoadCollectsInvalidRows(t *testing.T) {
	meta := model.NewMetadata()
	// A returning teacher with no schedule on file and a malformed coach row
	// are skipped, not fatal.
	referrals := csvBody(t, "Timestamp",
		referralRow("t9@lincoln.test", "Lincoln", returningAnswer, [5]string{}, "N/A",
			studentGroup("S1", "Alex", "Kim", "2", false)))
	coaches := csvBody(t, "Timestamp",
		coachRow("coach@volunteer.test", "V42", "Lincoln", "", "Monday 9:00-11:00", "many", "1"))

	res, err := Load(referrals, coaches, meta, logger.NopLogger{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.InvalidReferrals) != 1 || len(res.InvalidCoaches) != 1 {
		t.Fatalf("expected 1 invalid row each, got %d and %d", len(res.InvalidReferrals), len(res.InvalidCoaches))
	}
	last := res.InvalidReferrals[0][len(res.InvalidReferrals[0])-1]
	if !strings.Contains(last, "no schedule on file") {
		t.Fatalf("error not appended to invalid row: %q", last)
	}
	if len(res.Schools) != 1 || len(res.Schools[0].Students) != 0 {
		t.Fatalf("invalid referral leaked students: %+v", res.Schools)
	}
}
