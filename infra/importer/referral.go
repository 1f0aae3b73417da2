// Package importer parses the raw registration spreadsheets (teacher
// referrals and coach signups) into store entities. Malformed rows are
// isolated per record: they are reported and skipped, never abort an import.
package importer

import (
	"fmt"
	"strings"

	"github.com/readingcorps/rsmatch/core/model"
)

// Referral is one parsed teacher referral row: the teacher, the class
// schedule (nil when the teacher referred students earlier this year and the
// schedule is carried over), and the referred students.
type Referral struct {
	Timestamp string
	School    string
	Teacher   *model.Teacher
	Schedule  model.Schedule
	Students  []*model.Student
}

// Referral spreadsheet column layout.
const (
	refColTimestamp    = 0
	refColTeacherEmail = 1
	refColSchool       = 4
	refColTeacherFirst = 5
	refColTeacherLast  = 6
	refColFirstTime    = 8
	refColExclusions   = 9
	refColDays         = 12
	refStudentStride   = 9
)

// ParseReferralRow parses one referral spreadsheet row.
func ParseReferralRow(row []string, meta model.Metadata) (*Referral, error) {
	if len(row) < refColDays+meta.NumDays() {
		return nil, fmt.Errorf("referral row too short: %d columns", len(row))
	}
	ref := &Referral{
		Timestamp: row[refColTimestamp],
		School:    strings.TrimSpace(row[refColSchool]),
		Teacher: &model.Teacher{
			Email: strings.TrimSpace(row[refColTeacherEmail]),
			First: strings.TrimSpace(row[refColTeacherFirst]),
			Last:  strings.TrimSpace(row[refColTeacherLast]),
		},
	}

	if strings.HasPrefix(row[refColFirstTime], "This is my first") {
		schedule, err := parseReferralSchedule(row, meta)
		if err != nil {
			return nil, err
		}
		ref.Schedule = schedule
	}

	for col := refColDays + meta.NumDays(); col+refStudentStride <= len(row); col += refStudentStride {
		group := row[col : col+refStudentStride]
		student := &model.Student{
			Teacher:   ref.Teacher.Email,
			StudentID: group[0],
			First:     group[1],
			Last:      group[2],
			Grade:     group[3],
			Gender:    group[4],
			ELL:       group[5],
			Schedule:  ref.Schedule,
		}
		ref.Teacher.Grade = student.Grade
		ref.Students = append(ref.Students, student)
		if strings.HasPrefix(group[refStudentStride-1], "No") {
			break
		}
	}
	return ref, nil
}

// parseReferralSchedule builds the class availability matrix from the per-day
// window lists and applies the lunch/recess exclusions on top.
func parseReferralSchedule(row []string, meta model.Metadata) (model.Schedule, error) {
	schedule := model.NewSchedule(meta.NumDays(), meta.NumSlots())
	for day := 0; day < meta.NumDays(); day++ {
		windows := strings.Split(row[refColDays+day], ",")
		for _, window := range windows {
			window = strings.TrimSpace(window)
			if strings.HasPrefix(window, "NONE") {
				if len(windows) > 1 {
					return nil, fmt.Errorf("%s selected along with other times", window)
				}
				continue
			}
			from, to, err := parseWindow(window, meta)
			if err != nil {
				return nil, err
			}
			schedule.MarkWindow(day, from, to, model.SlotAvailable)
		}
	}

	// Exclusions come second so they always win.
	for _, exclusion := range row[refColExclusions:refColDays] {
		exclusion = strings.TrimSpace(exclusion)
		if strings.HasPrefix(exclusion, "N/A") || exclusion == "" {
			continue
		}
		from, to, err := parseWindow(exclusion, meta)
		if err != nil {
			return nil, err
		}
		for day := 0; day < meta.NumDays(); day++ {
			schedule.MarkWindow(day, from, to, model.SlotUnavailable)
		}
	}
	return schedule, nil
}

// parseWindow converts "H:MM-H:MM" into a [from, to) slot range.
func parseWindow(window string, meta model.Metadata) (int, int, error) {
	parts := strings.SplitN(window, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time window %q", window)
	}
	from, err := meta.TimeToSlot(parts[0])
	if err != nil {
		return 0, 0, err
	}
	to, err := meta.TimeToSlot(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return from, to, nil
}
