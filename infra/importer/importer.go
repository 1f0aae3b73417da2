package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/readingcorps/rsmatch/core/logger"
	"github.com/readingcorps/rsmatch/core/model"
)

// Result is the outcome of one import: the assembled schools and coaches,
// plus the rejected rows with their error appended in the final column.
type Result struct {
	Schools          []*model.School
	Coaches          []*model.Coach
	InvalidReferrals [][]string
	InvalidCoaches   [][]string
}

// Load reads the referral and coach spreadsheets and assembles store
// entities. Bad rows are collected into the invalid lists and skipped.
func Load(referrals, coaches io.Reader, meta model.Metadata, log logger.Logger) (*Result, error) {
	res := &Result{}

	schools := make(map[string]*model.School)
	// Returning teachers omit their schedule; remember each teacher's last
	// submitted one.
	teacherSchedules := make(map[string]model.Schedule)

	if err := eachRow(referrals, "Timestamp", func(row []string) error {
		ref, err := ParseReferralRow(row, meta)
		if err != nil {
			res.InvalidReferrals = append(res.InvalidReferrals, append(row, err.Error()))
			log.Warnf("invalid referral row: %v", err)
			return nil
		}
		school, ok := schools[ref.School]
		if !ok {
			school = &model.School{Name: ref.School}
			schools[ref.School] = school
		}
		if school.TeacherByEmail(ref.Teacher.Email) == nil {
			school.Teachers = append(school.Teachers, ref.Teacher)
		}
		if ref.Schedule != nil {
			teacherSchedules[ref.Teacher.Email] = ref.Schedule
		} else {
			schedule, ok := teacherSchedules[ref.Teacher.Email]
			if !ok {
				res.InvalidReferrals = append(res.InvalidReferrals,
					append(row, fmt.Sprintf("no schedule on file for %s", ref.Teacher.Email)))
				log.Warnf("no schedule on file for returning teacher %s", ref.Teacher.Email)
				return nil
			}
			for _, student := range ref.Students {
				student.Schedule = schedule
			}
		}
		school.Students = append(school.Students, ref.Students...)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("read referrals: %w", err)
	}

	if err := eachRow(coaches, "Timestamp", func(row []string) error {
		coach, err := ParseCoachRow(row, meta)
		if err != nil {
			res.InvalidCoaches = append(res.InvalidCoaches, append(row, err.Error()))
			log.Warnf("invalid coach row: %v", err)
			return nil
		}
		res.Coaches = append(res.Coaches, coach)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("read coaches: %w", err)
	}

	names := make([]string, 0, len(schools))
	for name := range schools {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		res.Schools = append(res.Schools, schools[name])
	}

	log.Infof("imported %d schools, %d coaches (%d invalid referrals, %d invalid coaches)",
		len(res.Schools), len(res.Coaches), len(res.InvalidReferrals), len(res.InvalidCoaches))
	return res, nil
}

// eachRow streams CSV rows to fn, skipping the header row.
func eachRow(r io.Reader, header string, fn func(row []string) error) error {
	reader := csv.NewReader(r)
	// Spreadsheet rows vary in width with the number of referred students.
	reader.FieldsPerRecord = -1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if len(row) == 0 || strings.HasPrefix(row[0], header) {
			continue
		}
		if err := fn(row); err != nil {
			return err
		}
	}
}
