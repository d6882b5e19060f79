// Package progress derives completion percentages from lesson and quiz
// completion facts. Every function is pure and tolerates partial or
// inconsistent data by clamping.
package progress

import (
	"math"

	"edu_quiz_backend/internal/model"
)

// Normalize clamps negative counts to zero and completed to total.
func Normalize(sp model.SectionProgress) model.SectionProgress {
	if sp.TotalLessons < 0 {
		sp.TotalLessons = 0
	}
	if sp.CompletedLessons < 0 {
		sp.CompletedLessons = 0
	}
	if sp.CompletedLessons > sp.TotalLessons {
		sp.CompletedLessons = sp.TotalLessons
	}
	sp.Percentage = SectionPercentage(sp)
	return sp
}

// SectionPercentage is round(100*completed/total), or 0 without lessons.
func SectionPercentage(sp model.SectionProgress) int {
	total := max(sp.TotalLessons, 0)
	completed := min(max(sp.CompletedLessons, 0), total)
	return ratio(completed, total)
}

// CoursePercentage weights sections by lesson count.
func CoursePercentage(p model.Progress) int {
	var completed, total int
	for _, sp := range p.Sections {
		n := Normalize(sp)
		completed += n.CompletedLessons
		total += n.TotalLessons
	}
	return ratio(completed, total)
}

// IsCourseComplete is true when every section is at 100%. A course without
// sections is never complete.
func IsCourseComplete(p model.Progress) bool {
	if len(p.Sections) == 0 {
		return false
	}
	for _, sp := range p.Sections {
		if SectionPercentage(sp) != 100 {
			return false
		}
	}
	return true
}

// CompletedSections counts sections at 100%.
func CompletedSections(p model.Progress) int {
	var n int
	for _, sp := range p.Sections {
		if SectionPercentage(sp) == 100 {
			n++
		}
	}
	return n
}

// Recompute returns p with every section normalized and the course
// percentage refreshed. The stored completed-section counter is kept as is.
func Recompute(p model.Progress) model.Progress {
	sections := make([]model.SectionProgress, len(p.Sections))
	for i, sp := range p.Sections {
		sections[i] = Normalize(sp)
	}
	p.Sections = sections
	p.OverallPercentage = CoursePercentage(p)
	if p.CompletedSections < 0 {
		p.CompletedSections = 0
	}
	return p
}

// ratio never reports 100 for unfinished work, so 199 of 200 lessons is 99.
func ratio(completed, total int) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(100 * float64(completed) / float64(total)))
	if pct == 100 && completed < total {
		return 99
	}
	return pct
}

// Stats is the student dashboard summary.
type Stats struct {
	EnrolledCourses   int `json:"enrolledCourses"`
	CompletedCourses  int `json:"completedCourses"`
	InProgressCourses int `json:"inProgressCourses"`
	AverageProgress   int `json:"averageProgress"`
	QuizzesPassed     int `json:"quizzesPassed"`
	CompletedSections int `json:"completedSections"`
}

// DashboardStats summarizes one progress record per enrolled course.
// Courses whose percentage is above zero but not complete are in progress.
func DashboardStats(records []model.Progress) Stats {
	stats := Stats{EnrolledCourses: len(records)}
	if len(records) == 0 {
		return stats
	}

	var sum int
	for _, p := range records {
		pct := CoursePercentage(p)
		sum += pct
		switch {
		case IsCourseComplete(p):
			stats.CompletedCourses++
		case pct > 0:
			stats.InProgressCourses++
		}
		for _, sp := range p.Sections {
			if sp.QuizPassed {
				stats.QuizzesPassed++
			}
		}
		stats.CompletedSections += CompletedSections(p)
	}
	stats.AverageProgress = int(math.Round(float64(sum) / float64(len(records))))
	return stats
}

// Merge lays the stored section entries over the course's current sections,
// in section order. Untouched sections count as zero of their lessons; the
// section's LessonsCount is the authoritative total; entries for sections
// no longer in the course are dropped.
func Merge(p model.Progress, sections []model.Section) model.Progress {
	byID := make(map[string]model.SectionProgress, len(p.Sections))
	for _, sp := range p.Sections {
		byID[sp.SectionID] = sp
	}

	merged := make([]model.SectionProgress, 0, len(sections))
	for _, s := range sections {
		sp, ok := byID[s.ID]
		if !ok {
			sp = model.SectionProgress{
				StudentID: p.StudentID,
				CourseID:  p.CourseID,
				SectionID: s.ID,
			}
		}
		sp.TotalLessons = s.LessonsCount
		merged = append(merged, Normalize(sp))
	}

	p.Sections = merged
	p.OverallPercentage = CoursePercentage(p)
	return p
}
