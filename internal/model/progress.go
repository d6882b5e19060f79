package model

import "time"

// Progress is the course-level aggregate for one enrollment.
// swagger:model Progress
type Progress struct {
	UUIDBase
	StudentID         string            `gorm:"uniqueIndex:idx_progress_student_course;type:varchar(36)" json:"studentId"`
	CourseID          string            `gorm:"uniqueIndex:idx_progress_student_course;type:varchar(36)" json:"courseId"`
	OverallPercentage int               `gorm:"default:0" json:"overallPercentage"`
	CompletedSections int               `gorm:"default:0" json:"completedSections"`
	Sections          []SectionProgress `gorm:"foreignKey:ProgressID" json:"sections"`
}

func (Progress) TableName() string {
	return "progresses"
}

// Section returns the entry for sectionID, if present.
func (p *Progress) Section(sectionID string) (SectionProgress, bool) {
	for _, sp := range p.Sections {
		if sp.SectionID == sectionID {
			return sp, true
		}
	}
	return SectionProgress{}, false
}

// swagger:model SectionProgress
type SectionProgress struct {
	UUIDBase
	ProgressID       string     `gorm:"index;type:varchar(36)" json:"-"`
	StudentID        string     `gorm:"uniqueIndex:idx_section_progress;type:varchar(36)" json:"studentId"`
	CourseID         string     `gorm:"uniqueIndex:idx_section_progress;type:varchar(36)" json:"courseId"`
	SectionID        string     `gorm:"uniqueIndex:idx_section_progress;type:varchar(36)" json:"sectionId"`
	CompletedLessons int        `gorm:"default:0" json:"completedLessons"`
	TotalLessons     int        `gorm:"default:0" json:"totalLessons"`
	Percentage       int        `gorm:"default:0" json:"percentage"`
	QuizCompleted    bool       `gorm:"default:false" json:"quizCompleted"`
	QuizScore        float64    `gorm:"default:0" json:"quizScore"`
	QuizPassed       bool       `gorm:"default:false" json:"quizPassed"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
}

func (SectionProgress) TableName() string {
	return "section_progresses"
}

// LessonCompletion records that a student consumed a lesson.
type LessonCompletion struct {
	UUIDBase
	StudentID   string    `gorm:"uniqueIndex:idx_lesson_completion;type:varchar(36)" json:"studentId"`
	LessonID    string    `gorm:"uniqueIndex:idx_lesson_completion;type:varchar(36)" json:"lessonId"`
	CourseID    string    `gorm:"index;type:varchar(36)" json:"courseId"`
	SectionID   string    `gorm:"index;type:varchar(36)" json:"sectionId"`
	CompletedAt time.Time `json:"completedAt"`
}

func (LessonCompletion) TableName() string {
	return "lesson_completions"
}

// QuizCompletion is what a passing attempt writes into SectionProgress.
type QuizCompletion struct {
	QuizCompleted bool
	QuizScore     float64
	QuizPassed    bool
	CompletedAt   time.Time
}
