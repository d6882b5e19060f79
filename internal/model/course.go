package model

import (
	"sort"

	"gorm.io/datatypes"
)

type SectionType string

const (
	SectionVideo    SectionType = "video"
	SectionDocument SectionType = "document"
	SectionQuiz     SectionType = "quiz"
	SectionTest     SectionType = "test"
)

const (
	LessonTypeVideo    = "video"
	LessonTypeDocument = "document"
	LessonTypeQuiz     = "quiz"
)

const (
	DefaultPassingScore    = 70
	DefaultDurationMinutes = 30
)

// swagger:model Course
type Course struct {
	UUIDBase
	Title         string `gorm:"size:255;not null" json:"title"`
	Instructor    string `gorm:"size:100" json:"instructor"`
	Duration      string `gorm:"size:50" json:"duration"` // display label, e.g. "6h 30m"
	Description   string `gorm:"type:text" json:"description"`
	TotalSections int    `gorm:"default:0" json:"totalSections"`
}

func (Course) TableName() string {
	return "courses"
}

// swagger:model Section
type Section struct {
	UUIDBase
	CourseID        string      `gorm:"index;type:varchar(36)" json:"courseId"`
	Title           string      `gorm:"size:255;not null" json:"title"`
	Type            SectionType `gorm:"size:20;default:'video'" json:"type"`
	Order           int         `gorm:"default:0" json:"order"`
	PassingScore    int         `gorm:"default:70" json:"passingScore"`
	DurationMinutes int         `gorm:"default:30" json:"durationMinutes"`
	LessonsCount    int         `gorm:"default:0" json:"lessonsCount"`
	TotalQuestions  int         `gorm:"default:0" json:"totalQuestions"`
}

func (Section) TableName() string {
	return "sections"
}

// IsAssessment reports whether the section is scored by a quiz session.
func (s *Section) IsAssessment() bool {
	return s.Type == SectionQuiz || s.Type == SectionTest
}

func (s *Section) EffectivePassingScore() int {
	if s.PassingScore <= 0 {
		return DefaultPassingScore
	}
	return s.PassingScore
}

func (s *Section) EffectiveDurationMinutes() int {
	if s.DurationMinutes <= 0 {
		return DefaultDurationMinutes
	}
	return s.DurationMinutes
}

// Lesson is the leaf content unit. Quiz lessons carry their question in
// Content, Options and CorrectAnswer; the option payload is loosely shaped
// and only normalized by the question bank.
// swagger:model Lesson
type Lesson struct {
	UUIDBase
	CourseID      string         `gorm:"index;type:varchar(36)" json:"courseId"`
	SectionID     string         `gorm:"index;type:varchar(36)" json:"sectionId"`
	Title         string         `gorm:"size:255" json:"title"`
	Type          string         `gorm:"size:20;default:'video'" json:"type"`
	Content       string         `gorm:"type:text" json:"content"`
	Options       datatypes.JSON `json:"options,omitempty"`
	CorrectAnswer string         `gorm:"size:255" json:"correctAnswer,omitempty"`
	Order         int            `gorm:"default:0" json:"order"`
	MaxScore      *int           `json:"maxScore,omitempty"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// SortSections orders sections by Order, ties broken by Title.
func SortSections(sections []Section) {
	sort.SliceStable(sections, func(i, j int) bool {
		if sections[i].Order != sections[j].Order {
			return sections[i].Order < sections[j].Order
		}
		return sections[i].Title < sections[j].Title
	})
}
