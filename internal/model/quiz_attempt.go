package model

import "time"

// AnsweredQuestion is one scored line of an attempt. SelectedLabel is nil
// for unanswered questions.
type AnsweredQuestion struct {
	QuestionID    string  `json:"questionId"`
	SelectedLabel *string `json:"selectedLabel"`
	CorrectLabel  string  `json:"correctLabel"`
	IsCorrect     bool    `json:"isCorrect"`
}

// AttemptResult is the output of the scoring engine.
type AttemptResult struct {
	Answers        []AnsweredQuestion `json:"answers"`
	CorrectCount   int                `json:"correctCount"`
	TotalQuestions int                `json:"totalQuestions"`
	Percentage     float64            `json:"percentage"`
	PassingScore   int                `json:"passingScore"`
	Passed         bool               `json:"passed"`
}

// QuizAttempt is append-only: a retake writes a new row.
// swagger:model QuizAttempt
type QuizAttempt struct {
	UUIDBase
	StudentID        string              `gorm:"index:idx_attempt_student_section;type:varchar(36)" json:"studentId"`
	CourseID         string              `gorm:"index;type:varchar(36)" json:"courseId"`
	SectionID        string              `gorm:"index:idx_attempt_student_section;type:varchar(36)" json:"sectionId"`
	CorrectCount     int                 `json:"correctCount"`
	TotalQuestions   int                 `json:"totalQuestions"`
	Percentage       float64             `json:"percentage"`
	PassingScore     int                 `json:"passingScore"`
	Passed           bool                `json:"passed"`
	TimedOut         bool                `gorm:"default:false" json:"timedOut"`
	SubmittedAt      time.Time           `gorm:"index" json:"submittedAt"`
	TimeSpentSeconds int                 `json:"timeSpentSeconds"`
	Answers          []QuizAttemptAnswer `gorm:"foreignKey:AttemptID" json:"answers"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

type QuizAttemptAnswer struct {
	UUIDBase
	AttemptID     string  `gorm:"index;type:varchar(36)" json:"-"`
	Position      int     `json:"position"`
	QuestionID    string  `gorm:"type:varchar(36)" json:"questionId"`
	SelectedLabel *string `gorm:"size:1" json:"selectedLabel"`
	CorrectLabel  string  `gorm:"size:1" json:"correctLabel"`
	IsCorrect     bool    `json:"isCorrect"`
}

func (QuizAttemptAnswer) TableName() string {
	return "quiz_attempt_answers"
}

// AttemptRecord is everything the attempt store needs to write one attempt.
type AttemptRecord struct {
	Result           AttemptResult
	SubmittedAt      time.Time
	TimeSpentSeconds int
	TimedOut         bool
}
