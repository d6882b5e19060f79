package quiz_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"edu_quiz_backend/internal/model"

	"gorm.io/datatypes"
)

type fakeReader struct {
	section    *model.Section
	lessons    []model.Lesson
	sectionErr error
	lessonsErr error
}

func (f *fakeReader) GetSection(_ context.Context, _, _ string) (*model.Section, error) {
	if f.sectionErr != nil {
		return nil, f.sectionErr
	}
	return f.section, nil
}

func (f *fakeReader) GetLessons(_ context.Context, _, _ string) ([]model.Lesson, error) {
	if f.lessonsErr != nil {
		return nil, f.lessonsErr
	}
	return f.lessons, nil
}

type fakeStore struct {
	mu          sync.Mutex
	attempts    []model.AttemptRecord
	completions []model.QuizCompletion
	writeErr    error
	progressErr error
}

func (f *fakeStore) WriteAttempt(_ context.Context, _, _, _ string, record model.AttemptRecord) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return "", f.writeErr
	}
	f.attempts = append(f.attempts, record)
	return fmt.Sprintf("attempt-%d", len(f.attempts)), nil
}

func (f *fakeStore) UpdateSectionProgress(_ context.Context, _, _, _ string, c model.QuizCompletion) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.progressErr != nil {
		return f.progressErr
	}
	f.completions = append(f.completions, c)
	return nil
}

func (f *fakeStore) setErrors(write, progress error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeErr = write
	f.progressErr = progress
}

func (f *fakeStore) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.attempts), len(f.completions)
}

var errBoom = errors.New("boom")

// quizLesson builds a quiz lesson with four options whose correct answer is label.
func quizLesson(id string, order int, label string) model.Lesson {
	l := model.Lesson{
		Title:         "Question " + id,
		Type:          model.LessonTypeQuiz,
		Content:       "What is " + id + "?",
		Options:       datatypes.JSON(`["one","two","three","four"]`),
		CorrectAnswer: label,
		Order:         order,
	}
	l.ID = id
	return l
}

func fourQuestionReader() *fakeReader {
	section := &model.Section{Title: "Checkpoint", Type: model.SectionQuiz, PassingScore: 70, DurationMinutes: 1}
	section.ID = "sec-1"
	return &fakeReader{
		section: section,
		lessons: []model.Lesson{
			quizLesson("q1", 1, "A"),
			quizLesson("q2", 2, "B"),
			quizLesson("q3", 3, "C"),
			quizLesson("q4", 4, "D"),
		},
	}
}
