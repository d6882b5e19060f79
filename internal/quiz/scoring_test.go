package quiz_test

import (
	"testing"

	"edu_quiz_backend/internal/model"
	"edu_quiz_backend/internal/quiz"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func questions(labels ...string) []model.Question {
	qs := make([]model.Question, len(labels))
	for i, l := range labels {
		qs[i] = model.Question{
			ID:           string(rune('a' + i)),
			CorrectLabel: l,
			Points:       model.DefaultQuestionPoints,
			Order:        i,
		}
	}
	return qs
}

func TestScore(t *testing.T) {
	qs := questions("A", "B", "C", "D")

	tests := []struct {
		name        string
		answers     map[string]string
		wantCorrect int
		wantPct     float64
		wantPassed  bool
	}{
		{"all correct", map[string]string{"a": "A", "b": "B", "c": "C", "d": "D"}, 4, 100, true},
		{"three of four", map[string]string{"a": "A", "b": "B", "c": "C", "d": "A"}, 3, 75, true},
		{"two correct one wrong one unanswered", map[string]string{"a": "A", "b": "B", "c": "D"}, 2, 50, false},
		{"nothing answered", map[string]string{}, 0, 0, false},
		{"nil answers", nil, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := quiz.Score(qs, tt.answers, 70)
			assert.Equal(t, tt.wantCorrect, got.CorrectCount)
			assert.Equal(t, 4, got.TotalQuestions)
			assert.Equal(t, tt.wantPct, got.Percentage)
			assert.Equal(t, tt.wantPassed, got.Passed)
			assert.Equal(t, 70, got.PassingScore)
		})
	}
}

func TestScore_EmptyQuiz(t *testing.T) {
	got := quiz.Score(nil, map[string]string{}, 70)
	assert.Equal(t, 0, got.CorrectCount)
	assert.Equal(t, 0, got.TotalQuestions)
	assert.Equal(t, 0.0, got.Percentage)
	assert.False(t, got.Passed)
	assert.Empty(t, got.Answers)
}

func TestScore_EqualWeighting(t *testing.T) {
	qs := questions("A", "A")
	qs[0].Points = 10
	qs[1].Points = 100

	low := quiz.Score(qs, map[string]string{"a": "A"}, 70)
	high := quiz.Score(qs, map[string]string{"b": "A"}, 70)

	assert.Equal(t, 50.0, low.Percentage)
	assert.Equal(t, 50.0, high.Percentage)
}

func TestScore_UnansweredIsIncorrect(t *testing.T) {
	got := quiz.Score(questions("B"), map[string]string{"a": ""}, 70)
	require.Len(t, got.Answers, 1)
	assert.Nil(t, got.Answers[0].SelectedLabel)
	assert.False(t, got.Answers[0].IsCorrect)
	assert.Equal(t, "B", got.Answers[0].CorrectLabel)
}

func TestScore_PreservesQuestionOrderAndIsDeterministic(t *testing.T) {
	qs := questions("A", "B", "C")
	answers := map[string]string{"c": "C", "a": "D", "b": "B"}

	first := quiz.Score(qs, answers, 70)
	second := quiz.Score(qs, answers, 70)
	assert.Equal(t, first, second)

	require.Len(t, first.Answers, 3)
	for i, aq := range first.Answers {
		assert.Equal(t, qs[i].ID, aq.QuestionID)
	}
	assert.Equal(t, 66.7, first.Percentage)
	assert.False(t, first.Passed)
}

func TestScore_ThresholdBoundary(t *testing.T) {
	qs := questions("A", "A", "A", "A")
	got := quiz.Score(qs, map[string]string{"a": "A", "b": "A", "c": "A"}, 75)
	assert.True(t, got.Passed, "percentage equal to threshold passes")

	got = quiz.Score(qs, map[string]string{"a": "A", "b": "A", "c": "A"}, 0)
	assert.Equal(t, model.DefaultPassingScore, got.PassingScore)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, quiz.Percentage(0, 0))
	assert.Equal(t, 33.3, quiz.Percentage(1, 3))
	assert.Equal(t, 100.0, quiz.Percentage(5, 3))
	assert.Equal(t, 0.0, quiz.Percentage(-1, 3))
}
