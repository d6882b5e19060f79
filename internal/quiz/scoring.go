package quiz

import (
	"math"

	"edu_quiz_backend/internal/model"
)

// Score grades an attempt. answers maps question ID to the selected label;
// a missing entry is scored incorrect. Every question carries the same weight
// regardless of its Points. A quiz without questions scores 0 and never passes.
func Score(questions []model.Question, answers map[string]string, passingScore int) model.AttemptResult {
	if passingScore <= 0 {
		passingScore = model.DefaultPassingScore
	}

	result := model.AttemptResult{
		Answers:        make([]model.AnsweredQuestion, 0, len(questions)),
		TotalQuestions: len(questions),
		PassingScore:   passingScore,
	}

	for _, q := range questions {
		aq := model.AnsweredQuestion{
			QuestionID:   q.ID,
			CorrectLabel: q.CorrectLabel,
		}
		if selected, ok := answers[q.ID]; ok && selected != "" {
			label := selected
			aq.SelectedLabel = &label
			aq.IsCorrect = label == q.CorrectLabel
		}
		if aq.IsCorrect {
			result.CorrectCount++
		}
		result.Answers = append(result.Answers, aq)
	}

	if result.TotalQuestions == 0 {
		return result
	}

	result.Percentage = Percentage(result.CorrectCount, result.TotalQuestions)
	result.Passed = result.Percentage >= float64(passingScore)
	return result
}

// Percentage is 100*correct/total rounded to one decimal place.
func Percentage(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	if correct < 0 {
		correct = 0
	}
	if correct > total {
		correct = total
	}
	return math.Round(1000*float64(correct)/float64(total)) / 10
}
