package quiz

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"edu_quiz_backend/internal/model"
)

// BuildQuestions turns the quiz-type lessons of a section into questions.
// Non-quiz lessons are skipped. The result is ordered by Order; equal orders
// keep the input order. An empty result means the quiz has no content.
func BuildQuestions(lessons []model.Lesson) []model.Question {
	questions := make([]model.Question, 0, len(lessons))
	for _, l := range lessons {
		if !strings.EqualFold(l.Type, model.LessonTypeQuiz) {
			continue
		}
		questions = append(questions, toQuestion(l))
	}

	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].Order < questions[j].Order
	})
	return questions
}

func toQuestion(l model.Lesson) model.Question {
	options := decodeOptions(l.Options)

	points := model.DefaultQuestionPoints
	if l.MaxScore != nil {
		points = *l.MaxScore
	}

	prompt := l.Content
	if strings.TrimSpace(prompt) == "" {
		prompt = l.Title
	}

	return model.Question{
		ID:           l.ID,
		Prompt:       prompt,
		Options:      options,
		CorrectLabel: normalizeCorrectAnswer(l.CorrectAnswer, options),
		Points:       points,
		Order:        l.Order,
	}
}

// decodeOptions accepts a JSON array (of strings or scalars) or an object
// keyed by label ("A".."D") or index ("0".."3"). The result always has one
// entry per label.
func decodeOptions(raw []byte) []string {
	options := make([]string, len(model.OptionLabels))
	if len(raw) == 0 {
		return options
	}

	var list []interface{}
	if err := json.Unmarshal(raw, &list); err == nil {
		for i := 0; i < len(list) && i < len(options); i++ {
			options[i] = stringify(list[i])
		}
		return options
	}

	var keyed map[string]interface{}
	if err := json.Unmarshal(raw, &keyed); err == nil {
		for k, v := range keyed {
			if idx, ok := model.IndexForLabel(strings.ToUpper(strings.TrimSpace(k))); ok {
				options[idx] = stringify(v)
				continue
			}
			if idx, err := strconv.Atoi(k); err == nil && idx >= 0 && idx < len(options) {
				options[idx] = stringify(v)
			}
		}
	}
	return options
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// normalizeCorrectAnswer maps the stored answer to a canonical label.
// Missing answers default to "A". Lower-case labels and answers stored as the
// option text are accepted. Anything else is kept upper-cased, so no option
// can match it.
func normalizeCorrectAnswer(answer string, options []string) string {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return model.OptionLabels[0]
	}

	upper := strings.ToUpper(answer)
	if _, ok := model.IndexForLabel(upper); ok {
		return upper
	}

	for i, opt := range options {
		if opt != "" && strings.TrimSpace(opt) == answer {
			label, _ := model.LabelForIndex(i)
			return label
		}
	}
	return upper
}
