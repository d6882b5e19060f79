package model

// OptionLabels are the canonical labels of a question's fixed-size option list.
var OptionLabels = []string{"A", "B", "C", "D"}

const DefaultQuestionPoints = 10

// Question is derived from a quiz lesson. Points are kept as metadata only;
// every question weighs the same when an attempt is scored.
type Question struct {
	ID           string   `json:"id"`
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectLabel string   `json:"-"`
	Points       int      `json:"points"`
	Order        int      `json:"order"`
}

// LabelForIndex maps a zero-based option index to its label.
func LabelForIndex(i int) (string, bool) {
	if i < 0 || i >= len(OptionLabels) {
		return "", false
	}
	return OptionLabels[i], true
}

// IndexForLabel is the inverse of LabelForIndex.
func IndexForLabel(label string) (int, bool) {
	for i, l := range OptionLabels {
		if l == label {
			return i, true
		}
	}
	return -1, false
}
