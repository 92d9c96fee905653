package tutor

const (
	// QuizLength is the number of questions in every quiz.
	QuizLength = 5
	// OptionsPerQuestion is the number of choices offered per question.
	OptionsPerQuestion = 4
)

// QuizItem is one multiple-choice question.
type QuizItem struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// Score counts the questions whose recorded answer exactly matches the
// correct answer. Unanswered questions never count.
func Score(answers map[int]string, quiz []QuizItem) int {
	score := 0
	for i, item := range quiz {
		if a, ok := answers[i]; ok && a == item.CorrectAnswer {
			score++
		}
	}
	return score
}

// Grade reports, per question, whether the recorded answer is correct.
func Grade(answers map[int]string, quiz []QuizItem) []bool {
	out := make([]bool, len(quiz))
	for i, item := range quiz {
		a, ok := answers[i]
		out[i] = ok && a == item.CorrectAnswer
	}
	return out
}

func hasOption(item QuizItem, option string) bool {
	for _, o := range item.Options {
		if o == option {
			return true
		}
	}
	return false
}
