package gateway

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"github.com/Protocol-Lattice/lattice-tutor/src/tutor"
)

// QuizSchema describes the structured reply requested for a quiz.
var QuizSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"question":      {Type: genai.TypeString, Description: "The quiz question. Can include code snippets in backticks."},
			"options":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}, Description: "An array of 4 possible answers."},
			"correctAnswer": {Type: genai.TypeString, Description: "The correct answer from the options array."},
			"explanation":   {Type: genai.TypeString, Description: "A brief explanation of why the answer is correct."},
		},
		Required: []string{"question", "options", "correctAnswer", "explanation"},
	},
}

// ParseQuiz decodes and validates a quiz reply. Nothing is returned unless
// the whole quiz is valid.
func ParseQuiz(raw string) ([]tutor.QuizItem, error) {
	data, err := extractJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuiz, err)
	}
	var items []tutor.QuizItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuiz, err)
	}
	if err := ValidateQuiz(items); err != nil {
		return nil, err
	}
	return items, nil
}

// ValidateQuiz enforces the quiz shape: five questions, each with four
// distinct non-empty options, one of which is the correct answer.
func ValidateQuiz(items []tutor.QuizItem) error {
	if len(items) != tutor.QuizLength {
		return fmt.Errorf("%w: want %d questions, got %d", ErrInvalidQuiz, tutor.QuizLength, len(items))
	}
	for i, item := range items {
		if strings.TrimSpace(item.Question) == "" {
			return fmt.Errorf("%w: question %d is empty", ErrInvalidQuiz, i+1)
		}
		if strings.TrimSpace(item.Explanation) == "" {
			return fmt.Errorf("%w: question %d has no explanation", ErrInvalidQuiz, i+1)
		}
		if len(item.Options) != tutor.OptionsPerQuestion {
			return fmt.Errorf("%w: question %d has %d options", ErrInvalidQuiz, i+1, len(item.Options))
		}
		seen := make(map[string]bool, len(item.Options))
		for _, o := range item.Options {
			if strings.TrimSpace(o) == "" {
				return fmt.Errorf("%w: question %d has an empty option", ErrInvalidQuiz, i+1)
			}
			if seen[o] {
				return fmt.Errorf("%w: question %d repeats option %q", ErrInvalidQuiz, i+1, o)
			}
			seen[o] = true
		}
		if !seen[item.CorrectAnswer] {
			return fmt.Errorf("%w: question %d answer is not an option", ErrInvalidQuiz, i+1)
		}
	}
	return nil
}
