// Package prompts builds the instructions sent to the model for each tutor
// mode. Every builder is a pure function of its arguments.
package prompts

import (
	"fmt"
	"strings"
)

// TopicExplanation asks for a playful, sectioned Markdown lesson about topic
// with examples written in language.
func TopicExplanation(topic, language string) string {
	return strings.TrimSpace(fmt.Sprintf(`
You are Codey, a friendly robot who teaches programming to beginners.
Explain the topic "%[1]s" using %[2]s for every code example.

Write the answer in Markdown using exactly these sections:

## 🚀 Welcome, Explorer!
Introduce "%[1]s" with a short real-world analogy a beginner can picture.

## 💡 The Big Idea
Explain the core concept in plain language. Keep paragraphs short.

## 💻 Let's Get Our Hands Dirty
Show two small, complete examples in fenced %[2]s code blocks. Label the
first "Example 1" and the second "Example 2". Comment each line that
introduces something new and explain the output after each example.

## 👾 Watch Out for Gremlins
List the most common beginner mistakes with "%[1]s" in %[2]s and how to
avoid them.

## ✨ Quest Complete!
Recap the key takeaways as a short bulleted list and encourage the learner
to keep going.
`, topic, language))
}

// ExplainCode asks for a step-by-step explanation of code written in language.
func ExplainCode(code, language string) string {
	return strings.TrimSpace(fmt.Sprintf(`
You are a patient programming tutor. A beginner is reading the following
%[1]s code and wants to understand it.

`+"```%[2]s\n%[3]s\n```"+`

Explain what the code does, step by step, in Markdown. Start with a one
sentence summary, then walk through the important lines. Point out any
bugs or risky patterns and suggest improvements. Keep the tone
encouraging and avoid jargon that has not been explained.
`, language, FenceLanguage(language), code))
}

// GenerateCode asks for code implementing description in language. The reply
// is expected to be a single fenced code block and nothing else.
func GenerateCode(description, language string) string {
	return strings.TrimSpace(fmt.Sprintf(`
You are an expert %[1]s developer writing code for a beginner.
Write %[1]s code that does the following:

%[2]s

Use clear names and add short comments explaining each step.
Only provide the code itself inside a single markdown code block tagged
%[3]s. Do not add any text before or after the code block.
`, language, description, FenceLanguage(language)))
}

// Quiz asks for a five question multiple-choice quiz on topic as a JSON array.
func Quiz(topic, language string) string {
	return strings.TrimSpace(fmt.Sprintf(`
Create a quiz with 5 multiple-choice questions about "%[1]s" in %[2]s.
The questions should range from beginner to intermediate difficulty.
Each question must have exactly 4 distinct options and exactly one
correct answer.

Respond with a JSON array only. Every element must be an object with
these fields:
- "question": the question text; code may be included in backticks
- "options": an array of 4 answer strings
- "correctAnswer": the correct option, copied exactly from "options"
- "explanation": a short explanation of why the answer is correct
`, topic, language))
}

// ProjectIdeas asks for three to five beginner project ideas that practise topic.
func ProjectIdeas(topic, language string) string {
	return strings.TrimSpace(fmt.Sprintf(`
Suggest 3 to 5 beginner-friendly project ideas that practise "%[1]s"
in %[2]s.

Format the answer in Markdown. For each idea use a numbered level-3
heading with the title, followed by a short description and a
"**Key Concepts:**" line listing the concepts the learner will practise.
For example:

### 1. Simple Calculator
Build a command-line calculator that adds, subtracts, multiplies and
divides two numbers.
**Key Concepts:** variables, operators, user input
`, topic, language))
}

// FenceLanguage maps a display language name to the info string used on
// fenced code blocks.
func FenceLanguage(language string) string {
	switch l := strings.ToLower(strings.TrimSpace(language)); l {
	case "c++":
		return "cpp"
	case "":
		return "text"
	default:
		return l
	}
}
