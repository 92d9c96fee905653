// Package tutor holds the learner-facing state of a tutoring session: the
// topic catalog, the five modes, per-mode request state and the quiz.
package tutor

import "strings"

// Topic is one entry of the fixed learning catalog.
type Topic struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var topics = []Topic{
	{ID: "variables", Name: "Variables & Data Types", Description: "Learn the fundamentals of storing and using data."},
	{ID: "operators", Name: "Operators", Description: "Understand how to perform operations on variables."},
	{ID: "control-flow", Name: "Control Flow", Description: "Master if/else statements and switch cases."},
	{ID: "loops", Name: "Loops", Description: "Explore for, while, and do-while loops for iteration."},
	{ID: "functions", Name: "Functions", Description: "Learn to write reusable blocks of code."},
	{ID: "arrays", Name: "Arrays & Lists", Description: "Work with ordered collections of data."},
	{ID: "objects", Name: "Objects & Dictionaries", Description: "Understand key-value pair data structures."},
	{ID: "oop", Name: "Object-Oriented Programming", Description: "Dive into classes, objects, and inheritance."},
	{ID: "async", Name: "Asynchronous Programming", Description: "Handle operations that take time to complete."},
	{ID: "data-structures", Name: "Data Structures", Description: "Learn about stacks, queues, trees, and graphs."},
	{ID: "algorithms", Name: "Algorithms", Description: "Study common algorithms for sorting and searching."},
}

var languages = []string{"JavaScript", "Python", "Java", "C++", "TypeScript", "Go"}

// DefaultLanguage is selected when nothing else is configured.
const DefaultLanguage = "JavaScript"

// Topics returns a copy of the catalog in display order.
func Topics() []Topic {
	return append([]Topic(nil), topics...)
}

// DefaultTopic is the first catalog entry.
func DefaultTopic() Topic { return topics[0] }

// LookupTopic finds a topic by id or by name, ignoring case.
func LookupTopic(key string) (Topic, bool) {
	key = strings.TrimSpace(key)
	for _, t := range topics {
		if strings.EqualFold(t.ID, key) || strings.EqualFold(t.Name, key) {
			return t, true
		}
	}
	return Topic{}, false
}

// Languages returns the supported target languages in display order.
func Languages() []string {
	return append([]string(nil), languages...)
}

// LookupLanguage returns the canonical spelling of a supported language.
func LookupLanguage(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, l := range languages {
		if strings.EqualFold(l, name) {
			return l, true
		}
	}
	return "", false
}

// NextLanguage cycles through the supported languages.
func NextLanguage(current string) string {
	for i, l := range languages {
		if l == current {
			return languages[(i+1)%len(languages)]
		}
	}
	return DefaultLanguage
}
