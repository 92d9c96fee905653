package tutor

import "strings"

// Mode is one of the five interaction surfaces.
type Mode int

const (
	ModeLearn Mode = iota
	ModeExplain
	ModeGenerate
	ModeQuiz
	ModeProjects
)

const modeCount = int(ModeProjects) + 1

// Modes lists every mode in tab order.
func Modes() []Mode {
	return []Mode{ModeLearn, ModeExplain, ModeGenerate, ModeQuiz, ModeProjects}
}

var modeLabels = [modeCount]string{"Learn", "Code Explainer", "Code Generator", "Quiz Master", "Project Ideas"}
var modeSlugs = [modeCount]string{"learn", "explain", "generate", "quiz", "projects"}

func (m Mode) valid() bool { return m >= 0 && int(m) < modeCount }

// String returns the tab label.
func (m Mode) String() string {
	if !m.valid() {
		return "Unknown"
	}
	return modeLabels[m]
}

// Slug is the lowercase identifier used by the CLI, HTTP routes and metrics.
func (m Mode) Slug() string {
	if !m.valid() {
		return "unknown"
	}
	return modeSlugs[m]
}

// Streaming reports whether the mode's response arrives as fragments.
func (m Mode) Streaming() bool { return m != ModeQuiz }

// TakesInput reports whether the mode is driven by free text from the learner.
func (m Mode) TakesInput() bool { return m == ModeExplain || m == ModeGenerate }

// Next returns the following tab, wrapping around.
func (m Mode) Next() Mode { return Mode((int(m) + 1) % modeCount) }

// Prev returns the preceding tab, wrapping around.
func (m Mode) Prev() Mode { return Mode((int(m) + modeCount - 1) % modeCount) }

// ParseMode accepts a slug or a label.
func ParseMode(s string) (Mode, bool) {
	s = strings.TrimSpace(s)
	for i := 0; i < modeCount; i++ {
		if strings.EqualFold(s, modeSlugs[i]) || strings.EqualFold(s, modeLabels[i]) {
			return Mode(i), true
		}
	}
	return 0, false
}

// FailureMessage is the learner-facing text shown when a request for m fails.
func FailureMessage(m Mode) string {
	switch m {
	case ModeLearn:
		return "An error occurred while fetching the topic explanation. Please try again."
	case ModeQuiz:
		return "Failed to generate quiz. Please try again."
	case ModeProjects:
		return "An error occurred while fetching project ideas. Please try again."
	default:
		return "An error occurred while processing your request. Please try again."
	}
}

// Phase is the request lifecycle of a single mode.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseStreaming
	PhaseSettled
	PhaseErrored
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseStreaming:
		return "streaming"
	case PhaseSettled:
		return "settled"
	case PhaseErrored:
		return "errored"
	}
	return "unknown"
}
