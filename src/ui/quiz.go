package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Protocol-Lattice/lattice-tutor/src/tutor"
)

// RenderQuiz draws the quiz screen. cursor marks the question that number
// keys answer.
func RenderQuiz(snap tutor.Snapshot, cursor int, styles Styles) string {
	st := snap.Mode(tutor.ModeQuiz)
	if len(snap.Quiz) == 0 {
		if st.Loading() || st.Err != "" {
			return ""
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			styles.ListHeader.Render(fmt.Sprintf("Test your knowledge of %s", snap.Topic.Name)),
			styles.Subtle.Render(fmt.Sprintf("Five questions in %s, from beginner to intermediate.", snap.Language)),
			"",
			styles.Help.Render("press g to start the quiz"),
		)
	}

	var lines []string
	if snap.Revealed {
		lines = append(lines, styles.Success.Render(fmt.Sprintf("You scored %d / %d", snap.Score, len(snap.Quiz))), "")
	}
	for i, item := range snap.Quiz {
		marker := "  "
		if i == cursor {
			marker = styles.Accent.Render("› ")
		}
		lines = append(lines, marker+styles.ListHeader.Render(fmt.Sprintf("%d. %s", i+1, item.Question)))
		chosen, answered := snap.Answers[i]
		for j, opt := range item.Options {
			label := fmt.Sprintf("%d) %s", j+1, opt)
			switch {
			case snap.Revealed && opt == item.CorrectAnswer:
				lines = append(lines, styles.OptionCorrect.Render(label+" ✓"))
			case snap.Revealed && answered && opt == chosen:
				lines = append(lines, styles.OptionWrong.Render(label+" ✗"))
			case !snap.Revealed && answered && opt == chosen:
				lines = append(lines, styles.OptionChosen.Render(label+" ●"))
			default:
				lines = append(lines, styles.Option.Render(label))
			}
		}
		if snap.Revealed {
			if !answered {
				lines = append(lines, styles.OptionWrong.UnsetStrikethrough().Render("Not answered"))
			}
			lines = append(lines, styles.Option.Render(styles.Subtle.Render(item.Explanation)))
		}
		lines = append(lines, "")
	}

	if snap.Revealed {
		lines = append(lines, styles.Help.Render("enter: try another quiz"))
	} else {
		left := len(snap.Quiz) - len(snap.Answers)
		hint := "enter: check answers"
		if left > 0 {
			hint += fmt.Sprintf(" (%d unanswered)", left)
		}
		lines = append(lines, styles.Help.Render(hint))
	}
	return strings.Join(lines, "\n")
}
