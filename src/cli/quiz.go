package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Protocol-Lattice/lattice-tutor/src/tutor"
	"github.com/Protocol-Lattice/lattice-tutor/src/ui"
)

var quizCmd = &cobra.Command{
	Use:   "quiz [topic]",
	Short: "Take a five-question quiz in the terminal",
	Long: `Generate a multiple-choice quiz and answer it interactively.
Type 1-4 to answer, or press enter to skip a question.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), topicArg(args), false)
		if err != nil {
			return err
		}
		defer a.Close()
		return runQuiz(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), a.gateway, a.topic, a.language)
	},
}

func runQuiz(ctx context.Context, in io.Reader, out, errOut io.Writer, b tutor.Backend, topic tutor.Topic, language string) error {
	cyan := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.FgHiBlack)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	sp := newProgress(errOut, ui.LoadingText(tutor.ModeQuiz))
	sp.Start()
	session, err := tutor.Once(ctx, b, topic, language, tutor.ModeQuiz, "", nil)
	if err != nil {
		sp.Fail(tutor.FailureMessage(tutor.ModeQuiz))
		return err
	}
	sp.Stop()

	quiz := session.Snapshot().Quiz
	cyan.Fprintf(out, "\n  Quiz: %s (%s)\n", topic.Name, language)

	scanner := bufio.NewScanner(in)
	eof := false
	for i, item := range quiz {
		fmt.Fprintf(out, "\n  %d. %s\n", i+1, item.Question)
		for j, opt := range item.Options {
			fmt.Fprintf(out, "     %d) %s\n", j+1, opt)
		}
		for !eof {
			dim.Fprintf(out, "  answer (1-%d, enter to skip): ", len(item.Options))
			if !scanner.Scan() {
				eof = true
				fmt.Fprintln(out)
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				break
			}
			n, err := strconv.Atoi(line)
			if err == nil && n >= 1 && n <= len(item.Options) && session.Answer(i, item.Options[n-1]) {
				break
			}
			red.Fprintf(out, "  please type a number between 1 and %d\n", len(item.Options))
		}
	}

	session.Reveal()
	snap := session.Snapshot()
	fmt.Fprintln(out)
	for i, item := range snap.Quiz {
		chosen, answered := snap.Answers[i]
		switch {
		case !answered:
			red.Fprintf(out, "  ✗ %d. not answered", i+1)
		case chosen == item.CorrectAnswer:
			green.Fprintf(out, "  ✓ %d. %s", i+1, chosen)
		default:
			red.Fprintf(out, "  ✗ %d. %s", i+1, chosen)
		}
		if !answered || chosen != item.CorrectAnswer {
			fmt.Fprintf(out, " (answer: %s)", item.CorrectAnswer)
		}
		fmt.Fprintln(out)
		dim.Fprintf(out, "     %s\n", item.Explanation)
	}
	cyan.Fprintf(out, "\n  You scored %d / %d\n\n", snap.Score, len(snap.Quiz))
	return nil
}
