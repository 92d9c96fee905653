package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Protocol-Lattice/lattice-tutor/src/tutor"
	"github.com/Protocol-Lattice/lattice-tutor/src/ui"
)

var learnCmd = &cobra.Command{
	Use:   "learn [topic]",
	Short: "Explain a topic for beginners",
	Long: `Print a beginner-friendly explanation of a topic with code examples.

Examples:
  lattice-tutor learn
  lattice-tutor learn loops --language Go
  lattice-tutor learn "Object-Oriented Programming"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return ask(cmd, tutor.ModeLearn, args, "")
	},
}

var projectsCmd = &cobra.Command{
	Use:   "projects [topic]",
	Short: "Suggest beginner project ideas for a topic",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return ask(cmd, tutor.ModeProjects, args, "")
	},
}

var explainCmd = &cobra.Command{
	Use:   "explain [code]",
	Short: "Explain a code snippet step by step",
	Long: `Explain what a piece of code does. The code is read from the arguments,
or from stdin when none are given.

Examples:
  lattice-tutor explain "let x = [1, 2, 3].map(n => n * 2);"
  cat sort.py | lattice-tutor explain --language Python`,
	RunE: func(cmd *cobra.Command, args []string) error {
		code := strings.Join(args, " ")
		if strings.TrimSpace(code) == "" || code == "-" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			code = string(data)
		}
		return ask(cmd, tutor.ModeExplain, nil, code)
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate <description>",
	Short: "Generate commented code from a description",
	Long: `Generate a well-commented code snippet.

Examples:
  lattice-tutor generate "a function that checks for palindromes"
  lattice-tutor generate fizzbuzz --language C++`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return ask(cmd, tutor.ModeGenerate, nil, strings.Join(args, " "))
	},
}

func ask(cmd *cobra.Command, mode tutor.Mode, args []string, input string) error {
	if mode.TakesInput() && strings.TrimSpace(input) == "" {
		return fmt.Errorf("nothing to %s: %w", mode.Slug(), tutor.ErrEmptyInput)
	}
	a, err := newApp(cmd.Context(), topicArg(args), false)
	if err != nil {
		return err
	}
	defer a.Close()

	return runAsk(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), a.gateway, a.topic, a.language, mode, input)
}

// runAsk streams one reply to out. The spinner runs on errOut until the
// first fragment arrives.
func runAsk(ctx context.Context, out, errOut io.Writer, b tutor.Backend, topic tutor.Topic, language string, mode tutor.Mode, input string) error {
	if mode == tutor.ModeLearn || mode == tutor.ModeProjects {
		cyan := color.New(color.FgCyan, color.Bold)
		cyan.Fprintf(errOut, "\n  %s · %s\n\n", topic.Name, language)
	}

	sp := newProgress(errOut, ui.LoadingText(mode))
	sp.Start()

	var wrote, endsWithNewline bool
	_, err := tutor.Once(ctx, b, topic, language, mode, input, func(text string) {
		if !wrote {
			sp.Stop()
			wrote = true
		}
		fmt.Fprint(out, text)
		endsWithNewline = strings.HasSuffix(text, "\n")
	})
	if wrote && !endsWithNewline {
		fmt.Fprintln(out)
	}
	if err != nil {
		sp.Fail(tutor.FailureMessage(mode))
		return err
	}
	sp.Stop()
	return nil
}
