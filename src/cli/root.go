// Package cli wires the tutor's surfaces behind one cobra command tree.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	tui "github.com/Protocol-Lattice/lattice-tutor/src"
	"github.com/Protocol-Lattice/lattice-tutor/src/tutor"
)

var (
	configPath   string
	topicFlag    string
	languageFlag string
)

var rootCmd = &cobra.Command{
	Use:   "lattice-tutor",
	Short: "An AI programming tutor for your terminal",
	Long: `lattice-tutor teaches programming fundamentals with an AI model.

Run without arguments to open the interactive tutor, or use a subcommand
for a single answer on stdout.

Examples:
  lattice-tutor --topic loops --language Python
  lattice-tutor learn functions
  lattice-tutor explain "for i in range(3): print(i)"
  cat main.go | lattice-tutor explain --language Go
  lattice-tutor generate "reverse a string"
  lattice-tutor quiz --topic arrays
  lattice-tutor serve --addr :9000`,
	Args:          cobra.NoArgs,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.lattice-tutor/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&topicFlag, "topic", "t", "", "Topic id or name")
	rootCmd.PersistentFlags().StringVarP(&languageFlag, "language", "l", "", "Programming language")

	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
}

// SetVersion is called from main with the build version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the entry point called from main.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// ExecuteArgs runs the command tree with explicit arguments.
func ExecuteArgs(args []string) error {
	rootCmd.SetArgs(args)
	return Execute()
}

func runTUI(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context(), topicFlag, false)
	if err != nil {
		return err
	}
	defer a.Close()

	session := tutor.NewSession(a.topic, a.language)
	return tui.Run(cmd.Context(), session, a.gateway, a.log)
}
