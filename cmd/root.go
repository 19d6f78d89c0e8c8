package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyflow/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "studyflow",
	Short: "AI study planner and tutor",
	Long: "StudyFlow turns your notes into a study plan, key concepts, flashcards\n" +
		"and quizzes, and answers questions as a study assistant.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command with ctx available to every subcommand.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to the LLM request log database (overrides STUDYFLOW_DB)")
	pf.String("config-dir", ".", "Directory searched for studyflow.yaml and .env")
	pf.String("locale", "", "Message language, en or es (overrides config)")
	pf.Bool("no-request-log", false, "Do not record LLM requests")

	addInputFlags(rootCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// addInputFlags registers the flags that prefill the study inputs.
func addInputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("subject", "", "Subject to prefill")
	f.String("exam-date", "", "Exam date to prefill (YYYY-MM-DD)")
	f.Int("hours", -1, "Weekly study hours to prefill")
	f.String("notes-file", "", "Text or PDF file to load as notes")
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path, then STUDYFLOW_DB or the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
