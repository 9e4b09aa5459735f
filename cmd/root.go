package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/eduline/eduline/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "eduline",
	Short: "Adaptive quiz for the terminal",
	Long: "Eduline — adaptive terminal quiz that tracks weak topic areas\n" +
		"and offers focused retry rounds.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(loadDotEnv)

	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides EDULINE_DB env var)")
	rootCmd.PersistentFlags().String("questions", "", "Path to question CSV file (overrides EDULINE_QUESTIONS env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadDotEnv loads a .env file from the working directory when present.
func loadDotEnv() {
	_ = godotenv.Load()
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then EDULINE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveQuestionsPath returns the question CSV path using --questions,
// then EDULINE_QUESTIONS, then questions.csv in the working directory.
func resolveQuestionsPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("questions"); p != "" {
		return p
	}
	if p := os.Getenv("EDULINE_QUESTIONS"); p != "" {
		return p
	}
	return "questions.csv"
}
