package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eduline/eduline/internal/app"
	"github.com/eduline/eduline/internal/bank"
	"github.com/eduline/eduline/internal/store"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start an adaptive quiz session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp loads the question bank, opens the result store and hands
// control to the TUI. Shared by the root command and `play`.
func runApp(cmd *cobra.Command) error {
	questionsPath := resolveQuestionsPath(cmd)
	b, err := bank.Load(questionsPath)
	if err != nil {
		return fmt.Errorf("load questions from %s: %w", questionsPath, err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	return app.Run(app.Options{
		Bank:  b,
		Store: st,
	})
}
