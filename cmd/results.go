package cmd

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/eduline/eduline/internal/store"
)

var resultsCmd = &cobra.Command{
	Use:   "results <student-id>",
	Short: "Print a student's recent results",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		studentID := args[0]
		student, err := st.GetStudent(ctx, studentID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no student with ID %s", studentID)
			}
			return err
		}

		limit, _ := cmd.Flags().GetInt("limit")
		results, err := st.ResultsFor(ctx, student.ID, limit)
		if err != nil {
			return err
		}

		name := student.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Printf("Results for %s %s\n", student.ID, name)
		if len(results) == 0 {
			fmt.Println("No rounds recorded yet.")
			return nil
		}

		for _, r := range results {
			label := r.Subject
			if r.Mode == "weak_only" {
				label += " (weak areas)"
			}
			fmt.Printf("\n%s  %s\n", r.TakenAt.Format("2006-01-02 15:04"), label)
			fmt.Printf("  Score %d/%d, %.0f%% completed\n",
				r.Score, r.TotalQuestions, r.Progress*100)
			if len(r.WeakTopics) > 0 {
				topics := make([]string, 0, len(r.WeakTopics))
				for t := range r.WeakTopics {
					topics = append(topics, t)
				}
				sort.Strings(topics)
				for _, t := range topics {
					fmt.Printf("  Weak: %s (%d missed)\n", t, r.WeakTopics[t])
				}
			}
		}
		return nil
	},
}

func init() {
	resultsCmd.Flags().Int("limit", 10, "Maximum number of results to show (0 for all)")
}
