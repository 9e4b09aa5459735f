package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eduline/eduline/internal/quiz"
)

// Result is one persisted round summary.
type Result struct {
	StudentID      string
	Subject        string
	Mode           string
	Score          int
	TotalQuestions int
	Progress       float64
	WeakTopics     map[string]int
	TakenAt        time.Time
}

// SaveResult records a finished round for a student. Persistence is
// fire-and-forget from the session's point of view: callers report a
// failure to the user but never feed it back into session state.
func (s *Store) SaveResult(ctx context.Context, studentID string, sum *quiz.Summary) error {
	weak, err := json.Marshal(sum.WeakTopics)
	if err != nil {
		return fmt.Errorf("encode weak clusters: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO results (student_uuid, subject, mode, score, total_questions, progress, weak_clusters_json, taken_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		studentID, sum.Subject, string(sum.Mode), sum.Score, sum.TotalQuestions,
		sum.ProgressRatio, string(weak), time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

// ResultsFor returns a student's results, most recent first.
// limit <= 0 means no limit.
func (s *Store) ResultsFor(ctx context.Context, studentID string, limit int) ([]Result, error) {
	q := `
		SELECT student_uuid, subject, mode, score, total_questions, progress, weak_clusters_json, taken_at
		FROM results WHERE student_uuid = ? ORDER BY taken_at DESC`
	args := []any{studentID}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var r Result
		var weakJSON, takenAt string
		if err := rows.Scan(&r.StudentID, &r.Subject, &r.Mode, &r.Score,
			&r.TotalQuestions, &r.Progress, &weakJSON, &takenAt); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if err := json.Unmarshal([]byte(weakJSON), &r.WeakTopics); err != nil {
			return nil, fmt.Errorf("decode weak clusters: %w", err)
		}
		r.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
		out = append(out, r)
	}
	return out, rows.Err()
}
