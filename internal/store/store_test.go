package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduline/eduline/internal/quiz"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewStudentID(t *testing.T) {
	id := NewStudentID()
	assert.True(t, strings.HasPrefix(id, "EDU-"))
	assert.Len(t, id, 12)
	assert.Equal(t, strings.ToUpper(id), id)
	assert.NotEqual(t, id, NewStudentID())
}

func TestStudentRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	st := Student{
		ID:    NewStudentID(),
		Name:  "Asha",
		Email: "asha@example.com",
		Area:  "Rural",
	}
	require.NoError(t, s.InsertStudent(ctx, st))

	got, err := s.GetStudent(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, st.Name, got.Name)
	assert.Equal(t, st.Area, got.Area)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = s.GetStudent(ctx, "EDU-MISSING1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Student IDs are unique.
	assert.Error(t, s.InsertStudent(ctx, st))
}

func TestSaveAndListResults(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	studentID := NewStudentID()

	sums := []*quiz.Summary{
		{
			Subject:        "Mathematics",
			Mode:           quiz.ModeNormal,
			Score:          2,
			TotalQuestions: 3,
			ProgressRatio:  1.0,
			WeakTopics:     map[string]int{"Simple Calculations": 1},
		},
		{
			Subject:        "English",
			Mode:           quiz.ModeWeakOnly,
			Score:          4,
			TotalQuestions: 5,
			ProgressRatio:  1.0,
			WeakTopics:     map[string]int{},
		},
	}
	for _, sum := range sums {
		require.NoError(t, s.SaveResult(ctx, studentID, sum))
	}

	results, err := s.ResultsFor(ctx, studentID, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	var subjects []string
	for _, r := range results {
		subjects = append(subjects, r.Subject)
	}
	assert.ElementsMatch(t, []string{"Mathematics", "English"}, subjects)

	for _, r := range results {
		if r.Subject == "Mathematics" {
			assert.Equal(t, 2, r.Score)
			assert.Equal(t, map[string]int{"Simple Calculations": 1}, r.WeakTopics)
			assert.Equal(t, "normal", r.Mode)
		}
	}

	// Limit applies.
	one, err := s.ResultsFor(ctx, studentID, 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)

	// Unknown student simply has no results.
	none, err := s.ResultsFor(ctx, "EDU-NOBODY99", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}
