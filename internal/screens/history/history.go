// Package history lists a student's past round results.
package history

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/eduline/eduline/internal/router"
	"github.com/eduline/eduline/internal/screen"
	"github.com/eduline/eduline/internal/store"
	"github.com/eduline/eduline/internal/ui/layout"
	"github.com/eduline/eduline/internal/ui/theme"
)

const maxResults = 10

type resultsLoadedMsg struct {
	Results []store.Result
	Err     error
}

// HistoryScreen shows the student's most recent results.
type HistoryScreen struct {
	st      *store.Store
	student store.Student

	results []store.Result
	loaded  bool
	errMsg  string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates the history screen.
func New(st *store.Store, student store.Student) *HistoryScreen {
	return &HistoryScreen{st: st, student: student}
}

func (s *HistoryScreen) Title() string {
	return "Past results"
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		results, err := s.st.ResultsFor(context.Background(), s.student.ID, maxResults)
		return resultsLoadedMsg{Results: results, Err: err}
	}
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultsLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.results = msg.Results
		}
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "esc" || msg.String() == "enter" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render("Failed to load results: " + s.errMsg)
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("Loading...")
	}
	if len(s.results) == 0 {
		return center.Foreground(theme.TextDim).Render("No previous results found.")
	}

	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("Your last rounds"))
	b.WriteString("\n\n")

	var list strings.Builder
	for _, r := range s.results {
		modeTag := ""
		if r.Mode == "weak_only" {
			modeTag = " (weak areas)"
		}
		list.WriteString(fmt.Sprintf("%s  %s%s\n",
			theme.Hint.Render(r.TakenAt.Format("2006-01-02 15:04")),
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(r.Subject),
			theme.Hint.Render(modeTag)))
		list.WriteString(fmt.Sprintf("    Score %d/%d · progress %d%%\n",
			r.Score, r.TotalQuestions, int(r.Progress*100)))
		if len(r.WeakTopics) > 0 {
			names := make([]string, 0, len(r.WeakTopics))
			for t := range r.WeakTopics {
				names = append(names, t)
			}
			sort.Strings(names)
			topics := make([]string, 0, len(names))
			for _, t := range names {
				topics = append(topics, fmt.Sprintf("%s (%d)", t, r.WeakTopics[t]))
			}
			list.WriteString("    " + theme.Hint.Render("Weak: "+strings.Join(topics, ", ")) + "\n")
		}
		list.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(
		theme.Card.Render(strings.TrimRight(list.String(), "\n"))))

	return center.Render(b.String())
}
