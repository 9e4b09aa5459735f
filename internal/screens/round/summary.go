package round

import (
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/eduline/eduline/internal/bank"
	"github.com/eduline/eduline/internal/quiz"
	"github.com/eduline/eduline/internal/router"
	"github.com/eduline/eduline/internal/screen"
	"github.com/eduline/eduline/internal/store"
	"github.com/eduline/eduline/internal/ui/components"
	"github.com/eduline/eduline/internal/ui/layout"
	"github.com/eduline/eduline/internal/ui/theme"
)

// summaryScreen shows the finished round and offers a weak-area retry.
type summaryScreen struct {
	bank    *bank.Bank
	st      *store.Store
	student store.Student
	cfg     Config

	summary  *quiz.Summary
	missed   []int
	saveErr  error
	timedOut bool
	notice   string

	menu components.Menu
}

var _ screen.Screen = (*summaryScreen)(nil)
var _ screen.KeyHintProvider = (*summaryScreen)(nil)

func newSummary(b *bank.Bank, st *store.Store, student store.Student, cfg Config,
	sum *quiz.Summary, missed []int, saveErr error, timedOut bool) *summaryScreen {

	s := &summaryScreen{
		bank:     b,
		st:       st,
		student:  student,
		cfg:      cfg,
		summary:  sum,
		missed:   missed,
		saveErr:  saveErr,
		timedOut: timedOut,
	}

	s.menu = components.NewMenu([]components.MenuItem{
		{
			Label:    "Retry weak areas",
			Disabled: len(missed) == 0,
			Action:   s.retryWeakAreas,
		},
		{
			Label:  "Choose another round",
			Action: s.backToSubjects,
		},
	})
	return s
}

func (s *summaryScreen) Title() string {
	return "Round complete"
}

func (s *summaryScreen) Init() tea.Cmd {
	return nil
}

func (s *summaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
}

func (s *summaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

// retryWeakAreas starts a weak-only round over the clusters this round
// missed, same subject and length.
func (s *summaryScreen) retryWeakAreas() tea.Cmd {
	cfg := Config{
		Subject:        s.cfg.Subject,
		TotalQuestions: s.cfg.TotalQuestions,
		Mode:           quiz.ModeWeakOnly,
		WeakCandidates: s.missed,
		TimerEnabled:   s.cfg.TimerEnabled,
	}
	next, err := NewQuiz(s.bank, s.st, s.student, cfg)
	if err != nil {
		s.notice = err.Error()
		return nil
	}
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// backToSubjects pops to the subject screen and hands it this round's
// missed clusters for its own retry offer.
func (s *summaryScreen) backToSubjects() tea.Cmd {
	subject := s.summary.Subject
	missed := s.missed
	return tea.Sequence(
		func() tea.Msg { return router.PopScreenMsg{} },
		func() tea.Msg { return FinishedMsg{Subject: subject, MissedClusters: missed} },
	)
}

func (s *summaryScreen) View(width, height int) string {
	sum := s.summary
	var b strings.Builder

	heading := "🎓 Round complete!"
	if s.timedOut {
		heading = "⏰ Time's up!"
	}
	b.WriteString(theme.Title.Width(width).Render(heading))
	b.WriteString("\n\n")

	b.WriteString(theme.Subtitle.Width(width).Render(
		fmt.Sprintf("%s · Final score: %d / %d", sum.Subject, sum.Score, sum.TotalQuestions)))
	b.WriteString("\n\n")

	bar := components.ProgressBar{
		Label:       "Progress",
		Percent:     sum.ProgressRatio,
		ShowPercent: true,
		Width:       width / 2,
	}
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(bar.View()))
	b.WriteString("\n\n")

	if len(sum.WeakTopics) > 0 {
		var card strings.Builder
		card.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Bold(true).Render("Weak areas"))
		card.WriteString("\n\n")
		for _, wt := range sortedWeakTopics(sum.WeakTopics) {
			card.WriteString(fmt.Sprintf("  %s — %d mistake(s)\n", wt.topic, wt.misses))
		}
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(
			theme.Card.Render(card.String())))
		b.WriteString("\n\n")
	}

	if s.saveErr != nil {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Warning).
			Render("Could not save this result: " + s.saveErr.Error()))
		b.WriteString("\n\n")
	}
	if s.notice != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Warning).
			Render(s.notice))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(s.menu.View()))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(b.String())
}

type weakTopic struct {
	topic  string
	misses int
}

// sortedWeakTopics orders topics by miss count descending, then name.
func sortedWeakTopics(topics map[string]int) []weakTopic {
	out := make([]weakTopic, 0, len(topics))
	for t, m := range topics {
		out = append(out, weakTopic{topic: t, misses: m})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].misses != out[j].misses {
			return out[i].misses > out[j].misses
		}
		return out[i].topic < out[j].topic
	})
	return out
}
