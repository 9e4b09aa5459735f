// Package subject implements the round setup screen: subject choice,
// question count, timer toggle, and the entry points for a normal round,
// a weak-area retry, and the results history.
package subject

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/eduline/eduline/internal/bank"
	"github.com/eduline/eduline/internal/quiz"
	"github.com/eduline/eduline/internal/router"
	"github.com/eduline/eduline/internal/screen"
	"github.com/eduline/eduline/internal/screens/history"
	"github.com/eduline/eduline/internal/screens/round"
	"github.com/eduline/eduline/internal/store"
	"github.com/eduline/eduline/internal/ui/layout"
	"github.com/eduline/eduline/internal/ui/theme"
)

const (
	defaultQuestions = 5
	minQuestions     = 3
	maxQuestions     = 20
)

const (
	rowSubject = iota
	rowCount
	rowTimer
	rowStart
	rowRetry
	rowHistory
	rowMax
)

// SubjectScreen lets the learner configure and start a round.
type SubjectScreen struct {
	bank    *bank.Bank
	st      *store.Store
	student store.Student

	subjects []string
	subject  int
	count    int
	timer    bool
	row      int

	// last finished round, for the weak-area retry offer
	lastSubject string
	lastMissed  []int

	notice string
}

var _ screen.Screen = (*SubjectScreen)(nil)
var _ screen.KeyHintProvider = (*SubjectScreen)(nil)

// New creates the subject screen.
func New(b *bank.Bank, st *store.Store, student store.Student) *SubjectScreen {
	return &SubjectScreen{
		bank:     b,
		st:       st,
		student:  student,
		subjects: b.Subjects(),
		count:    defaultQuestions,
		timer:    true,
	}
}

func (s *SubjectScreen) Title() string {
	return "Choose a round"
}

func (s *SubjectScreen) Init() tea.Cmd {
	return nil
}

func (s *SubjectScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "←→", Description: "Adjust"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *SubjectScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case round.FinishedMsg:
		s.lastSubject = msg.Subject
		s.lastMissed = msg.MissedClusters
		s.notice = ""
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SubjectScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if s.row > 0 {
			s.row--
		}
	case "down", "j":
		if s.row < rowMax-1 {
			s.row++
		}
	case "left", "h":
		s.adjust(-1)
	case "right", "l":
		s.adjust(1)
	case "enter":
		switch s.row {
		case rowStart:
			return s, s.startRound(quiz.ModeNormal, nil)
		case rowRetry:
			return s, s.startRetry()
		case rowHistory:
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(s.st, s.student)}
			}
		default:
			s.row++
		}
	}
	return s, nil
}

func (s *SubjectScreen) adjust(delta int) {
	switch s.row {
	case rowSubject:
		if n := len(s.subjects); n > 0 {
			s.subject = (s.subject + delta + n) % n
		}
	case rowCount:
		s.count += delta
		if s.count < minQuestions {
			s.count = minQuestions
		}
		if s.count > maxQuestions {
			s.count = maxQuestions
		}
	case rowTimer:
		s.timer = !s.timer
	}
}

func (s *SubjectScreen) selectedSubject() string {
	if len(s.subjects) == 0 {
		return ""
	}
	return s.subjects[s.subject]
}

// retryAvailable reports whether the last round recorded misses for the
// currently selected subject.
func (s *SubjectScreen) retryAvailable() bool {
	return len(s.lastMissed) > 0 && s.lastSubject == s.selectedSubject()
}

func (s *SubjectScreen) startRound(mode quiz.Mode, candidates []int) tea.Cmd {
	cfg := round.Config{
		Subject:        s.selectedSubject(),
		TotalQuestions: s.count,
		Mode:           mode,
		WeakCandidates: candidates,
		TimerEnabled:   s.timer,
	}
	q, err := round.NewQuiz(s.bank, s.st, s.student, cfg)
	if err != nil {
		s.notice = err.Error()
		return nil
	}
	s.notice = ""
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: q}
	}
}

func (s *SubjectScreen) startRetry() tea.Cmd {
	if !s.retryAvailable() {
		s.notice = "No weak areas recorded yet. Try an adaptive round first."
		return nil
	}
	return s.startRound(quiz.ModeWeakOnly, s.lastMissed)
}

func (s *SubjectScreen) View(width, height int) string {
	var b strings.Builder

	greeting := "Welcome"
	if s.student.Name != "" {
		greeting += ", " + s.student.Name
	}
	b.WriteString(theme.Title.Width(width).Render(greeting + "!"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("ID: " + s.student.ID))
	b.WriteString("\n\n")

	var form strings.Builder
	form.WriteString(s.renderField(rowSubject, "Subject", "‹ "+s.selectedSubject()+" ›"))
	form.WriteString(s.renderField(rowCount, "Questions", fmt.Sprintf("‹ %d ›", s.count)))
	timerVal := "off"
	if s.timer {
		timerVal = "on (15s per question)"
	}
	form.WriteString(s.renderField(rowTimer, "Timer", "‹ "+timerVal+" ›"))
	form.WriteString("\n")
	form.WriteString(s.renderAction(rowStart, "Start adaptive quiz", false))
	form.WriteString(s.renderAction(rowRetry, "Retry weak areas", !s.retryAvailable()))
	form.WriteString(s.renderAction(rowHistory, "My past results", false))

	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(
		theme.Card.Render(form.String())))

	if s.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Warning).
			Render(s.notice))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(b.String())
}

func (s *SubjectScreen) renderField(row int, label, value string) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Width(12)
	line := labelStyle.Render(label) + value
	if s.row == row {
		return theme.Selected.Render("▸ ") + line + "\n"
	}
	return "  " + theme.Body.Render(line) + "\n"
}

func (s *SubjectScreen) renderAction(row int, label string, disabled bool) string {
	switch {
	case disabled:
		return "    " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(label) + "\n"
	case s.row == row:
		return theme.Selected.Render("  ▸ "+label) + "\n"
	default:
		return "    " + theme.Body.Render(label) + "\n"
	}
}
