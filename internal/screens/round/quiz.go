// Package round drives one quiz round: the question/answer loop with
// its countdown timer, and the summary shown when the round ends.
package round

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

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

// secondsPerQuestion sizes the continuous round timer.
const secondsPerQuestion = 15

// Config describes the round to play.
type Config struct {
	Subject        string
	TotalQuestions int
	Mode           quiz.Mode
	WeakCandidates []int
	TimerEnabled   bool
}

// QuizScreen runs one adaptive session from first question to finish.
type QuizScreen struct {
	bank    *bank.Bank
	st      *store.Store
	student store.Student
	cfg     Config

	session  *quiz.Session
	options  components.OptionList
	timeLeft time.Duration

	quitConfirm bool
	ended       bool
	errMsg      string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// NewQuiz creates the screen and its session. Session construction
// errors (no weak areas, bad configuration) surface to the caller so it
// can fall back instead of pushing a broken screen.
func NewQuiz(b *bank.Bank, st *store.Store, student store.Student, cfg Config) (*QuizScreen, error) {
	session, err := quiz.NewSession(b, quiz.Config{
		Subject:        cfg.Subject,
		TotalQuestions: cfg.TotalQuestions,
		Mode:           cfg.Mode,
		WeakCandidates: cfg.WeakCandidates,
	})
	if err != nil {
		return nil, err
	}

	return &QuizScreen{
		bank:     b,
		st:       st,
		student:  student,
		cfg:      cfg,
		session:  session,
		timeLeft: time.Duration(cfg.TotalQuestions*secondsPerQuestion) * time.Second,
	}, nil
}

func (s *QuizScreen) Title() string {
	if s.cfg.Mode == quiz.ModeWeakOnly {
		return s.cfg.Subject + " · Weak areas"
	}
	return s.cfg.Subject + " · Adaptive"
}

func (s *QuizScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.loadNext()}
	if s.cfg.TimerEnabled {
		cmds = append(cmds, tickCmd())
	}
	return tea.Batch(cmds...)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.quitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "Quit round"},
			{Key: "N", Description: "Keep going"},
		}
	case s.session.Phase() == quiz.PhaseAnswered:
		return []layout.KeyHint{
			{Key: "any key", Description: "Next question"},
		}
	default:
		return []layout.KeyHint{
			{Key: "A-D", Description: "Choose"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit round"},
		}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return s.handleTick()
	case endRoundMsg:
		return s.endRound(msg.timedOut)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleTick() (screen.Screen, tea.Cmd) {
	if s.ended || !s.cfg.TimerEnabled {
		return s, nil
	}
	s.timeLeft -= time.Second
	if s.timeLeft <= 0 {
		s.timeLeft = 0
		return s, func() tea.Msg { return endRoundMsg{timedOut: true} }
	}
	return s, tickCmd()
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.ended {
		return s, nil
	}
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			s.quitConfirm = false
			return s, func() tea.Msg { return endRoundMsg{} }
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	// Feedback overlay: any key advances.
	if s.session.Phase() == quiz.PhaseAnswered {
		if err := s.session.Advance(); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		if s.session.Finished() {
			return s, func() tea.Msg { return endRoundMsg{} }
		}
		return s, s.loadNext()
	}

	switch key {
	case "esc":
		s.quitConfirm = true
		return s, nil
	case "enter":
		return s.submit()
	case "1", "2", "3", "4":
		idx := int(key[0] - '1')
		if idx < len(s.options.Options) {
			s.options.Selected = idx
			return s.submit()
		}
		return s, nil
	case "a", "b", "c", "d", "A", "B", "C", "D":
		if s.options.SelectKey(strings.ToUpper(key)) {
			return s.submit()
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.options, cmd = s.options.Update(msg)
	return s, cmd
}

// loadNext pulls the next question out of the session. An exhausted
// bank ends the round early with whatever was accumulated.
func (s *QuizScreen) loadNext() tea.Cmd {
	q, err := s.session.NextQuestion()
	if err != nil {
		if errors.Is(err, quiz.ErrExhaustedQuestions) {
			return func() tea.Msg { return endRoundMsg{} }
		}
		s.errMsg = err.Error()
		return nil
	}
	s.options = components.NewOptionList(q.Options)
	return nil
}

func (s *QuizScreen) submit() (screen.Screen, tea.Cmd) {
	fb, err := s.session.SubmitAnswer(s.options.SelectedKey())
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.options.Reveal(fb.CorrectKey, s.options.SelectedKey())
	return s, nil
}

// endRound finalizes the session, records the result, and swaps in the
// summary screen. A persistence failure becomes a warning on the
// summary; it never affects the session outcome.
func (s *QuizScreen) endRound(timedOut bool) (screen.Screen, tea.Cmd) {
	if s.ended {
		return s, nil
	}
	s.ended = true

	if !s.session.Finished() {
		s.session.ForceFinish()
	}
	sum, err := s.session.Summary()
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	saveErr := s.st.SaveResult(context.Background(), s.student.ID, sum)

	summary := newSummary(s.bank, s.st, s.student, s.cfg, sum, s.session.MissedClusters(), saveErr, timedOut)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary}
	}
}

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.Error).
			Render("Error: " + s.errMsg + "\n\nPress any key to go back.")
	}

	if s.quitConfirm {
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(theme.Card.Render("Quit this round?\n\nProgress so far will be recorded.\n\n" +
				theme.Hint.Render("Y to quit · N to keep going")))
	}

	q := s.session.Current()
	if q == nil {
		return ""
	}

	var b strings.Builder

	// Progress and timer line.
	statusLeft := fmt.Sprintf("Question %d of %d", s.session.Index()+1, s.session.TotalQuestions())
	bar := components.ProgressBar{
		Percent: s.session.Progress(),
		Width:   width / 3,
	}
	line := theme.Body.Render(statusLeft) + "   " + bar.View()
	if s.cfg.TimerEnabled {
		mins := int(s.timeLeft.Minutes())
		secs := int(s.timeLeft.Seconds()) % 60
		timer := fmt.Sprintf("⏳ %02d:%02d", mins, secs)
		style := lipgloss.NewStyle().Foreground(theme.Accent)
		if s.timeLeft <= 10*time.Second {
			style = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
		}
		line += "   " + style.Render(timer)
	}
	b.WriteString(line + "\n\n")

	// Question card.
	var card strings.Builder
	card.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(q.Prompt))
	card.WriteString("\n\n")
	card.WriteString(s.options.View())

	if fb := s.session.Feedback(); fb != nil {
		card.WriteString("\n")
		if fb.Correct {
			card.WriteString(theme.Correct.Render("✓ Correct! Great job."))
		} else {
			card.WriteString(theme.Incorrect.Render(
				fmt.Sprintf("✗ Wrong! Correct answer: %s) %s", fb.CorrectKey, fb.CorrectAns)))
		}
		card.WriteString("\n" + theme.Hint.Render("Press any key for the next question"))
	}

	b.WriteString(theme.Card.Width(width * 3 / 4).Render(card.String()))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(b.String())
}
