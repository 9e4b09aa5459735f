package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/eduline/eduline/internal/bank"
	"github.com/eduline/eduline/internal/router"
	"github.com/eduline/eduline/internal/screen"
	"github.com/eduline/eduline/internal/screens/register"
	"github.com/eduline/eduline/internal/screens/subject"
	"github.com/eduline/eduline/internal/store"
	"github.com/eduline/eduline/internal/ui/layout"
)

// Options carries the collaborators the TUI needs.
type Options struct {
	Bank  *bank.Bank
	Store *store.Store
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router    *router.Router
	studentID string
	warning   string
	width     int
	height    int
}

// newAppModel creates an AppModel starting at the register screen.
func newAppModel(opts Options) AppModel {
	reg := register.New(opts.Store, func(st store.Student) screen.Screen {
		return subject.New(opts.Bank, opts.Store, st)
	})
	return AppModel{
		router: router.New(reg),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case register.RegisteredMsg:
		m.studentID = msg.Student.ID
		if msg.SaveErr != nil {
			m.warning = "Could not save registration: " + msg.SaveErr.Error()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.studentID, m.warning, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
