// Package register implements the student profile form shown on first
// launch. All fields are optional; submitting creates the student ID
// and persists the profile.
package register

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/eduline/eduline/internal/router"
	"github.com/eduline/eduline/internal/screen"
	"github.com/eduline/eduline/internal/store"
	"github.com/eduline/eduline/internal/ui/components"
	"github.com/eduline/eduline/internal/ui/layout"
	"github.com/eduline/eduline/internal/ui/theme"
)

// RegisteredMsg announces a newly created student profile. The app model
// picks it up to populate the header; the register screen replaces
// itself with the screen produced by nextFactory.
type RegisteredMsg struct {
	Student store.Student
	// SaveErr is set when the profile could not be persisted. The
	// session continues; the error is surfaced as a warning only.
	SaveErr error
}

const (
	fieldName = iota
	fieldPhone
	fieldEmail
	fieldArea
	fieldSubmit
	fieldCount
)

var areas = []string{"Urban", "Rural"}

// RegisterScreen is the profile form.
type RegisterScreen struct {
	st          *store.Store
	nextFactory func(student store.Student) screen.Screen

	inputs  []components.TextInput
	area    int
	focused int
}

var _ screen.Screen = (*RegisterScreen)(nil)
var _ screen.KeyHintProvider = (*RegisterScreen)(nil)

// New creates the register screen. nextFactory builds the screen shown
// after registration, with the new student injected.
func New(st *store.Store, nextFactory func(store.Student) screen.Screen) *RegisterScreen {
	inputs := []components.TextInput{
		components.NewTextInput("Name", "optional", 40),
		components.NewTextInput("Phone", "optional", 20),
		components.NewTextInput("Email", "optional", 60),
	}
	return &RegisterScreen{
		st:          st,
		nextFactory: nextFactory,
		inputs:      inputs,
	}
}

func (s *RegisterScreen) Title() string {
	return "Welcome"
}

func (s *RegisterScreen) Init() tea.Cmd {
	return s.inputs[fieldName].Focus()
}

func (s *RegisterScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Next field"},
		{Key: "Enter", Description: "Create student ID"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *RegisterScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s.updateFocusedInput(msg)
	}

	switch kmsg.String() {
	case "tab", "down":
		return s, s.focusField((s.focused + 1) % fieldCount)
	case "shift+tab", "up":
		return s, s.focusField((s.focused - 1 + fieldCount) % fieldCount)
	case "left", "right":
		if s.focused == fieldArea {
			s.area = (s.area + 1) % len(areas)
			return s, nil
		}
	case "enter":
		if s.focused == fieldSubmit {
			return s, s.submit()
		}
		return s, s.focusField((s.focused + 1) % fieldCount)
	}

	return s.updateFocusedInput(msg)
}

func (s *RegisterScreen) updateFocusedInput(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.focused >= len(s.inputs) {
		return s, nil
	}
	var cmd tea.Cmd
	s.inputs[s.focused], cmd = s.inputs[s.focused].Update(msg)
	return s, cmd
}

func (s *RegisterScreen) focusField(i int) tea.Cmd {
	if s.focused < len(s.inputs) {
		s.inputs[s.focused].Blur()
	}
	s.focused = i
	if i < len(s.inputs) {
		return s.inputs[i].Focus()
	}
	return nil
}

// submit creates the student ID, saves the profile, and moves on to the
// next screen. A save failure is reported, not fatal.
func (s *RegisterScreen) submit() tea.Cmd {
	student := store.Student{
		ID:    store.NewStudentID(),
		Name:  strings.TrimSpace(s.inputs[fieldName].Value()),
		Phone: strings.TrimSpace(s.inputs[fieldPhone].Value()),
		Email: strings.TrimSpace(s.inputs[fieldEmail].Value()),
		Area:  areas[s.area],
	}
	saveErr := s.st.InsertStudent(context.Background(), student)

	next := s.nextFactory(student)
	return tea.Sequence(
		func() tea.Msg { return RegisteredMsg{Student: student, SaveErr: saveErr} },
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} },
	)
}

func (s *RegisterScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Create your student profile"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("All fields are optional"))
	b.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Width(8)

	for _, in := range s.inputs {
		b.WriteString("  " + labelStyle.Render(in.Label) + in.View() + "\n")
	}

	areaLine := "  " + labelStyle.Render("Area")
	for i, a := range areas {
		marker := "( ) "
		if i == s.area {
			marker = "(•) "
		}
		part := marker + a + "   "
		if s.focused == fieldArea {
			areaLine += theme.Selected.Render(part)
		} else {
			areaLine += theme.Body.Render(part)
		}
	}
	b.WriteString(areaLine + "\n\n")

	button := "[ Create Student ID ]"
	if s.focused == fieldSubmit {
		b.WriteString("  " + theme.Selected.Render(button))
	} else {
		b.WriteString("  " + theme.Body.Render(button))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(theme.Card.Render(b.String()))
}
