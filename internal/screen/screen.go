package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/eduline/eduline/internal/ui/layout"
)

// Screen is one view in the application (registration form, round
// setup, the quiz itself, the round summary, history). The root model
// renders the header and footer; screens only render their content.
type Screen interface {
	// Init returns the command to run when the screen becomes active.
	Init() tea.Cmd

	// Update handles a message and returns the updated screen plus an
	// optional command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content into the given area.
	View(width, height int) string

	// Title is shown in the header bar.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
