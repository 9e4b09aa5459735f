package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/eduline/eduline/internal/bank"
	"github.com/eduline/eduline/internal/ui/theme"
)

// OptionList presents a question's labeled answer choices.
type OptionList struct {
	Options  []bank.Option
	Selected int
	Revealed bool   // answer graded, highlight correct/chosen
	Correct  string // key of the correct option, used when revealed
	Chosen   string // key the learner picked
}

// NewOptionList creates an option list for a question.
func NewOptionList(options []bank.Option) OptionList {
	return OptionList{Options: options}
}

// Update handles keyboard navigation. Selection by number/letter keys
// and submit are the owner's concern.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	if o.Revealed {
		return o, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if o.Selected > 0 {
			o.Selected--
		}
	case "down", "j":
		if o.Selected < len(o.Options)-1 {
			o.Selected++
		}
	}
	return o, nil
}

// SelectKey moves the selection to the option with the given key.
// Returns false if no option has that key.
func (o *OptionList) SelectKey(key string) bool {
	for i, opt := range o.Options {
		if opt.Key == key {
			o.Selected = i
			return true
		}
	}
	return false
}

// SelectedKey returns the key of the currently selected option.
func (o OptionList) SelectedKey() string {
	if o.Selected < 0 || o.Selected >= len(o.Options) {
		return ""
	}
	return o.Options[o.Selected].Key
}

// Reveal marks the list as graded so View highlights the outcome.
func (o *OptionList) Reveal(correct, chosen string) {
	o.Revealed = true
	o.Correct = correct
	o.Chosen = chosen
}

// View renders the options.
func (o OptionList) View() string {
	var s string
	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Selected && !o.Revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, opt.Key, opt.Text)

		switch {
		case o.Revealed && opt.Key == o.Correct:
			s += theme.Correct.Render(line) + "\n"
		case o.Revealed && opt.Key == o.Chosen:
			s += theme.Incorrect.Render(line) + "\n"
		case o.Revealed:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == o.Selected:
			s += theme.Selected.Render(line) + "\n"
		default:
			s += theme.Body.Render(line) + "\n"
		}
	}
	return s
}
