package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is a dialog that captures input while open. Update returns the
// possibly-replaced modal, a command to run, and whether the modal closed.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// confirmModal asks a yes/no question before running an action.
type confirmModal struct {
	title  string
	prompt string
	action tea.Cmd
}

func newConfirmModal(title, prompt string, action tea.Cmd) *confirmModal {
	return &confirmModal{title: title, prompt: prompt, action: action}
}

func (c *confirmModal) Update(msg tea.Msg, _ keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch keyMsg.String() {
	case "enter", "y", "Y":
		return c, c.action, true
	case "esc", "n", "N":
		return c, nil, true
	}
	return c, nil, false
}

func (c *confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	body := styles.ModalTitle.Render(c.title) + "\n\n" +
		styles.ModalText.Render(c.prompt) + "\n\n" +
		styles.ModalHint.Render("enter confirm · esc cancel")

	box := styles.ModalBox.Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// formField is a single labeled input in a form modal.
type formField struct {
	label string
	input textinput.Model
}

// newFormField builds a field with the given label, initial value, and
// placeholder.
func newFormField(label, value, placeholder string) formField {
	in := textinput.New()
	in.Placeholder = placeholder
	in.SetValue(value)
	in.CharLimit = 64
	in.Prompt = "> "
	return formField{label: label, input: in}
}

// formModal collects values across several fields and submits them as one
// store operation. Submission is asynchronous: the modal stays open until
// the application sees a successful completion, so a rejected submit can be
// corrected in place.
type formModal struct {
	title  string
	fields []formField
	focus  int
	err    string

	// submit validates the entered values and returns the command to run,
	// or an error message to show in the modal.
	submit func(values []string) (tea.Cmd, string)
}

func newFormModal(title string, fields []formField, submit func([]string) (tea.Cmd, string)) *formModal {
	f := &formModal{title: title, fields: fields, submit: submit}
	if len(f.fields) > 0 {
		f.fields[0].input.Focus()
	}
	return f
}

func (f *formModal) values() []string {
	vals := make([]string, len(f.fields))
	for i, field := range f.fields {
		vals[i] = strings.TrimSpace(field.input.Value())
	}
	return vals
}

func (f *formModal) setFocus(idx int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	if idx < 0 {
		idx = len(f.fields) - 1
	}
	if idx >= len(f.fields) {
		idx = 0
	}
	for i := range f.fields {
		f.fields[i].input.Blur()
	}
	f.focus = idx
	return f.fields[idx].input.Focus()
}

func (f *formModal) Update(msg tea.Msg, _ keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		// Cursor blink and friends go to the focused input.
		if f.focus < len(f.fields) {
			var cmd tea.Cmd
			f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
			return f, cmd, false
		}
		return f, nil, false
	}

	switch keyMsg.String() {
	case "esc":
		return f, nil, true
	case "tab", "down":
		return f, f.setFocus(f.focus + 1), false
	case "shift+tab", "up":
		return f, f.setFocus(f.focus - 1), false
	case "enter":
		if f.focus < len(f.fields)-1 {
			return f, f.setFocus(f.focus + 1), false
		}
		cmd, errMsg := f.submit(f.values())
		if errMsg != "" {
			f.err = errMsg
			return f, nil, false
		}
		f.err = ""
		return f, cmd, false
	}

	if f.focus < len(f.fields) {
		var cmd tea.Cmd
		f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
		return f, cmd, false
	}
	return f, nil, false
}

func (f *formModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.ModalTitle.Render(f.title))
	b.WriteString("\n\n")
	for i, field := range f.fields {
		label := field.label
		if i == f.focus {
			b.WriteString(styles.ModalLabelFocus.Render(label))
		} else {
			b.WriteString(styles.ModalLabel.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(field.input.View())
		b.WriteString("\n")
	}
	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.ModalError.Render(f.err))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.ModalHint.Render("enter submit · tab next field · esc cancel"))

	box := styles.ModalBox.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
