package play

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type field struct {
	label       string
	placeholder string
	secret      bool
	limit       int
}

// form is a vertical list of text inputs with one focused at a time.
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newForm(fields ...field) form {
	f := form{
		labels: make([]string, len(fields)),
		inputs: make([]textinput.Model, len(fields)),
	}
	for i, fd := range fields {
		in := textinput.New()
		in.Placeholder = fd.placeholder
		in.Prompt = ""
		in.CharLimit = fd.limit
		if fd.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		f.labels[i] = fd.label
		f.inputs[i] = in
	}
	f.setFocus(0)
	return f
}

func newLoginForm() form {
	return newForm(
		field{label: "Username", placeholder: "username", limit: 64},
		field{label: "Password", placeholder: "password", secret: true, limit: 128},
	)
}

func newRegisterForm() form {
	return newForm(
		field{label: "Username", placeholder: "username", limit: 64},
		field{label: "Email", placeholder: "you@example.com", limit: 254},
		field{label: "Password", placeholder: "password", secret: true, limit: 128},
	)
}

// Preferences form inputs, after the theme selector row.
const (
	prefsColorFound = iota
	prefsColorClosed
	prefsEmail
)

func newPreferencesForm() form {
	return newForm(
		field{label: "Matched color", placeholder: "#00d4ff", limit: 9},
		field{label: "Hidden color", placeholder: "#2a2d47", limit: 9},
		field{label: "Email", placeholder: "you@example.com", limit: 254},
	)
}

// setFocus focuses input i; any out of range index blurs every input.
func (f *form) setFocus(i int) {
	f.focus = i
	for j := range f.inputs {
		if j == i {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *form) next() {
	f.setFocus((f.focus + 1) % len(f.inputs))
}

func (f *form) prev() {
	f.setFocus((f.focus - 1 + len(f.inputs)) % len(f.inputs))
}

func (f form) onLast() bool {
	return f.focus == len(f.inputs)-1
}

func (f form) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f *form) set(i int, v string) {
	f.inputs[i].SetValue(v)
}

func (f *form) reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.setFocus(0)
}

// missing returns the label of the first empty input.
func (f form) missing() (string, bool) {
	for i := range f.inputs {
		if f.value(i) == "" {
			return f.labels[i], true
		}
	}
	return "", false
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	if f.focus < 0 || f.focus >= len(f.inputs) {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f form) view() string {
	rows := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		label := formLabelStyle.Render(f.labels[i])
		if i == f.focus {
			label = formLabelFocusedStyle.Render(f.labels[i])
		}
		rows[i] = lipgloss.JoinHorizontal(lipgloss.Left, label, in.View())
	}
	return strings.Join(rows, "\n")
}
