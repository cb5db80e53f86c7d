package selector

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TextPrompter asks for a line of text with a pre-filled, editable default.
type TextPrompter struct{}

// Prompt shows label followed by def and returns the edited value. A blank
// answer returns def; ctrl+c and esc return ErrAborted.
func (p *TextPrompter) Prompt(ctx context.Context, label, def string) (string, error) {
	prog := tea.NewProgram(newPromptModel(label, def),
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
		tea.WithInputTTY(),
	)
	final, err := prog.Run()
	if err != nil {
		return "", fmt.Errorf("running prompt: %w", err)
	}
	m, ok := final.(promptModel)
	if !ok {
		return "", ErrAborted
	}
	return m.result()
}

type promptModel struct {
	input   textinput.Model
	def     string
	aborted bool
	done    bool
}

func newPromptModel(label, def string) promptModel {
	ti := textinput.New()
	ti.Prompt = label
	ti.SetValue(def)
	ti.CursorEnd()
	ti.Focus()
	return promptModel{input: ti, def: def}
}

func (m promptModel) result() (string, error) {
	if m.aborted {
		return "", ErrAborted
	}
	if v := strings.TrimSpace(m.input.Value()); v != "" {
		return v, nil
	}
	return m.def, nil
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			m.done = true
			return m, tea.Quit
		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.done {
		return m.input.Prompt + m.input.Value() + "\n"
	}
	return m.input.View() + "\n"
}
