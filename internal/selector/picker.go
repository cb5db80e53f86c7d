package selector

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

var (
	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("160"))

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// visibleRows is the number of candidates drawn below the filter.
const visibleRows = 15

// Picker is a built-in fuzzy finder for terminals without fzf.
type Picker struct{}

// Select runs the picker on the terminal and returns the chosen line.
func (p *Picker) Select(ctx context.Context, candidates []string) (string, error) {
	prog := tea.NewProgram(newPickerModel(candidates),
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
		tea.WithInputTTY(),
	)
	final, err := prog.Run()
	if err != nil {
		return "", fmt.Errorf("running picker: %w", err)
	}
	m, ok := final.(pickerModel)
	if !ok || m.aborted {
		return "", nil
	}
	return m.choice, nil
}

type pickerModel struct {
	input   textinput.Model
	items   []string
	matches fuzzy.Matches
	cursor  int
	offset  int
	choice  string
	aborted bool
	done    bool
}

func newPickerModel(items []string) pickerModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "filter bookmarks"
	ti.Focus()

	m := pickerModel{input: ti, items: items}
	m.filter()
	return m
}

// filter recomputes matches for the current query. An empty query keeps the
// original order.
func (m *pickerModel) filter() {
	query := m.input.Value()
	if query == "" {
		m.matches = make(fuzzy.Matches, len(m.items))
		for i, item := range m.items {
			m.matches[i] = fuzzy.Match{Str: item, Index: i}
		}
	} else {
		m.matches = fuzzy.Find(query, m.items)
	}
	m.cursor = 0
	m.offset = 0
}

func (m pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			m.done = true
			return m, tea.Quit

		case "enter":
			if len(m.matches) == 0 {
				return m, nil
			}
			m.choice = m.matches[m.cursor].Str
			m.done = true
			return m, tea.Quit

		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
			return m, nil

		case "down", "ctrl+n":
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			if m.cursor >= m.offset+visibleRows {
				m.offset = m.cursor - visibleRows + 1
			}
			return m, nil
		}
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != prev {
		m.filter()
	}
	return m, cmd
}

func (m pickerModel) View() string {
	if m.done {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(fmt.Sprintf("  %d/%d", len(m.matches), len(m.items))))
	sb.WriteString("\n")

	end := min(m.offset+visibleRows, len(m.matches))
	for i := m.offset; i < end; i++ {
		line := highlight(m.matches[i])
		if i == m.cursor {
			sb.WriteString(cursorStyle.Render("▌ "))
		} else {
			sb.WriteString("  ")
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// highlight renders matched characters in matchStyle.
func highlight(match fuzzy.Match) string {
	if len(match.MatchedIndexes) == 0 {
		return match.Str
	}
	hit := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		hit[idx] = true
	}

	var sb strings.Builder
	for i, r := range match.Str {
		if hit[i] {
			sb.WriteString(matchStyle.Render(string(r)))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
