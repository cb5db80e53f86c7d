package selector

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var candidates = []string{
	"Chapter 1 [1-4]",
	"Chapter 2 [5-8]",
	"Appendix [9-]",
}

func TestNew(t *testing.T) {
	s, err := New(NameFzf, Options{})
	require.NoError(t, err)
	fzf := s.(*FzfSelector)
	assert.Equal(t, "fzf", fzf.Bin)
	assert.Equal(t, []string{"--reverse"}, fzf.Args)

	s, err = New(NameFzf, Options{FzfBin: "/opt/fzf", FzfArgs: []string{"--height=40%"}})
	require.NoError(t, err)
	assert.Equal(t, "/opt/fzf", s.(*FzfSelector).Bin)
	assert.Equal(t, []string{"--height=40%"}, s.(*FzfSelector).Args)

	s, err = New(NameBuiltin, Options{})
	require.NoError(t, err)
	assert.IsType(t, &Picker{}, s)

	_, err = New("dmenu", Options{})
	assert.ErrorIs(t, err, ErrUnknownSelector)
}

// fakeFzf returns a selector that runs body as a shell script in place of fzf.
func fakeFzf(t *testing.T, body string) *FzfSelector {
	t.Helper()
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	script := filepath.Join(t.TempDir(), "fzf.sh")
	require.NoError(t, os.WriteFile(script, []byte(body), 0o644))
	return &FzfSelector{Bin: sh, Args: []string{script}, TempDir: t.TempDir()}
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp files left behind in %s", dir)
}

func TestFzfSelector(t *testing.T) {
	t.Run("returns chosen line", func(t *testing.T) {
		s := fakeFzf(t, "sed -n 2p\n")
		got, err := s.Select(context.Background(), candidates)
		require.NoError(t, err)
		assert.Equal(t, "Chapter 2 [5-8]", got)
		assertEmptyDir(t, s.TempDir)
	})

	t.Run("interrupted is empty selection", func(t *testing.T) {
		s := fakeFzf(t, "exit 130\n")
		got, err := s.Select(context.Background(), candidates)
		require.NoError(t, err)
		assert.Empty(t, got)
		assertEmptyDir(t, s.TempDir)
	})

	t.Run("no match is empty selection", func(t *testing.T) {
		s := fakeFzf(t, "exit 1\n")
		got, err := s.Select(context.Background(), candidates)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("empty output", func(t *testing.T) {
		s := fakeFzf(t, "cat >/dev/null\n")
		got, err := s.Select(context.Background(), candidates)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("other failures are errors", func(t *testing.T) {
		s := fakeFzf(t, "exit 2\n")
		_, err := s.Select(context.Background(), candidates)
		assert.Error(t, err)
		assertEmptyDir(t, s.TempDir)
	})
}

func typeText(m tea.Model, text string) tea.Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func press(m tea.Model, k tea.KeyType) tea.Model {
	m, _ = m.Update(tea.KeyMsg{Type: k})
	return m
}

func TestPickerModel(t *testing.T) {
	t.Run("enter picks first line", func(t *testing.T) {
		m := press(newPickerModel(candidates), tea.KeyEnter).(pickerModel)
		assert.True(t, m.done)
		assert.Equal(t, "Chapter 1 [1-4]", m.choice)
	})

	t.Run("arrow keys move cursor", func(t *testing.T) {
		var m tea.Model = newPickerModel(candidates)
		m = press(m, tea.KeyDown)
		m = press(m, tea.KeyDown)
		m = press(m, tea.KeyDown)
		m = press(m, tea.KeyUp)
		m = press(m, tea.KeyEnter)
		assert.Equal(t, "Chapter 2 [5-8]", m.(pickerModel).choice)
	})

	t.Run("typing filters", func(t *testing.T) {
		m := typeText(newPickerModel(candidates), "appx")
		pm := m.(pickerModel)
		require.Len(t, pm.matches, 1)
		assert.Equal(t, "Appendix [9-]", pm.matches[0].Str)

		pm = press(pm, tea.KeyEnter).(pickerModel)
		assert.Equal(t, "Appendix [9-]", pm.choice)
	})

	t.Run("backspace widens filter", func(t *testing.T) {
		m := typeText(newPickerModel(candidates), "appx")
		m = press(m, tea.KeyBackspace)
		m = press(m, tea.KeyBackspace)
		m = press(m, tea.KeyBackspace)
		m = press(m, tea.KeyBackspace)
		assert.Len(t, m.(pickerModel).matches, len(candidates))
	})

	t.Run("enter without matches does nothing", func(t *testing.T) {
		m := typeText(newPickerModel(candidates), "zzz")
		pm := press(m, tea.KeyEnter).(pickerModel)
		assert.False(t, pm.done)
		assert.Empty(t, pm.choice)
	})

	t.Run("escape aborts", func(t *testing.T) {
		pm := press(newPickerModel(candidates), tea.KeyEsc).(pickerModel)
		assert.True(t, pm.aborted)
		assert.Empty(t, pm.choice)
	})

	t.Run("view lists candidates", func(t *testing.T) {
		view := newPickerModel(candidates).View()
		for _, c := range candidates {
			assert.Contains(t, view, c)
		}
	})
}

func TestPromptModel(t *testing.T) {
	t.Run("enter accepts default", func(t *testing.T) {
		m := press(newPromptModel("Output file: ", "Chapter_1.pdf"), tea.KeyEnter).(promptModel)
		got, err := m.result()
		require.NoError(t, err)
		assert.Equal(t, "Chapter_1.pdf", got)
	})

	t.Run("edited value", func(t *testing.T) {
		var m tea.Model = newPromptModel("Output file: ", "Chapter_1.pdf")
		m = press(m, tea.KeyCtrlU)
		m = typeText(m, "out/intro.pdf")
		m = press(m, tea.KeyEnter)
		got, err := m.(promptModel).result()
		require.NoError(t, err)
		assert.Equal(t, "out/intro.pdf", got)
	})

	t.Run("appending to default", func(t *testing.T) {
		var m tea.Model = newPromptModel("Output file: ", "ch")
		m = typeText(m, "1.pdf")
		got, err := m.(promptModel).result()
		require.NoError(t, err)
		assert.Equal(t, "ch1.pdf", got)
	})

	t.Run("blank answer falls back to default", func(t *testing.T) {
		var m tea.Model = newPromptModel("Output file: ", "Chapter_1.pdf")
		m = press(m, tea.KeyCtrlU)
		m = press(m, tea.KeyEnter)
		got, err := m.(promptModel).result()
		require.NoError(t, err)
		assert.Equal(t, "Chapter_1.pdf", got)
	})

	t.Run("ctrl+c aborts", func(t *testing.T) {
		m := press(newPromptModel("Output file: ", "x.pdf"), tea.KeyCtrlC).(promptModel)
		_, err := m.result()
		assert.ErrorIs(t, err, ErrAborted)
	})
}
