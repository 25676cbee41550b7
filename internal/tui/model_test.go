package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/subcrack/internal/attack"
	"github.com/verte-zerg/subcrack/internal/cipher"
	"github.com/verte-zerg/subcrack/internal/experiment"
	"github.com/verte-zerg/subcrack/internal/generator"
)

func newTestModel() *Model {
	sample := experiment.SampleText(experiment.DefaultSentence, experiment.DefaultRepeat)
	return NewModel(generator.NewSeeded(1), sample, []int{50, 1000})
}

func TestModelStepsThroughLengths(t *testing.T) {
	m := newTestModel()
	assert.Len(t, []rune(m.trace.Plaintext), 50)

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.index)
	assert.Len(t, []rune(m.trace.Plaintext), 1000)

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.index, "index stays at the last length")

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, m.index, "index stays at the first length")
}

func TestModelNewKeyKeepsRate(t *testing.T) {
	m := newTestModel()
	before := m.key.String()
	rate := m.trace.SuccessRate

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.NotEqual(t, before, m.key.String(), "expected a new key")
	require.NoError(t, m.key.Validate())
	assert.Equal(t, rate, m.trace.SuccessRate, "rate does not depend on the key")
}

func TestModelQuit(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelView(t *testing.T) {
	m := newTestModel()
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	out := m.View()
	for _, needle := range []string{"Length 50 (1/2)", "Success 2.33%", "Plaintext", "Ciphertext", "Recovered", m.key.String()} {
		assert.Contains(t, out, needle)
	}
}

func TestRankingRows(t *testing.T) {
	key := cipher.Key{}
	for _, r := range cipher.Alphabet {
		key[r] = r
	}
	ranking := attack.FrequencyAnalysis("EEE TT X")
	rows := rankingRows(ranking, key.Inverse())
	require.Len(t, rows, 3)

	assert.Equal(t, "E", rows[0][1])
	assert.Equal(t, "E", rows[0][3])
	assert.Equal(t, "E", rows[0][4])
	assert.Equal(t, "ok", rows[0][5])
	assert.Equal(t, "50.00%", rows[0][2])

	assert.Equal(t, "X", rows[2][1])
	assert.Equal(t, "A", rows[2][3])
	assert.Empty(t, rows[2][5])
}
