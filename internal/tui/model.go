// Package tui provides the Bubble Tea attack explorer.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/subcrack/internal/attack"
	"github.com/verte-zerg/subcrack/internal/cipher"
	"github.com/verte-zerg/subcrack/internal/experiment"
	"github.com/verte-zerg/subcrack/internal/generator"
)

const rankingTableWidth = 40

var (
	plainStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	hitStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	missStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	unknownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	neutralStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea explorer UI.
type Model struct {
	gen     *generator.Generator
	sample  string
	lengths []int

	index int
	key   cipher.Key
	trace experiment.Trace

	ranking table.Model

	width  int
	height int
}

// NewModel constructs an explorer over the given sample and lengths.
func NewModel(gen *generator.Generator, sample string, lengths []int) *Model {
	m := &Model{
		gen:     gen,
		sample:  sample,
		lengths: lengths,
		ranking: table.New(
			table.WithColumns(rankingColumns()),
			table.WithFocused(true),
			table.WithHeight(len(cipher.Alphabet)),
		),
	}
	m.ranking.SetStyles(rankingStyles())
	m.newKey()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ranking.SetHeight(maxInt(3, minInt(len(cipher.Alphabet)+1, m.height-4)))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "left", "h":
			m.step(-1)
			return m, nil
		case "right", "l":
			m.step(1)
			return m, nil
		case "r":
			m.newKey()
			return m, nil
		}
		var cmd tea.Cmd
		m.ranking, cmd = m.ranking.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	textWidth := m.width - rankingTableWidth - 4
	if m.width == 0 {
		textWidth = 0
	} else if textWidth < 20 {
		textWidth = 20
	}
	plain := []rune(m.trace.Plaintext)
	sections := []string{
		m.renderHeader(),
		"",
		labelStyle.Render("Plaintext"),
		wrapStyledRunes(styleRunes(plain, nil), textWidth),
		"",
		labelStyle.Render("Ciphertext"),
		wrapStyledRunes(styleRunes([]rune(m.trace.Ciphertext), nil), textWidth),
		"",
		labelStyle.Render("Recovered"),
		wrapStyledRunes(styleRunes([]rune(m.trace.Decrypted), plain), textWidth),
	}
	left := strings.Join(sections, "\n")
	if textWidth > 0 {
		left = lipgloss.NewStyle().Width(textWidth).Render(left)
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", m.ranking.View())
	return body + "\n\n" + m.renderFooter()
}

func (m *Model) renderHeader() string {
	length := 0
	if len(m.lengths) > 0 {
		length = m.lengths[m.index]
	}
	return titleStyle.Render(fmt.Sprintf("Length %d (%d/%d)  Success %.2f%%",
		length, m.index+1, len(m.lengths), m.trace.SuccessRate))
}

func (m *Model) renderFooter() string {
	return footerStyle.Render(fmt.Sprintf("key %s  ←/→ length  r new key  ↑/↓ ranking  q quit", m.key))
}

func (m *Model) step(delta int) {
	if len(m.lengths) == 0 {
		return
	}
	next := m.index + delta
	if next < 0 || next >= len(m.lengths) {
		return
	}
	m.index = next
	m.refresh()
}

func (m *Model) newKey() {
	m.key = m.gen.GenerateKey()
	m.refresh()
}

func (m *Model) refresh() {
	length := 0
	if len(m.lengths) > 0 {
		length = m.lengths[m.index]
	}
	m.trace = experiment.Attack(experiment.Prefix(m.sample, length), m.key)
	m.ranking.SetRows(rankingRows(m.trace.Ranking, m.key.Inverse()))
	m.ranking.GotoTop()
}

func rankingColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "Cipher", Width: 6},
		{Title: "Freq", Width: 7},
		{Title: "Guess", Width: 5},
		{Title: "Actual", Width: 6},
		{Title: "", Width: 3},
	}
}

// rankingRows pairs each ranked ciphertext letter with its guess and its true plaintext letter.
func rankingRows(ranking attack.Ranking, inverse cipher.GuessedKey) []table.Row {
	reference := []rune(attack.ReferenceOrder)
	rows := make([]table.Row, 0, len(ranking))
	for i, lf := range ranking {
		guess := "-"
		if i < len(reference) {
			guess = string(reference[i])
		}
		actual := string(inverse[lf.Letter])
		mark := ""
		if guess == actual {
			mark = "ok"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			string(lf.Letter),
			fmt.Sprintf("%.2f%%", lf.Frequency*100),
			guess,
			actual,
			mark,
		})
	}
	return rows
}

func rankingStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
