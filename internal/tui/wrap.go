package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/subcrack/internal/cipher"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// styleRunes renders text rune by rune. When reference is non-nil, letters are
// styled by whether they match the reference at the same position.
func styleRunes(text, reference []rune) []styledRune {
	out := make([]styledRune, 0, len(text))
	for i, r := range text {
		out = append(out, styledRune{
			s:       runeStyle(r, i, reference).Render(string(r)),
			width:   runewidth.RuneWidth(r),
			isSpace: r == ' ',
		})
	}
	return out
}

func runeStyle(r rune, i int, reference []rune) lipgloss.Style {
	switch {
	case reference == nil:
		return plainStyle
	case r == cipher.Placeholder:
		return unknownStyle
	case !cipher.IsLetter(r):
		return neutralStyle
	case i < len(reference) && reference[i] == r:
		return hitStyle
	default:
		return missStyle
	}
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks lines at the last space that fits, or mid-word when none does.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, width)
	lineWidth := 0
	lastSpace := -1

	flush := func(upto int) {
		out.WriteString(renderStyledRunes(line[:upto]))
		out.WriteRune('\n')
	}

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpace >= 0 {
				flush(lastSpace)
				line = append([]styledRune{}, line[lastSpace+1:]...)
			} else {
				flush(len(line))
				line = line[:0]
			}
			lineWidth, lastSpace = measure(line)
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpace = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func measure(line []styledRune) (width, lastSpace int) {
	lastSpace = -1
	for i, item := range line {
		width += item.width
		if item.isSpace {
			lastSpace = i
		}
	}
	return width, lastSpace
}
