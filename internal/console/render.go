package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

var (
	emphasisStyle = lipgloss.NewStyle().Bold(true)
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// Render turns a reply into terminal text: *emphasis* is drawn bold and,
// when width is positive, lines are word-wrapped to width.
// A backslash makes the next character literal, so escaped \* is printed as is.
func Render(reply string, width int) string {
	spans := splitMarkup(reply)

	var b strings.Builder
	for i := 0; i < len(spans); i++ {
		if !spans[i].marker {
			b.WriteString(spans[i].text)
			continue
		}
		j := i + 1
		for j < len(spans) && !spans[j].marker {
			j++
		}
		if j == len(spans) {
			// unpaired marker
			b.WriteByte('*')
			continue
		}
		var inner strings.Builder
		for _, sp := range spans[i+1 : j] {
			inner.WriteString(sp.text)
		}
		b.WriteString(emphasisStyle.Render(inner.String()))
		i = j
	}

	out := b.String()
	if width > 0 {
		out = wordwrap.String(out, width)
	}
	return out
}

// span is either unescaped text or a single emphasis marker.
type span struct {
	text   string
	marker bool
}

func splitMarkup(s string) []span {
	var spans []span
	var cur strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\\' && i+1 < len(s):
			i++
			cur.WriteByte(s[i])
		case c == '*':
			if cur.Len() > 0 {
				spans = append(spans, span{text: cur.String()})
				cur.Reset()
			}
			spans = append(spans, span{marker: true})
		default:
			cur.WriteByte(c)
		}
	}
	if cur.Len() > 0 {
		spans = append(spans, span{text: cur.String()})
	}
	return spans
}
