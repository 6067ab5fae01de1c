package tui

import (
	"strings"

	"elasticsense/services/render"

	"github.com/charmbracelet/lipgloss"
)

// PaintBlocks draws rendered blocks as terminal text wrapped to width.
func PaintBlocks(blocks []render.Block, width int) string {
	lines := make([]string, 0, len(blocks))
	for _, b := range blocks {
		lines = append(lines, paintBlock(b, width))
	}
	return strings.Join(lines, "\n")
}

func paintBlock(b render.Block, width int) string {
	wrap := lipgloss.NewStyle().Width(max(width, 1))

	switch b := b.(type) {
	case render.Paragraph:
		return wrap.Render(paintRuns(b.Runs))
	case render.Heading:
		style := headingStyles[min(b.Level, len(headingStyles))-1]
		return wrap.Render(paintHeading(b.Runs, style))
	case render.ListItem:
		marker := "•"
		if b.Ordered {
			marker = b.Marker
		}
		prefix := bulletStyle.Render(marker) + " "
		body := lipgloss.NewStyle().Width(max(width-lipgloss.Width(prefix), 1)).Render(paintRuns(b.Runs))
		return lipgloss.JoinHorizontal(lipgloss.Top, prefix, body)
	case render.Callout:
		label := calloutLabelStyle.Render("David's Tip")
		body := paintRuns(b.Runs)
		return calloutStyle.Width(max(width-2, 1)).Render(label + "\n" + body)
	case render.CodeLine:
		return codeLineStyle.Render(b.Text)
	case render.Blank:
		return ""
	default:
		panic("tui: unknown block type")
	}
}

func paintRuns(runs []render.Run) string {
	var sb strings.Builder
	for _, r := range runs {
		switch r := r.(type) {
		case render.Plain:
			sb.WriteString(r.Text)
		case render.Code:
			sb.WriteString(codeStyle.Render(r.Text))
		case render.Bold:
			sb.WriteString(boldStyle.Render(r.Text))
		case render.Link:
			sb.WriteString(linkStyle.Render(r.Label) + " " + helpStyle.Render("("+r.URL+")"))
		default:
			panic("tui: unknown run type")
		}
	}
	return sb.String()
}

// paintHeading draws runs in the heading style, keeping code spans and links
// distinguishable.
func paintHeading(runs []render.Run, style lipgloss.Style) string {
	var sb strings.Builder
	for _, r := range runs {
		switch r := r.(type) {
		case render.Plain:
			sb.WriteString(style.Render(r.Text))
		case render.Bold:
			sb.WriteString(style.Render(r.Text))
		case render.Code:
			sb.WriteString(codeStyle.Bold(true).Render(r.Text))
		case render.Link:
			sb.WriteString(style.Render(r.Label) + " " + helpStyle.Render("("+r.URL+")"))
		default:
			panic("tui: unknown run type")
		}
	}
	return sb.String()
}
