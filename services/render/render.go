// Package render turns model-written text into typed presentational blocks.
//
// Only a small markdown subset is recognised and classification is strictly
// per line: a line never affects how its neighbours are read, so malformed
// markup degrades to literal text instead of an error.
package render

import (
	"strconv"
	"strings"
)

// Ruleset selects which line rules apply.
type Ruleset int

const (
	// Chat is the conversational ruleset: callouts, code/diagram lines and
	// paragraphs only.
	Chat Ruleset = iota
	// Module is the study-guide ruleset and adds headings and lists.
	Module
)

func (r Ruleset) String() string {
	switch r {
	case Chat:
		return "chat"
	case Module:
		return "module"
	default:
		return "unknown"
	}
}

func ParseRuleset(s string) (Ruleset, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "chat":
		return Chat, true
	case "module":
		return Module, true
	}
	return 0, false
}

const maxHeadingLevel = 3

var diagramMarkers = []string{"+--", "|", "-->"}

// Render splits raw on newlines and maps every line to exactly one block.
func Render(raw string, rules Ruleset) []Block {
	lines := strings.Split(raw, "\n")
	blocks := make([]Block, 0, len(lines))
	for _, line := range lines {
		blocks = append(blocks, renderLine(strings.TrimSuffix(line, "\r"), rules))
	}
	return blocks
}

func renderLine(line string, rules Ruleset) Block {
	trimmed := strings.TrimSpace(line)

	if rules == Module {
		if h, ok := heading(line); ok {
			return h
		}
	}

	if strings.HasPrefix(trimmed, ">") {
		return Callout{Kind: CalloutTip, Runs: Inline(strings.TrimSpace(trimmed[1:]))}
	}

	if isCodeLine(line, trimmed, rules) {
		if rules == Module {
			return CodeLine{Text: strings.ReplaceAll(line, "`", "")}
		}
		return CodeLine{Text: line}
	}

	if rules == Module {
		if item, ok := listItem(trimmed); ok {
			return item
		}
	}

	if trimmed == "" {
		return Blank{}
	}

	return Paragraph{Runs: Inline(line)}
}

func heading(line string) (Block, bool) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 {
		return nil, false
	}
	text := strings.TrimSpace(line[level:])
	if text == "" {
		return nil, false
	}
	return Heading{Level: min(level, maxHeadingLevel), Runs: Inline(text)}, true
}

func isCodeLine(line, trimmed string, rules Ruleset) bool {
	for _, marker := range diagramMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	switch rules {
	case Module:
		return strings.HasPrefix(trimmed, "```")
	case Chat:
		return strings.HasPrefix(line, "   ")
	}
	return false
}

func listItem(trimmed string) (Block, bool) {
	for _, marker := range []string{"- ", "• "} {
		if strings.HasPrefix(trimmed, marker) {
			return ListItem{
				Marker: strings.TrimSpace(marker),
				Runs:   Inline(strings.TrimSpace(trimmed[len(marker):])),
			}, true
		}
	}

	digits := 0
	for digits < len(trimmed) && trimmed[digits] >= '0' && trimmed[digits] <= '9' {
		digits++
	}
	if digits == 0 || digits == len(trimmed) || trimmed[digits] != '.' {
		return nil, false
	}
	n, err := strconv.Atoi(trimmed[:digits])
	if err != nil {
		return nil, false
	}
	return ListItem{
		Ordered: true,
		Number:  n,
		Marker:  trimmed[:digits+1],
		Runs:    Inline(strings.TrimSpace(trimmed[digits+1:])),
	}, true
}
