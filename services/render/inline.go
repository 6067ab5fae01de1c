package render

import "strings"

// Inline splits a single line into runs. At every position it tries, in
// order, a `code` span, a **bold** span and a [label](url) link; the first
// match is consumed whole and scanning resumes after it. Delimiters that do
// not close are kept as plain text.
func Inline(text string) []Run {
	var runs []Run
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			runs = append(runs, Plain{Text: plain.String()})
			plain.Reset()
		}
	}

	for i := 0; i < len(text); {
		if run, n, ok := matchSpan(text[i:]); ok {
			flush()
			runs = append(runs, run)
			i += n
			continue
		}
		plain.WriteByte(text[i])
		i++
	}
	flush()

	return runs
}

func matchSpan(s string) (Run, int, bool) {
	switch {
	case s[0] == '`':
		return matchCode(s)
	case strings.HasPrefix(s, "**"):
		return matchBold(s)
	case s[0] == '[':
		return matchLink(s)
	}
	return nil, 0, false
}

// matchCode needs at least one character between the backticks.
func matchCode(s string) (Run, int, bool) {
	end := strings.IndexByte(s[1:], '`')
	if end <= 0 {
		return nil, 0, false
	}
	return Code{Text: s[1 : 1+end]}, end + 2, true
}

func matchBold(s string) (Run, int, bool) {
	end := strings.Index(s[2:], "**")
	if end <= 0 {
		return nil, 0, false
	}
	return Bold{Text: s[2 : 2+end]}, end + 4, true
}

func matchLink(s string) (Run, int, bool) {
	mid := strings.Index(s, "](")
	if mid < 0 {
		return nil, 0, false
	}
	rest := s[mid+2:]
	end := strings.IndexByte(rest, ')')
	if end < 0 {
		return nil, 0, false
	}
	return Link{Label: s[1:mid], URL: rest[:end]}, mid + 2 + end + 1, true
}
