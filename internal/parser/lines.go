package parser

import (
	"strings"
)

// scanState is the state of the line recombiner.
type scanState int

const (
	// scanning emits physical lines as they are.
	scanning scanState = iota
	// accumulating joins physical lines until the open backtick literal closes.
	accumulating
)

// SplitLines splits content on LF or CRLF into numbered physical lines.
func SplitLines(content string) []SourceLine {
	raw := strings.Split(content, "\n")

	lines := make([]SourceLine, len(raw))
	for i, text := range raw {
		lines[i] = SourceLine{Number: i + 1, Text: strings.TrimSuffix(text, "\r")}
	}

	return lines
}

// Recombine turns physical lines into logical lines. A line that opens a
// backtick literal without closing it absorbs the following lines, joined with
// "\n", until the literal and its call are closed. The absorbed lines are
// consumed and not scanned again.
//
// When the input ends while a literal is still open, the accumulated text is
// emitted with Unterminated set.
func Recombine(lines []SourceLine) []LogicalLine {
	out := make([]LogicalLine, 0, len(lines))

	state := scanning

	var (
		current LogicalLine
		buf     strings.Builder
		tail    strings.Builder // text after the opener, searched for the closer
	)

	for _, line := range lines {
		switch state {
		case scanning:
			if !opensTick(line.Text) {
				out = append(out, LogicalLine{Number: line.Number, Text: line.Text})
				continue
			}

			current = LogicalLine{Number: line.Number}

			buf.Reset()
			buf.WriteString(line.Text)

			locs := openTickPattern.FindAllStringIndex(line.Text, -1)

			tail.Reset()
			tail.WriteString(line.Text[locs[len(locs)-1][1]:])

			state = accumulating

		case accumulating:
			buf.WriteByte('\n')
			buf.WriteString(line.Text)
			tail.WriteByte('\n')
			tail.WriteString(line.Text)

			if closeTickPattern.MatchString(tail.String()) {
				current.Text = buf.String()
				out = append(out, current)
				state = scanning
			}
		}
	}

	if state == accumulating {
		current.Text = buf.String()
		current.Unterminated = true
		out = append(out, current)
	}

	return out
}
