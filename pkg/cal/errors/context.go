package errors

import (
	"fmt"
	"strings"
)

// ExtractContext renders the lines surrounding line (1-based) with line
// numbers, marking the offending line with "->" and its column with a caret.
func ExtractContext(lines []string, line, column, contextLines int) string {
	if line <= 0 || line > len(lines) {
		return ""
	}

	errorLine := line - 1
	startLine := errorLine - contextLines
	endLine := errorLine + contextLines

	if startLine < 0 {
		startLine = 0
	}
	if endLine >= len(lines) {
		endLine = len(lines) - 1
	}

	var sb strings.Builder
	width := len(fmt.Sprintf("%d", endLine+1))

	for i := startLine; i <= endLine; i++ {
		prefix := "  "
		if i == errorLine {
			prefix = "->"
		}

		sb.WriteString(fmt.Sprintf("%s %*d | %s\n", prefix, width, i+1, expandTabs(lines[i])))

		if i == errorLine && column > 0 {
			caretCol := len(expandTabs(prefixOf(lines[i], column-1)))
			sb.WriteString(fmt.Sprintf("   %s | %s^\n", strings.Repeat(" ", width), strings.Repeat(" ", caretCol)))
		}
	}

	return sb.String()
}

// WithContext attaches a source excerpt to err and returns it.
func WithContext(err *Error, lines []string, contextLines int) *Error {
	if err != nil && err.Pos.Line > 0 {
		err.Context = ExtractContext(lines, err.Pos.Line, err.Pos.Column, contextLines)
	}
	return err
}

func prefixOf(s string, n int) string {
	if n > len(s) {
		return s
	}
	return s[:n]
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
