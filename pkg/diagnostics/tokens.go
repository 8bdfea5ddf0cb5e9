package diagnostics

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"mercator-hq/callisto/pkg/cal/token"
)

// Format selects how token dumps are rendered.
type Format string

const (
	// FormatText renders one source line per output line: the line number,
	// a tab, then the line's tokens separated by spaces.
	FormatText Format = "text"

	// FormatJSON renders the tokens as a JSON array.
	FormatJSON Format = "json"
)

// ParseFormat parses a dump format name. The empty string means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown dump format %q (want text or json)", s)
	}
}

// Extension returns the file extension used for dumps in this format.
func (f Format) Extension() string {
	if f == FormatJSON {
		return ".json"
	}
	return ".txt"
}

// WriteTokens writes toks to w in the given format.
func WriteTokens(w io.Writer, toks []token.Token, format Format) error {
	if format == FormatJSON {
		return writeTokensJSON(w, toks)
	}
	return writeTokensText(w, toks)
}

func writeTokensText(w io.Writer, toks []token.Token) error {
	bw := bufio.NewWriter(w)

	line := 0
	for i, tok := range toks {
		if i == 0 || tok.Pos.Line != line {
			if i > 0 {
				bw.WriteByte('\n')
			}
			line = tok.Pos.Line
			fmt.Fprintf(bw, "%d\t", line)
		} else {
			bw.WriteByte(' ')
		}
		bw.WriteString(tok.String())
	}
	if len(toks) > 0 {
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

func writeTokensJSON(w io.Writer, toks []token.Token) error {
	if toks == nil {
		toks = []token.Token{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toks); err != nil {
		return fmt.Errorf("failed to encode tokens: %w", err)
	}
	return nil
}
