package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const progressBarWidth = 24

// CheckProgress draws a single status line while check works through a
// batch of files: a bar, the pass/fail tally so far and the file in hand.
type CheckProgress struct {
	mu      sync.Mutex
	writer  io.Writer
	total   int
	passed  int
	failed  int
	current string
	started time.Time
	width   int // length of the last line drawn, for overwriting
}

// NewCheckProgress creates a tracker for total files writing to w.
// If w is nil, it defaults to os.Stderr so reports on stdout stay parseable.
func NewCheckProgress(w io.Writer, total int) *CheckProgress {
	if w == nil {
		w = os.Stderr
	}
	return &CheckProgress{writer: w, total: total, started: time.Now()}
}

// Begin shows file as the one being checked.
func (p *CheckProgress) Begin(file string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = filepath.Base(file)
	p.render()
}

// Done records the outcome of the file last passed to Begin.
func (p *CheckProgress) Done(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.failed++
	} else {
		p.passed++
	}
	p.current = ""
	p.render()
}

// Finish ends the status line with a summary and returns the tally.
func (p *CheckProgress) Finish() (passed, failed int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.overwrite(fmt.Sprintf("Checked %d file(s) in %s: %d passed, %d failed",
		p.passed+p.failed, time.Since(p.started).Round(time.Millisecond), p.passed, p.failed))
	fmt.Fprintln(p.writer)
	return p.passed, p.failed
}

func (p *CheckProgress) render() {
	if p.total == 0 {
		return
	}

	done := p.passed + p.failed
	filled := progressBarWidth * done / p.total
	if filled > progressBarWidth {
		filled = progressBarWidth
	}

	line := fmt.Sprintf("[%s%s] %d/%d ✓ %d ✗ %d",
		strings.Repeat("█", filled), strings.Repeat("░", progressBarWidth-filled),
		done, p.total, p.passed, p.failed)
	if p.current != "" {
		line += "  " + p.current
	}
	p.overwrite(line)
}

// overwrite replaces the current terminal line with line.
func (p *CheckProgress) overwrite(line string) {
	n := len([]rune(line))
	pad := ""
	if p.width > n {
		pad = strings.Repeat(" ", p.width-n)
	}
	fmt.Fprintf(p.writer, "\r%s%s", line, pad)
	p.width = n
}
