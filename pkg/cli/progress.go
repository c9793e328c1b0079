package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// ProgressReporter reports progress over a known number of documents.
type ProgressReporter interface {
	Start(total int)
	Update(current int)
	Finish()
}

// SimpleProgress renders a one-line bar, redrawn in place.
type SimpleProgress struct {
	mu      sync.Mutex
	total   int
	current int
	writer  io.Writer
}

// NewProgressReporter creates a progress reporter that writes to w.
// If w is nil, it defaults to os.Stderr.
func NewProgressReporter(w io.Writer) ProgressReporter {
	if w == nil {
		w = os.Stderr
	}
	return &SimpleProgress{writer: w}
}

// Start initializes the reporter with the total number of documents.
func (p *SimpleProgress) Start(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total = total
	p.current = 0
	p.render()
}

// Update sets the number of documents done.
func (p *SimpleProgress) Update(current int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = min(current, p.total)
	p.render()
}

// Finish marks every document as done and ends the line.
func (p *SimpleProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = p.total
	p.render()
	fmt.Fprintln(p.writer)
}

func (p *SimpleProgress) render() {
	if p.total == 0 {
		return
	}

	const barWidth = 30
	filled := barWidth * p.current / p.total
	bar := strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled)

	fmt.Fprintf(p.writer, "\rValidating [%s] %d/%d documents", bar, p.current, p.total)
}

// NopProgress discards every update.
type NopProgress struct{}

func (NopProgress) Start(int)  {}
func (NopProgress) Update(int) {}
func (NopProgress) Finish()    {}
