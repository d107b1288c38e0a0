package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Indicator is advanced once per processed entry. It is purely
// observational: traversal decisions and totals never depend on it.
type Indicator interface {
	Increment()
	Finish()
}

// Noop is the default indicator when the progress bar is hidden.
type Noop struct{}

func (Noop) Increment() {}
func (Noop) Finish()    {}

type Bar struct {
	total      int64
	current    int64
	width      int
	writer     io.Writer
	mu         sync.Mutex
	lastUpdate time.Time
}

func New(total int64) *Bar {
	return &Bar{
		total:      total,
		current:    0,
		width:      50,
		writer:     os.Stdout,
		lastUpdate: time.Now(),
	}
}

// NewWithWriter is used by tests to capture rendered output.
func NewWithWriter(total int64, w io.Writer) *Bar {
	bar := New(total)
	bar.writer = w
	return bar
}

func (b *Bar) Increment() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.current++

	// Update at most every 100ms to reduce flickering
	now := time.Now()
	if now.Sub(b.lastUpdate) > 100*time.Millisecond || b.current == b.total {
		b.lastUpdate = now
		b.render()
	}
}

// render must be called with mu already locked
func (b *Bar) render() {
	if b.total == 0 {
		return
	}

	percent := float64(b.current) / float64(b.total) * 100
	filledWidth := int(float64(b.width) * float64(b.current) / float64(b.total))

	if filledWidth > b.width {
		filledWidth = b.width
	}

	bar := strings.Repeat("█", filledWidth) + strings.Repeat("░", b.width-filledWidth)

	// Clear the line and write progress
	fmt.Fprintf(b.writer, "\r\033[K[%s] %3d%% (%d/%d)",
		bar, int(percent), b.current, b.total)
}

func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.current = b.total
	b.render()
	fmt.Fprintf(b.writer, "\n")
}
