package warmup

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Progress prints a single updating status line of embedded texts.
// It is safe for concurrent use by pool workers.
type Progress struct {
	mu       sync.Mutex
	w        io.Writer
	total    int
	done     int
	every    int
	printed  int
	started  time.Time
	finished bool
}

// NewProgress starts tracking total texts, printing at least every `every` texts.
// A nil writer discards output.
func NewProgress(w io.Writer, total, every int) *Progress {
	if w == nil {
		w = io.Discard
	}
	if every < 1 {
		every = 1
	}
	return &Progress{w: w, total: total, every: every, started: time.Now()}
}

// Add records n more embedded texts.
func (p *Progress) Add(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished {
		return
	}

	p.done = min(p.done+n, p.total)
	if p.done-p.printed >= p.every {
		p.print()
	}
}

// Done prints the final status and ends the line.
func (p *Progress) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished {
		return
	}
	p.finished = true
	p.print()
	fmt.Fprintln(p.w)
}

// Count returns the number of texts recorded so far.
func (p *Progress) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Elapsed returns the time since the tracker was created.
func (p *Progress) Elapsed() time.Duration {
	return time.Since(p.started)
}

func (p *Progress) print() {
	p.printed = p.done

	pct := 100.0
	if p.total > 0 {
		pct = float64(p.done) / float64(p.total) * 100
	}
	rate := 0.0
	if secs := time.Since(p.started).Seconds(); secs > 0 {
		rate = float64(p.done) / secs
	}
	fmt.Fprintf(p.w, "\rEmbedded %d/%d texts (%.1f%%), %.1f texts/s", p.done, p.total, pct, rate)
}
