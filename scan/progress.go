package scan

import "sync/atomic"

// Progress reports how much of a scan has completed as a fraction in
// [0, 1]. One instance is shared between the workers that write it and the
// UI goroutine that polls it; all methods are safe for concurrent use.
type Progress struct {
	done  atomic.Int64
	total atomic.Int64
}

func NewProgress() *Progress {
	return &Progress{}
}

// Get returns the completed fraction. It never decreases over the lifetime
// of a scan and reaches exactly 1 once every file is accounted for. Before
// the total is known, and for a scan that found no files, it is 0.
func (p *Progress) Get() float64 {
	total := p.total.Load()
	if total == 0 {
		return 0
	}
	return float64(p.done.Load()) / float64(total)
}

// advance records that done files out of total are accounted for. Workers
// report concurrently and out of order; the counter keeps the largest value
// seen so the fraction never moves backwards.
func (p *Progress) advance(done, total int64) {
	p.total.Store(total)
	for {
		cur := p.done.Load()
		if done <= cur {
			return
		}
		if p.done.CompareAndSwap(cur, done) {
			return
		}
	}
}

// A Token requests cancellation of one scan. Signal may be called any number
// of times from any goroutine; workers poll Signaled between files, so the
// file being digested when the token fires is still finished.
type Token struct {
	fired atomic.Bool
}

func NewToken() *Token {
	return &Token{}
}

// Signal asks the scan to stop. Idempotent.
func (t *Token) Signal() {
	t.fired.Store(true)
}

// Signaled reports whether Signal has been called.
func (t *Token) Signaled() bool {
	return t.fired.Load()
}
