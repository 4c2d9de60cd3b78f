package scan

import (
	"runtime"
	"sync"
	"testing"
)

func TestProgressEmpty(t *testing.T) {
	if p := NewProgress().Get(); p != 0 {
		t.Errorf("got %v, want 0 before any work is known", p)
	}
}

func TestProgressFraction(t *testing.T) {
	p := NewProgress()
	p.advance(1, 4)
	if got := p.Get(); got != 0.25 {
		t.Errorf("got %v, want 0.25", got)
	}
	p.advance(2, 4)
	if got := p.Get(); got != 0.5 {
		t.Errorf("got %v, want 0.5", got)
	}
	p.advance(4, 4)
	if got := p.Get(); got != 1.0 {
		t.Errorf("got %v, want exactly 1", got)
	}
}

func TestProgressNeverMovesBackwards(t *testing.T) {
	p := NewProgress()
	p.advance(5, 10)
	p.advance(2, 10)
	if got := p.Get(); got != 0.5 {
		t.Errorf("got %v after a stale report, want 0.5", got)
	}
}

func TestProgressConcurrent(t *testing.T) {
	const total = 1000
	p := NewProgress()

	var wg sync.WaitGroup
	wg.Add(4)
	for w := 0; w < 4; w++ {
		w := w
		go func() {
			defer wg.Done()
			for done := int64(w*250 + 1); done <= int64((w+1)*250); done++ {
				p.advance(done, total)
			}
		}()
	}

	finished := make(chan struct{})
	go func() {
		wg.Wait()
		close(finished)
	}()

	prev := 0.0
	for sampling := true; sampling; {
		select {
		case <-finished:
			sampling = false
		default:
		}
		cur := p.Get()
		if cur < prev {
			t.Fatalf("progress moved backwards: %v after %v", cur, prev)
		}
		prev = cur
		runtime.Gosched()
	}
	if got := p.Get(); got != 1.0 {
		t.Errorf("got %v after all reports, want exactly 1", got)
	}
}

func TestToken(t *testing.T) {
	token := NewToken()
	if token.Signaled() {
		t.Fatal("fresh token already signalled")
	}
	token.Signal()
	if !token.Signaled() {
		t.Fatal("signal not observed")
	}
	token.Signal()
	if !token.Signaled() {
		t.Fatal("second signal cleared the token")
	}
}
