package scan

import (
	"crypto/sha256"
	"runtime"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"

	"dupfinder/hasher"
)

// A Scanner runs duplicate scans with a fixed worker count and digest
// algorithm. One Scanner may run any number of scans, one at a time or
// concurrently; each Run call carries its own progress and token.
type Scanner struct {
	workers int
	digest  hasher.Maker
}

// New returns a Scanner fingerprinting files on workers goroutines. Zero or
// negative workers selects one per CPU; a nil digest selects SHA-256.
func New(workers int, digest hasher.Maker) *Scanner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if digest == nil {
		digest = sha256.New
	}
	return &Scanner{workers: workers, digest: digest}
}

// Run scans root and returns the duplicate groups found. It blocks until
// every file under root is fingerprinted or, once token is signalled, until
// the files already being digested finish. Files that cannot be read are
// dropped from the result. Run itself never fails: a missing or empty root
// simply yields no groups.
func (s *Scanner) Run(root string, progress *Progress, token *Token) Groups {
	if progress == nil {
		progress = NewProgress()
	}
	if token == nil {
		token = NewToken()
	}

	entries := Collect(root)
	total := int64(len(entries))
	if total == 0 {
		return Groups{}
	}

	idx := newIndex()
	requests := make(chan string)
	var processed atomic.Int64

	var wg sync.WaitGroup
	wg.Add(s.workers)
	for i := 0; i < s.workers; i++ {
		go func() {
			defer wg.Done()
			h := hasher.New(s.digest)
			for path := range requests {
				if token.Signaled() {
					continue
				}
				if fp, err := h.Sum(path); err != nil {
					log.WithError(err).Debugf("skipping %s", path)
				} else {
					idx.add(fp, path)
				}
				progress.advance(processed.Add(1), total)
			}
		}()
	}

	for _, entry := range entries {
		if token.Signaled() {
			break
		}
		requests <- entry.Path
	}
	close(requests)
	wg.Wait()

	return idx.dups()
}

// Run scans root with default settings and no way to observe or cancel it.
func Run(root string) Groups {
	return New(0, nil).Run(root, nil, nil)
}
