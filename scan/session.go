package scan

import "sync/atomic"

// State is the lifecycle phase of a Session.
type State int32

const (
	Idle State = iota
	Running
	Completed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// A Session owns one scan of one root: its progress, its cancellation token
// and its eventual result. UIs poll Progress and State while the scan runs
// and read Groups once Done is closed. Sessions do not restart; create a new
// one for every scan.
type Session struct {
	root    string
	scanner *Scanner

	progress *Progress
	token    *Token
	state    atomic.Int32
	done     chan struct{}
	groups   Groups
}

// NewSession prepares a scan of root. A nil scanner gets default settings.
func NewSession(root string, scanner *Scanner) *Session {
	if scanner == nil {
		scanner = New(0, nil)
	}
	return &Session{
		root:     root,
		scanner:  scanner,
		progress: NewProgress(),
		token:    NewToken(),
		done:     make(chan struct{}),
	}
}

// Start launches the scan goroutine. Only the first call does anything.
func (s *Session) Start() {
	if !s.state.CompareAndSwap(int32(Idle), int32(Running)) {
		return
	}
	go func() {
		s.groups = s.scanner.Run(s.root, s.progress, s.token)
		if s.token.Signaled() {
			s.state.Store(int32(Cancelled))
		} else {
			s.state.Store(int32(Completed))
		}
		close(s.done)
	}()
}

// Cancel asks the running scan to stop once the files already being digested
// finish. Idempotent, and valid before Start, which then stops immediately.
func (s *Session) Cancel() {
	s.token.Signal()
}

// Progress returns the completed fraction of the scan, in [0, 1].
func (s *Session) Progress() float64 {
	return s.progress.Get()
}

// State returns the session's current phase.
func (s *Session) State() State {
	return State(s.state.Load())
}

// Done is closed when the scan goroutine has finished and Groups may be
// read.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Groups returns the duplicate groups the scan found. Valid only after Done
// is closed; for a cancelled session it holds the duplicates confirmed
// before the stop.
func (s *Session) Groups() Groups {
	return s.groups
}
