package scan

import (
	"testing"
	"time"
)

func waitDone(t *testing.T, s *Session) {
	t.Helper()
	select {
	case <-s.Done():
	case <-time.After(30 * time.Second):
		t.Fatal("scan did not finish")
	}
}

func TestSessionCompletes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a", []byte("twin"))
	writeFile(t, dir, "b", []byte("twin"))
	writeFile(t, dir, "c", []byte("odd one"))

	session := NewSession(dir, New(2, nil))
	if st := session.State(); st != Idle {
		t.Fatalf("fresh session in state %v", st)
	}
	session.Start()
	waitDone(t, session)

	if st := session.State(); st != Completed {
		t.Errorf("got state %v, want %v", st, Completed)
	}
	if p := session.Progress(); p != 1.0 {
		t.Errorf("got progress %v, want exactly 1", p)
	}
	groups := session.Groups()
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1: %v", len(groups), groups)
	}
	for _, paths := range groups {
		if len(paths) != 2 {
			t.Errorf("got %v, want the twin pair", paths)
		}
	}
}

func TestSessionStartOnce(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a", []byte("twin"))
	writeFile(t, dir, "b", []byte("twin"))

	session := NewSession(dir, nil)
	session.Start()
	session.Start()
	waitDone(t, session)
	session.Start()

	if st := session.State(); st != Completed {
		t.Errorf("got state %v, want %v", st, Completed)
	}
	if len(session.Groups()) != 1 {
		t.Errorf("got %v, want the single twin group", session.Groups())
	}
}

func TestSessionCancelBeforeStart(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a", []byte("twin"))
	writeFile(t, dir, "b", []byte("twin"))

	session := NewSession(dir, nil)
	session.Cancel()
	session.Start()
	waitDone(t, session)

	if st := session.State(); st != Cancelled {
		t.Errorf("got state %v, want %v", st, Cancelled)
	}
	if len(session.Groups()) != 0 {
		t.Errorf("got %v, want none", session.Groups())
	}
	if p := session.Progress(); p != 0 {
		t.Errorf("got progress %v, want 0", p)
	}
}

func TestSessionCancelIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a", []byte("twin"))

	session := NewSession(dir, nil)
	session.Cancel()
	session.Cancel()
	session.Start()
	waitDone(t, session)
	session.Cancel()

	if st := session.State(); st != Cancelled {
		t.Errorf("got state %v, want %v", st, Cancelled)
	}
}

func TestStateString(t *testing.T) {
	if s := Completed.String(); s != "completed" {
		t.Errorf("got %q", s)
	}
	if s := State(42).String(); s != "unknown" {
		t.Errorf("got %q", s)
	}
}
