package scan

import (
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
)

// Groups maps a content fingerprint to the paths of the files bearing it.
// Only fingerprints shared by two or more files are reported.
type Groups map[string][]string

// index accumulates fingerprints from concurrent workers. Each fingerprint
// owns a small lock, so two files hashing to the same digest at the same
// time land in the same group without losing either path.
type index struct {
	m *xsync.MapOf[string, *group]
}

type group struct {
	mu    sync.Mutex
	paths []string
}

func newIndex() *index {
	return &index{m: xsync.NewMapOf[string, *group]()}
}

func (x *index) add(fp, path string) {
	g, _ := x.m.LoadOrStore(fp, &group{})
	g.mu.Lock()
	g.paths = append(g.paths, path)
	g.mu.Unlock()
}

// dups returns the fingerprints carried by two or more files. Call it only
// after the workers are done.
func (x *index) dups() Groups {
	groups := Groups{}
	x.m.Range(func(fp string, g *group) bool {
		if len(g.paths) > 1 {
			groups[fp] = g.paths
		}
		return true
	})
	return groups
}
