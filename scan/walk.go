package scan

import (
	"io/fs"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// An Entry is one regular file found under a scan root.
type Entry struct {
	Path string
	Size int64
}

// Collect walks root depth first and returns every regular file under it.
// A root that is itself a regular file yields a single entry. Symlinks and
// other non-regular files are skipped, as is anything the walk cannot read.
// Unreadable paths never fail a scan; they are logged and dropped.
func Collect(root string) []Entry {
	var entries []Entry
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.WithError(err).Debugf("skipping %s", path)
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			log.WithError(err).Debugf("skipping %s", path)
			return nil
		}
		entries = append(entries, Entry{Path: path, Size: info.Size()})
		return nil
	})
	return entries
}
