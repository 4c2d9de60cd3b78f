package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/unicode/norm"

	"dupfinder/scan"
)

// A Group is one set of files sharing a content fingerprint, sized for
// reporting. Wasted is the space freed by keeping a single copy.
type Group struct {
	Fingerprint string   `json:"fingerprint"`
	Size        int64    `json:"size"`
	Wasted      int64    `json:"wasted"`
	Paths       []string `json:"paths"`
}

// Build turns raw scan groups into a report ordered for reading: the most
// reclaimable space first, paths within a group in Unicode order. sizeOf
// reports the size of one file; nil falls back to stat, under which files
// that disappeared since the scan count as empty.
func Build(groups scan.Groups, sizeOf func(string) int64) []Group {
	if sizeOf == nil {
		sizeOf = statSize
	}
	out := make([]Group, 0, len(groups))
	for fp, paths := range groups {
		sorted := append([]string(nil), paths...)
		sort.Slice(sorted, func(i, j int) bool {
			return norm.NFC.String(sorted[i]) < norm.NFC.String(sorted[j])
		})
		size := sizeOf(sorted[0])
		out = append(out, Group{
			Fingerprint: fp,
			Size:        size,
			Wasted:      size * int64(len(sorted)-1),
			Paths:       sorted,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Wasted != out[j].Wasted {
			return out[i].Wasted > out[j].Wasted
		}
		return out[i].Fingerprint < out[j].Fingerprint
	})
	return out
}

func statSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// Wasted sums the reclaimable bytes across the whole report.
func Wasted(groups []Group) int64 {
	var total int64
	for _, g := range groups {
		total += g.Wasted
	}
	return total
}

// Text writes the report for humans, one group per block.
func Text(w io.Writer, groups []Group) error {
	if len(groups) == 0 {
		_, err := fmt.Fprintln(w, "no duplicates found")
		return err
	}
	for i, g := range groups {
		_, err := fmt.Fprintf(w, "%d) %s\n   %d files, %s each, %s wasted\n",
			i+1, g.Fingerprint, len(g.Paths),
			humanize.Bytes(uint64(g.Size)), humanize.Bytes(uint64(g.Wasted)))
		if err != nil {
			return err
		}
		for _, p := range g.Paths {
			if _, err := fmt.Fprintf(w, "   %s\n", p); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "\n%s duplicate groups, %s wasted\n",
		humanize.Comma(int64(len(groups))), humanize.Bytes(uint64(Wasted(groups))))
	return err
}

// JSON writes the report as a single indented document.
func JSON(w io.Writer, groups []Group) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(groups)
}
