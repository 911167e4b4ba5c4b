package diff

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FileStat is one changed file in a simplified diff.
type FileStat struct {
	Path    string
	Added   int
	Removed int
	Binary  bool
}

// ParseNumstat parses `git diff --numstat` output. Binary files report "-"
// for both counts. Malformed lines are dropped.
func ParseNumstat(out string) []FileStat {
	var stats []FileStat
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 3)
		if len(fields) != 3 {
			continue
		}
		stat := FileStat{Path: fields[2]}
		if fields[0] == "-" || fields[1] == "-" {
			stat.Binary = true
		} else {
			added, err := strconv.Atoi(fields[0])
			if err != nil {
				continue
			}
			removed, err := strconv.Atoi(fields[1])
			if err != nil {
				continue
			}
			stat.Added = added
			stat.Removed = removed
		}
		stats = append(stats, stat)
	}
	return stats
}

// Summarize renders file stats as one line per file, sorted by path:
//
//	internal/foo/bar.go +12/-3
//
// Binary files carry a marker instead of line counts. The output contains
// file paths and tallies only, never raw diff content.
func Summarize(stats []FileStat) string {
	sorted := make([]FileStat, len(stats))
	copy(sorted, stats)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	var b strings.Builder
	b.WriteString("Changed files:\n")
	for _, s := range sorted {
		if s.Binary {
			fmt.Fprintf(&b, "%s (binary)\n", s.Path)
			continue
		}
		fmt.Fprintf(&b, "%s +%d/-%d\n", s.Path, s.Added, s.Removed)
	}
	return strings.TrimRight(b.String(), "\n")
}
