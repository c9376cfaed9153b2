package fs

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// lineChanges counts the lines added and removed between two versions of a file.
func lineChanges(before, after string) (added, removed int) {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	for _, d := range diffs {
		n := strings.Count(d.Text, "\n")
		if n == 0 && d.Text != "" {
			n = 1
		}
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += n
		case diffmatchpatch.DiffDelete:
			removed += n
		case diffmatchpatch.DiffEqual:
		}
	}
	return added, removed
}

// summary describes a rewrite for the log.
func summary(name string, before, after []byte, existed bool) string {
	if !existed {
		return fmt.Sprintf("created %s", name)
	}
	added, removed := lineChanges(string(before), string(after))
	return fmt.Sprintf("updated %s (+%d -%d lines)", name, added, removed)
}
