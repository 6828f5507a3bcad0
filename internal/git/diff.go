package git

import (
	"fmt"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sourcegraph/go-diff/diff"

	"github.com/claude-was-here/attribution/pkg/attribution"
	f "github.com/claude-was-here/attribution/pkg/functional"
)

// DiffContext names the endpoints of the final squashed diff.
type DiffContext struct {
	Base   string
	Latest string
	Dir    string
	Ignore []string // doublestar globs; matching files are dropped from the diff
}

// FinalDiffLines runs `git diff -U0 <base>..<latest>` and returns, per changed
// file, the set of line numbers present on the new side of each hunk.
func FinalDiffLines(context DiffContext) (attribution.Record, error) {
	return finalDiffLines(context, newRealGitExecutor(context.Dir))
}

func finalDiffLines(context DiffContext, executor gitCommandExecutor) (attribution.Record, error) {
	output, err := executor.execute("git", "diff", "-U0", fmt.Sprintf("%s..%s", context.Base, context.Latest))
	if err != nil {
		return nil, fmt.Errorf("Diff Error: %w\n%s", err, output)
	}
	fileDiffs, err := diff.ParseMultiFileDiff(output)
	if err != nil {
		return nil, fmt.Errorf("Diff Parse Error: %w", err)
	}
	fileDiffs = slices.DeleteFunc(fileDiffs, func(d *diff.FileDiff) bool {
		return ignored(context.Ignore, newName(d))
	})

	finalLines := attribution.Record{}
	for _, d := range fileDiffs {
		name := newName(d)
		if name == "" {
			continue
		}
		lines := f.NewSet[int]()
		for _, hunk := range d.Hunks {
			for i := range int(hunk.NewLines) {
				lines.Add(int(hunk.NewStartLine) + i)
			}
		}
		// Files with no new-side lines (pure deletions) stay out of the map.
		if len(lines) > 0 {
			finalLines[name] = lines
		}
	}
	return finalLines, nil
}

// newName strips the `b/` marker from the new-side path. Deleted files have
// no new side and resolve to the empty string.
func newName(d *diff.FileDiff) string {
	if d.NewName == "/dev/null" || len(d.NewName) <= 2 {
		return ""
	}
	return d.NewName[2:]
}

func ignored(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if match, err := doublestar.Match(pattern, path); err == nil && match {
			return true
		}
	}
	return false
}
