package attribution

import (
	"maps"

	f "github.com/claude-was-here/attribution/pkg/functional"
)

// MapToFinal maps claude's original line contributions onto the final squashed
// diff. This is a simplified mapping: if claude touched a file at all and that
// file has changes in the final diff, every changed line of the file is
// attributed to claude. Tracing individual lines through the intermediate
// commits would require walking git history and is deliberately not attempted.
func MapToFinal(record Record, finalLines Record) Record {
	finalClaudeLines := Record{}

	for filePath := range record {
		if lines, found := finalLines[filePath]; found {
			finalClaudeLines[filePath] = maps.Clone(lines)
		}
	}
	return finalClaudeLines
}

// Untracked returns the paths that have no entry in the record.
func Untracked(record Record, paths []string) []string {
	return f.Filtered(paths, func(path string) bool {
		_, found := record[path]
		return !found
	})
}

// Stale returns record entries whose file is absent from paths, typically
// files deleted since their contributions were collected.
func Stale(record Record, paths []string) []string {
	present := f.SetOf(paths...)
	stale := make([]string, 0)
	for path := range record {
		if !present.Contains(path) {
			stale = append(stale, path)
		}
	}
	return stale
}
