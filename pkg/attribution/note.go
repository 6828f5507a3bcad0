package attribution

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	f "github.com/claude-was-here/attribution/pkg/functional"
)

const (
	noteHeader  = "claude-was-here"
	noteVersion = "version: 1.0"
)

// LinesToRanges converts a set of line numbers to compact range notation like
// "10-20,25-30". Runs of consecutive numbers merge into an inclusive span;
// isolated numbers render bare. An empty set converts to the empty string.
func LinesToRanges(lines LineSet) string {
	if len(lines) == 0 {
		return ""
	}
	sorted := lines.Items()
	slices.Sort(sorted)

	ranges := make([]string, 0)
	start := sorted[0]
	end := sorted[0]
	for _, line := range sorted[1:] {
		if line == end+1 {
			end = line
			continue
		}
		ranges = append(ranges, formatRange(start, end))
		start, end = line, line
	}
	ranges = append(ranges, formatRange(start, end))

	return strings.Join(ranges, ",")
}

func formatRange(start, end int) string {
	if start == end {
		return strconv.Itoa(start)
	}
	return fmt.Sprintf("%d-%d", start, end)
}

// GenerateNote renders the final claude-was-here note: a fixed two-line
// header, then one line per file sorted by path, with every colon aligned two
// columns past the longest path. Files whose range string is empty are
// omitted, though they still count toward the alignment width.
func GenerateNote(finalClaudeLines Record) string {
	noteLines := []string{noteHeader, noteVersion}

	if len(finalClaudeLines) > 0 {
		maxLength := 0
		for path := range finalClaudeLines {
			maxLength = max(maxLength, len(path))
		}

		rangesByFile := f.MapMap(finalClaudeLines, LinesToRanges)
		for _, path := range slices.Sorted(maps.Keys(rangesByFile)) {
			if rangesByFile[path] == "" {
				continue
			}
			noteLines = append(noteLines, fmt.Sprintf("%-*s %s", maxLength+2, path+":", rangesByFile[path]))
		}
	}

	return strings.Join(noteLines, "\n")
}
