package attribution

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	f "github.com/claude-was-here/attribution/pkg/functional"
)

// LineSet is a set of 1-based line numbers within a single file.
type LineSet = f.Set[int]

// Record maps file paths to the line numbers an automated contributor
// touched, accumulated across the commits collected before a squash.
type Record map[string]LineSet

// ParseRecordFile reads collected claude commit data from the pre-merge
// workflow. A missing or unreadable file is reported to warn and yields an
// empty Record; it is never fatal to the caller.
func ParseRecordFile(path string, warn io.Writer) Record {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(warn, "Error: Could not find claude data file: %s\n", path)
		} else {
			fmt.Fprintf(warn, "Error reading claude data: %v\n", err)
		}
		return Record{}
	}
	defer file.Close()

	record, err := ParseRecord(file, warn)
	if err != nil {
		fmt.Fprintf(warn, "Error parsing claude data: %v\n", err)
		return Record{}
	}
	return record
}

// ParseRecord scans line-oriented claude data of the form
//
//	<commit-hash>|<file-path>|<line-specs>
//
// where line-specs is a comma-separated list of single line numbers (`12`)
// or inclusive spans (`10-20`). Lines with a field count other than 3 are
// skipped. Malformed tokens generate warnings on warn and are skipped without
// aborting the rest of the parse.
func ParseRecord(r io.Reader, warn io.Writer) (Record, error) {
	record := Record{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		parts := strings.Split(strings.TrimSpace(scanner.Text()), "|")
		if len(parts) != 3 {
			continue
		}
		filePath := parts[1]

		for _, token := range strings.Split(parts[2], ",") {
			token = strings.TrimSpace(token)
			if strings.Contains(token, "-") {
				startStr, endStr, _ := strings.Cut(token, "-")
				start, err := strconv.Atoi(startStr)
				if err != nil {
					fmt.Fprintf(warn, "Warning: Could not parse range '%s' in file %s\n", token, filePath)
					continue
				}
				end, err := strconv.Atoi(endStr)
				if err != nil {
					fmt.Fprintf(warn, "Warning: Could not parse range '%s' in file %s\n", token, filePath)
					continue
				}
				lines := linesFor(record, filePath)
				for i := start; i <= end; i++ {
					lines.Add(i)
				}
			} else {
				line, err := strconv.Atoi(token)
				if err != nil {
					fmt.Fprintf(warn, "Warning: Could not parse line number '%s' in file %s\n", token, filePath)
					continue
				}
				linesFor(record, filePath).Add(line)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Record{}, err
	}
	return record, nil
}

// linesFor returns the line set for path, creating it on first use. A span
// that parses but covers no lines (start > end) still registers the file.
func linesFor(record Record, path string) LineSet {
	lines, found := record[path]
	if !found {
		lines = f.NewSet[int]()
		record[path] = lines
	}
	return lines
}
