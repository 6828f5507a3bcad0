package attribution

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	f "github.com/claude-was-here/attribution/pkg/functional"
)

func TestParseRecord(t *testing.T) {
	tt := []struct {
		name         string
		input        string
		expected     Record
		wantWarnings []string
	}{
		{
			name:     "range and single line",
			input:    "abc123|src/foo.py|10-12,20\n",
			expected: Record{"src/foo.py": f.SetOf(10, 11, 12, 20)},
		},
		{
			name:     "contributions accumulate across commits",
			input:    "abc|a.go|1-2\ndef|a.go|5\nghi|b.go|3\n",
			expected: Record{"a.go": f.SetOf(1, 2, 5), "b.go": f.SetOf(3)},
		},
		{
			name:     "wrong field count skipped silently",
			input:    "not a record line\nabc|a.go\nabc|a.go|1|extra\nabc|b.go|7\n",
			expected: Record{"b.go": f.SetOf(7)},
		},
		{
			name:         "malformed range token warned and skipped",
			input:        "abc|a.go|10-,20\n",
			expected:     Record{"a.go": f.SetOf(20)},
			wantWarnings: []string{"Warning: Could not parse range '10-' in file a.go"},
		},
		{
			name:         "malformed line number token warned and skipped",
			input:        "abc|a.go|x,3\n",
			expected:     Record{"a.go": f.SetOf(3)},
			wantWarnings: []string{"Warning: Could not parse line number 'x' in file a.go"},
		},
		{
			name:         "parse continues on later lines after bad token",
			input:        "abc|a.go|10-\ndef|b.go|1-3\n",
			expected:     Record{"b.go": f.SetOf(1, 2, 3)},
			wantWarnings: []string{"Could not parse range '10-'"},
		},
		{
			name:     "reversed span registers the file with no lines",
			input:    "abc|a.go|5-3\n",
			expected: Record{"a.go": f.NewSet[int]()},
		},
		{
			name:     "whitespace around tokens",
			input:    "abc|a.go| 1 , 4-5 \n",
			expected: Record{"a.go": f.SetOf(1, 4, 5)},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			warn := &bytes.Buffer{}
			record, err := ParseRecord(strings.NewReader(tc.input), warn)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(record, tc.expected) {
				t.Errorf("expected %v, got %v", tc.expected, record)
			}
			for _, want := range tc.wantWarnings {
				if !strings.Contains(warn.String(), want) {
					t.Errorf("expected warning containing %q, got %q", want, warn.String())
				}
			}
			if len(tc.wantWarnings) == 0 && warn.Len() > 0 {
				t.Errorf("unexpected warnings: %q", warn.String())
			}
		})
	}
}

func TestParseRecordFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claude.txt")
	if err := os.WriteFile(path, []byte("abc|a.go|1-3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	warn := &bytes.Buffer{}
	record := ParseRecordFile(path, warn)
	if !reflect.DeepEqual(record, Record{"a.go": f.SetOf(1, 2, 3)}) {
		t.Errorf("unexpected record: %v", record)
	}
	if warn.Len() > 0 {
		t.Errorf("unexpected warnings: %q", warn.String())
	}
}

func TestParseRecordFileMissing(t *testing.T) {
	warn := &bytes.Buffer{}
	record := ParseRecordFile(filepath.Join(t.TempDir(), "nope.txt"), warn)
	if len(record) != 0 {
		t.Errorf("expected empty record, got %v", record)
	}
	if !strings.Contains(warn.String(), "Could not find claude data file") {
		t.Errorf("expected missing file diagnostic, got %q", warn.String())
	}
}
