package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/boyter/gocodewalker"
	"github.com/urfave/cli/v2"

	"github.com/claude-was-here/attribution/internal/config"
	"github.com/claude-was-here/attribution/internal/git"
	"github.com/claude-was-here/attribution/pkg/attribution"
)

func stripRoot(root string, path string) string {
	if root == "." {
		return path
	}
	return strings.TrimPrefix(path, root+"/")
}

// warningCounter forwards diagnostics to the underlying writer while counting
// them, so strict mode can fail the run after the fact.
type warningCounter struct {
	w     io.Writer
	count int
}

func (wc *warningCounter) Write(p []byte) (int, error) {
	wc.count++
	return wc.w.Write(p)
}

func newApp(stdout, stderr io.Writer) *cli.App {
	var repo string
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "Print version",
	}
	cli.VersionPrinter = func(cCtx *cli.Context) {
		fmt.Fprintln(cCtx.App.Writer, cCtx.App.Version)
	}
	rootFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:        "root",
			Aliases:     []string{"r", "repo"},
			Value:       "./",
			Usage:       "Path to local Git repo",
			Destination: &repo,
		}
	}
	app := &cli.App{
		Name:      "claude-attribution",
		Usage:     "Map claude line contributions onto a squashed diff",
		UsageText: "claude-attribution [options] <claude_data_file> <base_commit> <latest_commit>",
		Description: "Analyzes claude contributions collected across commits and maps them to\n" +
			"the final diff, generating accurate attribution for squashed commits.",
		Version:   "v1.0.0",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     []cli.Flag{rootFlag()},
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() < 3 {
				_ = cli.ShowAppHelp(cCtx)
				return fmt.Errorf("expected <claude_data_file> <base_commit> <latest_commit>")
			}
			args := cCtx.Args()
			return analyze(repo, args.Get(0), args.Get(1), args.Get(2), stdout, stderr)
		},
		Commands: []*cli.Command{
			{
				Name:        "untracked",
				Aliases:     []string{"u"},
				Usage:       "List working-tree files with no claude contribution record",
				UsageText:   "claude-attribution untracked [options] <claude_data_file>",
				Description: "Walk the repository and list files that have no entry in the claude data file.",
				Flags:       []cli.Flag{rootFlag()},
				Action: func(cCtx *cli.Context) error {
					if cCtx.NArg() < 1 {
						return fmt.Errorf("claude data file is required")
					}
					return untrackedFiles(repo, cCtx.Args().First(), stdout, stderr)
				},
			},
		},
	}
	return app
}

func analyze(repo, dataFile, baseCommit, latestCommit string, stdout, stderr io.Writer) error {
	warnings := &warningCounter{w: stderr}

	conf, err := config.ReadConfig(repo)
	if err != nil {
		fmt.Fprintf(warnings, "Warning: Error reading attribution.toml - using default config: %v\n", err)
	}

	claudeFiles := attribution.ParseRecordFile(dataFile, warnings)
	fmt.Fprintf(stderr, "Found claude contributions in %d files\n", len(claudeFiles))

	finalLines, err := git.FinalDiffLines(git.DiffContext{
		Base:   baseCommit,
		Latest: latestCommit,
		Dir:    repo,
		Ignore: conf.Ignore,
	})
	if err != nil {
		fmt.Fprintf(warnings, "Error running git diff: %v\n", err)
		finalLines = attribution.Record{}
	}
	fmt.Fprintf(stderr, "Final diff affects %d files\n", len(finalLines))

	finalClaudeLines := attribution.MapToFinal(claudeFiles, finalLines)

	fmt.Fprintln(stdout, attribution.GenerateNote(finalClaudeLines))

	if conf.Strict && warnings.count > 0 {
		return fmt.Errorf("strict mode: %d warnings emitted", warnings.count)
	}
	return nil
}

func untrackedFiles(repo, dataFile string, stdout, stderr io.Writer) error {
	if repoStat, err := os.Lstat(repo); err != nil || !repoStat.IsDir() {
		return fmt.Errorf("Root is not a directory: %s", repo)
	}
	if gitStat, err := os.Stat(filepath.Join(repo, ".git")); err != nil || !gitStat.IsDir() {
		return fmt.Errorf("Root is not a Git repository: %s", repo)
	}

	record := attribution.ParseRecordFile(dataFile, stderr)

	fileListQueue := make(chan *gocodewalker.File, 100)
	walker := gocodewalker.NewFileWalker(repo, fileListQueue)
	walker.IncludeHidden = true
	walker.ExcludeDirectory = []string{".git"}

	errChan := make(chan error)
	go func() {
		errChan <- walker.Start()
		close(errChan)
	}()

	files := make([]string, 0)
	for file := range fileListQueue {
		files = append(files, stripRoot(repo, file.Location))
	}
	if err := <-errChan; err != nil {
		return fmt.Errorf("Error walking repo: %s", err)
	}

	if stale := attribution.Stale(record, files); len(stale) > 0 {
		fmt.Fprintf(stderr, "Warning: %d recorded files missing from working tree\n", len(stale))
	}

	untracked := attribution.Untracked(record, files)
	slices.Sort(untracked)
	fmt.Fprintln(stdout, strings.Join(untracked, "\n"))
	return nil
}

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
