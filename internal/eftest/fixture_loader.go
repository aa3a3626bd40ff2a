package eftest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/atahabilder1/SPECTRE/internal/core"
)

// BatchResult holds aggregate results for a batch of replayed fixtures.
type BatchResult struct {
	Total  int
	Passed int
	Failed int
	Errors []*CaseResult
}

// DiscoverFixtures walks a directory tree and returns paths to all .json
// files.
func DiscoverFixtures(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	var files []string
	err = filepath.Walk(dir, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.IsDir() && strings.HasSuffix(fi.Name(), ".json") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	sort.Strings(files)
	return files, nil
}

// RunFixtureFile loads and replays a single fixture file under fork.
func RunFixtureFile(path string, fork core.Fork) ([]*CaseResult, error) {
	f, err := LoadFixture(path)
	if err != nil {
		return nil, err
	}
	return RunFixture(f, fork), nil
}

// RunFixtureDir replays every fixture file in a directory under fork.
func RunFixtureDir(dir string, fork core.Fork) (*BatchResult, error) {
	files, err := DiscoverFixtures(dir)
	if err != nil {
		return nil, err
	}

	batch := &BatchResult{}
	for _, file := range files {
		results, err := RunFixtureFile(file, fork)
		if err != nil {
			batch.Total++
			batch.Failed++
			batch.Errors = append(batch.Errors, &CaseResult{Name: file, Error: err})
			continue
		}
		for _, r := range results {
			batch.Total++
			if r.Passed {
				batch.Passed++
			} else {
				batch.Failed++
				batch.Errors = append(batch.Errors, r)
			}
		}
	}
	return batch, nil
}

// RunFixtureDirConcurrent replays fixtures in dir concurrently across
// workers goroutines.
func RunFixtureDirConcurrent(dir string, fork core.Fork, workers int) (*BatchResult, error) {
	files, err := DiscoverFixtures(dir)
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = 4
	}

	type fileResult struct {
		results []*CaseResult
		err     error
		file    string
	}

	ch := make(chan string, len(files))
	for _, f := range files {
		ch <- f
	}
	close(ch)

	resultsCh := make(chan fileResult, len(files))
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range ch {
				results, err := RunFixtureFile(file, fork)
				resultsCh <- fileResult{results: results, err: err, file: file}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	batch := &BatchResult{}
	for fr := range resultsCh {
		if fr.err != nil {
			batch.Total++
			batch.Failed++
			batch.Errors = append(batch.Errors, &CaseResult{Name: fr.file, Error: fr.err})
			continue
		}
		for _, r := range fr.results {
			batch.Total++
			if r.Passed {
				batch.Passed++
			} else {
				batch.Failed++
				batch.Errors = append(batch.Errors, r)
			}
		}
	}
	return batch, nil
}

// FormatResults returns a human-readable summary of batch results.
func FormatResults(result *BatchResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Fixture replay results: %d total, %d passed, %d failed\n",
		result.Total, result.Passed, result.Failed))

	if len(result.Errors) > 0 {
		sb.WriteString("\nFailures:\n")
		for i, e := range result.Errors {
			if i >= 20 {
				sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Errors)-20))
				break
			}
			sb.WriteString(fmt.Sprintf("  [%s] (fork=%s): %v\n", e.Name, e.Fork, e.Error))
		}
	}

	return sb.String()
}
