//go:build tools

// cover-merger joins the *.cover profiles written by the unit and
// integration test runs into one coverage.out. A block covered by either
// run counts as covered.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

func main() {
	out := flag.String("out", "coverage.out", "merged profile path")
	pattern := flag.String("in", "*.cover", "glob of profiles to merge")
	flag.Parse()

	files, err := filepath.Glob(*pattern)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to find profiles: %v\n", err)
		os.Exit(1)
	}

	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "warning: no files match %s\n", *pattern)
		return
	}

	blocks := make(map[string]bool)

	for _, file := range files {
		if err := readProfile(file, blocks); err != nil {
			fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", file, err)
			continue
		}
	}

	if err := writeProfile(*out, blocks); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", *out, err)
		os.Exit(1)
	}

	fmt.Printf("merged %d profiles into %s (%d blocks)\n", len(files), *out, len(blocks))
}

// readProfile adds every "file:range stmts count" line of a profile to blocks,
// keyed by everything but the count.
func readProfile(path string, blocks map[string]bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "mode:") {
			continue
		}

		idx := strings.LastIndexByte(line, ' ')
		if idx < 0 {
			continue
		}

		key, count := line[:idx], line[idx+1:]
		blocks[key] = blocks[key] || count != "0"
	}

	return scanner.Err()
}

func writeProfile(path string, blocks map[string]bool) error {
	keys := make([]string, 0, len(blocks))
	for k := range blocks {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	if _, err := w.WriteString("mode: set\n"); err != nil {
		return err
	}

	for _, k := range keys {
		covered := "0"
		if blocks[k] {
			covered = "1"
		}

		if _, err := fmt.Fprintf(w, "%s %s\n", k, covered); err != nil {
			return err
		}
	}

	return w.Flush()
}
