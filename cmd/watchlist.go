package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Path to the persistent watchlist, one status number per line. It sits with
// the other data files so it survives across runs.
var watchlistFile = filepath.Join("data", "watchlist.txt")

// loadWatchlist returns the stored status numbers in file order. A missing
// file just means nothing is watched yet.
func loadWatchlist() ([]string, error) {
	f, err := os.Open(watchlistFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var statuses []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		s := strings.TrimSpace(scanner.Text())
		if s != "" {
			statuses = append(statuses, s)
		}
	}
	return statuses, scanner.Err()
}

// saveWatch appends a status number unless an equivalent one is already
// present. Comparison runs through the same normalization as lookups, so
// "871234" and "0871234" count as one entry.
func saveWatch(status string) error {
	normNew := normalizeStatus(status)
	existing, err := loadWatchlist()
	if err != nil {
		return err
	}
	for _, s := range existing {
		if normalizeStatus(s) == normNew {
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(watchlistFile), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(watchlistFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintln(f, status)
	return err
}

// showWatchlist lists the watched permits with whatever the loaded exports
// know about them and hands the list to the arrow-key selector.
func showWatchlist() {
	statuses, err := loadWatchlist()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load watchlist: %v\n", err)
		return
	}
	if len(statuses) == 0 {
		fmt.Println("Nothing watched yet. Look up a permit and answer y to add it.")
		return
	}

	var lines []string
	for _, s := range statuses {
		operator, lease := "", ""
		if p, ok := cur.lookup(s); ok {
			operator, lease = p.OperatorName(), p.LeaseName()
		} else if prev != nil {
			if p, ok := prev.lookup(s); ok {
				operator, lease = p.OperatorName(), p.LeaseName()
			}
		}
		var line string
		if operator == "" && lease == "" {
			line = fmt.Sprintf("%-7s | (not in loaded exports)", s)
		} else {
			line = fmt.Sprintf("%-7s | %-32s | %s", s, operator, lease)
		}
		lines = append(lines, line)
		fmt.Println(line)
	}

	fmt.Println("Use ↑/↓ and Enter for details, Esc to exit.")
	interactiveSelect(statuses, lines, false)
}
