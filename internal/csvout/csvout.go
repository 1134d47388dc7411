// Package csvout writes map-backed record collections as CSV. The column set
// is never fixed up front: a header is the sorted union of every key observed
// across the rows it covers, so two exports can legitimately produce
// different column sets for the same table.
package csvout

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
)

// EncodeTable writes rows to w with a union-of-keys header. Rows missing a
// column render an empty cell there.
func EncodeTable[R ~map[string]string](w io.Writer, rows []R) error {
	header := unionKeys(rows)
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	record := make([]string, len(header))
	for _, row := range rows {
		for i, col := range header {
			record[i] = row[col]
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTable creates path and encodes rows into it. Callers are expected to
// skip empty collections entirely; an export with no restrictions produces no
// restrictions file at all.
func WriteTable[R ~map[string]string](path string, rows []R) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := EncodeTable(f, rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func unionKeys[R ~map[string]string](rows []R) []string {
	seen := make(map[string]bool)
	for _, row := range rows {
		for k := range row {
			seen[k] = true
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
