package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func TestOpenExportMissingFile(t *testing.T) {
	if _, err := openExport(filepath.Join(t.TempDir(), "absent.dat")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestOpenExportScansAndChecksums(t *testing.T) {
	content := []byte("01line one\n02line two\n")
	path := filepath.Join(t.TempDir(), "export.dat")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	in, err := openExport(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer in.Close()

	var lines []string
	for in.Scan() {
		lines = append(lines, in.Text())
	}
	if err := in.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(lines) != 2 || lines[0] != "01line one" || lines[1] != "02line two" {
		t.Fatalf("unexpected lines: %q", lines)
	}

	want := sha256.Sum256(content)
	if got := in.Checksum(); got != hex.EncodeToString(want[:]) {
		t.Fatalf("checksum = %s, want %s", got, hex.EncodeToString(want[:]))
	}
}

func TestOpenExportGzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte("01compressed record\n")); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}

	path := filepath.Join(t.TempDir(), "export.dat.gz")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	in, err := openExport(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer in.Close()

	if !in.Scan() || in.Text() != "01compressed record" {
		t.Fatalf("unexpected scan result: %q", in.Text())
	}
	if in.Scan() {
		t.Fatalf("expected a single line")
	}

	// The digest covers the compressed bytes on disk, not the decoded stream.
	want := sha256.Sum256(buf.Bytes())
	if got := in.Checksum(); got != hex.EncodeToString(want[:]) {
		t.Fatalf("checksum = %s, want %s", got, hex.EncodeToString(want[:]))
	}
}
