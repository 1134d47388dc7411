package main

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// exportReader walks a DAF420 export line by line while hashing the file as
// stored, so the checksum identifies the artifact on disk whether or not it
// is compressed.
type exportReader struct {
	f       *os.File
	gz      *gzip.Reader
	tee     io.Reader
	hash    hash.Hash
	scanner *bufio.Scanner
}

// openExport opens a permit export for scanning. A .gz suffix switches on
// transparent decompression.
func openExport(path string) (*exportReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	h := sha256.New()
	tee := io.TeeReader(f, h)
	var r io.Reader = tee

	var gz *gzip.Reader
	if strings.EqualFold(filepath.Ext(path), ".gz") {
		gz, err = gzip.NewReader(r)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		r = gz
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024) // allow very long lines

	return &exportReader{f: f, gz: gz, tee: tee, hash: h, scanner: scanner}, nil
}

func (e *exportReader) Scan() bool   { return e.scanner.Scan() }
func (e *exportReader) Text() string { return e.scanner.Text() }
func (e *exportReader) Err() error   { return e.scanner.Err() }

// Checksum drains whatever is left unread first so the digest always covers
// the whole file as stored.
func (e *exportReader) Checksum() string {
	_, _ = io.Copy(io.Discard, e.tee)
	return hex.EncodeToString(e.hash.Sum(nil))
}

func (e *exportReader) Close() error {
	if e.gz != nil {
		e.gz.Close()
	}
	return e.f.Close()
}
