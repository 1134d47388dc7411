package csvout

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"rrcpermits/internal/types"
)

func TestEncodeTableUnionOfKeys(t *testing.T) {
	rows := []types.RestrictionSegment{
		{"DA_CAN_RESTR_REMARK": "FRESH WATER", "RESTRICTION_TYPE": "CANNED", "PARENT_STATUS_NUMBER": "0871234"},
		{"DA_FREE_RESTR_REMARK": "NO FLARING", "RESTRICTION_TYPE": "FREE_FORM", "PARENT_STATUS_NUMBER": "0871234"},
	}

	var buf bytes.Buffer
	if err := EncodeTable(&buf, rows); err != nil {
		t.Fatalf("encode: %v", err)
	}

	want := "DA_CAN_RESTR_REMARK,DA_FREE_RESTR_REMARK,PARENT_STATUS_NUMBER,RESTRICTION_TYPE\n" +
		"FRESH WATER,,0871234,CANNED\n" +
		",NO FLARING,0871234,FREE_FORM\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestEncodeTableQuotesCommas(t *testing.T) {
	rows := []types.PermitRecord{
		{"DA_OPERATOR_NAME": "SMITH, JONES & CO"},
	}
	var buf bytes.Buffer
	if err := EncodeTable(&buf, rows); err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := "DA_OPERATOR_NAME\n\"SMITH, JONES & CO\"\n"
	if buf.String() != want {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestEncodeTableDeterministic(t *testing.T) {
	rows := []types.PermitRecord{
		{"B": "2", "A": "1", "C": "3"},
		{"C": "30", "A": "10"},
	}
	var first, second bytes.Buffer
	if err := EncodeTable(&first, rows); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := EncodeTable(&second, rows); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Fatalf("same rows encoded differently:\n%q\n%q", first.String(), second.String())
	}
}

func TestWriteTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "permits.csv")
	rows := []types.PermitRecord{
		{"DA_STATUS_NUMBER": "0871234", "DA_OPERATOR_NAME": "ALPHA"},
	}
	if err := WriteTable(path, rows); err != nil {
		t.Fatalf("write table: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := "DA_OPERATOR_NAME,DA_STATUS_NUMBER\nALPHA,0871234\n"
	if string(data) != want {
		t.Fatalf("unexpected file contents: %q", string(data))
	}
}
