package daf420

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// RecordLength is the logical width of a DAF420 line. Short lines are
// space-padded to this width before slicing; long lines are left alone.
const RecordLength = 510

// DecodeLine slices one fixed-width line into the layout's named fields and
// trims the surrounding whitespace from each value. Offsets are byte
// positions: the export is single-byte Latin-1 text, so fields are cut from
// the raw bytes first and converted to UTF-8 after. A field whose extent runs
// past the end of the padded line decodes as "".
func DecodeLine(line string, layout RecordLayout) map[string]string {
	line = pad(line)
	out := make(map[string]string, len(layout))
	for _, f := range layout {
		if f.Offset+f.Length > len(line) {
			out[f.Name] = ""
			continue
		}
		out[f.Name] = fieldText(line[f.Offset : f.Offset+f.Length])
	}
	return out
}

func pad(line string) string {
	if len(line) >= RecordLength {
		return line
	}
	return line + strings.Repeat(" ", RecordLength-len(line))
}

// fieldText converts a raw Latin-1 field to trimmed UTF-8. Almost every field
// is plain ASCII; the charset decoder only runs when a high byte shows up in
// a lease or operator name.
func fieldText(raw string) string {
	for i := 0; i < len(raw); i++ {
		if raw[i] >= utf8.RuneSelf {
			if s, err := charmap.ISO8859_1.NewDecoder().String(raw); err == nil {
				return strings.TrimSpace(s)
			}
			break
		}
	}
	return strings.TrimSpace(raw)
}

// NormalizeImplied inserts the decimal point a COBOL PIC clause implies:
// "00150000" with 6 integer digits becomes "001500.00". A leading minus is
// preserved. Anything that is not an optionally signed run of ASCII digits,
// or that has no more digits than the integer part, passes through unchanged,
// so blanks and sentinel junk survive as-is.
func NormalizeImplied(raw string, intDigits int) string {
	digits := strings.TrimPrefix(raw, "-")
	if digits == "" {
		return raw
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return raw
		}
	}
	if len(digits) <= intDigits {
		return raw
	}
	out := digits[:intDigits] + "." + digits[intDigits:]
	if len(digits) != len(raw) {
		return "-" + out
	}
	return out
}

// applyImplied rewrites a decoded record's implied-decimal fields in place.
func applyImplied(rec map[string]string, tag string) {
	for _, f := range impliedDecimals[tag] {
		rec[f.name] = NormalizeImplied(rec[f.name], f.digits)
	}
}
