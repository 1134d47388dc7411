package main

import (
	"strings"

	"rrcpermits/internal/daf420"
	"rrcpermits/internal/types"
)

// permitIndex holds one parsed export with lookup maps over it. Keys are
// normalized so user input like "871234" finds the stored "0871234".
type permitIndex struct {
	permits  []types.PermitRecord
	byStatus map[string]types.PermitRecord
	byAPI    map[string]types.PermitRecord
	fields   map[string][]types.FieldSegment
	restr    map[string][]types.RestrictionSegment
}

func buildIndex(res *daf420.Result) *permitIndex {
	ix := &permitIndex{
		permits:  res.Permits,
		byStatus: make(map[string]types.PermitRecord, len(res.Permits)),
		byAPI:    make(map[string]types.PermitRecord, len(res.Permits)),
		fields:   make(map[string][]types.FieldSegment),
		restr:    make(map[string][]types.RestrictionSegment),
	}
	for _, p := range res.Permits {
		if s := normalizeStatus(p.StatusNumber()); s != "" {
			ix.byStatus[s] = p
		}
		if a := normalizeAPI(p.APINumber()); a != "" {
			ix.byAPI[a] = p
		}
	}
	for _, f := range res.Fields {
		key := normalizeStatus(f.ParentStatus())
		ix.fields[key] = append(ix.fields[key], f)
	}
	for _, r := range res.Restrictions {
		key := normalizeStatus(r.ParentStatus())
		ix.restr[key] = append(ix.restr[key], r)
	}
	return ix
}

// lookup resolves a query as a status number first, then as an API number.
func (ix *permitIndex) lookup(q string) (types.PermitRecord, bool) {
	if p, ok := ix.byStatus[normalizeStatus(q)]; ok {
		return p, true
	}
	if p, ok := ix.byAPI[normalizeAPI(q)]; ok {
		return p, true
	}
	return nil, false
}

// segments returns the child rows filed under a permit.
func (ix *permitIndex) segments(p types.PermitRecord) ([]types.FieldSegment, []types.RestrictionSegment) {
	key := normalizeStatus(p.StatusNumber())
	return ix.fields[key], ix.restr[key]
}

// normalizeStatus produces the canonical form of a status number: digits
// zero-padded to the field's seven columns.
func normalizeStatus(s string) string {
	return padDigits(s, 7)
}

// normalizeAPI canonicalizes an API number to the eight-digit county+unique
// form the export stores. Dashes and spaces are dropped, and a full
// state-prefixed "42xxxxxxxx" loses its prefix.
func normalizeAPI(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
	if len(s) == 10 && strings.HasPrefix(s, "42") && allDigits(s) {
		s = s[2:]
	}
	return padDigits(s, 8)
}

// padDigits left-pads all-digit input with zeros; anything else passes
// through upper-cased so exact matches still work.
func padDigits(s string, width int) string {
	s = strings.TrimSpace(s)
	if !allDigits(s) {
		return strings.ToUpper(s)
	}
	for len(s) < width {
		s = "0" + s
	}
	return s
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
