package daf420

import (
	"strings"

	"rrcpermits/internal/types"
)

// Result is everything one pass over an export produced. Collection order is
// file order.
type Result struct {
	Permits      []types.PermitRecord
	Fields       []types.FieldSegment
	Restrictions []types.RestrictionSegment

	// Diagnostics. LinesRead counts every physical line, blanks included.
	// TagCounts counts every non-blank line by its two-byte tag, unknown
	// and orphaned tags included.
	LinesRead int
	TagCounts map[string]int
}

// Assembler folds a stream of DAF420 lines into permits and their children.
// Lines must arrive in file order: the format is stateful, and a child or
// merge line belongs to whichever status-root line most recently opened. An
// Assembler owns all of its state and is not safe for concurrent use.
type Assembler struct {
	res      Result
	current  types.PermitRecord
	identity string // open parent's status number, stamped onto its children
	done     bool
}

func NewAssembler() *Assembler {
	return &Assembler{res: Result{TagCounts: make(map[string]int)}}
}

// Line consumes the next physical line, without its newline. Whitespace-only
// lines are counted and skipped. Child and merge lines that arrive before any
// status-root, and lines with unregistered tags, are dropped after counting.
func (a *Assembler) Line(raw string) {
	a.res.LinesRead++
	if strings.TrimSpace(raw) == "" {
		return
	}
	line := pad(raw)
	tag := line[:2]
	a.res.TagCounts[tag]++

	if tag == TagStatusRoot {
		a.finalize()
		a.current = types.PermitRecord(DecodeLine(line, recordLayouts[TagStatusRoot]))
		a.identity = a.current.StatusNumber()
		return
	}
	if a.current == nil {
		return
	}

	switch tag {
	case TagPermitMaster, TagGISSurface, TagGISBottomHole:
		rec := DecodeLine(line, recordLayouts[tag])
		applyImplied(rec, tag)
		for k, v := range rec {
			a.current[k] = v
		}
	case TagFieldSegment:
		rec := DecodeLine(line, recordLayouts[tag])
		rec[types.ParentStatusKey] = a.identity
		a.res.Fields = append(a.res.Fields, types.FieldSegment(rec))
	case TagCannedRestriction, TagFreeFormRestriction:
		rec := DecodeLine(line, recordLayouts[tag])
		rec[types.ParentStatusKey] = a.identity
		if tag == TagCannedRestriction {
			rec[types.RestrictionTypeKey] = types.RestrictionCanned
		} else {
			rec[types.RestrictionTypeKey] = types.RestrictionFreeForm
		}
		a.res.Restrictions = append(a.res.Restrictions, types.RestrictionSegment(rec))
	}
}

// Finish closes the still-open permit, if any, and returns everything
// assembled. Calling it again returns the same Result without finalizing
// anything twice. A run abandoned before Finish never finalizes its open
// parent; half-read permits do not leak into the output.
func (a *Assembler) Finish() *Result {
	if !a.done {
		a.finalize()
		a.done = true
	}
	return &a.res
}

func (a *Assembler) finalize() {
	if a.current != nil {
		a.res.Permits = append(a.res.Permits, a.current)
		a.current = nil
		a.identity = ""
	}
}
