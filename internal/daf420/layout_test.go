package daf420

import "testing"

func TestRegistryLayoutsFitTheRecord(t *testing.T) {
	for tag, layout := range recordLayouts {
		if len(tag) != 2 {
			t.Fatalf("tag %q is not two bytes", tag)
		}
		if len(layout) == 0 {
			t.Fatalf("tag %q has an empty layout", tag)
		}
		seen := map[string]bool{}
		for _, f := range layout {
			if f.Name == "" {
				t.Fatalf("tag %q has an unnamed field", tag)
			}
			if seen[f.Name] {
				t.Fatalf("tag %q defines %q twice", tag, f.Name)
			}
			seen[f.Name] = true
			if f.Offset < 0 || f.Length <= 0 {
				t.Fatalf("tag %q field %q has bad extent (%d,%d)", tag, f.Name, f.Offset, f.Length)
			}
			if f.Offset+f.Length > RecordLength {
				t.Fatalf("tag %q field %q runs past the record: %d+%d", tag, f.Name, f.Offset, f.Length)
			}
		}
	}
}

// Only the status-root layout may define the permit's identity field; if a
// merge layout ever grew one, a later line could silently rename a permit and
// orphan its children.
func TestOnlyStatusRootCarriesStatusNumber(t *testing.T) {
	for tag, layout := range recordLayouts {
		for _, f := range layout {
			if f.Name == "DA_STATUS_NUMBER" && tag != TagStatusRoot {
				t.Fatalf("tag %q must not define DA_STATUS_NUMBER", tag)
			}
		}
	}
}

func TestImpliedDecimalFieldsExist(t *testing.T) {
	for tag, fields := range impliedDecimals {
		layout, ok := recordLayouts[tag]
		if !ok {
			t.Fatalf("implied decimals reference unknown tag %q", tag)
		}
		for _, imp := range fields {
			found := false
			for _, f := range layout {
				if f.Name == imp.name {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("implied decimal %q not in layout %q", imp.name, tag)
			}
			if imp.digits <= 0 {
				t.Fatalf("implied decimal %q has digits %d", imp.name, imp.digits)
			}
		}
	}
}

func TestLayoutForUnknownTag(t *testing.T) {
	if _, ok := LayoutFor("99"); ok {
		t.Fatalf("tag 99 should not be registered")
	}
	if _, ok := LayoutFor(TagStatusRoot); !ok {
		t.Fatalf("status root layout missing")
	}
}

func TestPermitColumnsCoverMasterAndGIS(t *testing.T) {
	cols := PermitColumns()
	want := []string{"DA_STATUS_NUMBER", "DA_PERMIT_NUMBER", "API_NUMBER",
		"SURFACE_LATITUDE", "SURFACE_LONGITUDE", "BH_LATITUDE", "BH_LONGITUDE"}
	have := map[string]bool{}
	for _, c := range cols {
		if have[c.Name] {
			t.Fatalf("duplicate permit column %q", c.Name)
		}
		have[c.Name] = true
		if c.Length <= 0 {
			t.Fatalf("column %q has length %d", c.Name, c.Length)
		}
	}
	for _, w := range want {
		if !have[w] {
			t.Fatalf("permit columns missing %q", w)
		}
	}
}

func TestChildColumnsCarryParentStamp(t *testing.T) {
	fieldHas := map[string]bool{}
	for _, c := range FieldColumns() {
		fieldHas[c.Name] = true
	}
	if !fieldHas["PARENT_STATUS_NUMBER"] || !fieldHas["DA_FIELD_NUMBER"] {
		t.Fatalf("field columns incomplete: %+v", FieldColumns())
	}

	restrHas := map[string]bool{}
	for _, c := range RestrictionColumns() {
		restrHas[c.Name] = true
	}
	for _, w := range []string{"PARENT_STATUS_NUMBER", "RESTRICTION_TYPE", "DA_CAN_RESTR_REMARK", "DA_FREE_RESTR_REMARK"} {
		if !restrHas[w] {
			t.Fatalf("restriction columns missing %q", w)
		}
	}
}
