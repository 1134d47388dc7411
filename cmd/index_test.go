package main

import (
	"testing"

	"rrcpermits/internal/daf420"
	"rrcpermits/internal/types"
)

func TestNormalizeStatusPadsDigits(t *testing.T) {
	cases := []struct{ in, want string }{
		{"871234", "0871234"},
		{"0871234", "0871234"},
		{" 871234 ", "0871234"},
		{"", ""},
		{"w-1", "W-1"},
	}
	for _, c := range cases {
		if got := normalizeStatus(c.in); got != c.want {
			t.Fatalf("normalizeStatus(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeAPIHandlesPrefixesAndDashes(t *testing.T) {
	cases := []struct{ in, want string }{
		{"35541234", "35541234"},
		{"42-355-41234", "35541234"},
		{"4235541234", "35541234"},
		{"712345", "00712345"},
		{"", ""},
	}
	for _, c := range cases {
		if got := normalizeAPI(c.in); got != c.want {
			t.Fatalf("normalizeAPI(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestBuildIndexLookupAndSegments(t *testing.T) {
	res := &daf420.Result{
		Permits: []types.PermitRecord{
			{"DA_STATUS_NUMBER": "0871234", "API_NUMBER": "35541234", "DA_OPERATOR_NAME": "FAIRWAY RESOURCES"},
			{"DA_STATUS_NUMBER": "0871300"},
		},
		Fields: []types.FieldSegment{
			{types.ParentStatusKey: "0871234", "DA_FIELD_NUMBER": "12345678"},
		},
		Restrictions: []types.RestrictionSegment{
			{types.ParentStatusKey: "0871234", types.RestrictionTypeKey: types.RestrictionFreeForm},
		},
	}
	ix := buildIndex(res)

	p, ok := ix.lookup("871234")
	if !ok {
		t.Fatalf("status lookup failed")
	}
	if p.OperatorName() != "FAIRWAY RESOURCES" {
		t.Fatalf("wrong permit: %v", p)
	}
	if q, ok := ix.lookup("42-355-41234"); !ok || q.StatusNumber() != "0871234" {
		t.Fatalf("api lookup failed: %v %v", q, ok)
	}
	if _, ok := ix.lookup("9999999"); ok {
		t.Fatalf("expected miss for unknown status")
	}

	fields, restrictions := ix.segments(p)
	if len(fields) != 1 || fields[0]["DA_FIELD_NUMBER"] != "12345678" {
		t.Fatalf("unexpected fields: %v", fields)
	}
	if len(restrictions) != 1 {
		t.Fatalf("unexpected restrictions: %v", restrictions)
	}

	other, ok := ix.lookup("0871300")
	if !ok {
		t.Fatalf("second permit missing")
	}
	if f, r := ix.segments(other); len(f) != 0 || len(r) != 0 {
		t.Fatalf("segments leaked across permits: %v %v", f, r)
	}
}
