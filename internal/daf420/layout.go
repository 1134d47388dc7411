package daf420

// Record layouts from the RRC's Drilling Permit Master manual (DAF420 tape
// format). Positions are 0-indexed; the manual numbers them from 1.

// Record type tags, first two bytes of every line.
const (
	TagStatusRoot          = "01" // DA-STATUS-ROOT, opens a permit
	TagPermitMaster        = "02" // DA-PERMIT-MASTER, folds into the permit
	TagFieldSegment        = "03" // DA-FIELD-SEGMENT, child
	TagCannedRestriction   = "06" // DA-CAN-RESTR-SEGMENT, child
	TagFreeFormRestriction = "08" // DA-FREE-RESTR-SEGMENT, child
	TagGISSurface          = "14" // GIS surface location, folds into the permit
	TagGISBottomHole       = "15" // GIS bottom hole location, folds into the permit
)

// FieldSpec names one fixed-width field within a record type.
type FieldSpec struct {
	Name   string
	Offset int
	Length int
}

// RecordLayout is the ordered field list for one record type.
type RecordLayout []FieldSpec

var recordLayouts = map[string]RecordLayout{
	TagStatusRoot: {
		{"RRC_TAPE_RECORD_ID", 0, 2},
		{"DA_STATUS_NUMBER", 2, 7},
		{"DA_STATUS_SEQUENCE_NUMBER", 9, 2},
		{"DA_COUNTY_CODE_ROOT", 11, 3},
		{"DA_LEASE_NAME_ROOT", 14, 32},
		{"DA_DISTRICT_ROOT", 46, 2},
		{"DA_OPERATOR_NUMBER_ROOT", 48, 6},
		{"DA_DATE_APP_RECEIVED", 58, 8},
		{"DA_OPERATOR_NAME", 66, 32},
		{"DA_STATUS_OF_APP_FLAG", 100, 1},
		{"DA_PERMIT_ROOT", 112, 7},
		{"DA_ISSUE_DATE", 119, 8},
		{"DA_WELL_NUMBER_ROOT", 156, 6},
		{"DA_ECAP_FILING_FLAG", 182, 1},
	},
	TagPermitMaster: {
		{"DA_PERMIT_NUMBER", 4, 7},
		{"DA_PERMIT_SEQUENCE_NUMBER", 11, 2},
		{"DA_PERMIT_COUNTY_CODE", 13, 3},
		{"DA_PERMIT_LEASE_NAME", 16, 32},
		{"DA_PERMIT_DISTRICT", 48, 2},
		{"DA_PERMIT_WELL_NUMBER", 50, 6},
		{"DA_PERMIT_TOTAL_DEPTH", 56, 5},
		{"DA_PERMIT_OPERATOR_NUMBER", 61, 6},
		{"DA_TYPE_APPLICATION", 67, 2},
		{"DA_RECEIVED_DATE", 123, 8},
		{"DA_PERMIT_ISSUED_DATE", 131, 8},
		{"DA_WELL_STATUS", 171, 1},
		{"DA_RULE_37_CASE_NUMBER", 230, 7},
		{"DA_OLD_SURFACE_LOCATION", 245, 52},
		{"DA_SURFACE_ACRES", 327, 8},
		{"DA_SURFACE_MILES_FROM_CITY", 335, 6},
		{"DA_SURFACE_DIRECTION_FROM_CITY", 341, 6},
		{"DA_SURFACE_NEAREST_CITY", 347, 13},
		{"DA_NEAREST_WELL", 444, 28},
		{"DA_DIRECTIONAL_WELL_FLAG", 483, 1},
		{"DA_HORIZONTAL_WELL_FLAG", 495, 1},
		{"API_NUMBER", 504, 8},
	},
	TagFieldSegment: {
		{"DA_FIELD_NUMBER", 2, 8},
		{"DA_FIELD_APPLICATION_WELL_CODE", 10, 1},
		{"DA_FIELD_COMPLETION_WELL_CODE", 11, 1},
		{"DA_FIELD_COMPLETION_DATE", 22, 8},
	},
	TagCannedRestriction: {
		{"DA_CAN_RESTR_KEY", 2, 2},
		{"DA_CAN_RESTR_TYPE", 4, 2},
		{"DA_CAN_RESTR_REMARK", 6, 35},
		{"DA_CAN_RESTR_FLAG", 76, 1},
	},
	TagFreeFormRestriction: {
		{"DA_FREE_RESTR_KEY", 2, 2},
		{"DA_FREE_RESTR_REMARK", 6, 70},
		{"DA_FREE_RESTR_FLAG", 76, 1},
	},
	TagGISSurface: {
		{"SURFACE_LONGITUDE", 3, 12},
		{"SURFACE_LATITUDE", 15, 12},
	},
	TagGISBottomHole: {
		{"BH_LONGITUDE", 3, 12},
		{"BH_LATITUDE", 15, 12},
	},
}

// impliedField marks a field whose digits carry an implied decimal point.
// digits is the integer part length from the manual's PIC clause, e.g.
// DA_SURFACE_ACRES is PIC 9(06)V9(2).
type impliedField struct {
	name   string
	digits int
}

var impliedDecimals = map[string][]impliedField{
	TagPermitMaster: {
		{"DA_SURFACE_ACRES", 6},
		{"DA_SURFACE_MILES_FROM_CITY", 4},
	},
	TagGISSurface: {
		{"SURFACE_LATITUDE", 2},
		{"SURFACE_LONGITUDE", 3},
	},
	TagGISBottomHole: {
		{"BH_LATITUDE", 2},
		{"BH_LONGITUDE", 3},
	},
}

// LayoutFor returns the layout registered for a record type tag.
func LayoutFor(tag string) (RecordLayout, bool) {
	layout, ok := recordLayouts[tag]
	return layout, ok
}

// PermitColumns lists every column an assembled permit can carry, in layout
// order: status-root fields, then permit-master fields, then the GIS
// coordinates. The Oracle sink derives its DDL and insert lists from this.
func PermitColumns() []FieldSpec {
	cols := make([]FieldSpec, 0, len(recordLayouts[TagStatusRoot])+len(recordLayouts[TagPermitMaster])+4)
	cols = append(cols, recordLayouts[TagStatusRoot]...)
	cols = append(cols, recordLayouts[TagPermitMaster]...)
	// Normalized coordinates gain a sign and a decimal point over the raw
	// 12-byte field, hence the wider length.
	cols = append(cols,
		FieldSpec{Name: "SURFACE_LATITUDE", Length: 14},
		FieldSpec{Name: "SURFACE_LONGITUDE", Length: 14},
		FieldSpec{Name: "BH_LATITUDE", Length: 14},
		FieldSpec{Name: "BH_LONGITUDE", Length: 14},
	)
	return cols
}

// FieldColumns lists the columns of a field-segment child row.
func FieldColumns() []FieldSpec {
	cols := append([]FieldSpec{}, recordLayouts[TagFieldSegment]...)
	return append(cols, FieldSpec{Name: "PARENT_STATUS_NUMBER", Length: 7})
}

// RestrictionColumns lists the columns of a restriction child row, covering
// both the canned and free-form shapes.
func RestrictionColumns() []FieldSpec {
	cols := append([]FieldSpec{}, recordLayouts[TagCannedRestriction]...)
	cols = append(cols, recordLayouts[TagFreeFormRestriction]...)
	return append(cols,
		FieldSpec{Name: "PARENT_STATUS_NUMBER", Length: 7},
		FieldSpec{Name: "RESTRICTION_TYPE", Length: 9},
	)
}
