package types

// The DAF420 export is a hierarchy: one status-root line per drilling permit,
// followed by master/GIS lines that fold into it and by field/restriction
// lines that become children of it. All three entity kinds are map-backed so
// downstream output naturally covers the union of whatever columns actually
// showed up in a given export, not a schema we guessed ahead of time.

// PermitRecord is one assembled drilling-permit application: the status-root
// fields plus everything merged in from the permit-master and GIS lines.
type PermitRecord map[string]string

// FieldSegment is one field (reservoir) a permit application names.
type FieldSegment map[string]string

// RestrictionSegment is one canned or free-form restriction attached to a
// permit.
type RestrictionSegment map[string]string

// Keys the assembler stamps onto child entities. These are not part of any
// record layout; they exist so a child row can be traced back to its parent
// after the collections are split into separate tables.
const (
	ParentStatusKey    = "PARENT_STATUS_NUMBER"
	RestrictionTypeKey = "RESTRICTION_TYPE"

	RestrictionCanned   = "CANNED"
	RestrictionFreeForm = "FREE_FORM"
)

// StatusNumber is the permit's identity within an export.
func (p PermitRecord) StatusNumber() string { return p["DA_STATUS_NUMBER"] }

// APINumber may be blank on older filings.
func (p PermitRecord) APINumber() string { return p["API_NUMBER"] }

func (p PermitRecord) OperatorName() string { return p["DA_OPERATOR_NAME"] }

func (p PermitRecord) LeaseName() string { return p["DA_LEASE_NAME_ROOT"] }

// CountyCode prefers the permit-master county over the status-root county;
// the master line is filled in on issued permits and is the better value.
func (p PermitRecord) CountyCode() string {
	if c := p["DA_PERMIT_COUNTY_CODE"]; c != "" {
		return c
	}
	return p["DA_COUNTY_CODE_ROOT"]
}

// SurfaceLatLon returns the surface-hole GIS coordinates as decoded strings,
// empty when the export carried no GIS line for this permit.
func (p PermitRecord) SurfaceLatLon() (lat, lon string) {
	return p["SURFACE_LATITUDE"], p["SURFACE_LONGITUDE"]
}

// BottomLatLon returns the bottom-hole GIS coordinates.
func (p PermitRecord) BottomLatLon() (lat, lon string) {
	return p["BH_LATITUDE"], p["BH_LONGITUDE"]
}

// ParentStatus reports which permit a child entity belongs to.
func (f FieldSegment) ParentStatus() string { return f[ParentStatusKey] }

func (r RestrictionSegment) ParentStatus() string { return r[ParentStatusKey] }

// Remark returns the restriction text, wherever the layout put it.
func (r RestrictionSegment) Remark() string {
	if v := r["DA_CAN_RESTR_REMARK"]; v != "" {
		return v
	}
	return r["DA_FREE_RESTR_REMARK"]
}
