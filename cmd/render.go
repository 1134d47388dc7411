package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"rrcpermits/internal/types"
)

const (
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorReset = "\033[0m"
)

// lookupAndRender resolves a status or API number and displays the permit,
// diffed against the previous export when one is loaded. Falls back to the
// previous export, then to the database, before giving up.
func lookupAndRender(query string, askSave bool) {
	rec, ok := cur.lookup(query)
	fromPrev := false
	fromDB := false

	if !ok && prev != nil {
		rec, ok = prev.lookup(query)
		fromPrev = ok
	}
	if !ok && db != nil {
		rec, ok = lookupDatabase(query)
		fromDB = ok
	}
	if !ok {
		fmt.Printf("No permit found for: %s\n", query)
		return
	}

	var old types.PermitRecord
	var fields []types.FieldSegment
	var restrictions []types.RestrictionSegment

	switch {
	case fromPrev:
		fmt.Println("[Note] Not in the current export; displaying previous export data")
		fields, restrictions = prev.segments(rec)
	case fromDB:
		fmt.Println("[Note] Not in the loaded exports; displaying database data")
	default:
		fields, restrictions = cur.segments(rec)
		if prev != nil {
			old, _ = prev.lookup(rec.StatusNumber())
		}
	}

	renderPermitDiff(rec, old, fields, restrictions)

	if askSave {
		reader := bufio.NewReader(os.Stdin)
		fmt.Print("Save to watchlist? (y/N): ")
		resp, _ := reader.ReadString('\n')
		resp = strings.ToLower(strings.TrimSpace(resp))
		if resp == "y" || resp == "yes" {
			if err := saveWatch(rec.StatusNumber()); err != nil {
				fmt.Printf("Failed to save watch entry: %v\n", err)
			} else {
				fmt.Println("Watching.")
			}
		}
	}
}

// lookupDatabase asks Oracle for the permit, trying the status number shape
// first and the API number shape second.
func lookupDatabase(query string) (types.PermitRecord, bool) {
	if rec, err := db.PermitByStatusNumber(normalizeStatus(query)); err == nil && rec != nil {
		return rec, true
	}
	if rec, err := db.PermitByAPINumber(normalizeAPI(query)); err == nil && rec != nil {
		return rec, true
	}
	return nil, false
}

// renderPermitDiff prints one permit in a fixed label layout. Fields whose
// value differs from the previous export's are tagged with the old value in
// red. old may be nil (no previous record).
func renderPermitDiff(rec, old types.PermitRecord, fields []types.FieldSegment, restrictions []types.RestrictionSegment) {
	diff := func(key string) string {
		if old[key] != "" && rec[key] != old[key] {
			return fmt.Sprintf(" %s[%s]%s", colorRed, old[key], colorReset)
		}
		return ""
	}
	val := func(key string) string { return rec[key] + diff(key) }

	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("Status Number     : %s\n", rec.StatusNumber())
	fmt.Printf("API Number        : %s\n", val("API_NUMBER"))
	fmt.Printf("Operator          : %s\n", val("DA_OPERATOR_NAME"))
	fmt.Printf("  Operator Number : %s\n", val("DA_OPERATOR_NUMBER_ROOT"))
	fmt.Printf("Lease             : %s\n", val("DA_LEASE_NAME_ROOT"))
	fmt.Printf("Well Number       : %s\n", val("DA_WELL_NUMBER_ROOT"))
	fmt.Printf("County Code       : %s\n", val("DA_COUNTY_CODE_ROOT"))
	fmt.Printf("District          : %s\n", val("DA_DISTRICT_ROOT"))
	fmt.Println()

	fmt.Printf("Application Type  : %s\n", val("DA_TYPE_APPLICATION"))
	fmt.Printf("App Received      : %s\n", val("DA_DATE_APP_RECEIVED"))
	fmt.Printf("Permit Number     : %s\n", val("DA_PERMIT_ROOT"))
	fmt.Printf("Issue Date        : %s\n", val("DA_ISSUE_DATE"))
	fmt.Printf("Status Flag       : %s\n", val("DA_STATUS_OF_APP_FLAG"))
	fmt.Println()

	fmt.Printf("Total Depth       : %s\n", val("DA_PERMIT_TOTAL_DEPTH"))
	fmt.Printf("Well Status       : %s\n", val("DA_WELL_STATUS"))
	fmt.Printf("Directional       : %s\n", val("DA_DIRECTIONAL_WELL_FLAG"))
	fmt.Printf("Horizontal        : %s\n", val("DA_HORIZONTAL_WELL_FLAG"))
	fmt.Println()

	fmt.Printf("Surface Location  : %s\n", val("DA_OLD_SURFACE_LOCATION"))
	fmt.Printf("  Acres           : %s\n", val("DA_SURFACE_ACRES"))
	fmt.Printf("  From City       : %s miles %s of %s\n",
		rec["DA_SURFACE_MILES_FROM_CITY"], rec["DA_SURFACE_DIRECTION_FROM_CITY"], rec["DA_SURFACE_NEAREST_CITY"])

	lat, lon := rec.SurfaceLatLon()
	if lat != "" || lon != "" {
		fmt.Printf("  Lat/Lon         : %s / %s%s%s\n", lat, lon, diff("SURFACE_LATITUDE"), diff("SURFACE_LONGITUDE"))
	}
	if bhLat, bhLon := rec.BottomLatLon(); bhLat != "" || bhLon != "" {
		sameTag := ""
		if bhLat == lat && bhLon == lon {
			sameTag = fmt.Sprintf(" %s[Same as surface]%s", colorGreen, colorReset)
		}
		fmt.Printf("  Bottom Hole     : %s / %s%s%s%s\n", bhLat, bhLon, sameTag, diff("BH_LATITUDE"), diff("BH_LONGITUDE"))
	}
	if rec["DA_RULE_37_CASE_NUMBER"] != "" {
		fmt.Printf("Rule 37 Case      : %s\n", val("DA_RULE_37_CASE_NUMBER"))
	}
	if rec["DA_NEAREST_WELL"] != "" {
		fmt.Printf("Nearest Well      : %s\n", val("DA_NEAREST_WELL"))
	}

	if len(fields) > 0 {
		fmt.Println()
		fmt.Printf("Field Segments    : %d\n", len(fields))
		for _, f := range fields {
			fmt.Printf("  %-8s | well codes %s/%s | completed %s\n",
				f["DA_FIELD_NUMBER"], f["DA_FIELD_APPLICATION_WELL_CODE"],
				f["DA_FIELD_COMPLETION_WELL_CODE"], f["DA_FIELD_COMPLETION_DATE"])
		}
	}
	if len(restrictions) > 0 {
		fmt.Println()
		fmt.Printf("Restrictions      : %d\n", len(restrictions))
		for _, r := range restrictions {
			fmt.Printf("  [%s] %s\n", r[types.RestrictionTypeKey], r.Remark())
		}
	}
	fmt.Println(strings.Repeat("-", 80))
}
