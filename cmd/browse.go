package main

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"rrcpermits/internal/types"
)

// browseLoop is the interactive front end: status or API lookups, county and
// operator searches, proximity search, and the watchlist.
func browseLoop() {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("Enter status/API number, county=<code>, op=<name>, near=<lat,lon,miles>, 'new', or 'watchlist' (blank to quit): ")
		input, _ := reader.ReadString('\n')
		q := strings.TrimSpace(input)
		if q == "" {
			break
		}

		switch {
		case strings.EqualFold(q, "watchlist"):
			showWatchlist()
		case strings.EqualFold(q, "new"):
			showNewPermits()
		case strings.HasPrefix(q, "county=") || strings.HasPrefix(q, "county:"):
			handleCountyQuery(strings.TrimPrefix(strings.TrimPrefix(q, "county="), "county:"))
		case strings.HasPrefix(q, "op=") || strings.HasPrefix(q, "op:"):
			handleOperatorQuery(strings.TrimPrefix(strings.TrimPrefix(q, "op="), "op:"))
		case strings.HasPrefix(q, "near=") || strings.HasPrefix(q, "near:"):
			handleNearQuery(strings.TrimPrefix(strings.TrimPrefix(q, "near="), "near:"))
		default:
			lookupAndRender(q, true)
		}
	}
}

// handleCountyQuery lists the current export's permits for one county code,
// falling back to the database when the export has none.
func handleCountyQuery(code string) {
	start := time.Now()
	code = strings.TrimSpace(code)
	if code == "" {
		return
	}

	var matches []types.PermitRecord
	for _, p := range cur.permits {
		if p.CountyCode() == code || p["DA_COUNTY_CODE_ROOT"] == code {
			matches = append(matches, p)
		}
	}
	if len(matches) == 0 && db != nil {
		if recs, err := db.PermitsInCounty(code); err == nil && len(recs) > 0 {
			fmt.Println("[Note] No matches in the current export; listing the latest database load")
			matches = recs
		}
	}

	fmt.Printf("\nFound %d permits in county %s (%v)\n", len(matches), code, time.Since(start).Truncate(time.Millisecond))
	listAndSelect(matches)
}

// handleOperatorQuery lists permits whose operator name contains the given
// text, falling back to the database when the export has none.
func handleOperatorQuery(name string) {
	start := time.Now()
	needle := strings.ToUpper(strings.TrimSpace(name))
	if needle == "" {
		return
	}

	var matches []types.PermitRecord
	for _, p := range cur.permits {
		if strings.Contains(strings.ToUpper(p.OperatorName()), needle) {
			matches = append(matches, p)
		}
	}
	if len(matches) == 0 && db != nil {
		if recs, err := db.PermitsByOperator(needle); err == nil && len(recs) > 0 {
			fmt.Println("[Note] No matches in the current export; listing the latest database load")
			matches = recs
		}
	}

	fmt.Printf("\nFound %d permits for operator %q (%v)\n", len(matches), needle, time.Since(start).Truncate(time.Millisecond))
	listAndSelect(matches)
}

// handleNearQuery lists permits whose surface hole is within the given radius
// of a point, nearest first. Input shape: lat,lon,miles.
func handleNearQuery(arg string) {
	parts := strings.Split(arg, ",")
	if len(parts) != 3 {
		fmt.Println("near= wants lat,lon,miles, e.g. near=32.75,-97.33,10")
		return
	}
	refLat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	refLon, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	radius, err3 := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err1 != nil || err2 != nil || err3 != nil || radius <= 0 {
		fmt.Println("near= wants lat,lon,miles, e.g. near=32.75,-97.33,10")
		return
	}

	start := time.Now()
	type hit struct {
		types.PermitRecord
		distance float64
	}
	var hits []hit
	for _, p := range cur.permits {
		latStr, lonStr := p.SurfaceLatLon()
		lat, lon, ok := parseLatLon(latStr, lonStr)
		if !ok {
			continue
		}
		if d := distanceMiles(refLat, refLon, lat, lon); d <= radius {
			hits = append(hits, hit{p, d})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].distance < hits[j].distance })

	fmt.Printf("\nFound %d permits within %.1f miles (%v)\n", len(hits), radius, time.Since(start).Truncate(time.Millisecond))
	if len(hits) == 0 {
		return
	}
	var keys, lines []string
	for _, h := range hits {
		line := fmt.Sprintf("%-7s | %-32s | %-32s | %5.1f mi",
			h.StatusNumber(), h.OperatorName(), h.LeaseName(), h.distance)
		keys = append(keys, h.StatusNumber())
		lines = append(lines, line)
		fmt.Println(line)
	}
	fmt.Println("Use ↑/↓ and Enter for details, Esc to exit.")
	interactiveSelect(keys, lines, true)
}

// showNewPermits lists permits present in the current export but absent from
// the previous one.
func showNewPermits() {
	if prev == nil {
		fmt.Println("No previous export loaded; run with -prev to diff.")
		return
	}
	start := time.Now()
	var matches []types.PermitRecord
	for _, p := range cur.permits {
		if _, ok := prev.lookup(p.StatusNumber()); !ok {
			matches = append(matches, p)
		}
	}
	fmt.Printf("\nFound %d permits new since the previous export (%v)\n", len(matches), time.Since(start).Truncate(time.Millisecond))
	listAndSelect(matches)
}

// listAndSelect prints one line per permit and turns the list over to the
// arrow-key selector.
func listAndSelect(matches []types.PermitRecord) {
	if len(matches) == 0 {
		return
	}
	var keys, lines []string
	for _, p := range matches {
		line := fmt.Sprintf("%-7s | %-32s | %-32s | %s",
			p.StatusNumber(), p.OperatorName(), p.LeaseName(), p["DA_ISSUE_DATE"])
		keys = append(keys, p.StatusNumber())
		lines = append(lines, line)
		fmt.Println(line)
	}
	fmt.Println("Use ↑/↓ and Enter for details, Esc to exit.")
	interactiveSelect(keys, lines, true)
}

func parseLatLon(latStr, lonStr string) (float64, float64, bool) {
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	lon, err2 := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	return lat, lon, err1 == nil && err2 == nil
}

func distanceMiles(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusMiles = 3958.8
	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}
