// Package aoi turns permitted surface locations into square areas of
// interest sized for tasking an imagery order. Coordinates come off the
// export's GIS lines in NAD27 and go out in WGS-84.
package aoi

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"

	"rrcpermits/internal/types"
)

// FeetPerDegreeLat approximates one degree of latitude. A degree of
// longitude tightens by cos(lat) from the same base.
const FeetPerDegreeLat = 364000.0

// DefaultBoxSideFt is the side of the square drawn around a wellhead.
const DefaultBoxSideFt = 500.0

// Row is one area of interest and the permit attribution that identifies it
// downstream.
type Row struct {
	APINumber    string
	StatusNumber string
	OperatorName string
	LeaseName    string

	// WGS-84 decimal degrees.
	CenterLat float64
	CenterLon float64
	MinLat    float64
	MaxLat    float64
	MinLon    float64
	MaxLon    float64
}

// BuildRows computes one AOI per permit that carries usable surface
// coordinates. Permits with no GIS line or with unparseable coordinate
// values are skipped and tallied, never fatal; old filings simply predate the
// GIS segments.
func BuildRows(permits []types.PermitRecord, boxSideFt float64) (rows []Row, skipped int) {
	half := boxSideFt / 2
	for _, p := range permits {
		latRaw, lonRaw := p.SurfaceLatLon()
		if latRaw == "" || lonRaw == "" {
			skipped++
			continue
		}
		lat27, err := strconv.ParseFloat(latRaw, 64)
		if err != nil {
			skipped++
			continue
		}
		lon27, err := strconv.ParseFloat(lonRaw, 64)
		if err != nil {
			skipped++
			continue
		}

		lat, lon := nad27ToWGS84(lat27, lon27)
		minLat, maxLat, minLon, maxLon, ok := boundingBox(lat, lon, half)
		if !ok {
			skipped++
			continue
		}

		rows = append(rows, Row{
			APINumber:    p.APINumber(),
			StatusNumber: p.StatusNumber(),
			OperatorName: p.OperatorName(),
			LeaseName:    p.LeaseName(),
			CenterLat:    lat,
			CenterLon:    lon,
			MinLat:       minLat,
			MaxLat:       maxLat,
			MinLon:       minLon,
			MaxLon:       maxLon,
		})
	}
	return rows, skipped
}

// boundingBox squares off halfWidthFt in each direction from the center.
func boundingBox(lat, lon, halfWidthFt float64) (minLat, maxLat, minLon, maxLon float64, ok bool) {
	latOff := halfWidthFt / FeetPerDegreeLat
	feetPerDegreeLon := FeetPerDegreeLat * math.Cos(lat*math.Pi/180)
	if feetPerDegreeLon == 0 {
		return 0, 0, 0, 0, false
	}
	lonOff := halfWidthFt / feetPerDegreeLon
	return lat - latOff, lat + latOff, lon - lonOff, lon + lonOff, true
}

// WriteCSV writes rows with the column set the imagery-tasking side expects.
// Centers round to six decimals (about a tenth of a metre); the box corners
// keep full precision.
func WriteCSV(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	w.Write([]string{
		"API_NUMBER", "DA_STATUS_NUMBER", "OPERATOR_NAME", "LEASE_NAME",
		"center_lat_wgs84", "center_lon_wgs84",
		"min_lat_wgs84", "max_lat_wgs84", "min_lon_wgs84", "max_lon_wgs84",
	})
	for _, r := range rows {
		w.Write([]string{
			r.APINumber, r.StatusNumber, r.OperatorName, r.LeaseName,
			fmt.Sprintf("%.6f", r.CenterLat), fmt.Sprintf("%.6f", r.CenterLon),
			formatDegrees(r.MinLat), formatDegrees(r.MaxLat),
			formatDegrees(r.MinLon), formatDegrees(r.MaxLon),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
