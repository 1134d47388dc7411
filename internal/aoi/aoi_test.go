package aoi

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	shp "github.com/jonas-p/go-shp"

	"rrcpermits/internal/types"
)

func TestNad27ShiftIsSmallAndWestward(t *testing.T) {
	// Fort Worth-ish. The CONUS shift moves points a few tens of metres:
	// slightly north, noticeably west.
	lat, lon := nad27ToWGS84(32.75, -97.33)

	dLat := lat - 32.75
	dLon := lon - (-97.33)
	if dLat < 5e-5 || dLat > 5e-4 {
		t.Fatalf("latitude shift out of range: %v", dLat)
	}
	if dLon > -5e-5 || dLon < -1e-3 {
		t.Fatalf("longitude shift out of range: %v", dLon)
	}
}

func TestNad27ShiftDeterministic(t *testing.T) {
	lat1, lon1 := nad27ToWGS84(31.0, -101.5)
	lat2, lon2 := nad27ToWGS84(31.0, -101.5)
	if lat1 != lat2 || lon1 != lon2 {
		t.Fatalf("transform not deterministic: %v,%v vs %v,%v", lat1, lon1, lat2, lon2)
	}
}

func TestBoundingBoxGeometry(t *testing.T) {
	minLat, maxLat, minLon, maxLon, ok := boundingBox(32.0, -97.0, 250)
	if !ok {
		t.Fatalf("bounding box rejected a Texas point")
	}

	wantLat := 500.0 / FeetPerDegreeLat
	if d := (maxLat - minLat) - wantLat; math.Abs(d) > 1e-12 {
		t.Fatalf("latitude span off by %v", d)
	}
	// Longitude degrees are shorter at 32N, so the box is wider in degrees.
	if (maxLon - minLon) <= (maxLat - minLat) {
		t.Fatalf("longitude span should exceed latitude span: %v vs %v", maxLon-minLon, maxLat-minLat)
	}
	if mid := (minLat + maxLat) / 2; math.Abs(mid-32.0) > 1e-9 {
		t.Fatalf("box not centered on latitude: %v", mid)
	}
	if mid := (minLon + maxLon) / 2; math.Abs(mid-(-97.0)) > 1e-9 {
		t.Fatalf("box not centered on longitude: %v", mid)
	}
}

func TestBuildRowsSkipsPermitsWithoutCoordinates(t *testing.T) {
	permits := []types.PermitRecord{
		{
			"DA_STATUS_NUMBER":   "0871234",
			"API_NUMBER":         "42329123",
			"DA_OPERATOR_NAME":   "ALPHA OPERATING",
			"DA_LEASE_NAME_ROOT": "SMITH RANCH",
			"SURFACE_LATITUDE":   "32.1234567890",
			"SURFACE_LONGITUDE":  "-097.12345678",
		},
		{"DA_STATUS_NUMBER": "0871235"}, // no GIS line at all
		{"DA_STATUS_NUMBER": "0871236", "SURFACE_LATITUDE": "32.1", "SURFACE_LONGITUDE": ""},
		{"DA_STATUS_NUMBER": "0871237", "SURFACE_LATITUDE": "UNKNOWN", "SURFACE_LONGITUDE": "-097.1"},
	}

	rows, skipped := BuildRows(permits, DefaultBoxSideFt)
	if len(rows) != 1 || skipped != 3 {
		t.Fatalf("expected 1 row and 3 skipped, got %d and %d", len(rows), skipped)
	}

	r := rows[0]
	if r.StatusNumber != "0871234" || r.APINumber != "42329123" || r.OperatorName != "ALPHA OPERATING" || r.LeaseName != "SMITH RANCH" {
		t.Fatalf("attribution wrong: %+v", r)
	}
	// Center is the datum-shifted wellhead, so it lands near the NAD27 input.
	if math.Abs(r.CenterLat-32.1234567890) > 0.01 || math.Abs(r.CenterLon-(-97.12345678)) > 0.01 {
		t.Fatalf("center far from wellhead: %v %v", r.CenterLat, r.CenterLon)
	}
	if r.MinLat >= r.CenterLat || r.MaxLat <= r.CenterLat || r.MinLon >= r.CenterLon || r.MaxLon <= r.CenterLon {
		t.Fatalf("center outside box: %+v", r)
	}
}

func TestWriteCSVColumns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "well_aoi.csv")
	rows := []Row{{
		APINumber:    "42329123",
		StatusNumber: "0871234",
		OperatorName: "ALPHA OPERATING",
		LeaseName:    "SMITH RANCH",
		CenterLat:    32.76009,
		CenterLon:    -97.330011,
		MinLat:       32.759,
		MaxLat:       32.761,
		MinLon:       -97.331,
		MaxLon:       -97.329,
	}}
	if err := WriteCSV(path, rows); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	want := "API_NUMBER,DA_STATUS_NUMBER,OPERATOR_NAME,LEASE_NAME," +
		"center_lat_wgs84,center_lon_wgs84,min_lat_wgs84,max_lat_wgs84,min_lon_wgs84,max_lon_wgs84\n" +
		"42329123,0871234,ALPHA OPERATING,SMITH RANCH," +
		"32.760090,-97.330011,32.759,32.761,-97.331,-97.329\n"
	if string(data) != want {
		t.Fatalf("unexpected csv:\n%q\nwant:\n%q", string(data), want)
	}
}

func TestWriteShapefileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "well_aoi.shp")
	rows := []Row{
		{
			APINumber: "42329123", StatusNumber: "0871234",
			OperatorName: "ALPHA OPERATING", LeaseName: "SMITH RANCH",
			CenterLat: 32.76, CenterLon: -97.33,
			MinLat: 32.759, MaxLat: 32.761, MinLon: -97.331, MaxLon: -97.329,
		},
		{
			APINumber: "42329456", StatusNumber: "0879999",
			OperatorName: "BETA ENERGY", LeaseName: "JONES UNIT",
			CenterLat: 31.5, CenterLon: -101.2,
			MinLat: 31.499, MaxLat: 31.501, MinLon: -101.201, MaxLon: -101.199,
		},
	}
	if err := WriteShapefile(path, rows); err != nil {
		t.Fatalf("write shapefile: %v", err)
	}

	r, err := shp.Open(path)
	if err != nil {
		t.Fatalf("open shapefile: %v", err)
	}
	defer r.Close()

	fields := r.Fields()
	operatorCol := -1
	for i, f := range fields {
		if strings.HasPrefix(f.String(), "OPERATOR") {
			operatorCol = i
		}
	}
	if operatorCol < 0 {
		t.Fatalf("OPERATOR column missing: %+v", fields)
	}

	count := 0
	for r.Next() {
		idx, shape := r.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok {
			t.Fatalf("shape %d is not a polygon", idx)
		}
		if len(poly.Points) != 5 {
			t.Fatalf("ring should close with 5 points, got %d", len(poly.Points))
		}
		if poly.Points[0] != poly.Points[len(poly.Points)-1] {
			t.Fatalf("ring not closed: %+v", poly.Points)
		}
		want := rows[idx].OperatorName
		if got := strings.TrimSpace(r.ReadAttribute(idx, operatorCol)); got != want {
			t.Fatalf("attribute mismatch at %d: %q want %q", idx, got, want)
		}
		count++
	}
	if count != len(rows) {
		t.Fatalf("expected %d shapes, got %d", len(rows), count)
	}
}
