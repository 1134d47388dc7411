package aoi

import (
	"fmt"

	shp "github.com/jonas-p/go-shp"
)

// WriteShapefile writes each AOI as a closed polygon with enough attribution
// to pick the permit back out in a GIS viewer. The .shx and .dbf siblings
// land next to path. DBF caps column names at ten characters.
func WriteShapefile(path string, rows []Row) error {
	w, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		return fmt.Errorf("create shapefile %s: %w", path, err)
	}
	defer w.Close()

	w.SetFields([]shp.Field{
		shp.StringField("API_NO", 10),
		shp.StringField("STATUS_NO", 10),
		shp.StringField("OPERATOR", 32),
		shp.StringField("LEASE", 32),
	})

	for i, r := range rows {
		w.Write(boxPolygon(r))
		for col, val := range []string{r.APINumber, r.StatusNumber, r.OperatorName, r.LeaseName} {
			if err := w.WriteAttribute(i, col, val); err != nil {
				return fmt.Errorf("shapefile attribute row %d col %d: %w", i, col, err)
			}
		}
	}
	return nil
}

// boxPolygon rings the bounding box clockwise, first point repeated to close
// the ring. X is longitude, Y latitude.
func boxPolygon(r Row) *shp.Polygon {
	ring := []shp.Point{
		{X: r.MinLon, Y: r.MaxLat},
		{X: r.MaxLon, Y: r.MaxLat},
		{X: r.MaxLon, Y: r.MinLat},
		{X: r.MinLon, Y: r.MinLat},
		{X: r.MinLon, Y: r.MaxLat},
	}
	return &shp.Polygon{
		Box:       shp.Box{MinX: r.MinLon, MinY: r.MinLat, MaxX: r.MaxLon, MaxY: r.MaxLat},
		NumParts:  1,
		NumPoints: int32(len(ring)),
		Parts:     []int32{0},
		Points:    ring,
	}
}
