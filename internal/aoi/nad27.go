package aoi

// NAD27 (Clarke 1866) → WGS-84 via the abridged Molodensky transformation
// with the published CONUS-average datum shifts. The RRC's GIS lines are
// NAD27; imagery vendors want WGS-84. Accuracy is on the order of ten metres
// across Texas, which is plenty for sizing an acquisition window around a
// wellhead. Survey-grade work would use a NADCON grid shift instead.

import "math"

const (
	clarke1866A = 6378206.4         // semi-major axis, metres
	clarke1866F = 1.0 / 294.9786982 // flattening

	wgs84A = 6378137.0
	wgs84F = 1.0 / 298.257223563

	// Geocentric NAD27 → WGS-84 shifts for the contiguous US, metres.
	shiftXm = -8.0
	shiftYm = 160.0
	shiftZm = 176.0
)

// nad27ToWGS84 shifts a geographic coordinate in decimal degrees from NAD27
// onto WGS-84.
func nad27ToWGS84(lat, lon float64) (latWGS84, lonWGS84 float64) {
	phi := lat * math.Pi / 180
	lambda := lon * math.Pi / 180

	sinPhi := math.Sin(phi)
	cosPhi := math.Cos(phi)
	sinLambda := math.Sin(lambda)
	cosLambda := math.Cos(lambda)

	e2 := clarke1866F * (2 - clarke1866F) // eccentricity squared, source ellipsoid
	da := wgs84A - clarke1866A
	df := wgs84F - clarke1866F

	w := math.Sqrt(1 - e2*sinPhi*sinPhi)
	rho := clarke1866A * (1 - e2) / (w * w * w) // meridian radius of curvature
	nu := clarke1866A / w                       // prime vertical radius

	dPhi := (-shiftXm*sinPhi*cosLambda - shiftYm*sinPhi*sinLambda + shiftZm*cosPhi +
		(clarke1866A*df+clarke1866F*da)*math.Sin(2*phi)) / rho
	dLambda := (-shiftXm*sinLambda + shiftYm*cosLambda) / (nu * cosPhi)

	return lat + dPhi*180/math.Pi, lon + dLambda*180/math.Pi
}
