package transform

import "math"

// WGS-84 ellipsoid.
const (
	wgs84A  = 6378137.0
	wgs84F  = 1.0 / 298.257223563
	wgs84E2 = wgs84F * (2 - wgs84F)
)

const (
	deg2rad = math.Pi / 180
	rad2deg = 180 / math.Pi
)

// Observer is a ground station. Its ECEF position and the trigonometry of its
// latitude and longitude are computed once, since every elevation evaluation
// reuses them.
type Observer struct {
	LatDeg, LonDeg, AltM float64
	ECEF                 PositionECEF

	sinLat, cosLat float64
	sinLon, cosLon float64
}

// NewObserver builds an observer from geodetic latitude and longitude in
// degrees and altitude in meters above the WGS-84 ellipsoid.
func NewObserver(latDeg, lonDeg, altM float64) Observer {
	lat, lon := latDeg*deg2rad, lonDeg*deg2rad
	o := Observer{
		LatDeg: latDeg,
		LonDeg: lonDeg,
		AltM:   altM,
		sinLat: math.Sin(lat),
		cosLat: math.Cos(lat),
		sinLon: math.Sin(lon),
		cosLon: math.Cos(lon),
	}

	// prime vertical radius of curvature
	n := wgs84A / math.Sqrt(1-wgs84E2*o.sinLat*o.sinLat)
	o.ECEF = PositionECEF{
		X: (n + altM) * o.cosLat * o.cosLon,
		Y: (n + altM) * o.cosLat * o.sinLon,
		Z: (n*(1-wgs84E2) + altM) * o.sinLat,
	}
	return o
}

// Geodetic is a latitude/longitude in degrees and altitude in meters.
type Geodetic struct {
	LatDeg, LonDeg, AltM float64
}

// ToGeodetic converts an ECEF position to geodetic coordinates with Bowring's
// iteration. Five rounds are plenty for anything in Earth orbit.
func ToGeodetic(p PositionECEF) Geodetic {
	lon := math.Atan2(p.Y, p.X)
	rho := math.Hypot(p.X, p.Y)

	lat := math.Atan2(p.Z, rho*(1-wgs84E2))
	var n float64
	for range 5 {
		s := math.Sin(lat)
		n = wgs84A / math.Sqrt(1-wgs84E2*s*s)
		lat = math.Atan2(p.Z+wgs84E2*n*s, rho)
	}

	s, c := math.Sin(lat), math.Cos(lat)
	n = wgs84A / math.Sqrt(1-wgs84E2*s*s)

	var alt float64
	if math.Abs(c) > 1e-10 {
		alt = rho/c - n
	} else {
		alt = math.Abs(p.Z)/math.Abs(s) - n*(1-wgs84E2)
	}

	return Geodetic{LatDeg: lat * rad2deg, LonDeg: lon * rad2deg, AltM: alt}
}
