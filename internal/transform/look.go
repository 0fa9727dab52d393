package transform

import "math"

// LookAngles is where an observer has to point to see a satellite.
type LookAngles struct {
	AzimuthDeg   float64 // from North, clockwise, [0, 360)
	ElevationDeg float64 // above the local horizon, [-90, 90]
	RangeKm      float64
}

// Look returns the look angles from o to a satellite at sat (ECEF meters),
// rotating the range vector into the topocentric SEZ frame (Vallado 4.4).
func (o Observer) Look(sat PositionECEF) LookAngles {
	rx := sat.X - o.ECEF.X
	ry := sat.Y - o.ECEF.Y
	rz := sat.Z - o.ECEF.Z

	south := o.sinLat*o.cosLon*rx + o.sinLat*o.sinLon*ry - o.cosLat*rz
	east := -o.sinLon*rx + o.cosLon*ry
	zenith := o.cosLat*o.cosLon*rx + o.cosLat*o.sinLon*ry + o.sinLat*rz

	r := math.Sqrt(south*south + east*east + zenith*zenith)

	// North is -South in SEZ.
	az := math.Atan2(east, -south)
	if az < 0 {
		az += 2 * math.Pi
	}

	return LookAngles{
		AzimuthDeg:   az * rad2deg,
		ElevationDeg: math.Asin(zenith/r) * rad2deg,
		RangeKm:      r / 1000,
	}
}

// Elevation is Look(sat).ElevationDeg.
func (o Observer) Elevation(sat PositionECEF) float64 {
	return o.Look(sat).ElevationDeg
}
