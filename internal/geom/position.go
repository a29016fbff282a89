package geom

import "math"

// decimicroScale is the fixed-point scale used by the OSM PBF format:
// coordinates are stored as integer ten-millionths of a degree.
const decimicroScale = 1e7

// Position is an exact 2D coordinate in decimicro degrees. It is comparable,
// so it can be used directly as a map key; two positions are equal only if
// their integer coordinates match exactly.
type Position struct {
	Lon int32
	Lat int32
}

// NewPosition converts floating-point degrees to a fixed-point Position.
// Rounding to the decimicro grid makes positions decoded from the same source
// node collide reliably, which float keys would not guarantee.
func NewPosition(lon, lat float64) Position {
	return Position{
		Lon: int32(math.Round(lon * decimicroScale)),
		Lat: int32(math.Round(lat * decimicroScale)),
	}
}

// X returns the longitude in degrees.
func (p Position) X() float64 { return float64(p.Lon) / decimicroScale }

// Y returns the latitude in degrees.
func (p Position) Y() float64 { return float64(p.Lat) / decimicroScale }
