package geo

// epsilon is the float32 machine epsilon.
const epsilon float32 = 0x1p-23

// Position is a fixed geographic coordinate pair. Values come from the static
// city catalog and are never computed, so they are immutable after
// construction; fields stay unexported to keep that guarantee.
type Position struct {
	lat float32
	lon float32
}

// NewPosition builds a Position from a latitude/longitude pair.
func NewPosition(lat, lon float32) Position {
	return Position{lat: lat, lon: lon}
}

func (p Position) Lat() float32 { return p.lat }
func (p Position) Lon() float32 { return p.lon }

// Equal reports whether two positions are the same coordinate within machine
// epsilon, component-wise. Catalog positions are bit-identical across lookups;
// the tolerance guards against float comparison pitfalls anyway.
func (p Position) Equal(other Position) bool {
	return abs32(p.lat-other.lat) <= epsilon && abs32(p.lon-other.lon) <= epsilon
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
