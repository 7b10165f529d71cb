// Package commuting holds the base commuting tables and the selection and aggregation
// steps that run over them for every dashboard query.
package commuting

// EdgeRecord is one row of the base edge table: the commuters moving from Origin to
// Destination for a single purpose.
type EdgeRecord struct {
	Purpose     Purpose
	Internal    bool
	Flow        uint32
	Origin      Region
	Destination Region
	XO, YO      float64
	XD, YD      float64
}

// Key identifies the origin/destination pair of the record.
func (e EdgeRecord) Key() PairKey {
	return PairKey{Origin: e.Origin, Destination: e.Destination}
}

type PairKey struct {
	Origin      Region
	Destination Region
}

func (k PairKey) Less(o PairKey) bool {
	if k.Origin != o.Origin {
		return k.Origin < o.Origin
	}
	return k.Destination < o.Destination
}

// NodeRecord is one row of the base node table. X and Y are already projected.
type NodeRecord struct {
	Code Region
	X, Y float64
}

// Boundary is the projected outline of a region, drawn around the anchor region.
type Boundary struct {
	Code Region
	Name string
	X    []float64
	Y    []float64
}
