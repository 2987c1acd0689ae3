package graph

// Edge is an unordered input edge record: a pair of vertex IDs plus an
// unused weight. Self-edges (U == V) and edges with a negative endpoint are
// filtered out during CSR construction, never surfaced in the built graph.
type Edge struct {
	U, V   int64
	Weight float64
}

// V0 returns the edge's first endpoint.
func (e Edge) V0() int64 { return e.U }

// V1 returns the edge's second endpoint.
func (e Edge) V1() int64 { return e.V }

// Valid reports whether the edge should be counted: both endpoints
// non-negative and distinct.
func (e Edge) Valid() bool {
	return e.U >= 0 && e.V >= 0 && e.U != e.V
}

// EdgeList is an unordered collection of input edges.
type EdgeList []Edge
