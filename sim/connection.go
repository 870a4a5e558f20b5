package sim

// Connection joins two cells. Endpoints are arena indices; each carries the
// local attachment angle on its cell's rim. The edge is logically
// undirected even though endpoints are stored as A and B.
type Connection struct {
	A      int
	AngleA float64

	B      int
	AngleB float64
}

// NewConnection creates a connection between two cells at the given
// attachment angles.
func NewConnection(a int, angleA float64, b int, angleB float64) Connection {
	return Connection{A: a, AngleA: angleA, B: b, AngleB: angleB}
}

// PointsToward reports whether the connection has id as either endpoint.
func (c Connection) PointsToward(id int) bool {
	return c.A == id || c.B == id
}
