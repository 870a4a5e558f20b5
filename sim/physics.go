package sim

import (
	"fmt"

	"github.com/pthm-cable/polyp/physics"
)

// PhysicsPass runs one force-and-integrate tick. Forces accumulate across
// every connection and every cell before any cell integrates, so results do
// not depend on connection order. Arena errors here mean the connection list
// references a dead or invalid slot, which is a consistency bug upstream;
// they propagate unrecovered.
func (s *State) PhysicsPass(dt float64) error {
	centerSpring := physics.LinearSpring{Length: s.params.CenterRestLen, K: s.params.SpringK}
	edgeSpring := physics.LinearSpring{Length: 0, K: s.params.SpringK}

	for _, conn := range s.connections {
		a, b, err := s.cells.GetPair(conn.A, conn.B)
		if err != nil {
			return fmt.Errorf("sim: physics pass, connection %d-%d: %w", conn.A, conn.B, err)
		}

		// Center spring keeps the pair cohesive; the zero-rest spring
		// between the two rim attachment points aligns their rotations.
		centerSpring.Apply(a, b)
		edgeSpring.Apply(a.EdgeLever(conn.AngleA), b.EdgeLever(conn.AngleB))
	}

	for cell := range s.cells.Values() {
		cell.ApplyForce(cell.Velocity.Scale(-cell.Size * s.params.Viscosity))
		cell.ApplyTorque(-cell.AngularVelocity * cell.Size * s.params.Viscosity)
	}

	for cell := range s.cells.Values() {
		cell.integrate(dt)
	}
	return nil
}
