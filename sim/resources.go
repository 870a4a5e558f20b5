package sim

import "fmt"

// Resources holds the shareable stores of a cell in abstract units.
type Resources struct {
	Energy float32
	Fat    float32
}

// Sub subtracts field-by-field.
func (r Resources) Sub(o Resources) Resources {
	return Resources{Energy: r.Energy - o.Energy, Fat: r.Fat - o.Fat}
}

// ResourcePass diffuses resources along connections toward the poorer
// endpoint, proportionally to the concentration difference. The per-tick
// rate is clamped to half the difference so a donor can never be driven
// below the receiver within one exchange. No-op when diffusion is disabled.
func (s *State) ResourcePass(dt float64) error {
	if s.params.DiffusionRate <= 0 {
		return nil
	}
	rate := float32(s.params.DiffusionRate * dt)
	if rate > 0.5 {
		rate = 0.5
	}

	for _, conn := range s.connections {
		a, b, err := s.cells.GetPair(conn.A, conn.B)
		if err != nil {
			return fmt.Errorf("sim: resource pass, connection %d-%d: %w", conn.A, conn.B, err)
		}

		grad := a.Store.Sub(b.Store)
		flowEnergy := grad.Energy * rate
		flowFat := grad.Fat * rate

		a.Store.Energy -= flowEnergy
		b.Store.Energy += flowEnergy
		a.Store.Fat -= flowFat
		b.Store.Fat += flowFat
	}
	return nil
}
