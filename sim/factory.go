package sim

import (
	"math"

	"github.com/pthm-cable/polyp/vec"
)

// AssembleRadial builds an organism with one hub cell connected to a ring of
// limb cells spaced evenly around it. The hub's attachment angles sweep the
// full turn; every limb attaches at its local zero angle. Returns the hub's
// arena index.
func AssembleRadial(s *State, center vec.Vec2, radius float64, hub CellType, limbs []CellType) (int, error) {
	cells := make([]Cell, 0, len(limbs)+1)
	cells = append(cells, NewCell(center, hub))

	step := 2 * math.Pi / float64(len(limbs))
	for i, typ := range limbs {
		offset := vec.FromAngle(float64(i) * step).Scale(radius)
		cells = append(cells, NewCell(center.Add(offset), typ))
	}

	start, err := s.InsertCells(cells)
	if err != nil {
		return 0, err
	}
	for i := range limbs {
		if err := s.Connect(start, float64(i)*step, start+1+i, 0); err != nil {
			return 0, err
		}
	}
	return start, nil
}

// AssembleChain builds a line of cells, each connected rim-to-rim to the
// next. Returns the first cell's arena index.
func AssembleChain(s *State, origin vec.Vec2, spacing float64, types []CellType) (int, error) {
	cells := make([]Cell, len(types))
	for i, typ := range types {
		cells[i] = NewCell(origin.Add(vec.New(float64(i)*spacing, 0)), typ)
	}

	start, err := s.InsertCells(cells)
	if err != nil {
		return 0, err
	}
	for i := 0; i < len(types)-1; i++ {
		if err := s.Connect(start+i, 0, start+i+1, math.Pi); err != nil {
			return 0, err
		}
	}
	return start, nil
}
