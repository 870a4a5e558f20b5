// Package sim implements the soft-body organism core: cells stored in a slot
// arena, spring connections between them, and the fixed-timestep pass that
// accumulates forces and integrates motion.
package sim

import (
	"github.com/pthm-cable/polyp/physics"
	"github.com/pthm-cable/polyp/vec"
)

// Cell is a rigid circular body with linear and angular state. Force and
// Torque are per-step accumulators: they collect contributions during a pass
// and are zeroed by integration, never carried across steps.
type Cell struct {
	Position vec.Vec2
	Velocity vec.Vec2
	Force    vec.Vec2

	Angle           float64
	AngularVelocity float64
	Torque          float64
	AngularInertia  float64

	Mass float64
	Size float64
	Type CellType

	Store Resources
}

// NewCell creates a cell at the given position with unit-disk mass
// properties and default size.
func NewCell(pos vec.Vec2, typ CellType) Cell {
	disk := physics.DiskFromMass(1, 1)
	return Cell{
		Position:       pos,
		Mass:           disk.Mass(),
		AngularInertia: disk.RotationalInertia(),
		Size:           1,
		Type:           typ,
	}
}

// ApplyForce adds to the cell's force accumulator.
func (c *Cell) ApplyForce(force vec.Vec2) {
	c.Force = c.Force.Add(force)
}

// ApplyTorque adds to the cell's torque accumulator.
func (c *Cell) ApplyTorque(torque float64) {
	c.Torque += torque
}

// Pos returns the cell's center.
func (c *Cell) Pos() vec.Vec2 {
	return c.Position
}

// EdgeLever returns a lever acting at the point on the cell's rim at the
// given attachment angle, rotated into world orientation by the cell's
// current rotation.
func (c *Cell) EdgeLever(angle float64) *physics.Lever {
	return &physics.Lever{
		Body:        c,
		Application: vec.FromAngle(c.Angle + angle).Scale(c.Size * 0.5),
	}
}

// integrate advances the cell by dt using semi-implicit Euler and resets the
// force and torque accumulators.
func (c *Cell) integrate(dt float64) {
	c.Velocity = c.Velocity.Add(c.Force.Scale(dt / c.Mass))
	c.AngularVelocity += c.Torque * dt / c.AngularInertia

	c.Force = vec.Zero
	c.Torque = 0

	c.Position = c.Position.Add(c.Velocity.Scale(dt))
	c.Angle += c.AngularVelocity * dt
}
