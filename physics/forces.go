// Package physics provides the force primitives of the simulation: the
// receiver capability shared by bodies and levers, Hooke-law springs and
// rigid-disk mass properties.
package physics

import "github.com/pthm-cable/polyp/vec"

// ForceReceiver is anything that can take a force and a torque at its
// reference point and report that point's position. Cells implement it
// directly; Lever adapts it to off-center application points.
type ForceReceiver interface {
	ApplyForce(force vec.Vec2)
	ApplyTorque(torque float64)
	Pos() vec.Vec2
}

// leverEpsilon is the application-offset length below which a lever stops
// converting torque into force to avoid dividing by a vanishing radius.
const leverEpsilon = 1e-10

// Lever redirects forces and torques applied at an offset point to an
// underlying receiver, reproducing rigid-lever mechanics: an off-center
// force both translates and rotates the body. Levers compose, so a lever
// can wrap another lever.
type Lever struct {
	Body ForceReceiver
	// Application is the attachment point relative to the body's
	// reference point, already rotated into world orientation.
	Application vec.Vec2
}

// ApplyForce forwards the force to the body together with the torque it
// produces about the body's reference point.
func (l *Lever) ApplyForce(force vec.Vec2) {
	l.Body.ApplyForce(force)
	l.Body.ApplyTorque(l.Application.PerpDot(force))
}

// ApplyTorque converts the torque into an equivalent tangential force at the
// application point and routes it through ApplyForce, which restores the net
// torque. A near-zero application offset forwards the torque unchanged.
func (l *Lever) ApplyTorque(torque float64) {
	rMag := l.Application.Length()
	if rMag > leverEpsilon {
		dir := l.Application.Perp().Div(rMag)
		l.ApplyForce(dir.Scale(torque / rMag))
	} else {
		l.Body.ApplyTorque(torque)
	}
}

// Pos returns the world position of the application point.
func (l *Lever) Pos() vec.Vec2 {
	return l.Body.Pos().Add(l.Application)
}

// LinearSpring couples two receivers with a Hooke-law force along the line
// between their positions.
type LinearSpring struct {
	Length float64 // rest length
	K      float64 // stiffness
}

// Apply accumulates the spring's equal and opposite forces into a and b.
// Coincident positions produce no force: the direction of a zero-length
// delta is taken as the zero vector.
func (s LinearSpring) Apply(a, b ForceReceiver) {
	delta := b.Pos().Sub(a.Pos())
	stretch := delta.Length() - s.Length
	force := delta.Normalize().Scale(-s.K * stretch)

	a.ApplyForce(force.Neg())
	b.ApplyForce(force)
}
