package physics

import "math"

// Disk describes a solid circular body by radius and density.
type Disk struct {
	Radius  float64
	Density float64
}

// UnitDisk is a disk with radius and density of 1.
var UnitDisk = Disk{Radius: 1, Density: 1}

// DiskFromMass derives the density that gives a disk of the given radius the
// given total mass.
func DiskFromMass(mass, radius float64) Disk {
	area := math.Pi * radius * radius
	density := 0.0
	if area != 0 {
		density = mass / area
	}
	return Disk{Radius: radius, Density: density}
}

// Mass returns the disk's mass from its area and density.
func (d Disk) Mass() float64 {
	return math.Pi * d.Radius * d.Radius * d.Density
}

// RotationalInertia returns the moment of inertia of a solid disk about its
// center.
func (d Disk) RotationalInertia() float64 {
	return 0.5 * d.Radius * d.Radius * d.Mass()
}
