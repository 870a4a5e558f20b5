package sim

// CellType tags a cell with its biological role. The tag drives identity and
// the render read path, never physics.
type CellType uint8

// The closed set of cell roles.
const (
	Neural CellType = iota
	Muscle
	Fat
	Liver
	Intestinal
	Kidney
	HairFollicle
	Spore
)

// CellTypes lists every cell type in declaration order.
var CellTypes = []CellType{
	Neural, Muscle, Fat, Liver, Intestinal, Kidney, HairFollicle, Spore,
}

// String returns the type name.
func (t CellType) String() string {
	switch t {
	case Neural:
		return "neural"
	case Muscle:
		return "muscle"
	case Fat:
		return "fat"
	case Liver:
		return "liver"
	case Intestinal:
		return "intestinal"
	case Kidney:
		return "kidney"
	case HairFollicle:
		return "hair_follicle"
	case Spore:
		return "spore"
	}
	return "unknown"
}

// Shape is the membrane outline drawn for a cell type.
type Shape uint8

// Membrane shapes.
const (
	Circle Shape = iota
	Triangle
	Square
	Pentagon
	Hexagon
	Heptagon
	Decagon
)

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Descriptor pairs the shape and color a consumer should draw for a cell
// type.
type Descriptor struct {
	Shape Shape
	Color Color
}

// descriptors is the total lookup table from cell type to membrane visuals.
var descriptors = map[CellType]Descriptor{
	Neural:       {Shape: Circle, Color: Color{0, 0, 255, 255}},
	Muscle:       {Shape: Hexagon, Color: Color{255, 0, 0, 255}},
	Fat:          {Shape: Pentagon, Color: Color{255, 255, 0, 255}},
	Liver:        {Shape: Decagon, Color: Color{139, 69, 19, 255}},
	Intestinal:   {Shape: Triangle, Color: Color{0, 255, 0, 255}},
	Kidney:       {Shape: Heptagon, Color: Color{128, 0, 128, 255}},
	HairFollicle: {Shape: Triangle, Color: Color{0, 0, 0, 255}},
	Spore:        {Shape: Square, Color: Color{128, 128, 128, 255}},
}

// Descriptor returns the membrane visuals for the type. Unknown values fall
// back to the spore descriptor.
func (t CellType) Descriptor() Descriptor {
	if d, ok := descriptors[t]; ok {
		return d
	}
	return descriptors[Spore]
}
