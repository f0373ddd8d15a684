package tiles

// Kind represents a category of terrain in the simulation grid
type Kind int

const (
	Water  Kind = iota // Open water - stable, spreads into low sand
	Sand                // Shoreline and desert
	Grass               // Plains - grows into forest
	Forest              // Dense tree cover
)

// String returns the string representation of a Kind
func (k Kind) String() string {
	switch k {
	case Water:
		return "water"
	case Sand:
		return "sand"
	case Grass:
		return "grass"
	case Forest:
		return "forest"
	default:
		return "unknown"
	}
}

// ParseKind converts a string to a Kind for the built-in terrain types
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "water":
		return Water, true
	case "sand":
		return Sand, true
	case "grass":
		return Grass, true
	case "forest":
		return Forest, true
	}
	return 0, false
}

// BaseKinds returns the built-in terrain kinds in declaration order
func BaseKinds() []Kind {
	return []Kind{Water, Sand, Grass, Forest}
}

// Direction represents a cardinal direction in the grid
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// String returns the string representation of a Direction
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	case West:
		return East
	default:
		return d
	}
}

// AllDirections returns all four cardinal directions
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// ParseDirection converts a string to a Direction
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "north":
		return North, true
	case "east":
		return East, true
	case "south":
		return South, true
	case "west":
		return West, true
	}
	return 0, false
}

// Offset returns the coordinate delta for a direction. North is -y.
func (d Direction) Offset() (int, int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	}
	return 0, 0
}
