package sim

// CellType identifies what occupies a grid cell. The numeric order doubles as
// the palette index used by the renderer.
type CellType uint8

const (
	CellEmpty  CellType = iota // open ground
	CellColorA                 // red
	CellColorB                 // green
	CellColorC                 // blue
	CellColorD                 // yellow
	CellWall                   // impassable terrain
	CellBase                   // player base block
	cellTypeCount              // sentinel
)

func (c CellType) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellColorA:
		return "red"
	case CellColorB:
		return "green"
	case CellColorC:
		return "blue"
	case CellColorD:
		return "yellow"
	case CellWall:
		return "wall"
	case CellBase:
		return "base"
	default:
		return "unknown"
	}
}

// IsUnitColor reports whether c is one of the four movable unit colors.
func (c CellType) IsUnitColor() bool {
	return c >= CellColorA && c <= CellColorD
}

// IsTerrain reports whether c never moves and never fights.
func (c CellType) IsTerrain() bool {
	return c == CellWall || c == CellBase
}

// UnitColors lists the unit colors in cycle order.
var UnitColors = [...]CellType{CellColorA, CellColorB, CellColorC, CellColorD}

// Owner identifies who controls a cell.
type Owner uint8

const (
	OwnerNone   Owner = iota // unowned (empty ground, walls)
	OwnerPlayer              // the local player
	OwnerWild                // stationary colonies seeded at generation
)

func (o Owner) String() string {
	switch o {
	case OwnerNone:
		return "none"
	case OwnerPlayer:
		return "player"
	case OwnerWild:
		return "wild"
	default:
		return "unknown"
	}
}

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
