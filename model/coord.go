package model

import "fmt"

// HexCoord is an axial hex coordinate. The grid is unbounded.
type HexCoord struct {
	Q int64
	R int64
}

// S returns the implicit third cube coordinate
func (c HexCoord) S() int64 {
	return -c.Q - c.R
}

// Add returns c+o
func (c HexCoord) Add(o HexCoord) HexCoord {
	return HexCoord{Q: c.Q + o.Q, R: c.R + o.R}
}

// Neighbor returns the hex one step away in direction d
func (c HexCoord) Neighbor(d Direction) HexCoord {
	return c.Add(d.Vector())
}

func (c HexCoord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Q, c.R)
}

// Direction is one of the six unit directions around a hex, in clockwise
// order. Names follow the cube axes: DirXY is +X -Y.
type Direction uint8

const (
	DirYZ Direction = iota
	DirXZ
	DirXY
	DirZY
	DirZX
	DirYX
)

// Directions lists all six directions in clockwise order
var Directions = [6]Direction{DirYZ, DirXZ, DirXY, DirZY, DirZX, DirYX}

var directionVectors = [6]HexCoord{
	DirYZ: {Q: 0, R: 1},
	DirXZ: {Q: 1, R: 0},
	DirXY: {Q: 1, R: -1},
	DirZY: {Q: 0, R: -1},
	DirZX: {Q: -1, R: 0},
	DirYX: {Q: -1, R: 1},
}

var directionNames = [6]string{"YZ", "XZ", "XY", "ZY", "ZX", "YX"}

// Vector returns the unit offset for the direction
func (d Direction) Vector() HexCoord {
	return directionVectors[d%6]
}

// Rotate turns the direction clockwise by a
func (d Direction) Rotate(a Angle) Direction {
	return Direction((uint8(d) + uint8(a)) % 6)
}

// Opposite returns the direction pointing the other way
func (d Direction) Opposite() Direction {
	return d.Rotate(AngleBack)
}

func (d Direction) String() string {
	return directionNames[d%6]
}

// Angle is a clockwise turn in multiples of 60 degrees.
type Angle uint8

const (
	AngleForward Angle = iota
	AngleRight
	AngleRightBack
	AngleBack
	AngleLeftBack
	AngleLeft
)

// EdgeDir is one of the three directions whose edge a hex stores itself.
// The other three directions name the same physical edges seen from the
// neighbouring hex.
type EdgeDir uint8

const (
	// EdgeXY is the edge facing DirXY
	EdgeXY EdgeDir = iota
	// EdgeZY is the edge facing DirZY
	EdgeZY
	// EdgeZX is the edge facing DirZX
	EdgeZX
)

// EdgeDirs lists the stored edge directions in packing order
var EdgeDirs = [3]EdgeDir{EdgeXY, EdgeZY, EdgeZX}

// Direction returns the raw direction the edge faces
func (e EdgeDir) Direction() Direction {
	switch e {
	case EdgeZY:
		return DirZY
	case EdgeZX:
		return DirZX
	default:
		return DirXY
	}
}

func (e EdgeDir) String() string {
	return e.Direction().String()
}

// Canonicalize maps a raw (coordinate, direction) edge reference onto the
// stored form. Directions without their own slot step into the neighbouring
// hex and use the opposite direction, which is always stored.
func Canonicalize(c HexCoord, d Direction) (HexCoord, EdgeDir) {
	switch d % 6 {
	case DirXY:
		return c, EdgeXY
	case DirZY:
		return c, EdgeZY
	case DirZX:
		return c, EdgeZX
	case DirYX:
		return c.Neighbor(DirYX), EdgeXY
	case DirYZ:
		return c.Neighbor(DirYZ), EdgeZY
	default: // DirXZ
		return c.Neighbor(DirXZ), EdgeZX
	}
}

// EdgePos identifies one undirected edge of the grid. Two references to the
// same physical edge always produce equal EdgePos values, so it is safe to use
// as a map key.
type EdgePos struct {
	coord HexCoord
	edge  EdgeDir
}

// NewEdgePos canonicalizes a raw direction on a coordinate into an EdgePos
func NewEdgePos(c HexCoord, d Direction) EdgePos {
	coord, edge := Canonicalize(c, d)
	return EdgePos{coord: coord, edge: edge}
}

// EdgeAt builds an EdgePos from a coordinate and one of its stored edges
func EdgeAt(c HexCoord, e EdgeDir) EdgePos {
	return EdgePos{coord: c, edge: e}
}

// Coord returns the hex that stores the edge
func (p EdgePos) Coord() HexCoord { return p.coord }

// Edge returns which of the hex's stored edges this is
func (p EdgePos) Edge() EdgeDir { return p.edge }

// Dir returns the raw direction the edge faces from Coord
func (p EdgePos) Dir() Direction { return p.edge.Direction() }

func (p EdgePos) String() string {
	return fmt.Sprintf("%s/%s", p.coord, p.edge)
}
