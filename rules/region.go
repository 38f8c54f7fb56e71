package rules

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/hexlife/model"
)

// NeighborRegion selects which edges count as neighbours of an edge.
type NeighborRegion uint8

const (
	// RegionFour is the four edges touching the edge's endpoints
	RegionFour NeighborRegion = iota
	// RegionSix adds the edges straight behind and straight ahead
	RegionSix
	// RegionEightCross is every edge touching either endpoint
	RegionEightCross
	// RegionEightParallel is RegionFour plus the parallel edges of the two
	// hexes flanking the edge
	RegionEightParallel
	// RegionTen is RegionEightCross plus the edges behind and ahead
	RegionTen
)

// Regions lists every neighbour region
var Regions = []NeighborRegion{RegionFour, RegionSix, RegionEightCross, RegionEightParallel, RegionTen}

// ErrUnknownRegion is returned when parsing an unrecognised region marker
var ErrUnknownRegion = errors.New("unknown neighbor region")

// Count returns how many neighbours the region holds
func (n NeighborRegion) Count() int {
	switch n {
	case RegionFour:
		return 4
	case RegionSix:
		return 6
	case RegionEightCross, RegionEightParallel:
		return 8
	case RegionTen:
		return 10
	}
	return 0
}

func (n NeighborRegion) String() string {
	switch n {
	case RegionFour:
		return "4"
	case RegionSix:
		return "6"
	case RegionEightCross:
		return "8*"
	case RegionEightParallel:
		return "8="
	case RegionTen:
		return "10"
	}
	return fmt.Sprintf("NeighborRegion(%d)", uint8(n))
}

// ParseRegion parses the marker produced by String
func ParseRegion(s string) (NeighborRegion, error) {
	for _, n := range Regions {
		if n.String() == s {
			return n, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownRegion, "%q", s)
}

// Neighbors returns the edges counted as neighbours of pos.
//
// Angles are taken relative to the direction the edge faces from its own hex
// C, either around C or around the far hex C+D across the edge.
func (n NeighborRegion) Neighbors(pos model.EdgePos) []model.EdgePos {
	return n.AppendNeighbors(make([]model.EdgePos, 0, n.Count()), pos)
}

// AppendNeighbors appends the neighbours of pos to dst
func (n NeighborRegion) AppendNeighbors(dst []model.EdgePos, pos model.EdgePos) []model.EdgePos {
	here := pos.Coord()
	facing := pos.Dir()
	far := here.Neighbor(facing)
	at := func(c model.HexCoord, a model.Angle) model.EdgePos {
		return model.NewEdgePos(c, facing.Rotate(a))
	}

	switch n {
	case RegionFour:
		return append(dst,
			at(here, model.AngleLeft),
			at(here, model.AngleRight),
			at(far, model.AngleLeftBack),
			at(far, model.AngleRightBack),
		)
	case RegionSix:
		return append(dst,
			at(here, model.AngleLeft),
			at(here, model.AngleRight),
			at(here, model.AngleBack),
			at(far, model.AngleLeftBack),
			at(far, model.AngleRightBack),
			at(far, model.AngleForward),
		)
	case RegionEightCross:
		return append(dst,
			at(here, model.AngleLeft),
			at(here, model.AngleRight),
			at(here, model.AngleLeftBack),
			at(here, model.AngleRightBack),
			at(far, model.AngleLeft),
			at(far, model.AngleRight),
			at(far, model.AngleLeftBack),
			at(far, model.AngleRightBack),
		)
	case RegionEightParallel:
		ccw := here.Neighbor(facing.Rotate(model.AngleLeft))
		cw := here.Neighbor(facing.Rotate(model.AngleRight))
		return append(dst,
			at(here, model.AngleLeft),
			at(here, model.AngleRight),
			at(far, model.AngleLeftBack),
			at(far, model.AngleRightBack),
			at(ccw, model.AngleForward),
			at(ccw, model.AngleBack),
			at(cw, model.AngleForward),
			at(cw, model.AngleBack),
		)
	case RegionTen:
		return append(dst,
			at(here, model.AngleLeft),
			at(here, model.AngleRight),
			at(here, model.AngleLeftBack),
			at(here, model.AngleRightBack),
			at(here, model.AngleBack),
			at(far, model.AngleLeft),
			at(far, model.AngleRight),
			at(far, model.AngleLeftBack),
			at(far, model.AngleRightBack),
			at(far, model.AngleForward),
		)
	}
	return dst
}
