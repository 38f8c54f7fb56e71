package model

import "fmt"

// Aliveness is the state of a single edge.
type Aliveness uint8

const (
	Dead Aliveness = iota
	// Barren is the one-generation refractory state a dying edge passes
	// through. It is invisible to neighbour counting.
	Barren
	Alive
)

func (a Aliveness) String() string {
	switch a {
	case Dead:
		return "dead"
	case Barren:
		return "barren"
	case Alive:
		return "alive"
	}
	return fmt.Sprintf("Aliveness(%d)", uint8(a))
}

// packedStates is the number of distinct packed EdgesState values (3^3)
const packedStates = 27

// EdgesState holds the three stored edges of one hex, indexed by EdgeDir.
type EdgesState [3]Aliveness

// Get returns the state of one edge
func (s EdgesState) Get(e EdgeDir) Aliveness {
	return s[e]
}

// Set changes the state of one edge
func (s *EdgesState) Set(e EdgeDir, a Aliveness) {
	s[e] = a
}

// IsDead reports whether all three edges are dead
func (s EdgesState) IsDead() bool {
	return s[EdgeXY] == Dead && s[EdgeZY] == Dead && s[EdgeZX] == Dead
}

// Pack encodes the state base 3 as xy + 3*zy + 9*zx
func (s EdgesState) Pack() uint8 {
	return uint8(s[EdgeXY]) + 3*uint8(s[EdgeZY]) + 9*uint8(s[EdgeZX])
}

// Live projects the state onto flags, one per Alive edge
func (s EdgesState) Live() EdgeFlags {
	var f EdgeFlags
	for _, e := range EdgeDirs {
		if s[e] == Alive {
			f = f.With(e)
		}
	}
	return f
}

// ValidPacked reports whether p is a value Pack can produce
func ValidPacked(p uint8) bool {
	return p < packedStates
}

// UnpackEdges decodes a value produced by Pack. It panics on anything else.
func UnpackEdges(p uint8) EdgesState {
	if !ValidPacked(p) {
		panic(fmt.Sprintf("model: packed edge state %d out of range", p))
	}
	return EdgesState{
		EdgeXY: Aliveness(p % 3),
		EdgeZY: Aliveness(p / 3 % 3),
		EdgeZX: Aliveness(p / 9),
	}
}

// EdgeFlags is the two-state form of EdgesState: one bit per stored edge.
type EdgeFlags uint8

const allFlags EdgeFlags = 1<<len(EdgeDirs) - 1

// Has reports whether the edge's flag is set
func (f EdgeFlags) Has(e EdgeDir) bool {
	return f&(1<<e) != 0
}

// With returns f with the edge's flag set
func (f EdgeFlags) With(e EdgeDir) EdgeFlags {
	return f | 1<<e
}

// Without returns f with the edge's flag cleared
func (f EdgeFlags) Without(e EdgeDir) EdgeFlags {
	return f &^ (1 << e)
}

// Pack returns the flags as a small integer in [0, 8)
func (f EdgeFlags) Pack() uint8 {
	return uint8(f & allFlags)
}

// UnpackFlags decodes a value produced by EdgeFlags.Pack. It panics on
// anything else.
func UnpackFlags(p uint8) EdgeFlags {
	if EdgeFlags(p)&^allFlags != 0 {
		panic(fmt.Sprintf("model: packed edge flags %d out of range", p))
	}
	return EdgeFlags(p)
}
