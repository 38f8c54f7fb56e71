package rules

import (
	"github.com/pkg/errors"

	"github.com/sheikhrachel/hexlife/model"
)

// ErrBarrenCount is returned when a Barren edge is given a neighbour count.
// Barren edges only ever decay.
var ErrBarrenCount = errors.New("neighbor count for a barren edge")

/*
Next applies the rule to one edge with the given number of live neighbours.

A live edge that does not survive becomes Barren when refractory is set and
Dead otherwise. A dead edge is born or stays dead.
*/
func (r Rule) Next(current model.Aliveness, neighbors int, refractory bool) (model.Aliveness, error) {
	switch current {
	case model.Alive:
		if r.Survives(neighbors) {
			return model.Alive, nil
		}
		if refractory {
			return model.Barren, nil
		}
		return model.Dead, nil
	case model.Dead:
		if r.Born(neighbors) {
			return model.Alive, nil
		}
		return model.Dead, nil
	}
	return current, errors.Wrapf(ErrBarrenCount, "%d neighbors", neighbors)
}
