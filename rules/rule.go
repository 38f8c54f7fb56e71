package rules

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrMaskOverflow is returned when a birth or survival mask has a bit set
// above the region's neighbour count
var ErrMaskOverflow = errors.New("mask bit exceeds neighbor count")

// DefaultRule is B3/S34 over the ten-edge region
var DefaultRule = MustRule(1<<3, 1<<3|1<<4, RegionTen)

// Rule describes how edges are born and survive. Bit n of a mask set means an
// edge with n live neighbours is born (birth) or stays alive (survive).
type Rule struct {
	birth   uint32
	survive uint32
	region  NeighborRegion
}

// NewRule validates the masks against the region and builds a Rule
func NewRule(birth, survive uint32, region NeighborRegion) (Rule, error) {
	if region.Count() == 0 {
		return Rule{}, errors.Wrapf(ErrUnknownRegion, "[NewRule] region %d", uint8(region))
	}
	if err := checkMask(birth, region); err != nil {
		return Rule{}, errors.Wrap(err, "[NewRule] birth")
	}
	if err := checkMask(survive, region); err != nil {
		return Rule{}, errors.Wrap(err, "[NewRule] survive")
	}
	return Rule{birth: birth, survive: survive, region: region}, nil
}

// MustRule is NewRule for literal rules; it panics on invalid input
func MustRule(birth, survive uint32, region NeighborRegion) Rule {
	r, err := NewRule(birth, survive, region)
	if err != nil {
		panic(err)
	}
	return r
}

func checkMask(mask uint32, region NeighborRegion) error {
	if mask>>(region.Count()+1) != 0 {
		return errors.Wrapf(ErrMaskOverflow, "mask %#b with %s neighbors", mask, region)
	}
	return nil
}

// BirthMask returns the birth bitmask
func (r Rule) BirthMask() uint32 { return r.birth }

// SurviveMask returns the survival bitmask
func (r Rule) SurviveMask() uint32 { return r.survive }

// Region returns the neighbour region
func (r Rule) Region() NeighborRegion { return r.region }

// Born reports whether a dead edge with n live neighbours comes alive
func (r Rule) Born(n int) bool {
	return n >= 0 && n < 32 && r.birth&(1<<n) != 0
}

// Survives reports whether a live edge with n live neighbours stays alive
func (r Rule) Survives(n int) bool {
	return n >= 0 && n < 32 && r.survive&(1<<n) != 0
}

// String renders the rule as B<counts>/S<counts>/@<region>, with counts in
// hex so that ten neighbours reads as "a"
func (r Rule) String() string {
	var sb strings.Builder
	sb.WriteByte('B')
	writeCounts(&sb, r.birth, r.region.Count())
	sb.WriteString("/S")
	writeCounts(&sb, r.survive, r.region.Count())
	fmt.Fprintf(&sb, "/@%s", r.region)
	return sb.String()
}

func writeCounts(sb *strings.Builder, mask uint32, limit int) {
	for i := 0; i <= limit; i++ {
		if mask&(1<<i) != 0 {
			fmt.Fprintf(sb, "%x", i)
		}
	}
}
