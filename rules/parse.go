package rules

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrSyntax is returned for rule strings that are not B<counts>/S<counts>[/@<region>]
var ErrSyntax = errors.New("invalid rule syntax")

// ParseRule parses the notation produced by Rule.String. The region part is
// optional and defaults to RegionTen.
func ParseRule(s string) (Rule, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) < 2 || len(parts) > 3 {
		return Rule{}, errors.Wrapf(ErrSyntax, "[ParseRule] %q", s)
	}

	region := RegionTen
	if len(parts) == 3 {
		marker, ok := strings.CutPrefix(parts[2], "@")
		if !ok {
			return Rule{}, errors.Wrapf(ErrSyntax, "[ParseRule] %q: region must start with @", s)
		}
		var err error
		if region, err = ParseRegion(marker); err != nil {
			return Rule{}, errors.Wrapf(err, "[ParseRule] %q", s)
		}
	}

	birth, err := parseCounts(parts[0], 'b')
	if err != nil {
		return Rule{}, errors.Wrapf(err, "[ParseRule] %q", s)
	}
	survive, err := parseCounts(parts[1], 's')
	if err != nil {
		return Rule{}, errors.Wrapf(err, "[ParseRule] %q", s)
	}

	r, err := NewRule(birth, survive, region)
	if err != nil {
		return Rule{}, errors.Wrapf(err, "[ParseRule] %q", s)
	}
	return r, nil
}

func parseCounts(part string, prefix byte) (uint32, error) {
	if part == "" || (part[0]|0x20) != prefix {
		return 0, errors.Wrapf(ErrSyntax, "expected %c prefix in %q", prefix-0x20, part)
	}
	var mask uint32
	for _, ch := range part[1:] {
		n, err := strconv.ParseUint(string(ch), 16, 8)
		if err != nil {
			return 0, errors.Wrapf(ErrSyntax, "bad neighbor count %q", ch)
		}
		mask |= 1 << n
	}
	return mask, nil
}
