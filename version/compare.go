package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// release is a parsed tag such as v1.4 or 0.3.1-rc.2.
type release struct {
	numbers    [3]int
	prerelease string
}

func parseRelease(tag string) (release, error) {
	var r release

	core, pre, _ := strings.Cut(strings.TrimPrefix(strings.TrimSpace(tag), "v"), "-")
	parts := strings.Split(core, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return r, fmt.Errorf("malformed version %q", tag)
	}

	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return r, fmt.Errorf("malformed version %q", tag)
		}
		r.numbers[i] = n
	}

	r.prerelease = pre
	return r, nil
}

// Compare orders two release tags. A missing patch counts as zero and a
// prerelease sorts before its release. Returns 1 if a > b, -1 if a < b and
// 0 if they are equal.
func Compare(a, b string) (int, error) {
	ra, err := parseRelease(a)
	if err != nil {
		return 0, err
	}

	rb, err := parseRelease(b)
	if err != nil {
		return 0, err
	}

	for i := range ra.numbers {
		if ra.numbers[i] != rb.numbers[i] {
			return lo.Ternary(ra.numbers[i] > rb.numbers[i], 1, -1), nil
		}
	}

	switch {
	case ra.prerelease == rb.prerelease:
		return 0, nil
	case ra.prerelease == "":
		return 1, nil
	case rb.prerelease == "":
		return -1, nil
	default:
		return strings.Compare(ra.prerelease, rb.prerelease), nil
	}
}
