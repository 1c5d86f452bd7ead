package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Prefix is the literal every versioned executable name starts with.
const Prefix = "v"

// maxSegments is the number of dot-separated components a name may carry.
const maxSegments = 3

// Version is a normalized (major, minor, patch) triple
type Version struct {
	Major uint32
	Minor uint32
	Patch uint32
}

// Parse extracts a Version from a file name of the form v<major>[.<minor>[.<patch>]].
// Each component may carry a single leading '+'. Missing trailing components
// default to 0. Names that do not match the grammar return false; that is not
// an error, the name is simply not a version.
func Parse(name string) (Version, bool) {
	rest, ok := strings.CutPrefix(name, Prefix)
	if !ok {
		return Version{}, false
	}

	parts := strings.Split(rest, ".")
	if len(parts) > maxSegments {
		return Version{}, false
	}

	var nums [maxSegments]uint32
	for i, part := range parts {
		n, err := strconv.ParseUint(strings.TrimPrefix(part, "+"), 10, 32)
		if err != nil {
			return Version{}, false
		}
		nums[i] = uint32(n)
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, true
}

// Compare returns -1, 0 or +1 ordering a and b lexicographically on (major, minor, patch)
func Compare(a, b Version) int {
	switch {
	case a.Major != b.Major:
		return cmpUint(a.Major, b.Major)
	case a.Minor != b.Minor:
		return cmpUint(a.Minor, b.Minor)
	default:
		return cmpUint(a.Patch, b.Patch)
	}
}

func cmpUint(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Less reports whether v orders strictly before o
func (v Version) Less(o Version) bool {
	return Compare(v, o) < 0
}

// String renders the canonical vX.Y.Z form
func (v Version) String() string {
	return fmt.Sprintf("%s%d.%d.%d", Prefix, v.Major, v.Minor, v.Patch)
}
