package realtime

import (
	"slices"
	"strconv"
)

// sortKeys orders child keys the way the Realtime Database does when no orderBy is given:
// keys that parse as 32-bit integers first in numeric order, then the rest lexicographically.
func sortKeys(keys []string) {
	slices.SortFunc(keys, func(a, b string) int {
		ai, aErr := strconv.ParseInt(a, 10, 32)
		bi, bErr := strconv.ParseInt(b, 10, 32)

		switch {
		case aErr == nil && bErr == nil:
			if ai != bi {
				if ai < bi {
					return -1
				}

				return 1
			}
		case aErr == nil:
			return -1
		case bErr == nil:
			return 1
		}

		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	})
}
