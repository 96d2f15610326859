package normalize

import (
	"sort"
	"strconv"
)

// MapDateToVersion resolves a YYYYMMDD release date to a version label
// using the boundary mapping. Each boundary key is a version's launch
// date; the greatest boundary not after the date wins, so a launch-day
// release belongs to the version launched that day. Dates before the
// first boundary take the first label. A non-numeric date or an empty
// mapping returns the input unchanged.
func MapDateToVersion(raw string, mapping map[string]string) string {
	date, err := strconv.Atoi(raw)
	if err != nil {
		return raw
	}

	boundaries := make([]int, 0, len(mapping))
	for k := range mapping {
		b, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		boundaries = append(boundaries, b)
	}
	if len(boundaries) == 0 {
		return raw
	}
	sort.Ints(boundaries)

	if date < boundaries[0] {
		return mapping[strconv.Itoa(boundaries[0])]
	}
	for i := 1; i < len(boundaries); i++ {
		if date < boundaries[i] {
			return mapping[strconv.Itoa(boundaries[i-1])]
		}
	}
	return mapping[strconv.Itoa(boundaries[len(boundaries)-1])]
}
