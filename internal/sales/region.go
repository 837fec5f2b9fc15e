package sales

// Region is a sales region.
type Region string

const (
	RegionNorth Region = "north"
	RegionEast  Region = "east"
	RegionSouth Region = "south"
	RegionWest  Region = "west"
)

// SelectorAll selects every region.
const SelectorAll = "all"

var knownRegions = []Region{RegionNorth, RegionEast, RegionSouth, RegionWest}

// KnownRegions returns the closed set of regions in display order.
func KnownRegions() []Region {
	out := make([]Region, len(knownRegions))
	copy(out, knownRegions)

	return out
}

// Selectors returns every accepted region selector, "all" first.
func Selectors() []string {
	out := make([]string, 0, len(knownRegions)+1)
	out = append(out, SelectorAll)

	for _, r := range knownRegions {
		out = append(out, string(r))
	}

	return out
}

// IsKnown reports whether r is one of the known regions.
func (r Region) IsKnown() bool {
	for _, k := range knownRegions {
		if r == k {
			return true
		}
	}

	return false
}
