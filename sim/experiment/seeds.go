package experiment

import (
	"strconv"
	"strings"

	"github.com/freshstock/freshsim/sim"
)

// DefaultSeeds is the seed list used when none is given on the command line.
const DefaultSeeds = "0,1,2,3,4"

// ParseSeeds parses a comma-separated list of integer seeds. Blank entries
// are skipped; duplicates are kept and each produces its own record.
func ParseSeeds(text string) ([]int64, error) {
	var seeds []int64
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		seed, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, sim.NewConfigError("seeds", "%q is not an integer", part)
		}
		seeds = append(seeds, seed)
	}
	if len(seeds) == 0 {
		return nil, sim.NewConfigError("seeds", "no seeds in %q", text)
	}
	return seeds, nil
}
