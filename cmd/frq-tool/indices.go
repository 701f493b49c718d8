package main

import (
	"fmt"
	"strconv"
	"strings"
)

// maxRangeSpan caps a single a-b range so a typo cannot allocate gigabytes.
const maxRangeSpan = 1 << 20

// parseIndices parses "3,5,10-20" into frame indices. Ranges are inclusive.
func parseIndices(raw string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		if !isRange {
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid index %q", part)
			}
			out = append(out, n)
			continue
		}
		a, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid range %q", part)
		}
		b, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return nil, fmt.Errorf("invalid range %q", part)
		}
		if b < a {
			return nil, fmt.Errorf("invalid range %q (end before start)", part)
		}
		if b-a >= maxRangeSpan {
			return nil, fmt.Errorf("range %q too large", part)
		}
		for i := a; i <= b; i++ {
			out = append(out, i)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no indices in %q", raw)
	}
	return out, nil
}
