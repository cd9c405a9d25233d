// Package engine implements column resolution and row merging.
package engine

import "strconv"

// NaturalCompare compares two column names, treating runs of digits as
// numbers, so "c.2" sorts before "c.10". Non-digit runs fall back to
// lexicographic comparison. Returns -1, 0, or 1.
func NaturalCompare(a, b string) int {
	pa := naturalParts(a)
	pb := naturalParts(b)
	for i := 0; i < len(pa) && i < len(pb); i++ {
		x, y := pa[i], pb[i]
		switch {
		case x.num && y.num:
			if x.n != y.n {
				if x.n < y.n {
					return -1
				}
				return 1
			}
		case !x.num && !y.num:
			if x.s != y.s {
				if x.s < y.s {
					return -1
				}
				return 1
			}
		case x.num:
			// A numeric run sorts before a text run.
			return -1
		default:
			return 1
		}
	}
	switch {
	case len(pa) < len(pb):
		return -1
	case len(pa) > len(pb):
		return 1
	default:
		return 0
	}
}

type naturalPart struct {
	num bool
	n   uint64
	s   string
}

// naturalParts splits s into alternating non-digit and digit runs.
func naturalParts(s string) []naturalPart {
	var parts []naturalPart
	start := 0
	inNum := false
	flush := func(end int) {
		if end == start {
			return
		}
		run := s[start:end]
		if inNum {
			n, err := strconv.ParseUint(run, 10, 64)
			if err != nil {
				n = 0
			}
			parts = append(parts, naturalPart{num: true, n: n})
		} else {
			parts = append(parts, naturalPart{s: run})
		}
	}
	for i, ch := range s {
		digit := ch >= '0' && ch <= '9'
		if digit != inNum {
			flush(i)
			start = i
			inNum = digit
		}
	}
	flush(len(s))
	return parts
}
