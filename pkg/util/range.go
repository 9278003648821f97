package util

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ExpandPortRange expands a port range specification into port numbers.
// Tokens are expanded in the order given; values are neither sorted across
// tokens nor deduplicated.
//   - "1-8,11-21" -> [1..8, 11..21]
//   - "5,3" -> [5, 3]
//
// Every value must lie in 1..maxPort.
func ExpandPortRange(spec string, maxPort int) ([]int, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, NewPortRangeError(ErrMalformedToken, spec, "empty specification")
	}

	var result []int
	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, NewPortRangeError(ErrMalformedToken, spec, "empty token")
		}
		bounds := strings.Split(token, "-")

		var start, end int
		var err error
		switch len(bounds) {
		case 1:
			if start, err = parseBound(token, bounds[0]); err != nil {
				return nil, err
			}
			end = start
		case 2:
			if start, err = parseBound(token, bounds[0]); err != nil {
				return nil, err
			}
			if end, err = parseBound(token, bounds[1]); err != nil {
				return nil, err
			}
			if end < start {
				return nil, NewPortRangeError(ErrInvertedRange, token, fmt.Sprintf("%d < %d", end, start))
			}
		default:
			return nil, NewPortRangeError(ErrMalformedToken, token, "expected N or N-M")
		}

		if start < 1 {
			return nil, NewPortRangeError(ErrPortRangeExceeded, token, "ports are numbered from 1")
		}
		if end > maxPort {
			return nil, NewPortRangeError(ErrPortRangeExceeded, token,
				fmt.Sprintf("switch has %d ports", maxPort))
		}

		for i := start; i <= end; i++ {
			result = append(result, i)
		}
	}

	return result, nil
}

func parseBound(token, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, NewPortRangeError(ErrNonNumericBound, token, "missing bound")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, NewPortRangeError(ErrNonNumericBound, token, fmt.Sprintf("%q", s))
	}
	return n, nil
}

// CompactRange compacts a list of integers into range notation
// [1, 2, 3, 5, 7, 8, 9] -> "1-3,5,7-9"
func CompactRange(values []int) string {
	if len(values) == 0 {
		return ""
	}

	// Sort and deduplicate
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)
	sorted = DedupAdjacent(sorted)

	var parts []string
	start := sorted[0]
	end := sorted[0]

	for i := 1; i < len(sorted); i++ {
		if sorted[i] == end+1 {
			end = sorted[i]
		} else {
			parts = append(parts, formatRange(start, end))
			start = sorted[i]
			end = sorted[i]
		}
	}
	parts = append(parts, formatRange(start, end))

	return strings.Join(parts, ",")
}

func formatRange(start, end int) string {
	if start == end {
		return strconv.Itoa(start)
	}
	return fmt.Sprintf("%d-%d", start, end)
}
