// Package model defines the value types exchanged during one reconciliation run.
package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/newtron-network/reinv/pkg/util"
)

const (
	// DefaultPortPrefix names module 1, sub-module 0 on a fixed-slot switch.
	DefaultPortPrefix = "Gi1/0/"

	// DefaultMaxPorts is the physical port count of the reference switch.
	DefaultMaxPorts = 48
)

// PortID is a canonical interface identifier such as "Gi1/0/22".
type PortID string

// FormatPortID builds the identifier for port n under prefix.
func FormatPortID(prefix string, n int) PortID {
	return PortID(prefix + strconv.Itoa(n))
}

// Number returns the numeric suffix of the identifier, i.e. the digits
// after the last '/' ("Gi1/0/22" -> 22). Identifiers without a numeric
// suffix return -1.
func (p PortID) Number() int {
	s := string(p)
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimLeftFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}

// Key returns the identifier with its interface type cut to the two-letter
// abbreviation the switch prints, lowercased, so that "GigabitEthernet1/0/3"
// and "Gi1/0/3" compare equal.
func (p PortID) Key() PortID {
	s := string(p)
	i := strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if i < 0 {
		return PortID(strings.ToLower(s))
	}
	typ := s[:i]
	if len(typ) > 2 {
		typ = typ[:2]
	}
	return PortID(strings.ToLower(typ + s[i:]))
}

func (p PortID) String() string {
	return string(p)
}

// ExpandPorts expands a port range specification ("1-8,11-21") into
// identifiers under prefix, in the order the ranges were given.
func ExpandPorts(spec, prefix string, maxPort int) ([]PortID, error) {
	nums, err := util.ExpandPortRange(spec, maxPort)
	if err != nil {
		return nil, err
	}
	ports := make([]PortID, len(nums))
	for i, n := range nums {
		ports[i] = FormatPortID(prefix, n)
	}
	return ports, nil
}

// PortSet is a membership set of port identifiers, compared by Key.
type PortSet map[PortID]struct{}

// NewPortSet builds a set from ports.
func NewPortSet(ports []PortID) PortSet {
	s := make(PortSet, len(ports))
	for _, p := range ports {
		s[p.Key()] = struct{}{}
	}
	return s
}

// Has reports whether p is in the set.
func (s PortSet) Has(p PortID) bool {
	_, ok := s[p.Key()]
	return ok
}

// Numbers returns the port numbers in the set, unsorted.
func (s PortSet) Numbers() []int {
	nums := make([]int, 0, len(s))
	for p := range s {
		nums = append(nums, p.Number())
	}
	return nums
}

// Describe renders a port list compactly for log output, e.g. "Gi1/0/1-8,11".
func Describe(prefix string, ports []PortID) string {
	return fmt.Sprintf("%s%s", prefix, util.CompactRange(NewPortSet(ports).Numbers()))
}
