package model

import "sort"

// PortBinding is one static MAC address table entry: a hardware address
// observed on a switch port.
type PortBinding struct {
	MAC  string `json:"mac"`
	Port PortID `json:"port"`
}

// SortBindings returns a copy of bindings ordered by the numeric suffix of
// their port ("Gi1/0/3" before "Gi1/0/22"). Entries on the same port keep
// their relative order.
func SortBindings(bindings []PortBinding) []PortBinding {
	sorted := make([]PortBinding, len(bindings))
	copy(sorted, bindings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Port.Number() < sorted[j].Port.Number()
	})
	return sorted
}

// FilterBindings keeps only bindings whose port is in the set.
func FilterBindings(bindings []PortBinding, ports PortSet) []PortBinding {
	var kept []PortBinding
	for _, b := range bindings {
		if ports.Has(b.Port) {
			kept = append(kept, b)
		}
	}
	return kept
}
