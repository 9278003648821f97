package model

import (
	"errors"
	"reflect"
	"testing"

	"github.com/newtron-network/reinv/pkg/util"
)

func TestPortID_Number(t *testing.T) {
	tests := []struct {
		port PortID
		want int
	}{
		{"Gi1/0/1", 1},
		{"Gi1/0/22", 22},
		{"GigabitEthernet1/0/48", 48},
		{"Te1/1/4", 4},
		{"Ethernet12", 12},
		{"Gi1/0/", -1},
		{"", -1},
	}

	for _, tt := range tests {
		t.Run(string(tt.port), func(t *testing.T) {
			if got := tt.port.Number(); got != tt.want {
				t.Errorf("Number() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPortID_Key(t *testing.T) {
	tests := []struct {
		port PortID
		want PortID
	}{
		{"Gi1/0/3", "gi1/0/3"},
		{"GigabitEthernet1/0/3", "gi1/0/3"},
		{"gi1/0/3", "gi1/0/3"},
		{"TenGigabitEthernet1/1/4", "te1/1/4"},
		{"Po", "po"},
	}
	for _, tt := range tests {
		if got := tt.port.Key(); got != tt.want {
			t.Errorf("%q.Key() = %q, want %q", tt.port, got, tt.want)
		}
	}
}

func TestExpandPorts(t *testing.T) {
	got, err := ExpandPorts("1-8,11-21", DefaultPortPrefix, DefaultMaxPorts)
	if err != nil {
		t.Fatalf("ExpandPorts() error: %v", err)
	}
	if len(got) != 19 {
		t.Fatalf("ExpandPorts() returned %d ports, want 19", len(got))
	}
	if got[0] != "Gi1/0/1" || got[7] != "Gi1/0/8" || got[8] != "Gi1/0/11" || got[18] != "Gi1/0/21" {
		t.Errorf("ExpandPorts() = %v", got)
	}

	if _, err := ExpandPorts("1-50", DefaultPortPrefix, DefaultMaxPorts); !errors.Is(err, util.ErrPortRangeExceeded) {
		t.Errorf("ExpandPorts(1-50) error = %v, want ErrPortRangeExceeded", err)
	}
	if _, err := ExpandPorts("a-5", DefaultPortPrefix, DefaultMaxPorts); !errors.Is(err, util.ErrNonNumericBound) {
		t.Errorf("ExpandPorts(a-5) error = %v, want ErrNonNumericBound", err)
	}
}

func TestExpandPorts_CustomPrefix(t *testing.T) {
	got, err := ExpandPorts("2,1", "Te2/1/", 8)
	if err != nil {
		t.Fatal(err)
	}
	want := []PortID{"Te2/1/2", "Te2/1/1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandPorts() = %v, want %v", got, want)
	}
}

func TestPortSet(t *testing.T) {
	s := NewPortSet([]PortID{"Gi1/0/1", "Gi1/0/2"})
	if !s.Has("Gi1/0/1") || s.Has("Gi1/0/3") {
		t.Errorf("unexpected membership in %v", s)
	}
}

func TestDescribe(t *testing.T) {
	ports := []PortID{"Gi1/0/3", "Gi1/0/1", "Gi1/0/2", "Gi1/0/11"}
	if got := Describe("Gi1/0/", ports); got != "Gi1/0/1-3,11" {
		t.Errorf("Describe() = %q", got)
	}
}
