package util

import (
	"errors"
	"reflect"
	"testing"
)

func seq(from, to int) []int {
	var out []int
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func TestExpandPortRange(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		want    []int
		wantErr error
	}{
		{
			name: "single value",
			spec: "5",
			want: []int{5},
		},
		{
			name: "simple range",
			spec: "1-5",
			want: []int{1, 2, 3, 4, 5},
		},
		{
			name: "two ranges",
			spec: "1-8,11-21",
			want: append(seq(1, 8), seq(11, 21)...),
		},
		{
			name: "order preserved across tokens",
			spec: "7,2-3",
			want: []int{7, 2, 3},
		},
		{
			name: "overlap not deduplicated",
			spec: "1-3,2",
			want: []int{1, 2, 3, 2},
		},
		{
			name: "with spaces",
			spec: " 1 - 3 , 48",
			want: []int{1, 2, 3, 48},
		},
		{
			name: "upper bound is the last port",
			spec: "45-48",
			want: []int{45, 46, 47, 48},
		},
		{
			name:    "exceeds port count",
			spec:    "1-50",
			wantErr: ErrPortRangeExceeded,
		},
		{
			name:    "single value exceeds port count",
			spec:    "49",
			wantErr: ErrPortRangeExceeded,
		},
		{
			name:    "port zero",
			spec:    "0-2",
			wantErr: ErrPortRangeExceeded,
		},
		{
			name:    "non numeric lower bound",
			spec:    "a-5",
			wantErr: ErrNonNumericBound,
		},
		{
			name:    "non numeric single value",
			spec:    "x",
			wantErr: ErrNonNumericBound,
		},
		{
			name:    "three parts",
			spec:    "1-2-3",
			wantErr: ErrMalformedToken,
		},
		{
			name:    "missing upper bound",
			spec:    "4-",
			wantErr: ErrNonNumericBound,
		},
		{
			name:    "missing lower bound",
			spec:    "-4",
			wantErr: ErrNonNumericBound,
		},
		{
			name:    "empty token",
			spec:    "1-2,,4",
			wantErr: ErrMalformedToken,
		},
		{
			name:    "empty spec",
			spec:    "",
			wantErr: ErrMalformedToken,
		},
		{
			name:    "inverted",
			spec:    "8-1",
			wantErr: ErrInvertedRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPortRange(tt.spec, 48)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ExpandPortRange(%q) error = %v, want %v", tt.spec, err, tt.wantErr)
				}
				if !errors.Is(err, ErrInputValidation) {
					t.Errorf("ExpandPortRange(%q) error should be an input validation error", tt.spec)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExpandPortRange(%q) unexpected error: %v", tt.spec, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExpandPortRange(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestCompactRange(t *testing.T) {
	tests := []struct {
		values []int
		want   string
	}{
		{nil, ""},
		{[]int{5}, "5"},
		{[]int{1, 2, 3, 5, 7, 8, 9}, "1-3,5,7-9"},
		{[]int{11, 1, 2, 12, 2}, "1-2,11-12"},
	}

	for _, tt := range tests {
		if got := CompactRange(tt.values); got != tt.want {
			t.Errorf("CompactRange(%v) = %q, want %q", tt.values, got, tt.want)
		}
	}
}
