package main

import (
	"slices"
	"testing"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		in      string
		want    []float64
		wantErr bool
	}{
		{"0:10:5", []float64{0, 5, 10}, false},
		{"-90:-80:5", []float64{-90, -85, -80}, false},
		{"450", []float64{450}, false},
		{" 1 : 2 : 1 ", []float64{1, 2}, false},
		{"10:0:1", nil, true},
		{"0:10", nil, true},
		{"a:b:c", nil, true},
	}
	for _, tt := range tests {
		got, err := parseRange(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseRange(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("parseRange(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
