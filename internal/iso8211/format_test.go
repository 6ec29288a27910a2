package iso8211

import (
	"reflect"
	"testing"
)

func TestParseFormatControls(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []FormatSpec
	}{
		{
			name: "simple mixed",
			in:   "(A(2),I(5),b12,B(16))",
			want: []FormatSpec{
				{Kind: KindASCIIChar, Width: 2},
				{Kind: KindASCIIInt, Width: 5},
				{Kind: KindBinaryUint, Width: 2},
				{Kind: KindBitField, Width: 2},
			},
		},
		{
			name: "leading multiplier on an atom",
			in:   "(b11,2b24,A(3),B(40))",
			want: []FormatSpec{
				{Kind: KindBinaryUint, Width: 1},
				{Kind: KindBinaryInt, Width: 4},
				{Kind: KindBinaryInt, Width: 4},
				{Kind: KindASCIIChar, Width: 3},
				{Kind: KindBitField, Width: 5},
			},
		},
		{
			name: "delimited ascii char",
			in:   "(A,A)",
			want: []FormatSpec{
				{Kind: KindASCIIChar, Width: 0},
				{Kind: KindASCIIChar, Width: 0},
			},
		},
		{
			name: "parenthesised group with multiplier",
			in:   "(2(A(2),I(4)))",
			want: []FormatSpec{
				{Kind: KindASCIIChar, Width: 2},
				{Kind: KindASCIIInt, Width: 4},
				{Kind: KindASCIIChar, Width: 2},
				{Kind: KindASCIIInt, Width: 4},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFormatControls(tt.in)
			if err != nil {
				t.Fatalf("parseFormatControls(%q) error: %v", tt.in, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormatControls(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFormatControlsErrors(t *testing.T) {
	tests := []string{
		"(Q(2))",     // unrecognized atom
		"(b3)",       // bad binary type digit
		"(b19)",      // bad binary width digit
		"(I)",        // missing required width
		"(A(2)",      // unterminated
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			if _, err := parseFormatControls(in); err == nil {
				t.Errorf("parseFormatControls(%q) expected an error, got none", in)
			}
		})
	}
}
