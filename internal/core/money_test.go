package core

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out float64
		ok  bool
	}{
		{"50", 50, true},
		{"50.5", 50.5, true},
		{"0", 0, true},
		{"0.01", 0.01, true},
		{".5", 0.5, true},
		{"5.", 5, true},
		{"007", 7, true},
		{"12.3.4", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{".", 0, false},
		{"-1", 0, false},
		{"+1", 0, false},
		{" 2.50 ", 0, false},
		{"1e3", 0, false},
		{"1,5", 0, false},
		{strings.Repeat("9", 308), 1e308, true},
		{strings.Repeat("9", 309), 0, false},
		{strings.Repeat("9", 400), 0, false},
		{strings.Repeat("9", 400) + ".5", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.out, got, err)
			}
			continue
		}
		if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("%q expected ErrInvalidAmount, got %v", tc.in, err)
		}
		if !IsValidation(err) {
			t.Fatalf("%q expected a validation error, got %T", tc.in, err)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{50.0, "Rs. 50"},
		{50.5, "Rs. 50.50"},
		{0, "Rs. 0"},
		{1234.567, "Rs. 1234.57"},
		{0.1, "Rs. 0.10"},
		{-3, "Rs. -3"},
		{2.675, "Rs. 2.67"},
		{1.005, "Rs. 1.00"},
		{0.125, "Rs. 0.12"},
		{0.375, "Rs. 0.38"},
		{1e20, "Rs. 100000000000000000000"},
		{math.Inf(1), "Rs. inf"},
		{math.Inf(-1), "Rs. -inf"},
		{math.NaN(), "Rs. nan"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.in); got != tc.want {
			t.Fatalf("FormatAmount(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAmountText(t *testing.T) {
	if got := AmountText(50); got != "50" {
		t.Fatalf("expected 50, got %q", got)
	}
	if got := AmountText(50.5); got != "50.50" {
		t.Fatalf("expected 50.50, got %q", got)
	}
	// Round-trips through ParseAmount.
	v, err := ParseAmount(AmountText(12.25))
	if err != nil || v != 12.25 {
		t.Fatalf("round trip failed: %v %v", v, err)
	}
}

func TestFormatTotal(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{15, "Rs. 15.00"},
		{15.25, "Rs. 15.25"},
		{2.675, "Rs. 2.67"},
		{0.125, "Rs. 0.12"},
		{math.Inf(1), "Rs. inf"},
	}
	for _, tc := range cases {
		if got := FormatTotal(tc.in); got != tc.want {
			t.Fatalf("FormatTotal(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
