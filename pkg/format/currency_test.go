package format

import (
	"math"
	"testing"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Zero", 0, "￥0"},
		{"Small amount", 999, "￥999"},
		{"Thousands", 1000, "￥1,000"},
		{"Rounds half away from zero", 244451.5, "￥244,452"},
		{"Rounds down below half", 244451.49, "￥244,451"},
		{"Millions", 6689672.8, "￥6,689,673"},
		{"Negative", -1234.5, "-￥1,235"},
		{"Tiny negative rounds to zero", -0.4, "￥0"},
		{"Largest int64 range", 9e18, "￥9,000,000,000,000,000,000"},
		{"Beyond int64", 2.1e19, "￥21,000,000,000,000,000,000"},
		{"Negative beyond int64", -2.1e19, "-￥21,000,000,000,000,000,000"},
		{"Positive infinity", math.Inf(1), "￥∞"},
		{"Negative infinity", math.Inf(-1), "-￥∞"},
		{"Not a number", math.NaN(), "￥NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.amount); got != tt.expected {
				t.Errorf("Currency(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestHours(t *testing.T) {
	tests := []struct {
		hours    float64
		expected string
	}{
		{62.916666, "62.9"},
		{0, "0.0"},
		{5, "5.0"},
		{21.36, "21.4"},
		{math.Inf(1), "∞"},
		{math.Inf(-1), "-∞"},
		{math.NaN(), "NaN"},
	}

	for _, tt := range tests {
		if got := Hours(tt.hours); got != tt.expected {
			t.Errorf("Hours(%v) = %q, expected %q", tt.hours, got, tt.expected)
		}
	}
}
