package utils

import "testing"

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "0.00"},
		{10.456, "10.46"},
		{999.994, "999.99"},
		{1000, "1,000.00"},
		{1234567.89, "1,234,567.89"},
		{-5573.52, "-5,573.52"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.amount); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0.05, "+5.00%"},
		{-0.0212, "-2.12%"},
		{0, "0.00%"},
	}
	for _, tt := range tests {
		if got := FormatPercent(tt.value); got != tt.want {
			t.Errorf("FormatPercent(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		value     float64
		precision int
		want      string
	}{
		{10.45000, 6, "10.45"},
		{0.2, 4, "0.2"},
		{100.0, 2, "100"},
		{3.14159, 3, "3.142"},
	}
	for _, tt := range tests {
		if got := FormatFloat(tt.value, tt.precision); got != tt.want {
			t.Errorf("FormatFloat(%v, %d) = %q, want %q", tt.value, tt.precision, got, tt.want)
		}
	}
}
