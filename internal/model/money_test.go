package model

import (
	"testing"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Money
		wantErr bool
	}{
		{
			name:  "plain decimal",
			input: "12.34",
			want:  1234,
		},
		{
			name:  "integer",
			input: "100",
			want:  10000,
		},
		{
			name:  "comma decimal",
			input: "12,34",
			want:  1234,
		},
		{
			name:  "european thousands",
			input: "1.234,56",
			want:  123456,
		},
		{
			name:  "american thousands",
			input: "1,234.56",
			want:  123456,
		},
		{
			name:  "currency symbol",
			input: "€45.50",
			want:  4550,
		},
		{
			name:  "dollar with spaces",
			input: " $1,000.00 ",
			want:  100000,
		},
		{
			name:  "negative",
			input: "-5.25",
			want:  -525,
		},
		{
			name:  "single decimal digit",
			input: "3.5",
			want:  350,
		},
		{
			name:  "three decimal digits round",
			input: "1.005",
			want:  101,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "not a number",
			input:   "abc",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMoney(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseMoney(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMoney(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMoney(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestMoneyString(t *testing.T) {
	tests := []struct {
		name  string
		input Money
		want  string
	}{
		{name: "zero", input: 0, want: "0.00"},
		{name: "cents only", input: 5, want: "0.05"},
		{name: "round amount", input: 10000, want: "100.00"},
		{name: "mixed", input: 123456, want: "1234.56"},
		{name: "negative", input: -525, want: "-5.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.input.String(); got != tt.want {
				t.Errorf("Money(%d).String() = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMoneyFromFloat(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  Money
	}{
		{name: "exact", input: 12.34, want: 1234},
		{name: "rounds up", input: 0.345, want: 35},
		{name: "rounds half away from zero", input: -0.345, want: -35},
		{name: "nan becomes zero", input: nan(), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MoneyFromFloat(tt.input); got != tt.want {
				t.Errorf("MoneyFromFloat(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func nan() float64 {
	f := 0.0
	return f / f
}

func TestParseMoneyStringRoundTrip(t *testing.T) {
	for _, amount := range []Money{1, 99, 100, 12345, 999999} {
		parsed, err := ParseMoney(amount.String())
		if err != nil {
			t.Fatalf("ParseMoney(%q) unexpected error: %v", amount.String(), err)
		}
		if parsed != amount {
			t.Errorf("round trip of %d produced %d", amount, parsed)
		}
	}
}
