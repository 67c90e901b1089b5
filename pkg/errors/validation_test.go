package errors

import (
	"testing"
)

func TestValidateChoice(t *testing.T) {
	allowed := []string{"rehome", "unionfind"}
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"first", "rehome", false},
		{"second", "unionfind", false},

		{"empty", "", true},
		{"case differs", "Rehome", true},
		{"unknown", "quickfind", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChoice(ErrCodeInvalidConfig, "strategy", tt.input, allowed)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateChoice(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidConfig) {
				t.Errorf("ValidateChoice(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidConfig)
			}
		})
	}
}

func TestValidateNonNegative(t *testing.T) {
	tests := []struct {
		name    string
		input   int
		wantErr bool
	}{
		{"zero", 0, false},
		{"positive", 1000, false},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNonNegative(ErrCodeInvalidConfig, "checkpoint", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNonNegative(%d) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePoints(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		limit   int
		wantErr bool
	}{
		{"no points", 0, 10, false},
		{"single point", 1, 1, false},
		{"exactly at limit", 5, 10, false},
		{"one above limit", 6, 10, true},
		{"limit disabled", 100000, 0, false},
		{"negative limit disabled", 100000, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePoints(tt.n, tt.limit)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePoints(%d, %d) error = %v, wantErr %v", tt.n, tt.limit, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeResourceLimit) {
				t.Errorf("ValidatePoints code = %v, want %v", GetCode(err), ErrCodeResourceLimit)
			}
		})
	}
}
