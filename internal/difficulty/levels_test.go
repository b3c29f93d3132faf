package difficulty

import (
	"errors"
	"testing"
)

func TestAll_SixValidLevels(t *testing.T) {
	all := All()
	if len(all) != 6 {
		t.Fatalf("expected 6 levels, got %d", len(all))
	}
	for i, p := range all {
		if p.ID != i+1 {
			t.Errorf("level %d: id = %d", i, p.ID)
		}
		if err := p.Validate(); err != nil {
			t.Errorf("level %q invalid: %v", p.Code, err)
		}
	}
}

func TestAll_ReturnsCopies(t *testing.T) {
	all := All()
	all[0].Operations[0] = "multiplication"

	p, err := Get(1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Operations[0] != Addition {
		t.Errorf("table was mutated through All(): %v", p.Operations)
	}
}

func TestGet_NotFound(t *testing.T) {
	_, err := Get(99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestByCode(t *testing.T) {
	p, err := ByCode("within_20_no_carry_borrow")
	if err != nil {
		t.Fatalf("by code: %v", err)
	}
	if p.MaxNumber != 20 || p.AllowCarry || p.AllowBorrow {
		t.Errorf("unexpected profile: %+v", p)
	}
	if _, err := ByCode("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestShape(t *testing.T) {
	tests := []struct {
		code    string
		want    Shape
		columns int
	}{
		{"within_10", ShapeGeneric, 2},
		{"within_20_carry_borrow", ShapeGeneric, 2},
		{"within_100_tens", ShapeTens, 2},
		{"within_100_two_one_no_carry_borrow", ShapeTwoPlusOne, 1},
		{"within_100_two_one_carry_borrow", ShapeTwoPlusOne, 1},
	}
	for _, tt := range tests {
		p := Profile{Code: tt.code}
		if got := p.Shape(); got != tt.want {
			t.Errorf("%s: shape = %v, want %v", tt.code, got, tt.want)
		}
		if got := p.Shape().Columns(); got != tt.columns {
			t.Errorf("%s: columns = %d, want %d", tt.code, got, tt.columns)
		}
	}
}

func TestValidate_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name string
		p    Profile
	}{
		{"no operations", Profile{Code: "x", MaxNumber: 10}},
		{"zero max", Profile{Code: "x", MaxNumber: 0, Operations: both}},
		{"negative max", Profile{Code: "x", MaxNumber: -3, Operations: both}},
		{"unknown op", Profile{Code: "x", MaxNumber: 10, Operations: []Operation{"division"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.p.Validate(); !errors.Is(err, ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}

func TestOperation(t *testing.T) {
	if Addition.Symbol() != "+" || Subtraction.Symbol() != "-" {
		t.Error("unexpected symbols")
	}
	if Addition.Apply(7, 5) != 12 || Subtraction.Apply(7, 5) != 2 {
		t.Error("unexpected Apply results")
	}
	op, err := OperationFromSymbol("-")
	if err != nil || op != Subtraction {
		t.Errorf("OperationFromSymbol(-) = %v, %v", op, err)
	}
	if _, err := OperationFromSymbol("*"); err == nil {
		t.Error("expected error for *")
	}
}
