package difficulty

import (
	"fmt"
	"slices"
)

var both = []Operation{Addition, Subtraction}

// levels is the fixed table of predefined difficulty levels, in display order.
var levels = []Profile{
	{ID: 1, Name: "Add and subtract within 10", Code: "within_10", MaxNumber: 10, Operations: both, Order: 1},
	{ID: 2, Name: "Within 20, no carrying or borrowing", Code: "within_20_no_carry_borrow", MaxNumber: 20, Operations: both, Order: 2},
	{ID: 3, Name: "Within 20 with carrying and borrowing", Code: "within_20_carry_borrow", MaxNumber: 20, AllowCarry: true, AllowBorrow: true, Operations: both, Order: 3},
	{ID: 4, Name: "Whole tens within 100", Code: "within_100_tens", MaxNumber: 100, Operations: both, Order: 4},
	{ID: 5, Name: "Two-digit and one-digit within 100, no carrying or borrowing", Code: "within_100_two_one_no_carry_borrow", MaxNumber: 100, Operations: both, Order: 5},
	{ID: 6, Name: "Two-digit and one-digit within 100 with carrying and borrowing", Code: "within_100_two_one_carry_borrow", MaxNumber: 100, AllowCarry: true, AllowBorrow: true, Operations: both, Order: 6},
}

// All returns every predefined profile in display order.
func All() []Profile {
	out := make([]Profile, len(levels))
	for i, p := range levels {
		p.Operations = slices.Clone(p.Operations)
		out[i] = p
	}
	return out
}

// Get returns the profile with the given id.
func Get(id int) (Profile, error) {
	for _, p := range levels {
		if p.ID == id {
			p.Operations = slices.Clone(p.Operations)
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// ByCode returns the profile with the given code.
func ByCode(code string) (Profile, error) {
	for _, p := range levels {
		if p.Code == code {
			p.Operations = slices.Clone(p.Operations)
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("%w: code %q", ErrNotFound, code)
}
