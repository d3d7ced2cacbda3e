package schema

import (
	"fmt"
	"math/bits"
)

// Variant is one named discriminant of an Enumeration.
type Variant struct {
	Name        string
	Discriminant uint64
}

// Enumeration describes a closed (ordinary enumeration) or open (flag
// enumeration) set of named discriminants (§3.2 enum/flag-enum). An
// ordinary enumeration rejects an unrecognized discriminant at decode
// time (errs.ErrInvalidDiscriminant); a flag enumeration treats its
// wire value as a bitset and only rejects bits outside the declared
// variants.
type Enumeration struct {
	Name     string
	Variants []Variant
	IsFlags  bool

	buildErr error
}

// NewEnumeration declares a closed enumeration. Each variant must have
// a unique name and a unique discriminant.
func NewEnumeration(name string, variants ...Variant) *Enumeration {
	e := &Enumeration{Name: name, Variants: variants}
	e.buildErr = e.validate(false)

	return e
}

// NewFlagEnumeration declares a flag (bitset) enumeration. Each
// variant's discriminant must be zero or a single set bit (a power of
// two), since flag variants combine by bitwise OR.
func NewFlagEnumeration(name string, variants ...Variant) *Enumeration {
	e := &Enumeration{Name: name, Variants: variants, IsFlags: true}
	e.buildErr = e.validate(true)

	return e
}

func (e *Enumeration) validate(flags bool) error {
	names := make(map[string]bool, len(e.Variants))
	discs := make(map[uint64]bool, len(e.Variants))

	for _, v := range e.Variants {
		if names[v.Name] {
			return fmt.Errorf("enumeration %q: duplicate variant name %q", e.Name, v.Name)
		}
		names[v.Name] = true

		if discs[v.Discriminant] {
			return fmt.Errorf("enumeration %q: duplicate discriminant %d", e.Name, v.Discriminant)
		}
		discs[v.Discriminant] = true

		if flags && v.Discriminant != 0 && v.Discriminant&(v.Discriminant-1) != 0 {
			return fmt.Errorf("enumeration %q: flag variant %q discriminant %d is not a single bit", e.Name, v.Name, v.Discriminant)
		}
	}

	return nil
}

// Err returns the first construction error recorded against e, if any.
func (e *Enumeration) Err() error {
	return e.buildErr
}

// MaxDiscriminant returns the largest declared discriminant, or 0 for
// an enumeration with no variants.
func (e *Enumeration) MaxDiscriminant() uint64 {
	var max uint64
	for _, v := range e.Variants {
		if v.Discriminant > max {
			max = v.Discriminant
		}
	}

	return max
}

// BitsNeeded returns ceil(log2(MaxDiscriminant+1)), the width
// WithAutoBitWidth resolves to — the minimum number of bits that can
// represent every declared discriminant. An enumeration with no
// variants needs 0 bits; one whose only discriminant is 0 needs 1 bit.
func (e *Enumeration) BitsNeeded() int {
	max := e.MaxDiscriminant()
	if max == 0 {
		if len(e.Variants) == 0 {
			return 0
		}

		return 1
	}

	return bits.Len64(max)
}

// Contains reports whether disc matches a declared variant's exact
// discriminant (used for ordinary enumerations).
func (e *Enumeration) Contains(disc uint64) bool {
	for _, v := range e.Variants {
		if v.Discriminant == disc {
			return true
		}
	}

	return false
}

// KnownBitsMask returns the OR of every declared flag variant's
// discriminant (used to validate a flag enumeration's wire value has
// no unknown bits set).
func (e *Enumeration) KnownBitsMask() uint64 {
	var mask uint64
	for _, v := range e.Variants {
		mask |= v.Discriminant
	}

	return mask
}

// VariantName returns the declared name for disc, or "" if none
// matches (ordinary enumerations only; flag enumerations decompose via
// container.DecomposeFlags instead).
func (e *Enumeration) VariantName(disc uint64) string {
	for _, v := range e.Variants {
		if v.Discriminant == disc {
			return v.Name
		}
	}

	return ""
}
