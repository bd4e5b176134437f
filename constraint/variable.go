package constraint

import "strconv"

// Visibility encodes the allocation namespace of a Variable.
type Visibility uint8

const (
	// Input designates public input variables, including the reserved "one"
	// variable at index 0.
	Input Visibility = iota

	// Auxiliary designates internal (witness) variables.
	Auxiliary
)

// String returns the short namespace prefix used when pretty printing
// variables; In for public inputs, Aux for auxiliary variables.
func (v Visibility) String() string {
	switch v {
	case Input:
		return "In"
	case Auxiliary:
		return "Aux"
	default:
		return "Invalid"
	}
}

// Variable identifies a wire in a constraint system. Indices are dense and
// per-namespace: the first Input and the first Auxiliary variable both have
// index 0.
type Variable struct {
	Visibility Visibility
	Index      int
}

// In returns the public input Variable at the given index.
func In(index int) Variable {
	return Variable{Visibility: Input, Index: index}
}

// Aux returns the auxiliary Variable at the given index.
func Aux(index int) Variable {
	return Variable{Visibility: Auxiliary, Index: index}
}

// String formats the variable as In(i) or Aux(i).
func (v Variable) String() string {
	return v.Visibility.String() + "(" + strconv.Itoa(v.Index) + ")"
}
