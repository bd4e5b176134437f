// Package constraint holds the data structures describing the structure of a
// rank-1 constraint system: variables, linear expressions, constraints and the
// System that records them in both row and column form.
//
// The package performs no witness evaluation; coefficients are opaque field
// elements manipulated through the Field interface.
package constraint
