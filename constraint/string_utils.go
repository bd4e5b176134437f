package constraint

import "strings"

// Resolver renders coefficients to a human readable form when pretty printing
// constraints. The System implements it using its field engine.
type Resolver interface {
	CoeffToString(c Element) string
}

// StringBuilder is a helper to build strings from constraints, linear
// expressions or terms. It embeds a strings.Builder object for convenience.
type StringBuilder struct {
	strings.Builder
	Resolver
}

// NewStringBuilder returns a new StringBuilder using the provided resolver to
// render coefficients.
func NewStringBuilder(r Resolver) *StringBuilder {
	return &StringBuilder{Resolver: r}
}

// WriteLinearExpression appends the linear expression to the current buffer as
// a bracketed list of terms; the empty expression prints as [].
func (sbb *StringBuilder) WriteLinearExpression(l LinearExpression) {
	sbb.WriteByte('[')
	for i := 0; i < len(l); i++ {
		sbb.WriteTerm(l[i])
		if i+1 < len(l) {
			sbb.WriteString(", ")
		}
	}
	sbb.WriteByte(']')
}

// WriteTerm appends the term to the current buffer as (coefficient, variable).
func (sbb *StringBuilder) WriteTerm(t Term) {
	sbb.WriteByte('(')
	sbb.WriteString(sbb.CoeffToString(t.Coeff))
	sbb.WriteString(", ")
	sbb.WriteString(t.Variable.String())
	sbb.WriteByte(')')
}
