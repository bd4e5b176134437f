package constraint

// Term is a coefficient multiplied by a variable.
type Term struct {
	Coeff    Element
	Variable Variable
}

// LinearExpression is an ordered sum of terms. Terms are stored exactly as
// recorded: duplicates are kept (consumers treat them additively) and no
// normalization of any kind is performed.
type LinearExpression []Term

// AddTerm appends coeff·v to the expression and returns the extended
// expression, so calls can be chained.
func (l LinearExpression) AddTerm(coeff Element, v Variable) LinearExpression {
	return append(l, Term{Coeff: coeff, Variable: v})
}

// Clone returns a copy of the underlying slice.
func (l LinearExpression) Clone() LinearExpression {
	res := make(LinearExpression, len(l))
	copy(res, l)
	return res
}

// String formats the expression as a bracketed list of (coefficient, variable)
// pairs, using the given resolver to render coefficients.
func (l LinearExpression) String(r Resolver) string {
	sbb := NewStringBuilder(r)
	sbb.WriteLinearExpression(l)
	return sbb.String()
}
