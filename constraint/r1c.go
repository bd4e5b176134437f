package constraint

// R1C is a single rank-1 constraint: A ⋅ B == C, where A, B and C are linear
// expressions over the system's variables. The recorder never evaluates it.
type R1C struct {
	A, B, C LinearExpression
}

// String formats the constraint as A ⋅ B == C.
func (r1c *R1C) String(r Resolver) string {
	sbb := NewStringBuilder(r)
	sbb.WriteLinearExpression(r1c.A)
	sbb.WriteString(" ⋅ ")
	sbb.WriteLinearExpression(r1c.B)
	sbb.WriteString(" == ")
	sbb.WriteLinearExpression(r1c.C)
	return sbb.String()
}
