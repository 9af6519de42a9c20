package fol

// restandardizeClause returns a copy of c with every distinct variable
// declaration replaced by a fresh one, so that c can be paired against
// another clause (binary resolution, store-internal resolvent search)
// without risk of variable capture between the two. Declarations local to
// c that never recur elsewhere are still replaced — cheap, and uniform with
// the rest of the pipeline's "always standardize, never assume apart"
// discipline (spec.md §4.G, §4.H).
func restandardizeClause(c CNFClause) CNFClause {
	mapping := map[*VariableDeclaration]*VariableDeclaration{}
	out := NewCNFClause()
	for _, lit := range c.Literals() {
		pred := Predicate{ID: lit.Predicate.ID, Args: restandardizeTerms(lit.Predicate.Args, mapping)}
		out = out.Add(Literal{Predicate: pred, IsNegated: lit.IsNegated})
	}
	return out
}

func restandardizeTerms(ts []Term, mapping map[*VariableDeclaration]*VariableDeclaration) []Term {
	out := make([]Term, len(ts))
	for i, t := range ts {
		out[i] = restandardizeTerm(t, mapping)
	}
	return out
}

func restandardizeTerm(t Term, mapping map[*VariableDeclaration]*VariableDeclaration) Term {
	switch v := t.(type) {
	case Constant:
		return v
	case VariableReference:
		fresh, ok := mapping[v.Declaration]
		if !ok {
			fresh = NewVariableDeclaration(NewStandardisedVariableIdentifier(v.Declaration, nil))
			mapping[v.Declaration] = fresh
		}
		return NewVariableReference(fresh)
	case Function:
		return Function{ID: v.ID, Args: restandardizeTerms(v.Args, mapping)}
	default:
		panic(unknownVariantError{node: t})
	}
}
