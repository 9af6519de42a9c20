package fol

// TryUnifyLiterals computes the most general unifier of two literals, per
// spec.md §4.D: polarities must match, predicate identifiers must be
// equal, arities must match, and argument lists must unify pairwise under
// a single accumulating substitution.
func TryUnifyLiterals(x, y Literal) (*Substitution, bool) {
	return tryUnifyLiteralsWithSub(x, y, EmptySubstitution())
}

// tryUnifyLiteralsWithSub unifies x and y under an existing substitution,
// so a caller can require several literal pairs to share one consistent
// set of bindings (UnifiesWithAnyOf's bijective pairing in varmanip.go).
func tryUnifyLiteralsWithSub(x, y Literal, sub *Substitution) (*Substitution, bool) {
	if x.IsNegated != y.IsNegated {
		return nil, false
	}
	if !x.Predicate.ID.Equal(y.Predicate.ID) {
		return nil, false
	}
	if len(x.Predicate.Args) != len(y.Predicate.Args) {
		return nil, false
	}

	cur := sub
	for i := range x.Predicate.Args {
		next, ok := TryUnifyTerms(x.Predicate.Args[i], y.Predicate.Args[i], cur)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// TryUnifyTerms extends sub with the most general unifier of x and y, if
// one exists. Robinson's algorithm with occurs-check (spec.md §4.D).
func TryUnifyTerms(x, y Term, sub *Substitution) (*Substitution, bool) {
	x = walk(x, sub)
	y = walk(y, sub)

	xv, xIsVar := x.(VariableReference)
	yv, yIsVar := y.(VariableReference)

	switch {
	case xIsVar && yIsVar:
		if xv.Declaration == yv.Declaration {
			return sub, true
		}
		return bindVariable(xv, y, sub)
	case xIsVar:
		return bindVariable(xv, y, sub)
	case yIsVar:
		return bindVariable(yv, x, sub)
	}

	xf, xIsFunc := x.(Function)
	yf, yIsFunc := y.(Function)
	if xIsFunc && yIsFunc {
		if !xf.ID.Equal(yf.ID) || len(xf.Args) != len(yf.Args) {
			return nil, false
		}
		cur := sub
		for i := range xf.Args {
			next, ok := TryUnifyTerms(xf.Args[i], yf.Args[i], cur)
			if !ok {
				return nil, false
			}
			cur = next
		}
		return cur, true
	}

	// Constants, or a Constant/Function kind mismatch: succeed only on
	// structural equality, no binding produced either way.
	if x.Equal(y) {
		return sub, true
	}
	return nil, false
}

// walk dereferences t through sub's bindings until it reaches a
// non-variable term or a variable with no binding.
func walk(t Term, sub *Substitution) Term {
	for {
		ref, ok := t.(VariableReference)
		if !ok {
			return t
		}
		bound, found := sub.Lookup(ref.Declaration)
		if !found {
			return t
		}
		t = bound
	}
}

// bindVariable extends sub with v bound to t, applying the occurs-check via
// Substitution.Extend. A failed occurs-check is unification failure, not an
// error (spec.md §7).
func bindVariable(v VariableReference, t Term, sub *Substitution) (*Substitution, bool) {
	next, err := sub.Extend(v.Declaration, t)
	if err != nil {
		return nil, false
	}
	return next, true
}
