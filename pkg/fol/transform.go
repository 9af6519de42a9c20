package fol

// SentenceRewriter is the recursive transform/visit framework shared by the
// CNF normalizer, substitution application, ordinalization, and
// subsumption renaming. Each hook is optional; a nil hook behaves as the
// identity for that node kind. Traversal is bottom-up: children are
// rewritten first, then the (possibly already-reconstructed) node is
// offered to the matching hook.
//
// Contract (spec.md §4.B): if every hook that fires returns its input
// unchanged, Sentence/Term return the original value itself rather than a
// rebuilt copy — callers rely on this to cache transformed sentences
// cheaply. Traversal still allocates a scratch slice for every Function or
// Predicate argument list it visits, whether or not anything changed.
type SentenceRewriter struct {
	RewriteTerm     func(t Term) Term
	RewriteSentence func(s Sentence) Sentence
}

func sameTerm(a, b Term) bool  { return a.Equal(b) }
func sameSentence(a, b Sentence) bool { return a.Equal(b) }

// Term rewrites a single term bottom-up.
func (r *SentenceRewriter) Term(t Term) Term {
	var result Term
	switch v := t.(type) {
	case Constant:
		result = v
	case VariableReference:
		result = v
	case Function:
		changed := false
		newArgs := make([]Term, len(v.Args))
		for i, a := range v.Args {
			na := r.Term(a)
			newArgs[i] = na
			if !sameTerm(na, a) {
				changed = true
			}
		}
		if changed {
			result = Function{ID: v.ID, Args: newArgs}
		} else {
			result = v
		}
	default:
		panic(unknownVariantError{node: t})
	}

	if r.RewriteTerm != nil {
		if nt := r.RewriteTerm(result); !sameTerm(nt, result) {
			return nt
		}
	}
	return result
}

// terms rewrites a slice of terms, sharing the backing array when nothing
// changed.
func (r *SentenceRewriter) terms(ts []Term) ([]Term, bool) {
	changed := false
	out := make([]Term, len(ts))
	for i, t := range ts {
		nt := r.Term(t)
		out[i] = nt
		if !sameTerm(nt, t) {
			changed = true
		}
	}
	if !changed {
		return ts, false
	}
	return out, true
}

// Sentence rewrites a single sentence bottom-up.
func (r *SentenceRewriter) Sentence(s Sentence) Sentence {
	var result Sentence
	switch v := s.(type) {
	case Predicate:
		if newArgs, changed := r.terms(v.Args); changed {
			result = Predicate{ID: v.ID, Args: newArgs}
		} else {
			result = v
		}
	case Negation:
		no := r.Sentence(v.Operand)
		if !sameSentence(no, v.Operand) {
			result = Negation{Operand: no}
		} else {
			result = v
		}
	case Conjunction:
		nl, nr := r.Sentence(v.Left), r.Sentence(v.Right)
		if !sameSentence(nl, v.Left) || !sameSentence(nr, v.Right) {
			result = Conjunction{binaryCommutative{Left: nl, Right: nr}}
		} else {
			result = v
		}
	case Disjunction:
		nl, nr := r.Sentence(v.Left), r.Sentence(v.Right)
		if !sameSentence(nl, v.Left) || !sameSentence(nr, v.Right) {
			result = Disjunction{binaryCommutative{Left: nl, Right: nr}}
		} else {
			result = v
		}
	case Implication:
		na, nc := r.Sentence(v.Antecedent), r.Sentence(v.Consequent)
		if !sameSentence(na, v.Antecedent) || !sameSentence(nc, v.Consequent) {
			result = Implication{Antecedent: na, Consequent: nc}
		} else {
			result = v
		}
	case Equivalence:
		nl, nr := r.Sentence(v.Left), r.Sentence(v.Right)
		if !sameSentence(nl, v.Left) || !sameSentence(nr, v.Right) {
			result = Equivalence{binaryCommutative{Left: nl, Right: nr}}
		} else {
			result = v
		}
	case UniversalQuantification:
		nb := r.Sentence(v.Body)
		if !sameSentence(nb, v.Body) {
			result = UniversalQuantification{Declaration: v.Declaration, Body: nb}
		} else {
			result = v
		}
	case ExistentialQuantification:
		nb := r.Sentence(v.Body)
		if !sameSentence(nb, v.Body) {
			result = ExistentialQuantification{Declaration: v.Declaration, Body: nb}
		} else {
			result = v
		}
	default:
		panic(unknownVariantError{node: s})
	}

	if r.RewriteSentence != nil {
		if ns := r.RewriteSentence(result); !sameSentence(ns, result) {
			return ns
		}
	}
	return result
}
