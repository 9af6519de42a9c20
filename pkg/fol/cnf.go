package fol

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Normalize drives a Sentence through the seven-step CNF pipeline of
// spec.md §4.C: eliminate implications, push negations to normal form,
// standardize variables apart, Skolemize, drop the now-implicit universal
// quantifiers, distribute disjunction over conjunction, and flatten to a
// CNFSentence.
//
// A panic raised by an exhaustiveness failure deep in the pipeline (an
// unrecognised Sentence or Term variant) is recovered here and reported as
// an error wrapping ErrUnknownVariant, rather than crashing the caller.
func Normalize(s Sentence) (result CNFSentence, err error) {
	defer recoverUnknownVariant(&err)

	noImpl := eliminateImplications(s)
	nnf := toNNF(noImpl)
	standardized := standardizeApart(nnf, s)
	skolemized := skolemize(standardized, s)
	quantifierFree := stripUniversals(skolemized)
	distributed := distribute(quantifierFree)
	clauses := flattenToClauses(distributed)
	return NewCNFSentenceFrom(clauses...), nil
}

// normalizeCacheEntry pairs a memoized result with the original sentence it
// was computed from, so a hash collision between two different inputs can
// never return the wrong clauses: the cache is consulted by Hash() but
// confirmed by Equal().
type normalizeCacheEntry struct {
	source Sentence
	result CNFSentence
}

// NormalizeCache memoizes Normalize by the input sentence's structural
// hash, per spec.md §4.C's cache-transparency property: a cached call must
// return exactly what an uncached call would. It is safe for concurrent
// use; the underlying LRU is internally synchronized.
type NormalizeCache struct {
	lru *lru.Cache[uint64, []normalizeCacheEntry]
}

// NewNormalizeCache builds a CNF cache holding up to size hash buckets.
// Sentences whose hashes collide share one bucket, and so one LRU slot,
// each kept as its own entry in that bucket's list.
func NewNormalizeCache(size int) (*NormalizeCache, error) {
	c, err := lru.New[uint64, []normalizeCacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &NormalizeCache{lru: c}, nil
}

// Normalize returns Normalize(s), consulting and populating the cache.
// Errors are never cached, since an unknown-variant panic indicates a
// malformed input that should surface every time it is retried.
func (c *NormalizeCache) Normalize(s Sentence) (CNFSentence, error) {
	h := s.Hash()
	if bucket, ok := c.lru.Get(h); ok {
		for _, entry := range bucket {
			if entry.source.Equal(s) {
				return entry.result, nil
			}
		}
	}

	result, err := Normalize(s)
	if err != nil {
		return CNFSentence{}, err
	}

	bucket, _ := c.lru.Get(h)
	bucket = append(bucket, normalizeCacheEntry{source: s, result: result})
	c.lru.Add(h, bucket)
	return result, nil
}

// eliminateImplications rewrites Implication and Equivalence nodes away in
// terms of Negation, Conjunction, and Disjunction (step 1). Built on the
// shared rewrite framework: by the time the hook sees an Implication or
// Equivalence node, its own operands have already been rewritten, so nested
// occurrences are eliminated from the inside out.
func eliminateImplications(s Sentence) Sentence {
	r := &SentenceRewriter{
		RewriteSentence: func(s Sentence) Sentence {
			switch v := s.(type) {
			case Implication:
				return NewDisjunction(NewNegation(v.Antecedent), v.Consequent)
			case Equivalence:
				forward := NewDisjunction(NewNegation(v.Left), v.Right)
				backward := NewDisjunction(v.Left, NewNegation(v.Right))
				return NewConjunction(forward, backward)
			default:
				return s
			}
		},
	}
	return r.Sentence(s)
}

// toNNF pushes negation down to the literal level (step 2): De Morgan's laws
// distribute Negation over Conjunction/Disjunction, negated quantifiers swap
// kind, and double negation cancels. This needs a polarity carried
// top-down, which the bottom-up SentenceRewriter framework does not
// express, so it is a bespoke recursive walk rather than a rewriter hook.
func toNNF(s Sentence) Sentence { return nnf(s, false) }

func nnf(s Sentence, negated bool) Sentence {
	switch v := s.(type) {
	case Predicate:
		if negated {
			return NewNegation(v)
		}
		return v
	case Negation:
		return nnf(v.Operand, !negated)
	case Conjunction:
		l, r := nnf(v.Left, negated), nnf(v.Right, negated)
		if negated {
			return NewDisjunction(l, r)
		}
		return NewConjunction(l, r)
	case Disjunction:
		l, r := nnf(v.Left, negated), nnf(v.Right, negated)
		if negated {
			return NewConjunction(l, r)
		}
		return NewDisjunction(l, r)
	case UniversalQuantification:
		body := nnf(v.Body, negated)
		if negated {
			return NewExistentialQuantification(v.Declaration, body)
		}
		return NewUniversalQuantification(v.Declaration, body)
	case ExistentialQuantification:
		body := nnf(v.Body, negated)
		if negated {
			return NewUniversalQuantification(v.Declaration, body)
		}
		return NewExistentialQuantification(v.Declaration, body)
	default:
		// Implication/Equivalence cannot reach here: eliminateImplications
		// runs first in Normalize's pipeline.
		panic(unknownVariantError{node: s})
	}
}

// standardizeApart renames every quantifier's bound variable to a fresh
// declaration carrying a StandardisedVariableIdentifier (step 3), so that no
// two quantifiers in the sentence — however deeply nested, however the
// original author reused a label — share a declaration. root is the
// sentence Normalize was originally called with; every fresh identifier's
// back-pointer refers to it, not to whatever subtree standardizeRec happens
// to be visiting.
func standardizeApart(s Sentence, root Sentence) Sentence {
	return standardizeRec(s, map[*VariableDeclaration]*VariableDeclaration{}, root)
}

func standardizeRec(s Sentence, mapping map[*VariableDeclaration]*VariableDeclaration, root Sentence) Sentence {
	switch v := s.(type) {
	case Predicate:
		return Predicate{ID: v.ID, Args: standardizeTerms(v.Args, mapping)}
	case Negation:
		return NewNegation(standardizeRec(v.Operand, mapping, root))
	case Conjunction:
		return NewConjunction(standardizeRec(v.Left, mapping, root), standardizeRec(v.Right, mapping, root))
	case Disjunction:
		return NewDisjunction(standardizeRec(v.Left, mapping, root), standardizeRec(v.Right, mapping, root))
	case UniversalQuantification:
		fresh := NewVariableDeclaration(NewStandardisedVariableIdentifier(v.Declaration, root))
		inner := withMapping(mapping, v.Declaration, fresh)
		return NewUniversalQuantification(fresh, standardizeRec(v.Body, inner, root))
	case ExistentialQuantification:
		fresh := NewVariableDeclaration(NewStandardisedVariableIdentifier(v.Declaration, root))
		inner := withMapping(mapping, v.Declaration, fresh)
		return NewExistentialQuantification(fresh, standardizeRec(v.Body, inner, root))
	default:
		// Implication/Equivalence were eliminated in step 1.
		panic(unknownVariantError{node: s})
	}
}

func withMapping(mapping map[*VariableDeclaration]*VariableDeclaration, from, to *VariableDeclaration) map[*VariableDeclaration]*VariableDeclaration {
	out := make(map[*VariableDeclaration]*VariableDeclaration, len(mapping)+1)
	for k, v := range mapping {
		out[k] = v
	}
	out[from] = to
	return out
}

func standardizeTerms(ts []Term, mapping map[*VariableDeclaration]*VariableDeclaration) []Term {
	out := make([]Term, len(ts))
	for i, t := range ts {
		out[i] = standardizeTerm(t, mapping)
	}
	return out
}

func standardizeTerm(t Term, mapping map[*VariableDeclaration]*VariableDeclaration) Term {
	switch v := t.(type) {
	case Constant:
		return v
	case VariableReference:
		if fresh, ok := mapping[v.Declaration]; ok {
			return VariableReference{Declaration: fresh}
		}
		// A reference to a variable with no enclosing quantifier in this
		// subtree: left as-is. Normalize is only meaningful on sentences
		// closed by quantification, so this is reachable only via a
		// caller-constructed open term, not via the pipeline itself.
		return v
	case Function:
		return Function{ID: v.ID, Args: standardizeTerms(v.Args, mapping)}
	default:
		panic(unknownVariantError{node: t})
	}
}

// skolemize replaces every existentially-quantified variable with a Skolem
// term over the universally-quantified variables enclosing it (step 4), and
// drops the existential quantifier itself. A Skolem term with zero
// enclosing universals collapses to a Skolem constant, per spec.md §4.C.
func skolemize(s Sentence, root Sentence) Sentence {
	return skolemizeRec(s, nil, map[*VariableDeclaration]Term{}, root)
}

func skolemizeRec(s Sentence, universals []*VariableDeclaration, mapping map[*VariableDeclaration]Term, root Sentence) Sentence {
	switch v := s.(type) {
	case Predicate:
		return Predicate{ID: v.ID, Args: skolemizeTerms(v.Args, mapping)}
	case Negation:
		return NewNegation(skolemizeRec(v.Operand, universals, mapping, root))
	case Conjunction:
		return NewConjunction(skolemizeRec(v.Left, universals, mapping, root), skolemizeRec(v.Right, universals, mapping, root))
	case Disjunction:
		return NewDisjunction(skolemizeRec(v.Left, universals, mapping, root), skolemizeRec(v.Right, universals, mapping, root))
	case UniversalQuantification:
		nested := append(append([]*VariableDeclaration{}, universals...), v.Declaration)
		return NewUniversalQuantification(v.Declaration, skolemizeRec(v.Body, nested, mapping, root))
	case ExistentialQuantification:
		skID := canonicalSkolemIdentifier(originalDeclaration(v.Declaration), &v)
		var skTerm Term
		if len(universals) == 0 {
			skTerm = NewConstant(skID)
		} else {
			args := make([]Term, len(universals))
			for i, decl := range universals {
				args[i] = NewVariableReference(decl)
			}
			skTerm = NewFunction(skID, args...)
		}
		inner := make(map[*VariableDeclaration]Term, len(mapping)+1)
		for k, val := range mapping {
			inner[k] = val
		}
		inner[v.Declaration] = skTerm
		// The existential quantifier is dropped: its body is spliced
		// directly into the surrounding formula.
		return skolemizeRec(v.Body, universals, inner, root)
	default:
		panic(unknownVariantError{node: s})
	}
}

func skolemizeTerms(ts []Term, mapping map[*VariableDeclaration]Term) []Term {
	out := make([]Term, len(ts))
	for i, t := range ts {
		out[i] = skolemizeTerm(t, mapping)
	}
	return out
}

func skolemizeTerm(t Term, mapping map[*VariableDeclaration]Term) Term {
	switch v := t.(type) {
	case Constant:
		return v
	case VariableReference:
		if skTerm, ok := mapping[v.Declaration]; ok {
			return skTerm
		}
		return v
	case Function:
		return Function{ID: v.ID, Args: skolemizeTerms(v.Args, mapping)}
	default:
		panic(unknownVariantError{node: t})
	}
}

// stripUniversals discards the now-purely-bookkeeping universal quantifiers
// remaining after Skolemization (step 5): every surviving variable is
// implicitly universally quantified, which is what CNFClause/CNFSentence
// represent.
func stripUniversals(s Sentence) Sentence {
	switch v := s.(type) {
	case UniversalQuantification:
		return stripUniversals(v.Body)
	case Conjunction:
		return NewConjunction(stripUniversals(v.Left), stripUniversals(v.Right))
	case Disjunction:
		return NewDisjunction(stripUniversals(v.Left), stripUniversals(v.Right))
	case Negation:
		return NewNegation(stripUniversals(v.Operand))
	case Predicate:
		return v
	default:
		// ExistentialQuantification cannot reach here: skolemize removed
		// every existential in step 4.
		panic(unknownVariantError{node: s})
	}
}

// distribute pushes Disjunction beneath Conjunction until the formula is a
// conjunction of disjunctions of literals (step 6): the textbook recursive
// CNF distribution law, applied until no Disjunction has a Conjunction
// operand.
func distribute(s Sentence) Sentence {
	switch v := s.(type) {
	case Conjunction:
		return NewConjunction(distribute(v.Left), distribute(v.Right))
	case Disjunction:
		l, r := distribute(v.Left), distribute(v.Right)
		if lc, ok := l.(Conjunction); ok {
			return NewConjunction(distribute(NewDisjunction(lc.Left, r)), distribute(NewDisjunction(lc.Right, r)))
		}
		if rc, ok := r.(Conjunction); ok {
			return NewConjunction(distribute(NewDisjunction(l, rc.Left)), distribute(NewDisjunction(l, rc.Right)))
		}
		return NewDisjunction(l, r)
	case Negation:
		return v
	case Predicate:
		return v
	default:
		panic(unknownVariantError{node: s})
	}
}

// flattenToClauses collects top-level conjuncts into CNFClauses (step 7).
func flattenToClauses(s Sentence) []CNFClause {
	if c, ok := s.(Conjunction); ok {
		return append(flattenToClauses(c.Left), flattenToClauses(c.Right)...)
	}
	return []CNFClause{flattenDisjunctsToClause(s)}
}

func flattenDisjunctsToClause(s Sentence) CNFClause {
	switch v := s.(type) {
	case Disjunction:
		return flattenDisjunctsToClause(v.Left).Union(flattenDisjunctsToClause(v.Right))
	case Negation:
		pred, ok := v.Operand.(Predicate)
		if !ok {
			panic(unknownVariantError{node: v.Operand})
		}
		return NewCNFClauseFrom(Literal{Predicate: pred, IsNegated: true})
	case Predicate:
		return NewCNFClauseFrom(Literal{Predicate: v, IsNegated: false})
	default:
		panic(unknownVariantError{node: s})
	}
}
