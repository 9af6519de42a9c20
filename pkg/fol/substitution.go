package fol

import "fmt"

// Substitution is an immutable mapping from variable declarations to the
// terms that replace their references. Construction enforces the
// occurs-check: Extend refuses to create a binding that would make the
// substitution's own application non-terminating.
//
// Substitution uses copy-on-write semantics over its backing map so that
// Extend is cheap and existing Substitution values are never mutated —
// the same discipline the clause store (clausestore.go) uses for its fact
// tables.
type Substitution struct {
	bindings map[*VariableDeclaration]Term
}

// EmptySubstitution is the identity substitution.
func EmptySubstitution() *Substitution {
	return &Substitution{bindings: map[*VariableDeclaration]Term{}}
}

// Lookup returns the term decl is bound to, if any.
func (s *Substitution) Lookup(decl *VariableDeclaration) (Term, bool) {
	if s == nil {
		return nil, false
	}
	t, ok := s.bindings[decl]
	return t, ok
}

// Len reports how many variables are bound.
func (s *Substitution) Len() int {
	if s == nil {
		return 0
	}
	return len(s.bindings)
}

// ErrOccursCheck is returned by Extend when binding decl to term would
// create a cyclic substitution (decl occurs within the image of term under
// the rest of the substitution).
var ErrOccursCheck = fmt.Errorf("fol: occurs-check failed")

// Extend returns a new Substitution with decl bound to term, or
// ErrOccursCheck if decl occurs in Apply(result, term). A substitution
// that is about to rebind an already-bound declaration to an equal term is
// a no-op; rebinding to a different term is also refused via occurs-check
// semantics (the declaration "occurs" in its own prior binding).
func (s *Substitution) Extend(decl *VariableDeclaration, term Term) (*Substitution, error) {
	if bound, ok := s.bindings[decl]; ok {
		if bound.Equal(term) {
			return s, nil
		}
		return nil, ErrOccursCheck
	}
	if occursInTerm(decl, term, s) {
		return nil, ErrOccursCheck
	}

	newBindings := make(map[*VariableDeclaration]Term, len(s.bindings)+1)
	for k, v := range s.bindings {
		newBindings[k] = v
	}
	newBindings[decl] = term
	return &Substitution{bindings: newBindings}, nil
}

// rawExtend inserts decl -> term without an occurs-check. It backs one-way
// pattern matching (varmanip.go), where the occurs-check's cycle concern
// does not apply: the pattern's variables are matched against a fixed,
// independent target term exactly once, never applied back onto
// themselves.
func (s *Substitution) rawExtend(decl *VariableDeclaration, term Term) *Substitution {
	newBindings := make(map[*VariableDeclaration]Term, len(s.bindings)+1)
	for k, v := range s.bindings {
		newBindings[k] = v
	}
	newBindings[decl] = term
	return &Substitution{bindings: newBindings}
}

// entries returns a copy of s's bindings, for package-internal callers that
// need to merge or walk a substitution's contents (mergeSubstitutions,
// below). Not exposed outside the package: callers use Lookup.
func (s *Substitution) entries() map[*VariableDeclaration]Term {
	if s == nil {
		return nil
	}
	out := make(map[*VariableDeclaration]Term, len(s.bindings))
	for k, v := range s.bindings {
		out[k] = v
	}
	return out
}

// mergeSubstitutions folds addition's bindings into base, one Extend at a
// time. It is how backward.go accumulates σ across conjuncts and across
// proof-search branches: addition's bindings are always for variables
// freshly introduced by a just-restandardized clause, so they are disjoint
// from base's domain and Extend's occurs-check is the only way this can
// fail.
func mergeSubstitutions(base, addition *Substitution) (*Substitution, bool) {
	cur := base
	for decl, term := range addition.entries() {
		next, err := cur.Extend(decl, term)
		if err != nil {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// occursInTerm reports whether decl appears anywhere within term, following
// through variable bindings already present in s. This is the occurs-check
// primitive used both by Extend and by the unifier (unify.go).
func occursInTerm(decl *VariableDeclaration, t Term, s *Substitution) bool {
	switch v := t.(type) {
	case Constant:
		return false
	case VariableReference:
		if v.Declaration == decl {
			return true
		}
		if bound, ok := s.Lookup(v.Declaration); ok {
			return occursInTerm(decl, bound, s)
		}
		return false
	case Function:
		for _, a := range v.Args {
			if occursInTerm(decl, a, s) {
				return true
			}
		}
		return false
	default:
		panic(unknownVariantError{node: t})
	}
}

// Apply substitutes every variable reference in t that is bound (directly
// or transitively) by s, via the recursive transform framework.
func Apply(s *Substitution, t Term) Term {
	r := &SentenceRewriter{
		RewriteTerm: func(t Term) Term {
			ref, ok := t.(VariableReference)
			if !ok {
				return t
			}
			bound, found := s.Lookup(ref.Declaration)
			if !found {
				return t
			}
			return Apply(s, bound)
		},
	}
	return r.Term(t)
}

// ApplySentence substitutes every bound variable reference occurring in s
// within sentence. Quantifier declarations themselves are never touched —
// only references are substituted, per spec.md §3.
func ApplySentence(s *Substitution, sentence Sentence) Sentence {
	r := &SentenceRewriter{
		RewriteTerm: func(t Term) Term {
			ref, ok := t.(VariableReference)
			if !ok {
				return t
			}
			bound, found := s.Lookup(ref.Declaration)
			if !found {
				return t
			}
			return Apply(s, bound)
		},
	}
	return r.Sentence(sentence)
}

// ApplyLiteral substitutes within a Literal's predicate arguments, leaving
// polarity unchanged.
func ApplyLiteral(s *Substitution, lit Literal) Literal {
	newPred := ApplySentence(s, lit.Predicate).(Predicate)
	return Literal{Predicate: newPred, IsNegated: lit.IsNegated}
}

// ApplyClause substitutes within every literal of a clause, then
// re-deduplicates (a clause is a set, and substitution can make two
// previously-distinct literals identical).
func ApplyClause(s *Substitution, c CNFClause) CNFClause {
	out := NewCNFClause()
	for _, lit := range c.Literals() {
		out = out.Add(ApplyLiteral(s, lit))
	}
	return out
}
