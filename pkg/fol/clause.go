package fol

import "strings"

// Literal is an atomic predicate application or its negation.
type Literal struct {
	Predicate Predicate
	IsNegated bool
}

// NewLiteral builds a positive or negative literal over pred.
func NewLiteral(pred Predicate, negated bool) Literal {
	return Literal{Predicate: pred, IsNegated: negated}
}

// Equal reports structural equality of two literals.
func (l Literal) Equal(other Literal) bool {
	return l.IsNegated == other.IsNegated && l.Predicate.Equal(other.Predicate)
}

// Negate returns the complementary literal.
func (l Literal) Negate() Literal {
	return Literal{Predicate: l.Predicate, IsNegated: !l.IsNegated}
}

// Hash is consistent with Equal.
func (l Literal) Hash() uint64 {
	tag := "pos"
	if l.IsNegated {
		tag = "neg"
	}
	return combineOrdered(fnvHashString(tag), l.Predicate.Hash())
}

func (l Literal) String() string {
	if l.IsNegated {
		return "¬" + l.Predicate.String()
	}
	return l.Predicate.String()
}

// CNFClause is an unordered set of Literals, interpreted disjunctively.
// The empty clause represents ⊥ by convention (spec.md §3).
type CNFClause struct {
	// literals is stored as a slice for stable iteration; membership
	// dedup is enforced by Add via a linear Equal scan, which is cheap at
	// the literal counts clauses realistically reach.
	literals []Literal
}

// NewCNFClause builds an empty clause.
func NewCNFClause() CNFClause { return CNFClause{} }

// NewCNFClauseFrom builds a clause from literals, deduplicating.
func NewCNFClauseFrom(lits ...Literal) CNFClause {
	c := NewCNFClause()
	for _, l := range lits {
		c = c.Add(l)
	}
	return c
}

// Add returns a new clause with l inserted (a no-op, content-wise, if l is
// already present).
func (c CNFClause) Add(l Literal) CNFClause {
	for _, existing := range c.literals {
		if existing.Equal(l) {
			return c
		}
	}
	out := make([]Literal, len(c.literals)+1)
	copy(out, c.literals)
	out[len(c.literals)] = l
	return CNFClause{literals: out}
}

// Remove returns a new clause with l removed, if present.
func (c CNFClause) Remove(l Literal) CNFClause {
	out := make([]Literal, 0, len(c.literals))
	for _, existing := range c.literals {
		if !existing.Equal(l) {
			out = append(out, existing)
		}
	}
	return CNFClause{literals: out}
}

// Union returns the set union of two clauses.
func (c CNFClause) Union(other CNFClause) CNFClause {
	out := c
	for _, l := range other.literals {
		out = out.Add(l)
	}
	return out
}

// Literals returns the clause's literals in a stable, but otherwise
// unspecified, order.
func (c CNFClause) Literals() []Literal {
	out := make([]Literal, len(c.literals))
	copy(out, c.literals)
	return out
}

// Len returns the number of literals.
func (c CNFClause) Len() int { return len(c.literals) }

// IsEmpty reports whether this is the empty clause (⊥).
func (c CNFClause) IsEmpty() bool { return len(c.literals) == 0 }

// Contains reports whether l is a member of the clause.
func (c CNFClause) Contains(l Literal) bool {
	for _, existing := range c.literals {
		if existing.Equal(l) {
			return true
		}
	}
	return false
}

// Equal reports whether c and other are variants of one another: the same
// literals up to reordering and a consistent renaming of variables. A
// clause is implicitly universally quantified over its own variables
// (spec.md §4.A), so two clauses produced by independent standardize-apart
// passes over the same sentence — which never share a single bound
// variable's identifier — must still compare equal. Variant equality is
// exactly mutual subsumption (varmanip.go's Subsumes), except for the empty
// clause, which Subsumes treats as subsuming nothing and which this method
// special-cases to be equal only to itself.
func (c CNFClause) Equal(other CNFClause) bool {
	if len(c.literals) != len(other.literals) {
		return false
	}
	if c.IsEmpty() {
		return true
	}
	return Subsumes(c, other) && Subsumes(other, c)
}

// Hash must agree with Equal, so it cannot depend on which particular
// variable identifiers a clause's literals carry — only on shape: predicate
// symbols, arities, polarities, and the constant/function/variable skeleton
// of each argument, with every variable collapsed to one anonymous marker.
// This is coarser than Equal (distinct, non-variant clauses may collide),
// which is safe for a Hash contract; every caller double-checks with Equal.
func (c CNFClause) Hash() uint64 {
	var acc uint64
	for _, l := range c.literals {
		acc ^= l.shapeHash() // XOR is commutative and associative: order-free.
	}
	return acc
}

func (l Literal) shapeHash() uint64 {
	tag := "pos"
	if l.IsNegated {
		tag = "neg"
	}
	hashes := make([]uint64, 0, len(l.Predicate.Args)+2)
	hashes = append(hashes, fnvHashString(tag), l.Predicate.ID.Hash())
	for _, a := range l.Predicate.Args {
		hashes = append(hashes, termShapeHash(a))
	}
	return combineOrdered(hashes...)
}

func termShapeHash(t Term) uint64 {
	switch v := t.(type) {
	case VariableReference:
		return fnvHashString("shape:var")
	case Constant:
		return combineOrdered(fnvHashString("shape:const"), v.ID.Hash())
	case Function:
		hashes := make([]uint64, 0, len(v.Args)+2)
		hashes = append(hashes, fnvHashString("shape:func"), v.ID.Hash())
		for _, a := range v.Args {
			hashes = append(hashes, termShapeHash(a))
		}
		return combineOrdered(hashes...)
	default:
		panic(unknownVariantError{node: t})
	}
}

func (c CNFClause) String() string {
	if c.IsEmpty() {
		return "⊥"
	}
	parts := make([]string, len(c.literals))
	for i, l := range c.literals {
		parts[i] = l.String()
	}
	return strings.Join(parts, " ∨ ")
}

// IsHorn reports whether the clause has at most one positive literal.
func (c CNFClause) IsHorn() bool { return c.positiveCount() <= 1 }

// IsDefinite reports whether the clause has exactly one positive literal.
func (c CNFClause) IsDefinite() bool { return c.positiveCount() == 1 }

// IsGoalClause reports whether the clause has no positive literal.
func (c CNFClause) IsGoalClause() bool { return c.positiveCount() == 0 }

// IsUnit reports whether the clause has exactly one literal.
func (c CNFClause) IsUnit() bool { return len(c.literals) == 1 }

func (c CNFClause) positiveCount() int {
	n := 0
	for _, l := range c.literals {
		if !l.IsNegated {
			n++
		}
	}
	return n
}

// DefiniteHead returns the clause's single positive literal and true, if
// the clause is definite.
func (c CNFClause) DefiniteHead() (Literal, bool) {
	var head Literal
	count := 0
	for _, l := range c.literals {
		if !l.IsNegated {
			head = l
			count++
		}
	}
	return head, count == 1
}

// DefiniteBody returns the clause's negative literals (the body of a
// definite clause, read as head :- body1, body2, ...).
func (c CNFClause) DefiniteBody() []Literal {
	out := make([]Literal, 0, len(c.literals))
	for _, l := range c.literals {
		if l.IsNegated {
			out = append(out, Literal{Predicate: l.Predicate, IsNegated: false})
		}
	}
	return out
}

// IsTautology reports whether the clause contains both a literal and its
// negation, making it vacuously true and safe to discard during search
// (spec.md §4.H redundancy controls).
func (c CNFClause) IsTautology() bool {
	for _, l := range c.literals {
		if c.Contains(l.Negate()) {
			return true
		}
	}
	return false
}

// CNFSentence is an unordered set of CNFClauses, interpreted
// conjunctively.
type CNFSentence struct {
	clauses []CNFClause
}

// NewCNFSentence builds an empty CNFSentence.
func NewCNFSentence() CNFSentence { return CNFSentence{} }

// NewCNFSentenceFrom builds a CNFSentence from clauses, deduplicating.
func NewCNFSentenceFrom(clauses ...CNFClause) CNFSentence {
	s := NewCNFSentence()
	for _, c := range clauses {
		s = s.Add(c)
	}
	return s
}

// Add returns a new CNFSentence with c inserted (a no-op if an equal
// clause is already present).
func (s CNFSentence) Add(c CNFClause) CNFSentence {
	for _, existing := range s.clauses {
		if existing.Equal(c) {
			return s
		}
	}
	out := make([]CNFClause, len(s.clauses)+1)
	copy(out, s.clauses)
	out[len(s.clauses)] = c
	return CNFSentence{clauses: out}
}

// Clauses returns the sentence's clauses in a stable, but otherwise
// unspecified, order.
func (s CNFSentence) Clauses() []CNFClause {
	out := make([]CNFClause, len(s.clauses))
	copy(out, s.clauses)
	return out
}

// Len returns the number of clauses.
func (s CNFSentence) Len() int { return len(s.clauses) }

// Equal reports set equality between two CNFSentences.
func (s CNFSentence) Equal(other CNFSentence) bool {
	if len(s.clauses) != len(other.clauses) {
		return false
	}
	for _, c := range s.clauses {
		found := false
		for _, oc := range other.clauses {
			if c.Equal(oc) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (s CNFSentence) String() string {
	parts := make([]string, len(s.clauses))
	for i, c := range s.clauses {
		parts[i] = "(" + c.String() + ")"
	}
	return strings.Join(parts, " ∧ ")
}
