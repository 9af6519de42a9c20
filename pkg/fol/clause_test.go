package fol

import "testing"

func TestLiteral_NegateFlipsPolarityOnly(t *testing.T) {
	a := NewConstant(StringIdentifier("a"))
	l := litP("P", a, false)
	n := l.Negate()
	if !n.IsNegated {
		t.Fatal("expected Negate to produce a negated literal")
	}
	if !n.Predicate.Equal(l.Predicate) {
		t.Fatal("expected Negate to leave the predicate unchanged")
	}
}

func TestLiteral_EqualRequiresSamePolarity(t *testing.T) {
	a := NewConstant(StringIdentifier("a"))
	pos := litP("P", a, false)
	neg := litP("P", a, true)
	if pos.Equal(neg) {
		t.Fatal("expected literals with different polarity to be unequal")
	}
}

func TestCNFClause_AddDeduplicates(t *testing.T) {
	a := NewConstant(StringIdentifier("a"))
	l := litP("P", a, false)
	c := NewCNFClauseFrom(l, l, l)
	if c.Len() != 1 {
		t.Fatalf("got %d literals, want 1 after deduplication", c.Len())
	}
}

func TestCNFClause_RemoveDropsMatchingLiteral(t *testing.T) {
	a := NewConstant(StringIdentifier("a"))
	p, q := litP("P", a, false), litP("Q", a, false)
	c := NewCNFClauseFrom(p, q)
	after := c.Remove(p)
	if after.Len() != 1 || !after.Contains(q) {
		t.Fatalf("got %v, want only Q(a) to remain", after)
	}
	// c itself must be untouched (CNFClause is a value type wrapping a
	// slice, but Remove always allocates a fresh backing array).
	if c.Len() != 2 {
		t.Fatal("expected Remove to leave the receiver unchanged")
	}
}

func TestCNFClause_UnionMergesAndDeduplicates(t *testing.T) {
	a := NewConstant(StringIdentifier("a"))
	p, q := litP("P", a, false), litP("Q", a, false)
	left := NewCNFClauseFrom(p)
	right := NewCNFClauseFrom(p, q)

	union := left.Union(right)
	if union.Len() != 2 {
		t.Fatalf("got %d literals, want 2", union.Len())
	}
	if !union.Contains(p) || !union.Contains(q) {
		t.Fatalf("got %v, want both P(a) and Q(a)", union)
	}
}

func TestCNFClause_EqualIsSetEquality(t *testing.T) {
	a := NewConstant(StringIdentifier("a"))
	p, q := litP("P", a, false), litP("Q", a, false)
	c1 := NewCNFClauseFrom(p, q)
	c2 := NewCNFClauseFrom(q, p)
	if !c1.Equal(c2) {
		t.Fatal("expected clauses with the same literals in different orders to be equal")
	}
}

func TestCNFClause_HashIsOrderIndependent(t *testing.T) {
	a := NewConstant(StringIdentifier("a"))
	p, q := litP("P", a, false), litP("Q", a, false)
	c1 := NewCNFClauseFrom(p, q)
	c2 := NewCNFClauseFrom(q, p)
	if c1.Hash() != c2.Hash() {
		t.Fatal("expected Hash to agree with the order-independent Equal")
	}
}

func TestCNFClause_IsHornAndIsDefinite(t *testing.T) {
	a := NewConstant(StringIdentifier("a"))
	head, body := litP("P", a, false), litP("Q", a, true)

	definite := NewCNFClauseFrom(head, body)
	if !definite.IsHorn() || !definite.IsDefinite() {
		t.Fatalf("got %v, want Horn and definite", definite)
	}

	goal := NewCNFClauseFrom(body)
	if !goal.IsHorn() || goal.IsDefinite() || !goal.IsGoalClause() {
		t.Fatalf("got %v, want Horn, non-definite, goal clause", goal)
	}

	nonHorn := NewCNFClauseFrom(litP("P", a, false), litP("R", a, false))
	if nonHorn.IsHorn() {
		t.Fatalf("got %v, want non-Horn (two positive literals)", nonHorn)
	}
}

func TestCNFClause_IsUnit(t *testing.T) {
	a := NewConstant(StringIdentifier("a"))
	unit := NewCNFClauseFrom(litP("P", a, false))
	if !unit.IsUnit() {
		t.Fatalf("got %v, want a unit clause", unit)
	}
	pair := NewCNFClauseFrom(litP("P", a, false), litP("Q", a, false))
	if pair.IsUnit() {
		t.Fatalf("got %v, want not a unit clause", pair)
	}
}

func TestCNFClause_DefiniteHeadAndBody(t *testing.T) {
	a := NewConstant(StringIdentifier("a"))
	head := litP("P", a, false)
	b1, b2 := litP("Q", a, true), litP("R", a, true)
	c := NewCNFClauseFrom(head, b1, b2)

	gotHead, ok := c.DefiniteHead()
	if !ok || !gotHead.Equal(head) {
		t.Fatalf("DefiniteHead() = %v, %v; want %v, true", gotHead, ok, head)
	}

	body := c.DefiniteBody()
	if len(body) != 2 {
		t.Fatalf("got %d body literals, want 2", len(body))
	}
	for _, l := range body {
		if l.IsNegated {
			t.Fatalf("expected DefiniteBody literals to be stated positively, got %v", l)
		}
	}

	nonDefinite := NewCNFClauseFrom(litP("P", a, false), litP("Q", a, false))
	if _, ok := nonDefinite.DefiniteHead(); ok {
		t.Fatal("expected DefiniteHead to report false for a clause with two positive literals")
	}
}

func TestCNFClause_IsTautology(t *testing.T) {
	a := NewConstant(StringIdentifier("a"))
	p := litP("P", a, false)
	taut := NewCNFClauseFrom(p, p.Negate())
	if !taut.IsTautology() {
		t.Fatalf("got %v, want a tautology", taut)
	}

	nonTaut := NewCNFClauseFrom(p, litP("Q", a, false))
	if nonTaut.IsTautology() {
		t.Fatalf("got %v, want not a tautology", nonTaut)
	}
}

func TestCNFClause_EmptyClauseIsEmpty(t *testing.T) {
	c := NewCNFClause()
	if !c.IsEmpty() {
		t.Fatal("expected the zero-value clause to be empty")
	}
	if c.IsHorn() != true || c.IsDefinite() != false || c.IsGoalClause() != true {
		t.Fatal("expected the empty clause to be Horn, non-definite, and a goal clause")
	}
}

func TestCNFSentence_AddDeduplicatesEqualClauses(t *testing.T) {
	a := NewConstant(StringIdentifier("a"))
	c := NewCNFClauseFrom(litP("P", a, false))
	s := NewCNFSentenceFrom(c, c)
	if s.Len() != 1 {
		t.Fatalf("got %d clauses, want 1 after deduplication", s.Len())
	}
}

func TestCNFSentence_EqualIsSetEquality(t *testing.T) {
	a := NewConstant(StringIdentifier("a"))
	c1 := NewCNFClauseFrom(litP("P", a, false))
	c2 := NewCNFClauseFrom(litP("Q", a, false))

	s1 := NewCNFSentenceFrom(c1, c2)
	s2 := NewCNFSentenceFrom(c2, c1)
	if !s1.Equal(s2) {
		t.Fatal("expected CNFSentences with the same clauses in different orders to be equal")
	}

	s3 := NewCNFSentenceFrom(c1)
	if s1.Equal(s3) {
		t.Fatal("expected sentences with different clause counts to be unequal")
	}
}
