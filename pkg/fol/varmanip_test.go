package fol

import "testing"

// TestOrdinalize_AlphaEquivalentTermsMatch grounds spec.md §8 S4:
// F(G(X,Y), G(X,Z)) and F(G(A,B), G(A,C)) are alpha-equivalent and must
// ordinalize to the same canonical form, F(G(v0,v1), G(v0,v2)).
func TestOrdinalize_AlphaEquivalentTermsMatch(t *testing.T) {
	build := func(xName, yName, zName string) Term {
		x := NewVariableDeclaration(StringIdentifier(xName))
		y := NewVariableDeclaration(StringIdentifier(yName))
		z := NewVariableDeclaration(StringIdentifier(zName))
		g := StringIdentifier("G")
		f := StringIdentifier("F")
		return NewFunction(f,
			NewFunction(g, NewVariableReference(x), NewVariableReference(y)),
			NewFunction(g, NewVariableReference(x), NewVariableReference(z)),
		)
	}

	t1 := build("X", "Y", "Z")
	t2 := build("A", "B", "C")

	o1, o2 := Ordinalize(t1), Ordinalize(t2)
	if !o1.Equal(o2) {
		t.Fatalf("expected alpha-equivalent terms to ordinalize equal, got %v vs %v", o1, o2)
	}
}

func TestOrdinalize_DistinctVariablesGetDistinctOrdinals(t *testing.T) {
	x := NewVariableDeclaration(StringIdentifier("X"))
	y := NewVariableDeclaration(StringIdentifier("Y"))
	term := NewFunction(StringIdentifier("F"), NewVariableReference(x), NewVariableReference(y))

	got := Ordinalize(term).(Function)
	first := got.Args[0].(VariableReference).Declaration
	second := got.Args[1].(VariableReference).Declaration
	if first == second {
		t.Fatal("expected distinct original variables to map to distinct ordinal declarations")
	}
}

// TestSubsumes grounds spec.md §8 S5: P(X) ∨ Q(X) subsumes P(c) ∨ Q(c) but
// not P(c) ∨ Q(d).
func TestSubsumes(t *testing.T) {
	x := NewVariableDeclaration(StringIdentifier("X"))
	c := NewConstant(StringIdentifier("c"))
	d := NewConstant(StringIdentifier("d"))

	general := NewCNFClauseFrom(
		NewLiteral(NewPredicate(StringIdentifier("P"), NewVariableReference(x)), false),
		NewLiteral(NewPredicate(StringIdentifier("Q"), NewVariableReference(x)), false),
	)
	sameConst := NewCNFClauseFrom(
		NewLiteral(NewPredicate(StringIdentifier("P"), c), false),
		NewLiteral(NewPredicate(StringIdentifier("Q"), c), false),
	)
	differentConsts := NewCNFClauseFrom(
		NewLiteral(NewPredicate(StringIdentifier("P"), c), false),
		NewLiteral(NewPredicate(StringIdentifier("Q"), d), false),
	)

	if !Subsumes(general, sameConst) {
		t.Fatal("expected P(X) ∨ Q(X) to subsume P(c) ∨ Q(c)")
	}
	if Subsumes(general, differentConsts) {
		t.Fatal("expected P(X) ∨ Q(X) to not subsume P(c) ∨ Q(d)")
	}
}

func TestSubsumes_EmptyClauseSubsumesNothing(t *testing.T) {
	c := NewConstant(StringIdentifier("c"))
	target := NewCNFClauseFrom(NewLiteral(NewPredicate(StringIdentifier("P"), c), false))
	if Subsumes(NewCNFClause(), target) {
		t.Fatal("expected the empty clause to subsume nothing")
	}
}

func TestUnifiesWithAnyOf(t *testing.T) {
	x := NewVariableDeclaration(StringIdentifier("X"))
	c := NewConstant(StringIdentifier("c"))

	pattern := NewCNFClauseFrom(NewLiteral(NewPredicate(StringIdentifier("P"), NewVariableReference(x)), false))
	ground := NewCNFClauseFrom(NewLiteral(NewPredicate(StringIdentifier("P"), c), false))
	unrelated := NewCNFClauseFrom(NewLiteral(NewPredicate(StringIdentifier("Q"), c), false))

	if !UnifiesWithAnyOf(ground, []CNFClause{unrelated, pattern}) {
		t.Fatal("expected ground clause to unify with the variable pattern")
	}
	if UnifiesWithAnyOf(ground, []CNFClause{unrelated}) {
		t.Fatal("expected no match against an unrelated clause")
	}
}

func TestIsInstanceOf(t *testing.T) {
	x := NewVariableDeclaration(StringIdentifier("X"))
	c := NewConstant(StringIdentifier("c"))
	general := NewVariableReference(x)

	if !IsInstanceOf(c, general) {
		t.Fatal("expected c to be an instance of X")
	}
	if !IsGeneralisationOf(general, c) {
		t.Fatal("expected X to be a generalisation of c")
	}
	if IsInstanceOf(general, c) {
		t.Fatal("expected X to not be an instance of the ground constant c")
	}
}
