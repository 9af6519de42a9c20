package fol

import "testing"

func TestConjunction_EqualIsOrderIndependent(t *testing.T) {
	p := NewPredicate(StringIdentifier("P"))
	q := NewPredicate(StringIdentifier("Q"))

	a := NewConjunction(p, q)
	b := NewConjunction(q, p)

	if !a.Equal(b) {
		t.Fatal("expected P∧Q to equal Q∧P")
	}
	if a.Hash() != b.Hash() {
		t.Fatal("expected P∧Q and Q∧P to hash equal")
	}
}

func TestDisjunction_EqualIsOrderIndependent(t *testing.T) {
	p := NewPredicate(StringIdentifier("P"))
	q := NewPredicate(StringIdentifier("Q"))

	a := NewDisjunction(p, q)
	b := NewDisjunction(q, p)

	if !a.Equal(b) {
		t.Fatal("expected P∨Q to equal Q∨P")
	}
	if a.Hash() != b.Hash() {
		t.Fatal("expected P∨Q and Q∨P to hash equal")
	}
}

func TestImplication_EqualIsOrderSensitive(t *testing.T) {
	p := NewPredicate(StringIdentifier("P"))
	q := NewPredicate(StringIdentifier("Q"))

	if NewImplication(p, q).Equal(NewImplication(q, p)) {
		t.Fatal("expected P⇒Q to not equal Q⇒P")
	}
}

func TestQuantification_EqualRequiresSameDeclaration(t *testing.T) {
	d1 := NewVariableDeclaration(StringIdentifier("X"))
	d2 := NewVariableDeclaration(StringIdentifier("X"))
	body1 := NewPredicate(StringIdentifier("P"), NewVariableReference(d1))
	body2 := NewPredicate(StringIdentifier("P"), NewVariableReference(d2))

	u1 := NewUniversalQuantification(d1, body1)
	u1b := NewUniversalQuantification(d1, body1)
	u2 := NewUniversalQuantification(d2, body2)

	if !u1.Equal(u1b) {
		t.Fatal("expected two quantifications over the same declaration and body to be Equal")
	}
	if u1.Equal(u2) {
		t.Fatal("expected quantifications over distinct declarations (even same label) to not be Equal")
	}
}

func TestPredicate_EqualRequiresMatchingArgsInOrder(t *testing.T) {
	a := NewConstant(StringIdentifier("a"))
	b := NewConstant(StringIdentifier("b"))

	p1 := NewPredicate(StringIdentifier("P"), a, b)
	p2 := NewPredicate(StringIdentifier("P"), a, b)
	p3 := NewPredicate(StringIdentifier("P"), b, a)

	if !p1.Equal(p2) {
		t.Fatal("expected structurally identical predicates to be Equal")
	}
	if p1.Equal(p3) {
		t.Fatal("expected argument order to matter for Predicate equality")
	}
}
