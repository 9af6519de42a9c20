package fol

import "testing"

func TestSubstitution_ExtendAndLookup(t *testing.T) {
	x := NewVariableDeclaration(StringIdentifier("X"))
	a := NewConstant(StringIdentifier("a"))

	sub, err := EmptySubstitution().Extend(x, a)
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}
	got, ok := sub.Lookup(x)
	if !ok || !got.Equal(a) {
		t.Fatalf("got %v, %v; want a, true", got, ok)
	}
}

func TestSubstitution_ExtendIsImmutable(t *testing.T) {
	x := NewVariableDeclaration(StringIdentifier("X"))
	a := NewConstant(StringIdentifier("a"))

	base := EmptySubstitution()
	extended, err := base.Extend(x, a)
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}
	if _, ok := base.Lookup(x); ok {
		t.Fatal("expected the original substitution to remain unbound")
	}
	if _, ok := extended.Lookup(x); !ok {
		t.Fatal("expected the extended substitution to carry the new binding")
	}
}

func TestSubstitution_OccursCheckRejectsSelfReference(t *testing.T) {
	x := NewVariableDeclaration(StringIdentifier("X"))
	f := NewFunction(StringIdentifier("f"), NewVariableReference(x))
	if _, err := EmptySubstitution().Extend(x, f); err == nil {
		t.Fatal("expected Extend to reject binding X to f(X)")
	}
}

func TestSubstitution_OccursCheckFollowsExistingBindings(t *testing.T) {
	x := NewVariableDeclaration(StringIdentifier("X"))
	y := NewVariableDeclaration(StringIdentifier("Y"))

	sub, err := EmptySubstitution().Extend(y, NewVariableReference(x))
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}
	f := NewFunction(StringIdentifier("f"), NewVariableReference(y))
	if _, err := sub.Extend(x, f); err == nil {
		t.Fatal("expected Extend to detect the cycle X -> f(Y), Y -> X transitively")
	}
}

func TestApply_SubstitutesBoundVariablesOnly(t *testing.T) {
	x := NewVariableDeclaration(StringIdentifier("X"))
	y := NewVariableDeclaration(StringIdentifier("Y"))
	a := NewConstant(StringIdentifier("a"))

	sub, err := EmptySubstitution().Extend(x, a)
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}
	term := NewFunction(StringIdentifier("f"), NewVariableReference(x), NewVariableReference(y))
	got := Apply(sub, term).(Function)
	if !got.Args[0].Equal(a) {
		t.Fatalf("expected X to be substituted, got %v", got.Args[0])
	}
	if !got.Args[1].Equal(NewVariableReference(y)) {
		t.Fatalf("expected Y to remain unbound, got %v", got.Args[1])
	}
}

func TestApplyClause_RededuplicatesAfterSubstitution(t *testing.T) {
	x := NewVariableDeclaration(StringIdentifier("X"))
	y := NewVariableDeclaration(StringIdentifier("Y"))
	a := NewConstant(StringIdentifier("a"))

	c := NewCNFClauseFrom(
		NewLiteral(NewPredicate(StringIdentifier("P"), NewVariableReference(x)), false),
		NewLiteral(NewPredicate(StringIdentifier("P"), NewVariableReference(y)), false),
	)
	sub := EmptySubstitution()
	sub, _ = sub.Extend(x, a)
	sub, _ = sub.Extend(y, a)

	got := ApplyClause(sub, c)
	if got.Len() != 1 {
		t.Fatalf("expected substitution to collapse both literals to P(a), got %v", got)
	}
}

func TestMergeSubstitutions_AccumulatesDisjointBindings(t *testing.T) {
	x := NewVariableDeclaration(StringIdentifier("X"))
	y := NewVariableDeclaration(StringIdentifier("Y"))
	a := NewConstant(StringIdentifier("a"))
	b := NewConstant(StringIdentifier("b"))

	base, _ := EmptySubstitution().Extend(x, a)
	addition, _ := EmptySubstitution().Extend(y, b)

	merged, ok := mergeSubstitutions(base, addition)
	if !ok {
		t.Fatal("expected merge of disjoint bindings to succeed")
	}
	if bx, _ := merged.Lookup(x); !bx.Equal(a) {
		t.Fatalf("expected X still bound to a, got %v", bx)
	}
	if by, _ := merged.Lookup(y); !by.Equal(b) {
		t.Fatalf("expected Y bound to b, got %v", by)
	}
}

func TestMergeSubstitutions_OccursCheckFailurePropagates(t *testing.T) {
	x := NewVariableDeclaration(StringIdentifier("X"))
	y := NewVariableDeclaration(StringIdentifier("Y"))

	// base binds Y -> f(X); addition, considered alone, only binds X -> Y
	// (no self-cycle on its own). Merged, they form the cycle
	// X -> Y -> f(X) -> X, which only the merge can detect.
	base, err := EmptySubstitution().Extend(y, NewFunction(StringIdentifier("f"), NewVariableReference(x)))
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}
	addition := EmptySubstitution().rawExtend(x, NewVariableReference(y))

	if _, ok := mergeSubstitutions(base, addition); ok {
		t.Fatal("expected merge to detect the indirect cycle")
	}
}
