package fol

import (
	"context"
	"testing"
	"time"
)

// TestKnowledgeBase_CrimeDomain exercises the backward-chaining fast path
// end to end (spec.md §8 S1): West is a criminal because he sold weapons to
// a hostile nation.
func TestKnowledgeBase_CrimeDomain(t *testing.T) {
	america := NewConstant(StringIdentifier("America"))
	west := NewConstant(StringIdentifier("West"))
	m1 := NewConstant(StringIdentifier("M1"))
	nono := NewConstant(StringIdentifier("Nono"))

	x := NewVariableDeclaration(StringIdentifier("x"))
	y := NewVariableDeclaration(StringIdentifier("y"))
	z := NewVariableDeclaration(StringIdentifier("z"))
	xr, yr, zr := NewVariableReference(x), NewVariableReference(y), NewVariableReference(z)

	american := func(t Term) Predicate { return NewPredicate(StringIdentifier("American"), t) }
	weapon := func(t Term) Predicate { return NewPredicate(StringIdentifier("Weapon"), t) }
	hostile := func(t Term) Predicate { return NewPredicate(StringIdentifier("Hostile"), t) }
	sells := func(a, b, c Term) Predicate { return NewPredicate(StringIdentifier("Sells"), a, b, c) }
	enemyOfAmerica := func(t Term) Predicate { return NewPredicate(StringIdentifier("Enemy"), t, america) }
	criminal := func(t Term) Predicate { return NewPredicate(StringIdentifier("Criminal"), t) }

	criminalRule := NewUniversalQuantification(x, NewUniversalQuantification(y, NewUniversalQuantification(z,
		NewImplication(
			NewConjunction(american(xr), NewConjunction(weapon(yr), NewConjunction(sells(xr, yr, zr), hostile(zr)))),
			criminal(xr),
		))))
	hostileRule := NewUniversalQuantification(x, NewImplication(enemyOfAmerica(xr), hostile(xr)))

	kb := NewKnowledgeBase(DefaultEngineConfig())
	if err := kb.TellAll(
		criminalRule,
		hostileRule,
		american(west),
		weapon(m1),
		sells(west, m1, nono),
		enemyOfAmerica(nono),
	); err != nil {
		t.Fatalf("TellAll: %v", err)
	}

	q := kb.Ask(criminal(west))
	result, err := q.Execute()
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result != ResultProved {
		t.Fatalf("got %v, want proved", result)
	}
	if len(q.Explanation().Proofs) == 0 {
		t.Fatal("expected at least one proof in the explanation")
	}
}

// TestKnowledgeBase_ResolutionProved exercises the resolution fallback
// (spec.md §8 S6): from P(a) ∨ Q(a) and ¬Q(a), P(a) is entailed, but is not
// itself a definite-clause consequence of a Horn KB.
func TestKnowledgeBase_ResolutionProved(t *testing.T) {
	a := NewConstant(StringIdentifier("a"))
	p := NewPredicate(StringIdentifier("P"), a)
	q := NewPredicate(StringIdentifier("Q"), a)

	kb := NewKnowledgeBase(DefaultEngineConfig())
	if err := kb.TellAll(NewDisjunction(p, q), NewNegation(q)); err != nil {
		t.Fatalf("TellAll: %v", err)
	}

	result, err := kb.Ask(p).Execute()
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result != ResultProved {
		t.Fatalf("got %v, want proved", result)
	}
}

// TestKnowledgeBase_ResolutionDisproved confirms that an exhausted search
// with no empty clause derived reports "disproved", not merely "unknown".
func TestKnowledgeBase_ResolutionDisproved(t *testing.T) {
	a := NewConstant(StringIdentifier("a"))
	p := NewPredicate(StringIdentifier("P"), a)
	q := NewPredicate(StringIdentifier("Q"), a)

	kb := NewKnowledgeBase(DefaultEngineConfig())
	if err := kb.TellAll(p); err != nil {
		t.Fatalf("TellAll: %v", err)
	}

	result, err := kb.Ask(q).Execute()
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result != ResultDisproved {
		t.Fatalf("got %v, want disproved", result)
	}
}

// TestKnowledgeBase_ExecuteAsyncCancellation confirms a cancelled context
// surfaces ResultUnknown plus an error, not a false "disproved".
func TestKnowledgeBase_ExecuteAsyncCancellation(t *testing.T) {
	a := NewConstant(StringIdentifier("a"))
	p := NewPredicate(StringIdentifier("P"), a)

	kb := NewKnowledgeBase(DefaultEngineConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	q := kb.Ask(p)
	select {
	case <-q.ExecuteAsync(ctx):
	case <-time.After(time.Second):
		t.Fatal("ExecuteAsync did not complete")
	}

	if q.Result() != ResultUnknown {
		t.Fatalf("got %v, want unknown", q.Result())
	}
	if q.Err() == nil {
		t.Fatal("expected a cancellation error")
	}
}

// TestKnowledgeBase_BudgetExhaustedIsUnknownNotDisproved confirms that
// cutting a search short via ResolutionLimit reports "unknown" rather than
// the sound "disproved" a naturally exhausted search would report.
func TestKnowledgeBase_BudgetExhaustedIsUnknownNotDisproved(t *testing.T) {
	a := NewConstant(StringIdentifier("a"))
	p := NewPredicate(StringIdentifier("P"), a)
	q := NewPredicate(StringIdentifier("Q"), a)
	r := NewPredicate(StringIdentifier("R"), a)

	// P(a) ∨ Q(a), ¬P(a) ∨ R(a), ¬Q(a) ∨ R(a) ⊢ R(a) in two resolution
	// steps; capping the budget at one step cuts the search off before
	// either step lands, let alone before the empty clause would appear.
	cfg := DefaultEngineConfig()
	cfg.ResolutionLimit = 1

	kb := NewKnowledgeBase(cfg)
	if err := kb.TellAll(NewDisjunction(p, q), NewDisjunction(NewNegation(p), r), NewDisjunction(NewNegation(q), r)); err != nil {
		t.Fatalf("TellAll: %v", err)
	}

	result, err := kb.Ask(r).Execute()
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result != ResultUnknown {
		t.Fatalf("got %v, want unknown", result)
	}
}
