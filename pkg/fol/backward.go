package fol

import (
	"context"
	"fmt"
	"sync"
)

// ProofStep records one resolved goal of a backward-chaining proof: the
// clause used, the substitution accumulated up to and including this step,
// and the sub-proofs for each of the clause's body literals (spec.md
// §4.G). A definite clause with an empty body (a fact) has no SubProofs.
type ProofStep struct {
	Goal         Literal
	Clause       CNFClause
	Substitution *Substitution
	SubProofs    []*ProofStep
}

// Solution pairs a satisfying substitution with the proof that justified
// it. Asking a goal with a free variable yields one Solution per way the
// goal can be proved (spec.md §6: "free query variable ... collection of
// satisfying substitutions").
type Solution struct {
	Substitution *Substitution
	Proof        *ProofStep
}

// BackwardChainEngine proves goals against a Horn/definite-clause knowledge
// base by depth-first SLD resolution (spec.md §4.G). Clauses are indexed
// by head predicate symbol for O(1) candidate retrieval; the index itself
// follows the same copy-on-write-on-write discipline as SimpleClauseStore.
type BackwardChainEngine struct {
	mu     sync.RWMutex
	byHead map[string][]CNFClause
	tracer Tracer
}

// NewBackwardChainEngine builds an empty engine. A nil tracer is replaced
// with NoopTracer.
func NewBackwardChainEngine(tracer Tracer) *BackwardChainEngine {
	if tracer == nil {
		tracer = NoopTracer{}
	}
	return &BackwardChainEngine{byHead: map[string][]CNFClause{}, tracer: tracer}
}

// Tell adds a definite clause to the knowledge base. Non-definite clauses
// are rejected synchronously, leaving the engine's state unchanged (spec.md
// §7: malformed input is reported, not swallowed).
func (e *BackwardChainEngine) Tell(c CNFClause) error {
	head, ok := c.DefiniteHead()
	if !ok {
		return fmt.Errorf("fol: backward chaining tell: %w", ErrNotDefiniteClause)
	}

	key := head.Predicate.ID.String()
	e.mu.Lock()
	defer e.mu.Unlock()
	existing := e.byHead[key]
	updated := make([]CNFClause, len(existing)+1)
	copy(updated, existing)
	updated[len(existing)] = c
	e.byHead[key] = updated
	return nil
}

// Ask proves goal against the knowledge base, returning every satisfying
// Solution found by exhaustive depth-first search. ctx is checked between
// successive clause retrievals (spec.md §5); a cancelled context surfaces
// ErrCancelled rather than a false "not proved".
func (e *BackwardChainEngine) Ask(ctx context.Context, goal Literal) ([]Solution, error) {
	return e.proveGoal(ctx, goal, EmptySubstitution())
}

func (e *BackwardChainEngine) proveGoal(ctx context.Context, goal Literal, sub *Substitution) ([]Solution, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fol: backward chaining ask: %w: %v", ErrCancelled, err)
	}

	goalApplied := ApplyLiteral(sub, goal)
	key := goalApplied.Predicate.ID.String()

	e.mu.RLock()
	candidates := append([]CNFClause(nil), e.byHead[key]...)
	e.mu.RUnlock()

	var solutions []Solution
	for _, c := range candidates {
		// Re-standardized per attempt (spec.md §4.G: "iterative
		// re-standardization of each used clause to avoid variable
		// capture") — reusing the same clause across two branches of the
		// search must never let one branch's bindings leak into another.
		std := restandardizeClause(c)
		head, _ := std.DefiniteHead()

		unified, ok := TryUnifyLiterals(
			Literal{Predicate: goalApplied.Predicate, IsNegated: false},
			Literal{Predicate: head.Predicate, IsNegated: false},
		)
		if !ok {
			continue
		}
		merged, ok := mergeSubstitutions(sub, unified)
		if !ok {
			continue
		}

		e.tracer.Trace(TraceEvent{Kind: TraceProofStep, Goal: goalApplied, Clause: std})

		finalSubs, proofLists, err := e.proveConjuncts(ctx, std.DefiniteBody(), merged)
		if err != nil {
			return nil, err
		}
		for i, finalSub := range finalSubs {
			solutions = append(solutions, Solution{
				Substitution: finalSub,
				Proof: &ProofStep{
					Goal:         goalApplied,
					Clause:       std,
					Substitution: finalSub,
					SubProofs:    proofLists[i],
				},
			})
		}
	}
	return solutions, nil
}

// proveConjuncts proves body left-to-right, accumulating σ across
// conjuncts and backtracking over every combination of sub-solutions — the
// Cartesian product of each literal's solution set, as SLD resolution
// requires.
func (e *BackwardChainEngine) proveConjuncts(ctx context.Context, body []Literal, sub *Substitution) ([]*Substitution, [][]*ProofStep, error) {
	if len(body) == 0 {
		return []*Substitution{sub}, [][]*ProofStep{nil}, nil
	}

	first, rest := body[0], body[1:]
	firstSolutions, err := e.proveGoal(ctx, first, sub)
	if err != nil {
		return nil, nil, err
	}

	var subs []*Substitution
	var proofLists [][]*ProofStep
	for _, sol := range firstSolutions {
		restSubs, restProofLists, err := e.proveConjuncts(ctx, rest, sol.Substitution)
		if err != nil {
			return nil, nil, err
		}
		for i, rs := range restSubs {
			subs = append(subs, rs)
			proofLists = append(proofLists, append([]*ProofStep{sol.Proof}, restProofLists[i]...))
		}
	}
	return subs, proofLists, nil
}
