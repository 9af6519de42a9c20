package fol

import (
	"context"
	"fmt"
	"sync"

	"github.com/gitrdm/folkit/internal/workerpool"
)

// ResolutionOutcome is the result of a single resolution refutation attempt.
// It is finer-grained than the KnowledgeBase-level tri-state (spec.md §6:
// "result: tri-state(proved | disproved | unknown)"): OutcomeNotProved is a
// sound "disproved" (the search exhausted itself), while
// OutcomeBudgetExhausted and OutcomeCancelled both collapse to "unknown" —
// the search was cut short, not completed.
type ResolutionOutcome int

const (
	OutcomeUnknown ResolutionOutcome = iota
	OutcomeProved
	// OutcomeNotProved means the search exhausted itself naturally: the
	// support queue ran dry with no empty clause derived. Resolution is
	// refutation-complete, so this is a sound conclusion that the query is
	// not entailed — not merely a search that gave up.
	OutcomeNotProved
	// OutcomeBudgetExhausted means EngineConfig.ResolutionLimit was hit
	// before the queue ran dry: the search was cut short, so no conclusion
	// follows either way.
	OutcomeBudgetExhausted
	OutcomeCancelled
)

func (o ResolutionOutcome) String() string {
	switch o {
	case OutcomeProved:
		return "proved"
	case OutcomeNotProved:
		return "not proved"
	case OutcomeBudgetExhausted:
		return "budget exhausted"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ResolutionStep is one derivation recorded in a ResolutionTrace: Resolvent
// was derived by resolving Left against Right.
type ResolutionStep struct {
	Left, Right CNFClause
	Resolvent   CNFClause
}

// ResolutionTrace is the explanation of a resolution refutation, suitable
// for reconstructing the refutation graph (spec.md §4.H).
type ResolutionTrace struct {
	Steps []ResolutionStep
}

// ResolutionEngine performs general CNF refutation via set-of-support
// binary resolution with breadth-first expansion (spec.md §4.H).
type ResolutionEngine struct {
	cfg    EngineConfig
	tracer Tracer
}

// NewResolutionEngine builds an engine governed by cfg. A nil tracer is
// replaced with NoopTracer; a non-positive MaxWorkers is treated as 1 (the
// worker pool itself defaults non-positive counts to runtime.NumCPU(), but
// a refutation attempt should not silently get more parallelism than the
// caller configured).
func NewResolutionEngine(cfg EngineConfig, tracer Tracer) *ResolutionEngine {
	if tracer == nil {
		tracer = NoopTracer{}
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 1
	}
	return &ResolutionEngine{cfg: cfg, tracer: tracer}
}

// Refute attempts to derive the empty clause from kb ∪ cnf(¬query) by
// binary resolution, using query's negation as the set-of-support seed
// (spec.md §4.H). It returns as soon as the empty clause is derived, the
// search is exhausted, or ctx is cancelled.
func (e *ResolutionEngine) Refute(ctx context.Context, kb []CNFClause, query Sentence) (ResolutionOutcome, ResolutionTrace, error) {
	seedCNF, err := Normalize(NewNegation(query))
	if err != nil {
		return OutcomeUnknown, ResolutionTrace{}, err
	}

	// The queue holds only support-set clauses: it is seeded from cnf(¬query)
	// and every derived resolvent is enqueued too, since a resolvent's
	// "given" parent (dequeued from this very queue) is always itself in
	// the support set — so every pair this loop considers has at least one
	// side in the support set, satisfying spec.md §4.H's search strategy
	// without needing a separate membership set.
	store := NewSubsumptionFilteredStore(e.cfg, DefaultFeatureExtractor, ReplaceSubsumedExisting)
	var queue []CNFClause

	for _, c := range kb {
		if c.IsTautology() {
			continue
		}
		if _, err := store.Add(c); err != nil {
			return OutcomeUnknown, ResolutionTrace{}, err
		}
	}
	for _, c := range seedCNF.Clauses() {
		if c.IsEmpty() {
			// ¬query is unsatisfiable on its own: query is valid.
			return OutcomeProved, ResolutionTrace{}, nil
		}
		if c.IsTautology() {
			continue
		}
		added, err := store.Add(c)
		if err != nil {
			return OutcomeUnknown, ResolutionTrace{}, err
		}
		if added {
			queue = append(queue, c)
		}
	}

	pool := workerpool.New(e.cfg.MaxWorkers)
	defer pool.Shutdown()

	var trace ResolutionTrace
	steps := 0

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			e.tracer.Trace(TraceEvent{Kind: TraceCancelled, Detail: err.Error()})
			return OutcomeCancelled, trace, fmt.Errorf("fol: resolution: %w: %v", ErrCancelled, err)
		}
		if e.cfg.ResolutionLimit > 0 && steps >= e.cfg.ResolutionLimit {
			return OutcomeBudgetExhausted, trace, nil
		}

		given := queue[0]
		queue = queue[1:]
		partners := store.Iterate()

		type candidate struct {
			resolvent CNFClause
			partner   CNFClause
		}
		results := make(chan candidate, len(partners)*2+1)
		var wg sync.WaitGroup

		for _, partner := range partners {
			partner := partner
			wg.Add(1)
			task := func() {
				defer wg.Done()
				for _, r := range resolveClausePair(given, partner) {
					if r.IsTautology() {
						continue
					}
					results <- candidate{resolvent: r, partner: partner}
				}
			}
			if err := pool.Submit(ctx, task); err != nil {
				wg.Done()
			}
		}
		wg.Wait()
		close(results)

		storeIter := store.Iterate() // snapshot for the UnifiesWithAnyOf redundancy check, taken once per given clause
		for cand := range results {
			steps++

			if cand.resolvent.IsEmpty() {
				trace.Steps = append(trace.Steps, ResolutionStep{Left: given, Right: cand.partner, Resolvent: cand.resolvent})
				e.tracer.Trace(TraceEvent{Kind: TraceResolutionStep, Clause: cand.resolvent, Detail: "empty clause: refutation complete"})
				return OutcomeProved, trace, nil
			}
			if UnifiesWithAnyOf(cand.resolvent, storeIter) {
				continue
			}

			added, err := store.Add(cand.resolvent)
			if err != nil {
				return OutcomeUnknown, trace, err
			}
			if !added {
				continue
			}

			trace.Steps = append(trace.Steps, ResolutionStep{Left: given, Right: cand.partner, Resolvent: cand.resolvent})
			e.tracer.Trace(TraceEvent{
				Kind:   TraceResolutionStep,
				Clause: cand.resolvent,
				Detail: fmt.Sprintf("from %s and %s", given, cand.partner),
			})

			queue = append(queue, cand.resolvent)
			storeIter = append(storeIter, cand.resolvent)
		}
	}

	return OutcomeNotProved, trace, nil
}
