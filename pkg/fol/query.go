package fol

import (
	"context"
	"fmt"
	"sync"
)

// QueryResult is the tri-state answer to a query (spec.md §6: "result:
// tri-state(proved | disproved | unknown)").
type QueryResult int

const (
	// ResultUnknown means neither engine reached a sound conclusion: the
	// search was cancelled, or cut short by EngineConfig.ResolutionLimit.
	ResultUnknown QueryResult = iota
	ResultProved
	ResultDisproved
)

func (r QueryResult) String() string {
	switch r {
	case ResultProved:
		return "proved"
	case ResultDisproved:
		return "disproved"
	default:
		return "unknown"
	}
}

// Explanation is the evidence behind a Query's result: a backward-chaining
// proof tree when the definite fragment sufficed, or a resolution
// refutation trace otherwise (spec.md §6: "explanation: proof tree |
// derivation trace").
type Explanation struct {
	Proofs []Solution
	Trace  ResolutionTrace
}

// KnowledgeBase ties the backward-chaining engine and the resolution engine
// to a single clause store, presenting the tell/ask interface of spec.md
// §6. A told sentence is normalized to CNF once (through a shared
// NormalizeCache) and fanned out to whichever engines its clauses fit:
// every clause joins the general store backing resolution, and definite
// clauses additionally join the backward-chaining index for its faster,
// proof-producing fast path.
type KnowledgeBase struct {
	mu       sync.RWMutex
	cfg      EngineConfig
	clauses  *SimpleClauseStore
	backward *BackwardChainEngine
	resolver *ResolutionEngine
	cache    *NormalizeCache
	tracer   Tracer
}

// NewKnowledgeBase builds an empty knowledge base governed by cfg, with no
// tracing.
func NewKnowledgeBase(cfg EngineConfig) *KnowledgeBase {
	return NewKnowledgeBaseWithTracer(cfg, NoopTracer{})
}

// NewKnowledgeBaseWithTracer builds an empty knowledge base whose engines
// report through tracer. A nil tracer is replaced with NoopTracer.
func NewKnowledgeBaseWithTracer(cfg EngineConfig, tracer Tracer) *KnowledgeBase {
	if tracer == nil {
		tracer = NoopTracer{}
	}
	cacheSize := cfg.CNFCacheSize
	if cacheSize <= 0 {
		cacheSize = 1
	}
	cache, err := NewNormalizeCache(cacheSize)
	if err != nil {
		// NewNormalizeCache only fails for a non-positive size, which
		// cacheSize above already rules out.
		panic(fmt.Sprintf("fol: unreachable: %v", err))
	}
	return &KnowledgeBase{
		cfg:      cfg,
		clauses:  NewSimpleClauseStore(cfg),
		backward: NewBackwardChainEngine(tracer),
		resolver: NewResolutionEngine(cfg, tracer),
		cache:    cache,
		tracer:   tracer,
	}
}

// Tell normalizes sentence to CNF and adds the resulting clauses to the
// knowledge base, returning the clauses added. A sentence that normalizes
// to clauses already present contributes nothing new but is not an error.
func (kb *KnowledgeBase) Tell(sentence Sentence) ([]CNFClause, error) {
	cnf, err := kb.cache.Normalize(sentence)
	if err != nil {
		return nil, fmt.Errorf("fol: tell: %w", err)
	}

	kb.mu.Lock()
	defer kb.mu.Unlock()

	var added []CNFClause
	for _, c := range cnf.Clauses() {
		if kb.clauses.Add(c) {
			added = append(added, c)
			// A non-definite clause is simply not indexed for backward
			// chaining; it still participates in resolution via kb.clauses.
			_ = kb.backward.Tell(c)
		}
	}
	return added, nil
}

// TellAll calls Tell for each sentence in order, stopping at the first
// error.
func (kb *KnowledgeBase) TellAll(sentences ...Sentence) error {
	for _, s := range sentences {
		if _, err := kb.Tell(s); err != nil {
			return err
		}
	}
	return nil
}

// Query is a handle to a single question asked of a KnowledgeBase. It is
// built by Ask and does not run its search until Execute or ExecuteAsync is
// called (spec.md §6: "ask(sentence) -> query handle").
type Query struct {
	kb       *KnowledgeBase
	sentence Sentence

	mu          sync.Mutex
	executed    bool
	result      QueryResult
	explanation Explanation
	err         error
}

// Ask builds a Query for sentence against kb. The search does not start
// until Execute or ExecuteAsync is called.
func (kb *KnowledgeBase) Ask(sentence Sentence) *Query {
	return &Query{kb: kb, sentence: sentence}
}

// Execute runs the query to completion with no deadline, blocking the
// caller, and returns the settled result.
func (q *Query) Execute() (QueryResult, error) {
	return q.run(context.Background())
}

// ExecuteAsync runs the query in its own goroutine, honoring ctx for
// cancellation, and returns a channel that is closed once Result and
// Explanation are safe to read.
func (q *Query) ExecuteAsync(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		q.run(ctx)
	}()
	return done
}

// Result reports the query's tri-state answer. Before Execute or
// ExecuteAsync completes, it reports ResultUnknown.
func (q *Query) Result() QueryResult {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.result
}

// Explanation reports the proof or refutation trace backing the query's
// result, populated once Execute or ExecuteAsync completes.
func (q *Query) Explanation() Explanation {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.explanation
}

// Err reports any error Execute/ExecuteAsync's run encountered — malformed
// input or cancellation — distinct from a sound ResultUnknown produced by
// an exhausted search budget.
func (q *Query) Err() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.err
}

func (q *Query) run(ctx context.Context) (QueryResult, error) {
	result, explanation, err := q.kb.evaluate(ctx, q.sentence)

	q.mu.Lock()
	q.executed = true
	q.result = result
	q.explanation = explanation
	q.err = err
	q.mu.Unlock()

	return result, err
}

// evaluate answers sentence against kb. A bare positive literal is tried
// against the backward-chaining fast path first, since it produces an
// actual proof tree and is typically far cheaper than a general refutation;
// any other sentence shape, or a literal the definite fragment could not
// prove, falls through to resolution refutation over the full clause set.
func (kb *KnowledgeBase) evaluate(ctx context.Context, sentence Sentence) (QueryResult, Explanation, error) {
	if pred, ok := sentence.(Predicate); ok {
		solutions, err := kb.backward.Ask(ctx, NewLiteral(pred, false))
		if err != nil {
			return ResultUnknown, Explanation{}, fmt.Errorf("fol: ask: %w", err)
		}
		if len(solutions) > 0 {
			return ResultProved, Explanation{Proofs: solutions}, nil
		}
	}

	kb.mu.RLock()
	kbClauses := kb.clauses.Iterate()
	kb.mu.RUnlock()

	outcome, trace, err := kb.resolver.Refute(ctx, kbClauses, sentence)
	if err != nil {
		return ResultUnknown, Explanation{Trace: trace}, fmt.Errorf("fol: ask: %w", err)
	}

	switch outcome {
	case OutcomeProved:
		return ResultProved, Explanation{Trace: trace}, nil
	case OutcomeNotProved:
		return ResultDisproved, Explanation{Trace: trace}, nil
	default: // OutcomeBudgetExhausted, OutcomeCancelled, OutcomeUnknown
		return ResultUnknown, Explanation{Trace: trace}, nil
	}
}
