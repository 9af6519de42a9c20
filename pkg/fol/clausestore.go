package fol

import (
	"fmt"
	"sort"
	"sync"
)

// SimpleClauseStore is the set-of-clauses store of spec.md §4.F: safe for
// concurrent reads, with writes coordinated by a single lock. Internally it
// follows the teacher's pldb.go Database discipline — every write replaces
// the backing slice and index wholesale rather than mutating it in place —
// so a reader that has already taken a snapshot under RLock never observes
// a partially-inserted clause, even after releasing the lock.
type SimpleClauseStore struct {
	mu      sync.RWMutex
	clauses []CNFClause
	byHash  map[uint64][]int
	cfg     EngineConfig
}

// NewSimpleClauseStore builds an empty store governed by cfg.
func NewSimpleClauseStore(cfg EngineConfig) *SimpleClauseStore {
	return &SimpleClauseStore{byHash: map[uint64][]int{}, cfg: cfg}
}

// Add inserts c, returning false if an equal clause is already present, or
// (when cfg.SubsumeOnAdd is set) if some stored clause already subsumes c.
func (s *SimpleClauseStore) Add(c CNFClause) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(c)
}

func (s *SimpleClauseStore) addLocked(c CNFClause) bool {
	h := c.Hash()
	for _, i := range s.byHash[h] {
		if s.clauses[i].Equal(c) {
			return false
		}
	}
	if s.cfg.SubsumeOnAdd {
		for _, existing := range s.clauses {
			if Subsumes(existing, c) {
				return false
			}
		}
	}

	newClauses := make([]CNFClause, len(s.clauses)+1)
	copy(newClauses, s.clauses)
	newClauses[len(s.clauses)] = c

	newByHash := make(map[uint64][]int, len(s.byHash)+1)
	for k, v := range s.byHash {
		newByHash[k] = v
	}
	newByHash[h] = append(append([]int{}, newByHash[h]...), len(s.clauses))

	s.clauses = newClauses
	s.byHash = newByHash
	return true
}

// Remove deletes c from the store, if present. Used by subsumption-filtered
// callers for backward subsumption (removing clauses the new addition makes
// redundant).
func (s *SimpleClauseStore) Remove(c CNFClause) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(c)
}

func (s *SimpleClauseStore) removeLocked(c CNFClause) bool {
	idx := -1
	for i, existing := range s.clauses {
		if existing.Equal(c) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}

	newClauses := make([]CNFClause, 0, len(s.clauses)-1)
	newClauses = append(newClauses, s.clauses[:idx]...)
	newClauses = append(newClauses, s.clauses[idx+1:]...)

	newByHash := map[uint64][]int{}
	for i, cl := range newClauses {
		h := cl.Hash()
		newByHash[h] = append(newByHash[h], i)
	}

	s.clauses = newClauses
	s.byHash = newByHash
	return true
}

// Iterate returns every stored clause, in a stable but otherwise
// unspecified order. The returned slice is a point-in-time snapshot; later
// writes to the store never retroactively change it.
func (s *SimpleClauseStore) Iterate() []CNFClause {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]CNFClause, len(s.clauses))
	copy(out, s.clauses)
	return out
}

// Len reports the number of stored clauses.
func (s *SimpleClauseStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clauses)
}

// FindResolvents returns every valid binary resolvent between c and some
// clause already in the store (spec.md §4.F). Each candidate partner is
// restandardized apart from c before resolution is attempted, so a shared
// variable declaration between c and a stored clause never causes a
// spurious (or spuriously blocked) unification.
func (s *SimpleClauseStore) FindResolvents(c CNFClause) []CNFClause {
	stored := s.Iterate()
	var out []CNFClause
	for _, d := range stored {
		out = append(out, resolveClausePair(c, d)...)
	}
	return out
}

// resolveClausePair computes every binary resolvent of c and d (spec.md
// §4.H): for each complementary literal pair (l ∈ c, l′ ∈ d) whose
// predicates unify under σ, the resolvent is
// apply(σ, (c − {l}) ∪ (d − {l′})).
func resolveClausePair(c, d CNFClause) []CNFClause {
	dStd := restandardizeClause(d)
	var out []CNFClause
	for _, l := range c.Literals() {
		for _, lp := range dStd.Literals() {
			if l.IsNegated == lp.IsNegated {
				continue
			}
			sub, ok := TryUnifyLiterals(
				Literal{Predicate: l.Predicate, IsNegated: false},
				Literal{Predicate: lp.Predicate, IsNegated: false},
			)
			if !ok {
				continue
			}
			merged := c.Remove(l).Union(dStd.Remove(lp))
			out = append(out, ApplyClause(sub, merged))
		}
	}
	return out
}

// Snapshot serializes every stored clause to YAML (spec.md §6: "any stable
// encoding"). This is an in-memory convenience for tests and diagnostics —
// nothing reads a snapshot back automatically.
func (s *SimpleClauseStore) Snapshot() ([]byte, error) {
	return MarshalClauses(s.Iterate())
}

// Restore replaces the store's contents with the clauses encoded in data.
func (s *SimpleClauseStore) Restore(data []byte) error {
	clauses, err := UnmarshalClauses(data)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clauses = nil
	s.byHash = map[uint64][]int{}
	for _, c := range clauses {
		s.addLocked(c)
	}
	return nil
}

// Feature is one (symbol, multiplicity) component of a clause's feature
// vector, as encoded by a FeatureExtractor (spec.md §4.F).
type Feature struct {
	Symbol string
	Count  int
}

// FeatureExtractor summarizes a clause as a feature vector sorted in an
// order consistent with equality: two clauses encoding to the same sorted
// vector must be considered equal by the index's comparer. spec.md §9
// leaves the exact extractor caller-provided; DefaultFeatureExtractor below
// is a reasonable default, not a mandated one.
type FeatureExtractor func(CNFClause) []Feature

// DefaultFeatureExtractor counts literals per (predicate symbol, polarity)
// pair, sorted by symbol. It distinguishes P(x) from ¬P(x) but not, say,
// P(x) from P(y) — a coarse but cheap default suited to pruning candidate
// subsumers before the exact check in varmanip.go's Subsumes.
func DefaultFeatureExtractor(c CNFClause) []Feature {
	counts := map[string]int{}
	for _, l := range c.Literals() {
		key := l.Predicate.ID.String()
		if l.IsNegated {
			key += "!"
		}
		counts[key]++
	}
	symbols := make([]string, 0, len(counts))
	for k := range counts {
		symbols = append(symbols, k)
	}
	sort.Strings(symbols)

	out := make([]Feature, len(symbols))
	for i, sym := range symbols {
		out[i] = Feature{Symbol: sym, Count: counts[sym]}
	}
	return out
}

// featureNode is one node of the feature-vector trie (spec.md §4.F).
type featureNode struct {
	children map[Feature]*featureNode
	value    *CNFClause
	hasValue bool
}

func newFeatureNode() *featureNode {
	return &featureNode{children: map[Feature]*featureNode{}}
}

// getOrAddChild returns the child keyed by key, creating it if absent.
func (n *featureNode) getOrAddChild(key Feature) *featureNode {
	if child, ok := n.children[key]; ok {
		return child
	}
	child := newFeatureNode()
	n.children[key] = child
	return child
}

// deleteChild removes the child keyed by key, if any.
func (n *featureNode) deleteChild(key Feature) {
	delete(n.children, key)
}

// addValue attaches clause's payload to this node. It fails if the node
// already holds a value — the caller is expected to have checked for an
// exact duplicate (by Hash+Equal) before reaching this point, so a
// collision here means two structurally distinct clauses encoded to the
// same feature vector and landed on the same trie node, which is legal
// (the index only narrows candidates) but means this node cannot hold both.
func (n *featureNode) addValue(clause CNFClause) error {
	if n.hasValue {
		return fmt.Errorf("fol: feature-vector index node already occupied: %w", ErrDuplicateClause)
	}
	cc := clause
	n.value = &cc
	n.hasValue = true
	return nil
}

// removeValue detaches this node's payload, if any.
func (n *featureNode) removeValue() {
	n.value = nil
	n.hasValue = false
}

// FeatureVectorIndex is the trie-based subsumption candidate index of
// spec.md §4.F, keyed on the caller-supplied FeatureExtractor. It narrows a
// potentially O(n) subsumption search down to the clauses whose feature
// vector dominates (or is dominated by) the query clause's — exact
// subsumption is still decided by varmanip.go's Subsumes on the narrowed
// candidate set.
type FeatureVectorIndex struct {
	mu        sync.RWMutex
	root      *featureNode
	extractor FeatureExtractor
}

// NewFeatureVectorIndex builds an empty index using extractor.
func NewFeatureVectorIndex(extractor FeatureExtractor) *FeatureVectorIndex {
	return &FeatureVectorIndex{root: newFeatureNode(), extractor: extractor}
}

// Insert adds c to the index at the trie path given by its feature vector.
func (idx *FeatureVectorIndex) Insert(c CNFClause) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	node := idx.root
	for _, f := range idx.extractor(c) {
		node = node.getOrAddChild(f)
	}
	return node.addValue(c)
}

// Remove deletes c's payload from the index, if its feature-vector path
// exists. It does not prune now-empty branches — a rare case given index
// sizes in practice, and harmless: empty branches hold no value and are
// simply never visited by a later domination search that finds no match.
func (idx *FeatureVectorIndex) Remove(c CNFClause) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	node := idx.root
	for _, f := range idx.extractor(c) {
		child, ok := node.children[f]
		if !ok {
			return
		}
		node = child
	}
	node.removeValue()
}

// CandidateSubsumers returns every indexed clause whose feature vector is
// componentwise ≤ c's — the candidates that might subsume c (spec.md §4.F).
func (idx *FeatureVectorIndex) CandidateSubsumers(c CNFClause) []CNFClause {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	target := map[string]int{}
	for _, f := range idx.extractor(c) {
		target[f.Symbol] = f.Count
	}
	var out []CNFClause
	collectDominated(idx.root, target, &out)
	return out
}

// collectDominated gathers every value reachable via a path whose every key
// is componentwise ≤ target. Pruning is sound because a trie path only ever
// accumulates additional (symbol,count) constraints going deeper — once one
// step along the path fails to be dominated, no descendant can recover.
func collectDominated(node *featureNode, target map[string]int, out *[]CNFClause) {
	if node.hasValue {
		*out = append(*out, *node.value)
	}
	for key, child := range node.children {
		if tcount, ok := target[key.Symbol]; ok && key.Count <= tcount {
			collectDominated(child, target, out)
		}
	}
}

// CandidateSubsumees returns every indexed clause whose feature vector is
// componentwise ≥ c's — the candidates c might subsume (spec.md §4.F).
func (idx *FeatureVectorIndex) CandidateSubsumees(c CNFClause) []CNFClause {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	target := map[string]int{}
	for _, f := range idx.extractor(c) {
		target[f.Symbol] = f.Count
	}
	var out []CNFClause
	collectDominating(idx.root, target, &out)
	return out
}

func collectDominating(node *featureNode, target map[string]int, out *[]CNFClause) {
	if node.hasValue {
		*out = append(*out, *node.value)
	}
	for key, child := range node.children {
		if tcount, ok := target[key.Symbol]; !ok || key.Count >= tcount {
			collectDominating(child, target, out)
		}
	}
}

// SubsumptionPolicy controls what SubsumptionFilteredStore.Add does when
// the new clause subsumes existing ones.
type SubsumptionPolicy int

const (
	// KeepSubsumedExisting rejects the add if an existing clause subsumes
	// the new one; otherwise the new clause is added and any existing
	// clauses it subsumes stay in the store.
	KeepSubsumedExisting SubsumptionPolicy = iota
	// ReplaceSubsumedExisting removes clauses the new one subsumes (backward
	// subsumption) once it has been confirmed the new clause is not itself
	// subsumed by something already present.
	ReplaceSubsumedExisting
)

// SubsumptionFilteredStore layers subsumption filtering over a
// SimpleClauseStore using a FeatureVectorIndex to narrow the candidate set
// (spec.md §4.F: "the subsumption-filtered variants are layered above").
type SubsumptionFilteredStore struct {
	mu     sync.Mutex
	store  *SimpleClauseStore
	index  *FeatureVectorIndex
	policy SubsumptionPolicy
}

// NewSubsumptionFilteredStore builds a filtered store over extractor with
// the given replacement policy.
func NewSubsumptionFilteredStore(cfg EngineConfig, extractor FeatureExtractor, policy SubsumptionPolicy) *SubsumptionFilteredStore {
	return &SubsumptionFilteredStore{
		store:  NewSimpleClauseStore(cfg),
		index:  NewFeatureVectorIndex(extractor),
		policy: policy,
	}
}

// Add inserts c unless an existing clause already subsumes it; when policy
// is ReplaceSubsumedExisting, clauses c subsumes are removed first.
func (s *SubsumptionFilteredStore) Add(c CNFClause) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, candidate := range s.index.CandidateSubsumers(c) {
		if Subsumes(candidate, c) {
			return false, nil
		}
	}

	if s.policy == ReplaceSubsumedExisting {
		for _, candidate := range s.index.CandidateSubsumees(c) {
			if Subsumes(c, candidate) {
				s.store.Remove(candidate)
				s.index.Remove(candidate)
			}
		}
	}

	if !s.store.Add(c) {
		return false, nil
	}
	if err := s.index.Insert(c); err != nil {
		s.store.Remove(c)
		return false, err
	}
	return true, nil
}

// Iterate returns every stored clause.
func (s *SubsumptionFilteredStore) Iterate() []CNFClause {
	return s.store.Iterate()
}

// FindResolvents delegates to the underlying SimpleClauseStore.
func (s *SubsumptionFilteredStore) FindResolvents(c CNFClause) []CNFClause {
	return s.store.FindResolvents(c)
}

// Len reports the number of stored clauses.
func (s *SubsumptionFilteredStore) Len() int {
	return s.store.Len()
}

// Snapshot delegates to the underlying SimpleClauseStore.
func (s *SubsumptionFilteredStore) Snapshot() ([]byte, error) {
	return s.store.Snapshot()
}

// Restore replaces this store's contents, rebuilding the feature-vector
// index from scratch alongside the underlying store.
func (s *SubsumptionFilteredStore) Restore(data []byte) error {
	clauses, err := UnmarshalClauses(data)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store = NewSimpleClauseStore(s.store.cfg)
	s.index = NewFeatureVectorIndex(s.index.extractor)
	for _, c := range clauses {
		s.store.Add(c)
		_ = s.index.Insert(c)
	}
	return nil
}
