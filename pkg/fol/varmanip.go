package fol

import "sync"

// ordinalPool holds the canonical declarations used by Ordinalize, indexed
// by ordinal position. Sharing one pool across every call is what makes
// two separately-ordinalized, alpha-equivalent terms compare Equal: both
// calls resolve their first fresh variable to the very same declaration
// pointer, not merely to declarations with the same printed label.
var (
	ordinalPoolMu sync.Mutex
	ordinalPool   []*VariableDeclaration
)

func canonicalOrdinalDeclaration(i int) *VariableDeclaration {
	ordinalPoolMu.Lock()
	defer ordinalPoolMu.Unlock()
	for len(ordinalPool) <= i {
		n := len(ordinalPool)
		ordinalPool = append(ordinalPool, NewVariableDeclaration(StringIdentifier(ordinalLabel(n))))
	}
	return ordinalPool[i]
}

func ordinalLabel(i int) string {
	digits := "0123456789"
	if i < 10 {
		return "v" + string(digits[i])
	}
	// Rare path for arity-heavy test fixtures; simple decimal formatting
	// without pulling in strconv for a single call site.
	var buf []byte
	for i > 0 {
		buf = append([]byte{digits[i%10]}, buf...)
		i /= 10
	}
	return "v" + string(buf)
}

// ordinalizer assigns ordinal numbers to distinct original declarations in
// first-encounter order.
type ordinalizer struct {
	mapping map[*VariableDeclaration]*VariableDeclaration
	next    int
}

func newOrdinalizer() *ordinalizer {
	return &ordinalizer{mapping: map[*VariableDeclaration]*VariableDeclaration{}}
}

func (o *ordinalizer) canonicalFor(orig *VariableDeclaration) *VariableDeclaration {
	if canon, ok := o.mapping[orig]; ok {
		return canon
	}
	canon := canonicalOrdinalDeclaration(o.next)
	o.next++
	o.mapping[orig] = canon
	return canon
}

func (o *ordinalizer) rewriter() *SentenceRewriter {
	return &SentenceRewriter{
		RewriteTerm: func(t Term) Term {
			ref, ok := t.(VariableReference)
			if !ok {
				return t
			}
			return VariableReference{Declaration: o.canonicalFor(ref.Declaration)}
		},
		RewriteSentence: func(s Sentence) Sentence {
			switch v := s.(type) {
			case UniversalQuantification:
				return UniversalQuantification{Declaration: o.canonicalFor(v.Declaration), Body: v.Body}
			case ExistentialQuantification:
				return ExistentialQuantification{Declaration: o.canonicalFor(v.Declaration), Body: v.Body}
			default:
				return s
			}
		},
	}
}

// skolemPool holds the Skolem identifier minted for each original (i.e.
// pre-standardize-apart) existential declaration ever Skolemized, mirroring
// ordinalPool's sharing trick: two independent Normalize calls over the same
// sentence visit the same original *VariableDeclaration for a given
// existential, even though standardizeApart gives each call its own fresh
// post-standardization declaration. Keying on the original, not the fresh
// one, is what makes the resulting Skolem terms compare pointer-equal (and
// so Equal, per identifier.go's pointer-identity SkolemFunctionIdentifier)
// across independently normalized copies of the same sentence.
var (
	skolemPoolMu sync.Mutex
	skolemPool   = map[*VariableDeclaration]*SkolemFunctionIdentifier{}
)

// canonicalSkolemIdentifier returns the pooled Skolem identifier for the
// existential originally declared by original, minting one on first use.
func canonicalSkolemIdentifier(original *VariableDeclaration, replaced *ExistentialQuantification) *SkolemFunctionIdentifier {
	skolemPoolMu.Lock()
	defer skolemPoolMu.Unlock()
	if id, ok := skolemPool[original]; ok {
		return id
	}
	id := NewSkolemFunctionIdentifier(replaced)
	skolemPool[original] = id
	return id
}

// originalDeclaration unwraps decl to the declaration standardizeApart
// started from, if decl was produced by it (its Name is a
// *StandardisedVariableIdentifier carrying that back-pointer); otherwise
// decl is already original.
func originalDeclaration(decl *VariableDeclaration) *VariableDeclaration {
	if std, ok := decl.Name.(*StandardisedVariableIdentifier); ok {
		return std.OriginalAt
	}
	return decl
}

// Ordinalize returns a canonical renaming of t in which every distinct
// variable is replaced by an integer-indexed declaration assigned in
// first-encounter order (spec.md §4.E). Two terms that are alpha-equivalent
// produce structurally Equal ordinalized forms.
func Ordinalize(t Term) Term {
	return newOrdinalizer().rewriter().Term(t)
}

// OrdinalizeSentence is Ordinalize's sentence-level counterpart; it also
// renames the declarations held directly by quantifier nodes so a
// quantified sentence and its alpha-variants ordinalize identically.
func OrdinalizeSentence(s Sentence) Sentence {
	return newOrdinalizer().rewriter().Sentence(s)
}

// matchTerm performs one-way pattern matching: pattern's variables may be
// bound to arbitrary subterms of target, but target's variables are never
// bound (they are opaque, matched only by identity/equality). This is the
// primitive behind IsInstanceOf, IsGeneralisationOf, and clause Subsumes.
func matchTerm(pattern, target Term, sub *Substitution) (*Substitution, bool) {
	switch p := pattern.(type) {
	case VariableReference:
		if bound, ok := sub.Lookup(p.Declaration); ok {
			return sub, bound.Equal(target)
		}
		return sub.rawExtend(p.Declaration, target), true
	case Constant:
		t, ok := target.(Constant)
		if ok && p.Equal(t) {
			return sub, true
		}
		return nil, false
	case Function:
		t, ok := target.(Function)
		if !ok || !p.ID.Equal(t.ID) || len(p.Args) != len(t.Args) {
			return nil, false
		}
		cur := sub
		for i := range p.Args {
			next, ok := matchTerm(p.Args[i], t.Args[i], cur)
			if !ok {
				return nil, false
			}
			cur = next
		}
		return cur, true
	default:
		return nil, false
	}
}

func matchLiteral(pattern, target Literal, sub *Substitution) (*Substitution, bool) {
	if pattern.IsNegated != target.IsNegated {
		return nil, false
	}
	if !pattern.Predicate.ID.Equal(target.Predicate.ID) || len(pattern.Predicate.Args) != len(target.Predicate.Args) {
		return nil, false
	}
	cur := sub
	for i := range pattern.Predicate.Args {
		next, ok := matchTerm(pattern.Predicate.Args[i], target.Predicate.Args[i], cur)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// IsInstanceOf reports whether there is a substitution σ, defined only on
// variables of y, such that Apply(σ, y) equals x (spec.md §4.E): x is a
// ground/specialized case of y.
func IsInstanceOf(x, y Term) bool {
	_, ok := matchTerm(y, x, EmptySubstitution())
	return ok
}

// IsGeneralisationOf reports whether y is an instance of x, i.e.
// IsGeneralisationOf(x, y) == IsInstanceOf(y, x).
func IsGeneralisationOf(x, y Term) bool {
	return IsInstanceOf(y, x)
}

// Subsumes reports whether there exists a substitution σ such that every
// literal of Apply(σ, c) is present in d (spec.md §4.E). This module
// resolves the Open Question in spec.md §9 by treating the empty clause as
// subsuming nothing — it represents ⊥ and is handled specially by the
// engines (backward.go, resolution.go) rather than through Subsumes.
func Subsumes(c, d CNFClause) bool {
	if c.IsEmpty() {
		return false
	}
	return subsumesSearch(c.Literals(), d, EmptySubstitution())
}

func subsumesSearch(remaining []Literal, d CNFClause, sub *Substitution) bool {
	if len(remaining) == 0 {
		return true
	}
	lit, rest := remaining[0], remaining[1:]
	for _, candidate := range d.Literals() {
		next, ok := matchLiteral(lit, candidate, sub)
		if !ok {
			continue
		}
		if subsumesSearch(rest, d, next) {
			return true
		}
	}
	return false
}

// UnifiesWithAnyOf reports whether some clause in clauses unifies with c as
// a whole: a bijective pairing of c's literals against the other clause's
// literals, where every paired literal unifies under one shared
// substitution (spec.md §4.E). The resolution engine uses this to prune
// tautological or already-represented work.
func UnifiesWithAnyOf(c CNFClause, clauses []CNFClause) bool {
	for _, other := range clauses {
		if unifiesAsWhole(c, other) {
			return true
		}
	}
	return false
}

func unifiesAsWhole(c, other CNFClause) bool {
	if c.Len() != other.Len() {
		return false
	}
	return bijectiveUnify(c.Literals(), other.Literals(), EmptySubstitution())
}

func bijectiveUnify(remaining []Literal, pool []Literal, sub *Substitution) bool {
	if len(remaining) == 0 {
		return true
	}
	lit, rest := remaining[0], remaining[1:]
	for i, candidate := range pool {
		next, ok := tryUnifyLiteralsWithSub(lit, candidate, sub)
		if !ok {
			continue
		}
		remainingPool := make([]Literal, 0, len(pool)-1)
		remainingPool = append(remainingPool, pool[:i]...)
		remainingPool = append(remainingPool, pool[i+1:]...)
		if bijectiveUnify(rest, remainingPool, next) {
			return true
		}
	}
	return false
}
