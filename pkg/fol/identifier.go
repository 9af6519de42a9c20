package fol

import (
	"crypto/rand"
	"fmt"
	"sync"

	"github.com/oklog/ulid/v2"
)

// Identifier is any value usable as a predicate, function, variable, or
// constant name. Callers may use interned strings, integers, or their own
// structured keys — anything satisfying this interface.
type Identifier interface {
	// Equal reports whether this identifier denotes the same symbol as other.
	Equal(other Identifier) bool
	// Hash must be consistent with Equal: a.Equal(b) implies a.Hash() == b.Hash().
	Hash() uint64
	String() string
}

// StringIdentifier is the common case: an opaque, interned string label.
// Two StringIdentifiers are equal iff their strings are equal.
type StringIdentifier string

// Equal implements Identifier.
func (s StringIdentifier) Equal(other Identifier) bool {
	o, ok := other.(StringIdentifier)
	return ok && s == o
}

// Hash implements Identifier.
func (s StringIdentifier) Hash() uint64 {
	return fnvHashString(string(s))
}

// String implements Identifier and fmt.Stringer.
func (s StringIdentifier) String() string {
	return string(s)
}

// reservedIdentifier is a sentinel kind never equal to any identifier
// constructed outside this package, including another reservedIdentifier
// instance. It exists so that normalization-internal bookkeeping (e.g. a
// "no identifier" placeholder) can never collide with a user label that
// happens to print identically.
type reservedIdentifier struct{ tag string }

func (r *reservedIdentifier) Equal(other Identifier) bool { return r == other }
func (r *reservedIdentifier) Hash() uint64                { return fnvHashString("reserved:" + r.tag) }
func (r *reservedIdentifier) String() string              { return "<reserved:" + r.tag + ">" }

// ReservedSentinel returns a fresh reserved identifier that compares unequal
// to every other identifier, including other reserved sentinels. It backs
// the equality predicate described in spec.md §6.
func ReservedSentinel(tag string) Identifier {
	return &reservedIdentifier{tag: tag}
}

var idEntropy = ulid.Monotonic(rand.Reader, 0)
var idEntropyMu sync.Mutex

func newULID() ulid.ULID {
	idEntropyMu.Lock()
	defer idEntropyMu.Unlock()
	return ulid.MustNew(ulid.Now(), idEntropy)
}

// StandardisedVariableIdentifier is the fresh identifier produced by
// standardize-apart (CNF normalizer step 3). It carries a back-pointer to
// the VariableDeclaration it replaced and to the Sentence the rewrite was
// performed on, for diagnostics. Equality is reference (pointer) identity
// only — the printed label is for humans, never for comparison.
type StandardisedVariableIdentifier struct {
	label      ulid.ULID
	OriginalAt *VariableDeclaration
	FromSentence Sentence
}

// NewStandardisedVariableIdentifier creates a fresh standardised identifier
// pointing back at the declaration it replaces.
func NewStandardisedVariableIdentifier(original *VariableDeclaration, from Sentence) *StandardisedVariableIdentifier {
	return &StandardisedVariableIdentifier{label: newULID(), OriginalAt: original, FromSentence: from}
}

// Equal implements Identifier via pointer identity.
func (s *StandardisedVariableIdentifier) Equal(other Identifier) bool {
	o, ok := other.(*StandardisedVariableIdentifier)
	return ok && s == o
}

// Hash implements Identifier.
func (s *StandardisedVariableIdentifier) Hash() uint64 {
	return fnvHashString("std:" + s.label.String())
}

func (s *StandardisedVariableIdentifier) String() string {
	return fmt.Sprintf("_S%s", s.label.String())
}

// SkolemFunctionIdentifier is the fresh function/constant symbol produced by
// Skolemization. It carries a back-pointer to the existential quantifier it
// replaced. Equality is reference identity, like StandardisedVariableIdentifier.
type SkolemFunctionIdentifier struct {
	label     ulid.ULID
	Replaced  *ExistentialQuantification
}

// NewSkolemFunctionIdentifier creates a fresh Skolem identifier for the
// given existential quantification.
func NewSkolemFunctionIdentifier(replaced *ExistentialQuantification) *SkolemFunctionIdentifier {
	return &SkolemFunctionIdentifier{label: newULID(), Replaced: replaced}
}

// Equal implements Identifier via pointer identity.
func (s *SkolemFunctionIdentifier) Equal(other Identifier) bool {
	o, ok := other.(*SkolemFunctionIdentifier)
	return ok && s == o
}

// Hash implements Identifier.
func (s *SkolemFunctionIdentifier) Hash() uint64 {
	return fnvHashString("sk:" + s.label.String())
}

func (s *SkolemFunctionIdentifier) String() string {
	return fmt.Sprintf("sk%s", s.label.String())
}
