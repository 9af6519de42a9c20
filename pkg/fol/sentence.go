package fol

import "strings"

// Sentence is the sealed sum type of first-order sentences. All variants
// are immutable value types after construction; isSentence is unexported
// so no external package can add a variant — the CNF normalizer's
// exhaustive case analysis depends on that closure.
type Sentence interface {
	Equal(other Sentence) bool
	Hash() uint64
	String() string
	isSentence()
}

// Predicate is an atomic sentence: a named relation applied to an ordered
// list of argument terms. Argument order is significant.
type Predicate struct {
	ID   Identifier
	Args []Term
}

// NewPredicate builds a Predicate sentence.
func NewPredicate(id Identifier, args ...Term) Predicate {
	copied := make([]Term, len(args))
	copy(copied, args)
	return Predicate{ID: id, Args: copied}
}

func (p Predicate) isSentence() {}

func (p Predicate) Equal(other Sentence) bool {
	o, ok := other.(Predicate)
	if !ok || !p.ID.Equal(o.ID) || len(p.Args) != len(o.Args) {
		return false
	}
	for i := range p.Args {
		if !p.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

func (p Predicate) Hash() uint64 {
	hashes := make([]uint64, 0, len(p.Args)+2)
	hashes = append(hashes, fnvHashString("pred"), p.ID.Hash())
	for _, a := range p.Args {
		hashes = append(hashes, a.Hash())
	}
	return combineOrdered(hashes...)
}

func (p Predicate) String() string {
	if len(p.Args) == 0 {
		return p.ID.String()
	}
	parts := make([]string, len(p.Args))
	for i, a := range p.Args {
		parts[i] = a.String()
	}
	return p.ID.String() + "(" + strings.Join(parts, ", ") + ")"
}

// Negation is the logical negation of a sentence.
type Negation struct {
	Operand Sentence
}

// NewNegation builds a Negation sentence.
func NewNegation(operand Sentence) Negation { return Negation{Operand: operand} }

func (n Negation) isSentence() {}

func (n Negation) Equal(other Sentence) bool {
	o, ok := other.(Negation)
	return ok && n.Operand.Equal(o.Operand)
}

func (n Negation) Hash() uint64 {
	return combineOrdered(fnvHashString("not"), n.Operand.Hash())
}

func (n Negation) String() string { return "¬" + n.Operand.String() }

// binaryCommutative is shared plumbing for Conjunction, Disjunction, and
// Equivalence: all three are equal under swapping their two operands, and
// must hash accordingly (spec.md §3).
type binaryCommutative struct {
	Left, Right Sentence
}

func (b binaryCommutative) equal(tag string, other binaryCommutative) bool {
	return (b.Left.Equal(other.Left) && b.Right.Equal(other.Right)) ||
		(b.Left.Equal(other.Right) && b.Right.Equal(other.Left))
}

func (b binaryCommutative) hash(tag string) uint64 {
	return combineOrdered(fnvHashString(tag), combineCommutative(b.Left.Hash(), b.Right.Hash()))
}

// Conjunction is the logical AND of two sentences; operand order does not
// affect equality or hash.
type Conjunction struct{ binaryCommutative }

// NewConjunction builds a Conjunction sentence.
func NewConjunction(left, right Sentence) Conjunction {
	return Conjunction{binaryCommutative{Left: left, Right: right}}
}

func (c Conjunction) isSentence() {}

func (c Conjunction) Equal(other Sentence) bool {
	o, ok := other.(Conjunction)
	return ok && c.equal("and", o.binaryCommutative)
}

func (c Conjunction) Hash() uint64 { return c.hash("and") }

func (c Conjunction) String() string {
	return "(" + c.Left.String() + " ∧ " + c.Right.String() + ")"
}

// Disjunction is the logical OR of two sentences; operand order does not
// affect equality or hash.
type Disjunction struct{ binaryCommutative }

// NewDisjunction builds a Disjunction sentence.
func NewDisjunction(left, right Sentence) Disjunction {
	return Disjunction{binaryCommutative{Left: left, Right: right}}
}

func (d Disjunction) isSentence() {}

func (d Disjunction) Equal(other Sentence) bool {
	o, ok := other.(Disjunction)
	return ok && d.equal("or", o.binaryCommutative)
}

func (d Disjunction) Hash() uint64 { return d.hash("or") }

func (d Disjunction) String() string {
	return "(" + d.Left.String() + " ∨ " + d.Right.String() + ")"
}

// Implication is "antecedent implies consequent". Unlike Conjunction and
// Disjunction, the two sides are not interchangeable.
type Implication struct {
	Antecedent, Consequent Sentence
}

// NewImplication builds an Implication sentence.
func NewImplication(antecedent, consequent Sentence) Implication {
	return Implication{Antecedent: antecedent, Consequent: consequent}
}

func (i Implication) isSentence() {}

func (i Implication) Equal(other Sentence) bool {
	o, ok := other.(Implication)
	return ok && i.Antecedent.Equal(o.Antecedent) && i.Consequent.Equal(o.Consequent)
}

func (i Implication) Hash() uint64 {
	return combineOrdered(fnvHashString("implies"), i.Antecedent.Hash(), i.Consequent.Hash())
}

func (i Implication) String() string {
	return "(" + i.Antecedent.String() + " ⇒ " + i.Consequent.String() + ")"
}

// Equivalence is the logical biconditional of two sentences; operand order
// does not affect equality or hash.
type Equivalence struct{ binaryCommutative }

// NewEquivalence builds an Equivalence sentence.
func NewEquivalence(left, right Sentence) Equivalence {
	return Equivalence{binaryCommutative{Left: left, Right: right}}
}

func (e Equivalence) isSentence() {}

func (e Equivalence) Equal(other Sentence) bool {
	o, ok := other.(Equivalence)
	return ok && e.equal("iff", o.binaryCommutative)
}

func (e Equivalence) Hash() uint64 { return e.hash("iff") }

func (e Equivalence) String() string {
	return "(" + e.Left.String() + " ⇔ " + e.Right.String() + ")"
}

// UniversalQuantification is "for all Declaration, Body holds".
type UniversalQuantification struct {
	Declaration *VariableDeclaration
	Body        Sentence
}

// NewUniversalQuantification builds a UniversalQuantification sentence.
func NewUniversalQuantification(decl *VariableDeclaration, body Sentence) UniversalQuantification {
	return UniversalQuantification{Declaration: decl, Body: body}
}

func (u UniversalQuantification) isSentence() {}

func (u UniversalQuantification) Equal(other Sentence) bool {
	o, ok := other.(UniversalQuantification)
	return ok && u.Declaration.Name.Equal(o.Declaration.Name) && u.Body.Equal(o.Body)
}

func (u UniversalQuantification) Hash() uint64 {
	return combineOrdered(fnvHashString("forall"), u.Declaration.Name.Hash(), u.Body.Hash())
}

func (u UniversalQuantification) String() string {
	return "∀" + u.Declaration.Name.String() + "." + u.Body.String()
}

// ExistentialQuantification is "there exists Declaration such that Body holds".
type ExistentialQuantification struct {
	Declaration *VariableDeclaration
	Body        Sentence
}

// NewExistentialQuantification builds an ExistentialQuantification sentence.
func NewExistentialQuantification(decl *VariableDeclaration, body Sentence) ExistentialQuantification {
	return ExistentialQuantification{Declaration: decl, Body: body}
}

func (e ExistentialQuantification) isSentence() {}

func (e ExistentialQuantification) Equal(other Sentence) bool {
	o, ok := other.(ExistentialQuantification)
	return ok && e.Declaration.Name.Equal(o.Declaration.Name) && e.Body.Equal(o.Body)
}

func (e ExistentialQuantification) Hash() uint64 {
	return combineOrdered(fnvHashString("exists"), e.Declaration.Name.Hash(), e.Body.Hash())
}

func (e ExistentialQuantification) String() string {
	return "∃" + e.Declaration.Name.String() + "." + e.Body.String()
}
