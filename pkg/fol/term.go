package fol

import "strings"

// Term is the sealed sum type of first-order terms: Constant,
// VariableReference, or Function. All three variants are immutable value
// types after construction; no user-defined variant is possible because
// isTerm is unexported.
type Term interface {
	Equal(other Term) bool
	Hash() uint64
	String() string
	isTerm()
}

// VariableDeclaration names a variable bound by an enclosing quantifier.
// Declarations are distinct from VariableReference: a rewrite that swaps
// one Term for another inside a reference never touches the declaration it
// was bound by. Substitutions and the unifier key on the declaration
// pointer; VariableReference and quantifier equality instead compare
// declarations by Name (see VariableReference).
type VariableDeclaration struct {
	Name Identifier
}

// NewVariableDeclaration creates a fresh declaration. Quantifier nodes hold
// exactly one of these; VariableReference nodes point back at it.
func NewVariableDeclaration(name Identifier) *VariableDeclaration {
	return &VariableDeclaration{Name: name}
}

// Constant is a nullary, ground term.
type Constant struct {
	ID Identifier
}

// NewConstant builds a Constant term.
func NewConstant(id Identifier) Constant { return Constant{ID: id} }

func (c Constant) isTerm() {}

func (c Constant) Equal(other Term) bool {
	o, ok := other.(Constant)
	return ok && c.ID.Equal(o.ID)
}

func (c Constant) Hash() uint64 {
	return combineOrdered(fnvHashString("const"), c.ID.Hash())
}

func (c Constant) String() string { return c.ID.String() }

// VariableReference refers to a variable bound by an enclosing quantifier's
// VariableDeclaration. Two references are equal iff their declarations'
// names are equal — which defers to the wrapped Identifier's own notion of
// equality (identifier.go): value equality for a StringIdentifier, pointer
// equality for a StandardisedVariableIdentifier or SkolemFunctionIdentifier.
type VariableReference struct {
	Declaration *VariableDeclaration
}

// NewVariableReference builds a reference to decl.
func NewVariableReference(decl *VariableDeclaration) VariableReference {
	return VariableReference{Declaration: decl}
}

func (v VariableReference) isTerm() {}

func (v VariableReference) Equal(other Term) bool {
	o, ok := other.(VariableReference)
	return ok && v.Declaration.Name.Equal(o.Declaration.Name)
}

func (v VariableReference) Hash() uint64 {
	return combineOrdered(fnvHashString("varref"), v.Declaration.Name.Hash())
}

func (v VariableReference) String() string {
	if v.Declaration == nil {
		return "?"
	}
	return v.Declaration.Name.String()
}

// Function is n-ary function application. Argument order is significant.
type Function struct {
	ID   Identifier
	Args []Term
}

// NewFunction builds a Function term. args is copied so later mutation of
// the caller's slice cannot violate immutability.
func NewFunction(id Identifier, args ...Term) Function {
	copied := make([]Term, len(args))
	copy(copied, args)
	return Function{ID: id, Args: copied}
}

func (f Function) isTerm() {}

func (f Function) Equal(other Term) bool {
	o, ok := other.(Function)
	if !ok || !f.ID.Equal(o.ID) || len(f.Args) != len(o.Args) {
		return false
	}
	for i := range f.Args {
		if !f.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

func (f Function) Hash() uint64 {
	hashes := make([]uint64, 0, len(f.Args)+2)
	hashes = append(hashes, fnvHashString("func"), f.ID.Hash())
	for _, a := range f.Args {
		hashes = append(hashes, a.Hash())
	}
	return combineOrdered(hashes...)
}

func (f Function) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return f.ID.String() + "(" + strings.Join(parts, ", ") + ")"
}
