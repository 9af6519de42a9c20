package fol

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Snapshot/Restore encode clauses as YAML (spec.md §6), grounded in the
// teacher pack's korel/config convention of plain structs with yaml tags.
// Variable identity cannot survive a round trip through a textual
// encoding — StandardisedVariableIdentifier and SkolemFunctionIdentifier
// are reference types by design (identifier.go) — so each clause gets its
// own fresh, clause-local variable labeling on the way out and a fresh set
// of declarations on the way back in. Two literals sharing a label within
// one encoded clause share a declaration after Restore; labels are not
// meaningful across clause boundaries or across separate Restore calls.

type snapshotDocument struct {
	Clauses []snapshotClause `yaml:"clauses"`
}

type snapshotClause struct {
	Literals []snapshotLiteral `yaml:"literals"`
}

type snapshotLiteral struct {
	Negated bool           `yaml:"negated"`
	Symbol  string         `yaml:"symbol"`
	Args    []snapshotTerm `yaml:"args,omitempty"`
}

type snapshotTerm struct {
	Kind   string         `yaml:"kind"` // "const", "var", or "func"
	Symbol string         `yaml:"symbol"`
	Args   []snapshotTerm `yaml:"args,omitempty"`
}

// MarshalClauses encodes clauses to YAML.
func MarshalClauses(clauses []CNFClause) ([]byte, error) {
	doc := snapshotDocument{Clauses: make([]snapshotClause, len(clauses))}
	for i, c := range clauses {
		doc.Clauses[i] = marshalClause(c)
	}
	return yaml.Marshal(doc)
}

func marshalClause(c CNFClause) snapshotClause {
	mapping := map[*VariableDeclaration]string{}
	lits := c.Literals()
	out := make([]snapshotLiteral, len(lits))
	for i, l := range lits {
		out[i] = snapshotLiteral{
			Negated: l.IsNegated,
			Symbol:  l.Predicate.ID.String(),
			Args:    marshalTerms(l.Predicate.Args, mapping),
		}
	}
	return snapshotClause{Literals: out}
}

func marshalTerms(ts []Term, mapping map[*VariableDeclaration]string) []snapshotTerm {
	out := make([]snapshotTerm, len(ts))
	for i, t := range ts {
		out[i] = marshalTerm(t, mapping)
	}
	return out
}

func marshalTerm(t Term, mapping map[*VariableDeclaration]string) snapshotTerm {
	switch v := t.(type) {
	case Constant:
		return snapshotTerm{Kind: "const", Symbol: v.ID.String()}
	case VariableReference:
		label, ok := mapping[v.Declaration]
		if !ok {
			label = fmt.Sprintf("V%d", len(mapping))
			mapping[v.Declaration] = label
		}
		return snapshotTerm{Kind: "var", Symbol: label}
	case Function:
		return snapshotTerm{Kind: "func", Symbol: v.ID.String(), Args: marshalTerms(v.Args, mapping)}
	default:
		panic(unknownVariantError{node: t})
	}
}

// UnmarshalClauses decodes clauses previously produced by MarshalClauses.
func UnmarshalClauses(data []byte) ([]CNFClause, error) {
	var doc snapshotDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("fol: unmarshal snapshot: %w", err)
	}
	out := make([]CNFClause, len(doc.Clauses))
	for i, sc := range doc.Clauses {
		out[i] = unmarshalClause(sc)
	}
	return out, nil
}

func unmarshalClause(sc snapshotClause) CNFClause {
	mapping := map[string]*VariableDeclaration{}
	c := NewCNFClause()
	for _, sl := range sc.Literals {
		pred := NewPredicate(StringIdentifier(sl.Symbol), unmarshalTerms(sl.Args, mapping)...)
		c = c.Add(Literal{Predicate: pred, IsNegated: sl.Negated})
	}
	return c
}

func unmarshalTerms(ts []snapshotTerm, mapping map[string]*VariableDeclaration) []Term {
	out := make([]Term, len(ts))
	for i, t := range ts {
		out[i] = unmarshalTerm(t, mapping)
	}
	return out
}

func unmarshalTerm(t snapshotTerm, mapping map[string]*VariableDeclaration) Term {
	switch t.Kind {
	case "const":
		return NewConstant(StringIdentifier(t.Symbol))
	case "var":
		decl, ok := mapping[t.Symbol]
		if !ok {
			decl = NewVariableDeclaration(StringIdentifier(t.Symbol))
			mapping[t.Symbol] = decl
		}
		return NewVariableReference(decl)
	case "func":
		return NewFunction(StringIdentifier(t.Symbol), unmarshalTerms(t.Args, mapping)...)
	default:
		panic(fmt.Sprintf("fol: unmarshal snapshot: unknown term kind %q", t.Kind))
	}
}
