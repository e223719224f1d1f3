package vir

import (
	"fmt"
	"strings"
)

// Predicate is a named heap predicate: either a single-variant
// StructPredicate or a multi-variant EnumPredicate. The union is closed
// so every consumer (display, access construction, abstractness checks)
// can switch exhaustively.
//
// Predicates are immutable after construction and shared by reference;
// there is no mutation API.
type Predicate interface {
	// Name is the predicate's name, unique within one verification unit.
	Name() string
	// Self returns the canonical self parameter.
	Self() LocalVar
	// SelfPlace returns the self parameter as a place expression.
	SelfPlace() Expr
	// IsAbstract reports whether the predicate has no known body.
	IsAbstract() bool
	fmt.Stringer
	isPredicate()
}

// ConstructThis builds the canonical `self` parameter for a predicate of
// the given type.
func ConstructThis(typ Type) LocalVar {
	return NewLocalVar("self", typ)
}

// Bounds is an inclusive integer value range.
type Bounds struct {
	Lo, Hi int64
}

// StructPredicate guards a single-variant composite type. A nil body
// marks the predicate abstract: the resource may be held and transferred
// but never unfolded.
type StructPredicate struct {
	name string
	this LocalVar
	body Expr
}

// EnumPredicate guards a multi-variant tagged type. The body is computed
// from the stored parts on demand; variant order is preserved verbatim
// from construction to emission.
type EnumPredicate struct {
	name               string
	this               LocalVar
	discriminant       Expr
	discriminantBounds Expr
	variants           []Variant
}

// Variant is one alternative of an EnumPredicate: a guard on the
// discriminant, the variant's name, and the predicate guarding its
// payload.
type Variant struct {
	Guard     Expr
	Name      string
	Predicate *StructPredicate
}

// StorageField returns the synthesized per-variant field holding the
// variant's payload.
func (v Variant) StorageField() Field {
	return Field{Name: "enum_" + v.Name, Typ: Ref(v.Predicate.Name())}
}

func (*StructPredicate) isPredicate() {}
func (*EnumPredicate) isPredicate()  {}

// NewAbstractPredicate builds a bodyless predicate for the given type.
func NewAbstractPredicate(typ Type) *StructPredicate {
	return &StructPredicate{name: typ.Name, this: ConstructThis(typ)}
}

// NewPrimitiveValuePredicate builds the predicate of a scalar wrapper
// type: exclusive access to the value field, optionally conjoined with
// the inclusive bounds of the value domain, lower bound first.
func NewPrimitiveValuePredicate(typ Type, field Field, bounds *Bounds) *StructPredicate {
	this := ConstructThis(typ)
	place := SelectField(NewLocal(this), field)
	parts := []Expr{AccPermission(place, Write)}
	if bounds != nil {
		parts = append(parts,
			LeCmp(NewInt(bounds.Lo), place),
			LeCmp(place, NewInt(bounds.Hi)),
		)
	}
	return &StructPredicate{name: typ.Name, this: this, body: Conjoin(parts...)}
}

// NewStructPredicate builds the predicate of a composite type: for every
// field in declaration order, access to the field itself followed by
// access to the predicate guarding the field's type. Field predicates
// are referenced by name, never embedded, so recursive type definitions
// stay finite. A type without fields gets the trivially true body and is
// still concrete.
func NewStructPredicate(typ Type, fields []Field) *StructPredicate {
	this := ConstructThis(typ)
	parts := make([]Expr, 0, 2*len(fields))
	for _, field := range fields {
		place := SelectField(NewLocal(this), field)
		parts = append(parts, AccPermission(place, Write))
		if pred, ok := field.PredicateName(); ok {
			parts = append(parts, PredicateAccessPermission(pred, place, Write))
		}
	}
	return &StructPredicate{name: typ.Name, this: this, body: Conjoin(parts...)}
}

// NewEnumPredicate stores the discriminant place, the bounds formula and
// the variants verbatim; nothing is derived at construction time. That
// every legal discriminant value is covered by exactly one guard is an
// upstream obligation, checked only by the encoder's opt-in diagnostics.
func NewEnumPredicate(this LocalVar, discriminant, discriminantBounds Expr, variants []Variant) *EnumPredicate {
	return &EnumPredicate{
		name:               this.Typ.Name,
		this:               this,
		discriminant:       discriminant,
		discriminantBounds: discriminantBounds,
		variants:           variants,
	}
}

func (p *StructPredicate) Name() string    { return p.name }
func (p *StructPredicate) Self() LocalVar  { return p.this }
func (p *StructPredicate) SelfPlace() Expr { return NewLocal(p.this) }

// Body returns the predicate body, nil when the predicate is abstract.
func (p *StructPredicate) Body() Expr { return p.body }

func (p *StructPredicate) IsAbstract() bool { return p.body == nil }

// ConstructAccess builds a predicate-access permission naming this
// predicate, applied to the given place.
func (p *StructPredicate) ConstructAccess(arg Expr, amount PermAmount) Expr {
	return PredicateAccessPermission(p.name, arg, amount)
}

func (p *StructPredicate) String() string {
	if p.body == nil {
		return fmt.Sprintf("struct_predicate %s(%s);", p.name, p.this)
	}
	return fmt.Sprintf("struct_predicate %s(%s){ %s }", p.name, p.this, p.body)
}

func (p *EnumPredicate) Name() string    { return p.name }
func (p *EnumPredicate) Self() LocalVar  { return p.this }
func (p *EnumPredicate) SelfPlace() Expr { return NewLocal(p.this) }

// Discriminant returns the place holding the runtime tag.
func (p *EnumPredicate) Discriminant() Expr { return p.discriminant }

// DiscriminantBounds returns the formula restricting the legal tag values.
func (p *EnumPredicate) DiscriminantBounds() Expr { return p.discriminantBounds }

// Variants returns the variants in their stored declaration order.
func (p *EnumPredicate) Variants() []Variant { return p.variants }

// IsAbstract is always false: an enum predicate's body is computable
// from its stored parts.
func (p *EnumPredicate) IsAbstract() bool { return false }

// Body assembles the full contract: access to the discriminant, the
// discriminant bounds, then one guarded conjunct per variant granting
// access to the variant's storage field and to its payload predicate,
// in stored variant order.
func (p *EnumPredicate) Body() Expr {
	parts := []Expr{
		AccPermission(p.discriminant, Write),
		p.discriminantBounds,
	}
	for _, v := range p.variants {
		place := SelectField(p.SelfPlace(), v.StorageField())
		parts = append(parts, Implies(v.Guard, And(
			AccPermission(place, Write),
			v.Predicate.ConstructAccess(place, Write),
		)))
	}
	return Conjoin(parts...)
}

func (p *EnumPredicate) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "enum_predicate %s(%s){\n", p.name, p.this)
	fmt.Fprintf(&b, "  discriminant=%s\n", p.discriminant)
	for _, v := range p.variants {
		fmt.Fprintf(&b, "  %s: %s ==> %s\n", v.Name, v.Guard, v.Predicate)
	}
	b.WriteString("}")
	return b.String()
}
