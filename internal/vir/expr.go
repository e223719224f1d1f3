// Package vir implements the permission-expression algebra and the heap
// predicate model consumed by a separation-logic backend verifier.
// Expressions render to a fixed textual grammar that downstream tooling
// snapshots and diffs, so the String methods are part of the contract.
package vir

import (
	"fmt"
	"strconv"
)

// TypeKind discriminates the value types a place expression can carry.
type TypeKind int

const (
	TypeInt TypeKind = iota
	TypeBool
	TypeRef
)

// Type is the type of a place. Ref types name the predicate guarding the
// referenced location, which is how nested predicates are linked without
// embedding them by value.
type Type struct {
	Kind TypeKind
	Name string // predicate name for TypeRef, empty otherwise
}

// Int returns the integer value type.
func Int() Type { return Type{Kind: TypeInt} }

// Bool returns the boolean value type.
func Bool() Type { return Type{Kind: TypeBool} }

// Ref returns a reference type guarded by the named predicate.
func Ref(name string) Type { return Type{Kind: TypeRef, Name: name} }

func (t Type) String() string {
	switch t.Kind {
	case TypeInt:
		return "Int"
	case TypeBool:
		return "Bool"
	case TypeRef:
		return fmt.Sprintf("Ref(%s)", t.Name)
	default:
		return fmt.Sprintf("Type(%d)", int(t.Kind))
	}
}

// LocalVar is a typed local variable declaration, rendered as "name: Type".
type LocalVar struct {
	Name string
	Typ  Type
}

// NewLocalVar builds a typed local variable.
func NewLocalVar(name string, typ Type) LocalVar {
	return LocalVar{Name: name, Typ: typ}
}

func (v LocalVar) String() string { return v.Name + ": " + v.Typ.String() }

// Field is a named slot of a composite type.
type Field struct {
	Name string
	Typ  Type
}

// PredicateName returns the name of the predicate guarding the field's
// type, and whether the field has one. Only Ref-typed fields do.
func (f Field) PredicateName() (string, bool) {
	if f.Typ.Kind == TypeRef && f.Typ.Name != "" {
		return f.Typ.Name, true
	}
	return "", false
}

// PermAmount is the fraction of a permission: exclusive (write) or
// shared (read).
type PermAmount int

const (
	Write PermAmount = iota
	Read
)

func (p PermAmount) String() string {
	if p == Read {
		return "read"
	}
	return "write"
}

// BinOp enumerates the binary operators of the algebra.
type BinOp int

const (
	OpAnd BinOp = iota
	OpOr
	OpImplies
	OpEq
	OpLe
)

func (op BinOp) String() string {
	switch op {
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	case OpImplies:
		return "==>"
	case OpEq:
		return "=="
	case OpLe:
		return "<="
	default:
		return fmt.Sprintf("BinOp(%d)", int(op))
	}
}

// Expr is a permission or boolean expression. The set of shapes is
// closed: consumers type-switch exhaustively over the variants below.
type Expr interface {
	fmt.Stringer
	isExpr()
}

// Local references a local variable as a place.
type Local struct {
	Var LocalVar
}

// FieldSel selects a field of a base place ("base.field").
type FieldSel struct {
	Base  Expr
	Field Field
}

// IntLit is an integer literal.
type IntLit struct {
	Value int64
}

// BoolLit is a boolean literal.
type BoolLit struct {
	Value bool
}

// Acc grants access to a single place ("acc(place, amount)").
type Acc struct {
	Place  Expr
	Amount PermAmount
}

// PredAcc grants access to a named predicate instance without unfolding
// it ("acc(Name(arg), amount)").
type PredAcc struct {
	Pred   string
	Arg    Expr
	Amount PermAmount
}

// BinExpr combines two expressions with a binary operator.
type BinExpr struct {
	Op       BinOp
	LHS, RHS Expr
}

func (*Local) isExpr()    {}
func (*FieldSel) isExpr() {}
func (*IntLit) isExpr()   {}
func (*BoolLit) isExpr()  {}
func (*Acc) isExpr()      {}
func (*PredAcc) isExpr()  {}
func (*BinExpr) isExpr()  {}

func (e *Local) String() string    { return e.Var.Name }
func (e *FieldSel) String() string { return e.Base.String() + "." + e.Field.Name }
func (e *IntLit) String() string   { return strconv.FormatInt(e.Value, 10) }
func (e *BoolLit) String() string  { return strconv.FormatBool(e.Value) }

func (e *Acc) String() string {
	return fmt.Sprintf("acc(%s, %s)", e.Place, e.Amount)
}

func (e *PredAcc) String() string {
	return fmt.Sprintf("acc(%s(%s), %s)", e.Pred, e.Arg, e.Amount)
}

func (e *BinExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.LHS, e.Op, e.RHS)
}

// NewLocal wraps a local variable as a place expression.
func NewLocal(v LocalVar) Expr { return &Local{Var: v} }

// SelectField selects a field of the base place.
func SelectField(base Expr, field Field) Expr {
	return &FieldSel{Base: base, Field: field}
}

// NewInt builds an integer literal.
func NewInt(v int64) Expr { return &IntLit{Value: v} }

// NewBool builds a boolean literal.
func NewBool(v bool) Expr { return &BoolLit{Value: v} }

// AccPermission grants amount access to place.
func AccPermission(place Expr, amount PermAmount) Expr {
	return &Acc{Place: place, Amount: amount}
}

// PredicateAccessPermission grants amount access to the named predicate
// applied to arg. The target predicate is referenced by name only;
// resolution happens through the encoder's predicate table, so recursive
// type graphs never turn into ownership cycles here.
func PredicateAccessPermission(pred string, arg Expr, amount PermAmount) Expr {
	return &PredAcc{Pred: pred, Arg: arg, Amount: amount}
}

// And conjoins two expressions.
func And(lhs, rhs Expr) Expr { return &BinExpr{Op: OpAnd, LHS: lhs, RHS: rhs} }

// Or disjoins two expressions.
func Or(lhs, rhs Expr) Expr { return &BinExpr{Op: OpOr, LHS: lhs, RHS: rhs} }

// Implies builds a guarded implication.
func Implies(lhs, rhs Expr) Expr { return &BinExpr{Op: OpImplies, LHS: lhs, RHS: rhs} }

// EqCmp compares two integer terms for equality.
func EqCmp(lhs, rhs Expr) Expr { return &BinExpr{Op: OpEq, LHS: lhs, RHS: rhs} }

// LeCmp compares two integer terms with <=.
func LeCmp(lhs, rhs Expr) Expr { return &BinExpr{Op: OpLe, LHS: lhs, RHS: rhs} }

// Conjoin folds parts left to right with &&. No parts conjoin to true;
// a single part is returned unchanged. Left folding keeps the textual
// order of the conjuncts identical to their argument order.
func Conjoin(parts ...Expr) Expr {
	if len(parts) == 0 {
		return NewBool(true)
	}
	acc := parts[0]
	for _, p := range parts[1:] {
		acc = And(acc, p)
	}
	return acc
}

// Walk visits e and every subexpression in depth-first order.
func Walk(e Expr, visit func(Expr)) {
	if e == nil {
		return
	}
	visit(e)
	switch n := e.(type) {
	case *FieldSel:
		Walk(n.Base, visit)
	case *Acc:
		Walk(n.Place, visit)
	case *PredAcc:
		Walk(n.Arg, visit)
	case *BinExpr:
		Walk(n.LHS, visit)
		Walk(n.RHS, visit)
	}
}
