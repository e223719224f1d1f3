package vir

import (
	"testing"
)

func TestTypeStrings(t *testing.T) {
	if got := Int().String(); got != "Int" {
		t.Fatalf("unexpected Int type string: %s", got)
	}
	if got := Bool().String(); got != "Bool" {
		t.Fatalf("unexpected Bool type string: %s", got)
	}
	if got := Ref("Account").String(); got != "Ref(Account)" {
		t.Fatalf("unexpected Ref type string: %s", got)
	}
}

func TestLocalVarString(t *testing.T) {
	v := NewLocalVar("self", Ref("Account"))
	if got, want := v.String(), "self: Ref(Account)"; got != want {
		t.Fatalf("unexpected local var string:\nwant: %s\ngot:  %s", want, got)
	}
}

func TestFieldPredicateName(t *testing.T) {
	if name, ok := (Field{Name: "next", Typ: Ref("Node")}).PredicateName(); !ok || name != "Node" {
		t.Fatalf("expected ref field to name predicate Node, got %q (%v)", name, ok)
	}
	if _, ok := (Field{Name: "tag", Typ: Int()}).PredicateName(); ok {
		t.Fatalf("expected int field to have no predicate name")
	}
}

func TestExprStrings(t *testing.T) {
	this := ConstructThis(Ref("Account"))
	balance := Field{Name: "balance", Typ: Int()}
	place := SelectField(NewLocal(this), balance)

	cases := []struct {
		name string
		expr Expr
		want string
	}{
		{"local", NewLocal(this), "self"},
		{"field select", place, "self.balance"},
		{"int literal", NewInt(-42), "-42"},
		{"bool literal", NewBool(true), "true"},
		{"acc write", AccPermission(place, Write), "acc(self.balance, write)"},
		{"acc read", AccPermission(place, Read), "acc(self.balance, read)"},
		{"predicate access", PredicateAccessPermission("Balance", place, Write), "acc(Balance(self.balance), write)"},
		{"and", And(NewBool(true), NewBool(false)), "(true && false)"},
		{"or", Or(NewBool(true), NewBool(false)), "(true || false)"},
		{"implies", Implies(EqCmp(place, NewInt(0)), NewBool(true)), "((self.balance == 0) ==> true)"},
		{"le", LeCmp(NewInt(0), place), "(0 <= self.balance)"},
		{"eq", EqCmp(place, NewInt(7)), "(self.balance == 7)"},
	}
	for _, tc := range cases {
		if got := tc.expr.String(); got != tc.want {
			t.Fatalf("%s:\nwant: %s\ngot:  %s", tc.name, tc.want, got)
		}
	}
}

func TestConjoinEmptyIsTrue(t *testing.T) {
	if got := Conjoin().String(); got != "true" {
		t.Fatalf("expected empty conjunction to be true, got %s", got)
	}
}

func TestConjoinSingleUnchanged(t *testing.T) {
	part := NewBool(false)
	if got := Conjoin(part); got != part {
		t.Fatalf("expected single-part conjunction to return the part unchanged")
	}
}

func TestConjoinFoldsLeftInOrder(t *testing.T) {
	got := Conjoin(NewInt(1), NewInt(2), NewInt(3), NewInt(4)).String()
	want := "(((1 && 2) && 3) && 4)"
	if got != want {
		t.Fatalf("unexpected conjunction:\nwant: %s\ngot:  %s", want, got)
	}
}

func TestWalkVisitsEveryNode(t *testing.T) {
	this := ConstructThis(Ref("Pair"))
	left := SelectField(NewLocal(this), Field{Name: "left", Typ: Ref("Elem")})
	expr := And(
		AccPermission(left, Write),
		PredicateAccessPermission("Elem", left, Write),
	)

	var preds []string
	count := 0
	Walk(expr, func(e Expr) {
		count++
		if pa, ok := e.(*PredAcc); ok {
			preds = append(preds, pa.Pred)
		}
	})

	// BinExpr, Acc, FieldSel, Local, PredAcc, FieldSel, Local.
	if count != 7 {
		t.Fatalf("unexpected node count: want 7, got %d", count)
	}
	if len(preds) != 1 || preds[0] != "Elem" {
		t.Fatalf("expected one predicate access to Elem, got %v", preds)
	}
}

func TestPermAmountString(t *testing.T) {
	if Write.String() != "write" || Read.String() != "read" {
		t.Fatalf("unexpected permission amount strings: %s / %s", Write, Read)
	}
}
