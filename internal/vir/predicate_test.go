package vir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAbstractPredicate(t *testing.T) {
	p := NewAbstractPredicate(Ref("Opaque"))
	if p.Name() != "Opaque" {
		t.Fatalf("unexpected name: %s", p.Name())
	}
	if !p.IsAbstract() {
		t.Fatalf("expected abstract predicate")
	}
	if p.Body() != nil {
		t.Fatalf("expected nil body for abstract predicate")
	}
	if got, want := p.String(), "struct_predicate Opaque(self: Ref(Opaque));"; got != want {
		t.Fatalf("unexpected textual form:\nwant: %s\ngot:  %s", want, got)
	}
}

func TestPrimitiveValuePredicateWithBounds(t *testing.T) {
	p := NewPrimitiveValuePredicate(Ref("I8"), Field{Name: "val", Typ: Int()}, &Bounds{Lo: -128, Hi: 127})
	want := "struct_predicate I8(self: Ref(I8)){ ((acc(self.val, write) && (-128 <= self.val)) && (self.val <= 127)) }"
	if got := p.String(); got != want {
		t.Fatalf("unexpected textual form:\nwant: %s\ngot:  %s", want, got)
	}
	if p.IsAbstract() {
		t.Fatalf("primitive value predicate must not be abstract")
	}
}

func TestPrimitiveValuePredicateWithoutBounds(t *testing.T) {
	p := NewPrimitiveValuePredicate(Ref("Addr"), Field{Name: "val", Typ: Int()}, nil)
	want := "struct_predicate Addr(self: Ref(Addr)){ acc(self.val, write) }"
	if got := p.String(); got != want {
		t.Fatalf("unexpected textual form:\nwant: %s\ngot:  %s", want, got)
	}
}

func TestStructPredicateFieldOrder(t *testing.T) {
	p := NewStructPredicate(Ref("Point"), []Field{
		{Name: "x", Typ: Ref("CoordX")},
		{Name: "y", Typ: Ref("CoordY")},
	})
	want := "(((acc(self.x, write) && acc(CoordX(self.x), write)) && acc(self.y, write)) && acc(CoordY(self.y), write))"
	if got := p.Body().String(); got != want {
		t.Fatalf("unexpected body:\nwant: %s\ngot:  %s", want, got)
	}
}

func TestStructPredicatePlainFieldHasNoPredicateAccess(t *testing.T) {
	p := NewStructPredicate(Ref("Tagged"), []Field{{Name: "tag", Typ: Int()}})
	if got, want := p.Body().String(), "acc(self.tag, write)"; got != want {
		t.Fatalf("unexpected body:\nwant: %s\ngot:  %s", want, got)
	}
}

func TestStructPredicateWithoutFieldsIsConcrete(t *testing.T) {
	p := NewStructPredicate(Ref("Unit"), nil)
	if p.IsAbstract() {
		t.Fatalf("field-less predicate must stay concrete")
	}
	if got, want := p.String(), "struct_predicate Unit(self: Ref(Unit)){ true }"; got != want {
		t.Fatalf("unexpected textual form:\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConstructAccess(t *testing.T) {
	p := NewStructPredicate(Ref("Node"), nil)
	place := SelectField(NewLocal(ConstructThis(Ref("List"))), Field{Name: "head", Typ: Ref("Node")})
	if got, want := p.ConstructAccess(place, Read).String(), "acc(Node(self.head), read)"; got != want {
		t.Fatalf("unexpected access:\nwant: %s\ngot:  %s", want, got)
	}
}

func TestVariantStorageField(t *testing.T) {
	v := Variant{Name: "Some", Predicate: NewStructPredicate(Ref("OptionSome"), nil)}
	field := v.StorageField()
	if field.Name != "enum_Some" {
		t.Fatalf("unexpected storage field name: %s", field.Name)
	}
	if name, ok := field.PredicateName(); !ok || name != "OptionSome" {
		t.Fatalf("expected storage field to reference OptionSome, got %q (%v)", name, ok)
	}
}

// optionPredicate builds the canonical two-variant test subject: a
// payload-less None and a Some wrapping one scalar field.
func optionPredicate() *EnumPredicate {
	this := ConstructThis(Ref("OptionI32"))
	disc := SelectField(NewLocal(this), Field{Name: "discriminant", Typ: Int()})
	bounds := And(LeCmp(NewInt(0), disc), LeCmp(disc, NewInt(1)))
	return NewEnumPredicate(this, disc, bounds, []Variant{
		{
			Guard:     EqCmp(disc, NewInt(0)),
			Name:      "None",
			Predicate: NewStructPredicate(Ref("OptionI32None"), nil),
		},
		{
			Guard:     EqCmp(disc, NewInt(1)),
			Name:      "Some",
			Predicate: NewStructPredicate(Ref("OptionI32Some"), []Field{{Name: "value", Typ: Ref("I32")}}),
		},
	})
}

func TestEnumPredicateBodyOrder(t *testing.T) {
	p := optionPredicate()

	want := "(((acc(self.discriminant, write)" +
		" && ((0 <= self.discriminant) && (self.discriminant <= 1)))" +
		" && ((self.discriminant == 0) ==> (acc(self.enum_None, write) && acc(OptionI32None(self.enum_None), write))))" +
		" && ((self.discriminant == 1) ==> (acc(self.enum_Some, write) && acc(OptionI32Some(self.enum_Some), write))))"
	if diff := cmp.Diff(want, p.Body().String()); diff != "" {
		t.Fatalf("enum body mismatch (-want +got):\n%s", diff)
	}
}

func TestEnumPredicateTextualForm(t *testing.T) {
	p := optionPredicate()

	want := "enum_predicate OptionI32(self: Ref(OptionI32)){\n" +
		"  discriminant=self.discriminant\n" +
		"  None: (self.discriminant == 0) ==> struct_predicate OptionI32None(self: Ref(OptionI32None)){ true }\n" +
		"  Some: (self.discriminant == 1) ==> struct_predicate OptionI32Some(self: Ref(OptionI32Some)){ (acc(self.value, write) && acc(I32(self.value), write)) }\n" +
		"}"
	if diff := cmp.Diff(want, p.String()); diff != "" {
		t.Fatalf("enum textual form mismatch (-want +got):\n%s", diff)
	}
}

func TestEnumPredicateKeepsVariantOrder(t *testing.T) {
	p := optionPredicate()
	variants := p.Variants()
	if len(variants) != 2 {
		t.Fatalf("unexpected variant count: %d", len(variants))
	}
	if variants[0].Name != "None" || variants[1].Name != "Some" {
		t.Fatalf("variant order not preserved: %s, %s", variants[0].Name, variants[1].Name)
	}
}

func TestIsAbstractMatrix(t *testing.T) {
	cases := []struct {
		name string
		pred Predicate
		want bool
	}{
		{"abstract", NewAbstractPredicate(Ref("A")), true},
		{"primitive value", NewPrimitiveValuePredicate(Ref("B"), Field{Name: "val", Typ: Int()}, nil), false},
		{"struct", NewStructPredicate(Ref("C"), nil), false},
		{"enum", optionPredicate(), false},
	}
	for _, tc := range cases {
		if got := tc.pred.IsAbstract(); got != tc.want {
			t.Fatalf("%s: IsAbstract want %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestPredicateSelf(t *testing.T) {
	p := NewAbstractPredicate(Ref("Opaque"))
	if got, want := p.Self().String(), "self: Ref(Opaque)"; got != want {
		t.Fatalf("unexpected self parameter: %s", got)
	}
	if got, want := p.SelfPlace().String(), "self"; got != want {
		t.Fatalf("unexpected self place: %s", got)
	}
}
