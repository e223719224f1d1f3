// Package facts exports encoded verification state as datalog facts and
// answers derived queries over them with the Mangle engine.
package facts

import (
	"fmt"
	"strings"

	"vigil/internal/encoder"
	"vigil/internal/spec"
	"vigil/internal/vir"
)

// Fact is one datalog fact: a declared predicate applied to constant
// arguments. String arguments starting with "/" become name constants;
// plain strings, integers and bools map to the matching Mangle constant
// type.
type Fact struct {
	Predicate string        `json:"predicate"`
	Args      []interface{} `json:"args"`
}

// String returns the Datalog representation of the fact.
func (f Fact) String() string {
	var args []string
	for _, arg := range f.Args {
		switch v := arg.(type) {
		case string:
			if strings.HasPrefix(v, "/") {
				args = append(args, v)
			} else {
				args = append(args, fmt.Sprintf("%q", v))
			}
		case int:
			args = append(args, fmt.Sprintf("%d", v))
		case int64:
			args = append(args, fmt.Sprintf("%d", v))
		case bool:
			if v {
				args = append(args, "/true")
			} else {
				args = append(args, "/false")
			}
		default:
			args = append(args, fmt.Sprintf("%v", v))
		}
	}
	return fmt.Sprintf("%s(%s).", f.Predicate, strings.Join(args, ", "))
}

// FromRegistry exports one spec_fragment fact per registered fragment,
// in the registry's ID-sorted order.
func FromRegistry(reg *spec.Registry) []Fact {
	frags := reg.Fragments()
	facts := make([]Fact, 0, len(frags))
	for _, frag := range frags {
		facts = append(facts, Fact{
			Predicate: "spec_fragment",
			Args:      []interface{}{frag.ID.String(), "/" + frag.Kind.Keyword()},
		})
	}
	return facts
}

// FromTable exports the predicate table: one predicate_decl per entry,
// predicate_field rows for every reference an entry's body makes to
// another predicate through a field, and enum_variant rows in stored
// variant order.
func FromTable(table *encoder.Table) []Fact {
	var facts []Fact
	for _, p := range table.Snapshot() {
		switch t := p.(type) {
		case *vir.StructPredicate:
			facts = append(facts, Fact{
				Predicate: "predicate_decl",
				Args:      []interface{}{t.Name(), "/struct", t.IsAbstract()},
			})
			facts = append(facts, fieldFacts(t.Name(), t.Body())...)
		case *vir.EnumPredicate:
			facts = append(facts, Fact{
				Predicate: "predicate_decl",
				Args:      []interface{}{t.Name(), "/enum", false},
			})
			for i, v := range t.Variants() {
				facts = append(facts, Fact{
					Predicate: "enum_variant",
					Args:      []interface{}{t.Name(), i, v.Name, v.Guard.String()},
				})
			}
			facts = append(facts, fieldFacts(t.Name(), t.Body())...)
		}
	}
	return facts
}

// fieldFacts walks a predicate body collecting the field-mediated
// references to other predicates. Abstract bodies contribute nothing.
func fieldFacts(pred string, body vir.Expr) []Fact {
	if body == nil {
		return nil
	}
	var facts []Fact
	vir.Walk(body, func(e vir.Expr) {
		pa, ok := e.(*vir.PredAcc)
		if !ok {
			return
		}
		sel, ok := pa.Arg.(*vir.FieldSel)
		if !ok {
			return
		}
		facts = append(facts, Fact{
			Predicate: "predicate_field",
			Args:      []interface{}{pred, sel.Field.Name, pa.Pred},
		})
	})
	return facts
}
