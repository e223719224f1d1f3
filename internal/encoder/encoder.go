package encoder

import (
	"context"
	"fmt"
	"sync"

	"vigil/internal/spec"
	"vigil/internal/vir"

	"golang.org/x/sync/errgroup"
)

// Encoder builds predicates from type layouts and fills the table.
type Encoder struct {
	table *Table

	mu      sync.Mutex
	namer   spec.NameSynthesizer
	aliases map[string]string // layout name -> synthesized predicate name
}

// New returns an encoder with an empty table.
func New() *Encoder {
	return &Encoder{
		table:   NewTable(),
		aliases: make(map[string]string),
	}
}

// Table exposes the predicate table for lookups and emission.
func (e *Encoder) Table() *Table { return e.table }

// resolveName returns the predicate name for a layout. Generated layouts
// get a synthesized name, minted once and reused for every later
// reference to the same layout name.
func (e *Encoder) resolveName(l TypeLayout) (string, error) {
	if !l.Generated {
		return l.Name, nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if mangled, ok := e.aliases[l.Name]; ok {
		return mangled, nil
	}
	mangled, err := e.namer.StructName(spec.Path(l.Name))
	if err != nil {
		return "", fmt.Errorf("layout %s: %w", l.Name, err)
	}
	e.aliases[l.Name] = mangled
	return mangled, nil
}

// refName maps a field's type reference through the alias table so that
// references to generated layouts land on the synthesized name.
func (e *Encoder) refName(name string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if mangled, ok := e.aliases[name]; ok {
		return mangled
	}
	return name
}

func (e *Encoder) fieldList(fields []FieldLayout) []vir.Field {
	out := make([]vir.Field, 0, len(fields))
	for _, f := range fields {
		typ := vir.Int()
		if f.Type != "" {
			typ = vir.Ref(e.refName(f.Type))
		}
		out = append(out, vir.Field{Name: f.Name, Typ: typ})
	}
	return out
}

// Encode builds the predicate for one layout. Construction is pure data
// assembly and leaves the table untouched; see Insert and EncodeAll.
func (e *Encoder) Encode(layout TypeLayout) (vir.Predicate, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	name, err := e.resolveName(layout)
	if err != nil {
		return nil, err
	}
	typ := vir.Ref(name)
	switch layout.Kind {
	case KindAbstract:
		return vir.NewAbstractPredicate(typ), nil
	case KindScalar:
		var bounds *vir.Bounds
		if layout.Scalar.Min != nil {
			bounds = &vir.Bounds{Lo: *layout.Scalar.Min, Hi: *layout.Scalar.Max}
		}
		field := vir.Field{Name: layout.Scalar.Field, Typ: vir.Int()}
		return vir.NewPrimitiveValuePredicate(typ, field, bounds), nil
	case KindStruct:
		return vir.NewStructPredicate(typ, e.fieldList(layout.Fields)), nil
	case KindEnum:
		return e.encodeEnum(name, layout), nil
	}
	// Unreachable after Validate.
	return nil, fmt.Errorf("layout %s: unknown kind %q", layout.Name, layout.Kind)
}

// encodeEnum lowers a tagged enum: the runtime tag lives in the
// synthesized discriminant field, its legal range is [0, variants-1]
// (or empty for an uninhabited enum), and the i-th variant is guarded
// by discriminant == i. Each variant's payload gets its own struct
// predicate named <TypeName><VariantName>.
func (e *Encoder) encodeEnum(name string, layout TypeLayout) vir.Predicate {
	this := vir.ConstructThis(vir.Ref(name))
	disc := vir.SelectField(vir.NewLocal(this), vir.Field{Name: "discriminant", Typ: vir.Int()})

	n := len(layout.Variants)
	var bounds vir.Expr
	if n == 0 {
		bounds = vir.NewBool(false)
	} else {
		bounds = vir.And(
			vir.LeCmp(vir.NewInt(0), disc),
			vir.LeCmp(disc, vir.NewInt(int64(n-1))),
		)
	}

	variants := make([]vir.Variant, 0, n)
	for i, v := range layout.Variants {
		payload := vir.NewStructPredicate(vir.Ref(name+v.Name), e.fieldList(v.Fields))
		variants = append(variants, vir.Variant{
			Guard:     vir.EqCmp(disc, vir.NewInt(int64(i))),
			Name:      v.Name,
			Predicate: payload,
		})
	}
	return vir.NewEnumPredicate(this, disc, bounds, variants)
}

// Insert binds a finished predicate in the table. Enum variant payload
// predicates are bound alongside their enum so references to them
// resolve by name.
func (e *Encoder) Insert(p vir.Predicate) error {
	if err := e.table.Insert(p); err != nil {
		return err
	}
	if ep, ok := p.(*vir.EnumPredicate); ok {
		for _, v := range ep.Variants() {
			if err := e.table.Insert(v.Predicate); err != nil {
				return err
			}
		}
	}
	return nil
}

// EncodeAll encodes every layout and fills the table in input order.
// Construction runs concurrently; identity and name generation need no
// coordination, so the goroutines share nothing but their result slot.
// Table insertion happens afterwards, sequentially, so emission order
// matches layout order no matter how the goroutines interleave.
func (e *Encoder) EncodeAll(ctx context.Context, layouts []TypeLayout) error {
	for _, l := range layouts {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	// Resolve synthesized names up front so cross-layout references see
	// the final names regardless of construction order.
	for _, l := range layouts {
		if _, err := e.resolveName(l); err != nil {
			return err
		}
	}

	results := make([]vir.Predicate, len(layouts))
	g, gctx := errgroup.WithContext(ctx)
	for i, layout := range layouts {
		i, layout := i, layout
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			p, err := e.Encode(layout)
			if err != nil {
				return err
			}
			results[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, p := range results {
		if err := e.Insert(p); err != nil {
			return err
		}
	}
	return nil
}
