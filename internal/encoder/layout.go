// Package encoder drives type-layout to heap-predicate construction and
// owns the name-indexed predicate table the rest of the pipeline reads
// from. Cross-predicate references resolve through names in that table,
// never through embedded values, so recursive type definitions stay
// finite.
package encoder

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Layout kinds accepted by the encoder.
const (
	KindAbstract = "abstract"
	KindScalar   = "scalar"
	KindStruct   = "struct"
	KindEnum     = "enum"
)

// TypeLayout describes one composite type to encode. A field's Type names
// the predicate guarding the field's own type; leaving it empty marks a
// plain value field. Generated layouts get a synthesized predicate name
// instead of using Name verbatim.
type TypeLayout struct {
	Name      string          `yaml:"name"`
	Kind      string          `yaml:"kind"`
	Generated bool            `yaml:"generated,omitempty"`
	Scalar    *ScalarLayout   `yaml:"scalar,omitempty"`
	Fields    []FieldLayout   `yaml:"fields,omitempty"`
	Variants  []VariantLayout `yaml:"variants,omitempty"`
}

// ScalarLayout is the value cell of a primitive wrapper type, with
// optional inclusive value bounds.
type ScalarLayout struct {
	Field string `yaml:"field"`
	Min   *int64 `yaml:"min,omitempty"`
	Max   *int64 `yaml:"max,omitempty"`
}

// FieldLayout is one field of a struct or of an enum variant.
type FieldLayout struct {
	Name string `yaml:"name"`
	Type string `yaml:"type,omitempty"`
}

// VariantLayout is one variant of a tagged enum, in declaration order.
type VariantLayout struct {
	Name   string        `yaml:"name"`
	Fields []FieldLayout `yaml:"fields,omitempty"`
}

// Validate checks the layout shape before any construction runs. The
// constructors themselves have no error channel, so every malformed
// input must be caught here.
func (l TypeLayout) Validate() error {
	if l.Name == "" {
		return fmt.Errorf("layout with empty name")
	}
	switch l.Kind {
	case KindAbstract:
		// Nothing beyond the name.
	case KindScalar:
		if l.Scalar == nil || l.Scalar.Field == "" {
			return fmt.Errorf("layout %s: scalar layouts need a value field", l.Name)
		}
		if (l.Scalar.Min == nil) != (l.Scalar.Max == nil) {
			return fmt.Errorf("layout %s: bounds need both min and max", l.Name)
		}
		if l.Scalar.Min != nil && *l.Scalar.Min > *l.Scalar.Max {
			return fmt.Errorf("layout %s: bounds are inverted (%d > %d)", l.Name, *l.Scalar.Min, *l.Scalar.Max)
		}
	case KindStruct:
		if err := checkFields(l.Name, l.Fields); err != nil {
			return err
		}
	case KindEnum:
		seen := make(map[string]bool, len(l.Variants))
		for _, v := range l.Variants {
			if v.Name == "" {
				return fmt.Errorf("layout %s: variant with empty name", l.Name)
			}
			if seen[v.Name] {
				return fmt.Errorf("layout %s: duplicate variant %s", l.Name, v.Name)
			}
			seen[v.Name] = true
			if err := checkFields(l.Name+"."+v.Name, v.Fields); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("layout %s: unknown kind %q", l.Name, l.Kind)
	}
	return nil
}

func checkFields(owner string, fields []FieldLayout) error {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return fmt.Errorf("layout %s: field with empty name", owner)
		}
		if seen[f.Name] {
			return fmt.Errorf("layout %s: duplicate field %s", owner, f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}

// layoutFile is the top-level document shape: a single "layouts" list.
type layoutFile struct {
	Layouts []TypeLayout `yaml:"layouts"`
}

// ParseLayouts decodes a layouts document and validates every entry.
// Declaration order is preserved; it becomes table insertion order.
func ParseLayouts(data []byte) ([]TypeLayout, error) {
	var file layoutFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}
	if len(file.Layouts) == 0 {
		return nil, fmt.Errorf("layouts document declares no layouts")
	}
	for _, l := range file.Layouts {
		if err := l.Validate(); err != nil {
			return nil, err
		}
	}
	return file.Layouts, nil
}

// LoadLayouts reads and parses a layouts document from disk.
func LoadLayouts(path string) ([]TypeLayout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layouts %s: %w", path, err)
	}
	return ParseLayouts(data)
}
