package facts

import (
	"context"
	"testing"

	"vigil/internal/encoder"
	"vigil/internal/spec"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactString(t *testing.T) {
	cases := []struct {
		fact Fact
		want string
	}{
		{
			Fact{Predicate: "predicate_decl", Args: []interface{}{"OptionI32", "/enum", false}},
			`predicate_decl("OptionI32", /enum, /false).`,
		},
		{
			Fact{Predicate: "spec_fragment", Args: []interface{}{"00000000000000000000000000000000", "/requires"}},
			`spec_fragment("00000000000000000000000000000000", /requires).`,
		},
		{
			Fact{Predicate: "enum_variant", Args: []interface{}{"OptionI32", 0, "None", "(self.discriminant == 0)"}},
			`enum_variant("OptionI32", 0, "None", "(self.discriminant == 0)").`,
		},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.fact.String())
	}
}

func TestFromRegistry(t *testing.T) {
	reg := spec.NewRegistry()
	reg.Register(spec.Precondition, "a.rs:1", "x > 0")
	reg.Register(spec.Predicate, "p.rs:2", "sorted(self)")

	facts := FromRegistry(reg)
	require.Len(t, facts, 2)

	kinds := map[interface{}]bool{}
	for _, f := range facts {
		assert.Equal(t, "spec_fragment", f.Predicate)
		require.Len(t, f.Args, 2)
		assert.Len(t, f.Args[0], 32)
		kinds[f.Args[1]] = true
	}
	assert.True(t, kinds["/requires"])
	assert.True(t, kinds["/predicate"])
}

func TestFromTable(t *testing.T) {
	enc := encoder.New()
	require.NoError(t, enc.EncodeAll(context.Background(), []encoder.TypeLayout{
		{Name: "I32", Kind: encoder.KindScalar, Scalar: &encoder.ScalarLayout{Field: "val"}},
		{Name: "Opaque", Kind: encoder.KindAbstract},
		{Name: "OptionI32", Kind: encoder.KindEnum, Variants: []encoder.VariantLayout{
			{Name: "None"},
			{Name: "Some", Fields: []encoder.FieldLayout{{Name: "value", Type: "I32"}}},
		}},
	}))

	var rendered []string
	for _, f := range FromTable(enc.Table()) {
		rendered = append(rendered, f.String())
	}

	assert.Contains(t, rendered, `predicate_decl("I32", /struct, /false).`)
	assert.Contains(t, rendered, `predicate_decl("Opaque", /struct, /true).`)
	assert.Contains(t, rendered, `predicate_decl("OptionI32", /enum, /false).`)
	assert.Contains(t, rendered, `predicate_decl("OptionI32Some", /struct, /false).`)
	assert.Contains(t, rendered, `enum_variant("OptionI32", 0, "None", "(self.discriminant == 0)").`)
	assert.Contains(t, rendered, `enum_variant("OptionI32", 1, "Some", "(self.discriminant == 1)").`)
	assert.Contains(t, rendered, `predicate_field("OptionI32", "enum_Some", "OptionI32Some").`)
	assert.Contains(t, rendered, `predicate_field("OptionI32Some", "value", "I32").`)
}
