package spec

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// TypeShape is the minimal syntactic description of a type that name
// synthesis consumes. The union is closed: path and slice shapes are
// supported, function and trait-object shapes are recognized so they
// can be rejected with a precise error instead of a panic.
type TypeShape interface {
	isTypeShape()
}

// PathShape is a (possibly qualified) named type, one segment per path
// component.
type PathShape struct {
	Segments []string
}

// SliceShape is a slice of an element shape.
type SliceShape struct {
	Elem TypeShape
}

// FuncShape is a function type. Name synthesis rejects it.
type FuncShape struct{}

// TraitObjectShape is a dynamic trait object type. Name synthesis
// rejects it.
type TraitObjectShape struct{}

func (PathShape) isTypeShape()        {}
func (SliceShape) isTypeShape()       {}
func (FuncShape) isTypeShape()        {}
func (TraitObjectShape) isTypeShape() {}

// Path builds a path shape from its segments.
func Path(segments ...string) PathShape {
	return PathShape{Segments: segments}
}

// Slice builds a slice shape around an element shape.
func Slice(elem TypeShape) SliceShape {
	return SliceShape{Elem: elem}
}

// NameForType derives the deterministic name stem of a type shape.
// Paths concatenate their segments, slices wrap the element stem as
// Slice<ElemStem>. Unsupported shapes produce a descriptive error so
// the caller can report a precise diagnostic at the offending location.
func NameForType(shape TypeShape) (string, error) {
	switch s := shape.(type) {
	case PathShape:
		return strings.Join(s.Segments, ""), nil
	case SliceShape:
		elem, err := NameForType(s.Elem)
		if err != nil {
			return "", err
		}
		return "Slice" + elem, nil
	case FuncShape:
		return "", fmt.Errorf("cannot synthesize a name for a function type")
	case TraitObjectShape:
		return "", fmt.Errorf("cannot synthesize a name for a trait object type")
	default:
		return "", fmt.Errorf("cannot synthesize a name for type shape %T", shape)
	}
}

// NameSynthesizer mints collision-free names for generated items. Every
// name ends in a fresh 32-hex random suffix, so synthesis is stateless
// per call and needs no coordination between concurrent callers.
type NameSynthesizer struct{}

// StructName synthesizes the name of a generated struct item for the
// given type shape.
func (NameSynthesizer) StructName(shape TypeShape) (string, error) {
	stem, err := NameForType(shape)
	if err != nil {
		return "", err
	}
	return "PrustiStruct" + stem + freshSuffix(), nil
}

// TraitImplName synthesizes the name of a generated trait impl item.
func (NameSynthesizer) TraitImplName(trait string) string {
	return "PrustiTrait" + trait + freshSuffix()
}

// ModuleName synthesizes the name of a generated module.
func (NameSynthesizer) ModuleName(ident string) string {
	return ident + "_" + freshSuffix()
}

func freshSuffix() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}
