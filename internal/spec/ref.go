package spec

import "fmt"

// Ref is a tagged reference from an annotated program element to the
// specification fragments attached to it. The set of shapes is closed.
type Ref interface {
	fmt.Stringer
	isRef()
}

// PreconditionRef points at a precondition fragment.
type PreconditionRef struct {
	ID ID
}

// PostconditionRef points at a postcondition fragment.
type PostconditionRef struct {
	ID ID
}

// PledgeRef points at a pledge's obligations: RHS is always present,
// LHS only when the pledge carries a before/after antecedent.
type PledgeRef struct {
	LHS *ID
	RHS ID
}

// PredicateRef points at a predicate fragment.
type PredicateRef struct {
	ID ID
}

func (PreconditionRef) isRef()  {}
func (PostconditionRef) isRef() {}
func (PledgeRef) isRef()        {}
func (PredicateRef) isRef()     {}

func (r PreconditionRef) String() string {
	return fmt.Sprintf("precondition(%s)", r.ID)
}

func (r PostconditionRef) String() string {
	return fmt.Sprintf("postcondition(%s)", r.ID)
}

func (r PledgeRef) String() string {
	if r.LHS != nil {
		return fmt.Sprintf("pledge(%s, %s)", r.LHS, r.RHS)
	}
	return fmt.Sprintf("pledge(%s)", r.RHS)
}

func (r PredicateRef) String() string {
	return fmt.Sprintf("predicate(%s)", r.ID)
}
