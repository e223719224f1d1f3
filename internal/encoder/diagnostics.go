package encoder

import (
	"fmt"
	"strings"

	"vigil/internal/vir"
)

// Finding is one diagnostic from the opt-in checks. Findings never abort
// encoding; whether guards must partition the discriminant domain is an
// obligation of the layout producer, flagged here for verification
// rather than assumed.
type Finding struct {
	Predicate string
	Detail    string
}

func (f Finding) String() string {
	return f.Predicate + ": " + f.Detail
}

// CheckGuardPartition evaluates every variant guard at every legal
// discriminant value and reports gaps (a value no guard covers) and
// overlaps (a value more than one guard covers). The bounds must be the
// interval form the encoder emits; anything else is reported as an
// error, not silently skipped.
func CheckGuardPartition(ep *vir.EnumPredicate) ([]Finding, error) {
	lo, hi, inhabited, err := discriminantInterval(ep)
	if err != nil {
		return nil, err
	}
	if !inhabited {
		return nil, nil
	}

	place := ep.Discriminant().String()
	var findings []Finding
	for value := lo; value <= hi; value++ {
		env := vir.Env{place: value}
		var holding []string
		for _, v := range ep.Variants() {
			ok, err := vir.EvalBool(v.Guard, env)
			if err != nil {
				return nil, fmt.Errorf("predicate %s, variant %s: %w", ep.Name(), v.Name, err)
			}
			if ok {
				holding = append(holding, v.Name)
			}
		}
		switch {
		case len(holding) == 0:
			findings = append(findings, Finding{
				Predicate: ep.Name(),
				Detail:    fmt.Sprintf("discriminant value %d is covered by no variant guard", value),
			})
		case len(holding) > 1:
			findings = append(findings, Finding{
				Predicate: ep.Name(),
				Detail:    fmt.Sprintf("discriminant value %d is covered by %d guards (%s)", value, len(holding), strings.Join(holding, ", ")),
			})
		}
	}
	return findings, nil
}

// discriminantInterval recovers the inclusive [lo, hi] interval from the
// stored bounds formula. A literal false bounds means the discriminant
// domain is empty (zero-variant enum).
func discriminantInterval(ep *vir.EnumPredicate) (lo, hi int64, inhabited bool, err error) {
	bounds := ep.DiscriminantBounds()
	if b, ok := bounds.(*vir.BoolLit); ok && !b.Value {
		return 0, 0, false, nil
	}
	shapeErr := func() error {
		return fmt.Errorf("predicate %s: discriminant bounds %s are not an integer interval", ep.Name(), bounds)
	}
	and, ok := bounds.(*vir.BinExpr)
	if !ok || and.Op != vir.OpAnd {
		return 0, 0, false, shapeErr()
	}
	left, lok := and.LHS.(*vir.BinExpr)
	right, rok := and.RHS.(*vir.BinExpr)
	if !lok || !rok || left.Op != vir.OpLe || right.Op != vir.OpLe {
		return 0, 0, false, shapeErr()
	}
	loLit, lok := left.LHS.(*vir.IntLit)
	hiLit, rok := right.RHS.(*vir.IntLit)
	if !lok || !rok {
		return 0, 0, false, shapeErr()
	}
	return loLit.Value, hiLit.Value, true, nil
}

// CheckDanglingRefs walks every predicate body in the table and reports
// predicate-access permissions naming predicates the table does not
// hold. A dangling name means the layout producer referenced a type that
// was never encoded.
func CheckDanglingRefs(table *Table) []Finding {
	known := make(map[string]bool)
	for _, name := range table.Names() {
		known[name] = true
	}

	var findings []Finding
	for _, p := range table.Snapshot() {
		body := predicateBody(p)
		if body == nil {
			continue
		}
		reported := make(map[string]bool)
		vir.Walk(body, func(e vir.Expr) {
			pa, ok := e.(*vir.PredAcc)
			if !ok || known[pa.Pred] || reported[pa.Pred] {
				return
			}
			reported[pa.Pred] = true
			findings = append(findings, Finding{
				Predicate: p.Name(),
				Detail:    fmt.Sprintf("references undeclared predicate %s", pa.Pred),
			})
		})
	}
	return findings
}

// predicateBody returns the walkable body of a predicate, nil for
// abstract ones.
func predicateBody(p vir.Predicate) vir.Expr {
	switch t := p.(type) {
	case *vir.StructPredicate:
		return t.Body()
	case *vir.EnumPredicate:
		return t.Body()
	}
	return nil
}

// Check runs every diagnostic over the table: guard partition on each
// enum, then dangling references across all bodies.
func Check(table *Table) ([]Finding, error) {
	var findings []Finding
	for _, p := range table.Snapshot() {
		ep, ok := p.(*vir.EnumPredicate)
		if !ok {
			continue
		}
		fs, err := CheckGuardPartition(ep)
		if err != nil {
			return nil, err
		}
		findings = append(findings, fs...)
	}
	findings = append(findings, CheckDanglingRefs(table)...)
	return findings, nil
}
