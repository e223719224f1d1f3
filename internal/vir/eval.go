package vir

import "fmt"

// Env assigns integer values to places, keyed by the place's textual
// form.
type Env map[string]int64

// EvalBool evaluates a boolean formula over the given place assignment.
// Only the pure fragment of the algebra is evaluable; permission shapes
// (acc, predicate access) are rejected. Diagnostics use this to probe
// guard and bounds formulas; predicate construction never does.
func EvalBool(e Expr, env Env) (bool, error) {
	switch n := e.(type) {
	case *BoolLit:
		return n.Value, nil
	case *BinExpr:
		switch n.Op {
		case OpAnd, OpOr, OpImplies:
			lhs, err := EvalBool(n.LHS, env)
			if err != nil {
				return false, err
			}
			rhs, err := EvalBool(n.RHS, env)
			if err != nil {
				return false, err
			}
			switch n.Op {
			case OpAnd:
				return lhs && rhs, nil
			case OpOr:
				return lhs || rhs, nil
			default:
				return !lhs || rhs, nil
			}
		case OpEq, OpLe:
			lhs, err := evalInt(n.LHS, env)
			if err != nil {
				return false, err
			}
			rhs, err := evalInt(n.RHS, env)
			if err != nil {
				return false, err
			}
			if n.Op == OpEq {
				return lhs == rhs, nil
			}
			return lhs <= rhs, nil
		}
	}
	return false, fmt.Errorf("expression %s is not an evaluable boolean formula", e)
}

func evalInt(e Expr, env Env) (int64, error) {
	switch n := e.(type) {
	case *IntLit:
		return n.Value, nil
	case *Local, *FieldSel:
		v, ok := env[e.String()]
		if !ok {
			return 0, fmt.Errorf("unbound place %s", e)
		}
		return v, nil
	}
	return 0, fmt.Errorf("expression %s is not an evaluable integer term", e)
}
